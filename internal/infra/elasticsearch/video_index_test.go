package elasticsearch

import (
	"encoding/json"
	"testing"
	"time"

	"vidhub-go/internal/model"
)

func TestNewVideoDoc(t *testing.T) {
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	v := &model.Video{
		ID:          9,
		OwnerID:     3,
		Title:       "Go tips",
		Description: "generics",
		IsPublished: true,
		Views:       12,
		Duration:    61.5,
		CreatedAt:   created,
		UpdatedAt:   created,
		Owner:       &model.User{ID: 3, Username: "alice"},
	}

	doc := NewVideoDoc(v)
	if doc.OwnerUsername != "alice" || doc.ID != 9 || !doc.IsPublished {
		t.Errorf("doc = %+v", doc)
	}
	if doc.CreatedAt != "2024-05-01T10:00:00Z" {
		t.Errorf("CreatedAt = %q", doc.CreatedAt)
	}

	v.Owner = nil
	if NewVideoDoc(v).OwnerUsername != "" {
		t.Error("missing owner should leave username empty")
	}
}

func TestSearchQuery(t *testing.T) {
	body, err := searchQuery("cats", 50)
	if err != nil {
		t.Fatalf("searchQuery: %v", err)
	}

	var q struct {
		Size  int `json:"size"`
		Query struct {
			Bool struct {
				Must struct {
					MultiMatch struct {
						Query  string   `json:"query"`
						Fields []string `json:"fields"`
					} `json:"multi_match"`
				} `json:"must"`
			} `json:"bool"`
		} `json:"query"`
	}
	if err := json.Unmarshal(body, &q); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	mm := q.Query.Bool.Must.MultiMatch
	if q.Size != 50 || mm.Query != "cats" || len(mm.Fields) != 2 {
		t.Errorf("unexpected query %s", body)
	}
}
