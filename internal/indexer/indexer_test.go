package indexer

import (
	"context"
	"errors"
	"testing"

	infraKafka "vidhub-go/internal/infra/kafka"
	"vidhub-go/internal/model"

	"gorm.io/gorm"
)

type fakeSource struct {
	videos map[int64]model.Video
	err    error
}

func (s fakeSource) GetByIDWithOwner(_ context.Context, id int64) (*model.Video, error) {
	if s.err != nil {
		return nil, s.err
	}
	v, ok := s.videos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &v, nil
}

func (s fakeSource) ListPublishedAfter(_ context.Context, afterID int64, limit int) ([]model.Video, error) {
	var out []model.Video
	for id := afterID + 1; len(out) < limit && id <= int64(len(s.videos)); id++ {
		if v := s.videos[id]; v.IsPublished {
			out = append(out, v)
		}
	}
	return out, nil
}

type fakeIndex struct {
	docs    map[int64]bool
	batches int
}

func newFakeIndex() *fakeIndex { return &fakeIndex{docs: map[int64]bool{}} }

func (i *fakeIndex) Upsert(_ context.Context, v *model.Video) error {
	i.docs[v.ID] = true
	return nil
}

func (i *fakeIndex) Delete(_ context.Context, id int64) error {
	delete(i.docs, id)
	return nil
}

func (i *fakeIndex) BulkUpsert(_ context.Context, videos []model.Video) (int, int, error) {
	i.batches++
	for _, v := range videos {
		i.docs[v.ID] = true
	}
	return len(videos), 0, nil
}

func TestHandle(t *testing.T) {
	src := fakeSource{videos: map[int64]model.Video{
		1: {ID: 1, IsPublished: true},
		2: {ID: 2, IsPublished: false},
	}}
	ctx := context.Background()

	tests := []struct {
		name    string
		event   infraKafka.VideoEvent
		preset  []int64
		wantDoc map[int64]bool
	}{
		{"published is indexed", infraKafka.VideoEvent{Type: infraKafka.VideoCreated, VideoID: 1}, nil, map[int64]bool{1: true}},
		{"unpublished is removed", infraKafka.VideoEvent{Type: infraKafka.VideoUpdated, VideoID: 2}, []int64{2}, map[int64]bool{}},
		{"deleted is removed", infraKafka.VideoEvent{Type: infraKafka.VideoDeleted, VideoID: 1}, []int64{1}, map[int64]bool{}},
		{"missing record is removed", infraKafka.VideoEvent{Type: infraKafka.VideoUpdated, VideoID: 9}, []int64{9}, map[int64]bool{}},
		{"unknown type ignored", infraKafka.VideoEvent{Type: "video.renamed", VideoID: 1}, nil, map[int64]bool{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := newFakeIndex()
			for _, id := range tt.preset {
				idx.docs[id] = true
			}
			if err := New(src, idx).Handle(ctx, &tt.event); err != nil {
				t.Fatalf("Handle: %v", err)
			}
			if len(idx.docs) != len(tt.wantDoc) {
				t.Errorf("docs = %v, want %v", idx.docs, tt.wantDoc)
			}
			for id := range tt.wantDoc {
				if !idx.docs[id] {
					t.Errorf("doc %d missing", id)
				}
			}
		})
	}
}

func TestHandle_SourceError(t *testing.T) {
	idx := newFakeIndex()
	err := New(fakeSource{err: errors.New("db down")}, idx).
		Handle(context.Background(), &infraKafka.VideoEvent{Type: infraKafka.VideoCreated, VideoID: 1})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestReindex_Batches(t *testing.T) {
	videos := map[int64]model.Video{}
	for id := int64(1); id <= 7; id++ {
		videos[id] = model.Video{ID: id, IsPublished: id != 4}
	}
	idx := newFakeIndex()

	indexed, failed, err := New(fakeSource{videos: videos}, idx).Reindex(context.Background(), 3)
	if err != nil {
		t.Fatalf("Reindex: %v", err)
	}
	if indexed != 6 || failed != 0 || len(idx.docs) != 6 || idx.docs[4] {
		t.Errorf("indexed=%d failed=%d docs=%v", indexed, failed, idx.docs)
	}
	if idx.batches != 2 {
		t.Errorf("batches = %d, want 2", idx.batches)
	}
}
