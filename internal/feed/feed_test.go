package feed

import (
	"testing"

	"vidhub-go/pkg/apperr"
)

var videoSortable = map[string]string{
	"createdAt": "created_at",
	"views":     "views",
	"duration":  "duration",
}

func TestNormalize_Defaults(t *testing.T) {
	o := Options{}.Normalize()
	if o.Page != 1 || o.Limit != 10 {
		t.Errorf("defaults = page %d limit %d, want 1/10", o.Page, o.Limit)
	}

	o = Options{Page: -3, Limit: 1000, SortDirection: " DESC "}.Normalize()
	if o.Page != 1 || o.Limit != MaxLimit || o.SortDirection != "desc" {
		t.Errorf("got %+v", o)
	}
}

func TestOffset(t *testing.T) {
	o := Options{Page: 3, Limit: 7}
	if got := o.Offset(); got != 14 {
		t.Errorf("Offset() = %d, want 14", got)
	}
}

func TestSort(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		wantCol  string
		wantDesc bool
		wantKind apperr.Kind
		wantErr  bool
	}{
		{name: "default", opts: Options{}, wantCol: "created_at", wantDesc: true},
		{name: "only key", opts: Options{SortKey: "views"}, wantCol: "created_at", wantDesc: true},
		{name: "only direction", opts: Options{SortDirection: "asc"}, wantCol: "created_at", wantDesc: true},
		{name: "views asc", opts: Options{SortKey: "views", SortDirection: "asc"}, wantCol: "views"},
		{name: "duration desc", opts: Options{SortKey: "duration", SortDirection: "desc"}, wantCol: "duration", wantDesc: true},
		{name: "unknown key", opts: Options{SortKey: "password", SortDirection: "asc"}, wantErr: true, wantKind: apperr.KindInvalidInput},
		{name: "bad direction", opts: Options{SortKey: "views", SortDirection: "sideways"}, wantErr: true, wantKind: apperr.KindInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col, desc, err := tt.opts.Normalize().Sort(videoSortable)
			if tt.wantErr {
				if apperr.KindOf(err) != tt.wantKind {
					t.Fatalf("err = %v, want kind %v", err, tt.wantKind)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if col != tt.wantCol || desc != tt.wantDesc {
				t.Errorf("got (%s, %v), want (%s, %v)", col, desc, tt.wantCol, tt.wantDesc)
			}
		})
	}
}

func TestNewPage_Metadata(t *testing.T) {
	tests := []struct {
		name               string
		total              int64
		page, limit        int
		wantPages          int64
		wantNext, wantPrev bool
	}{
		{"empty", 0, 1, 10, 0, false, false},
		{"single page", 7, 1, 10, 1, false, false},
		{"first of three", 25, 1, 10, 3, true, false},
		{"middle", 25, 2, 10, 3, true, true},
		{"last", 25, 3, 10, 3, false, true},
		{"out of range", 25, 9, 10, 3, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPage[int](nil, tt.total, tt.page, tt.limit)
			if p.TotalPages != tt.wantPages || p.HasNextPage != tt.wantNext || p.HasPrevPage != tt.wantPrev {
				t.Errorf("got pages=%d next=%v prev=%v", p.TotalPages, p.HasNextPage, p.HasPrevPage)
			}
			if p.Items == nil {
				t.Error("Items must never be nil")
			}
		})
	}
}

func TestMap(t *testing.T) {
	p := NewPage([]int{1, 2, 3}, 13, 2, 3)
	q := Map(p, func(i int) string { return string(rune('a' + i)) })
	if len(q.Items) != 3 || q.Items[0] != "b" {
		t.Errorf("items = %v", q.Items)
	}
	if q.TotalItems != 13 || q.TotalPages != 5 || q.CurrentPage != 2 || !q.HasNextPage || !q.HasPrevPage {
		t.Errorf("metadata not carried over: %+v", q)
	}
}
