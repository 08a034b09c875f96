package repository

import (
	"strings"
	"testing"

	"vidhub-go/internal/feed"
	"vidhub-go/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// dryRunDB 只生成 SQL，不连接数据库
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=127.0.0.1 user=test dbname=test sslmode=disable",
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	if err != nil {
		t.Fatalf("open dry-run db: %v", err)
	}
	return db
}

func assertContains(t *testing.T, sql string, parts ...string) {
	t.Helper()
	for _, p := range parts {
		if !strings.Contains(sql, p) {
			t.Errorf("SQL missing %q\n%s", p, sql)
		}
	}
}

func TestFilterFeed_VideoAllStages(t *testing.T) {
	db := dryRunDB(t)
	opts := feed.Options{TextQuery: "cats", OwnerID: 7, PublishedOnly: true, Page: 2, Limit: 5}.Normalize()

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		q := filterFeed(tx.Model(&model.Video{}), videoFeed, opts)
		q = orderFeed(q, videoFeed, "views", false)
		return q.Offset(opts.Offset()).Limit(opts.Limit).Find(&[]model.Video{})
	})

	assertContains(t, sql,
		"to_tsvector('simple', coalesce(videos.title, '') || ' ' || coalesce(videos.description, ''))",
		"plainto_tsquery('simple', 'cats')",
		"videos.owner_id = 7",
		"videos.is_published = true",
		`ORDER BY "videos"."views","videos"."id"`,
		"LIMIT 5",
		"OFFSET 5",
	)
}

func TestFilterFeed_MatchIDsReplaceTextSearch(t *testing.T) {
	db := dryRunDB(t)
	opts := feed.Options{TextQuery: "cats", MatchIDs: []int64{3, 1}}.Normalize()

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return filterFeed(tx.Model(&model.Video{}), videoFeed, opts).Find(&[]model.Video{})
	})

	assertContains(t, sql, "videos.id IN (3,1)")
	if strings.Contains(sql, "to_tsvector") {
		t.Errorf("text search stage should be skipped when ids are given:\n%s", sql)
	}
}

func TestFilterFeed_OptionalStagesSkipped(t *testing.T) {
	db := dryRunDB(t)

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		q := filterFeed(tx.Model(&model.Tweet{}), tweetFeed, feed.Options{PublishedOnly: true}.Normalize())
		return orderFeed(q, tweetFeed, feed.DefaultSortColumn, true).Find(&[]model.Tweet{})
	})

	for _, unwanted := range []string{"to_tsvector", "owner_id", "is_published"} {
		if strings.Contains(sql, unwanted) {
			t.Errorf("unexpected %q in\n%s", unwanted, sql)
		}
	}
	assertContains(t, sql, `ORDER BY "tweets"."created_at" DESC,"tweets"."id"`)
}

func TestComposeFeed_EmptyMatchIDsShortCircuits(t *testing.T) {
	db := dryRunDB(t)

	page, err := composeFeed[model.Video](db.Model(&model.Video{}), videoFeed, feed.Options{MatchIDs: []int64{}})
	if err != nil {
		t.Fatalf("composeFeed: %v", err)
	}
	if page.TotalItems != 0 || len(page.Items) != 0 || page.CurrentPage != 1 || page.Limit != 10 {
		t.Errorf("page = %+v", page)
	}
}

func TestComposeFeed_RejectsUnknownSortKey(t *testing.T) {
	db := dryRunDB(t)

	_, err := composeFeed[model.Video](db.Model(&model.Video{}), videoFeed,
		feed.Options{SortKey: "password", SortDirection: "asc"})
	if err == nil {
		t.Fatal("expected error for unknown sort key")
	}
}

func TestTextSearchExpr(t *testing.T) {
	got := textSearchExpr("comments", []string{"content"})
	want := "to_tsvector('simple', coalesce(comments.content, '')) @@ plainto_tsquery('simple', ?)"
	if got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}
}
