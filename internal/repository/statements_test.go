package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"vidhub-go/internal/feed"
	"vidhub-go/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var errNoConn = errors.New("dry run: no connection")

// sqlRecorder 作为 gorm logger 收集每条语句展开后的 SQL
type sqlRecorder struct {
	sqls []string
}

func (r *sqlRecorder) LogMode(gormlogger.LogLevel) gormlogger.Interface { return r }
func (r *sqlRecorder) Info(context.Context, string, ...interface{}) {}
func (r *sqlRecorder) Warn(context.Context, string, ...interface{}) {}
func (r *sqlRecorder) Error(context.Context, string, ...interface{}) {}

func (r *sqlRecorder) Trace(_ context.Context, _ time.Time, fc func() (string, int64), _ error) {
	stmt, _ := fc()
	r.sqls = append(r.sqls, stmt)
}

// dryConn 只负责开启事务，DryRun 下不会真正执行语句
type dryConn struct {
	commits, rollbacks int
}

func (c *dryConn) BeginTx(context.Context, *sql.TxOptions) (gorm.ConnPool, error) {
	return &dryTx{c}, nil
}

func (c *dryConn) PrepareContext(context.Context, string) (*sql.Stmt, error) {
	return nil, errNoConn
}

func (c *dryConn) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, errNoConn
}

func (c *dryConn) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, errNoConn
}

func (c *dryConn) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

type dryTx struct{ *dryConn }

func (t *dryTx) Commit() error { t.commits++; return nil }
func (t *dryTx) Rollback() error { t.rollbacks++; return nil }

// dryRun 驱动真实的仓储方法，记录其生成的 SQL。
// count 作为 COUNT 查询的结果，deleted 作为 DELETE 的影响行数，
// locked 填充 FOR UPDATE 读到的记录。
type dryRun struct {
	db      *gorm.DB
	conn    *dryConn
	log     *sqlRecorder
	count   int64
	deleted int64
	locked  map[string]interface{}
}

func newDryRun(t *testing.T) *dryRun {
	t.Helper()
	d := &dryRun{conn: &dryConn{}, log: &sqlRecorder{}}
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: d.conn}), &gorm.Config{
		DryRun:                 true,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
		Logger:                 d.log,
	})
	if err != nil {
		t.Fatalf("open dry-run db: %v", err)
	}
	if err := db.Callback().Query().After("gorm:query").Register("test:rows", d.fillRows); err != nil {
		t.Fatal(err)
	}
	if err := db.Callback().Delete().After("gorm:delete").Register("test:deleted", func(tx *gorm.DB) {
		tx.RowsAffected = d.deleted
	}); err != nil {
		t.Fatal(err)
	}
	d.db = db
	return d
}

func (d *dryRun) fillRows(tx *gorm.DB) {
	if n, ok := tx.Statement.Dest.(*int64); ok {
		*n, tx.RowsAffected = d.count, 1
		return
	}
	if _, ok := tx.Statement.Clauses["FOR"]; !ok || tx.Statement.Schema == nil {
		return
	}
	for name, v := range d.locked {
		if f := tx.Statement.Schema.LookUpField(name); f != nil {
			tx.AddError(f.Set(tx.Statement.Context, tx.Statement.ReflectValue, v))
		}
	}
}

// assertSequence 每个片段依次出现在后续的语句中
func assertSequence(t *testing.T, sqls []string, parts ...string) {
	t.Helper()
	i := 0
	for _, p := range parts {
		for i < len(sqls) && !strings.Contains(sqls[i], p) {
			i++
		}
		if i == len(sqls) {
			t.Fatalf("statement containing %q not found in order\n%s", p, strings.Join(sqls, "\n"))
		}
		i++
	}
}

func TestToggleEdge_InsertsWhenMissing(t *testing.T) {
	d := newDryRun(t)
	repo := NewLikeRepository(d.db)

	liked, err := repo.Toggle(context.Background(), 3, model.LikeTargetVideo, 9)
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if !liked {
		t.Error("missing edge should be inserted")
	}
	if len(d.log.sqls) != 2 {
		t.Fatalf("statements = %q", d.log.sqls)
	}
	assertContains(t, d.log.sqls[0], `DELETE FROM "likes" WHERE owner_id = 3 AND video_id = 9`)
	assertContains(t, d.log.sqls[1], `INSERT INTO "likes"`, "ON CONFLICT DO NOTHING")
	if d.conn.commits != 1 || d.conn.rollbacks != 0 {
		t.Errorf("commits = %d, rollbacks = %d", d.conn.commits, d.conn.rollbacks)
	}
}

func TestToggleEdge_DeletesWhenPresent(t *testing.T) {
	d := newDryRun(t)
	d.deleted = 1
	repo := NewSubscriptionRepository(d.db)

	subscribed, err := repo.Toggle(context.Background(), 3, 4)
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if subscribed {
		t.Error("existing edge should be removed")
	}
	if len(d.log.sqls) != 1 {
		t.Fatalf("no insert expected after a delete, got %q", d.log.sqls)
	}
	assertContains(t, d.log.sqls[0], `DELETE FROM "subscriptions" WHERE subscriber_id = 3 AND channel_id = 4`)
}

func TestVideoDeleteOwned_LocksAndCascades(t *testing.T) {
	d := newDryRun(t)
	d.locked = map[string]interface{}{"ID": int64(5), "OwnerID": int64(7)}

	v, err := NewVideoRepository(d.db).DeleteOwned(context.Background(), 5, 7, errors.New("missing"))
	if err != nil {
		t.Fatalf("DeleteOwned: %v", err)
	}
	if v.ID != 5 {
		t.Errorf("returned video id = %d", v.ID)
	}

	assertContains(t, d.log.sqls[0], `FROM "videos"`, `"videos"."id" = 5`, "FOR UPDATE")
	assertSequence(t, d.log.sqls,
		"FOR UPDATE",
		`DELETE FROM "likes" WHERE comment_id IN (SELECT`,
		`DELETE FROM "likes" WHERE video_id = 5`,
		`DELETE FROM "comments" WHERE video_id = 5`,
		`DELETE FROM "playlist_videos" WHERE video_id = 5`,
		`DELETE FROM "watch_histories" WHERE video_id = 5`,
		`DELETE FROM "videos" WHERE "videos"."id" = 5`,
	)
	assertContains(t, d.log.sqls[1], `FROM "comments" WHERE video_id = 5)`)
	if d.conn.commits != 1 {
		t.Errorf("commits = %d, want 1", d.conn.commits)
	}
}

func TestDeleteOwned_RemovesLikes(t *testing.T) {
	tests := []struct {
		name   string
		delete func(db *gorm.DB) error
		want   []string
	}{
		{
			name: "tweet",
			delete: func(db *gorm.DB) error {
				_, err := NewTweetRepository(db).DeleteOwned(context.Background(), 5, 7, errors.New("missing"))
				return err
			},
			want: []string{`FROM "tweets"`, `DELETE FROM "likes" WHERE tweet_id = 5`, `DELETE FROM "tweets" WHERE "tweets"."id" = 5`},
		},
		{
			name: "comment",
			delete: func(db *gorm.DB) error {
				_, err := NewCommentRepository(db).DeleteOwned(context.Background(), 5, 7, errors.New("missing"))
				return err
			},
			want: []string{`FROM "comments"`, `DELETE FROM "likes" WHERE comment_id = 5`, `DELETE FROM "comments" WHERE "comments"."id" = 5`},
		},
		{
			name: "playlist",
			delete: func(db *gorm.DB) error {
				_, err := NewPlaylistRepository(db).DeleteOwned(context.Background(), 5, 7, errors.New("missing"))
				return err
			},
			want: []string{`FROM "playlists"`, `DELETE FROM "playlist_videos" WHERE playlist_id = 5`, `DELETE FROM "playlists" WHERE "playlists"."id" = 5`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDryRun(t)
			d.locked = map[string]interface{}{"ID": int64(5), "OwnerID": int64(7)}

			if err := tt.delete(d.db); err != nil {
				t.Fatalf("DeleteOwned: %v", err)
			}
			assertContains(t, d.log.sqls[0], "FOR UPDATE")
			assertSequence(t, d.log.sqls, tt.want...)
		})
	}
}

func TestAuthorizeAndMutate_RejectsNonOwner(t *testing.T) {
	d := newDryRun(t)
	d.locked = map[string]interface{}{"ID": int64(5), "OwnerID": int64(7)}

	_, err := NewVideoRepository(d.db).DeleteOwned(context.Background(), 5, 8, errors.New("missing"))
	if !errors.Is(err, model.ErrNotOwner) {
		t.Fatalf("err = %v, want ErrNotOwner", err)
	}
	for _, s := range d.log.sqls {
		if strings.HasPrefix(s, "DELETE") {
			t.Errorf("no delete expected for a non-owner, got %s", s)
		}
	}
	if d.conn.rollbacks != 1 || d.conn.commits != 0 {
		t.Errorf("commits = %d, rollbacks = %d", d.conn.commits, d.conn.rollbacks)
	}
}

func TestVisibility_HidesOthersUnpublished(t *testing.T) {
	d := newDryRun(t)
	ctx := context.Background()

	if _, err := NewVideoRepository(d.db).ExistsVisible(ctx, 5, 3); err != nil {
		t.Fatal(err)
	}
	_, _ = NewLikeRepository(d.db).LikedVideos(ctx, 3)
	_, _ = NewPlaylistRepository(d.db).Videos(ctx, 2, 3)
	// Raw + Scan 在 DryRun 下返回 ErrDryRunModeUnsupported，SQL 仍会被记录
	_, _ = NewVideoRepository(d.db).LatestByOwners(ctx, []int64{1, 2})

	if len(d.log.sqls) != 4 {
		t.Fatalf("statements = %q", d.log.sqls)
	}
	assertContains(t, d.log.sqls[0], "id = 5 AND (is_published = true OR owner_id = 3)")
	assertContains(t, d.log.sqls[1], "(videos.is_published = true OR videos.owner_id = 3)", "likes.owner_id = 3")
	assertContains(t, d.log.sqls[2], "(videos.is_published = true OR videos.owner_id = 3)", "pv.playlist_id = 2")
	assertContains(t, d.log.sqls[3], "owner_id IN (1,2) AND is_published = true")
}

var limitOffset = regexp.MustCompile(`LIMIT (\d+)(?: OFFSET (\d+))?`)

// 逐页读取时各页窗口互不重叠且覆盖全部记录
func TestVideoFeed_PageWalkCoversAllRecords(t *testing.T) {
	const total, limit = 23, 5
	d := newDryRun(t)
	d.count = total
	repo := NewVideoRepository(d.db)

	seen := make([]int, total)
	var pages int64
	for page := 1; ; page++ {
		d.log.sqls = nil
		p, err := repo.Feed(context.Background(), feed.Options{Page: page, Limit: limit})
		if err != nil {
			t.Fatalf("page %d: %v", page, err)
		}
		if p.TotalItems != total || p.CurrentPage != page {
			t.Fatalf("page %d meta = %+v", page, p)
		}
		pages = p.TotalPages

		var find string
		for _, s := range d.log.sqls {
			if !strings.Contains(s, "count(*)") && strings.Contains(s, "LIMIT") {
				find = s
			}
		}
		if page > int(p.TotalPages) {
			if find != "" || len(p.Items) != 0 || p.HasNextPage {
				t.Errorf("out-of-range page %d should not query rows: %q, %+v", page, find, p)
			}
			break
		}

		m := limitOffset.FindStringSubmatch(find)
		if m == nil {
			t.Fatalf("page %d: no LIMIT in %q", page, d.log.sqls)
		}
		n, _ := strconv.Atoi(m[1])
		off := 0
		if m[2] != "" {
			off, _ = strconv.Atoi(m[2])
		}
		if n != limit {
			t.Errorf("page %d limit = %d", page, n)
		}
		for i := off; i < off+n && i < total; i++ {
			seen[i]++
		}
		if p.HasNextPage != (page < int(p.TotalPages)) || p.HasPrevPage != (page > 1) {
			t.Errorf("page %d flags = %+v", page, p)
		}
	}

	if pages != 5 {
		t.Errorf("total pages = %d, want 5", pages)
	}
	for i, c := range seen {
		if c != 1 {
			t.Errorf("row %d covered %d times", i, c)
		}
	}
}
