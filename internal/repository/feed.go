package repository

import (
	"strings"

	"vidhub-go/internal/feed"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// feedSource 描述一个可组合查询的集合
type feedSource struct {
	table       string
	textColumns []string
	sortable    map[string]string
	publishable bool
	preloads    []string
}

// composeFeed 依次应用全文检索、所有者过滤、发布状态过滤、排序与分页。
// base 需已设置 Model 和集合特有的条件（如 video_id）。
func composeFeed[T any](base *gorm.DB, src feedSource, opts feed.Options) (feed.Page[T], error) {
	opts = opts.Normalize()

	column, desc, err := opts.Sort(src.sortable)
	if err != nil {
		return feed.Page[T]{}, err
	}

	if opts.MatchIDs != nil && len(opts.MatchIDs) == 0 {
		return feed.Empty[T](opts), nil
	}
	q := filterFeed(base, src, opts).Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return feed.Page[T]{}, err
	}
	if total == 0 || int64(opts.Offset()) >= total {
		return feed.NewPage[T](nil, total, opts.Page, opts.Limit), nil
	}

	find := orderFeed(q, src, column, desc)
	for _, p := range src.preloads {
		find = find.Preload(p)
	}

	var items []T
	if err := find.Offset(opts.Offset()).Limit(opts.Limit).Find(&items).Error; err != nil {
		return feed.Page[T]{}, err
	}
	return feed.NewPage(items, total, opts.Page, opts.Limit), nil
}

// filterFeed 应用检索与过滤条件
func filterFeed(q *gorm.DB, src feedSource, opts feed.Options) *gorm.DB {
	switch {
	case opts.MatchIDs != nil:
		q = q.Where(src.table+".id IN ?", opts.MatchIDs)
	case opts.TextQuery != "" && len(src.textColumns) > 0:
		q = q.Where(textSearchExpr(src.table, src.textColumns), opts.TextQuery)
	}
	if opts.OwnerID > 0 {
		q = q.Where(src.table+".owner_id = ?", opts.OwnerID)
	}
	if src.publishable && opts.PublishedOnly {
		q = q.Where(src.table+".is_published = ?", true)
	}
	return q
}

// orderFeed 主排序列之后追加 id 升序，保证结果稳定
func orderFeed(q *gorm.DB, src feedSource, column string, desc bool) *gorm.DB {
	return q.Order(clause.OrderByColumn{Column: clause.Column{Table: src.table, Name: column}, Desc: desc}).
		Order(clause.OrderByColumn{Column: clause.Column{Table: src.table, Name: "id"}})
}

// textSearchExpr 生成 PostgreSQL 全文检索条件
func textSearchExpr(table string, columns []string) string {
	parts := make([]string, len(columns))
	for i, c := range columns {
		parts[i] = "coalesce(" + table + "." + c + ", '')"
	}
	return "to_tsvector('simple', " + strings.Join(parts, " || ' ' || ") + ") @@ plainto_tsquery('simple', ?)"
}
