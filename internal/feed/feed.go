// Package feed 描述列表查询的过滤、排序与分页参数，以及统一的分页结果。
//
// 查询组合的执行在 repository 中完成，这里只保存与存储无关的规则：
// 默认值、排序字段白名单、页码窗口和结果元信息的计算。
package feed

import (
	"strings"

	"vidhub-go/pkg/apperr"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	// DefaultSortColumn 未指定排序时按创建时间倒序
	DefaultSortColumn = "created_at"
)

var (
	ErrUnknownSortKey       = apperr.InvalidInput("不支持的排序字段")
	ErrInvalidSortDirection = apperr.InvalidInput("排序方向只能是 asc 或 desc")
)

// Options 列表查询参数
type Options struct {
	// TextQuery 非空时先做全文检索，再应用其他过滤条件
	TextQuery string
	// MatchIDs 非 nil 表示全文检索已由搜索引擎完成，仅保留这些记录
	MatchIDs []int64
	// OwnerID 大于 0 时只返回该用户的记录
	OwnerID       int64
	PublishedOnly bool
	SortKey       string
	SortDirection string
	Page          int
	Limit         int
	// ViewerID 当前查看者，0 表示匿名
	ViewerID int64
}

// Normalize 补齐默认值并限制每页数量
func (o Options) Normalize() Options {
	o.TextQuery = strings.TrimSpace(o.TextQuery)
	o.SortKey = strings.TrimSpace(o.SortKey)
	o.SortDirection = strings.ToLower(strings.TrimSpace(o.SortDirection))
	if o.Page < 1 {
		o.Page = DefaultPage
	}
	if o.Limit < 1 {
		o.Limit = DefaultLimit
	}
	if o.Limit > MaxLimit {
		o.Limit = MaxLimit
	}
	return o
}

// Offset 当前页之前需要跳过的记录数
func (o Options) Offset() int {
	return (o.Page - 1) * o.Limit
}

// Sort 根据白名单解析排序列。sortKey 与 sortDirection 同时给出才生效，
// 否则按创建时间倒序。
func (o Options) Sort(allowed map[string]string) (column string, desc bool, err error) {
	if o.SortKey == "" || o.SortDirection == "" {
		return DefaultSortColumn, true, nil
	}
	column, ok := allowed[o.SortKey]
	if !ok {
		return "", false, ErrUnknownSortKey.WithDetails(o.SortKey)
	}
	switch o.SortDirection {
	case "asc":
		return column, false, nil
	case "desc":
		return column, true, nil
	default:
		return "", false, ErrInvalidSortDirection
	}
}

// Page 分页结果
type Page[T any] struct {
	Items       []T   `json:"items"`
	TotalItems  int64 `json:"totalItems"`
	TotalPages  int64 `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
	Limit       int   `json:"limit"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// NewPage 根据总数计算分页元信息，超出范围的页码返回空列表
func NewPage[T any](items []T, total int64, page, limit int) Page[T] {
	if items == nil {
		items = []T{}
	}
	var totalPages int64
	if limit > 0 {
		totalPages = (total + int64(limit) - 1) / int64(limit)
	}
	return Page[T]{
		Items:       items,
		TotalItems:  total,
		TotalPages:  totalPages,
		CurrentPage: page,
		Limit:       limit,
		HasNextPage: int64(page) < totalPages,
		HasPrevPage: page > 1,
	}
}

// Empty 返回没有任何记录的分页结果
func Empty[T any](o Options) Page[T] {
	return NewPage[T](nil, 0, o.Page, o.Limit)
}

// Map 转换分页结果中的元素类型
func Map[T, U any](p Page[T], fn func(T) U) Page[U] {
	out := make([]U, len(p.Items))
	for i, item := range p.Items {
		out[i] = fn(item)
	}
	return Page[U]{
		Items:       out,
		TotalItems:  p.TotalItems,
		TotalPages:  p.TotalPages,
		CurrentPage: p.CurrentPage,
		Limit:       p.Limit,
		HasNextPage: p.HasNextPage,
		HasPrevPage: p.HasPrevPage,
	}
}
