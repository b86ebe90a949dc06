package repository

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Pagination is a 1-based page request. Size is capped at MaxPageSize.
type Pagination struct {
	Page int
	Size int
}

func NewPagination(page, size int) Pagination {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return Pagination{Page: page, Size: size}
}

func (p Pagination) Normalized() Pagination {
	return NewPagination(p.Page, p.Size)
}

func (p Pagination) Offset() int {
	n := p.Normalized()
	return (n.Page - 1) * n.Size
}

func (p Pagination) Limit() int {
	return p.Normalized().Size
}

type Op string

const (
	OpEq       Op = "eq"
	OpGte      Op = "gte"
	OpLte      Op = "lte"
	OpContains Op = "contains"
)

// Filter is a predicate on one column. Columns always come from code, never
// from request input.
type Filter struct {
	Column string
	Op     Op
	Value  any
}

func Eq(column string, value any) Filter       { return Filter{Column: column, Op: OpEq, Value: value} }
func Gte(column string, value any) Filter      { return Filter{Column: column, Op: OpGte, Value: value} }
func Lte(column string, value any) Filter      { return Filter{Column: column, Op: OpLte, Value: value} }
func Contains(column string, value any) Filter { return Filter{Column: column, Op: OpContains, Value: value} }

// Query is a list request: active rows only, ordered by creation time.
type Query struct {
	Page    Pagination
	Filters []Filter
}

// Page is one slice of a listing plus the total number of matching rows.
type Page[T any] struct {
	Items []T
	Total int64
	Page  int
	Size  int
}

func NewPage[T any](items []T, total int64, p Pagination) *Page[T] {
	p = p.Normalized()
	if items == nil {
		items = []T{}
	}
	return &Page[T]{Items: items, Total: total, Page: p.Page, Size: p.Size}
}
