// Package listing implements the filtered pagination protocol shared by every
// collection endpoint: normalize page/limit, AND the filter conditions, count,
// fetch one page in a deterministic order and derive the pagination metadata.
package listing

import (
	"context"
	"errors"
	"time"
)

// Op is the match kind of a single filter condition.
type Op int

const (
	// OpEqual is an exact match on a typed or enumerated field.
	OpEqual Op = iota
	// OpContains is a case-insensitive substring match. With several fields
	// the condition holds when any of them matches.
	OpContains
	// OpGTE and OpLTE bound numeric fields.
	OpGTE
	OpLTE
)

func (o Op) String() string {
	switch o {
	case OpEqual:
		return "eq"
	case OpContains:
		return "contains"
	case OpGTE:
		return "gte"
	case OpLTE:
		return "lte"
	default:
		return "unknown"
	}
}

// Condition restricts the matching set. Conditions are combined with AND.
type Condition struct {
	Fields []string
	Op     Op
	Value  any
}

// Eq builds an exact-match condition.
func Eq(field string, value any) Condition {
	return Condition{Fields: []string{field}, Op: OpEqual, Value: value}
}

// Contains builds a substring condition over one or more fields.
func Contains(value string, fields ...string) Condition {
	return Condition{Fields: fields, Op: OpContains, Value: value}
}

// IsEmpty reports whether the condition imposes nothing.
func (c Condition) IsEmpty() bool {
	if len(c.Fields) == 0 || c.Value == nil {
		return true
	}
	if s, ok := c.Value.(string); ok && s == "" {
		return true
	}
	return false
}

// SortField is one ordering term.
type SortField struct {
	Field string
	Desc  bool
}

// Request is the strongly typed listing query. Zero values select defaults.
type Request struct {
	Page    int
	Limit   int
	Filters []Condition
	Sort    []SortField
}

// Result is one page of T plus the pagination metadata.
type Result[T any] struct {
	Items       []T
	TotalCount  int64
	CurrentPage int
	Limit       int
	TotalPages  int
	HasNextPage bool
	HasPrevPage bool
}

// Collection is the storage collaborator. Implementations must honour ctx.
type Collection[T any] interface {
	Count(ctx context.Context, conds []Condition) (int64, error)
	Find(ctx context.Context, conds []Condition, sort []SortField, skip, limit int) ([]T, error)
}

// Options configure normalization and ordering for a Service.
type Options struct {
	DefaultLimit int
	MaxLimit     int
	// DefaultSort applies when the request names no sort.
	DefaultSort []SortField
	// TieBreaker is the unique key appended as the final sort term.
	TieBreaker string
	// Timeout bounds the count and fetch together.
	Timeout time.Duration
}

const (
	DefaultPage         = 1
	DefaultLimit        = 10
	DefaultMaxLimit     = 100
	DefaultTieBreaker   = "id"
	DefaultCreatedField = "created_at"
	DefaultTimeout      = 10 * time.Second
)

// DefaultOptions sorts newest first with an id tie-break.
func DefaultOptions() Options {
	return Options{
		DefaultLimit: DefaultLimit,
		MaxLimit:     DefaultMaxLimit,
		DefaultSort:  []SortField{{Field: DefaultCreatedField, Desc: true}},
		TieBreaker:   DefaultTieBreaker,
		Timeout:      DefaultTimeout,
	}
}

func (o Options) withDefaults() Options {
	if o.DefaultLimit < 1 {
		o.DefaultLimit = DefaultLimit
	}
	if o.MaxLimit < 1 {
		o.MaxLimit = DefaultMaxLimit
	}
	if o.DefaultLimit > o.MaxLimit {
		o.DefaultLimit = o.MaxLimit
	}
	if o.TieBreaker == "" {
		o.TieBreaker = DefaultTieBreaker
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	return o
}

// Service lists one collection.
type Service[T any] struct {
	coll Collection[T]
	opts Options
}

func New[T any](coll Collection[T], opts Options) *Service[T] {
	return &Service[T]{coll: coll, opts: opts.withDefaults()}
}

// Options returns the effective options.
func (s *Service[T]) Options() Options {
	return s.opts
}

// Normalize returns req with page, limit and sort made valid. Filters with no
// value are dropped.
func (s *Service[T]) Normalize(req Request) Request {
	out := Request{Page: req.Page, Limit: req.Limit}
	if out.Page < 1 {
		out.Page = DefaultPage
	}
	if out.Limit < 1 {
		out.Limit = s.opts.DefaultLimit
	}
	if out.Limit > s.opts.MaxLimit {
		out.Limit = s.opts.MaxLimit
	}

	for _, c := range req.Filters {
		if !c.IsEmpty() {
			out.Filters = append(out.Filters, c)
		}
	}

	sort := req.Sort
	if len(sort) == 0 {
		sort = s.opts.DefaultSort
	}
	out.Sort = make([]SortField, 0, len(sort)+1)
	hasTieBreaker := false
	for _, f := range sort {
		if f.Field == "" {
			continue
		}
		if f.Field == s.opts.TieBreaker {
			hasTieBreaker = true
		}
		out.Sort = append(out.Sort, f)
	}
	if !hasTieBreaker {
		out.Sort = append(out.Sort, SortField{Field: s.opts.TieBreaker})
	}
	return out
}

// List counts and fetches one page. It performs reads only. Count and page are
// two separate reads, so under concurrent writes they may disagree.
func (s *Service[T]) List(ctx context.Context, req Request) (*Result[T], error) {
	req = s.Normalize(req)

	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	if err := ctx.Err(); err != nil {
		return nil, &CancellationFailure{Op: "count", Err: err}
	}

	total, err := s.coll.Count(ctx, req.Filters)
	if err != nil {
		return nil, classify(ctx, "count", err)
	}

	items := make([]T, 0)
	if int64(req.Page) <= pageCount(total, req.Limit) {
		skip := (req.Page - 1) * req.Limit
		found, err := s.coll.Find(ctx, req.Filters, req.Sort, skip, req.Limit)
		if err != nil {
			return nil, classify(ctx, "find", err)
		}
		if found != nil {
			items = found
		}
	} else if err := ctx.Err(); err != nil {
		return nil, &CancellationFailure{Op: "find", Err: err}
	}

	return Paginate(items, total, req.Page, req.Limit), nil
}

// Paginate derives the metadata for a page of items already fetched.
func Paginate[T any](items []T, total int64, page, limit int) *Result[T] {
	res := &Result[T]{
		Items:       items,
		TotalCount:  total,
		CurrentPage: page,
		Limit:       limit,
	}
	if total <= 0 || limit <= 0 {
		res.TotalCount = 0
		if res.Items == nil {
			res.Items = make([]T, 0)
		}
		return res
	}
	pages := pageCount(total, limit)
	res.TotalPages = int(pages)
	res.HasNextPage = int64(page) < pages
	res.HasPrevPage = page > 1
	return res
}

// pageCount compares in pages so that a huge page number cannot overflow
// page*limit.
func pageCount(total int64, limit int) int64 {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}

// Map converts the items of a result, keeping the metadata.
func Map[T, U any](res *Result[T], fn func(T) U) *Result[U] {
	out := &Result[U]{
		Items:       make([]U, 0, len(res.Items)),
		TotalCount:  res.TotalCount,
		CurrentPage: res.CurrentPage,
		Limit:       res.Limit,
		TotalPages:  res.TotalPages,
		HasNextPage: res.HasNextPage,
		HasPrevPage: res.HasPrevPage,
	}
	for _, it := range res.Items {
		out.Items = append(out.Items, fn(it))
	}
	return out
}

func classify(ctx context.Context, op string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &CancellationFailure{Op: op, Err: err}
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return &CancellationFailure{Op: op, Err: ctxErr}
	}
	return &StorageFailure{Op: op, Err: err}
}
