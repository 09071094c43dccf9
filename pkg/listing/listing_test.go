package listing

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type garment struct {
	ID        uint
	Name      string
	Size      string
	Price     float64
	CreatedAt int
}

func (g garment) field(name string) any {
	switch name {
	case "id":
		return g.ID
	case "name":
		return g.Name
	case "size":
		return g.Size
	case "price":
		return g.Price
	case "created_at":
		return g.CreatedAt
	}
	return nil
}

// memCollection evaluates conditions in memory.
type memCollection struct {
	items    []garment
	countErr error
	findErr  error
	delay    time.Duration
	finds    int
	lastSort []SortField
}

func (m *memCollection) wait(ctx context.Context) error {
	if m.delay == 0 {
		return ctx.Err()
	}
	select {
	case <-time.After(m.delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *memCollection) match(g garment, conds []Condition) bool {
	for _, c := range conds {
		ok := false
		for _, f := range c.Fields {
			v := g.field(f)
			switch c.Op {
			case OpEqual:
				ok = ok || fmt.Sprint(v) == fmt.Sprint(c.Value)
			case OpContains:
				ok = ok || strings.Contains(strings.ToLower(fmt.Sprint(v)), strings.ToLower(fmt.Sprint(c.Value)))
			case OpGTE:
				ok = ok || v.(float64) >= c.Value.(float64)
			case OpLTE:
				ok = ok || v.(float64) <= c.Value.(float64)
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

func (m *memCollection) Count(ctx context.Context, conds []Condition) (int64, error) {
	if err := m.wait(ctx); err != nil {
		return 0, err
	}
	if m.countErr != nil {
		return 0, m.countErr
	}
	var n int64
	for _, g := range m.items {
		if m.match(g, conds) {
			n++
		}
	}
	return n, nil
}

func (m *memCollection) Find(ctx context.Context, conds []Condition, order []SortField, skip, limit int) ([]garment, error) {
	m.finds++
	m.lastSort = order
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	if m.findErr != nil {
		return nil, m.findErr
	}
	var out []garment
	for _, g := range m.items {
		if m.match(g, conds) {
			out = append(out, g)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		for _, s := range order {
			a, b := fmt.Sprintf("%020v", out[i].field(s.Field)), fmt.Sprintf("%020v", out[j].field(s.Field))
			if a == b {
				continue
			}
			if s.Desc {
				return a > b
			}
			return a < b
		}
		return false
	})
	if skip >= len(out) {
		return []garment{}, nil
	}
	end := skip + limit
	if end > len(out) {
		end = len(out)
	}
	return out[skip:end], nil
}

func newGarments(n int) []garment {
	items := make([]garment, 0, n)
	for i := 1; i <= n; i++ {
		items = append(items, garment{
			ID:        uint(i),
			Name:      fmt.Sprintf("Garment %02d", i),
			Size:      []string{"S", "M", "L"}[i%3],
			Price:     float64(i * 10),
			CreatedAt: i % 4, // deliberate ties
		})
	}
	return items
}

func TestList_TwentyFiveEntities(t *testing.T) {
	svc := New[garment](&memCollection{items: newGarments(25)}, DefaultOptions())

	tests := []struct {
		name      string
		page      int
		wantItems int
		wantNext  bool
		wantPrev  bool
	}{
		{"first page", 1, 10, true, false},
		{"last page", 3, 5, false, true},
		{"past the end", 4, 0, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.List(context.Background(), Request{Page: tt.page, Limit: 10})
			require.NoError(t, err)

			if len(res.Items) != tt.wantItems {
				t.Errorf("Expected %d items, got %d", tt.wantItems, len(res.Items))
			}
			if res.TotalPages != 3 {
				t.Errorf("Expected 3 total pages, got %d", res.TotalPages)
			}
			if res.TotalCount != 25 {
				t.Errorf("Expected total 25, got %d", res.TotalCount)
			}
			if res.HasNextPage != tt.wantNext {
				t.Errorf("Expected hasNextPage %v, got %v", tt.wantNext, res.HasNextPage)
			}
			if res.HasPrevPage != tt.wantPrev {
				t.Errorf("Expected hasPrevPage %v, got %v", tt.wantPrev, res.HasPrevPage)
			}
		})
	}
}

func TestList_HugePageIsPastTheEnd(t *testing.T) {
	coll := &memCollection{items: newGarments(25)}
	svc := New[garment](coll, DefaultOptions())

	for _, page := range []int{math.MaxInt, math.MaxInt/10 + 1} {
		res, err := svc.List(context.Background(), Request{Page: page, Limit: 10})
		require.NoError(t, err)

		assert.Empty(t, res.Items, "page %d", page)
		assert.Equal(t, page, res.CurrentPage)
		assert.Equal(t, 3, res.TotalPages)
		assert.False(t, res.HasNextPage)
		assert.True(t, res.HasPrevPage)
	}
	assert.Zero(t, coll.finds, "pages past the end never reach storage")
}

func TestList_PagesPartitionMatchingSet(t *testing.T) {
	coll := &memCollection{items: newGarments(47)}
	svc := New[garment](coll, DefaultOptions())

	for _, limit := range []int{1, 7, 10, 47, 100} {
		seen := make(map[uint]bool)
		first, err := svc.List(context.Background(), Request{Page: 1, Limit: limit})
		require.NoError(t, err)

		for page := 1; page <= first.TotalPages; page++ {
			res, err := svc.List(context.Background(), Request{Page: page, Limit: limit})
			require.NoError(t, err)
			assert.LessOrEqual(t, len(res.Items), limit)
			for _, it := range res.Items {
				if seen[it.ID] {
					t.Fatalf("limit %d: item %d returned twice", limit, it.ID)
				}
				seen[it.ID] = true
			}
		}
		if len(seen) != 47 {
			t.Errorf("limit %d: expected 47 distinct items, got %d", limit, len(seen))
		}
	}
}

func TestList_AppendsTieBreaker(t *testing.T) {
	coll := &memCollection{items: newGarments(5)}
	svc := New[garment](coll, DefaultOptions())

	_, err := svc.List(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, []SortField{{Field: "created_at", Desc: true}, {Field: "id"}}, coll.lastSort)

	_, err = svc.List(context.Background(), Request{Sort: []SortField{{Field: "id", Desc: true}}})
	require.NoError(t, err)
	assert.Equal(t, []SortField{{Field: "id", Desc: true}}, coll.lastSort)

	_, err = svc.List(context.Background(), Request{Sort: []SortField{{Field: "price"}}})
	require.NoError(t, err)
	assert.Equal(t, []SortField{{Field: "price"}, {Field: "id"}}, coll.lastSort)
}

func TestList_DefaultNormalization(t *testing.T) {
	svc := New[garment](&memCollection{items: newGarments(25)}, DefaultOptions())

	odd, err := svc.List(context.Background(), Request{Page: 0, Limit: -5})
	require.NoError(t, err)
	plain, err := svc.List(context.Background(), Request{Page: 1, Limit: DefaultLimit})
	require.NoError(t, err)

	assert.Equal(t, plain, odd)
	assert.Equal(t, 1, odd.CurrentPage)
	assert.Equal(t, DefaultLimit, odd.Limit)
}

func TestList_ClampsLimit(t *testing.T) {
	svc := New[garment](&memCollection{items: newGarments(30)}, Options{DefaultLimit: 5, MaxLimit: 20})

	res, err := svc.List(context.Background(), Request{Limit: 500})
	require.NoError(t, err)
	if res.Limit != 20 || len(res.Items) != 20 {
		t.Errorf("Expected limit clamped to 20, got limit %d with %d items", res.Limit, len(res.Items))
	}
}

func TestList_EmptyFilterMatchesAll(t *testing.T) {
	coll := &memCollection{items: newGarments(12)}
	svc := New[garment](coll, DefaultOptions())

	res, err := svc.List(context.Background(), Request{Filters: []Condition{Eq("size", ""), Contains("", "name")}})
	require.NoError(t, err)

	all, _ := coll.Count(context.Background(), nil)
	assert.Equal(t, all, res.TotalCount)
}

func TestList_SearchIsCaseInsensitiveSubstring(t *testing.T) {
	coll := &memCollection{items: []garment{
		{ID: 1, Name: "Red Silk Saree"},
		{ID: 2, Name: "Blue Cotton Saree"},
	}}
	svc := New[garment](coll, DefaultOptions())

	res, err := svc.List(context.Background(), Request{Filters: []Condition{Contains("silk", "name")}})
	require.NoError(t, err)

	require.Len(t, res.Items, 1)
	assert.Equal(t, "Red Silk Saree", res.Items[0].Name)
	assert.Equal(t, int64(1), res.TotalCount)
}

func TestList_FiltersCombineWithAnd(t *testing.T) {
	coll := &memCollection{items: newGarments(30)}
	svc := New[garment](coll, DefaultOptions())

	a := []Condition{Eq("size", "M"), {Fields: []string{"price"}, Op: OpGTE, Value: 100.0}}
	b := []Condition{a[1], a[0]}

	ra, err := svc.List(context.Background(), Request{Filters: a, Limit: 100})
	require.NoError(t, err)
	rb, err := svc.List(context.Background(), Request{Filters: b, Limit: 100})
	require.NoError(t, err)

	assert.Equal(t, ra.TotalCount, rb.TotalCount)
	for _, it := range ra.Items {
		if it.Size != "M" || it.Price < 100 {
			t.Errorf("Unexpected item %+v", it)
		}
	}
}

func TestList_EmptyCollection(t *testing.T) {
	coll := &memCollection{}
	svc := New[garment](coll, DefaultOptions())

	res, err := svc.List(context.Background(), Request{Page: 3})
	require.NoError(t, err)

	assert.NotNil(t, res.Items)
	assert.Empty(t, res.Items)
	assert.Equal(t, 0, res.TotalPages)
	assert.False(t, res.HasNextPage)
	assert.False(t, res.HasPrevPage)
	if coll.finds != 0 {
		t.Errorf("Expected no fetch for an empty match set, got %d", coll.finds)
	}
}

func TestList_StorageFailure(t *testing.T) {
	boom := errors.New("connection refused")

	for _, coll := range []*memCollection{
		{items: newGarments(3), countErr: boom},
		{items: newGarments(3), findErr: boom},
	} {
		res, err := New[garment](coll, DefaultOptions()).List(context.Background(), Request{})
		assert.Nil(t, res)

		var sf *StorageFailure
		require.ErrorAs(t, err, &sf)
		assert.ErrorIs(t, err, boom)
		assert.False(t, IsCancellationFailure(err))
	}
}

func TestList_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := New[garment](&memCollection{items: newGarments(3)}, DefaultOptions()).List(ctx, Request{})
	assert.Nil(t, res)
	assert.True(t, IsCancellationFailure(err))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestList_TimeoutIsCancellation(t *testing.T) {
	coll := &memCollection{items: newGarments(3), delay: time.Second}
	svc := New[garment](coll, Options{Timeout: 20 * time.Millisecond})

	_, err := svc.List(context.Background(), Request{})
	assert.True(t, IsCancellationFailure(err))
	assert.False(t, IsStorageFailure(err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		total     int64
		page      int
		limit     int
		wantPages int
		wantNext  bool
		wantPrev  bool
	}{
		{0, 1, 10, 0, false, false},
		{0, 2, 10, 0, false, false},
		{1, 1, 10, 1, false, false},
		{10, 1, 10, 1, false, false},
		{11, 1, 10, 2, true, false},
		{11, 2, 10, 2, false, true},
		{25, math.MaxInt, 10, 3, false, true},
	}

	for _, tt := range tests {
		res := Paginate([]int{}, tt.total, tt.page, tt.limit)
		if res.TotalPages != tt.wantPages || res.HasNextPage != tt.wantNext || res.HasPrevPage != tt.wantPrev {
			t.Errorf("Paginate(total=%d, page=%d, limit=%d) = pages %d next %v prev %v",
				tt.total, tt.page, tt.limit, res.TotalPages, res.HasNextPage, res.HasPrevPage)
		}
	}
}

func TestMap(t *testing.T) {
	res := Paginate([]garment{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}}, 12, 2, 2)
	names := Map(res, func(g garment) string { return g.Name })

	assert.Equal(t, []string{"a", "b"}, names.Items)
	assert.Equal(t, res.TotalPages, names.TotalPages)
	assert.Equal(t, res.HasNextPage, names.HasNextPage)
}
