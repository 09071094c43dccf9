package listing

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type garmentFilter struct {
	Category    uint    `query:"category" column:"category_id"`
	Size        string  `query:"size" enum:"XS|S|M|Free Size"`
	IsAvailable bool    `query:"isAvailable" column:"is_available"`
	MinPrice    float64 `query:"minPrice" column:"price" match:"gte"`
	MaxPrice    float64 `query:"maxPrice" column:"price" match:"lte"`
	Search      string  `query:"search" column:"name,brand" match:"search"`
}

type ownedFilter struct {
	User   uint   `query:"user" column:"user_id" required:"true"`
	Status string `query:"status"`
}

var garmentSortable = map[string]string{
	"price":     "price",
	"createdAt": "created_at",
	"name":      "name",
}

func TestParseQuery_Filters(t *testing.T) {
	values := url.Values{
		"page":        {"2"},
		"limit":       {"25"},
		"category":    {"7"},
		"size":        {"Free Size"},
		"isAvailable": {"true"},
		"minPrice":    {"10.5"},
		"search":      {"silk"},
	}

	var filter garmentFilter
	req, warnings, err := ParseQuery(values, &filter, garmentSortable)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Equal(t, 2, req.Page)
	assert.Equal(t, 25, req.Limit)
	assert.Equal(t, []Condition{
		{Fields: []string{"category_id"}, Op: OpEqual, Value: uint64(7)},
		{Fields: []string{"size"}, Op: OpEqual, Value: "Free Size"},
		{Fields: []string{"is_available"}, Op: OpEqual, Value: true},
		{Fields: []string{"price"}, Op: OpGTE, Value: 10.5},
		{Fields: []string{"name", "brand"}, Op: OpContains, Value: "silk"},
	}, req.Filters)

	assert.Equal(t, uint(7), filter.Category)
	assert.Equal(t, "silk", filter.Search)
	assert.True(t, filter.IsAvailable)
}

func TestParseQuery_MalformedOptionalTermsAreDropped(t *testing.T) {
	values := url.Values{
		"category": {"abc"},
		"size":     {"XXXL"},
		"maxPrice": {"cheap"},
		"search":   {"cotton"},
	}

	req, warnings, err := ParseQuery(values, &garmentFilter{}, garmentSortable)
	require.NoError(t, err)

	require.Len(t, req.Filters, 1)
	assert.Equal(t, OpContains, req.Filters[0].Op)

	fields := make([]string, 0, len(warnings))
	for _, w := range warnings {
		fields = append(fields, w.Field)
	}
	assert.ElementsMatch(t, []string{"category", "size", "maxPrice"}, fields)
}

func TestParseQuery_RequiredTerm(t *testing.T) {
	tests := []struct {
		name    string
		values  url.Values
		wantErr bool
	}{
		{"present", url.Values{"user": {"3"}}, false},
		{"missing", url.Values{"status": {"pending"}}, true},
		{"malformed", url.Values{"user": {"me"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseQuery(tt.values, &ownedFilter{}, nil)
			if tt.wantErr {
				assert.True(t, IsValidationFailure(err), "Expected validation failure, got %v", err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestParseQuery_NonNumericPaginationFallsBack(t *testing.T) {
	req, _, err := ParseQuery(url.Values{"page": {"two"}, "limit": {""}}, nil, nil)
	require.NoError(t, err)

	svc := New[garment](&memCollection{}, DefaultOptions())
	norm := svc.Normalize(req)
	assert.Equal(t, 1, norm.Page)
	assert.Equal(t, DefaultLimit, norm.Limit)
}

func TestParseQuery_Sort(t *testing.T) {
	tests := []struct {
		name     string
		values   url.Values
		want     []SortField
		warnings int
	}{
		{"none", url.Values{}, nil, 0},
		{"ascending and descending", url.Values{"sort": {"price,-createdAt"}}, []SortField{{Field: "price"}, {Field: "created_at", Desc: true}}, 0},
		{"legacy order", url.Values{"sort": {"name"}, "order": {"DESC"}}, []SortField{{Field: "name", Desc: true}}, 0},
		{"unknown field", url.Values{"sort": {"password,name"}}, []SortField{{Field: "name"}}, 1},
		{"duplicate", url.Values{"sort": {"price,-price"}}, []SortField{{Field: "price"}}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, warnings, err := ParseQuery(tt.values, nil, garmentSortable)
			require.NoError(t, err)
			assert.Equal(t, tt.want, req.Sort)
			assert.Len(t, warnings, tt.warnings)
		})
	}
}
