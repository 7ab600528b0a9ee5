package shared_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"tourly/shared"
	"tourly/shared/dto"
)

func TestConvertStringToBool(t *testing.T) {
	assert.Nil(t, shared.ConvertStringToBool(""))
	assert.Nil(t, shared.ConvertStringToBool("not-a-bool"))

	yes := shared.ConvertStringToBool("true")
	if assert.NotNil(t, yes) {
		assert.True(t, *yes)
	}

	no := shared.ConvertStringToBool("false")
	if assert.NotNil(t, no) {
		assert.False(t, *no)
	}
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name  string
		total int
		limit int
		want  int
	}{
		{name: "empty result is one page", total: 0, limit: 10, want: 1},
		{name: "exact division", total: 20, limit: 10, want: 2},
		{name: "remainder adds a page", total: 21, limit: 10, want: 3},
		{name: "zero limit is one page", total: 50, limit: 0, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

func TestTransformFields(t *testing.T) {
	people := 4

	payload := struct {
		Title     string          `json:"title"`
		People    *int            `json:"number_of_people"`
		Price     decimal.Decimal `json:"price"`
		Skipped   string          `json:"-"`
		Untouched string          `json:"untouched"`
	}{
		Title:   "Island Hopping",
		People:  &people,
		Skipped: "never patched",
	}

	fields := shared.TransformFields(payload)

	assert.Equal(t, "Island Hopping", fields["title"])
	assert.Equal(t, &people, fields["number_of_people"])

	// Zero values and dash-tagged fields stay out of the patch.
	assert.NotContains(t, fields, "price")
	assert.NotContains(t, fields, "-")
	assert.NotContains(t, fields, "untouched")
	assert.Len(t, fields, 2)
}

func TestFilterByID(t *testing.T) {
	filter := shared.FilterByID("abc-123", "id")

	assert.Len(t, filter.Filters, 1)
	assert.Equal(t, "id", filter.Filters[0].Field)
	assert.Equal(t, "abc-123", filter.Filters[0].Value)
	assert.Equal(t, dto.FilterOperatorEq, filter.Filters[0].Operator)
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "booking:get:abc", shared.BuildCacheKey("booking:get", "abc"))
	assert.Equal(t, "tour", shared.BuildCacheKey("tour"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 2, Limit: 10, SortBy: "created_at", SortDir: "desc"}

	filter := dto.FilterGroup{}
	filter.Add("status", dto.FilterOperatorEq, "pending")

	key := shared.BuildCacheKeyWithQuery("booking:gets", params, filter)
	same := shared.BuildCacheKeyWithQuery("booking:gets", params, filter)

	assert.Equal(t, key, same, "identical queries must share a cache key")

	other := shared.BuildCacheKeyWithQuery("booking:gets", dto.QueryParams{Page: 3, Limit: 10}, filter)
	assert.NotEqual(t, key, other)
}
