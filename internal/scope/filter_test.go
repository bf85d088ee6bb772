package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePageSubstitutesDefaults(t *testing.T) {
	cases := []struct {
		name      string
		page      int
		limit     int
		wantPage  int
		wantLimit int
	}{
		{"both valid", 3, 25, 3, 25},
		{"zero page", 0, 25, 1, 25},
		{"negative page", -4, 25, 1, 25},
		{"zero limit", 3, 0, 3, 10},
		{"negative limit", 3, -1, 3, 10},
		{"both bad", 0, 0, 1, 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := NormalizePage(tc.page, tc.limit)
			assert.Equal(t, tc.wantPage, p.Page)
			assert.Equal(t, tc.wantLimit, p.Limit)
		})
	}
}

func TestPageOffset(t *testing.T) {
	assert.Equal(t, 0, NormalizePage(1, 10).Offset())
	assert.Equal(t, 10, NormalizePage(2, 10).Offset())
	assert.Equal(t, 50, NormalizePage(6, 10).Offset())
}

func TestLastPage(t *testing.T) {
	p := NormalizePage(1, 10)
	assert.Equal(t, 0, p.LastPage(0))
	assert.Equal(t, 1, p.LastPage(1))
	assert.Equal(t, 1, p.LastPage(10))
	assert.Equal(t, 2, p.LastPage(11))
	assert.Equal(t, 3, p.LastPage(25))
}

func TestFilterSkipsAbsentInputs(t *testing.T) {
	f := NewFilter().
		Search("").
		Search("   ").
		RoleName("").
		Group(nil)
	assert.Empty(t, f.terms, "absent inputs must contribute no term")
}

func TestFilterAccumulatesIndependentTerms(t *testing.T) {
	group := uint(4)
	f := NewFilter().
		ActiveOnly().
		Search("maria").
		RoleName("TREASURER").
		Group(&group)
	assert.Len(t, f.terms, 4)

	// The search disjunction stays inside one grouped term
	assert.Contains(t, f.terms[1].query, "OR")
	assert.Equal(t, []any{"%maria%", "%maria%"}, f.terms[1].args)
}

func TestSearchIsLowercased(t *testing.T) {
	f := NewFilter().Search("  MaRia ")
	assert.Equal(t, []any{"%maria%", "%maria%"}, f.terms[0].args)
}
