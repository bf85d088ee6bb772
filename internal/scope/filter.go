package scope

import (
	"strings" // Search pattern normalization

	"gorm.io/gorm" // GORM ORM library
)

// term is one independent conjunctive predicate.
type term struct {
	query string // SQL fragment with placeholders
	args  []any  // Placeholder arguments
}

// Filter accumulates independent predicate terms and folds them with AND when
// applied. Absent inputs never contribute a term, so a vacuous always-true or
// always-false predicate cannot appear in the composed query.
type Filter struct {
	terms []term
}

// NewFilter returns an empty filter.
func NewFilter() *Filter {
	return &Filter{}
}

// ActiveOnly constrains the listing to active users.
func (f *Filter) ActiveOnly() *Filter {
	f.terms = append(f.terms, term{query: "is_active = ?", args: []any{true}})
	return f
}

// Search adds a case-insensitive match against full name OR email. The two
// disjuncts form a single grouped term so the OR never leaks into the
// surrounding conjunction. Empty text adds nothing.
func (f *Filter) Search(text string) *Filter {
	text = strings.TrimSpace(text)
	if text == "" {
		return f
	}
	pattern := "%" + strings.ToLower(text) + "%"
	f.terms = append(f.terms, term{
		query: "(LOWER(full_name) LIKE ? OR LOWER(email) LIKE ?)",
		args:  []any{pattern, pattern},
	})
	return f
}

// RoleName filters by role name via a subquery against the role reference
// table. Empty name adds nothing.
func (f *Filter) RoleName(name string) *Filter {
	if name == "" {
		return f
	}
	f.terms = append(f.terms, term{
		query: "role_id IN (SELECT id FROM roles WHERE name = ?)",
		args:  []any{name},
	})
	return f
}

// Group constrains to one group. A nil id adds nothing, which is how an
// unconstrained scope is expressed.
func (f *Filter) Group(id *uint) *Filter {
	if id == nil {
		return f
	}
	f.terms = append(f.terms, term{query: "group_id = ?", args: []any{*id}})
	return f
}

// Apply folds the accumulated terms onto the query with AND.
func (f *Filter) Apply(db *gorm.DB) *gorm.DB {
	for _, t := range f.terms {
		db = db.Where(t.query, t.args...)
	}
	return db
}

// Default pagination values, substituted for missing or non-positive input.
const (
	DefaultPage  = 1  // First page
	DefaultLimit = 10 // Records per page
)

// Page holds normalized pagination parameters.
type Page struct {
	Page  int // 1-based page number
	Limit int // Records per page
}

// NormalizePage substitutes defaults for non-positive page or limit values.
// Bad pagination input is never an error on this path.
func NormalizePage(page, limit int) Page {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	return Page{Page: page, Limit: limit}
}

// Offset returns the number of records to skip.
func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

// LastPage returns ceil(total/limit); 0 when there are no records.
func (p Page) LastPage(total int64) int {
	return int((total + int64(p.Limit) - 1) / int64(p.Limit))
}
