package dto

const (
	FilterOperatorEq    = "eq"
	FilterOperatorNeq   = "neq"
	FilterOperatorIlike = "ilike"
	FilterOperatorIn    = "in"
	FilterOperatorGte   = "gte"
	FilterOperatorLte   = "lte"
	FilterOperatorIs    = "is"
)

// Filter is a single backend-agnostic query predicate. The gateway layer
// translates it into the store's filter syntax.
type Filter struct {
	Field    string
	Value    any
	Operator string `validate:"required,oneof=eq neq ilike in gte lte is"`
}

// FilterGroup is a conjunction of filters. An empty group matches everything.
type FilterGroup struct {
	Filters []Filter
}

func (f *FilterGroup) IsEmpty() bool {
	return len(f.Filters) == 0
}

func (f *FilterGroup) Add(field, operator string, value any) {
	f.Filters = append(f.Filters, Filter{
		Field:    field,
		Value:    value,
		Operator: operator,
	})
}
