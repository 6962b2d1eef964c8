package product

import (
	"strings"

	"github.com/shopspring/decimal"

	"ordermanagement/domain/shared"
)

// Field keys understood by the specification evaluators for products.
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldIsActive    = "is_active"
	FieldPriceAmount = "price_amount"
)

// ActiveOnly matches products currently offered.
func ActiveOnly() shared.Specification[*Product] {
	return shared.NewSpecification[*Product]().Where(FieldIsActive, shared.OpEqual, true)
}

// Search matches products whose name or description contains the term,
// case-insensitively. An empty term matches everything.
func Search(term string) shared.Specification[*Product] {
	spec := shared.NewSpecification[*Product]()
	if strings.TrimSpace(term) == "" {
		return spec
	}
	return spec.WhereAny(shared.OpContainsFold, term, FieldName, FieldDescription)
}

// Filter describes the optional product listing filters; zero values
// mean "no filter" and combine conjunctively without special-casing.
type Filter struct {
	SearchTerm string
	Category   string
	IsActive   *bool
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
}

// Filtered applies the filters conjunctively, without ordering or
// paging. Count queries use it directly.
func Filtered(f Filter) shared.Specification[*Product] {
	spec := Search(f.SearchTerm)

	if strings.TrimSpace(f.Category) != "" {
		spec = spec.Where(FieldCategory, shared.OpEqual, f.Category)
	}
	if f.IsActive != nil {
		spec = spec.Where(FieldIsActive, shared.OpEqual, *f.IsActive)
	}
	if f.MinPrice != nil {
		spec = spec.Where(FieldPriceAmount, shared.OpGreaterOrEqual, *f.MinPrice)
	}
	if f.MaxPrice != nil {
		spec = spec.Where(FieldPriceAmount, shared.OpLessOrEqual, *f.MaxPrice)
	}
	return spec
}

// SearchPage is the read-side listing: filters applied conjunctively,
// ordered alphabetically by name, paged. pageNumber and pageSize are
// validated by the caller.
func SearchPage(f Filter, pageNumber, pageSize int) (shared.Specification[*Product], error) {
	return Filtered(f).
		OrderBy(FieldName).
		Paginate((pageNumber-1)*pageSize, pageSize)
}
