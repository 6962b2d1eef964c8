package customer

import (
	"strings"

	"ordermanagement/domain/shared"
)

// Field keys understood by the specification evaluators for customers.
const (
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
	FieldEmail     = "email"
	FieldCreatedAt = "created_at"
)

// ByEmail matches the customer holding the given address, compared
// case-insensitively through normalization.
func ByEmail(email string) shared.Specification[*Customer] {
	return shared.NewSpecification[*Customer]().
		Where(FieldEmail, shared.OpEqual, strings.ToLower(strings.TrimSpace(email)))
}

// Search matches customers whose first name, last name or email contains
// the term, case-insensitively. An empty term matches everything.
func Search(term string) shared.Specification[*Customer] {
	spec := shared.NewSpecification[*Customer]()
	if strings.TrimSpace(term) == "" {
		return spec
	}
	return spec.WhereAny(shared.OpContainsFold, term, FieldFirstName, FieldLastName, FieldEmail)
}

// SearchPage is the read-side listing: optional search term, newest
// first, paged. pageNumber and pageSize are validated by the caller.
func SearchPage(term string, pageNumber, pageSize int) (shared.Specification[*Customer], error) {
	return Search(term).
		OrderByDescending(FieldCreatedAt).
		Paginate((pageNumber-1)*pageSize, pageSize)
}
