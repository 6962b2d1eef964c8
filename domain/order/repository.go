package order

import "ordermanagement/domain/shared"

// Repository is the order persistence port. Implementations persist the
// whole aggregate: saving an order saves its items.
type Repository interface {
	shared.Repository[*Order]
}
