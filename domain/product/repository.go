package product

import "ordermanagement/domain/shared"

// Repository is the product persistence port.
type Repository interface {
	shared.Repository[*Product]
}
