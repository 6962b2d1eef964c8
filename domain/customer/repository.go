package customer

import "ordermanagement/domain/shared"

// Repository is the customer persistence port.
type Repository interface {
	shared.Repository[*Customer]
}
