package customer

import "time"

// CreateCustomerRequest carries the registration input.
type CreateCustomerRequest struct {
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	PhoneNumber string `json:"phone_number"`
}

// UpdateCustomerRequest carries a contact-info update.
type UpdateCustomerRequest struct {
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	PhoneNumber string `json:"phone_number"`
}

// SearchCustomersRequest carries the paged listing input.
type SearchCustomersRequest struct {
	SearchTerm string `form:"search_term"`
	PageNumber int    `form:"page_number,default=1"`
	PageSize   int    `form:"page_size,default=10"`
}

// CustomerResponse is the read model returned to callers.
type CustomerResponse struct {
	ID          string    `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
