package order

import "context"

// EmailService is the outbound notification port. Implementations live
// in infrastructure; sending is best effort and must never block an
// order operation on failure.
type EmailService interface {
	SendOrderConfirmation(ctx context.Context, toEmail, customerName, orderNumber, totalAmount string) error
	SendOrderStatusUpdate(ctx context.Context, toEmail, customerName, orderNumber, newStatus string) error
}
