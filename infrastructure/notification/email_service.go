package notification

import (
	"context"

	"go.uber.org/zap"

	appOrder "ordermanagement/application/order"
)

// LoggingEmailService writes the emails it would send to the log. It
// stands in for a real mail provider in development and tests.
type LoggingEmailService struct {
	logger *zap.Logger
}

// NewLoggingEmailService creates an email service backed by the log.
func NewLoggingEmailService(logger *zap.Logger) *LoggingEmailService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoggingEmailService{logger: logger}
}

func (s *LoggingEmailService) SendOrderConfirmation(ctx context.Context, toEmail, customerName, orderNumber, totalAmount string) error {
	s.logger.Info("sending order confirmation email",
		zap.String("to", toEmail),
		zap.String("customer", customerName),
		zap.String("order_number", orderNumber),
		zap.String("total", totalAmount))
	return nil
}

func (s *LoggingEmailService) SendOrderStatusUpdate(ctx context.Context, toEmail, customerName, orderNumber, newStatus string) error {
	s.logger.Info("sending order status update email",
		zap.String("to", toEmail),
		zap.String("customer", customerName),
		zap.String("order_number", orderNumber),
		zap.String("status", newStatus))
	return nil
}

var _ appOrder.EmailService = (*LoggingEmailService)(nil)
