/*
Package order holds the Order aggregate, its line items and lifecycle.

Order is the consistency boundary for line items: items are only
reachable through the aggregate, and every mutation re-checks the
Pending-only modification rule. Lifecycle transitions follow a strict
chain Pending -> Confirmed -> Processing -> Shipped -> Delivered, with
Cancelled reachable from every status except Delivered and Cancelled.
*/
package order

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"ordermanagement/domain/customer"
	"ordermanagement/domain/product"
	"ordermanagement/domain/shared"
)

// Order aggregate root. Status transitions raise StatusChangedEvent;
// creation raises CreatedEvent. Events accumulate until PullEvents.
type Order struct {
	id              string
	orderNumber     string
	customerID      string
	status          Status
	orderDate       time.Time
	shippedDate     *time.Time
	deliveredDate   *time.Time
	shippingAddress string
	notes           string
	items           []*OrderItem
	createdAt       time.Time
	updatedAt       time.Time

	events []shared.DomainEvent
}

// OrderItem is a line of an order. The unit price is snapshotted from
// the product at add time; later product price changes do not affect it.
type OrderItem struct {
	id          string
	productID   string
	productName string
	quantity    int
	unitPrice   shared.Money
}

func newOrderItem(p *product.Product, quantity int) (*OrderItem, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if !p.IsInStock(quantity) {
		return nil, NewInsufficientStockError(p.Name())
	}
	return &OrderItem{
		id:          uuid.New().String(),
		productID:   p.ID(),
		productName: p.Name(),
		quantity:    quantity,
		unitPrice:   p.Price(),
	}, nil
}

func (i *OrderItem) ID() string              { return i.id }
func (i *OrderItem) ProductID() string       { return i.productID }
func (i *OrderItem) ProductName() string     { return i.productName }
func (i *OrderItem) Quantity() int           { return i.quantity }
func (i *OrderItem) UnitPrice() shared.Money { return i.unitPrice }

// TotalPrice is unit price times quantity.
func (i *OrderItem) TotalPrice() shared.Money { return i.unitPrice.Multiply(i.quantity) }

// NewOrder creates a Pending order for the customer. The order number is
// allocated by the caller (see UniqueOrderNumber); shippingAddress and
// notes are optional until confirmation.
func NewOrder(c *customer.Customer, orderNumber, shippingAddress, notes string) (*Order, error) {
	if c == nil {
		return nil, ErrNilCustomer
	}

	now := time.Now().UTC()
	o := &Order{
		id:              uuid.New().String(),
		orderNumber:     orderNumber,
		customerID:      c.ID(),
		status:          StatusPending,
		orderDate:       now,
		shippingAddress: shippingAddress,
		notes:           notes,
		createdAt:       now,
		updatedAt:       now,
	}
	o.record(NewCreatedEvent(o.id, o.customerID))
	return o, nil
}

// AddOrderItem adds quantity of the product, merging into an existing
// line for the same product. Stock is checked against the merged total,
// and every line must share one currency.
func (o *Order) AddOrderItem(p *product.Product, quantity int) error {
	if o.status != StatusPending {
		return ErrNotModifiable
	}
	if p == nil {
		return ErrNilProduct
	}
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if len(o.items) > 0 && o.items[0].unitPrice.Currency() != p.Price().Currency() {
		return ErrMixedCurrencies
	}

	for _, item := range o.items {
		if item.productID == p.ID() {
			newQuantity := item.quantity + quantity
			if !p.IsInStock(newQuantity) {
				return NewInsufficientStockError(p.Name())
			}
			item.quantity = newQuantity
			o.touch()
			return nil
		}
	}

	item, err := newOrderItem(p, quantity)
	if err != nil {
		return err
	}
	o.items = append(o.items, item)
	o.touch()
	return nil
}

// RemoveOrderItem removes the line for productID. Removing an absent
// product is not an error.
func (o *Order) RemoveOrderItem(productID string) error {
	if o.status != StatusPending {
		return ErrNotModifiable
	}
	for idx, item := range o.items {
		if item.productID == productID {
			o.items = append(o.items[:idx], o.items[idx+1:]...)
			o.touch()
			return nil
		}
	}
	return nil
}

// UpdateOrderItemQuantity sets the quantity of an existing line. A
// quantity of zero or less removes the line instead.
func (o *Order) UpdateOrderItemQuantity(p *product.Product, newQuantity int) error {
	if o.status != StatusPending {
		return ErrNotModifiable
	}
	if p == nil {
		return ErrNilProduct
	}
	if newQuantity <= 0 {
		return o.RemoveOrderItem(p.ID())
	}
	for _, item := range o.items {
		if item.productID == p.ID() {
			if !p.IsInStock(newQuantity) {
				return NewInsufficientStockError(p.Name())
			}
			item.quantity = newQuantity
			o.touch()
			return nil
		}
	}
	return ErrItemNotFound
}

// ValidateForConfirmation checks the confirmation preconditions without
// changing state: at least one item, a shipping address, and stock for
// every line. Products are supplied by the caller keyed by product id.
func (o *Order) ValidateForConfirmation(products map[string]*product.Product) error {
	if len(o.items) == 0 {
		return ErrEmptyOrder
	}
	if o.shippingAddress == "" {
		return ErrShippingAddressRequired
	}
	for _, item := range o.items {
		p, ok := products[item.productID]
		if !ok {
			return shared.NewDomainError(ErrInsufficientStock, "order", item.productID,
				fmt.Sprintf("Insufficient stock for product %s", item.productName))
		}
		if !p.IsInStock(item.quantity) {
			return NewInsufficientStockError(p.Name())
		}
	}
	return nil
}

// Confirm moves Pending -> Confirmed.
func (o *Order) Confirm() error {
	if o.status != StatusPending {
		return NewInvalidStateError("confirm", o.status)
	}
	if len(o.items) == 0 {
		return shared.NewDomainError(ErrEmptyOrder, "order", o.id, "Cannot confirm empty order")
	}
	o.transition(StatusConfirmed)
	return nil
}

// StartProcessing moves Confirmed -> Processing.
func (o *Order) StartProcessing() error {
	if o.status != StatusConfirmed {
		return NewInvalidStateError("process", o.status)
	}
	o.transition(StatusProcessing)
	return nil
}

// Ship moves Processing -> Shipped. A zero shippedDate means now.
func (o *Order) Ship(shippedDate time.Time) error {
	if o.status != StatusProcessing {
		return NewInvalidStateError("ship", o.status)
	}
	if shippedDate.IsZero() {
		shippedDate = time.Now().UTC()
	}
	o.shippedDate = &shippedDate
	o.transition(StatusShipped)
	return nil
}

// Deliver moves Shipped -> Delivered. A zero deliveredDate means now.
func (o *Order) Deliver(deliveredDate time.Time) error {
	if o.status != StatusShipped {
		return NewInvalidStateError("deliver", o.status)
	}
	if deliveredDate.IsZero() {
		deliveredDate = time.Now().UTC()
	}
	o.deliveredDate = &deliveredDate
	o.transition(StatusDelivered)
	return nil
}

// Cancel moves any non-terminal status to Cancelled.
func (o *Order) Cancel() error {
	if o.status == StatusDelivered {
		return shared.NewDomainError(ErrInvalidStateTransition, "order", o.id,
			"Cannot cancel delivered order")
	}
	if o.status == StatusCancelled {
		return shared.NewDomainError(ErrInvalidStateTransition, "order", o.id,
			"Order is already cancelled")
	}
	o.transition(StatusCancelled)
	return nil
}

// UpdateShippingAddress replaces the shipping address. Not allowed once
// the order shipped.
func (o *Order) UpdateShippingAddress(shippingAddress string) error {
	if o.status == StatusShipped || o.status == StatusDelivered {
		return shared.NewDomainError(ErrInvalidStateTransition, "order", o.id,
			"Cannot update shipping address for shipped/delivered order")
	}
	o.shippingAddress = shippingAddress
	o.touch()
	return nil
}

// UpdateNotes replaces the free-form notes. Allowed in any status.
func (o *Order) UpdateNotes(notes string) {
	o.notes = notes
	o.touch()
}

// CanBeModified reports whether items may still be changed.
func (o *Order) CanBeModified() bool { return o.status == StatusPending }

// CanBeCancelled reports whether Cancel would succeed.
func (o *Order) CanBeCancelled() bool {
	return o.status != StatusDelivered && o.status != StatusCancelled
}

// TotalAmount sums the line totals. An empty order totals to zero USD.
func (o *Order) TotalAmount() shared.Money {
	if len(o.items) == 0 {
		return shared.ZeroMoney("USD")
	}
	total := shared.ZeroMoney(o.items[0].unitPrice.Currency())
	for _, item := range o.items {
		// Lines share one currency, enforced in AddOrderItem.
		total, _ = total.Add(item.TotalPrice())
	}
	return total
}

// TotalItems sums the quantities across all lines.
func (o *Order) TotalItems() int {
	total := 0
	for _, item := range o.items {
		total += item.quantity
	}
	return total
}

// Summary renders a single-line description, e.g.
// "ORD-20260301-4821: 3 items, Total: 59.97 USD, Status: Pending".
func (o *Order) Summary() string {
	count := o.TotalItems()
	itemText := "items"
	if count == 1 {
		itemText = "item"
	}
	return fmt.Sprintf("%s: %d %s, Total: %s, Status: %s",
		o.orderNumber, count, itemText, o.TotalAmount(), o.status)
}

func (o *Order) ID() string              { return o.id }
func (o *Order) OrderNumber() string     { return o.orderNumber }
func (o *Order) CustomerID() string      { return o.customerID }
func (o *Order) Status() Status          { return o.status }
func (o *Order) OrderDate() time.Time    { return o.orderDate }
func (o *Order) ShippingAddress() string { return o.shippingAddress }
func (o *Order) Notes() string           { return o.notes }
func (o *Order) CreatedAt() time.Time    { return o.createdAt }
func (o *Order) UpdatedAt() time.Time    { return o.updatedAt }

// ShippedDate is nil until the order ships.
func (o *Order) ShippedDate() *time.Time { return o.shippedDate }

// DeliveredDate is nil until the order is delivered.
func (o *Order) DeliveredDate() *time.Time { return o.deliveredDate }

// Items returns the lines in insertion order. The slice is a copy; the
// items themselves are shared and must not be mutated by callers.
func (o *Order) Items() []*OrderItem {
	items := make([]*OrderItem, len(o.items))
	copy(items, o.items)
	return items
}

// PullEvents drains and returns the buffered domain events.
func (o *Order) PullEvents() []shared.DomainEvent {
	events := o.events
	o.events = nil
	return events
}

func (o *Order) record(event shared.DomainEvent) {
	o.events = append(o.events, event)
}

func (o *Order) transition(next Status) {
	previous := o.status
	o.status = next
	o.touch()
	o.record(NewStatusChangedEvent(o.id, previous, next))
}

func (o *Order) touch() {
	o.updatedAt = time.Now().UTC()
}

// ItemReconstructionDTO rebuilds an order line from storage.
type ItemReconstructionDTO struct {
	ID          string
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   shared.Money
}

// ReconstructionDTO rebuilds an order from storage. Repository use only.
type ReconstructionDTO struct {
	ID              string
	OrderNumber     string
	CustomerID      string
	Status          Status
	OrderDate       time.Time
	ShippedDate     *time.Time
	DeliveredDate   *time.Time
	ShippingAddress string
	Notes           string
	Items           []ItemReconstructionDTO
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// RebuildFromDTO reconstructs the aggregate without re-running creation
// validation and without raising events. Repository use only.
func RebuildFromDTO(dto ReconstructionDTO) *Order {
	items := make([]*OrderItem, 0, len(dto.Items))
	for _, it := range dto.Items {
		items = append(items, &OrderItem{
			id:          it.ID,
			productID:   it.ProductID,
			productName: it.ProductName,
			quantity:    it.Quantity,
			unitPrice:   it.UnitPrice,
		})
	}
	return &Order{
		id:              dto.ID,
		orderNumber:     dto.OrderNumber,
		customerID:      dto.CustomerID,
		status:          dto.Status,
		orderDate:       dto.OrderDate,
		shippedDate:     dto.ShippedDate,
		deliveredDate:   dto.DeliveredDate,
		shippingAddress: dto.ShippingAddress,
		notes:           dto.Notes,
		items:           items,
		createdAt:       dto.CreatedAt,
		updatedAt:       dto.UpdatedAt,
	}
}
