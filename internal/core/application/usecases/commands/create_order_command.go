package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrOrderLinesAreRequired = errors.New("at least one order line is required")
)

// OrderLine is one requested SKU and quantity in an order creation request.
// Display name, bin, and price are resolved from the product catalog by the
// handler, never supplied by the client.
type OrderLine struct {
	sku      string
	quantity int
}

// NewOrderLine creates an order line request.
// The SKU must be non-empty and the quantity positive.
func NewOrderLine(sku string, quantity int) (OrderLine, error) {
	if sku == "" {
		return OrderLine{}, errs.NewValueIsRequiredError("sku")
	}
	if quantity <= 0 {
		return OrderLine{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}

	return OrderLine{sku: sku, quantity: quantity}, nil
}

// SKU returns the requested stock-keeping unit.
func (l OrderLine) SKU() string { return l.sku }

// Quantity returns the requested quantity.
func (l OrderLine) Quantity() int { return l.quantity }

// CreateOrderCommand represents a request to create a new fulfillment order.
// Carries the customer, the queue priority, the requested lines, and an
// optional discount. Totals are computed server-side from catalog prices.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	line, _ := NewOrderLine("SKU-1001", 2)
//	cmd, err := NewCreateOrderCommand(orderID, customerID, order.PriorityHigh, []OrderLine{line}, kernel.ZeroMoney())
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, catalog, pricing)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	customerID kernel.UUID
	priority   order.Priority
	lines      []OrderLine
	discount   kernel.Money

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new fulfillment order.
// Validates identifiers, priority, and that at least one line is present.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customerID kernel.UUID,
	priority order.Priority,
	lines []OrderLine,
	discount kernel.Money,
) (CreateOrderCommand, error) {
	command := CreateOrderCommand{
		discount: discount,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setCustomerID(customerID),
		command.setPriority(priority),
		command.setLines(lines),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the customer the order is fulfilled for.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// Priority returns the requested queue priority.
func (c CreateOrderCommand) Priority() order.Priority {
	return c.priority
}

// Lines returns the requested SKU lines.
func (c CreateOrderCommand) Lines() []OrderLine {
	return c.lines
}

// Discount returns the discount to apply to the order total.
func (c CreateOrderCommand) Discount() kernel.Money {
	return c.discount
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("customerID is invalid", err)
	}

	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setPriority(priority order.Priority) error {
	if err := priority.Validate(); err != nil {
		return err
	}

	c.priority = priority
	return nil
}

func (c *CreateOrderCommand) setLines(lines []OrderLine) error {
	if len(lines) == 0 {
		return ErrOrderLinesAreRequired
	}

	c.lines = lines
	return nil
}
