package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
		"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
	)
)

// UpdateOrderStatusCommand represents a request to advance an order along
// the fulfillment lifecycle: finish picking, start or finish packing, ship,
// or push a stock-starved order into Backorder. Claiming, unclaiming, and
// cancellation have their own commands and are not reachable from here.
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	target   order.Status
	packerID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand creates a command to move an order to the
// target status. packerID is required exactly when the target is Packing;
// it identifies who packs the order.
func NewUpdateOrderStatusCommand(
	orderID kernel.UUID,
	target order.Status,
	packerID *kernel.UUID,
) (UpdateOrderStatusCommand, error) {
	command := UpdateOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setTarget(target),
		command.setPackerID(target, packerID),
	); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdateOrderStatusCommandIsNotConstructed if validation fails.
func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

// OrderID returns the order being advanced.
func (c UpdateOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the requested status.
func (c UpdateOrderStatusCommand) Target() order.Status {
	return c.target
}

// PackerID returns the packer for a Packing transition, or nil.
func (c UpdateOrderStatusCommand) PackerID() *kernel.UUID {
	return c.packerID
}

func (c *UpdateOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateOrderStatusCommand) setTarget(target order.Status) error {
	switch target {
	case order.Picked, order.Packing, order.Packed, order.Shipped, order.Backorder:
		c.target = target
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"target is invalid",
			fmt.Errorf("%s is not reachable through a status update", target),
		)
	}
}

func (c *UpdateOrderStatusCommand) setPackerID(target order.Status, packerID *kernel.UUID) error {
	if target != order.Packing {
		c.packerID = packerID
		return nil
	}

	if packerID == nil {
		return errs.NewValueIsRequiredError("packerID")
	}
	if err := packerID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("packerID is invalid", err)
	}

	c.packerID = packerID
	return nil
}
