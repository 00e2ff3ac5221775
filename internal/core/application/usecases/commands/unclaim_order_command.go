package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrUnclaimOrderCommandIsNotConstructed = errors.New(
		"UnclaimOrderCommand must be created via NewUnclaimOrderCommand constructor",
	)
)

// UnclaimOrderCommand represents a picker's request to give back a claimed
// order, returning it to the shared queue.
type UnclaimOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	pickerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewUnclaimOrderCommand creates a command for a picker to release an order.
func NewUnclaimOrderCommand(orderID kernel.UUID, pickerID kernel.UUID) (UnclaimOrderCommand, error) {
	command := UnclaimOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setPickerID(pickerID),
	); err != nil {
		return UnclaimOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUnclaimOrderCommandIsNotConstructed if validation fails.
func (c UnclaimOrderCommand) Validate() error {
	return c.guard.Validate(ErrUnclaimOrderCommandIsNotConstructed)
}

// OrderID returns the order being released.
func (c UnclaimOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// PickerID returns the picker releasing the order.
func (c UnclaimOrderCommand) PickerID() kernel.UUID {
	return c.pickerID
}

func (c *UnclaimOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UnclaimOrderCommand) setPickerID(pickerID kernel.UUID) error {
	if err := pickerID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("pickerID is invalid", err)
	}

	c.pickerID = pickerID
	return nil
}
