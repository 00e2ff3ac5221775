package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrClaimOrderCommandIsNotConstructed = errors.New(
		"ClaimOrderCommand must be created via NewClaimOrderCommand constructor",
	)
)

// ClaimOrderCommand represents a picker's request to take exclusive
// ownership of an order for picking.
//
// Example:
//
//	cmd, err := NewClaimOrderCommand(orderID, pickerID)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewClaimOrderCommandHandler(uowFactory, 5)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    // errs.ErrConflict: already claimed, not claimable, or picker at limit
//	    return err
//	}
type ClaimOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	pickerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewClaimOrderCommand creates a command for a picker to claim an order.
// Validates that both identifiers are valid UUIDs.
func NewClaimOrderCommand(orderID kernel.UUID, pickerID kernel.UUID) (ClaimOrderCommand, error) {
	command := ClaimOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setPickerID(pickerID),
	); err != nil {
		return ClaimOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrClaimOrderCommandIsNotConstructed if validation fails.
func (c ClaimOrderCommand) Validate() error {
	return c.guard.Validate(ErrClaimOrderCommandIsNotConstructed)
}

// OrderID returns the order being claimed.
func (c ClaimOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// PickerID returns the picker requesting the claim.
func (c ClaimOrderCommand) PickerID() kernel.UUID {
	return c.pickerID
}

func (c *ClaimOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ClaimOrderCommand) setPickerID(pickerID kernel.UUID) error {
	if err := pickerID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("pickerID is invalid", err)
	}

	c.pickerID = pickerID
	return nil
}
