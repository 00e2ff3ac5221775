package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var (
	ErrReleaseBackordersCommandIsNotConstructed = errors.New(
		"ReleaseBackordersCommand must be created via NewReleaseBackordersCommand constructor",
	)
)

// ReleaseBackordersCommand triggers a sweep over Backorder orders, trying
// to re-reserve stock for each and returning the successful ones to the
// Pending queue.
//
// Example:
//
//	cmd := NewReleaseBackordersCommand()
//	handler := NewReleaseBackordersCommandHandler(uowFactory)
//
//	// Run periodically as stock comes back in
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("backorder sweep failed: %v", err)
//	}
type ReleaseBackordersCommand struct {
	guard guard.ConstructorGuard
}

// NewReleaseBackordersCommand creates a command to sweep backorders.
// This is a parameterless command that processes all waiting orders.
func NewReleaseBackordersCommand() ReleaseBackordersCommand {
	command := ReleaseBackordersCommand{
		guard: guard.NewConstructorGuard(),
	}

	return command
}

// Validate ensures the command was created through the constructor.
// Returns ErrReleaseBackordersCommandIsNotConstructed if validation fails.
func (c *ReleaseBackordersCommand) Validate() error {
	return c.guard.Validate(ErrReleaseBackordersCommandIsNotConstructed)
}
