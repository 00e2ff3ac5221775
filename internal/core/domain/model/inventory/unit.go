package inventory

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrUnitIsNotConstructed is returned when a Unit instance was not created
	// through the NewUnit or RestoreUnit factory methods.
	ErrUnitIsNotConstructed = errors.New("Unit must be created via NewUnit or RestoreUnit")
)

// Unit is the stock record for one SKU in one bin. Reservations are held as
// a counter against on-hand quantity; available stock is the difference and
// can never go negative.
//
// Invariants:
//   - 0 <= reservedQuantity <= quantity
//   - Available() == quantity - reservedQuantity
//
// Reserve and Release must run under a database row lock so concurrent order
// creation and cancellation see a consistent counter.
type Unit struct {
	id               kernel.UUID
	sku              string
	binLocation      string
	quantity         int
	reservedQuantity int

	isConstructed bool
}

// NewUnit creates a stock record with no reservations.
func NewUnit(id kernel.UUID, sku string, binLocation string, quantity int) (*Unit, error) {
	unit := &Unit{
		isConstructed: true,
	}

	if err := errors.Join(
		unit.setID(id),
		unit.setSKU(sku),
		unit.setBinLocation(binLocation),
		unit.setQuantity(quantity),
	); err != nil {
		return nil, err
	}

	return unit, nil
}

// RestoreUnit reconstructs a stock record from persistence, re-checking the
// reservation bound.
func RestoreUnit(id kernel.UUID, sku string, binLocation string, quantity int, reservedQuantity int) (*Unit, error) {
	unit, err := NewUnit(id, sku, binLocation, quantity)
	if err != nil {
		return nil, err
	}
	if reservedQuantity < 0 || reservedQuantity > quantity {
		return nil, errs.NewValueIsOutOfRangeError("reservedQuantity", reservedQuantity, 0, quantity)
	}

	unit.reservedQuantity = reservedQuantity
	return unit, nil
}

// Validate ensures the Unit instance was properly constructed.
func (u *Unit) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUnitIsNotConstructed
	}
	return nil
}

// ID returns the stock record's unique identifier.
func (u *Unit) ID() kernel.UUID { return u.id }

// SKU returns the stock-keeping unit.
func (u *Unit) SKU() string { return u.sku }

// BinLocation returns the bin holding the stock.
func (u *Unit) BinLocation() string { return u.binLocation }

// Quantity returns the on-hand quantity.
func (u *Unit) Quantity() int { return u.quantity }

// ReservedQuantity returns how many units are held by open orders.
func (u *Unit) ReservedQuantity() int { return u.reservedQuantity }

// Available returns the quantity not held by any reservation.
func (u *Unit) Available() int { return u.quantity - u.reservedQuantity }

// Reserve holds the given quantity for an order. Fails with a conflict when
// the available stock is short; the caller decides whether that means a
// rejected order or a backorder.
func (u *Unit) Reserve(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}
	if quantity > u.Available() {
		return errs.NewConflictError(
			fmt.Sprintf("insufficient stock for %s at %s: requested %d, available %d",
				u.sku, u.binLocation, quantity, u.Available()),
		)
	}

	u.reservedQuantity += quantity
	return nil
}

// Release returns a previously held quantity to the available pool. Fails
// with a conflict when the release would exceed the held amount; a correct
// caller releases exactly what it reserved.
func (u *Unit) Release(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}
	if quantity > u.reservedQuantity {
		return errs.NewConflictError(
			fmt.Sprintf("cannot release %d units of %s at %s: only %d reserved",
				quantity, u.sku, u.binLocation, u.reservedQuantity),
		)
	}

	u.reservedQuantity -= quantity
	return nil
}

// Consume removes shipped stock. Both counters drop together: the units
// leave the building, so they are neither on hand nor reserved anymore.
// Only reserved stock can be consumed; shipping unreserved stock means the
// reservation bookkeeping is broken upstream.
func (u *Unit) Consume(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}
	if quantity > u.reservedQuantity {
		return errs.NewConflictError(
			fmt.Sprintf("cannot consume %d units of %s at %s: only %d reserved",
				quantity, u.sku, u.binLocation, u.reservedQuantity),
		)
	}

	u.quantity -= quantity
	u.reservedQuantity -= quantity
	return nil
}

func (u *Unit) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *Unit) setSKU(sku string) error {
	if sku == "" {
		return errs.NewValueIsRequiredError("sku")
	}
	u.sku = sku
	return nil
}

func (u *Unit) setBinLocation(binLocation string) error {
	if binLocation == "" {
		return errs.NewValueIsRequiredError("binLocation")
	}
	u.binLocation = binLocation
	return nil
}

func (u *Unit) setQuantity(quantity int) error {
	if quantity < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%d is negative", quantity),
		)
	}
	u.quantity = quantity
	return nil
}
