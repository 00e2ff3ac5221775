package inventory

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// LedgerEntry is an append-only audit record of one reservation movement:
// a positive quantity for stock reserved, a negative quantity for stock
// released. Entries are never updated or deleted; summing the quantities for
// a SKU and bin reproduces the current reserved counter.
type LedgerEntry struct {
	id          kernel.UUID
	sku         string
	binLocation string
	quantity    int
	reason      string
	orderID     kernel.UUID
	createdAt   time.Time

	isConstructed bool
}

// Movement reasons recorded in the ledger.
const (
	ReasonReserved = "reserved"
	ReasonReleased = "released"
	ReasonConsumed = "consumed"
)

// NewLedgerEntry creates an audit record for one reservation movement on
// behalf of an order. The quantity may not be zero; zero movements carry no
// information.
func NewLedgerEntry(
	id kernel.UUID,
	sku string,
	binLocation string,
	quantity int,
	reason string,
	orderID kernel.UUID,
	createdAt time.Time,
) (*LedgerEntry, error) {
	entry := &LedgerEntry{
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		entry.setID(id),
		entry.setSKU(sku),
		entry.setBinLocation(binLocation),
		entry.setQuantity(quantity),
		entry.setReason(reason),
		entry.setOrderID(orderID),
	); err != nil {
		return nil, err
	}

	return entry, nil
}

// Validate ensures the LedgerEntry instance was properly constructed.
func (e *LedgerEntry) Validate() error {
	if e == nil || !e.isConstructed {
		return errors.New("LedgerEntry must be created via NewLedgerEntry")
	}
	return nil
}

// ID returns the entry's unique identifier.
func (e *LedgerEntry) ID() kernel.UUID { return e.id }

// SKU returns the stock-keeping unit the movement applies to.
func (e *LedgerEntry) SKU() string { return e.sku }

// BinLocation returns the bin the movement applies to.
func (e *LedgerEntry) BinLocation() string { return e.binLocation }

// Quantity returns the signed movement: positive for reserve, negative for
// release.
func (e *LedgerEntry) Quantity() int { return e.quantity }

// Reason returns why the movement happened.
func (e *LedgerEntry) Reason() string { return e.reason }

// OrderID returns the order that caused the movement.
func (e *LedgerEntry) OrderID() kernel.UUID { return e.orderID }

// CreatedAt returns when the movement was recorded.
func (e *LedgerEntry) CreatedAt() time.Time { return e.createdAt }

func (e *LedgerEntry) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.id = id
	return nil
}

func (e *LedgerEntry) setSKU(sku string) error {
	if sku == "" {
		return errs.NewValueIsRequiredError("sku")
	}
	e.sku = sku
	return nil
}

func (e *LedgerEntry) setBinLocation(binLocation string) error {
	if binLocation == "" {
		return errs.NewValueIsRequiredError("binLocation")
	}
	e.binLocation = binLocation
	return nil
}

func (e *LedgerEntry) setQuantity(quantity int) error {
	if quantity == 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("zero movement carries no information"),
		)
	}
	e.quantity = quantity
	return nil
}

func (e *LedgerEntry) setReason(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}
	e.reason = reason
	return nil
}

func (e *LedgerEntry) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("orderID is invalid", err)
	}
	e.orderID = orderID
	return nil
}
