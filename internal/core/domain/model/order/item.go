package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrItemIsNotConstructed is returned when an Item instance was not created
	// through the NewItem or RestoreItem factory methods.
	ErrItemIsNotConstructed = errors.New("Item must be created via NewItem or RestoreItem")
)

// ItemStatus represents the picking state of a single order line.
type ItemStatus int

const (
	// ItemStatusUnknown represents an invalid or undefined item status.
	ItemStatusUnknown ItemStatus = iota

	// ItemPending indicates the line has not been fully picked yet.
	ItemPending

	// ItemPicked indicates the picked quantity has reached the ordered quantity.
	ItemPicked
)

// String returns the human-readable name of the item status.
func (s ItemStatus) String() string {
	switch s {
	case ItemPending:
		return "Pending"
	case ItemPicked:
		return "Picked"
	default:
		return "Unknown"
	}
}

// Item is one SKU line within an order. It is owned exclusively by its Order:
// items are created atomically with the order and never independently.
//
// Invariants:
//   - pickedQuantity is always between 0 and quantity
//   - pickedQuantity == quantity implies the item is fully picked
//   - lineTotal = unitPrice * quantity, fixed at creation time
type Item struct {
	id             kernel.UUID
	sku            string
	name           string
	quantity       int
	pickedQuantity int
	binLocation    string
	unitPrice      kernel.Money
	lineTotal      kernel.Money
	status         ItemStatus

	isConstructed bool
}

// NewItem creates an order line for the given SKU. The display name, bin
// location, and unit price are denormalized from the product catalog at
// creation time so that later catalog changes do not rewrite history.
func NewItem(
	id kernel.UUID,
	sku string,
	name string,
	quantity int,
	binLocation string,
	unitPrice kernel.Money,
) (*Item, error) {
	item := &Item{
		status:        ItemPending,
		isConstructed: true,
	}

	if err := errors.Join(
		item.setID(id),
		item.setSKU(sku),
		item.setName(name),
		item.setQuantity(quantity),
		item.setBinLocation(binLocation),
	); err != nil {
		return nil, err
	}

	item.unitPrice = unitPrice
	item.lineTotal = unitPrice.Mul(quantity)
	return item, nil
}

// RestoreItem reconstructs an order line from persistence.
// Unlike NewItem it accepts picking progress and status, and re-checks the
// pickedQuantity invariant against the stored quantity.
func RestoreItem(
	id kernel.UUID,
	sku string,
	name string,
	quantity int,
	pickedQuantity int,
	binLocation string,
	unitPrice kernel.Money,
	lineTotal kernel.Money,
	status ItemStatus,
) (*Item, error) {
	item, err := NewItem(id, sku, name, quantity, binLocation, unitPrice)
	if err != nil {
		return nil, err
	}

	if pickedQuantity < 0 || pickedQuantity > quantity {
		return nil, errs.NewValueIsOutOfRangeError("pickedQuantity", pickedQuantity, 0, quantity)
	}

	item.pickedQuantity = pickedQuantity
	item.lineTotal = lineTotal
	item.status = status
	return item, nil
}

// Validate ensures the Item instance was properly constructed.
func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ID returns the item's unique identifier.
func (i *Item) ID() kernel.UUID {
	return i.id
}

// SKU returns the stock-keeping unit code for this line.
func (i *Item) SKU() string {
	return i.sku
}

// Name returns the display name denormalized at creation time.
func (i *Item) Name() string {
	return i.name
}

// Quantity returns the ordered quantity.
func (i *Item) Quantity() int {
	return i.quantity
}

// PickedQuantity returns how many units have been picked so far.
func (i *Item) PickedQuantity() int {
	return i.pickedQuantity
}

// BinLocation returns the source bin the line is picked from.
func (i *Item) BinLocation() string {
	return i.binLocation
}

// UnitPrice returns the per-unit price captured at creation time.
func (i *Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

// LineTotal returns unitPrice * quantity.
func (i *Item) LineTotal() kernel.Money {
	return i.lineTotal
}

// Status returns the picking state of the line.
func (i *Item) Status() ItemStatus {
	return i.status
}

// IsFullyPicked reports whether the picked quantity has reached the ordered
// quantity.
func (i *Item) IsFullyPicked() bool {
	return i.pickedQuantity >= i.quantity
}

// SetPickedQuantity records picking progress on the line.
// The quantity must stay within [0, quantity]; the item status follows the
// progress so that pickedQuantity == quantity always implies ItemPicked.
func (i *Item) SetPickedQuantity(quantity int) error {
	if quantity < 0 || quantity > i.quantity {
		return errs.NewValueIsOutOfRangeError("pickedQuantity", quantity, 0, i.quantity)
	}

	i.pickedQuantity = quantity
	if i.pickedQuantity == i.quantity {
		i.status = ItemPicked
	} else {
		i.status = ItemPending
	}
	return nil
}

// ResetPickedQuantity zeroes the picking progress on the line.
// Called when a skipped pick task is reverted or a pick is undone, so that
// item-level progress cannot drift from task state.
func (i *Item) ResetPickedQuantity() {
	i.pickedQuantity = 0
	i.status = ItemPending
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setSKU(sku string) error {
	if sku == "" {
		return errs.NewValueIsRequiredError("sku")
	}
	i.sku = sku
	return nil
}

func (i *Item) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	i.name = name
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setBinLocation(binLocation string) error {
	if binLocation == "" {
		return errs.NewValueIsRequiredError("binLocation")
	}
	i.binLocation = binLocation
	return nil
}
