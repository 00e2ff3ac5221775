package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory methods. This ensures all
	// orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// Order represents one customer fulfillment request. It is the aggregate root
// that manages the fulfillment lifecycle from creation through picking,
// packing, and shipment.
//
// Order follows these invariants:
//   - total = subtotal + tax + shipping - discount, recomputed at creation
//     from per-item pricing, never client-supplied
//   - pickerID is non-nil exactly when the status requires a claim
//     (see Status.ValidateCanHavePicker)
//   - status transitions follow the state machine in Status
//   - terminal states (Shipped, Cancelled) are immutable afterwards
//
// The Order struct uses private fields to ensure encapsulation and maintains
// its invariants through validated methods.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// number is the human-readable order identifier, unique per order
	number string

	// customerID references the customer the order is fulfilled for
	customerID kernel.UUID

	// priority determines the position in the picking queue
	priority Priority

	// status represents the current state in the fulfillment lifecycle
	status Status

	// pickerID is the picker who claimed the order (nil if unclaimed)
	pickerID *kernel.UUID

	// packerID is the packer working the order (nil before packing)
	packerID *kernel.UUID

	// items are the SKU lines owned by this order
	items []*Item

	subtotal kernel.Money
	tax      kernel.Money
	shipping kernel.Money
	discount kernel.Money
	total    kernel.Money
	currency string

	createdAt   time.Time
	claimedAt   *time.Time
	pickedAt    *time.Time
	packedAt    *time.Time
	shippedAt   *time.Time
	cancelledAt *time.Time

	// isConstructed ensures the order was created via a factory method
	isConstructed bool
}

// GenerateNumber builds the human-readable order identifier from the order's
// UUID and creation date, e.g. "ORD-20260115-5A3F0B2C".
func GenerateNumber(id kernel.UUID, createdAt time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:8])
	return fmt.Sprintf("ORD-%s-%s", createdAt.Format("20060102"), suffix)
}

// NewOrder creates a new Order in Pending status with its items. This is the
// only way to create a valid new order, ensuring all business invariants hold.
//
// The monetary totals are computed here from the items' line totals and the
// supplied tax, shipping, and discount amounts:
//
//	total = subtotal + tax + shipping - discount
//
// Returns an error if any identifier, the priority, the currency, or the item
// list is invalid, or if the discount would drive the total negative.
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	priority Priority,
	currency string,
	items []*Item,
	tax kernel.Money,
	shipping kernel.Money,
	discount kernel.Money,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setPriority(priority),
		o.setCurrency(currency),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	o.number = GenerateNumber(id, createdAt)

	subtotal := kernel.ZeroMoney()
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal())
	}

	total, err := subtotal.Add(tax).Add(shipping).Sub(discount)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("discount is invalid", err)
	}

	o.subtotal = subtotal
	o.tax = tax
	o.shipping = shipping
	o.discount = discount
	o.total = total

	return o, nil
}

// RestoreOrder reconstructs an order from persistence, re-validating the
// status/picker consistency invariant. Timestamps are restored as stored.
func RestoreOrder(
	id kernel.UUID,
	number string,
	customerID kernel.UUID,
	priority Priority,
	status Status,
	pickerID *kernel.UUID,
	packerID *kernel.UUID,
	currency string,
	items []*Item,
	subtotal kernel.Money,
	tax kernel.Money,
	shipping kernel.Money,
	discount kernel.Money,
	total kernel.Money,
	createdAt time.Time,
	claimedAt, pickedAt, packedAt, shippedAt, cancelledAt *time.Time,
) (*Order, error) {
	o := &Order{
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setPriority(priority),
		o.setCurrency(currency),
		o.setItems(items),
		status.Validate(),
		status.ValidateCanHavePicker(pickerID != nil),
	); err != nil {
		return nil, err
	}

	if number == "" {
		return nil, errs.NewValueIsRequiredError("number")
	}

	o.number = number
	o.status = status
	o.pickerID = pickerID
	o.packerID = packerID
	o.subtotal = subtotal
	o.tax = tax
	o.shipping = shipping
	o.discount = discount
	o.total = total
	o.createdAt = createdAt
	o.claimedAt = claimedAt
	o.pickedAt = pickedAt
	o.packedAt = packedAt
	o.shippedAt = shippedAt
	o.cancelledAt = cancelledAt

	return o, nil
}

// Validate ensures the Order instance was properly constructed through a
// factory method. This prevents bypassing validation by directly
// instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number returns the human-readable order identifier.
func (o *Order) Number() string {
	return o.number
}

// CustomerID returns the customer the order belongs to.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// Priority returns the order's fulfillment priority.
func (o *Order) Priority() Priority {
	return o.priority
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Picker returns the assigned picker's ID, or nil if unclaimed.
func (o *Order) Picker() *kernel.UUID {
	return o.pickerID
}

// Packer returns the assigned packer's ID, or nil before packing starts.
func (o *Order) Packer() *kernel.UUID {
	return o.packerID
}

// Items returns the order's SKU lines.
func (o *Order) Items() []*Item {
	return o.items
}

// ItemByID returns the order line with the given identifier.
// Returns *errs.ObjectNotFoundError if the order owns no such line.
func (o *Order) ItemByID(id kernel.UUID) (*Item, error) {
	for _, item := range o.items {
		if item.ID().IsEqual(id) {
			return item, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("orderItem", id.String())
}

// Subtotal returns the sum of all line totals.
func (o *Order) Subtotal() kernel.Money { return o.subtotal }

// Tax returns the tax amount computed at creation.
func (o *Order) Tax() kernel.Money { return o.tax }

// Shipping returns the shipping fee computed at creation.
func (o *Order) Shipping() kernel.Money { return o.shipping }

// Discount returns the discount applied at creation.
func (o *Order) Discount() kernel.Money { return o.discount }

// Total returns subtotal + tax + shipping - discount.
func (o *Order) Total() kernel.Money { return o.total }

// Currency returns the ISO currency code the totals are denominated in.
func (o *Order) Currency() string { return o.currency }

// CreatedAt returns when the order was created.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// ClaimedAt returns when the order was claimed, or nil.
func (o *Order) ClaimedAt() *time.Time { return o.claimedAt }

// PickedAt returns when picking finished, or nil.
func (o *Order) PickedAt() *time.Time { return o.pickedAt }

// PackedAt returns when packing finished, or nil.
func (o *Order) PackedAt() *time.Time { return o.packedAt }

// ShippedAt returns when the order shipped, or nil.
func (o *Order) ShippedAt() *time.Time { return o.shippedAt }

// CancelledAt returns when the order was cancelled, or nil.
func (o *Order) CancelledAt() *time.Time { return o.cancelledAt }

// EnsureClaimable checks, without mutating the order, whether a claim can
// proceed:
//   - the order must not already have a picker (defensive check even though
//     Pending status should imply this)
//   - the order must be Pending
//
// The claim coordinator runs this before counting the picker's active
// orders, so an unclaimable order reports its own conflict rather than the
// picker's limit.
func (o *Order) EnsureClaimable() error {
	if o.pickerID != nil {
		return errs.NewConflictError(
			fmt.Sprintf("order is already claimed by %s", o.pickerID),
		)
	}

	if o.status != Pending {
		return errs.NewConflictError(
			fmt.Sprintf("order is not in a claimable state: current status is %s", o.status),
		)
	}

	return nil
}

// Claim assigns the order to a picker and transitions it to Picking.
//
// Business rules enforced here (the claim coordinator adds the row lock and
// the per-picker limit on top):
//   - the picker ID must be valid
//   - the order must satisfy EnsureClaimable
func (o *Order) Claim(pickerID kernel.UUID, now time.Time) error {
	if err := pickerID.Validate(); err != nil {
		return err
	}

	if err := o.EnsureClaimable(); err != nil {
		return err
	}

	newStatus, err := o.status.TransitionTo(Picking)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.pickerID = &pickerID
	o.claimedAt = &now
	return nil
}

// Unclaim reverses a claim prior to any picking progress: clears the picker,
// returns the status to Pending, and drops the claim timestamp. The caller is
// responsible for discarding the generated pick tasks in the same transaction.
func (o *Order) Unclaim() error {
	if o.status != Picking {
		return errs.NewConflictError(
			fmt.Sprintf("order cannot be unclaimed: current status is %s", o.status),
		)
	}

	o.status = Pending
	o.pickerID = nil
	o.claimedAt = nil
	return nil
}

// MarkPicked transitions the order from Picking to Picked and stamps the
// picked timestamp exactly once.
func (o *Order) MarkPicked(now time.Time) error {
	newStatus, err := o.status.TransitionTo(Picked)
	if err != nil {
		return err
	}
	if o.pickedAt != nil {
		return errs.NewConflictError("order has already been marked picked")
	}

	o.status = newStatus
	o.pickedAt = &now
	return nil
}

// StartPacking transitions the order from Picked to Packing and records the
// packer taking the order.
func (o *Order) StartPacking(packerID kernel.UUID) error {
	if err := packerID.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.TransitionTo(Packing)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.packerID = &packerID
	return nil
}

// MarkPacked transitions the order from Packing to Packed and stamps the
// packed timestamp exactly once.
func (o *Order) MarkPacked(now time.Time) error {
	newStatus, err := o.status.TransitionTo(Packed)
	if err != nil {
		return err
	}
	if o.packedAt != nil {
		return errs.NewConflictError("order has already been marked packed")
	}

	o.status = newStatus
	o.packedAt = &now
	return nil
}

// Ship transitions the order from Packed to Shipped, the happy-path terminal
// state, stamping the shipped timestamp exactly once.
func (o *Order) Ship(now time.Time) error {
	newStatus, err := o.status.TransitionTo(Shipped)
	if err != nil {
		return err
	}
	if o.shippedAt != nil {
		return errs.NewConflictError("order has already been shipped")
	}

	o.status = newStatus
	o.shippedAt = &now
	return nil
}

// MarkBackorder parks a Pending order until inventory becomes available.
func (o *Order) MarkBackorder() error {
	newStatus, err := o.status.TransitionTo(Backorder)
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// ReleaseBackorder returns a Backorder order to the Pending queue.
func (o *Order) ReleaseBackorder() error {
	newStatus, err := o.status.TransitionTo(Pending)
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Cancel moves the order to the Cancelled terminal state.
//
// Cancellation is idempotent by design, unlike the other transitions: a
// second Cancel on an already-cancelled order reports alreadyCancelled=true
// with no error and no state change, so callers do not release inventory
// twice. Cancelling a Shipped order fails with a conflict.
func (o *Order) Cancel(now time.Time) (alreadyCancelled bool, err error) {
	if o.status == Cancelled {
		return true, nil
	}
	if o.status == Shipped {
		return false, errs.NewConflictError("cannot cancel a shipped order")
	}

	o.status = Cancelled
	o.cancelledAt = &now
	return false, nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("customerID is invalid", err)
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setPriority(priority Priority) error {
	if err := priority.Validate(); err != nil {
		return err
	}
	o.priority = priority
	return nil
}

func (o *Order) setCurrency(currency string) error {
	if len(currency) != 3 {
		return errs.NewValueIsInvalidErrorWithCause(
			"currency is invalid",
			fmt.Errorf("%q is not a 3-letter currency code", currency),
		)
	}
	o.currency = currency
	return nil
}

func (o *Order) setItems(items []*Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = items
	return nil
}
