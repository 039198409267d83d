package order

import (
	"errors"
	"strings"
	"time"

	"bidding/internal/core/domain/model/kernel"
	"bidding/internal/pkg/ddd"
	"bidding/internal/pkg/errs"
	"bidding/internal/pkg/guard"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("order must be created via NewOrder or RestoreOrder")

// Details is the free-text part of an order supplied by the shipper.
type Details struct {
	Warehouse       string
	Goods           string
	DeliveryAddress string
}

// Changes is a partial update of Details. Nil fields are left untouched.
type Changes struct {
	Warehouse       *string
	Goods           *string
	DeliveryAddress *string
}

// IsEmpty reports whether no field is provided.
func (c Changes) IsEmpty() bool {
	return c.Warehouse == nil && c.Goods == nil && c.DeliveryAddress == nil
}

// Selection is the winning quote data copied onto an order when the shipper
// accepts a quote.
type Selection struct {
	QuoteID  kernel.UUID
	Provider string
	Price    kernel.Price
	At       time.Time
}

func (s Selection) Validate() error {
	var providerErr error
	if strings.TrimSpace(s.Provider) == "" {
		providerErr = errs.NewValueIsRequiredError("selected provider")
	}
	var atErr error
	if s.At.IsZero() {
		atErr = errs.NewValueIsRequiredError("selected at")
	}
	return errors.Join(s.QuoteID.Validate(), providerErr, s.Price.Validate(), atErr)
}

// Order is the aggregate root for a shipment request.
//
// Order follows these invariants:
//   - ID and owner are valid and never change
//   - Warehouse, goods and delivery address are never blank
//   - Status changes only through the transition table
//   - selection is non-nil iff the order was closed by accepting a quote
type Order struct {
	ddd.EventRecorder

	id        ID
	ownerID   kernel.UUID
	details   Details
	status    Status
	selection *Selection
	createdAt time.Time
	updatedAt time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates an active order and records a Created event.
//
// Example:
//
//	id, _ := order.NewID(now, 1)
//	o, err := order.NewOrder(id, ownerID, order.Details{
//	    Warehouse:       "Shanghai WH-3",
//	    Goods:           "12 pallets of ceramics",
//	    DeliveryAddress: "Rotterdam, Waalhaven 21",
//	}, now)
func NewOrder(id ID, ownerID kernel.UUID, details Details, now time.Time) (*Order, error) {
	o := &Order{
		status:    Active,
		createdAt: now,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setOwner(ownerID),
		o.setDetails(details),
	); err != nil {
		return nil, err
	}

	o.RaiseDomainEvent(NewCreatedEvent(o, now))
	return o, nil
}

// RestoreOrder rehydrates an order from persistence without raising events.
func RestoreOrder(
	id ID,
	ownerID kernel.UUID,
	details Details,
	status Status,
	selection *Selection,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		createdAt: createdAt,
		updatedAt: updatedAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setOwner(ownerID),
		o.setDetails(details),
		o.setStatus(status, selection),
	); err != nil {
		return nil, err
	}

	return o, nil
}

func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() ID {
	return o.id
}

func (o *Order) OwnerID() kernel.UUID {
	return o.ownerID
}

func (o *Order) Details() Details {
	return o.details
}

func (o *Order) Status() Status {
	return o.status
}

// Selection returns a copy of the accepted quote data, or nil.
func (o *Order) Selection() *Selection {
	if o.selection == nil {
		return nil
	}
	s := *o.selection
	return &s
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

func (o *Order) IsOwnedBy(userID kernel.UUID) bool {
	return o.ownerID.IsEqual(userID)
}

// Update applies changes to an active order. It fails with InvalidStateError
// (carrying the current snapshot) when the order is not active, and with a
// validation error when a provided field is blank. The order is left
// untouched on error.
func (o *Order) Update(changes Changes, now time.Time) error {
	if !o.status.IsActive() {
		return o.invalidState("update")
	}

	next := o.details
	if changes.Warehouse != nil {
		next.Warehouse = *changes.Warehouse
	}
	if changes.Goods != nil {
		next.Goods = *changes.Goods
	}
	if changes.DeliveryAddress != nil {
		next.DeliveryAddress = *changes.DeliveryAddress
	}
	if err := validateDetails(next); err != nil {
		return err
	}

	o.details = next
	o.updatedAt = now
	return nil
}

// Close closes an active order without a selection. Closing an already
// closed order is a no-op that reports alreadyClosed; closing a cancelled
// order fails.
func (o *Order) Close(now time.Time) (alreadyClosed bool, err error) {
	if o.status == Closed {
		return true, nil
	}

	next, err := o.status.TransitionTo(Closed, "close")
	if err != nil {
		return false, o.invalidState("close")
	}

	o.status = next
	o.updatedAt = now
	o.RaiseDomainEvent(NewClosedEvent(o, now))
	return false, nil
}

// Cancel moves an active order to Cancelled.
func (o *Order) Cancel(now time.Time) error {
	next, err := o.status.TransitionTo(Cancelled, "cancel")
	if err != nil {
		return o.invalidState("cancel")
	}

	o.status = next
	o.updatedAt = now
	o.RaiseDomainEvent(NewCancelledEvent(o, now))
	return nil
}

// SelectQuote closes an active order and records the accepted quote. The
// selection is written exactly once, together with the status change.
func (o *Order) SelectQuote(selection Selection) error {
	if err := selection.Validate(); err != nil {
		return err
	}

	next, err := o.status.TransitionTo(Closed, "select a quote for")
	if err != nil {
		return o.invalidState("select a quote for")
	}

	o.status = next
	o.selection = &selection
	o.updatedAt = selection.At
	o.RaiseDomainEvent(NewClosedEvent(o, selection.At))
	return nil
}

func (o *Order) invalidState(action string) error {
	return errs.NewInvalidStateErrorWithCurrent("order", o.id.String(), o.status.String(), action, o.Snapshot())
}

func (o *Order) setID(id ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOwner(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("owner", err)
	}
	o.ownerID = ownerID
	return nil
}

func (o *Order) setDetails(details Details) error {
	if err := validateDetails(details); err != nil {
		return err
	}
	o.details = details
	return nil
}

func (o *Order) setStatus(status Status, selection *Selection) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if selection != nil {
		if status != Closed {
			return errs.NewValueIsInvalidError("selection is only allowed on a closed order")
		}
		if err := selection.Validate(); err != nil {
			return err
		}
		s := *selection
		o.selection = &s
	}
	o.status = status
	return nil
}

func validateDetails(d Details) error {
	var errList []error
	if strings.TrimSpace(d.Warehouse) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("warehouse"))
	}
	if strings.TrimSpace(d.Goods) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("goods"))
	}
	if strings.TrimSpace(d.DeliveryAddress) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("delivery address"))
	}
	return errors.Join(errList...)
}
