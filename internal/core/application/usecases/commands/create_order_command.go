package commands

import (
	"errors"

	"bidding/internal/core/domain/model/kernel"
	"bidding/internal/core/domain/model/order"
	"bidding/internal/pkg/errs"
	"bidding/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a shipper publishing a new shipment request.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(ownerID, "Shanghai WH-3", "12 pallets", "Rotterdam")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	o, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	ownerID kernel.UUID
	details order.Details

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates that the owner is set and no detail is blank.
func NewCreateOrderCommand(ownerID kernel.UUID, warehouse, goods, deliveryAddress string) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOwnerID(ownerID),
		cmd.setDetails(order.Details{
			Warehouse:       warehouse,
			Goods:           goods,
			DeliveryAddress: deliveryAddress,
		}),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OwnerID() kernel.UUID {
	return c.ownerID
}

func (c CreateOrderCommand) Details() order.Details {
	return c.details
}

func (c *CreateOrderCommand) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return err
	}
	c.ownerID = ownerID
	return nil
}

func (c *CreateOrderCommand) setDetails(details order.Details) error {
	if err := requireText(
		"warehouse", details.Warehouse,
		"goods", details.Goods,
		"delivery address", details.DeliveryAddress,
	); err != nil {
		return err
	}
	c.details = details
	return nil
}

// requireText takes name/value pairs and reports every blank value.
func requireText(pairs ...string) error {
	var errList []error
	for i := 0; i+1 < len(pairs); i += 2 {
		if isBlank(pairs[i+1]) {
			errList = append(errList, errs.NewValueIsRequiredError(pairs[i]))
		}
	}
	return errors.Join(errList...)
}
