package commands

import (
	"context"

	"bidding/internal/core/domain/model/kernel"
	"bidding/internal/core/domain/model/order"
	"bidding/internal/core/ports"
	"bidding/internal/pkg/errs"
)

func authorizeOwner(ctx context.Context, identity ports.Identity, callerID kernel.UUID, o *order.Order, action string) error {
	ok, err := identity.IsOwner(ctx, callerID, o.ID())
	if err != nil {
		return err
	}
	if !ok {
		return errs.NewForbiddenError("user "+callerID.String(), action)
	}
	return nil
}
