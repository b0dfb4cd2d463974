package orders

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"foodorder/internal/models"
)

// Lifecycle guards every status change before it reaches the store.
type Lifecycle struct {
	store Store
	opts  options
}

// NewLifecycle returns a lifecycle guard writing status changes through store.
func NewLifecycle(store Store, opts ...Option) *Lifecycle {
	return &Lifecycle{store: store, opts: buildOptions(opts)}
}

// Checkout moves the buyer's CART order to WAITING.
func (l *Lifecycle) Checkout(ctx context.Context, orderID, requesterID string) (*models.Order, error) {
	order, err := l.ownedOrder(ctx, orderID, requesterID)
	if err != nil {
		return nil, err
	}
	if order.Status != models.StatusCart {
		return nil, fmt.Errorf("%w: cannot check out order in status %s", ErrInvalidTransition, order.Status)
	}
	return l.write(ctx, order, models.StatusWaiting)
}

// Cancel lets the owning buyer cancel an order that has not finished yet.
func (l *Lifecycle) Cancel(ctx context.Context, orderID, requesterID string) (*models.Order, error) {
	order, err := l.ownedOrder(ctx, orderID, requesterID)
	if err != nil {
		return nil, err
	}
	if order.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: order is already %s", ErrInvalidTransition, order.Status)
	}
	if !models.CanTransition(order.Status, models.StatusCancelled) {
		return nil, fmt.Errorf("%w: cannot cancel order in status %s", ErrInvalidTransition, order.Status)
	}
	return l.write(ctx, order, models.StatusCancelled)
}

// UpdateStatus writes a seller-requested status. The seller must own the
// order's shop. Any valid status is accepted unless strict transitions are on.
func (l *Lifecycle) UpdateStatus(ctx context.Context, orderID, sellerID, rawStatus string) (*models.Order, error) {
	status, err := models.ParseOrderStatus(rawStatus)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	order, err := l.store.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, storeFailure("find order", err)
	}
	if order == nil {
		return nil, notFound("order", orderID)
	}

	shopID := order.ShopID.Hex()
	shop, err := l.store.FindShopByID(ctx, shopID)
	if err != nil {
		return nil, storeFailure("find shop", err)
	}
	if shop == nil {
		return nil, notFound("shop", shopID)
	}
	if shop.UserID.Hex() != sellerID {
		return nil, fmt.Errorf("%w: order %s belongs to another shop", ErrPermissionDenied, orderID)
	}

	if l.opts.strict && !models.CanTransition(order.Status, status) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, order.Status, status)
	}
	return l.write(ctx, order, status)
}

func (l *Lifecycle) ownedOrder(ctx context.Context, orderID, requesterID string) (*models.Order, error) {
	order, err := l.store.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, storeFailure("find order", err)
	}
	if order == nil {
		return nil, notFound("order", orderID)
	}
	if order.UserID.Hex() != requesterID {
		return nil, fmt.Errorf("%w: order %s", ErrPermissionDenied, orderID)
	}
	return order, nil
}

func (l *Lifecycle) write(ctx context.Context, order *models.Order, status models.OrderStatus) (*models.Order, error) {
	orderID := order.ID.Hex()
	updated, err := l.store.UpdateOrderStatus(ctx, orderID, status)
	if err != nil {
		l.opts.logger.Error("order status write failed",
			zap.String("orderId", orderID), zap.String("status", string(status)), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUpdateFailed, err)
	}
	if updated == nil {
		return nil, notFound("order", orderID)
	}
	l.opts.logger.Info("order status changed",
		zap.String("orderId", orderID),
		zap.String("from", string(order.Status)),
		zap.String("to", string(status)))
	return updated, nil
}
