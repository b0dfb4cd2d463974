package orders

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"foodorder/internal/models"
)

// DetailResolver joins an order with its shop, items and meals into one
// display-ready OrderDetails value.
type DetailResolver struct {
	store Store
	opts  options
}

// NewDetailResolver returns a resolver reading from store.
func NewDetailResolver(store Store, opts ...Option) *DetailResolver {
	return &DetailResolver{store: store, opts: buildOptions(opts)}
}

// Resolve returns the details of orderID. A missing order, shop or meal yields
// ErrNotFound and a store failure yields ErrInfrastructure; in both cases no
// partial view is returned.
func (r *DetailResolver) Resolve(ctx context.Context, orderID string) (models.OrderDetails, error) {
	details, err := r.resolve(ctx, orderID)
	if err != nil {
		if errors.Is(err, ErrInfrastructure) {
			r.opts.logger.Error("order details resolution failed",
				zap.String("orderId", orderID), zap.Error(err))
		}
		return models.OrderDetails{}, err
	}
	return details, nil
}

func (r *DetailResolver) resolve(ctx context.Context, orderID string) (models.OrderDetails, error) {
	order, err := r.store.FindOrderByID(ctx, orderID)
	if err != nil {
		return models.OrderDetails{}, storeFailure("find order", err)
	}
	if order == nil {
		return models.OrderDetails{}, notFound("order", orderID)
	}

	shopID := order.ShopID.Hex()
	shop, err := r.store.FindShopByID(ctx, shopID)
	if err != nil {
		return models.OrderDetails{}, storeFailure("find shop", err)
	}
	if shop == nil {
		return models.OrderDetails{}, notFound("shop", shopID)
	}

	items, err := r.store.FindOrderItemsByOrderID(ctx, orderID)
	if err != nil {
		return models.OrderDetails{}, storeFailure("find order items", err)
	}

	meals, err := r.lookupMeals(ctx, items)
	if err != nil {
		return models.OrderDetails{}, err
	}

	lines := make([]models.OrderDetailItem, 0, len(items))
	total := decimal.Zero
	for _, item := range items {
		meal := meals[item.MealID.Hex()]
		price := decimal.NewFromFloat(meal.Price)
		total = total.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		lines = append(lines, models.OrderDetailItem{
			MealName:  meal.Name,
			Quantity:  item.Quantity,
			MealPrice: meal.Price,
			Remark:    item.Remark,
		})
	}

	return models.OrderDetails{
		OrderID:    order.ID.Hex(),
		UserID:     order.UserID.Hex(),
		Status:     order.Status,
		Date:       order.OrderDate.Format(time.RFC3339),
		ShopID:     shop.ID.Hex(),
		ShopName:   shop.Name,
		Items:      lines,
		TotalPrice: total.InexactFloat64(),
	}, nil
}

// lookupMeals fetches every distinct meal referenced by items concurrently.
// The first missing meal or store error cancels the remaining lookups.
func (r *DetailResolver) lookupMeals(ctx context.Context, items []models.OrderItem) (map[string]models.Meal, error) {
	ids := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		id := item.MealID.Hex()
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	found := make([]models.Meal, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.concurrency)
	for i, id := range ids {
		g.Go(func() error {
			meal, err := r.store.FindMealByID(gctx, id)
			if err != nil {
				return storeFailure("find meal", err)
			}
			if meal == nil {
				return notFound("meal", id)
			}
			found[i] = *meal
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	meals := make(map[string]models.Meal, len(ids))
	for i, id := range ids {
		meals[id] = found[i]
	}
	return meals, nil
}
