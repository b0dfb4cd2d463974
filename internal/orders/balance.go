package orders

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"foodorder/internal/models"
)

// BalanceCalculator sums what a user spent, or a shop earned, in a calendar month.
type BalanceCalculator struct {
	store Store
	opts  options
}

// NewBalanceCalculator returns a calculator reading from store.
func NewBalanceCalculator(store Store, opts ...Option) *BalanceCalculator {
	return &BalanceCalculator{store: store, opts: buildOptions(opts)}
}

// BalanceRequest identifies the subject and month of a balance computation.
type BalanceRequest struct {
	SubjectID string
	Scope     models.BalanceScope
	Year      int
	Month     int
	Breakdown bool
}

type mealTally struct {
	meal     models.Meal
	quantity int
	revenue  decimal.Decimal
}

// Compute walks every order of the subject inside the month window and sums
// quantity times the current meal price. Lines whose meal can no longer be
// read are skipped; a failure of the initial order query, or the context
// ending before every line was read, is returned as ErrInfrastructure.
func (c *BalanceCalculator) Compute(ctx context.Context, req BalanceRequest) (models.BalanceResult, error) {
	if req.SubjectID == "" {
		return models.BalanceResult{}, fmt.Errorf("%w: subject id is required", ErrInvalidInput)
	}
	start, end, err := MonthWindow(req.Year, req.Month, c.opts.location)
	if err != nil {
		return models.BalanceResult{}, err
	}

	filter := models.OrderFilter{From: start, To: end}
	switch req.Scope {
	case models.ScopeUser:
		filter.UserID = req.SubjectID
	case models.ScopeShop:
		filter.ShopID = req.SubjectID
	default:
		return models.BalanceResult{}, fmt.Errorf("%w: unknown balance scope %q", ErrInvalidInput, req.Scope)
	}

	result := models.BalanceResult{
		SubjectID: req.SubjectID,
		Scope:     req.Scope,
		Year:      req.Year,
		Month:     req.Month,
	}

	orders, err := c.store.FindOrders(ctx, filter)
	if err != nil {
		err = storeFailure("find orders", err)
		c.opts.logger.Error("balance order query failed",
			zap.String("subjectId", req.SubjectID), zap.Error(err))
		return models.BalanceResult{}, err
	}
	if len(orders) == 0 {
		if req.Breakdown {
			result.Breakdown = []models.MealRevenue{}
		}
		return result, nil
	}

	itemsByOrder := c.fetchItems(ctx, orders)
	if err := ctx.Err(); err != nil {
		return models.BalanceResult{}, storeFailure("compute balance", err)
	}
	meals := c.fetchMeals(ctx, itemsByOrder)
	if err := ctx.Err(); err != nil {
		return models.BalanceResult{}, storeFailure("compute balance", err)
	}

	total := decimal.Zero
	tallies := make(map[string]*mealTally)
	for _, items := range itemsByOrder {
		for _, item := range items {
			mealID := item.MealID.Hex()
			meal, ok := meals[mealID]
			if !ok {
				continue
			}
			line := decimal.NewFromFloat(meal.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
			total = total.Add(line)

			tally, ok := tallies[mealID]
			if !ok {
				tally = &mealTally{meal: meal, revenue: decimal.Zero}
				tallies[mealID] = tally
			}
			tally.quantity += item.Quantity
			tally.revenue = tally.revenue.Add(line)
		}
	}

	result.Total = total.InexactFloat64()
	if req.Breakdown {
		result.Breakdown = breakdown(tallies)
	}
	return result, nil
}

// AuthorizeShop checks that userID owns shopID before its revenue is reported.
func (c *BalanceCalculator) AuthorizeShop(ctx context.Context, shopID, userID string) error {
	shop, err := c.store.FindShopByID(ctx, shopID)
	if err != nil {
		return storeFailure("find shop", err)
	}
	if shop == nil {
		return notFound("shop", shopID)
	}
	if shop.UserID.Hex() != userID {
		return fmt.Errorf("%w: shop %s", ErrPermissionDenied, shopID)
	}
	return nil
}

// fetchItems loads the items of every order concurrently. An order whose
// items cannot be read contributes nothing.
func (c *BalanceCalculator) fetchItems(ctx context.Context, orders []models.Order) [][]models.OrderItem {
	itemsByOrder := make([][]models.OrderItem, len(orders))
	var g errgroup.Group
	g.SetLimit(c.opts.concurrency)
	for i, order := range orders {
		g.Go(func() error {
			orderID := order.ID.Hex()
			items, err := c.store.FindOrderItemsByOrderID(ctx, orderID)
			if err != nil {
				c.opts.logger.Warn("balance skipped order items",
					zap.String("orderId", orderID), zap.Error(err))
				return nil
			}
			itemsByOrder[i] = items
			return nil
		})
	}
	_ = g.Wait()
	return itemsByOrder
}

// fetchMeals resolves every distinct meal once. Missing or unreadable meals
// are left out of the returned map.
func (c *BalanceCalculator) fetchMeals(ctx context.Context, itemsByOrder [][]models.OrderItem) map[string]models.Meal {
	var ids []string
	seen := make(map[string]struct{})
	for _, items := range itemsByOrder {
		for _, item := range items {
			id := item.MealID.Hex()
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	}

	found := make([]*models.Meal, len(ids))
	var g errgroup.Group
	g.SetLimit(c.opts.concurrency)
	for i, id := range ids {
		g.Go(func() error {
			meal, err := c.store.FindMealByID(ctx, id)
			switch {
			case err != nil:
				c.opts.logger.Warn("balance skipped meal", zap.String("mealId", id), zap.Error(err))
			case meal == nil:
				c.opts.logger.Warn("balance skipped missing meal", zap.String("mealId", id))
			default:
				found[i] = meal
			}
			return nil
		})
	}
	_ = g.Wait()

	meals := make(map[string]models.Meal, len(ids))
	for i, id := range ids {
		if found[i] != nil {
			meals[id] = *found[i]
		}
	}
	return meals
}

func breakdown(tallies map[string]*mealTally) []models.MealRevenue {
	out := make([]models.MealRevenue, 0, len(tallies))
	for id, tally := range tallies {
		out = append(out, models.MealRevenue{
			MealID:    id,
			MealName:  tally.meal.Name,
			MealPrice: tally.meal.Price,
			Quantity:  tally.quantity,
			Revenue:   tally.revenue.InexactFloat64(),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MealName != out[j].MealName {
			return out[i].MealName < out[j].MealName
		}
		return out[i].MealID < out[j].MealID
	})
	return out
}
