package orders

import (
	"context"

	"foodorder/internal/models"
)

// Store is the slice of the entity store the order components read and write.
// Lookups by id return (nil, nil) when the document does not exist; an error
// always means the store itself failed.
type Store interface {
	FindOrderByID(ctx context.Context, id string) (*models.Order, error)
	FindOrders(ctx context.Context, filter models.OrderFilter) ([]models.Order, error)
	FindOrderItemsByOrderID(ctx context.Context, orderID string) ([]models.OrderItem, error)
	FindMealByID(ctx context.Context, id string) (*models.Meal, error)
	FindShopByID(ctx context.Context, id string) (*models.Shop, error)
	UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error)
}
