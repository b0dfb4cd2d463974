package database

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"foodorder/internal/models"
)

// EntityStore reads and writes order documents in MongoDB. Lookups by id
// return (nil, nil) for ids that are malformed or absent.
type EntityStore struct {
	db *mongo.Database
}

func NewEntityStore(db *mongo.Database) *EntityStore {
	return &EntityStore{db: db}
}

func (s *EntityStore) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, readpref.Primary())
}

func (s *EntityStore) FindOrderByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	found, err := s.findByID(ctx, ordersCollection, id, &order)
	if err != nil || !found {
		return nil, err
	}
	return &order, nil
}

func (s *EntityStore) FindOrders(ctx context.Context, filter models.OrderFilter) ([]models.Order, error) {
	query, ok := orderFilterDocument(filter)
	if !ok {
		return []models.Order{}, nil
	}

	opts := options.Find().SetSort(bson.D{{Key: "orderDate", Value: 1}})
	cursor, err := s.db.Collection(ordersCollection).Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("find orders: %w", err)
	}
	defer cursor.Close(ctx)

	orders := make([]models.Order, 0)
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	return orders, nil
}

// FindOrderItemsByOrderID returns the items in the order the store yields them.
func (s *EntityStore) FindOrderItemsByOrderID(ctx context.Context, orderID string) ([]models.OrderItem, error) {
	oid, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return []models.OrderItem{}, nil
	}

	cursor, err := s.db.Collection(orderItemsCollection).Find(ctx, bson.M{"orderId": oid})
	if err != nil {
		return nil, fmt.Errorf("find order items: %w", err)
	}
	defer cursor.Close(ctx)

	items := make([]models.OrderItem, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode order items: %w", err)
	}
	return items, nil
}

func (s *EntityStore) FindMealByID(ctx context.Context, id string) (*models.Meal, error) {
	var raw bson.M
	found, err := s.findByID(ctx, mealsCollection, id, &raw)
	if err != nil || !found {
		return nil, err
	}
	meal, err := normalizeMealDocument(raw)
	if err != nil {
		return nil, fmt.Errorf("decode meal %s: %w", id, err)
	}
	return &meal, nil
}

func (s *EntityStore) FindShopByID(ctx context.Context, id string) (*models.Shop, error) {
	var shop models.Shop
	found, err := s.findByID(ctx, shopsCollection, id, &shop)
	if err != nil || !found {
		return nil, err
	}
	return &shop, nil
}

// UpdateOrderStatus sets the status and returns the updated document, or nil
// when no order has the given id.
func (s *EntityStore) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("refusing to write unknown status %q", status)
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var order models.Order
	err = s.db.Collection(ordersCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": status}},
		opts,
	).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}
	return &order, nil
}

func (s *EntityStore) findByID(ctx context.Context, collection, id string, out interface{}) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	err = s.db.Collection(collection).FindOne(ctx, bson.M{"_id": oid}).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("find %s %s: %w", collection, id, err)
	}
	return true, nil
}

// orderFilterDocument builds the Mongo query for filter. It reports false when
// an id in the filter is malformed, in which case nothing can match.
func orderFilterDocument(filter models.OrderFilter) (bson.M, bool) {
	query := bson.M{}
	if filter.UserID != "" {
		oid, err := primitive.ObjectIDFromHex(filter.UserID)
		if err != nil {
			return nil, false
		}
		query["userId"] = oid
	}
	if filter.ShopID != "" {
		oid, err := primitive.ObjectIDFromHex(filter.ShopID)
		if err != nil {
			return nil, false
		}
		query["shopId"] = oid
	}

	dateRange := bson.M{}
	if !filter.From.IsZero() {
		dateRange["$gte"] = filter.From
	}
	if !filter.To.IsZero() {
		dateRange["$lte"] = filter.To
	}
	if len(dateRange) > 0 {
		query["orderDate"] = dateRange
	}
	return query, true
}
