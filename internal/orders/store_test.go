package orders

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"foodorder/internal/models"
)

var errStoreDown = errors.New("connection reset")

// fakeStore keeps documents in maps. The *Err fields force a failure for the
// matching call.
type fakeStore struct {
	mu     sync.Mutex
	orders map[string]models.Order
	items  map[string][]models.OrderItem
	meals  map[string]models.Meal
	shops  map[string]models.Shop

	findOrderErr  error
	findOrdersErr error
	itemsErr      map[string]error
	mealErr       map[string]error
	shopErr       error
	updateErr     error

	lastFilter models.OrderFilter
	mealCalls  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		orders:   map[string]models.Order{},
		items:    map[string][]models.OrderItem{},
		meals:    map[string]models.Meal{},
		shops:    map[string]models.Shop{},
		itemsErr: map[string]error{},
		mealErr:  map[string]error{},
	}
}

func (s *fakeStore) FindOrderByID(_ context.Context, id string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findOrderErr != nil {
		return nil, s.findOrderErr
	}
	order, ok := s.orders[id]
	if !ok {
		return nil, nil
	}
	return &order, nil
}

func (s *fakeStore) FindOrders(_ context.Context, filter models.OrderFilter) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastFilter = filter
	if s.findOrdersErr != nil {
		return nil, s.findOrdersErr
	}
	var out []models.Order
	for _, order := range s.orders {
		if filter.UserID != "" && order.UserID.Hex() != filter.UserID {
			continue
		}
		if filter.ShopID != "" && order.ShopID.Hex() != filter.ShopID {
			continue
		}
		if !filter.From.IsZero() && order.OrderDate.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && order.OrderDate.After(filter.To) {
			continue
		}
		out = append(out, order)
	}
	return out, nil
}

func (s *fakeStore) FindOrderItemsByOrderID(_ context.Context, orderID string) ([]models.OrderItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.itemsErr[orderID]; err != nil {
		return nil, err
	}
	return append([]models.OrderItem(nil), s.items[orderID]...), nil
}

func (s *fakeStore) FindMealByID(_ context.Context, id string) (*models.Meal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mealCalls++
	if err := s.mealErr[id]; err != nil {
		return nil, err
	}
	meal, ok := s.meals[id]
	if !ok {
		return nil, nil
	}
	return &meal, nil
}

func (s *fakeStore) FindShopByID(_ context.Context, id string) (*models.Shop, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.shopErr != nil {
		return nil, s.shopErr
	}
	shop, ok := s.shops[id]
	if !ok {
		return nil, nil
	}
	return &shop, nil
}

func (s *fakeStore) UpdateOrderStatus(_ context.Context, id string, status models.OrderStatus) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	order, ok := s.orders[id]
	if !ok {
		return nil, nil
	}
	order.Status = status
	s.orders[id] = order
	return &order, nil
}

func (s *fakeStore) addShop(owner primitive.ObjectID, name string) models.Shop {
	shop := models.Shop{ID: primitive.NewObjectID(), UserID: owner, Name: name}
	s.shops[shop.ID.Hex()] = shop
	return shop
}

func (s *fakeStore) addMeal(shop models.Shop, name string, price float64) models.Meal {
	meal := models.Meal{ID: primitive.NewObjectID(), ShopID: shop.ID, Name: name, Price: price, Active: true}
	s.meals[meal.ID.Hex()] = meal
	return meal
}

func (s *fakeStore) addOrder(user primitive.ObjectID, shop models.Shop, date time.Time, status models.OrderStatus) models.Order {
	order := models.Order{ID: primitive.NewObjectID(), UserID: user, ShopID: shop.ID, OrderDate: date, Status: status}
	s.orders[order.ID.Hex()] = order
	return order
}

func (s *fakeStore) addItem(order models.Order, meal models.Meal, quantity int, remark string) {
	key := order.ID.Hex()
	s.items[key] = append(s.items[key], models.OrderItem{
		ID:       primitive.NewObjectID(),
		OrderID:  order.ID,
		MealID:   meal.ID,
		Quantity: quantity,
		Remark:   remark,
	})
}
