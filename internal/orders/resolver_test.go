package orders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"foodorder/internal/models"
)

func TestResolveComputesTotalInFetchOrder(t *testing.T) {
	store := newFakeStore()
	buyer := primitive.NewObjectID()
	shop := store.addShop(primitive.NewObjectID(), "Noodle Bar")
	mealA := store.addMeal(shop, "A", 100)
	mealB := store.addMeal(shop, "B", 50)
	date := time.Date(2024, time.March, 4, 12, 30, 0, 0, time.UTC)
	order := store.addOrder(buyer, shop, date, models.StatusWaiting)
	store.addItem(order, mealA, 2, "no onion")
	store.addItem(order, mealB, 1, "")

	details, err := NewDetailResolver(store).Resolve(context.Background(), order.ID.Hex())
	require.NoError(t, err)

	assert.Equal(t, 250.0, details.TotalPrice)
	assert.Equal(t, order.ID.Hex(), details.OrderID)
	assert.Equal(t, buyer.Hex(), details.UserID)
	assert.Equal(t, models.StatusWaiting, details.Status)
	assert.Equal(t, "2024-03-04T12:30:00Z", details.Date)
	assert.Equal(t, shop.ID.Hex(), details.ShopID)
	assert.Equal(t, "Noodle Bar", details.ShopName)
	assert.Equal(t, []models.OrderDetailItem{
		{MealName: "A", Quantity: 2, MealPrice: 100, Remark: "no onion"},
		{MealName: "B", Quantity: 1, MealPrice: 50},
	}, details.Items)
}

func TestResolveEmptyOrderSucceeds(t *testing.T) {
	store := newFakeStore()
	shop := store.addShop(primitive.NewObjectID(), "Empty")
	order := store.addOrder(primitive.NewObjectID(), shop, time.Now(), models.StatusCart)

	details, err := NewDetailResolver(store).Resolve(context.Background(), order.ID.Hex())
	require.NoError(t, err)
	assert.Zero(t, details.TotalPrice)
	assert.NotNil(t, details.Items)
	assert.Empty(t, details.Items)
}

func TestResolveMissingMealFailsWholeOrder(t *testing.T) {
	store := newFakeStore()
	shop := store.addShop(primitive.NewObjectID(), "Shop")
	kept := store.addMeal(shop, "kept", 10)
	deleted := store.addMeal(shop, "deleted", 20)
	order := store.addOrder(primitive.NewObjectID(), shop, time.Now(), models.StatusReady)
	store.addItem(order, kept, 1, "")
	store.addItem(order, deleted, 3, "")
	delete(store.meals, deleted.ID.Hex())

	details, err := NewDetailResolver(store, WithConcurrency(1)).Resolve(context.Background(), order.ID.Hex())
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, models.OrderDetails{}, details)
}

func TestResolveMissingOrderOrShop(t *testing.T) {
	store := newFakeStore()
	resolver := NewDetailResolver(store)

	_, err := resolver.Resolve(context.Background(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrNotFound)

	shop := store.addShop(primitive.NewObjectID(), "Gone")
	order := store.addOrder(primitive.NewObjectID(), shop, time.Now(), models.StatusWaiting)
	delete(store.shops, shop.ID.Hex())

	_, err = resolver.Resolve(context.Background(), order.ID.Hex())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveStoreFailureIsDistinctFromNotFound(t *testing.T) {
	store := newFakeStore()
	shop := store.addShop(primitive.NewObjectID(), "Shop")
	meal := store.addMeal(shop, "Soup", 7.5)
	order := store.addOrder(primitive.NewObjectID(), shop, time.Now(), models.StatusWaiting)
	store.addItem(order, meal, 2, "")
	store.mealErr[meal.ID.Hex()] = errStoreDown

	_, err := NewDetailResolver(store).Resolve(context.Background(), order.ID.Hex())
	require.ErrorIs(t, err, ErrInfrastructure)
	assert.False(t, errors.Is(err, ErrNotFound))

	store.mealErr = map[string]error{}
	store.findOrderErr = errStoreDown
	_, err = NewDetailResolver(store).Resolve(context.Background(), order.ID.Hex())
	assert.ErrorIs(t, err, ErrInfrastructure)
}

func TestResolveLooksUpRepeatedMealOnce(t *testing.T) {
	store := newFakeStore()
	shop := store.addShop(primitive.NewObjectID(), "Shop")
	meal := store.addMeal(shop, "Tea", 3)
	order := store.addOrder(primitive.NewObjectID(), shop, time.Now(), models.StatusWaiting)
	store.addItem(order, meal, 1, "hot")
	store.addItem(order, meal, 2, "iced")

	details, err := NewDetailResolver(store).Resolve(context.Background(), order.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, 9.0, details.TotalPrice)
	assert.Len(t, details.Items, 2)
	assert.Equal(t, 1, store.mealCalls)
}

func TestResolveIsIdempotent(t *testing.T) {
	store := newFakeStore()
	shop := store.addShop(primitive.NewObjectID(), "Shop")
	order := store.addOrder(primitive.NewObjectID(), shop, time.Now(), models.StatusWaiting)
	for i := 0; i < 20; i++ {
		store.addItem(order, store.addMeal(shop, "meal", float64(i)+0.1), i+1, "")
	}
	resolver := NewDetailResolver(store, WithConcurrency(4))

	first, err := resolver.Resolve(context.Background(), order.ID.Hex())
	require.NoError(t, err)
	second, err := resolver.Resolve(context.Background(), order.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResolveUsesCurrentMealPrice(t *testing.T) {
	store := newFakeStore()
	shop := store.addShop(primitive.NewObjectID(), "Shop")
	meal := store.addMeal(shop, "Curry", 10)
	order := store.addOrder(primitive.NewObjectID(), shop, time.Now(), models.StatusFinished)
	store.addItem(order, meal, 2, "")

	meal.Price = 12
	store.meals[meal.ID.Hex()] = meal

	details, err := NewDetailResolver(store).Resolve(context.Background(), order.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, 24.0, details.TotalPrice)
}
