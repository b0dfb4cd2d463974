package database

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"foodorder/internal/models"
)

func TestOrderFilterDocumentUserWindow(t *testing.T) {
	user := primitive.NewObjectID()
	from := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0).Add(-time.Nanosecond)

	query, ok := orderFilterDocument(models.OrderFilter{UserID: user.Hex(), From: from, To: to})
	if !ok {
		t.Fatal("expected filter to be valid")
	}
	if query["userId"] != user {
		t.Fatalf("expected userId %v, got %v", user, query["userId"])
	}
	if _, ok := query["shopId"]; ok {
		t.Fatal("shopId must not be set for a user filter")
	}
	dates, ok := query["orderDate"].(bson.M)
	if !ok {
		t.Fatalf("expected orderDate range, got %T", query["orderDate"])
	}
	if dates["$gte"] != from || dates["$lte"] != to {
		t.Fatalf("unexpected date range %v", dates)
	}
}

func TestOrderFilterDocumentOpenRange(t *testing.T) {
	shop := primitive.NewObjectID()
	query, ok := orderFilterDocument(models.OrderFilter{ShopID: shop.Hex()})
	if !ok {
		t.Fatal("expected filter to be valid")
	}
	if _, ok := query["orderDate"]; ok {
		t.Fatal("orderDate must be omitted when no range is given")
	}
}

func TestOrderFilterDocumentRejectsMalformedID(t *testing.T) {
	if _, ok := orderFilterDocument(models.OrderFilter{ShopID: "not-an-object-id"}); ok {
		t.Fatal("expected malformed shop id to be rejected")
	}
}

func TestNormalizeMealDocumentCoercesLooseTypes(t *testing.T) {
	shop := primitive.NewObjectID()
	meal, err := normalizeMealDocument(bson.M{
		"_id":      primitive.NewObjectID(),
		"shopId":   shop,
		"name":     "Pho",
		"price":    " 12.5",
		"quantity": 3.0,
		"active":   "TRUE",
		"category": "soups",
	})
	if err != nil {
		t.Fatalf("normalizeMealDocument returned error: %v", err)
	}
	if meal.Price != 12.5 || meal.Quantity != 3 || !meal.Active {
		t.Fatalf("unexpected meal %+v", meal)
	}
	if meal.ShopID != shop || len(meal.Category) != 1 || meal.Category[0] != "soups" {
		t.Fatalf("unexpected meal references %+v", meal)
	}
}

func TestNormalizeMealDocumentIntegerPrice(t *testing.T) {
	meal, err := normalizeMealDocument(bson.M{"name": "Rice", "price": int32(4), "active": true})
	if err != nil {
		t.Fatalf("normalizeMealDocument returned error: %v", err)
	}
	if meal.Price != 4 || !meal.Active || meal.Quantity != 0 {
		t.Fatalf("unexpected meal %+v", meal)
	}
}

func TestNormalizeMealDocumentDecimal128Price(t *testing.T) {
	price, err := primitive.ParseDecimal128("12.50")
	if err != nil {
		t.Fatalf("ParseDecimal128 failed: %v", err)
	}
	meal, err := normalizeMealDocument(bson.M{"name": "Bento", "price": price, "active": true})
	if err != nil {
		t.Fatalf("normalizeMealDocument returned error: %v", err)
	}
	if meal.Price != 12.5 {
		t.Fatalf("expected price 12.5, got %v", meal.Price)
	}
}

func TestNormalizeMealDocumentRejectsUnreadablePrice(t *testing.T) {
	cases := map[string]bson.M{
		"comma decimal": {"name": "Bento", "price": "12,50"},
		"missing":       {"name": "Bento"},
		"null":          {"name": "Bento", "price": nil},
		"boolean":       {"name": "Bento", "price": true},
	}
	for name, raw := range cases {
		if meal, err := normalizeMealDocument(raw); err == nil {
			t.Fatalf("%s: expected error, got meal %+v", name, meal)
		}
	}
}
