package models

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestMealCategoryDecodesLegacyString(t *testing.T) {
	raw, err := bson.Marshal(bson.M{"name": "Soup", "category": "  starters "})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var meal Meal
	if err := bson.Unmarshal(raw, &meal); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if len(meal.Category) != 1 || meal.Category[0] != "starters" {
		t.Fatalf("expected [starters], got %v", meal.Category)
	}
}

func TestMealCategoryDecodesArray(t *testing.T) {
	raw, err := bson.Marshal(bson.M{"category": []string{"mains", "vegan"}})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var meal Meal
	if err := bson.Unmarshal(raw, &meal); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if len(meal.Category) != 2 || meal.Category[1] != "vegan" {
		t.Fatalf("expected [mains vegan], got %v", meal.Category)
	}
}

func TestMealCategoryRejectsNumbers(t *testing.T) {
	raw, err := bson.Marshal(bson.M{"category": 12})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var meal Meal
	if err := bson.Unmarshal(raw, &meal); err == nil {
		t.Fatal("expected decode error for numeric category")
	}
}
