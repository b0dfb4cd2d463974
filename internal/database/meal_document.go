package database

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"foodorder/internal/models"
)

// normalizeMealDocument decodes a raw meal document, coercing fields that
// older admin tools wrote with loose types (numeric strings, "true"/"false").
// A price that cannot be read is an error, never zero.
func normalizeMealDocument(raw bson.M) (models.Meal, error) {
	price, err := parsePrice(raw["price"])
	if err != nil {
		return models.Meal{}, err
	}
	raw["price"] = price
	raw["quantity"] = int(toFloat(raw["quantity"]))

	switch typed := raw["active"].(type) {
	case bool:
	case string:
		raw["active"] = strings.EqualFold(strings.TrimSpace(typed), "true")
	default:
		raw["active"] = false
	}

	data, err := bson.Marshal(raw)
	if err != nil {
		return models.Meal{}, err
	}

	var meal models.Meal
	if err := bson.Unmarshal(data, &meal); err != nil {
		return models.Meal{}, err
	}
	return meal, nil
}

func parsePrice(value interface{}) (float64, error) {
	switch typed := value.(type) {
	case nil:
		return 0, errors.New("meal price is missing")
	case float64:
		return typed, nil
	case int32:
		return float64(typed), nil
	case int64:
		return float64(typed), nil
	case int:
		return float64(typed), nil
	case primitive.Decimal128:
		d, err := decimal.NewFromString(typed.String())
		if err != nil {
			return 0, fmt.Errorf("meal price %s: %w", typed.String(), err)
		}
		return d.InexactFloat64(), nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(typed))
		if err != nil {
			return 0, fmt.Errorf("meal price %q: %w", typed, err)
		}
		return d.InexactFloat64(), nil
	default:
		return 0, fmt.Errorf("meal price has unsupported type %T", value)
	}
}

func toFloat(value interface{}) float64 {
	switch typed := value.(type) {
	case float64:
		return typed
	case int32:
		return float64(typed)
	case int64:
		return float64(typed)
	case int:
		return float64(typed)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}
