package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderItem is one line of an order. It stores only the meal reference, so
// pricing always uses the meal's current price.
type OrderItem struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderID  primitive.ObjectID `bson:"orderId" json:"orderId"`
	MealID   primitive.ObjectID `bson:"mealId" json:"mealId"`
	Quantity int                `bson:"quantity" json:"quantity"`
	Remark   string             `bson:"remark,omitempty" json:"remark,omitempty"`
}

// Order defines the persisted order document.
type Order struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	ShopID    primitive.ObjectID `bson:"shopId" json:"shopId"`
	OrderDate time.Time          `bson:"orderDate" json:"orderDate"`
	Status    OrderStatus        `bson:"status" json:"status"`
}

// OrderFilter selects orders for aggregation. Empty ids are ignored; a zero
// From or To leaves that side of the date range open.
type OrderFilter struct {
	UserID string
	ShopID string
	From   time.Time
	To     time.Time
}
