package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Meal struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ShopID   primitive.ObjectID `bson:"shopId" json:"shopId"`
	Name     string             `bson:"name" json:"name"`
	Price    float64            `bson:"price" json:"price"`
	Quantity int                `bson:"quantity" json:"quantity"`
	Category StringList         `bson:"category" json:"category"`
	Active   bool               `bson:"active" json:"active"`
}

type Shop struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID  primitive.ObjectID `bson:"userId" json:"userId"`
	Name    string             `bson:"name" json:"name"`
	Image   string             `bson:"image,omitempty" json:"image,omitempty"`
	Address string             `bson:"address,omitempty" json:"address,omitempty"`
	Phone   string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Hours   string             `bson:"hours,omitempty" json:"hours,omitempty"`
}
