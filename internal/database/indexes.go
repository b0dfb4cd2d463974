package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// EnsureOrderIndexes backs the balance window queries for buyers and shops.
func EnsureOrderIndexes(db *mongo.Database, logger *zap.Logger) error {
	return ensureIndexes(db, logger, ordersCollection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "orderDate", Value: 1}},
			Options: options.Index().SetName("userId_orderDate"),
		},
		{
			Keys:    bson.D{{Key: "shopId", Value: 1}, {Key: "orderDate", Value: 1}},
			Options: options.Index().SetName("shopId_orderDate"),
		},
	})
}

func EnsureOrderItemIndexes(db *mongo.Database, logger *zap.Logger) error {
	return ensureIndexes(db, logger, orderItemsCollection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "orderId", Value: 1}},
			Options: options.Index().SetName("orderId_index"),
		},
	})
}

func EnsureMealIndexes(db *mongo.Database, logger *zap.Logger) error {
	return ensureIndexes(db, logger, mealsCollection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "shopId", Value: 1}},
			Options: options.Index().SetName("shopId_index"),
		},
	})
}

func ensureIndexes(db *mongo.Database, logger *zap.Logger, collection string, indexModels []mongo.IndexModel) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	log := logger.With(zap.String("collection", collection))
	log.Info("creating indexes", zap.Int("count", len(indexModels)))
	names, err := db.Collection(collection).Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		log.Error("index creation failed", zap.Error(err))
		return err
	}
	log.Info("indexes ready", zap.Strings("names", names))
	return nil
}
