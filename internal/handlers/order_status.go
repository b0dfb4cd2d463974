package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"foodorder/internal/models"
)

type StatusChanger interface {
	Checkout(ctx context.Context, orderID, requesterID string) (*models.Order, error)
	Cancel(ctx context.Context, orderID, requesterID string) (*models.Order, error)
	UpdateStatus(ctx context.Context, orderID, sellerID, status string) (*models.Order, error)
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func CheckoutOrder(env Env, lifecycle StatusChanger) gin.HandlerFunc {
	return buyerTransition(env, "POST /orders/:id/checkout", "checkout", lifecycle.Checkout)
}

func CancelOrder(env Env, lifecycle StatusChanger) gin.HandlerFunc {
	return buyerTransition(env, "POST /orders/:id/cancel", "cancel", lifecycle.Cancel)
}

func buyerTransition(
	env Env,
	route, operation string,
	apply func(ctx context.Context, orderID, requesterID string) (*models.Order, error),
) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, env, route)

		userID, ok := requesterID(c)
		if !ok {
			respondWithError(c, env, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		ctx, cancel := env.requestContext(c)
		defer cancel()

		order, err := apply(ctx, c.Param("id"), userID)
		if err != nil {
			respondOperationError(c, env, route, operation, err)
			return
		}

		env.Metrics.Observe(operation, "ok")
		env.logger().Info("order transition applied",
			zap.String("operation", operation), zap.String("orderId", order.ID.Hex()))
		c.JSON(http.StatusOK, gin.H{"orderId": order.ID.Hex(), "status": order.Status})
	}
}

func UpdateOrderStatus(env Env, lifecycle StatusChanger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /seller/orders/:id/status"
		defer handlePanic(c, env, route)

		sellerID, ok := requesterID(c)
		if !ok {
			respondWithError(c, env, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		var req updateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, env, route, err)
			return
		}

		ctx, cancel := env.requestContext(c)
		defer cancel()

		order, err := lifecycle.UpdateStatus(ctx, c.Param("id"), sellerID, req.Status)
		if err != nil {
			respondOperationError(c, env, route, "update_status", err)
			return
		}

		env.Metrics.Observe("update_status", "ok")
		c.JSON(http.StatusOK, gin.H{"orderId": order.ID.Hex(), "status": order.Status})
	}
}
