package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"foodorder/internal/models"
)

type OrderResolver interface {
	Resolve(ctx context.Context, orderID string) (models.OrderDetails, error)
}

func GetOrderDetails(env Env, resolver OrderResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders/:id/details"
		defer handlePanic(c, env, route)

		ctx, cancel := env.requestContext(c)
		defer cancel()

		details, err := resolver.Resolve(ctx, c.Param("id"))
		if err != nil {
			respondOperationError(c, env, route, "resolve", err)
			return
		}

		env.Metrics.Observe("resolve", "ok")
		c.JSON(http.StatusOK, details)
	}
}
