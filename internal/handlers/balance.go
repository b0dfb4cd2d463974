package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"foodorder/internal/models"
	"foodorder/internal/orders"
)

type BalanceComputer interface {
	Compute(ctx context.Context, req orders.BalanceRequest) (models.BalanceResult, error)
	AuthorizeShop(ctx context.Context, shopID, userID string) error
}

type balanceQuery struct {
	Year      int  `form:"year" binding:"required,min=1"`
	Month     int  `form:"month" binding:"required,min=1,max=12"`
	Breakdown bool `form:"breakdown"`
}

// GetMyBalance reports what the authenticated buyer spent in one month.
func GetMyBalance(env Env, calculator BalanceComputer) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /me/balance"
		defer handlePanic(c, env, route)

		userID, ok := requesterID(c)
		if !ok {
			respondWithError(c, env, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		var q balanceQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			respondValidationError(c, env, route, err)
			return
		}

		ctx, cancel := env.requestContext(c)
		defer cancel()

		result, err := calculator.Compute(ctx, orders.BalanceRequest{
			SubjectID: userID,
			Scope:     models.ScopeUser,
			Year:      q.Year,
			Month:     q.Month,
			Breakdown: q.Breakdown,
		})
		if err != nil {
			respondOperationError(c, env, route, "balance", err)
			return
		}

		env.Metrics.Observe("balance", "ok")
		c.JSON(http.StatusOK, result)
	}
}

// GetShopBalance reports a seller's monthly revenue for a shop they own.
func GetShopBalance(env Env, calculator BalanceComputer) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /seller/shops/:id/balance"
		defer handlePanic(c, env, route)

		sellerID, ok := requesterID(c)
		if !ok {
			respondWithError(c, env, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		var q balanceQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			respondValidationError(c, env, route, err)
			return
		}

		ctx, cancel := env.requestContext(c)
		defer cancel()

		shopID := c.Param("id")
		if err := calculator.AuthorizeShop(ctx, shopID, sellerID); err != nil {
			respondOperationError(c, env, route, "balance", err)
			return
		}

		result, err := calculator.Compute(ctx, orders.BalanceRequest{
			SubjectID: shopID,
			Scope:     models.ScopeShop,
			Year:      q.Year,
			Month:     q.Month,
			Breakdown: q.Breakdown,
		})
		if err != nil {
			respondOperationError(c, env, route, "balance", err)
			return
		}

		env.Metrics.Observe("balance", "ok")
		c.JSON(http.StatusOK, result)
	}
}
