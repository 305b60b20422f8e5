package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type upsertBasketRequest struct {
	TelegramID string `json:"telegram_id" binding:"required"`
	VariantID  int64  `json:"product_variant_id" binding:"required"`
	Quantity   *int   `json:"quantity"`
}

func upsertBasketHandler(svc basketService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req upsertBasketRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			abortBadRequest(c, "telegram_id and product_variant_id are required")
			return
		}
		quantity := 1
		if req.Quantity != nil {
			quantity = *req.Quantity
		}

		line, err := svc.UpsertLine(c.Request.Context(), req.TelegramID, req.VariantID, quantity)
		if err != nil {
			abortWithError(c, err)
			return
		}
		if line == nil {
			c.JSON(http.StatusOK, gin.H{"message": "Basket line removed", "basket_quantity": 0})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Basket updated", "basket_quantity": line.Quantity})
	}
}

type stepBasketRequest struct {
	TelegramID string `json:"telegram_id" binding:"required"`
	VariantID  int64  `json:"product_variant_id" binding:"required"`
	Action     string `json:"action" binding:"required"`
}

func stepBasketHandler(svc basketService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req stepBasketRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			abortBadRequest(c, "telegram_id, product_variant_id and action are required")
			return
		}

		var delta int
		switch req.Action {
		case "add":
			delta = 1
		case "remove":
			delta = -1
		default:
			abortBadRequest(c, "Invalid action. Use 'add' or 'remove'.")
			return
		}

		quantity, err := svc.IncrementLine(c.Request.Context(), req.TelegramID, req.VariantID, delta)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"quantity": quantity})
	}
}

func listBasketHandler(svc basketService) gin.HandlerFunc {
	return func(c *gin.Context) {
		telegramID := c.Query("telegram_id")
		if telegramID == "" {
			abortBadRequest(c, "telegram_id is required")
			return
		}
		summary, err := svc.ListLines(c.Request.Context(), telegramID, c.Param("shop_code"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}

func deleteBasketLineHandler(svc basketService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			abortBadRequest(c, "basket line id must be an integer")
			return
		}
		if err := svc.DeleteLine(c.Request.Context(), id); err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, detailResponse{Detail: "Basket line deleted."})
	}
}
