package httpserver

import (
	"net/http"
	"strconv"

	"botshop/internal/domain"
	"github.com/gin-gonic/gin"
)

type addFavoriteRequest struct {
	TelegramID string `json:"telegram_id" binding:"required"`
	ProductID  int64  `json:"product_id" binding:"required"`
}

func addFavoriteHandler(svc favoriteService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addFavoriteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			abortBadRequest(c, "telegram_id and product_id are required")
			return
		}
		created, err := svc.Add(c.Request.Context(), req.TelegramID, req.ProductID)
		if err != nil {
			abortWithError(c, err)
			return
		}
		if created {
			c.JSON(http.StatusCreated, detailResponse{Detail: "Product added to favorites."})
			return
		}
		c.JSON(http.StatusOK, detailResponse{Detail: "Product is already in favorites."})
	}
}

func listFavoritesHandler(svc favoriteService) gin.HandlerFunc {
	return func(c *gin.Context) {
		telegramID := c.Query("telegram_id")
		if telegramID == "" {
			abortBadRequest(c, "telegram_id is required")
			return
		}
		favorites, err := svc.List(c.Request.Context(), telegramID, c.Param("shop_code"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		if favorites == nil {
			favorites = []domain.Favorite{}
		}
		c.JSON(http.StatusOK, favorites)
	}
}

func deleteFavoriteHandler(svc favoriteService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			abortBadRequest(c, "favorite id must be an integer")
			return
		}
		telegramID := c.Query("telegram_id")
		if telegramID == "" {
			abortBadRequest(c, "telegram_id is required")
			return
		}
		if err := svc.Delete(c.Request.Context(), telegramID, id); err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, detailResponse{Detail: "Product removed from favorites."})
	}
}
