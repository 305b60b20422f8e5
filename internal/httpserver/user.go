package httpserver

import (
	"net/http"
	"strconv"

	usersvc "botshop/internal/service/user"
	"github.com/gin-gonic/gin"
)

type registerUserRequest struct {
	PhoneNumber      string  `json:"phone_number" binding:"required"`
	TelegramID       string  `json:"telegram_id" binding:"required"`
	TelegramUsername *string `json:"telegram_username"`
	FirstName        *string `json:"first_name"`
	LastName         *string `json:"last_name"`
	Language         string  `json:"language"`
}

func registerUserHandler(svc userService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			abortBadRequest(c, "phone_number and telegram_id are required")
			return
		}

		_, exists, err := svc.Register(c.Request.Context(), usersvc.RegisterInput{
			PhoneNumber:      req.PhoneNumber,
			TelegramID:       req.TelegramID,
			TelegramUsername: req.TelegramUsername,
			FirstName:        req.FirstName,
			LastName:         req.LastName,
			Language:         req.Language,
		})
		if err != nil {
			abortWithError(c, err)
			return
		}
		if exists {
			c.JSON(http.StatusOK, detailResponse{Detail: "User with this telegram_id already exists."})
			return
		}
		c.JSON(http.StatusCreated, detailResponse{Detail: "User registered successfully."})
	}
}

func getUserHandler(svc userService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := svc.Get(c.Request.Context(), c.Param("telegram_id"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

type patchUserRequest struct {
	PhoneNumber      *string  `json:"phone_number"`
	TelegramUsername *string  `json:"telegram_username"`
	FirstName        *string  `json:"first_name"`
	LastName         *string  `json:"last_name"`
	Language         *string  `json:"language"`
	Addresses        []string `json:"addresses"`
}

func patchUserHandler(svc userService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req patchUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			abortBadRequest(c, "malformed request body")
			return
		}

		user, err := svc.Patch(c.Request.Context(), c.Param("telegram_id"), usersvc.PatchInput{
			PhoneNumber:      req.PhoneNumber,
			TelegramUsername: req.TelegramUsername,
			FirstName:        req.FirstName,
			LastName:         req.LastName,
			Language:         req.Language,
			NewAddresses:     req.Addresses,
		})
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

type setActiveShopRequest struct {
	TelegramID string `json:"telegram_id" binding:"required"`
	ShopCode   string `json:"shop_code" binding:"required"`
}

func setActiveShopHandler(svc userService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req setActiveShopRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			abortBadRequest(c, "telegram_id and shop_code are required")
			return
		}
		if err := svc.SetActiveShop(c.Request.Context(), req.TelegramID, req.ShopCode); err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, detailResponse{Detail: "Active shop updated."})
	}
}

func deleteAddressHandler(svc userService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			abortBadRequest(c, "address id must be an integer")
			return
		}
		if err := svc.DeleteAddress(c.Request.Context(), id); err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, detailResponse{Detail: "Address deleted."})
	}
}

func checkShopHandler(svc userService) gin.HandlerFunc {
	return func(c *gin.Context) {
		check, err := svc.CheckShop(c.Request.Context(), c.Param("code"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, check)
	}
}
