package httpserver

import (
	"net/http"
	"strconv"

	"botshop/internal/domain"
	catalogrepo "botshop/internal/repository/catalog"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func listProductsHandler(svc catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := svc.ListProducts(c.Request.Context(), c.Param("code"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		if products == nil {
			products = []domain.Product{}
		}
		c.JSON(http.StatusOK, products)
	}
}

func getProductHandler(svc catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			abortBadRequest(c, "product id must be an integer")
			return
		}
		product, err := svc.GetProduct(c.Request.Context(), id)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

type createProductRequest struct {
	ShopID           int64   `json:"shop_id" binding:"required"`
	Name             string  `json:"name" binding:"required"`
	Description      *string `json:"description"`
	PrepaymentAmount *string `json:"prepayment_amount"`
}

func createProductHandler(svc catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			abortBadRequest(c, "shop_id and name are required")
			return
		}
		if req.PrepaymentAmount != nil {
			if _, err := decimal.NewFromString(*req.PrepaymentAmount); err != nil {
				abortBadRequest(c, "prepayment_amount must be a valid number")
				return
			}
		}
		created, err := svc.CreateProduct(c.Request.Context(), catalogrepo.CreateProductInput{
			ShopID:           req.ShopID,
			Name:             req.Name,
			Description:      req.Description,
			PrepaymentAmount: req.PrepaymentAmount,
		})
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

func getVariantHandler(svc catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			abortBadRequest(c, "variant id must be an integer")
			return
		}
		variant, err := svc.GetVariant(c.Request.Context(), id)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, variant)
	}
}

type variantRequest struct {
	ProductID       int64   `json:"product_id"`
	Color           *string `json:"color"`
	Size            *string `json:"size"`
	Volume          *string `json:"volume"`
	Taste           *string `json:"taste"`
	Price           string  `json:"price" binding:"required"`
	DiscountPrice   *string `json:"discount_price"`
	DiscountPercent *int    `json:"discount_percent"`
	Stock           int     `json:"stock"`
	IsActive        *bool   `json:"is_active"`
}

func (req variantRequest) toDomain() (domain.ProductVariant, error) {
	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		return domain.ProductVariant{}, err
	}
	v := domain.ProductVariant{
		ProductID:       req.ProductID,
		Color:           req.Color,
		Size:            req.Size,
		Volume:          req.Volume,
		Taste:           req.Taste,
		Price:           price,
		DiscountPercent: req.DiscountPercent,
		Stock:           req.Stock,
		IsActive:        true,
	}
	if req.DiscountPrice != nil {
		dp, err := decimal.NewFromString(*req.DiscountPrice)
		if err != nil {
			return domain.ProductVariant{}, err
		}
		v.DiscountPrice = &dp
	}
	if req.IsActive != nil {
		v.IsActive = *req.IsActive
	}
	return v, nil
}

func createVariantHandler(svc catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req variantRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			abortBadRequest(c, "product_id and price are required")
			return
		}
		v, err := req.toDomain()
		if err != nil {
			abortBadRequest(c, "price fields must be valid numbers")
			return
		}
		created, err := svc.CreateVariant(c.Request.Context(), v)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

func updateVariantHandler(svc catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			abortBadRequest(c, "variant id must be an integer")
			return
		}
		var req variantRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			abortBadRequest(c, "price is required")
			return
		}
		v, err := req.toDomain()
		if err != nil {
			abortBadRequest(c, "price fields must be valid numbers")
			return
		}
		v.ID = id
		updated, err := svc.UpdateVariant(c.Request.Context(), v)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func deleteVariantHandler(svc catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			abortBadRequest(c, "variant id must be an integer")
			return
		}
		if err := svc.DeleteVariant(c.Request.Context(), id); err != nil {
			abortWithError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
