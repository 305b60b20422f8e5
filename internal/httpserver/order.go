package httpserver

import (
	"net/http"
	"strconv"
	"time"

	"botshop/internal/domain"
	"botshop/internal/notify"
	ordersvc "botshop/internal/service/order"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type orderItemRequest struct {
	BasketID  *int64 `json:"basket_id"`
	VariantID *int64 `json:"product_variant_id"`
	Quantity  int    `json:"quantity"`
}

type createOrderRequest struct {
	TelegramID string             `json:"telegram_id" binding:"required"`
	AddressID  int64              `json:"address_id" binding:"required"`
	Comment    *string            `json:"comment"`
	TotalPrice *string            `json:"total_price"`
	Items      []orderItemRequest `json:"items"`
}

func createOrderHandler(svc orderService, notifier *notify.Dispatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			abortBadRequest(c, "telegram_id and address_id are required")
			return
		}

		in := ordersvc.CreateInput{
			AddressID: req.AddressID,
			Comment:   req.Comment,
		}
		if req.TotalPrice != nil {
			total, err := decimal.NewFromString(*req.TotalPrice)
			if err != nil {
				abortWithError(c, domain.ErrMalformedTotal)
				return
			}
			in.ClientTotal = &total
		}
		for _, item := range req.Items {
			in.Lines = append(in.Lines, ordersvc.LineInput{
				BasketLineID: item.BasketID,
				VariantID:    item.VariantID,
				Quantity:     item.Quantity,
			})
		}

		res, err := svc.Create(c.Request.Context(), req.TelegramID, in)
		if err != nil {
			abortWithError(c, err)
			return
		}

		// Best-effort: the order is committed; notification failures are only
		// logged inside the dispatcher.
		notifier.Dispatch(c.Request.Context(), res.Messages)

		c.JSON(http.StatusCreated, gin.H{
			"order_id":    res.Order.ID,
			"total_price": res.Order.TotalPrice,
		})
	}
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func updateOrderStatusHandler(svc orderService, notifier *notify.Dispatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			abortBadRequest(c, "order id must be an integer")
			return
		}
		var req updateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			abortBadRequest(c, "status is required")
			return
		}

		res, err := svc.UpdateStatus(c.Request.Context(), id, req.Status)
		if err != nil {
			abortWithError(c, err)
			return
		}

		notifier.Dispatch(c.Request.Context(), res.Messages)

		c.JSON(http.StatusOK, detailResponse{Detail: "Order status updated."})
	}
}

// orderResponse is the wire shape for order reads, with localized status
// labels resolved per locale.
type orderResponse struct {
	ID            int64              `json:"id"`
	Address       string             `json:"address"`
	Status        domain.OrderStatus `json:"status"`
	StatusDisplay map[string]string  `json:"status_display"`
	TotalPrice    decimal.Decimal    `json:"total_price"`
	Comment       *string            `json:"comment,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	Items         []domain.OrderItem `json:"items"`
}

func toOrderResponse(ord domain.Order) orderResponse {
	items := ord.Items
	if items == nil {
		items = []domain.OrderItem{}
	}
	return orderResponse{
		ID:      ord.ID,
		Address: ord.Address,
		Status:  ord.Status,
		StatusDisplay: map[string]string{
			domain.LangUz: ord.Status.Label(domain.LangUz),
			domain.LangRu: ord.Status.Label(domain.LangRu),
		},
		TotalPrice: ord.TotalPrice,
		Comment:    ord.Comment,
		CreatedAt:  ord.CreatedAt,
		Items:      items,
	}
}

func toOrderResponses(orders []domain.Order) []orderResponse {
	result := make([]orderResponse, 0, len(orders))
	for _, ord := range orders {
		result = append(result, toOrderResponse(ord))
	}
	return result
}

// statusCatalog lists every known status with its localized labels, for shop
// dashboards.
func statusCatalog() []gin.H {
	statuses := domain.OrderStatuses()
	result := make([]gin.H, 0, len(statuses))
	for _, s := range statuses {
		result = append(result, gin.H{
			"key":        s,
			domain.LangUz: s.Label(domain.LangUz),
			domain.LangRu: s.Label(domain.LangRu),
		})
	}
	return result
}

func listUserOrdersHandler(svc orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		telegramID := c.Query("telegram_id")
		if telegramID == "" {
			abortBadRequest(c, "telegram_id is required")
			return
		}
		orders, err := svc.ListUserOrders(c.Request.Context(), telegramID)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, toOrderResponses(orders))
	}
}

func getOrderHandler(svc orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			abortBadRequest(c, "order id must be an integer")
			return
		}
		telegramID := c.Query("telegram_id")
		if telegramID == "" {
			abortBadRequest(c, "telegram_id is required")
			return
		}
		ord, err := svc.GetOrder(c.Request.Context(), telegramID, id)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, toOrderResponse(*ord))
	}
}

func listShopOrdersHandler(svc orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := svc.ListShopOrders(c.Request.Context(), c.Param("code"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"orders":   toOrderResponses(orders),
			"statuses": statusCatalog(),
		})
	}
}
