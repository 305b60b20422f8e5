package httpserver

import (
	"context"
	"errors"
	"log"

	"botshop/internal/domain"
	"botshop/internal/notify"
	catalogrepo "botshop/internal/repository/catalog"
	basketsvc "botshop/internal/service/basket"
	ordersvc "botshop/internal/service/order"
	usersvc "botshop/internal/service/user"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type userService interface {
	Register(ctx context.Context, in usersvc.RegisterInput) (*domain.User, bool, error)
	Get(ctx context.Context, telegramID string) (*domain.User, error)
	Patch(ctx context.Context, telegramID string, in usersvc.PatchInput) (*domain.User, error)
	DeleteAddress(ctx context.Context, addressID int64) error
	SetActiveShop(ctx context.Context, telegramID, shopCode string) error
	CheckShop(ctx context.Context, shopCode string) (*usersvc.ShopCheck, error)
}

type catalogService interface {
	ListProducts(ctx context.Context, shopCode string) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	CreateProduct(ctx context.Context, in catalogrepo.CreateProductInput) (*domain.Product, error)
	GetVariant(ctx context.Context, id int64) (*domain.ProductVariant, error)
	CreateVariant(ctx context.Context, v domain.ProductVariant) (*domain.ProductVariant, error)
	UpdateVariant(ctx context.Context, v domain.ProductVariant) (*domain.ProductVariant, error)
	DeleteVariant(ctx context.Context, id int64) error
}

type basketService interface {
	UpsertLine(ctx context.Context, telegramID string, variantID int64, quantity int) (*domain.BasketLine, error)
	IncrementLine(ctx context.Context, telegramID string, variantID int64, delta int) (int, error)
	ListLines(ctx context.Context, telegramID, shopCode string) (*basketsvc.Summary, error)
	DeleteLine(ctx context.Context, lineID int64) error
}

type favoriteService interface {
	Add(ctx context.Context, telegramID string, productID int64) (bool, error)
	List(ctx context.Context, telegramID, shopCode string) ([]domain.Favorite, error)
	Delete(ctx context.Context, telegramID string, favoriteID int64) error
}

type orderService interface {
	Create(ctx context.Context, telegramID string, in ordersvc.CreateInput) (*ordersvc.CreateResult, error)
	UpdateStatus(ctx context.Context, orderID int64, rawStatus string) (*ordersvc.StatusResult, error)
	ListUserOrders(ctx context.Context, telegramID string) ([]domain.Order, error)
	GetOrder(ctx context.Context, telegramID string, orderID int64) (*domain.Order, error)
	ListShopOrders(ctx context.Context, shopCode string) ([]domain.Order, error)
}

// Deps carries the services the router wires into handlers.
type Deps struct {
	UserSvc     userService
	CatalogSvc  catalogService
	BasketSvc   basketService
	FavoriteSvc favoriteService
	OrderSvc    orderService
	Notifier    *notify.Dispatcher
}

// buildRouter wires routes for the storefront API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	if deps.UserSvc == nil || deps.CatalogSvc == nil || deps.BasketSvc == nil || deps.FavoriteSvc == nil || deps.OrderSvc == nil {
		return nil, errors.New("httpserver: missing service dependency")
	}
	if deps.Notifier == nil {
		deps.Notifier = notify.NewDispatcher(nil, logger)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.Default())

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	router.POST("/users/register", registerUserHandler(deps.UserSvc))
	router.GET("/users/:telegram_id", getUserHandler(deps.UserSvc))
	router.PATCH("/users/:telegram_id", patchUserHandler(deps.UserSvc))
	router.POST("/users/active-shop", setActiveShopHandler(deps.UserSvc))
	router.DELETE("/addresses/:id", deleteAddressHandler(deps.UserSvc))

	router.GET("/shops/:code/check", checkShopHandler(deps.UserSvc))
	router.GET("/shops/:code/products", listProductsHandler(deps.CatalogSvc))
	router.GET("/shops/:code/orders", listShopOrdersHandler(deps.OrderSvc))
	router.GET("/products/:id", getProductHandler(deps.CatalogSvc))
	router.POST("/products", createProductHandler(deps.CatalogSvc))

	router.GET("/variants/:id", getVariantHandler(deps.CatalogSvc))
	router.POST("/variants", createVariantHandler(deps.CatalogSvc))
	router.PATCH("/variants/:id", updateVariantHandler(deps.CatalogSvc))
	router.DELETE("/variants/:id", deleteVariantHandler(deps.CatalogSvc))

	router.POST("/basket", upsertBasketHandler(deps.BasketSvc))
	router.POST("/basket/step", stepBasketHandler(deps.BasketSvc))
	router.GET("/basket/:shop_code", listBasketHandler(deps.BasketSvc))
	router.DELETE("/basket/lines/:id", deleteBasketLineHandler(deps.BasketSvc))

	router.POST("/favorites", addFavoriteHandler(deps.FavoriteSvc))
	router.GET("/favorites/:shop_code", listFavoritesHandler(deps.FavoriteSvc))
	router.DELETE("/favorites/:id", deleteFavoriteHandler(deps.FavoriteSvc))

	router.POST("/orders", createOrderHandler(deps.OrderSvc, deps.Notifier))
	router.GET("/orders", listUserOrdersHandler(deps.OrderSvc))
	router.GET("/orders/:id", getOrderHandler(deps.OrderSvc))
	router.PATCH("/orders/:id/status", updateOrderStatusHandler(deps.OrderSvc, deps.Notifier))

	return router, nil
}
