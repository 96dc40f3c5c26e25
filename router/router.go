package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/table-orders/config"
	"github.com/yeremiapane/table-orders/controllers"
	"github.com/yeremiapane/table-orders/kds"
	"github.com/yeremiapane/table-orders/middlewares"
	"github.com/yeremiapane/table-orders/services"
	"github.com/yeremiapane/table-orders/utils"
)

// Dependencies holds everything the routes are wired to.
type Dependencies struct {
	Config  *config.AppConfig
	Orders  *services.OrderService
	Health  controllers.HealthChecker
	KDS     *kds.Hub
	Limiter *middlewares.RateLimiter
}

func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.New()

	r.Use(middlewares.RequestID())
	r.Use(middlewares.Recovery())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.SecurityHeaders(deps.Config.GinMode == gin.ReleaseMode))
	r.Use(middlewares.CORSMiddlewares())
	if deps.Limiter != nil {
		r.Use(deps.Limiter.RateLimit())
	}

	expose := deps.Config.ExposeErrorDetail

	// Inisialisasi controller
	orderCtrl := controllers.NewOrderController(deps.Orders, expose)
	healthCtrl := controllers.NewHealthController(deps.Health, expose)

	api := r.Group("/api/v1")
	api.GET("/health", healthCtrl.Health)

	// ORDERS per table
	tables := api.Group("/tables/:table_id/orders")
	{
		tables.POST("", orderCtrl.AddOrders)
		tables.GET("", orderCtrl.GetTableOrders)
		tables.GET("/:order_id", orderCtrl.GetOrderByID)
		tables.DELETE("/:order_id", orderCtrl.DeleteOrder)
	}

	// Endpoint KDS WebSocket
	if deps.KDS != nil {
		kdsCtrl := controllers.NewKDSController(deps.KDS)
		api.GET("/kds/ws", kdsCtrl.Stream)
	}

	r.NoRoute(func(c *gin.Context) {
		utils.RespondStatus(c, http.StatusNotFound, "Route not found")
	})

	return r
}
