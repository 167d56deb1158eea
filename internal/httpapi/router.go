package httpapi

import (
	"database/sql"
	"net/http"
	"time"

	"storely-be/internal/cart"
	"storely-be/internal/event"
	"storely-be/internal/logger"
	"storely-be/internal/metrics"
	"storely-be/internal/middleware"
	"storely-be/internal/order"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Deps carries everything the router wires together.
type Deps struct {
	DB        *sql.DB
	JWTSecret []byte
	OrderSvc  order.Service
	CartSvc   cart.Service
	Hub       *event.Hub
}

func NewRouter(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestIDMiddleware())
	r.Use(logger.LoggingMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	orders := NewOrderHandler(deps.OrderSvc)
	carts := NewCartHandler(deps.CartSvc)
	admin := NewAdminHandler(deps.OrderSvc)

	r.GET("/healthcheck", func(c *gin.Context) {
		if deps.DB != nil {
			if err := deps.DB.PingContext(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/metrics", func(c *gin.Context) {
		c.JSON(http.StatusOK, metrics.Snapshot())
	})

	api := r.Group("/api")
	api.Use(middleware.Auth(deps.JWTSecret), middleware.RateLimit())
	{
		api.POST("/orders", orders.PlaceOrder)
		api.GET("/orders/history", orders.GetHistory)
		api.GET("/orders/:orderID", orders.GetDetails)
		api.PUT("/orders/:orderID/cancel", orders.Cancel)

		api.GET("/cart", carts.GetCart)
		api.POST("/cart", carts.AddItem)
		api.PUT("/cart", carts.UpdateQuantity)
		api.DELETE("/cart/:productID", carts.RemoveItem)

		adm := api.Group("/admin", middleware.RequireAdmin())
		adm.PUT("/orders/:orderID/status", admin.UpdateStatus)
		adm.PUT("/orders/:orderID/payment-status", admin.UpdatePaymentStatus)
	}

	if deps.Hub != nil {
		r.GET("/ws/orders", middleware.Auth(deps.JWTSecret), deps.Hub.Handle)
	}

	return r
}
