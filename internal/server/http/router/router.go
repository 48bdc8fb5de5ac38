package router

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/tulamia/orderdesk/internal/server/http/handlers"
	"github.com/tulamia/orderdesk/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StorefrontFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.HandleMethodNotAllowed = true
	engine.NoMethod(func(c *gin.Context) {
		c.Status(http.StatusMethodNotAllowed)
	})

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.CORS())
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	storeHandler := handlers.NewStoreHandler(facade)
	paymentHandler := handlers.NewPaymentHandler(facade)
	adminHandler := handlers.NewAdminHandler(facade)

	api := engine.Group("/api")
	api.GET("/menu", storeHandler.Menu)
	api.GET("/orders", storeHandler.Orders)

	api.GET("/cart", storeHandler.Cart)
	api.POST("/cart/items", storeHandler.AddItem)
	api.PUT("/cart/items/:id", storeHandler.UpdateItem)
	api.DELETE("/cart/items/:id", storeHandler.RemoveItem)
	api.DELETE("/cart", storeHandler.ClearCart)

	api.POST("/checkout", storeHandler.Checkout)

	api.GET("/paypal/availability", paymentHandler.Availability)
	api.POST("/paypal/capture", paymentHandler.Capture)

	admin := api.Group("/admin")
	admin.POST("/login", adminHandler.Login)

	adminAuth := admin.Group("")
	adminAuth.Use(middleware.AdminRequired(facade))
	adminAuth.PUT("/menu", adminHandler.UpsertMenuItem)
	adminAuth.DELETE("/menu/:id", adminHandler.DeleteMenuItem)
	adminAuth.PATCH("/orders/:id/status", adminHandler.SetOrderStatus)
	adminAuth.DELETE("/orders/:id", adminHandler.DeleteOrder)

	return engine
}
