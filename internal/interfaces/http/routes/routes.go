// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/Voidkillxx/FinalCaseStudy/internal/config"
	"github.com/Voidkillxx/FinalCaseStudy/internal/domain/navigation"
	"github.com/Voidkillxx/FinalCaseStudy/internal/interfaces/http/handlers"
	"github.com/Voidkillxx/FinalCaseStudy/internal/interfaces/http/middleware"
	"github.com/Voidkillxx/FinalCaseStudy/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Dependencies are the shared services the route groups are built from
type Dependencies struct {
	Config   *config.Config
	Logger   *logrus.Logger
	Sessions *session.Manager
	Receipts handlers.ReceiptRenderer
}

// SetupSessionRoutes sets up session creation and navbar routes
func SetupSessionRoutes(rg *gin.RouterGroup, deps Dependencies, requireSession gin.HandlerFunc) {
	sessionHandler := handlers.NewSessionHandler(deps.Sessions, deps.Config, deps.Logger)

	rg.POST("/sessions", sessionHandler.CreateSession)

	nav := rg.Group("/nav")
	nav.Use(requireSession)
	{
		nav.GET("", sessionHandler.GetNav)
		nav.PUT("/search", sessionHandler.SetSearch)
		nav.POST("/reset", sessionHandler.ResetFilters)
		nav.POST("/logout", sessionHandler.RequestLogout)
		nav.POST("/logout/confirm", sessionHandler.ConfirmLogout)
		nav.POST("/logout/cancel", sessionHandler.CancelLogout)
	}
}

// SetupProductRoutes sets up catalog search routes
func SetupProductRoutes(rg *gin.RouterGroup, requireSession gin.HandlerFunc) {
	productHandler := handlers.NewProductHandler()

	products := rg.Group("/products")
	products.Use(requireSession)
	{
		products.GET("", productHandler.ListProducts)
	}
}

// SetupAuthRoutes sets up registration, OTP and login routes
func SetupAuthRoutes(rg *gin.RouterGroup, deps Dependencies, requireSession gin.HandlerFunc) {
	authHandler := handlers.NewAuthHandler(deps.Sessions, deps.Logger)

	auth := rg.Group("/auth")
	auth.Use(requireSession)
	{
		auth.GET("/register", authHandler.GetRegistration)
		auth.POST("/register", authHandler.Register)
		auth.POST("/register/back", authHandler.BackToForm)
		auth.POST("/otp/verify", authHandler.VerifyOtp)
		auth.POST("/otp/resend", authHandler.ResendOtp)
		auth.POST("/login", authHandler.Login)
	}
}

// SetupCartRoutes sets up cart routes
func SetupCartRoutes(rg *gin.RouterGroup, requireSession gin.HandlerFunc) {
	cartHandler := handlers.NewCartHandler()

	cart := rg.Group("/cart")
	cart.Use(requireSession, middleware.RequireLogin(navigation.DestinationCart))
	{
		cart.GET("", cartHandler.GetCart)
		cart.POST("/refresh", cartHandler.RefreshCart)
		cart.POST("/items", cartHandler.AddToCart)
		cart.POST("/items/:id/increase", cartHandler.IncreaseQuantity)
		cart.POST("/items/:id/decrease", cartHandler.DecreaseQuantity)
		cart.POST("/items/:id/remove", cartHandler.RequestRemove)
		cart.POST("/items/:id/select", cartHandler.ToggleSelect)
		cart.POST("/dialog/confirm", cartHandler.ConfirmRemove)
		cart.POST("/dialog/cancel", cartHandler.CancelRemove)
	}
}

// SetupOrderRoutes sets up order history and receipt routes
func SetupOrderRoutes(rg *gin.RouterGroup, deps Dependencies, requireSession gin.HandlerFunc) {
	orderHandler := handlers.NewOrderHandler()
	receiptHandler := handlers.NewReceiptHandler(deps.Receipts, deps.Logger)

	orders := rg.Group("/orders")
	orders.Use(requireSession, middleware.RequireLogin(navigation.DestinationOrders))
	{
		orders.GET("", orderHandler.GetOrders)
		orders.POST("/refresh", orderHandler.RefreshOrders)
		orders.POST("/cancel/confirm", orderHandler.ConfirmCancel)
		orders.POST("/cancel/decline", orderHandler.DeclineCancel)
		orders.POST("/:id/cancel", orderHandler.RequestCancel)
		orders.GET("/:id/receipt", receiptHandler.DownloadReceipt)
	}
}

// SetupRoutes sets up all API routes
func SetupRoutes(rg *gin.RouterGroup, deps Dependencies) {
	requireSession := middleware.Session(deps.Sessions, deps.Logger)

	SetupSessionRoutes(rg, deps, requireSession)
	SetupProductRoutes(rg, requireSession)
	SetupAuthRoutes(rg, deps, requireSession)
	SetupCartRoutes(rg, requireSession)
	SetupOrderRoutes(rg, deps, requireSession)
}
