package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cantina-ativa/canteen-api/internal/config"
	"github.com/cantina-ativa/canteen-api/internal/presentation/http/handler"
	"github.com/cantina-ativa/canteen-api/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Product *handler.ProductHandler
	Client  *handler.ClientHandler
	Sale    *handler.SaleHandler
	Cart    *handler.CartHandler
	Report  *handler.ReportHandler
	Receipt *handler.ReceiptHandler
	Company *handler.CompanyHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg    *config.Config
	Logger *zap.Logger
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		v1.Use(rateLimiter.Middleware())

		registerProductRoutes(v1, h)
		registerClientRoutes(v1, h)
		registerSaleRoutes(v1, h)
		registerCartRoutes(v1, h)
		registerReportRoutes(v1, h)
		registerCompanyRoutes(v1, h)
	}

	return router
}

func registerProductRoutes(v1 *gin.RouterGroup, h *Handlers) {
	products := v1.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.PUT("/:index", h.Product.Update)
		products.DELETE("/:index", h.Product.Delete)
	}
}

func registerClientRoutes(v1 *gin.RouterGroup, h *Handlers) {
	clients := v1.Group("/clients")
	{
		clients.GET("", h.Client.List)
		clients.GET("/:name", h.Client.Get)
		clients.PUT("/:name/credits", h.Client.AdjustCredit)
		clients.POST("/:name/mark-paid", h.Client.MarkPaid)
		clients.GET("/:name/credit-history", h.Client.CreditHistory)
		clients.POST("/:name/sales/:id/cancel", h.Sale.Cancel)
		clients.GET("/:name/sales/:id/receipt", h.Receipt.Get)
		clients.GET("/:name/sales/:id/receipt/pdf", h.Receipt.Download)
	}
}

func registerSaleRoutes(v1 *gin.RouterGroup, h *Handlers) {
	sales := v1.Group("/sales")
	{
		sales.GET("", h.Sale.History)
		sales.POST("/settle-all", h.Sale.SettleAll)
		sales.GET("/payment-methods", h.Sale.PaymentMethods)
	}
}

func registerCartRoutes(v1 *gin.RouterGroup, h *Handlers) {
	carts := v1.Group("/carts")
	{
		carts.POST("", h.Cart.Create)
		carts.GET("/:id", h.Cart.Get)
		carts.DELETE("/:id", h.Cart.Delete)
		carts.POST("/:id/items", h.Cart.AddItem)
		carts.POST("/:id/items/increase", h.Cart.IncreaseItem)
		carts.POST("/:id/items/decrease", h.Cart.DecreaseItem)
		carts.DELETE("/:id/items/:product", h.Cart.RemoveItem)
		carts.POST("/:id/clear", h.Cart.Clear)
		carts.POST("/:id/checkout", h.Cart.Checkout)
	}
}

func registerReportRoutes(v1 *gin.RouterGroup, h *Handlers) {
	reports := v1.Group("/reports")
	{
		reports.GET("/day/:date", h.Report.Day)
		reports.GET("/day/:date/export", h.Report.Export)
	}
}

func registerCompanyRoutes(v1 *gin.RouterGroup, h *Handlers) {
	company := v1.Group("/company")
	{
		company.GET("", h.Company.Get)
		company.PUT("", h.Company.Update)
	}
}
