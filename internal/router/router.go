// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/javajoker/storefront/internal/config"
	"github.com/javajoker/storefront/internal/handlers"
	"github.com/javajoker/storefront/internal/i18n"
	"github.com/javajoker/storefront/internal/middleware"
	"github.com/javajoker/storefront/internal/services"
	"github.com/javajoker/storefront/internal/utils"
)

// Dependencies are the services the HTTP layer is built on.
type Dependencies struct {
	Catalog  *services.CatalogService
	Sessions *services.SessionService
	Cart     *services.CartService
}

// Router owns the gin engine and the resources its middleware holds.
type Router struct {
	Engine  *gin.Engine
	limiter *middleware.RateLimiter
}

// Close releases the rate limiter's cleanup goroutine.
func (r *Router) Close() {
	r.limiter.Stop()
}

func Initialize(cfg *config.Config, deps Dependencies) *Router {
	// Initialize handlers
	productHandler := handlers.NewProductHandler(deps.Catalog)
	sessionHandler := handlers.NewSessionHandler(deps.Sessions)
	cartHandler := handlers.NewCartHandler(deps.Cart)
	notificationHandler := handlers.NewNotificationHandler()

	// Set session token secret
	utils.SetJWTSecret(cfg.Session.SecretKey)

	limiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.Frontend.BaseURL))
	r.Use(middleware.I18nMiddleware())
	r.Use(limiter.Middleware())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"version":   "1.0.0",
			"sessions":  deps.Sessions.Len(),
			"languages": i18n.GetSupportedLanguages(),
		})
	})

	r.NoRoute(func(c *gin.Context) {
		lang := utils.GetLangFromContext(c)
		utils.ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", i18n.T(lang, i18n.KeyRouteNotFound), nil)
	})

	sessionRequired := middleware.SessionRequired(deps.Sessions)

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Catalog routes
		products := v1.Group("/products")
		products.Use(middleware.OptionalSession(deps.Sessions))
		{
			products.GET("", productHandler.GetProducts)
			products.GET("/:id", productHandler.GetProduct)
		}
		v1.GET("/categories", productHandler.GetCategories)

		// Session routes
		v1.POST("/session", sessionHandler.CreateSession)
		v1.DELETE("/session", sessionRequired, sessionHandler.EndSession)

		// Cart routes
		cartGroup := v1.Group("/cart")
		cartGroup.Use(sessionRequired)
		{
			cartGroup.GET("", cartHandler.GetCart)
			cartGroup.DELETE("", cartHandler.ClearCart)
			cartGroup.POST("/items", cartHandler.AddItem)
			cartGroup.PUT("/items/:id", cartHandler.UpdateItem)
			cartGroup.DELETE("/items/:id", cartHandler.RemoveItem)
			cartGroup.POST("/coupon", cartHandler.ApplyCoupon)
			cartGroup.DELETE("/coupon", cartHandler.RemoveCoupon)
			cartGroup.POST("/checkout", cartHandler.Checkout)
		}

		// Notification routes
		notifications := v1.Group("/notifications")
		notifications.Use(sessionRequired)
		{
			notifications.GET("", notificationHandler.GetNotifications)
			notifications.DELETE("", notificationHandler.ClearNotifications)
			notifications.DELETE("/:id", notificationHandler.DismissNotification)
			notifications.POST("/:id/action", notificationHandler.TriggerAction)
		}
	}

	return &Router{Engine: r, limiter: limiter}
}
