// Package router holds the route table of the HTTP API.
package router

import (
	"github.com/franciscosanchezn/gin-shop-api/internal/controllers"
	"github.com/franciscosanchezn/gin-shop-api/internal/middleware"
	"github.com/franciscosanchezn/gin-shop-api/internal/models"
	"github.com/gin-gonic/gin"
)

// Dependencies are the handlers and gates the routes are built from
type Dependencies struct {
	Auth         *controllers.AuthController
	Products     controllers.ProductController
	Tokens       middleware.TokenParser
	LoginLimiter *middleware.RateLimiter
}

// New builds the gin engine with middleware and every route registered
func New(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger())
	setupRoutes(router, deps)
	return router
}

func setupRoutes(router *gin.Engine, deps Dependencies) {
	router.GET("/health", controllers.HealthCheck)

	loginHandlers := []gin.HandlerFunc{deps.Auth.Login}
	if deps.LoginLimiter != nil {
		loginHandlers = append([]gin.HandlerFunc{deps.LoginLimiter.Middleware()}, loginHandlers...)
	}

	authApi := router.Group("/auth")
	{
		authApi.POST("/register", deps.Auth.Register)
		// Only login is throttled
		authApi.POST("/login", loginHandlers...)
	}

	// Every product route requires a valid bearer token
	productApi := router.Group("/products")
	productApi.Use(middleware.JWTAuth(deps.Tokens))
	{
		productApi.GET("", deps.Products.GetAllProducts)
		productApi.GET("/:id", deps.Products.GetProductByID)

		adminOnly := middleware.RequireRole(models.RoleAdmin)
		productApi.POST("", adminOnly, deps.Products.CreateProduct)
		productApi.PUT("/:id", adminOnly, deps.Products.UpdateProduct)
		productApi.DELETE("/:id", adminOnly, deps.Products.DeleteProduct)
	}
}
