package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cms-backend/internal/shared/middleware"
	"cms-backend/pkg/container"
)

// SetupRouter wires the HTTP surface onto the container's handlers.
func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupUserRoutes(v1, c)
		setupAdminRoutes(v1, c)
		setupBlogRoutes(v1, c)
		setupPhotographyRoutes(v1, c)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
	}
}

// ========================================
// USER ROUTES
// ========================================
func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container) {
	users := v1.Group("/users")
	users.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		users.GET("/me", c.UserHandler.GetProfile)
	}
}

// ========================================
// ADMIN ROUTES
// ========================================
func setupAdminRoutes(v1 *gin.RouterGroup, c *container.Container) {
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(c.JWTManager), middleware.AdminMiddleware())
	{
		admin.GET("/users", c.UserHandler.ListUsers)
		admin.PUT("/users/:id/role", c.UserHandler.UpdateUserRole)
	}
}

// ========================================
// BLOG ROUTES
// ========================================
func setupBlogRoutes(v1 *gin.RouterGroup, c *container.Container) {
	blogs := v1.Group("/blogs")
	{
		// Public reads (active content only)
		blogs.GET("", c.BlogHandler.List)
		blogs.GET("/user/:user_id", c.BlogHandler.ListByUser)
		blogs.GET("/tag/:tag", c.BlogHandler.ListByTag)
		blogs.GET("/section/:section", c.BlogHandler.ListBySection)
		blogs.GET("/:id", c.BlogHandler.GetByID)
	}

	authed := v1.Group("/blogs")
	authed.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		// Owner-only edit; owner-or-admin moderation
		authed.PUT("/:id", c.BlogHandler.Update)
		authed.DELETE("/:id", c.BlogHandler.Delete)
		authed.PUT("/archive/:id", c.BlogHandler.Archive)

		// Interactions: any authenticated user
		authed.PUT("/like/:id", c.BlogHandler.Like)
		authed.PUT("/unlike/:id", c.BlogHandler.Unlike)
		authed.POST("/comment/:id", c.BlogHandler.AddComment)
		authed.DELETE("/comment/:id/:comment_id", c.BlogHandler.DeleteComment)
	}

	adminBlogs := v1.Group("/blogs")
	adminBlogs.Use(middleware.AuthMiddleware(c.JWTManager), middleware.AdminMiddleware())
	{
		adminBlogs.POST("", c.BlogHandler.Create)
		adminBlogs.POST("/upload/wysiwyg-image", c.BlogHandler.UploadWysiwygImage)
		adminBlogs.GET("/admin/all", c.BlogHandler.AdminListAll)
	}
}

// ========================================
// PHOTOGRAPHY ROUTES
// ========================================
func setupPhotographyRoutes(v1 *gin.RouterGroup, c *container.Container) {
	photos := v1.Group("/photography")
	{
		photos.GET("", c.PhotographyHandler.List)
		photos.GET("/category/:category", c.PhotographyHandler.ListByCategory)
		photos.GET("/:id", c.PhotographyHandler.GetByID)
	}

	authed := v1.Group("/photography")
	authed.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		authed.PUT("/:id", c.PhotographyHandler.Update)
		authed.DELETE("/:id", c.PhotographyHandler.Delete)
		authed.PUT("/archive/:id", c.PhotographyHandler.Archive)
	}

	adminPhotos := v1.Group("/photography")
	adminPhotos.Use(middleware.AuthMiddleware(c.JWTManager), middleware.AdminMiddleware())
	{
		adminPhotos.POST("", c.PhotographyHandler.Create)
		adminPhotos.GET("/admin/all", c.PhotographyHandler.AdminListAll)
	}
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
			health["status"] = "degraded"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}

		redisStatus := "ok"
		if appCtx.Cache == nil {
			redisStatus = "disconnected"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Cache.Ping(ctx); err != nil {
				redisStatus = fmt.Sprintf("error: %v", err)
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
