package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/akwareg/akwareg-backend/internal/app/controllers"
	"github.com/akwareg/akwareg-backend/internal/app/models"
	"github.com/akwareg/akwareg-backend/internal/app/models/dto"
	"github.com/akwareg/akwareg-backend/internal/middleware"
	"github.com/akwareg/akwareg-backend/internal/pkg/websocket"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	propertyController *controllers.PropertyController,
	adminController *controllers.AdminController,
	messageController *controllers.MessageController,
	statsController *controllers.StatsController,
	wsHandler *websocket.Handler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
		auth.POST("/logout", authController.Logout)
	}

	// --- Public browsing routes ---
	v1.GET("/properties", propertyController.Browse)
	// Owners and officials see their unapproved properties on this route
	v1.GET("/properties/:id", authMiddleware.OptionalJWTAuth(), propertyController.GetByID)
	v1.GET("/stats", statsController.PublicStats)

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/users/me", authController.GetProfile)
		authenticated.GET("/dashboard", statsController.Dashboard)
		authenticated.GET("/ws", wsHandler.HandleConnection)

		properties := authenticated.Group("/properties")
		{
			properties.POST("", propertyController.Create)
			properties.GET("/mine", propertyController.ListMine)
			properties.PUT("/:id", propertyController.Update)
			properties.POST("/:id/documents", propertyController.UploadDocument)
			properties.DELETE("/:id/documents/:docId", propertyController.DeleteDocument)
			properties.POST("/:id/images", propertyController.UploadImages)
			properties.POST("/:id/update-request", propertyController.SubmitUpdateRequest)
		}

		messages := authenticated.Group("/messages")
		{
			messages.POST("", messageController.Send)
			messages.GET("/conversations", messageController.Conversations)
			messages.GET("/unread-count", messageController.UnreadCount)
			messages.GET("/with/:userId", messageController.Thread)
			messages.PUT("/with/:userId/read", messageController.MarkRead)
		}

		// Verification desk routes for government officials and admins
		admin := authenticated.Group("/admin")
		admin.Use(authMiddleware.RoleRequired(models.RoleGovernmentOfficial, models.RoleAdmin))
		{
			admin.GET("/properties", adminController.ListProperties)
			admin.PUT("/properties/:id/review", adminController.StartReview)
			admin.PUT("/properties/:id/verify", adminController.VerifyProperty)
			admin.GET("/update-requests", adminController.ListUpdateRequests)
			admin.PUT("/update-requests/:id", adminController.ResolveUpdateRequest)
			admin.GET("/users", adminController.ListUsers)
			admin.PUT("/users/:id/verify", adminController.VerifyUser)
			admin.GET("/overview", adminController.Overview)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})

	// Swagger routes are registered in bootstrap, static uploads in server
}
