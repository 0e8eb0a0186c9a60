package api

import (
	"net/http"

	appDelivery "jobtrack-backend/internal/application/delivery"
	"jobtrack-backend/internal/auth/delivery"
	authUsecasePkg "jobtrack-backend/internal/auth/usecase"
	jobDelivery "jobtrack-backend/internal/job/delivery"
	reminderDelivery "jobtrack-backend/internal/reminder/delivery"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	r *gin.Engine,
	authUsecase authUsecasePkg.AuthUsecase,
	appHandler *appDelivery.ApplicationHandler,
	reminderHandler *reminderDelivery.ReminderHandler,
	jobHandler *jobDelivery.JobHandler,
) {
	authHandler := delivery.NewAuthHandler(authUsecase)

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", delivery.AuthMiddleware(authUsecase), authHandler.Me)
		}

		// Google OAuth routes. The callback is unauthenticated; the signed
		// state parameter carries the user identity through the redirect.
		oauth := api.Group("/oauth/google")
		{
			oauth.GET("/authorize", delivery.AuthMiddleware(authUsecase), authHandler.GoogleAuthorize)
			oauth.GET("/callback", authHandler.GoogleCallback)
			oauth.GET("/status", delivery.AuthMiddleware(authUsecase), authHandler.GoogleStatus)
			oauth.POST("/disconnect", delivery.AuthMiddleware(authUsecase), authHandler.GoogleDisconnect)
		}

		// Application routes (protected)
		applications := api.Group("/applications")
		applications.Use(delivery.AuthMiddleware(authUsecase))
		{
			applications.GET("", appHandler.List)
			applications.POST("", appHandler.Create)
			applications.GET("/:id", appHandler.Get)
			applications.PUT("/:id", appHandler.Update)
			applications.DELETE("/:id", appHandler.Delete)
		}

		// Reminder routes (protected)
		reminders := api.Group("/reminders")
		reminders.Use(delivery.AuthMiddleware(authUsecase))
		{
			reminders.GET("", reminderHandler.List)
			reminders.POST("", reminderHandler.Create)
			reminders.PUT("/:id", reminderHandler.Update)
			reminders.DELETE("/:id", reminderHandler.Delete)
		}

		// Job feed routes (protected)
		jobs := api.Group("/jobs")
		jobs.Use(delivery.AuthMiddleware(authUsecase))
		{
			jobs.GET("", jobHandler.List)
			jobs.POST("/recommend", jobHandler.Recommend)
			jobs.POST("/refresh", jobHandler.Refresh)
			jobs.POST("/:id/apply", jobHandler.Apply)
		}
	}
}
