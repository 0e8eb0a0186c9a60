package api

import (
	appDelivery "jobtrack-backend/internal/application/delivery"
	appUsecasePkg "jobtrack-backend/internal/application/usecase"
	authUsecasePkg "jobtrack-backend/internal/auth/usecase"
	jobDelivery "jobtrack-backend/internal/job/delivery"
	jobUsecasePkg "jobtrack-backend/internal/job/usecase"
	reminderDelivery "jobtrack-backend/internal/reminder/delivery"
	reminderUsecasePkg "jobtrack-backend/internal/reminder/usecase"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	authUsecase     authUsecasePkg.AuthUsecase
	appHandler      *appDelivery.ApplicationHandler
	reminderHandler *reminderDelivery.ReminderHandler
	jobHandler      *jobDelivery.JobHandler
}

func NewHandler(
	authUc authUsecasePkg.AuthUsecase,
	appUc appUsecasePkg.ApplicationUsecase,
	reminderUc reminderUsecasePkg.ReminderUsecase,
	jobUc jobUsecasePkg.JobUsecase,
) *Handler {
	return &Handler{
		authUsecase:     authUc,
		appHandler:      appDelivery.NewApplicationHandler(appUc),
		reminderHandler: reminderDelivery.NewReminderHandler(reminderUc),
		jobHandler:      jobDelivery.NewJobHandler(jobUc),
	}
}

func (h *Handler) Start(addr string) error {
	r := gin.Default()

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	SetupRoutes(r, h.authUsecase, h.appHandler, h.reminderHandler, h.jobHandler)

	return r.Run(addr)
}
