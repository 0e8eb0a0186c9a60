package delivery

import (
	"net/http"
	"time"

	authdomain "jobtrack-backend/internal/auth/domain"
	reminderdomain "jobtrack-backend/internal/reminder/domain"
	"jobtrack-backend/internal/reminder/usecase"

	"github.com/gin-gonic/gin"
)

// ReminderHandler handles reminder HTTP requests
type ReminderHandler struct {
	reminderUsecase usecase.ReminderUsecase
}

// NewReminderHandler creates a new ReminderHandler
func NewReminderHandler(reminderUsecase usecase.ReminderUsecase) *ReminderHandler {
	return &ReminderHandler{
		reminderUsecase: reminderUsecase,
	}
}

// ReminderRequest is the request body for creating or updating a reminder.
type ReminderRequest struct {
	ApplicationID string     `json:"application_id"`
	Kind          string     `json:"kind"`
	Title         string     `json:"title" binding:"required"`
	Notes         string     `json:"notes"`
	Color         string     `json:"color"`
	TriggerAt     time.Time  `json:"trigger_at" binding:"required"`
	EndAt         *time.Time `json:"end_at"`
}

func requestUser(c *gin.Context) *authdomain.User {
	value, exists := c.Get("user")
	if !exists {
		return nil
	}
	user, _ := value.(*authdomain.User)
	return user
}

// List returns all reminders for the authenticated user
// GET /api/reminders
func (h *ReminderHandler) List(c *gin.Context) {
	reminders, err := h.reminderUsecase.List(c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, reminders)
}

// Create adds a reminder
// POST /api/reminders
func (h *ReminderHandler) Create(c *gin.Context) {
	var req ReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reminder := &reminderdomain.Reminder{
		ApplicationID: req.ApplicationID,
		Kind:          req.Kind,
		Title:         req.Title,
		Notes:         req.Notes,
		Color:         req.Color,
		TriggerAt:     req.TriggerAt,
		EndAt:         req.EndAt,
	}
	if err := h.reminderUsecase.Create(c.Request.Context(), requestUser(c), reminder); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, reminder)
}

// Update edits a reminder
// PUT /api/reminders/:id
func (h *ReminderHandler) Update(c *gin.Context) {
	var req ReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reminder := &reminderdomain.Reminder{
		ID:        c.Param("id"),
		Title:     req.Title,
		Notes:     req.Notes,
		Color:     req.Color,
		TriggerAt: req.TriggerAt,
		EndAt:     req.EndAt,
	}
	if err := h.reminderUsecase.Update(c.Request.Context(), requestUser(c), reminder); err != nil {
		if err.Error() == "reminder not found" {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, reminder)
}

// Delete removes a reminder
// DELETE /api/reminders/:id
func (h *ReminderHandler) Delete(c *gin.Context) {
	if err := h.reminderUsecase.Delete(c.Request.Context(), requestUser(c), c.Param("id")); err != nil {
		if err.Error() == "reminder not found" {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "reminder deleted"})
}
