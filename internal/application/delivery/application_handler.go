package delivery

import (
	"net/http"
	"time"

	appdomain "jobtrack-backend/internal/application/domain"
	"jobtrack-backend/internal/application/usecase"
	authdomain "jobtrack-backend/internal/auth/domain"

	"github.com/gin-gonic/gin"
)

// ApplicationHandler handles application HTTP requests
type ApplicationHandler struct {
	appUsecase usecase.ApplicationUsecase
}

// NewApplicationHandler creates a new ApplicationHandler
func NewApplicationHandler(appUsecase usecase.ApplicationUsecase) *ApplicationHandler {
	return &ApplicationHandler{
		appUsecase: appUsecase,
	}
}

// ApplicationRequest is the request body for creating or updating a record.
type ApplicationRequest struct {
	Company     string     `json:"company" binding:"required"`
	Title       string     `json:"title"`
	Status      string     `json:"status"`
	Location    string     `json:"location"`
	JobType     string     `json:"job_type"`
	Salary      string     `json:"salary"`
	JobLink     string     `json:"job_link"`
	Notes       string     `json:"notes"`
	DeadlineAt  *time.Time `json:"deadline_at"`
	InterviewAt *time.Time `json:"interview_at"`
	AppliedAt   *time.Time `json:"applied_at"`
}

func (r *ApplicationRequest) toDomain() *appdomain.Application {
	return &appdomain.Application{
		Company:     r.Company,
		Title:       r.Title,
		Status:      appdomain.Status(r.Status),
		Location:    r.Location,
		JobType:     r.JobType,
		Salary:      r.Salary,
		JobLink:     r.JobLink,
		Notes:       r.Notes,
		DeadlineAt:  r.DeadlineAt,
		InterviewAt: r.InterviewAt,
		AppliedAt:   r.AppliedAt,
	}
}

func requestUser(c *gin.Context) *authdomain.User {
	value, exists := c.Get("user")
	if !exists {
		return nil
	}
	user, _ := value.(*authdomain.User)
	return user
}

// List returns all applications for the authenticated user
// GET /api/applications
func (h *ApplicationHandler) List(c *gin.Context) {
	apps, err := h.appUsecase.List(c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, apps)
}

// Get returns one application
// GET /api/applications/:id
func (h *ApplicationHandler) Get(c *gin.Context) {
	app, err := h.appUsecase.Get(c.GetString("userID"), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if app == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "application not found"})
		return
	}
	c.JSON(http.StatusOK, app)
}

// Create adds a new application record
// POST /api/applications
func (h *ApplicationHandler) Create(c *gin.Context) {
	var req ApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	app := req.toDomain()
	if err := h.appUsecase.Create(c.Request.Context(), requestUser(c), app); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, app)
}

// Update replaces the editable fields of a record
// PUT /api/applications/:id
func (h *ApplicationHandler) Update(c *gin.Context) {
	var req ApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	app := req.toDomain()
	app.ID = c.Param("id")
	updated, err := h.appUsecase.Update(c.Request.Context(), requestUser(c), app)
	if err != nil {
		if err.Error() == "application not found" {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete removes a record
// DELETE /api/applications/:id
func (h *ApplicationHandler) Delete(c *gin.Context) {
	if err := h.appUsecase.Delete(c.GetString("userID"), c.Param("id")); err != nil {
		if err.Error() == "application not found" {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "application deleted"})
}
