package delivery

import (
	"net/http"
	"strconv"

	authdomain "jobtrack-backend/internal/auth/domain"
	"jobtrack-backend/internal/job/usecase"

	"github.com/gin-gonic/gin"
)

// JobHandler handles job feed HTTP requests
type JobHandler struct {
	jobUsecase usecase.JobUsecase
}

// NewJobHandler creates a new JobHandler
func NewJobHandler(jobUsecase usecase.JobUsecase) *JobHandler {
	return &JobHandler{
		jobUsecase: jobUsecase,
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

// List returns imported jobs the user has not applied to
// GET /api/jobs
func (h *JobHandler) List(c *gin.Context) {
	jobs, err := h.jobUsecase.List(c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// Apply files an APPLIED application from a feed job and hides the job from
// future listings and recommendations
// POST /api/jobs/:id/apply
func (h *JobHandler) Apply(c *gin.Context) {
	user := requestUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	app, err := h.jobUsecase.Apply(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		switch err.Error() {
		case "job not found":
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case "already applied to this job":
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "applied to job", "application": app})
}

// RecommendRequest carries the skill list to score against.
type RecommendRequest struct {
	Skills []string `json:"skills" binding:"required"`
}

// Recommend scores jobs against the supplied skills
// POST /api/jobs/recommend?limit=20
func (h *JobHandler) Recommend(c *gin.Context) {
	var req RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	recommendations, err := h.jobUsecase.Recommend(c.Request.Context(), c.GetString("userID"), req.Skills, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, recommendations)
}

// Refresh triggers an immediate feed refresh
// POST /api/jobs/refresh
func (h *JobHandler) Refresh(c *gin.Context) {
	query := c.DefaultQuery("query", "software engineer")
	location := c.DefaultQuery("location", "United States")

	count, err := h.jobUsecase.RefreshJobs(c.Request.Context(), query, location)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"fetched": count})
}
