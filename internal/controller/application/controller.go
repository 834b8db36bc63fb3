// Package application provides HTTP handlers for job application operations.
package application

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"JobPortal-backend/internal/database"
	"JobPortal-backend/internal/model"
	"JobPortal-backend/internal/utilities"
)

// ApplicationController handles job application related endpoints
type ApplicationController struct {
	DB *database.DBinstanceStruct
}

// NewApplicationController creates a new instance of ApplicationController with the provided database connection.
func NewApplicationController(db *database.DBinstanceStruct) *ApplicationController {
	return &ApplicationController{
		DB: db,
	}
}

type applicationInfo struct {
	// Defaults to the email of the signed-in user
	Email string `json:"email"`
	JobID string `json:"job_id"`
}

// sessionEmail returns the email in the body, or the signed-in user's email.
func sessionEmail(c *gin.Context, fromBody string) (string, bool) {
	if fromBody != "" {
		return model.NormalizeEmail(fromBody), true
	}
	user, ok := utilities.MustExtractUser(c)
	if !ok {
		return "", false
	}
	if user.Email == nil {
		return "", true
	}
	return *user.Email, true
}

// SubmitApplication records a pending application of a user to a job.
// Applying to the same job again creates another application.
// @Summary Apply to a job
// @Tags Application
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param application body applicationInfo true "Job to apply to"
// @Success 201 {object} utilities.Response[model.Application] "Application submitted successfully"
// @Failure 400 {object} utilities.ErrorResponse "Job ID is required"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "User not found, Job not found"
// @Failure 500 {object} utilities.ErrorResponse "Server error"
// @Router /applications [post]
func (ac *ApplicationController) SubmitApplication(c *gin.Context) {
	var info applicationInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		utilities.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	jobID, err := uuid.Parse(info.JobID)
	if err != nil {
		utilities.Fail(c, http.StatusBadRequest, "Job ID is required")
		return
	}

	email, ok := sessionEmail(c, info.Email)
	if !ok {
		return
	}
	if email == "" {
		utilities.Fail(c, http.StatusNotFound, "User not found")
		return
	}

	var user model.User
	err = ac.DB.Where("email = ?", email).First(&user).Error
	switch {
	case database.IsNotFound(err):
		utilities.Fail(c, http.StatusNotFound, "User not found")
		return
	case err != nil:
		slog.Error("Failed to look up user", "error", err)
		utilities.Fail(c, http.StatusInternalServerError, "Server error")
		return
	}

	var job model.Job
	err = ac.DB.Select("id").Where("id = ?", jobID).First(&job).Error
	switch {
	case database.IsNotFound(err):
		utilities.Fail(c, http.StatusNotFound, "Job not found")
		return
	case err != nil:
		slog.Error("Failed to look up job", "error", err)
		utilities.Fail(c, http.StatusInternalServerError, "Server error")
		return
	}

	application := model.Application{
		JobID:   job.ID,
		UserID:  user.ID,
		Status:  model.ApplicationStatusPending,
		HasPaid: false,
	}
	if err := ac.DB.Create(&application).Error; err != nil {
		slog.Error("Failed to create application", "error", err)
		utilities.Fail(c, http.StatusInternalServerError, "Server error")
		return
	}

	utilities.OK(c, http.StatusCreated, "Application submitted successfully", application)
}
