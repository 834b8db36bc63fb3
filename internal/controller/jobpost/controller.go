// Package jobpost provides HTTP handlers for job listing operations.
package jobpost

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"JobPortal-backend/internal/database"
	"JobPortal-backend/internal/model"
	"JobPortal-backend/internal/utilities"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

var (
	jobTypes         = []string{model.JobTypeOnsite, model.JobTypeRemote, model.JobTypeHybrid}
	experienceLevels = []string{model.ExpInternship, model.ExpEntry, model.ExpMid, model.ExpSenior, model.ExpLead}
)

// JobPostController handles job related endpoints
type JobPostController struct {
	DB *database.DBinstanceStruct
}

// NewJobPostController creates a new instance of JobPostController
func NewJobPostController(db *database.DBinstanceStruct) *JobPostController {
	return &JobPostController{
		DB: db,
	}
}

type jobInput struct {
	model.EditableJobInfo
	CompanyID string `json:"company_id"`
}

// validateEnums answers 400 and returns false when type or experience level is unknown.
// Empty values are left for the column defaults.
func validateEnums(c *gin.Context, info model.EditableJobInfo) bool {
	if info.Type != "" && !slices.Contains(jobTypes, info.Type) {
		utilities.Fail(c, http.StatusBadRequest, "Invalid job type")
		return false
	}
	if info.ExperienceLevel != "" && !slices.Contains(experienceLevels, info.ExperienceLevel) {
		utilities.Fail(c, http.StatusBadRequest, "Invalid experience level")
		return false
	}
	return true
}

// CreateJob handles the creation of a new job listing by an admin.
// @Summary Create job
// @Description company_id must be a UUID, the company itself is not looked up
// @Tags Job
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param Job body jobInput true "Job information"
// @Success 201 {object} utilities.Response[model.Job] "Job created successfully"
// @Failure 400 {object} utilities.ErrorResponse "Missing required fields"
// @Failure 500 {object} utilities.ErrorResponse "Failed to create job"
// @Router /admin/jobs [post]
func (jc *JobPostController) CreateJob(c *gin.Context) {
	var input jobInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utilities.Fail(c, http.StatusBadRequest, "Invalid job data")
		return
	}

	info := input.EditableJobInfo
	if strings.TrimSpace(info.Title) == "" ||
		strings.TrimSpace(info.Pay) == "" ||
		strings.TrimSpace(info.Description) == "" ||
		strings.TrimSpace(info.Location) == "" ||
		strings.TrimSpace(info.ProcessingFee) == "" ||
		input.CompanyID == "" {
		utilities.Fail(c, http.StatusBadRequest, "Missing required fields")
		return
	}
	companyID, err := uuid.Parse(input.CompanyID)
	if err != nil {
		utilities.Fail(c, http.StatusBadRequest, "Invalid company id")
		return
	}
	if !validateEnums(c, info) {
		return
	}

	if info.Type == "" {
		info.Type = model.JobTypeOnsite
	}
	if info.ExperienceLevel == "" {
		info.ExperienceLevel = model.ExpEntry
	}
	if info.Tags == nil {
		info.Tags = pq.StringArray{}
	}

	job := model.Job{CompanyID: companyID, EditableJobInfo: info}
	if err := jc.DB.Create(&job).Error; err != nil {
		slog.Error("Failed to create job", "error", err)
		utilities.Fail(c, http.StatusInternalServerError, "Failed to create job")
		return
	}

	utilities.OK(c, http.StatusCreated, "Job created successfully", job)
}

// jobFilters narrows the listing by the optional query parameters.
func jobFilters(c *gin.Context) func(*gorm.DB) *gorm.DB {
	search := strings.TrimSpace(c.Query("search"))
	jobType := c.Query("type")
	exp := c.Query("exp")
	location := strings.TrimSpace(c.Query("location"))
	tag := strings.TrimSpace(c.Query("tag"))
	companyID := c.Query("company_id")

	return func(db *gorm.DB) *gorm.DB {
		if search != "" {
			pattern := utilities.ContainsPattern(search)
			db = db.Joins("LEFT JOIN companies ON companies.id = jobs.company_id").
				Where("jobs.title ILIKE ? OR jobs.description ILIKE ? OR companies.name ILIKE ?", pattern, pattern, pattern)
		}
		if jobType != "" {
			db = db.Where("jobs.type = ?", jobType)
		}
		if exp != "" {
			db = db.Where("jobs.experience_level = ?", exp)
		}
		if location != "" {
			db = db.Where("jobs.location ILIKE ?", utilities.ContainsPattern(location))
		}
		if tag != "" {
			db = db.Where("? ILIKE ANY(jobs.tags)", tag)
		}
		if companyID != "" {
			db = db.Where("jobs.company_id = ?", companyID)
		}
		return db
	}
}

// GetJobs returns one page of job listings, newest first.
// @Summary List jobs
// @Description Every query is optional. limit is capped at 100
// @Tags Job
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param page query int false "Page number, starts at 1"
// @Param limit query int false "Jobs per page, default 10"
// @Param search query string false "Case insensitive substring of title, description or company name"
// @Param type query string false "onsite, remote or hybrid"
// @Param exp query string false "internship, entry, mid, senior or lead"
// @Param location query string false "Case insensitive substring of location"
// @Param tag query string false "Jobs whose tags contain this tag, case insensitive"
// @Param company_id query string false "Jobs of one company"
// @Success 200 {object} utilities.Response[model.JobPage]
// @Failure 400 {object} utilities.ErrorResponse "Invalid company id"
// @Failure 500 {object} utilities.ErrorResponse "Failed to fetch jobs"
// @Router /jobs [get]
func (jc *JobPostController) GetJobs(c *gin.Context) {
	page, limit := utilities.Paging(c, defaultLimit, maxLimit)

	if companyID := c.Query("company_id"); companyID != "" {
		if _, err := uuid.Parse(companyID); err != nil {
			utilities.Fail(c, http.StatusBadRequest, "Invalid company id")
			return
		}
	}
	filters := jobFilters(c)

	jobs := []model.Job{}
	if err := jc.DB.Scopes(filters).
		Preload("Company").
		Order("jobs.created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&jobs).Error; err != nil {
		slog.Error("Failed to fetch jobs", "error", err)
		utilities.Fail(c, http.StatusInternalServerError, "Failed to fetch jobs")
		return
	}

	var total int64
	if err := jc.DB.Model(&model.Job{}).Scopes(filters).Count(&total).Error; err != nil {
		slog.Error("Failed to count jobs", "error", err)
		utilities.Fail(c, http.StatusInternalServerError, "Failed to fetch jobs")
		return
	}

	utilities.OK(c, http.StatusOK, "Jobs fetched successfully", model.JobPage{
		Jobs:        jobs,
		Total:       total,
		CurrentPage: page,
		TotalPages:  int((total + int64(limit) - 1) / int64(limit)),
	})
}

// GetJobByID fetches a job with its company
// @Summary Get job by ID
// @Tags Job
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Job ID"
// @Success 200 {object} utilities.Response[model.Job]
// @Failure 400 {object} utilities.ErrorResponse "Job ID is required"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 500 {object} utilities.ErrorResponse "Failed to fetch job"
// @Router /jobs/{id} [get]
func (jc *JobPostController) GetJobByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utilities.Fail(c, http.StatusBadRequest, "Job ID is required")
		return
	}

	job := model.Job{}
	err = jc.DB.Preload("Company").Where("id = ?", id).First(&job).Error
	switch {
	case database.IsNotFound(err):
		utilities.Fail(c, http.StatusNotFound, "Job not found")
		return
	case err != nil:
		slog.Error("Failed to fetch job", "error", err)
		utilities.Fail(c, http.StatusInternalServerError, "Failed to fetch job")
		return
	}

	utilities.OK(c, http.StatusOK, "Job fetched successfully", job)
}

// EditJob updates the provided fields of a job.
// @Summary Edit job
// @Tags Job
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Job ID"
// @Param Job body jobInput true "Fields to change"
// @Success 200 {object} utilities.Response[model.Job] "Job updated successfully"
// @Failure 400 {object} utilities.ErrorResponse "Invalid job data"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 500 {object} utilities.ErrorResponse "Failed to update job"
// @Router /admin/jobs/{id} [patch]
func (jc *JobPostController) EditJob(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utilities.Fail(c, http.StatusNotFound, "Job not found")
		return
	}

	job := model.Job{}
	err = jc.DB.Where("id = ?", id).First(&job).Error
	switch {
	case database.IsNotFound(err):
		utilities.Fail(c, http.StatusNotFound, "Job not found")
		return
	case err != nil:
		slog.Error("Failed to fetch job", "error", err)
		utilities.Fail(c, http.StatusInternalServerError, "Failed to update job")
		return
	}

	// Bind into a separate struct so ids and timestamps cannot be overwritten
	input := jobInput{}
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&input); err != nil {
		utilities.Fail(c, http.StatusBadRequest, "Invalid job data")
		return
	}
	if !validateEnums(c, input.EditableJobInfo) {
		return
	}

	updated := model.Job{EditableJobInfo: input.EditableJobInfo}
	if input.CompanyID != "" {
		companyID, err := uuid.Parse(input.CompanyID)
		if err != nil {
			utilities.Fail(c, http.StatusBadRequest, "Invalid company id")
			return
		}
		updated.CompanyID = companyID
	}

	// Updates with a struct skips zero fields, so only provided values change
	if err := jc.DB.Model(&job).Updates(updated).Error; err != nil {
		slog.Error("Failed to update job", "error", err)
		utilities.Fail(c, http.StatusInternalServerError, "Failed to update job")
		return
	}

	if err := jc.DB.Preload("Company").Where("id = ?", job.ID).First(&job).Error; err != nil {
		slog.Error("Failed to reload job", "error", err)
		utilities.Fail(c, http.StatusInternalServerError, "Failed to update job")
		return
	}

	utilities.OK(c, http.StatusOK, "Job updated successfully", job)
}

// DeleteJob deletes a job by id.
// @Summary Delete job
// @Tags Job
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Job ID"
// @Success 200 {object} utilities.ErrorResponse "Job deleted successfully"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 500 {object} utilities.ErrorResponse "Internal Server Error"
// @Router /admin/jobs/{id} [delete]
func (jc *JobPostController) DeleteJob(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utilities.Fail(c, http.StatusNotFound, "Job not found")
		return
	}

	result := jc.DB.Where("id = ?", id).Delete(&model.Job{})
	if result.Error != nil {
		slog.Error("Failed to delete job", "error", result.Error)
		utilities.Fail(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if result.RowsAffected == 0 {
		utilities.Fail(c, http.StatusNotFound, "Job not found")
		return
	}

	c.JSON(http.StatusOK, utilities.ErrorResponse{Success: true, Message: "Job deleted successfully"})
}
