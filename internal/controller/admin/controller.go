// Package admin provides HTTP handlers for the admin dashboard.
package admin

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"JobPortal-backend/internal/database"
	"JobPortal-backend/internal/model"
	"JobPortal-backend/internal/utilities"
)

// AdminController handles admin dashboard endpoints
type AdminController struct {
	DB *database.DBinstanceStruct
}

// NewAdminController creates a new instance of AdminController
func NewAdminController(db *database.DBinstanceStruct) *AdminController {
	return &AdminController{
		DB: db,
	}
}

// Metrics is the dashboard summary. TotalUsers counts applicants only.
type Metrics struct {
	TotalUsers        int64   `json:"total_users"`
	TotalJobs         int64   `json:"total_jobs"`
	TotalApplications int64   `json:"total_applications"`
	TotalRevenue      float64 `json:"total_revenue"`
}

// GetMetrics counts applicants, jobs and applications and sums submitted payment amounts.
// @Summary Dashboard metrics
// @Description Only admin can access this endpoint
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} utilities.Response[Metrics]
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Do not logged in as admin"
// @Failure 500 {object} utilities.ErrorResponse "Failed to load metrics"
// @Router /admin/metrics [get]
func (ac *AdminController) GetMetrics(c *gin.Context) {
	var metrics Metrics
	db := ac.DB.WithContext(c.Request.Context())

	g := errgroup.Group{}
	g.Go(func() error {
		return db.Model(&model.User{}).Where("role = ?", model.RoleUser).Count(&metrics.TotalUsers).Error
	})
	g.Go(func() error {
		return db.Model(&model.Job{}).Count(&metrics.TotalJobs).Error
	})
	g.Go(func() error {
		return db.Model(&model.Application{}).Count(&metrics.TotalApplications).Error
	})
	g.Go(func() error {
		return db.Model(&model.Payment{}).Select("COALESCE(SUM(amount), 0)").Scan(&metrics.TotalRevenue).Error
	})

	if err := g.Wait(); err != nil {
		slog.Error("Failed to load metrics", "error", err)
		utilities.Fail(c, http.StatusInternalServerError, "Failed to load metrics")
		return
	}

	utilities.OK(c, http.StatusOK, "Metrics fetched successfully", metrics)
}
