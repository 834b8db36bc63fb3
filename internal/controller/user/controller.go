// Package user provides HTTP handlers for applicant registration and the applicant dashboard.
package user

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"JobPortal-backend/internal/database"
	"JobPortal-backend/internal/model"
	"JobPortal-backend/internal/utilities"
)

// UserController handles applicant account endpoints
type UserController struct {
	DB *database.DBinstanceStruct
}

// NewUserController creates a new instance of UserController
func NewUserController(db *database.DBinstanceStruct) *UserController {
	return &UserController{
		DB: db,
	}
}

type registerInfo struct {
	Email string `json:"email"`
}

// MyApplications is the applicant dashboard payload
type MyApplications struct {
	User         model.User               `json:"user"`
	Applications []model.Application      `json:"applications"`
	Summary      model.ApplicationSummary `json:"summary"`
}

// RegisterUser records an email so its owner can sign in with Google.
// An existing email is answered with the stored user and success false.
// @Summary Register an applicant email
// @Tags User
// @Accept json
// @Produce json
// @Param Info body registerInfo true "Email to register"
// @Success 201 {object} utilities.Response[model.User] "User created successfully"
// @Failure 400 {object} utilities.ErrorResponse "Invalid email"
// @Failure 409 {object} utilities.Response[model.User] "User already exists"
// @Failure 500 {object} utilities.ErrorResponse "Failed to create user"
// @Router /register [post]
func (uc *UserController) RegisterUser(c *gin.Context) {
	var info registerInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		utilities.Fail(c, http.StatusBadRequest, "Invalid email")
		return
	}

	email := model.NormalizeEmail(info.Email)
	if !utilities.IsEmail(email) {
		utilities.Fail(c, http.StatusBadRequest, "Invalid email")
		return
	}

	var existing model.User
	err := uc.DB.Where("email = ?", email).First(&existing).Error
	switch {
	case err == nil:
		utilities.FailWith(c, http.StatusConflict, "User already exists", existing)
		return
	case !database.IsNotFound(err):
		slog.Error("Failed to look up user", "error", err)
		utilities.Fail(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	newUser := model.User{Email: &email, Role: model.RoleUser}
	if err := uc.DB.Create(&newUser).Error; err != nil {
		// lost a race with another registration of the same email
		if database.IsUniqueViolation(err) {
			if err := uc.DB.Where("email = ?", email).First(&existing).Error; err == nil {
				utilities.FailWith(c, http.StatusConflict, "User already exists", existing)
				return
			}
		}
		slog.Error("Failed to create user", "error", err)
		utilities.Fail(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	utilities.OK(c, http.StatusCreated, "User created successfully", newUser)
}

// GetMyApplications returns the signed-in user's applications with job and company populated
// @Summary Applications of the signed-in user
// @Tags User
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} utilities.Response[MyApplications]
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "User not found"
// @Failure 500 {object} utilities.ErrorResponse "Failed to fetch applications"
// @Router /me/applications [get]
func (uc *UserController) GetMyApplications(c *gin.Context) {
	sessionUser, ok := utilities.MustExtractUser(c)
	if !ok {
		return
	}
	if sessionUser.Email == nil {
		utilities.Fail(c, http.StatusNotFound, "User not found")
		return
	}

	var found model.User
	err := uc.DB.
		Preload("Applications", func(db *gorm.DB) *gorm.DB { return db.Order("applications.created_at DESC") }).
		Preload("Applications.Job").
		Preload("Applications.Job.Company").
		Where("email = ?", *sessionUser.Email).
		First(&found).Error
	switch {
	case database.IsNotFound(err):
		utilities.Fail(c, http.StatusNotFound, "User not found")
		return
	case err != nil:
		slog.Error("Failed to fetch applications", "error", err)
		utilities.Fail(c, http.StatusInternalServerError, "Failed to fetch applications")
		return
	}

	apps := found.Applications
	if apps == nil {
		apps = []model.Application{}
	}
	found.Applications = nil

	utilities.OK(c, http.StatusOK, "Applications fetched successfully", MyApplications{
		User:         found,
		Applications: apps,
		Summary:      model.Summarize(apps),
	})
}
