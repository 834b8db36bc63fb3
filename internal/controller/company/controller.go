// Package company provides HTTP handlers for company management.
package company

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"JobPortal-backend/internal/database"
	"JobPortal-backend/internal/model"
	"JobPortal-backend/internal/storage"
	"JobPortal-backend/internal/utilities"
)

const duplicateNameMessage = "A company with this name already exists."

// CompanyController handles company endpoints
type CompanyController struct {
	DB      *database.DBinstanceStruct
	Storage storage.ImageStore
}

// NewCompanyController creates a new instance of CompanyController
func NewCompanyController(db *database.DBinstanceStruct, store storage.ImageStore) *CompanyController {
	utilities.RegisterValidators()
	return &CompanyController{
		DB:      db,
		Storage: store,
	}
}

type createCompanyInfo struct {
	Name  string `json:"name"`
	About string `json:"about"`
	// base64 data URL, e.g. data:image/png;base64,...
	Logo string `json:"logo" binding:"omitempty,imagedataurl"`
}

type editCompanyInfo struct {
	Name  *string `json:"name"`
	About *string `json:"about"`
	Logo  *string `json:"logo" binding:"omitempty,imagedataurl"`
}

func (cc *CompanyController) uploadLogo(c *gin.Context, dataURL string) (string, bool) {
	url, err := cc.Storage.UploadImage(c.Request.Context(), dataURL, storage.FolderLogos)
	if err != nil {
		slog.Error("Failed to upload logo", "error", err)
		utilities.Fail(c, http.StatusInternalServerError, storage.ErrUpload.Error())
		return "", false
	}
	return url, true
}

// CreateCompany creates a company. A name that already exists is rejected without writing anything.
// @Summary Create company
// @Tags Company
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param Company body createCompanyInfo true "Company information, logo is an optional image data URL"
// @Success 201 {object} utilities.Response[model.Company] "Company created successfully"
// @Failure 400 {object} utilities.ErrorResponse "Missing required fields"
// @Failure 409 {object} utilities.ErrorResponse "A company with this name already exists."
// @Failure 500 {object} utilities.ErrorResponse "Failed to create company"
// @Router /admin/companies [post]
func (cc *CompanyController) CreateCompany(c *gin.Context) {
	var info createCompanyInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		utilities.Fail(c, http.StatusBadRequest, "Invalid company data")
		return
	}
	info.Name = strings.TrimSpace(info.Name)
	if info.Name == "" || strings.TrimSpace(info.About) == "" {
		utilities.Fail(c, http.StatusBadRequest, "Missing required fields")
		return
	}

	taken, err := cc.nameTaken(info.Name, uuid.Nil)
	if err != nil {
		slog.Error("Failed to check company name", "error", err)
		utilities.Fail(c, http.StatusInternalServerError, "Failed to create company")
		return
	}
	if taken {
		utilities.Fail(c, http.StatusConflict, duplicateNameMessage)
		return
	}

	company := model.Company{EditableCompanyInfo: model.EditableCompanyInfo{
		Name:  info.Name,
		About: info.About,
	}}
	if info.Logo != "" {
		url, ok := cc.uploadLogo(c, info.Logo)
		if !ok {
			return
		}
		company.Logo = url
	}

	if err := cc.DB.Create(&company).Error; err != nil {
		if database.IsUniqueViolation(err) {
			utilities.Fail(c, http.StatusConflict, duplicateNameMessage)
			return
		}
		slog.Error("Failed to create company", "error", err)
		utilities.Fail(c, http.StatusInternalServerError, "Failed to create company")
		return
	}

	utilities.OK(c, http.StatusCreated, "Company created successfully", company)
}

// nameTaken reports whether a company other than except already uses name.
func (cc *CompanyController) nameTaken(name string, except uuid.UUID) (bool, error) {
	var count int64
	err := cc.DB.Model(&model.Company{}).
		Where("name = ? AND id <> ?", name, except).
		Count(&count).Error
	return count > 0, err
}

// GetAllCompanies lists companies, newest first
// @Summary List companies
// @Tags Company
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} utilities.Response[[]model.Company] "Companies fetched successfully"
// @Failure 500 {object} utilities.ErrorResponse "Failed to fetch companies"
// @Router /companies [get]
func (cc *CompanyController) GetAllCompanies(c *gin.Context) {
	companies := []model.Company{}
	if err := cc.DB.Order("created_at DESC").Find(&companies).Error; err != nil {
		slog.Error("Failed to fetch companies", "error", err)
		utilities.Fail(c, http.StatusInternalServerError, "Failed to fetch companies")
		return
	}
	utilities.OK(c, http.StatusOK, "Companies fetched successfully", companies)
}

// GetCompanyByID fetch a company by its id
// @Summary Get company by id
// @Tags Company
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Company ID"
// @Success 200 {object} utilities.Response[model.Company]
// @Failure 400 {object} utilities.ErrorResponse "Company ID is required"
// @Failure 404 {object} utilities.ErrorResponse "Company not found"
// @Failure 500 {object} utilities.ErrorResponse "Failed to fetch company"
// @Router /companies/{id} [get]
func (cc *CompanyController) GetCompanyByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utilities.Fail(c, http.StatusBadRequest, "Company ID is required")
		return
	}

	var company model.Company
	err = cc.DB.Where("id = ?", id).First(&company).Error
	switch {
	case database.IsNotFound(err):
		utilities.Fail(c, http.StatusNotFound, "Company not found")
		return
	case err != nil:
		slog.Error("Failed to fetch company", "error", err)
		utilities.Fail(c, http.StatusInternalServerError, "Failed to fetch company")
		return
	}

	utilities.OK(c, http.StatusOK, "Company fetched successfully", company)
}

// EditCompany applies the provided fields only
// @Summary Edit company
// @Tags Company
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Company ID"
// @Param Company body editCompanyInfo true "Fields to change"
// @Success 200 {object} utilities.Response[model.Company] "Company updated successfully"
// @Failure 400 {object} utilities.ErrorResponse "Invalid company data"
// @Failure 404 {object} utilities.ErrorResponse "Company not found or update failed"
// @Failure 409 {object} utilities.ErrorResponse "A company with this name already exists."
// @Failure 500 {object} utilities.ErrorResponse "Failed to update company"
// @Router /admin/companies/{id} [patch]
func (cc *CompanyController) EditCompany(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utilities.Fail(c, http.StatusNotFound, "Company not found or update failed")
		return
	}

	var info editCompanyInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		utilities.Fail(c, http.StatusBadRequest, "Invalid company data")
		return
	}

	var company model.Company
	err = cc.DB.Where("id = ?", id).First(&company).Error
	switch {
	case database.IsNotFound(err):
		utilities.Fail(c, http.StatusNotFound, "Company not found or update failed")
		return
	case err != nil:
		slog.Error("Failed to fetch company", "error", err)
		utilities.Fail(c, http.StatusInternalServerError, "Failed to update company")
		return
	}

	patch := model.EditableCompanyInfo{}
	if info.Name != nil {
		patch.Name = strings.TrimSpace(*info.Name)
	}
	if info.About != nil {
		patch.About = *info.About
	}
	if patch.Name != "" && patch.Name != company.Name {
		taken, err := cc.nameTaken(patch.Name, company.ID)
		if err != nil {
			slog.Error("Failed to check company name", "error", err)
			utilities.Fail(c, http.StatusInternalServerError, "Failed to update company")
			return
		}
		if taken {
			utilities.Fail(c, http.StatusConflict, duplicateNameMessage)
			return
		}
	}
	if info.Logo != nil && *info.Logo != "" {
		url, ok := cc.uploadLogo(c, *info.Logo)
		if !ok {
			return
		}
		patch.Logo = url
	}
	utilities.MergeNonEmpty(&company.EditableCompanyInfo, &patch)

	if err := cc.DB.Model(&company).Select("name", "about", "logo").Updates(&company).Error; err != nil {
		if database.IsUniqueViolation(err) {
			utilities.Fail(c, http.StatusConflict, duplicateNameMessage)
			return
		}
		slog.Error("Failed to update company", "error", err)
		utilities.Fail(c, http.StatusInternalServerError, "Failed to update company")
		return
	}

	utilities.OK(c, http.StatusOK, "Company updated successfully", company)
}

// DeleteCompany deletes a company and then runs the job cleanup.
// The cleanup filters jobs by their own id instead of company_id, so the
// company's jobs are left in place.
// @Summary Delete company
// @Tags Company
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Company ID"
// @Success 200 {object} utilities.ErrorResponse "Company and associated jobs deleted successfully"
// @Failure 404 {object} utilities.ErrorResponse "Company not found or deletion failed"
// @Failure 500 {object} utilities.ErrorResponse "Failed to delete company and jobs"
// @Router /admin/companies/{id} [delete]
func (cc *CompanyController) DeleteCompany(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utilities.Fail(c, http.StatusNotFound, "Company not found or deletion failed")
		return
	}

	result := cc.DB.Where("id = ?", id).Delete(&model.Company{})
	if result.Error != nil {
		slog.Error("Failed to delete company", "error", result.Error)
		utilities.Fail(c, http.StatusInternalServerError, "Failed to delete company and jobs")
		return
	}
	if result.RowsAffected == 0 {
		utilities.Fail(c, http.StatusNotFound, "Company not found or deletion failed")
		return
	}

	if err := cc.DB.Where("id = ?", id).Delete(&model.Job{}).Error; err != nil {
		slog.Error("Failed to delete company jobs", "error", err)
		utilities.Fail(c, http.StatusInternalServerError, "Failed to delete company and jobs")
		return
	}

	c.JSON(http.StatusOK, utilities.ErrorResponse{Success: true, Message: "Company and associated jobs deleted successfully"})
}
