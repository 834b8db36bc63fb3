// Package payment provides HTTP handlers for processing-fee payment claims
// and the payment-method directory shown to applicants.
package payment

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm/clause"

	"JobPortal-backend/internal/database"
	"JobPortal-backend/internal/model"
	"JobPortal-backend/internal/storage"
	"JobPortal-backend/internal/utilities"
)

// MaxScreenshotSize is the largest accepted payment screenshot.
const MaxScreenshotSize = 10 << 20

var (
	channels = []string{model.MethodCashApp, model.MethodZelle, model.MethodApplePay, model.MethodVenmo}

	screenshotTypes = map[string]string{
		".jpg":  "image/jpeg",
		".jpeg": "image/jpeg",
		".png":  "image/png",
		".webp": "image/webp",
		".gif":  "image/gif",
	}
)

// PaymentController handles payment related endpoints
type PaymentController struct {
	DB      *database.DBinstanceStruct
	Storage storage.ImageStore
}

// NewPaymentController creates a new instance of PaymentController
func NewPaymentController(db *database.DBinstanceStruct, store storage.ImageStore) *PaymentController {
	return &PaymentController{
		DB:      db,
		Storage: store,
	}
}

// PaymentPage is one page of submitted payments.
type PaymentPage struct {
	Payments    []model.Payment `json:"payments"`
	Total       int64           `json:"total"`
	CurrentPage int             `json:"current_page"`
	TotalPages  int             `json:"total_pages"`
}

// readScreenshot validates the uploaded screenshot and returns it as a data URL.
// It answers the request itself and returns false on failure.
func readScreenshot(c *gin.Context) (string, bool) {
	rawFile, err := c.FormFile("screenshot")
	var maxBytesError *http.MaxBytesError
	if errors.As(err, &maxBytesError) {
		utilities.Fail(c, http.StatusRequestEntityTooLarge, "File size is larger than 10 MB")
		return "", false
	}
	if err != nil {
		utilities.Fail(c, http.StatusBadRequest, "Missing required fields")
		return "", false
	}

	extension := strings.ToLower(filepath.Ext(rawFile.Filename))
	contentType, ok := screenshotTypes[extension]
	if !ok {
		utilities.Fail(c, http.StatusUnsupportedMediaType, "Unsupported file extension: "+extension)
		return "", false
	}
	if rawFile.Size > MaxScreenshotSize {
		utilities.Fail(c, http.StatusRequestEntityTooLarge, "File size is larger than 10 MB")
		return "", false
	}

	f, err := rawFile.Open()
	if err != nil {
		utilities.Fail(c, http.StatusInternalServerError, "Cannot open file")
		return "", false
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("Failed to close screenshot", "error", err)
		}
	}()

	fileBytes, err := io.ReadAll(f)
	if err != nil || len(fileBytes) == 0 {
		utilities.Fail(c, http.StatusBadRequest, "Cannot read file")
		return "", false
	}

	return storage.EncodeDataURL(contentType, fileBytes), true
}

// SubmitPayment records a user's claim that a processing fee was paid.
// The claim is stored as submitted, nothing is verified against the job or the application.
// @Summary Submit a payment claim
// @Description Screenshot must be jpg, jpeg, png, webp or gif and at most 10 MB
// @Tags Payment
// @Accept mpfd
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param method formData string true "cashapp, zelle, applepay or venmo"
// @Param amount formData number true "Amount paid"
// @Param application_id formData string true "Application the payment is for"
// @Param email formData string false "Payer email, defaults to the signed-in user"
// @Param screenshot formData file true "Payment screenshot"
// @Success 201 {object} utilities.Response[model.Payment] "Payment submitted successfully."
// @Failure 400 {object} utilities.ErrorResponse "Missing required fields, Invalid userId or jobId"
// @Failure 404 {object} utilities.ErrorResponse "User not found"
// @Failure 413 {object} utilities.ErrorResponse "File size is larger than 10 MB"
// @Failure 415 {object} utilities.ErrorResponse "File extension is not allowed"
// @Failure 500 {object} utilities.ErrorResponse "Failed to submit payment."
// @Router /payments [post]
func (pc *PaymentController) SubmitPayment(c *gin.Context) {
	method := strings.ToLower(strings.TrimSpace(c.PostForm("method")))
	rawAmount := strings.TrimSpace(c.PostForm("amount"))
	rawApplicationID := c.PostForm("application_id")
	if rawApplicationID == "" {
		rawApplicationID = c.PostForm("job_id")
	}
	if method == "" || rawAmount == "" || rawApplicationID == "" {
		utilities.Fail(c, http.StatusBadRequest, "Missing required fields")
		return
	}

	if !slices.Contains(channels, method) {
		utilities.Fail(c, http.StatusBadRequest, "Invalid payment method")
		return
	}
	amount, ok := utilities.ParseAmount(rawAmount)
	if !ok {
		utilities.Fail(c, http.StatusBadRequest, "Invalid amount")
		return
	}

	var user model.User
	if email := c.PostForm("email"); email != "" {
		err := pc.DB.Where("email = ?", model.NormalizeEmail(email)).First(&user).Error
		switch {
		case database.IsNotFound(err):
			utilities.Fail(c, http.StatusNotFound, "User not found")
			return
		case err != nil:
			slog.Error("Failed to look up user", "error", err)
			utilities.Fail(c, http.StatusInternalServerError, "Failed to submit payment.")
			return
		}
	} else {
		sessionUser, ok := utilities.MustExtractUser(c)
		if !ok {
			return
		}
		user = sessionUser
	}

	applicationID, err := uuid.Parse(rawApplicationID)
	if err != nil || user.ID == uuid.Nil {
		utilities.Fail(c, http.StatusBadRequest, "Invalid userId or jobId")
		return
	}

	dataURL, ok := readScreenshot(c)
	if !ok {
		return
	}
	url, err := pc.Storage.UploadImage(c.Request.Context(), dataURL, storage.FolderPayments)
	if err != nil {
		slog.Error("Failed to upload payment screenshot", "error", err)
		utilities.Fail(c, http.StatusInternalServerError, storage.ErrUpload.Error())
		return
	}

	payment := model.Payment{
		UserID:        user.ID,
		Method:        method,
		Amount:        amount,
		ApplicationID: applicationID,
		Screenshot:    url,
	}
	if err := pc.DB.Create(&payment).Error; err != nil {
		slog.Error("Failed to create payment", "error", err)
		utilities.Fail(c, http.StatusInternalServerError, "Failed to submit payment.")
		return
	}

	utilities.OK(c, http.StatusCreated, "Payment submitted successfully.", payment)
}

// ListPayments returns submitted payments newest first for manual review
// @Summary List payment claims
// @Tags Payment
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param page query int false "Page number, starts at 1"
// @Param limit query int false "Payments per page, default 10"
// @Success 200 {object} utilities.Response[PaymentPage]
// @Failure 500 {object} utilities.ErrorResponse "Failed to fetch payments"
// @Router /admin/payments [get]
func (pc *PaymentController) ListPayments(c *gin.Context) {
	page, limit := utilities.Paging(c, 10, 100)

	payments := []model.Payment{}
	if err := pc.DB.Preload("User").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&payments).Error; err != nil {
		slog.Error("Failed to fetch payments", "error", err)
		utilities.Fail(c, http.StatusInternalServerError, "Failed to fetch payments")
		return
	}

	var total int64
	if err := pc.DB.Model(&model.Payment{}).Count(&total).Error; err != nil {
		slog.Error("Failed to count payments", "error", err)
		utilities.Fail(c, http.StatusInternalServerError, "Failed to fetch payments")
		return
	}

	utilities.OK(c, http.StatusOK, "Payments fetched successfully", PaymentPage{
		Payments:    payments,
		Total:       total,
		CurrentPage: page,
		TotalPages:  int((total + int64(limit) - 1) / int64(limit)),
	})
}

// GetPaymentMethods returns the payment-method directory, creating it with
// placeholder handles on first read.
// @Summary Get payment methods
// @Tags Payment
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} utilities.Response[model.PaymentMethod]
// @Failure 500 {object} utilities.ErrorResponse "Failed to fetch payment methods"
// @Router /payment-methods [get]
func (pc *PaymentController) GetPaymentMethods(c *gin.Context) {
	defaults := model.DefaultPaymentMethod()
	if err := pc.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoNothing: true,
	}).Create(&defaults).Error; err != nil {
		slog.Error("Failed to create payment methods", "error", err)
		utilities.Fail(c, http.StatusInternalServerError, "Failed to fetch payment methods")
		return
	}

	var methods model.PaymentMethod
	if err := pc.DB.Where("key = ?", model.PaymentMethodKey).First(&methods).Error; err != nil {
		slog.Error("Failed to fetch payment methods", "error", err)
		utilities.Fail(c, http.StatusInternalServerError, "Failed to fetch payment methods")
		return
	}

	utilities.OK(c, http.StatusOK, "Payment methods fetched successfully", methods)
}

// UpdatePaymentMethod changes the non-empty handles of the directory
// @Summary Update payment methods
// @Tags Payment
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Payment method ID"
// @Param Methods body model.EditablePaymentMethod true "Handles to change"
// @Success 200 {object} utilities.Response[model.PaymentMethod] "Payment method updated successfully"
// @Failure 400 {object} utilities.ErrorResponse "Invalid payment method data"
// @Failure 404 {object} utilities.ErrorResponse "Payment method not found"
// @Failure 500 {object} utilities.ErrorResponse "Failed to update payment method"
// @Router /admin/payment-methods/{id} [patch]
func (pc *PaymentController) UpdatePaymentMethod(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utilities.Fail(c, http.StatusNotFound, "Payment method not found")
		return
	}

	var patch model.EditablePaymentMethod
	if err := c.ShouldBindJSON(&patch); err != nil {
		utilities.Fail(c, http.StatusBadRequest, "Invalid payment method data")
		return
	}

	var methods model.PaymentMethod
	err = pc.DB.Where("id = ?", id).First(&methods).Error
	switch {
	case database.IsNotFound(err):
		utilities.Fail(c, http.StatusNotFound, "Payment method not found")
		return
	case err != nil:
		slog.Error("Failed to fetch payment methods", "error", err)
		utilities.Fail(c, http.StatusInternalServerError, "Failed to update payment method")
		return
	}

	utilities.MergeNonEmpty(&methods.EditablePaymentMethod, &patch)
	if err := pc.DB.Model(&methods).Updates(model.PaymentMethod{EditablePaymentMethod: methods.EditablePaymentMethod}).Error; err != nil {
		slog.Error("Failed to update payment methods", "error", err)
		utilities.Fail(c, http.StatusInternalServerError, "Failed to update payment method")
		return
	}

	utilities.OK(c, http.StatusOK, "Payment method updated successfully", methods)
}
