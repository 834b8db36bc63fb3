package admin

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"

	"JobPortal-backend/internal/auth"
	"JobPortal-backend/internal/database"
	"JobPortal-backend/internal/middleware"
	"JobPortal-backend/internal/model"
	"JobPortal-backend/internal/testutil"
)

var testDB *database.DBinstanceStruct

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	auth.SetSigningKey("admin-secret", time.Hour)

	var err error
	var teardown func(context.Context, ...testcontainers.TerminateOption) error
	teardown, testDB, err = database.GetTestDB()
	if err != nil {
		os.Exit(1)
	}
	code := m.Run()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if teardown != nil {
		_ = teardown(ctx)
	}
	os.Exit(code)
}

func setupRouter() *gin.Engine {
	r := gin.New()
	ac := NewAdminController(testDB)
	r.GET("/admin/metrics", middleware.RequireAuth(testDB), middleware.CheckRole(model.RoleAdmin), ac.GetMetrics)
	return r
}

func TestGetMetrics(t *testing.T) {
	applications := []model.Application{
		{UserID: database.TestApplicant1.ID, JobID: database.TestJob1.ID},
		{UserID: database.TestApplicant2.ID, JobID: database.TestJob1.ID},
	}
	require.NoError(t, testDB.Create(&applications).Error)
	payments := []model.Payment{
		{UserID: database.TestApplicant1.ID, ApplicationID: applications[0].ID, Method: model.MethodCashApp, Amount: 25, Screenshot: "a"},
		{UserID: database.TestApplicant2.ID, ApplicationID: applications[1].ID, Method: model.MethodZelle, Amount: 12.5, Screenshot: "b"},
	}
	require.NoError(t, testDB.Create(&payments).Error)

	token, err := auth.GetAccessToken(t, testDB, database.TestAdminUsername, database.TestSeedPassword)
	require.NoError(t, err)

	rec, resp := testutil.MakeJSONRequest(nil, token, setupRouter(), "/admin/metrics", http.MethodGet)

	require.Equal(t, http.StatusOK, rec.Code)
	data := testutil.Data(resp)
	require.NotNil(t, data)
	assert.EqualValues(t, 2, data["total_users"])
	assert.EqualValues(t, 3, data["total_jobs"])
	assert.EqualValues(t, 2, data["total_applications"])
	assert.EqualValues(t, 37.5, data["total_revenue"])
}

func TestGetMetrics_NotAdmin(t *testing.T) {
	rec, _ := testutil.MakeJSONRequest(nil, auth.GetUserAccessToken(t, database.TestApplicant1), setupRouter(), "/admin/metrics", http.MethodGet)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGetMetrics_Unauthenticated(t *testing.T) {
	rec, _ := testutil.MakeJSONRequest(nil, "", setupRouter(), "/admin/metrics", http.MethodGet)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
