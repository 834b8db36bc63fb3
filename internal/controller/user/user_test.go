package user

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
	auth.SetSigningKey("user-secret", time.Hour)

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
	uc := NewUserController(testDB)
	r.POST("/register", uc.RegisterUser)
	r.GET("/me/applications", middleware.RequireAuth(testDB), uc.GetMyApplications)
	return r
}

func TestRegisterUser(t *testing.T) {
	r := setupRouter()

	rec, resp := testutil.MakeJSONRequest(gin.H{"email": "  New.Person@Example.com "}, "", r, "/register", http.MethodPost)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "User created successfully", resp["message"])
	created := testutil.Data(resp)
	assert.Equal(t, "new.person@example.com", created["email"])

	rec, resp = testutil.MakeJSONRequest(gin.H{"email": "new.person@example.com"}, "", r, "/register", http.MethodPost)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "User already exists", resp["message"])
	assert.Equal(t, created["id"], testutil.Data(resp)["id"])

	var count int64
	testDB.Model(&model.User{}).Where("email = ?", "new.person@example.com").Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestRegisterUser_InvalidEmail(t *testing.T) {
	r := setupRouter()
	for _, body := range []gin.H{{}, {"email": ""}, {"email": "nope"}} {
		rec, resp := testutil.MakeJSONRequest(body, "", r, "/register", http.MethodPost)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid email", resp["message"])
	}
}

func TestGetMyApplications(t *testing.T) {
	email := "dashboard@example.com"
	u := model.User{Email: &email, Role: model.RoleUser}
	require.NoError(t, testDB.Create(&u).Error)

	apps := []model.Application{
		{JobID: database.TestJob1.ID, UserID: u.ID},
		{JobID: database.TestJob3.ID, UserID: u.ID, Status: model.ApplicationStatusRejected},
	}
	require.NoError(t, testDB.Create(&apps).Error)

	rec, resp := testutil.MakeJSONRequest(nil, auth.GetUserAccessToken(t, u), setupRouter(), "/me/applications", http.MethodGet)
	require.Equal(t, http.StatusOK, rec.Code)

	data := testutil.Data(resp)
	list := data["applications"].([]interface{})
	require.Len(t, list, 2)
	for _, item := range list {
		job := item.(map[string]interface{})["job"].(map[string]interface{})
		assert.NotEmpty(t, job["title"])
		assert.NotNil(t, job["company"])
	}

	summary := data["summary"].(map[string]interface{})
	assert.EqualValues(t, 2, summary["total"])
	assert.EqualValues(t, 1, summary["pending"])
	assert.EqualValues(t, 1, summary["rejected"])
}

func TestGetMyApplications_Empty(t *testing.T) {
	rec, resp := testutil.MakeJSONRequest(nil, auth.GetUserAccessToken(t, database.TestApplicant2), setupRouter(), "/me/applications", http.MethodGet)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, testutil.Data(resp)["applications"])
}

func TestGetMyApplications_AdminWithoutEmail(t *testing.T) {
	rec, resp := testutil.MakeJSONRequest(nil, auth.GetUserAccessToken(t, database.TestAdminUser), setupRouter(), "/me/applications", http.MethodGet)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found", resp["message"])
}
