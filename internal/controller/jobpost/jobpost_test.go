package jobpost

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
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
	auth.SetSigningKey("jobpost-secret", time.Hour)

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
	jc := NewJobPostController(testDB)

	authed := r.Group("/", middleware.RequireAuth(testDB))
	authed.GET("/jobs", jc.GetJobs)
	authed.GET("/jobs/:id", jc.GetJobByID)

	admin := r.Group("/admin", middleware.RequireAuth(testDB), middleware.CheckRole(model.RoleAdmin))
	admin.POST("/jobs", jc.CreateJob)
	admin.PATCH("/jobs/:id", jc.EditJob)
	admin.DELETE("/jobs/:id", jc.DeleteJob)
	return r
}

func adminToken(t *testing.T) string {
	token, err := auth.GetAccessToken(t, testDB, database.TestAdminUsername, database.TestSeedPassword)
	require.NoError(t, err)
	return token
}

func userToken(t *testing.T) string {
	return auth.GetUserAccessToken(t, database.TestApplicant1)
}

func newCompany(t *testing.T) model.Company {
	company := model.Company{EditableCompanyInfo: model.EditableCompanyInfo{
		Name:  "Company " + uuid.NewString(),
		About: "about",
	}}
	require.NoError(t, testDB.Create(&company).Error)
	return company
}

func newJob(t *testing.T, companyID uuid.UUID, title string) model.Job {
	job := model.Job{CompanyID: companyID, EditableJobInfo: model.EditableJobInfo{
		Title:         title,
		Pay:           "$1",
		Description:   "desc",
		Location:      "Remote",
		ProcessingFee: "5",
	}}
	require.NoError(t, testDB.Create(&job).Error)
	return job
}

func validJobBody(companyID string) gin.H {
	return gin.H{
		"title":          "Site Reliability Engineer",
		"pay":            "$140k",
		"description":    "Keep things running",
		"location":       "Denver, CO",
		"company_id":     companyID,
		"processing_fee": "30",
	}
}

func TestCreateJob_Defaults(t *testing.T) {
	r := setupRouter()
	rec, resp := testutil.MakeJSONRequest(validJobBody(database.TestCompany2.ID.String()), adminToken(t), r, "/admin/jobs", http.MethodPost)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Job created successfully", resp["message"])
	data := testutil.Data(resp)
	require.NotNil(t, data)
	assert.Equal(t, model.JobTypeOnsite, data["type"])
	assert.Equal(t, model.ExpEntry, data["experience_level"])
	assert.Equal(t, []interface{}{}, data["tags"])
	assert.Equal(t, database.TestCompany2.ID.String(), data["company_id"])
}

func TestCreateJob_UnknownCompanyAccepted(t *testing.T) {
	r := setupRouter()
	rec, _ := testutil.MakeJSONRequest(validJobBody(uuid.NewString()), adminToken(t), r, "/admin/jobs", http.MethodPost)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCreateJob_Validation(t *testing.T) {
	r := setupRouter()
	token := adminToken(t)

	missingPay := validJobBody(database.TestCompany1.ID.String())
	delete(missingPay, "pay")
	badType := validJobBody(database.TestCompany1.ID.String())
	badType["type"] = "spaceship"
	badExp := validJobBody(database.TestCompany1.ID.String())
	badExp["experience_level"] = "wizard"

	tests := []struct {
		name    string
		body    gin.H
		message string
	}{
		{"missing field", missingPay, "Missing required fields"},
		{"missing company", validJobBody(""), "Missing required fields"},
		{"malformed company", validJobBody("abc"), "Invalid company id"},
		{"bad type", badType, "Invalid job type"},
		{"bad experience", badExp, "Invalid experience level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := testutil.MakeJSONRequest(tt.body, token, r, "/admin/jobs", http.MethodPost)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.message, resp["message"])
		})
	}
}

func TestCreateJob_NotAdmin(t *testing.T) {
	r := setupRouter()
	rec, _ := testutil.MakeJSONRequest(validJobBody(database.TestCompany1.ID.String()), userToken(t), r, "/admin/jobs", http.MethodPost)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGetJobs_Pagination(t *testing.T) {
	company := newCompany(t)
	for i := 0; i < 15; i++ {
		newJob(t, company.ID, fmt.Sprintf("Paged job %02d", i))
	}
	r := setupRouter()

	rec, resp := testutil.MakeJSONRequest(nil, userToken(t), r,
		"/jobs?page=2&limit=10&company_id="+company.ID.String(), http.MethodGet)

	require.Equal(t, http.StatusOK, rec.Code)
	data := testutil.Data(resp)
	require.NotNil(t, data)
	assert.Len(t, data["jobs"], 5)
	assert.EqualValues(t, 15, data["total"])
	assert.EqualValues(t, 2, data["current_page"])
	assert.EqualValues(t, 2, data["total_pages"])

	first := data["jobs"].([]interface{})[0].(map[string]interface{})
	embedded, ok := first["company"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, company.Name, embedded["name"])
}

func TestGetJobs_NewestFirst(t *testing.T) {
	company := newCompany(t)
	newJob(t, company.ID, "Older")
	newer := newJob(t, company.ID, "Newer")
	r := setupRouter()

	_, resp := testutil.MakeJSONRequest(nil, userToken(t), r, "/jobs?company_id="+company.ID.String(), http.MethodGet)
	jobs := testutil.Data(resp)["jobs"].([]interface{})
	require.Len(t, jobs, 2)
	assert.Equal(t, newer.ID.String(), jobs[0].(map[string]interface{})["id"])
}

func TestGetJobs_InvalidPagingFallsBack(t *testing.T) {
	r := setupRouter()
	rec, resp := testutil.MakeJSONRequest(nil, userToken(t), r, "/jobs?page=-3&limit=abc", http.MethodGet)

	require.Equal(t, http.StatusOK, rec.Code)
	data := testutil.Data(resp)
	assert.EqualValues(t, 1, data["current_page"])
	assert.LessOrEqual(t, len(data["jobs"].([]interface{})), 10)
}

func TestGetJobs_Filters(t *testing.T) {
	r := setupRouter()
	token := userToken(t)

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"search title", "search=backend%20engineer", database.TestJob1.Title},
		{"search company", "search=dataforge&exp=internship", database.TestJob3.Title},
		{"type", "type=hybrid&company_id=" + database.TestCompany1.ID.String(), database.TestJob2.Title},
		{"experience", "exp=internship&company_id=" + database.TestCompany2.ID.String(), database.TestJob3.Title},
		{"location", "location=austin", database.TestJob1.Title},
		{"tag", "tag=TypeScript", database.TestJob2.Title},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := testutil.MakeJSONRequest(nil, token, r, "/jobs?"+tt.query, http.MethodGet)
			require.Equal(t, http.StatusOK, rec.Code)
			jobs := testutil.Data(resp)["jobs"].([]interface{})
			require.Len(t, jobs, 1)
			assert.Equal(t, tt.want, jobs[0].(map[string]interface{})["title"])
		})
	}
}

func TestGetJobs_SearchIsLiteral(t *testing.T) {
	company := newCompany(t)
	newJob(t, company.ID, "100% Remote")
	newJob(t, company.ID, "dev_ops lead")
	newJob(t, company.ID, "Plain role")
	r := setupRouter()
	token := userToken(t)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"percent", "search=%25", []string{"100% Remote"}},
		{"underscore", "search=_", []string{"dev_ops lead"}},
		{"backslash", "search=%5C", []string{}},
		{"location percent", "location=%25", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := testutil.MakeJSONRequest(nil, token, r,
				"/jobs?"+tt.query+"&company_id="+company.ID.String(), http.MethodGet)
			require.Equal(t, http.StatusOK, rec.Code)
			titles := []string{}
			for _, job := range testutil.Data(resp)["jobs"].([]interface{}) {
				titles = append(titles, job.(map[string]interface{})["title"].(string))
			}
			assert.Equal(t, tt.want, titles)
		})
	}
}

func TestGetJobs_PageOutOfRange(t *testing.T) {
	r := setupRouter()
	rec, resp := testutil.MakeJSONRequest(nil, userToken(t), r,
		"/jobs?page=9223372036854775807&limit=100", http.MethodGet)

	require.Equal(t, http.StatusOK, rec.Code)
	data := testutil.Data(resp)
	assert.Empty(t, data["jobs"])
	assert.EqualValues(t, math.MaxInt32/100, data["current_page"])
}

func TestGetJobs_InvalidCompanyFilter(t *testing.T) {
	r := setupRouter()
	rec, _ := testutil.MakeJSONRequest(nil, userToken(t), r, "/jobs?company_id=nope", http.MethodGet)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetJobByID(t *testing.T) {
	r := setupRouter()
	token := userToken(t)

	rec, resp := testutil.MakeJSONRequest(nil, token, r, "/jobs/"+database.TestJob1.ID.String(), http.MethodGet)
	require.Equal(t, http.StatusOK, rec.Code)
	data := testutil.Data(resp)
	assert.Equal(t, database.TestJob1.Title, data["title"])
	assert.Equal(t, database.TestCompany1.Name, data["company"].(map[string]interface{})["name"])

	rec, resp = testutil.MakeJSONRequest(nil, token, r, "/jobs/"+uuid.NewString(), http.MethodGet)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Job not found", resp["message"])

	rec, resp = testutil.MakeJSONRequest(nil, token, r, "/jobs/999", http.MethodGet)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Job ID is required", resp["message"])
}

func TestEditJob(t *testing.T) {
	r := setupRouter()
	job := newJob(t, database.TestCompany1.ID, "Editable role")

	rec, resp := testutil.MakeJSONRequest(gin.H{
		"pay":  "$200k",
		"type": model.JobTypeRemote,
		"tags": []string{"go"},
	}, adminToken(t), r, "/admin/jobs/"+job.ID.String(), http.MethodPatch)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Job updated successfully", resp["message"])

	var saved model.Job
	require.NoError(t, testDB.First(&saved, "id = ?", job.ID).Error)
	assert.Equal(t, "Editable role", saved.Title)
	assert.Equal(t, "$200k", saved.Pay)
	assert.Equal(t, model.JobTypeRemote, saved.Type)
	assert.Equal(t, []string{"go"}, []string(saved.Tags))
}

func TestEditJob_Errors(t *testing.T) {
	r := setupRouter()
	token := adminToken(t)

	rec, resp := testutil.MakeJSONRequest(gin.H{"pay": "$1"}, token, r, "/admin/jobs/"+uuid.NewString(), http.MethodPatch)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Job not found", resp["message"])

	rec, _ = testutil.MakeJSONRequest(gin.H{"salary": "$1"}, token, r, "/admin/jobs/"+database.TestJob2.ID.String(), http.MethodPatch)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = testutil.MakeJSONRequest(gin.H{"experience_level": "guru"}, token, r, "/admin/jobs/"+database.TestJob2.ID.String(), http.MethodPatch)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteJob(t *testing.T) {
	r := setupRouter()
	token := adminToken(t)
	job := newJob(t, database.TestCompany2.ID, "Doomed role")

	rec, resp := testutil.MakeJSONRequest(nil, token, r, "/admin/jobs/"+job.ID.String(), http.MethodDelete)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Job deleted successfully", resp["message"])

	rec, resp = testutil.MakeJSONRequest(nil, token, r, "/admin/jobs/"+job.ID.String(), http.MethodDelete)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Job not found", resp["message"])
}
