package database

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"JobPortal-backend/internal/config"
	m "JobPortal-backend/internal/model"
)

var testDBInstance *DBinstanceStruct
var teardown func(context.Context, ...testcontainers.TerminateOption) error

// Exported seeded records
var (
	TestAdminUser      m.User
	TestApplicant1     m.User
	TestApplicant2     m.User
	TestCompany1       m.Company
	TestCompany2       m.Company
	TestAdminUsername  = "admin_user"
	TestSeedPassword   = "SeedPass123!"
	TestApplicant1Mail = "applicant1@example.com"
	TestApplicant2Mail = "applicant2@example.com"

	TestJob1 m.Job
	TestJob2 m.Job
	TestJob3 m.Job
)

// GetTestDB starts a PostgreSQL test container and returns a teardown function,
// the DB instance, and any error encountered during setup.
// The container is started once per test binary and reused afterwards.
func GetTestDB() (func(context.Context, ...testcontainers.TerminateOption) error, *DBinstanceStruct, error) {
	if testDBInstance != nil && teardown != nil {
		return teardown, testDBInstance, nil
	}

	var (
		dbName = "database"
		dbPwd  = "password"
		dbUser = "user"
	)

	dbContainer, err := postgres.Run(
		context.Background(),
		"postgres:latest",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		return nil, nil, err
	}

	dbHost, err := dbContainer.Host(context.Background())
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	dbPort, err := dbContainer.MappedPort(context.Background(), nat.Port("5432/tcp"))
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	cfg := &config.DatabaseConfig{
		Name:          dbName,
		UseConnStr:    true,
		ConnectionStr: fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", dbHost, dbPort.Port(), dbUser, dbPwd, dbName),
	}

	db, err := NewDBInstance(cfg, config.AdminConfig{Username: TestAdminUsername, Password: TestSeedPassword})
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	if err := seedTestData(db); err != nil {
		_ = dbContainer.Terminate(context.Background())
		return nil, nil, err
	}

	testDBInstance = db
	teardown = dbContainer.Terminate

	return dbContainer.Terminate, db, nil
}

// seedTestData inserts two applicants, two companies and three jobs.
// The admin account is created by NewDBInstance.
func seedTestData(db *DBinstanceStruct) error {
	if err := db.Where("username = ?", TestAdminUsername).First(&TestAdminUser).Error; err != nil {
		return err
	}

	applicants := []m.User{
		{Email: ptr(TestApplicant1Mail), Name: "Alice Nguyen", Role: m.RoleUser},
		{Email: ptr(TestApplicant2Mail), Name: "Bob Somsak", Role: m.RoleUser},
	}
	if err := db.Create(&applicants).Error; err != nil {
		return err
	}
	TestApplicant1 = applicants[0]
	TestApplicant2 = applicants[1]

	companies := []m.Company{
		{EditableCompanyInfo: m.EditableCompanyInfo{
			Name:  "TechNova",
			About: "<p>Innovative platform solutions</p>",
			Logo:  "https://storage.googleapis.com/jobportal/logos/technova.png",
		}},
		{EditableCompanyInfo: m.EditableCompanyInfo{
			Name:  "DataForge",
			About: "<p>Data analytics consulting</p>",
		}},
	}
	if err := db.Create(&companies).Error; err != nil {
		return err
	}
	TestCompany1 = companies[0]
	TestCompany2 = companies[1]

	deadline := time.Now().AddDate(0, 1, 0)
	jobs := []m.Job{
		{
			CompanyID: TestCompany1.ID,
			EditableJobInfo: m.EditableJobInfo{
				Title:           "Backend Engineer",
				Pay:             "$120k",
				Description:     "Work on Go services and database layers.",
				Type:            m.JobTypeRemote,
				Location:        "Austin, TX",
				ExperienceLevel: m.ExpMid,
				Tags:            pq.StringArray{"go", "backend"},
				Deadline:        &deadline,
				ProcessingFee:   "25",
			},
		},
		{
			CompanyID: TestCompany1.ID,
			EditableJobInfo: m.EditableJobInfo{
				Title:           "Frontend Developer",
				Pay:             "$95k",
				Description:     "Build the component library in React.",
				Type:            m.JobTypeHybrid,
				Location:        "New York, NY",
				ExperienceLevel: m.ExpEntry,
				Tags:            pq.StringArray{"react", "typescript"},
				ProcessingFee:   "15",
			},
		},
		{
			CompanyID: TestCompany2.ID,
			EditableJobInfo: m.EditableJobInfo{
				Title:           "Data Analyst Intern",
				Pay:             "$25/hr",
				Description:     "Support data cleansing and dashboards.",
				Type:            m.JobTypeOnsite,
				Location:        "Chicago, IL",
				ExperienceLevel: m.ExpInternship,
				Tags:            pq.StringArray{"sql", "analytics"},
				ProcessingFee:   "10",
			},
		},
	}
	if err := db.Create(&jobs).Error; err != nil {
		return err
	}
	TestJob1, TestJob2, TestJob3 = jobs[0], jobs[1], jobs[2]

	return nil
}

func ptr[T any](v T) *T { return &v }
