package model

import (
	"time"

	"github.com/google/uuid"
)

// Application statuses. Nothing in the backend moves an application between them.
const (
	ApplicationStatusPending    = "pending"
	ApplicationStatusSuccessful = "successful"
	ApplicationStatusRejected   = "rejected"
)

// Application is a user's submitted interest in a job
type Application struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`

	JobID uuid.UUID `gorm:"type:uuid;not null;index" json:"job_id"`
	Job   *Job      `gorm:"foreignKey:JobID" json:"job,omitempty"`

	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User   *User     `gorm:"foreignKey:UserID" json:"-"`

	PaymentID *uuid.UUID `gorm:"type:uuid" json:"payment_id"`

	Status  string `gorm:"type:text;not null;default:'pending';check:status IN ('pending','successful','rejected')" json:"status"`
	HasPaid bool   `gorm:"not null;default:false" json:"has_paid"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ApplicationSummary counts a user's applications per status.
type ApplicationSummary struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	Successful int `json:"successful"`
	Rejected   int `json:"rejected"`
}

// Summarize counts applications per status.
func Summarize(applications []Application) ApplicationSummary {
	s := ApplicationSummary{Total: len(applications)}
	for _, a := range applications {
		switch a.Status {
		case ApplicationStatusPending:
			s.Pending++
		case ApplicationStatusSuccessful:
			s.Successful++
		case ApplicationStatusRejected:
			s.Rejected++
		}
	}
	return s
}
