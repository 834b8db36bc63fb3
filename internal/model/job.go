package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Job types
const (
	JobTypeOnsite = "onsite"
	JobTypeRemote = "remote"
	JobTypeHybrid = "hybrid"
)

// Experience levels
const (
	ExpInternship = "internship"
	ExpEntry      = "entry"
	ExpMid        = "mid"
	ExpSenior     = "senior"
	ExpLead       = "lead"
)

// EditableJobInfo is the part of a job an admin can write.
type EditableJobInfo struct {
	Title           string         `gorm:"type:text;not null" json:"title"`
	Pay             string         `gorm:"type:text;not null" json:"pay"`
	Description     string         `gorm:"type:text;not null" json:"description"`
	Type            string         `gorm:"type:text;not null;default:'onsite';check:type IN ('onsite','remote','hybrid')" json:"type"`
	Location        string         `gorm:"type:text;not null" json:"location"`
	ExperienceLevel string         `gorm:"type:text;default:'entry';check:experience_level IN ('internship','entry','mid','senior','lead')" json:"experience_level"`
	Tags            pq.StringArray `gorm:"type:text[]" json:"tags"`
	Deadline        *time.Time     `gorm:"type:timestamp" json:"deadline,omitempty"`
	ProcessingFee   string         `gorm:"type:text;not null" json:"processing_fee"`
}

// Job is a listing that belongs to a company.
type Job struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index" json:"company_id"`
	Company   *Company  `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	EditableJobInfo

	Applications []Application `gorm:"foreignKey:JobID" json:"-"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// JobPage is one page of job listings.
type JobPage struct {
	Jobs        []Job `json:"jobs"`
	Total       int64 `json:"total"`
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
}
