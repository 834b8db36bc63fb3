package model

import (
	"time"

	"github.com/google/uuid"
)

// EditableCompanyInfo is the part of a company an admin can change.
type EditableCompanyInfo struct {
	Name  string `gorm:"type:text;not null;uniqueIndex" json:"name"`
	Logo  string `gorm:"type:text" json:"logo"`
	About string `gorm:"type:text;not null" json:"about"`
}

// Company posts jobs on the board.
type Company struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	EditableCompanyInfo

	Jobs []Job `gorm:"foreignKey:CompanyID" json:"jobs,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
