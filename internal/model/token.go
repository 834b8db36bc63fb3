package model

import (
	"time"

	"github.com/google/uuid"
)

// TokenLength is the number of characters in a generated invitation token
const TokenLength = 29

// Token is a single-use invitation token. It is deleted when redeemed.
type Token struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Token     string    `gorm:"type:text;not null;index" json:"token"`
	CreatedAt time.Time `json:"created_at"`
}
