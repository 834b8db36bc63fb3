package model

import (
	"time"

	"github.com/google/uuid"
)

// Peer-payment channels
const (
	MethodCashApp  = "cashapp"
	MethodZelle    = "zelle"
	MethodApplePay = "applepay"
	MethodVenmo    = "venmo"
)

// Payment is a user's claim that they paid a processing fee. It is not verified.
type Payment struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`

	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User   *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Method string  `gorm:"type:text;not null;check:method IN ('cashapp','zelle','applepay','venmo')" json:"method"`
	Amount float64 `gorm:"not null" json:"amount"`

	ApplicationID uuid.UUID `gorm:"type:uuid;not null;index" json:"application_id"`

	Screenshot string `gorm:"type:text;not null" json:"screenshot"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PaymentMethodKey identifies the only payment_methods row.
const PaymentMethodKey = "default"

// EditablePaymentMethod holds the destination handle shown to applicants per channel.
type EditablePaymentMethod struct {
	CashApp  string `gorm:"type:text;not null;default:''" json:"cashapp"`
	Zelle    string `gorm:"type:text;not null;default:''" json:"zelle"`
	ApplePay string `gorm:"type:text;not null;default:''" json:"applepay"`
	Venmo    string `gorm:"type:text;not null;default:''" json:"venmo"`
}

// PaymentMethod is the singleton payment-method directory.
type PaymentMethod struct {
	ID  uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Key string    `gorm:"type:text;not null;uniqueIndex;default:'default'" json:"-"`
	EditablePaymentMethod

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultPaymentMethod is written the first time the directory is read.
func DefaultPaymentMethod() PaymentMethod {
	return PaymentMethod{
		Key: PaymentMethodKey,
		EditablePaymentMethod: EditablePaymentMethod{
			CashApp:  "qr2q4t",
			Zelle:    "23r4t3",
			ApplePay: "42t3t",
			Venmo:    "4tq3q5",
		},
	}
}
