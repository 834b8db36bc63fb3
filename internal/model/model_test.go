package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "someone@example.com", NormalizeEmail("  SomeOne@Example.COM "))
}

func TestUserBeforeSave(t *testing.T) {
	email := " Mixed@Case.io"
	u := &User{Email: &email, Name: "  Jane  "}
	assert.NoError(t, u.BeforeSave(nil))
	assert.Equal(t, "mixed@case.io", *u.Email)
	assert.Equal(t, "Jane", u.Name)
}

func TestSummarize(t *testing.T) {
	apps := []Application{
		{Status: ApplicationStatusPending},
		{Status: ApplicationStatusPending},
		{Status: ApplicationStatusSuccessful},
		{Status: ApplicationStatusRejected},
	}
	s := Summarize(apps)
	assert.Equal(t, ApplicationSummary{Total: 4, Pending: 2, Successful: 1, Rejected: 1}, s)
}

func TestDefaultPaymentMethod(t *testing.T) {
	pm := DefaultPaymentMethod()
	assert.Equal(t, PaymentMethodKey, pm.Key)
	assert.Equal(t, "qr2q4t", pm.CashApp)
	assert.Equal(t, "23r4t3", pm.Zelle)
	assert.Equal(t, "42t3t", pm.ApplePay)
	assert.Equal(t, "4tq3q5", pm.Venmo)
}
