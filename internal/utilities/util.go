// Package utilities contain utility code that use across the package
package utilities

import (
	"errors"
	"net/http"
	"reflect"

	"JobPortal-backend/internal/model"

	"github.com/gin-gonic/gin"
)

// Response is the envelope every JSON endpoint answers with
type Response[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    *T     `json:"data,omitempty"`
}

// ErrorResponse type for swagger docs
type ErrorResponse = Response[struct{}]

// OK writes a successful envelope carrying data.
func OK[T any](c *gin.Context, status int, message string, data T) {
	c.JSON(status, Response[T]{Success: true, Message: message, Data: &data})
}

// Fail writes a failed envelope and aborts the chain.
func Fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Success: false, Message: message})
}

// FailWith writes a failed envelope that still carries data.
func FailWith[T any](c *gin.Context, status int, message string, data T) {
	c.AbortWithStatusJSON(status, Response[T]{Success: false, Message: message, Data: &data})
}

// ExtractUser extracts the user model from Gin context.
// It does not abort the request; instead returns an error when missing/invalid.
func ExtractUser(c *gin.Context) (model.User, error) {
	u, _ := c.Get("user")
	if u == nil {
		return model.User{}, errors.New("User information not provided")
	}

	user, ok := u.(model.User)
	if !ok {
		return model.User{}, errors.New("Failed to assert type")
	}
	return user, nil
}

// MustExtractUser is ExtractUser that answers 401 itself. ok is false when the request was aborted.
func MustExtractUser(c *gin.Context) (model.User, bool) {
	user, err := ExtractUser(c)
	if err != nil {
		Fail(c, http.StatusUnauthorized, err.Error())
		return model.User{}, false
	}
	return user, true
}

// MergeNonEmpty help merge struct with non-empty field
func MergeNonEmpty(dst, src interface{}) {
	dv := reflect.ValueOf(dst).Elem()
	sv := reflect.ValueOf(src).Elem()

	for i := 0; i < sv.NumField(); i++ {
		sf := sv.Field(i)
		if sf.IsZero() {
			continue
		}
		df := dv.FieldByName(sv.Type().Field(i).Name)
		if !df.IsValid() || !df.CanSet() {
			continue
		}
		if sf.Kind() == reflect.Pointer && df.Kind() != reflect.Pointer {
			sf = sf.Elem()
		}
		if sf.Type().AssignableTo(df.Type()) {
			df.Set(sf)
		}
	}
}
