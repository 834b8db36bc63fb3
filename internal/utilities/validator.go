package utilities

import (
	"regexp"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	imageDataURLPattern = regexp.MustCompile(`^data:image/[a-zA-Z0-9.+-]+;base64,[A-Za-z0-9+/=\r\n]+$`)
	registerOnce        sync.Once
	validate            = validator.New()
)

// IsEmail reports whether s is a syntactically valid email address.
func IsEmail(s string) bool {
	return validate.Var(s, "required,email") == nil
}

// IsImageDataURL reports whether s looks like a base64 encoded image data URL.
func IsImageDataURL(s string) bool {
	return imageDataURLPattern.MatchString(s)
}

func validateImageDataURL(fl validator.FieldLevel) bool {
	return IsImageDataURL(fl.Field().String())
}

// RegisterValidators adds the custom binding rules to gin's validator engine.
// Safe to call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("imagedataurl", validateImageDataURL)
		}
	})
}
