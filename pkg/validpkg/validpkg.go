// Package validpkg holds the request field validators shared by the delivery layer.
package validpkg

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/go-petr/snapledger/pkg/pinpkg"
)

// Username length bounds.
const (
	UsernameMinLength = 3
	UsernameMaxLength = 64
)

var usernameRx = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// ValidUsername reports whether s is an acceptable username.
func ValidUsername(s string) bool {
	return len(s) >= UsernameMinLength && len(s) <= UsernameMaxLength && usernameRx.MatchString(s)
}

// Username validates a username field.
var Username validator.Func = func(fl validator.FieldLevel) bool {
	if s, ok := fl.Field().Interface().(string); ok {
		return ValidUsername(s)
	}

	return false
}

// Pin validates a PIN field.
var Pin validator.Func = func(fl validator.FieldLevel) bool {
	if s, ok := fl.Field().Interface().(string); ok {
		return pinpkg.ValidFormat(s)
	}

	return false
}

// Register installs the custom validators on v.
func Register(v *validator.Validate) error {
	if err := v.RegisterValidation("username", Username); err != nil {
		return err
	}

	return v.RegisterValidation("pin", Pin)
}

// RegisterGin installs the custom validators on gin's default binding engine.
func RegisterGin() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	return Register(v)
}
