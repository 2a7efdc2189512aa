// Package web defines common components for a web application.
package web

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-petr/snapledger/pkg/errorspkg"
	"github.com/go-playground/validator/v10"
)

// Response holds the common response type for all APIs.
type Response struct {
	AccessToken           string     `json:"access_token,omitempty"`
	AccessTokenExpiresAt  *time.Time `json:"access_token_expires_at,omitempty"`
	RefreshToken          string     `json:"refresh_token,omitempty"`
	RefreshTokenExpiresAt *time.Time `json:"refresh_token_expires_at,omitempty"`
	Data                  any        `json:"data,omitempty"`
	Error                 string     `json:"error,omitempty"`
	Kind                  string     `json:"kind,omitempty"`
}

// Error wraps a given err into json frinedly struct.
func Error(err error) Response {
	msg := err.Error()

	var appErr *errorspkg.Error
	if errors.As(err, &appErr) {
		msg = appErr.Msg
	}

	return Response{
		Error: msg,
		Kind:  errorspkg.KindOf(err).String(),
	}
}

// StatusCode maps the error kind of err to the http status code.
func StatusCode(err error) int {
	switch errorspkg.KindOf(err) {
	case errorspkg.KindValidation:
		return http.StatusBadRequest
	case errorspkg.KindNotFound:
		return http.StatusNotFound
	case errorspkg.KindConflict:
		return http.StatusConflict
	case errorspkg.KindInsufficientFunds:
		return http.StatusUnprocessableEntity
	case errorspkg.KindUnavailable:
		return http.StatusServiceUnavailable
	case errorspkg.KindPermissionDenied:
		return http.StatusForbidden
	case errorspkg.KindUnauthenticated:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// ErrorResponse returns the http status and body for err. Internal errors are
// replaced with the opaque errorspkg.ErrInternal.
func ErrorResponse(err error) (int, Response) {
	code := StatusCode(err)
	if code == http.StatusInternalServerError {
		return code, Error(errorspkg.ErrInternal)
	}

	return code, Error(err)
}

// GetErrorMsg returns a human readable message for the first failed validation.
func GetErrorMsg(ve validator.ValidationErrors) string {
	if len(ve) == 0 {
		return "invalid request"
	}

	fe := ve[0]

	switch fe.Tag() {
	case "required":
		return fe.Field() + " field is required"
	case "min":
		return fe.Field() + " must be at least " + fe.Param()
	case "max":
		return fe.Field() + " must be at most " + fe.Param()
	case "len":
		return fe.Field() + " must be " + fe.Param() + " characters long"
	case "username":
		return fe.Field() + " must be at least 3 characters of letters, digits or underscores"
	case "pin":
		return fe.Field() + " must be exactly 4 digits"
	case "uuid", "uuid4":
		return fe.Field() + " must be a valid uuid"
	case "numeric":
		return fe.Field() + " must contain digits only"
	}

	return fe.Field() + " is invalid"
}

// BindError returns the response for a request that failed binding or validation.
func BindError(err error) Response {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return Response{Error: GetErrorMsg(ve), Kind: errorspkg.KindValidation.String()}
	}

	return Response{Error: "invalid request body", Kind: errorspkg.KindValidation.String()}
}
