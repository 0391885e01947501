package errorutil

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes exposed in API responses.
const (
	CodeDatabase      = "DATABASE_ERROR"
	CodeValidation    = "VALIDATION_ERROR"
	CodeEncryption    = "ENCRYPT_ERROR"
	CodeJWT           = "JWT_ERROR"
	CodeAuth          = "AUTH_ERROR"
	CodeExport        = "EXPORT_ERROR"
	CodeConfig        = "CONFIG_ERROR"
	CodeNotFound      = "NOT_FOUND"
	CodeAlreadyExists = "ALREADY_EXISTS"
	CodeNotModified   = "NOT_MODIFIED"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeWrongPassword = "WRONG_PASSWORD"
	CodeInternal      = "INTERNAL_ERROR"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func wrap(code, message string, status int, err error) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Err: err}
}

func NewDatabaseError(err error) error {
	return wrap(CodeDatabase, "database error", http.StatusInternalServerError, err)
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError(CodeValidation, message, http.StatusBadRequest, details)
}

func NewEncryptionError(err error) error {
	return wrap(CodeEncryption, "unable to process credentials", http.StatusInternalServerError, err)
}

func NewJWTError(err error) error {
	return wrap(CodeJWT, "invalid token", http.StatusUnauthorized, err)
}

func NewAuthError(message string) error {
	return NewDomainError(CodeAuth, message, http.StatusUnauthorized, nil)
}

func NewExportError(err error) error {
	return wrap(CodeExport, "unable to export ticket", http.StatusInternalServerError, err)
}

// NewConfigError reports missing or malformed configuration for key.
func NewConfigError(key string, err error) error {
	return wrap(CodeConfig, fmt.Sprintf("invalid configuration: %s", key), http.StatusInternalServerError, err)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewAlreadyExists(message string, details map[string]any) error {
	return NewDomainError(CodeAlreadyExists, message, http.StatusConflict, details)
}

func NewNotModified() error {
	return NewDomainError(CodeNotModified, "nothing to update", http.StatusNotModified, nil)
}

func NewUnauthorized(message string) error {
	return NewDomainError(CodeUnauthorized, message, http.StatusUnauthorized, nil)
}

func NewWrongPassword() error {
	return NewDomainError(CodeWrongPassword, "wrong username or password", http.StatusUnauthorized, nil)
}

func NewInternalError(err error) error {
	return wrap(CodeInternal, "internal server error", http.StatusInternalServerError, err)
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return wrap(CodeInternal, "internal server error", http.StatusInternalServerError, err)
}

// HasCode reports whether err is a DomainError carrying code.
func HasCode(err error, code string) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Code == code
}
