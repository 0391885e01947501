package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/pkg/patch"
	apperrors "github.com/spec-kit/support-desk/pkg/util/errorutil"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterCustomTypeFunc(rawField,
		patch.Field[string]{},
		patch.Field[uuid.UUID]{},
		patch.Field[domain.Role]{},
		patch.Field[domain.UserStatus]{},
		patch.Field[domain.TicketStatus]{},
	)
	return v
}

// rawField lets tags on a patch.Field apply to the supplied value. Absent and
// null fields become a nil pointer, which omitnil skips.
func rawField(v reflect.Value) interface{} {
	ptr := v.MethodByName("Ptr")
	if !ptr.IsValid() {
		return nil
	}
	return ptr.Call(nil)[0].Interface()
}

// Validate checks req against its validate tags and reports each failing
// field with its own message.
func Validate(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.NewValidationError(err.Error(), nil)
	}
	details := make(map[string]any, len(fieldErrs))
	for _, fe := range fieldErrs {
		details[fe.Field()] = message(fe)
	}
	return apperrors.NewValidationError("validation failed", details)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "email":
		return "must be a valid email address"
	case "uuid":
		return "must be a valid UUID"
	default:
		return fmt.Sprintf("failed on %s", fe.Tag())
	}
}

// rejectNull fails when any of the named fields was supplied as null.
func rejectNull(fields map[string]interface{ IsNull() bool }) error {
	details := map[string]any{}
	for name, f := range fields {
		if f.IsNull() {
			details[name] = "must not be null"
		}
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details)
	}
	return nil
}

// ParseID validates a UUID taken from a path or body.
func ParseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperrors.NewValidationError("validation failed", map[string]any{"id": "must be a valid UUID"})
	}
	return id, nil
}
