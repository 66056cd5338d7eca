package service

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/spec-kit/user-notification-service/internal/domain"
	apperrors "github.com/spec-kit/user-notification-service/pkg/util"
)

// newValidator reports field names by their JSON tag and knows the
// user_status rule.
func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("user_status", func(fl validator.FieldLevel) bool {
		return domain.UserStatus(fl.Field().String()).Valid()
	})
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validationError turns validator output into a VALIDATION_FAILED DomainError.
// Only missing fields yields "Missing required fields"; anything else is "Invalid fields".
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	missing := make([]string, 0, len(verrs))
	invalid := make(map[string]any)
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
			continue
		}
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		invalid[fe.Field()] = rule
	}

	if len(invalid) == 0 {
		return apperrors.NewValidationError("Missing required fields", map[string]any{"fields": missing})
	}
	details := map[string]any{"invalid": invalid}
	if len(missing) > 0 {
		details["fields"] = missing
	}
	return apperrors.NewValidationError("Invalid fields", details)
}
