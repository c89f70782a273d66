package dto

import (
	"errors"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/orca-works/orca-crm/pkg/util"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate runs struct tag validation on a request payload, folding field
// failures into the shared error envelope as field -> failed rule pairs.
func Validate(payload any) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		details := make(map[string]any, len(fieldErrs))
		for _, fe := range fieldErrs {
			details[fe.Field()] = fe.Tag()
		}
		return apperrors.NewValidationError("invalid payload", details)
	}
	return apperrors.NewInternalError(err)
}
