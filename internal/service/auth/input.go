package auth

import (
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/conceptdost/conceptdost-backend/internal/domain"
)

// RegisterInput holds parameters for the register operation.
type RegisterInput struct {
	Email    string
	Username string
	Password string
}

// Validate validates the register input.
func (i RegisterInput) Validate() error {
	return toDomainValidationError(validation.ValidateStruct(&i,
		validation.Field(&i.Email, validation.Required, is.Email),
		validation.Field(&i.Username, validation.Required, validation.Length(3, 32)),
		validation.Field(&i.Password, validation.Required, validation.Length(8, 72)),
	))
}

// LoginInput holds parameters for the password login operation.
type LoginInput struct {
	Email    string
	Password string
}

// Validate validates the login input.
func (i LoginInput) Validate() error {
	return toDomainValidationError(validation.ValidateStruct(&i,
		validation.Field(&i.Email, validation.Required, is.Email),
		validation.Field(&i.Password, validation.Required),
	))
}

// RefreshInput holds parameters for the token refresh operation.
type RefreshInput struct {
	RefreshToken string
}

// Validate validates the refresh input.
func (i RefreshInput) Validate() error {
	return toDomainValidationError(validation.ValidateStruct(&i,
		validation.Field(&i.RefreshToken, validation.Required, validation.Length(1, 512)),
	))
}

// toDomainValidationError converts ozzo field errors into the domain
// validation error type used across all services.
func toDomainValidationError(err error) error {
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validation.Errors)
	if !ok {
		return domain.NewValidationError("input", err.Error())
	}

	errs := make([]domain.FieldError, 0, len(fieldErrs))
	for field, ferr := range fieldErrs {
		errs = append(errs, domain.FieldError{Field: field, Message: ferr.Error()})
	}
	sort.Slice(errs, func(a, b int) bool { return errs[a].Field < errs[b].Field })

	return domain.NewValidationErrors(errs)
}
