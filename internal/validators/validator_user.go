package validators

import (
	"context"
	"strings"

	"github.com/dkotelnikov/user-service/models"
)

// Field names accepted by [UserValidator.Validate] for targeted checks.
const (
	FieldUsername  = "username"
	FieldEmail     = "email"
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
	FieldAge       = "age"
)

const (
	minAge = 0
	maxAge = 150
)

// UserValidator checks user payloads before they reach the store.
//
// Two modes exist, keyed by the payload type:
//   - [models.User] is a create payload: every required field must be
//     present and non-empty.
//   - [models.UserUpdate] is an update payload: only supplied (non-nil)
//     fields are checked; partial and even empty payloads are valid.
//
// Validation is pure: it never touches the store, so uniqueness is out of
// scope here and is handled by the service layer.
type UserValidator struct {
}

// NewUserValidator constructs a [Validator] for user payloads.
func NewUserValidator() Validator {
	return &UserValidator{}
}

// Validate implements [Validator]. When fields is empty, every applicable
// rule for the payload's mode runs; otherwise only the named fields are
// checked.
func (v *UserValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.User:
		return v.validateCreate(ctx, value, fields...)
	case *models.User:
		return v.validateCreate(ctx, *value, fields...)

	case models.UserUpdate:
		return v.validateUpdate(ctx, value, fields...)
	case *models.UserUpdate:
		return v.validateUpdate(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *UserValidator) validateCreate(_ context.Context, user models.User, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldEmail, FieldFirstName, FieldLastName, FieldAge}
	}

	for _, f := range fields {
		switch f {
		case FieldUsername:
			if user.Username == "" {
				return ErrMissingUsername
			}
		case FieldEmail:
			if user.Email == "" {
				return ErrMissingEmail
			}
			if !isValidEmail(user.Email) {
				return ErrInvalidEmail
			}
		case FieldFirstName:
			if user.FirstName == "" {
				return ErrMissingFirstName
			}
		case FieldLastName:
			if user.LastName == "" {
				return ErrMissingLastName
			}
		case FieldAge:
			if user.Age != nil && !isValidAge(*user.Age) {
				return ErrAgeOutOfRange
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *UserValidator) validateUpdate(_ context.Context, update models.UserUpdate, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldEmail, FieldFirstName, FieldLastName, FieldAge}
	}

	for _, f := range fields {
		switch f {
		case FieldUsername:
			if update.Username != nil && *update.Username == "" {
				return ErrMissingUsername
			}
		case FieldEmail:
			if update.Email != nil {
				if *update.Email == "" {
					return ErrMissingEmail
				}
				if !isValidEmail(*update.Email) {
					return ErrInvalidEmail
				}
			}
		case FieldFirstName:
			if update.FirstName != nil && *update.FirstName == "" {
				return ErrMissingFirstName
			}
		case FieldLastName:
			if update.LastName != nil && *update.LastName == "" {
				return ErrMissingLastName
			}
		case FieldAge:
			if update.Age != nil && !isValidAge(*update.Age) {
				return ErrAgeOutOfRange
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func isValidEmail(email string) bool {
	return strings.Contains(email, "@")
}

func isValidAge(age int) bool {
	return age >= minAge && age <= maxAge
}
