package manifest

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	rerr "github.com/matzehuels/reactor/pkg/errors"
)

// validate is a singleton validator instance.
var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("coordinate", func(fl validator.FieldLevel) bool {
		return rerr.ValidateCoordinate("coordinate", fl.Field().String()) == nil
	})
	_ = validate.RegisterValidation("modpath", func(fl validator.FieldLevel) bool {
		return rerr.ValidatePath(fl.Field().String()) == nil
	})
}

// Validate checks the manifest structure: at least one project, well-formed
// coordinates and relative module paths. Duplicate projects and cycles are
// left to the reactor graph.
func (m *Manifest) Validate() error {
	if m == nil {
		return rerr.New(rerr.ErrCodeInvalidManifest, "manifest is nil")
	}
	if err := validate.Struct(m); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// formatValidationError converts validator errors to an INVALID_MANIFEST
// error naming the first offending field.
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return rerr.Wrap(rerr.ErrCodeInvalidManifest, err, "invalid manifest")
	}

	e := validationErrs[0]
	field := e.Namespace()
	var msg string
	switch e.Tag() {
	case "required":
		msg = fmt.Sprintf("%s: field is required", field)
	case "min":
		msg = fmt.Sprintf("%s: must have at least %s entries", field, e.Param())
	case "coordinate":
		msg = fmt.Sprintf("%s: %q is not a valid coordinate (letters, digits, '_', '-', '.')", field, e.Value())
	case "modpath":
		msg = fmt.Sprintf("%s: %q must be a relative path inside the reactor", field, e.Value())
	default:
		msg = fmt.Sprintf("%s: validation failed (%s)", field, e.Tag())
	}
	return rerr.New(rerr.ErrCodeInvalidManifest, "%s", msg)
}
