package http

import (
	"reflect"
	"strings"

	playground "github.com/go-playground/validator/v10"

	"github.com/staffhub/rostering-backend-go/internal/pkg/validator"
)

var validate = newValidate()

func newValidate() *playground.Validate {
	v := playground.New(playground.WithRequiredStructEnabled())
	// Report field names as their json tags so error details line up
	// with what the client actually sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// validateStruct runs tag-based validation and converts failures into
// the domain validation error type.
func validateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(playground.ValidationErrors)
	if !ok {
		return err
	}

	var errs validator.ValidationErrors
	for _, fe := range fieldErrs {
		errs = append(errs, validator.ValidationError{
			Field:   fe.Field(),
			Message: validationMessage(fe),
		})
	}
	return errs
}

func validationMessage(fe playground.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "min":
		return "must have at least " + fe.Param() + " items"
	case "len":
		return "must be exactly " + fe.Param() + " characters"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "gtefield":
		return "must not be less than " + fe.Param()
	case "numeric":
		return "must be numeric"
	default:
		return "failed validation rule: " + fe.Tag()
	}
}
