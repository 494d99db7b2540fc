package respond

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report failures under the field's json name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}

// Valid checks the decoded payload against its struct tags. Every failing
// field is reported at once in a 400; nothing is partially accepted.
func Valid(w http.ResponseWriter, payload any) bool {
	err := validate.Struct(payload)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		Internal(w)
		return false
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = ruleMessage(fe)
	}

	ValidationFailed(w, fields)

	return false
}

// ValidationFailed writes a 400 enumerating the failing fields.
func ValidationFailed(w http.ResponseWriter, fields map[string]string) {
	JSON(w, http.StatusBadRequest, map[string]any{
		"error":  "validation failed",
		"fields": fields,
	})
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "dive":
		return "has invalid elements"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
