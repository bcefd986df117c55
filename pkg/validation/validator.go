package validation

import (
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/oksasatya/geo-region-service/internal/domain/errs"
)

const PasswordRuleMessage = "Password must have at least 6 characters, one uppercase letter, one number, and one special symbol"

var initOnce sync.Once

// Init configures the global validator used by Gin's binding.
// - Uses JSON tag names in errors.
// - Registers the "password" rule.
func Init() {
	initOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
			return StrongPassword(fl.Field().String())
		})
	})
}

// StrongPassword requires six or more characters including an uppercase
// letter, a digit, and a symbol or underscore.
func StrongPassword(s string) bool {
	if len([]rune(s)) < 6 {
		return false
	}
	var upper, digit, special bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case r == '_' || !(unicode.IsLetter(r) || unicode.IsDigit(r)):
			special = true
		}
	}
	return upper && digit && special
}

// FromBindError turns a gin binding error into a VALIDATION_ERROR carrying
// one FieldError per failing field.
func FromBindError(err error) *errs.Error {
	return errs.Validation("Validation failed", ToDetails(err)...)
}

// ToDetails converts validation/binding errors into field-scoped messages
// suitable for API error details.
func ToDetails(err error) []errs.FieldError {
	if err == nil {
		return nil
	}

	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	switch {
	case errors.As(err, &ute):
		field := ute.Field
		if field == "" {
			field = "payload"
		}
		return []errs.FieldError{{Field: field, Message: "must be of type " + ute.Type.String()}}
	case errors.As(err, &se), errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return []errs.FieldError{{Field: "payload", Message: "invalid json"}}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]errs.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, errs.FieldError{Field: fe.Field(), Message: formatFieldError(fe)})
		}
		return out
	}

	return []errs.FieldError{{Field: "payload", Message: "invalid payload"}}
}

func formatFieldError(fe validator.FieldError) string {
	param := fe.Param()

	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "uuid", "uuid4":
		return "must be a valid UUID"
	case "password":
		return PasswordRuleMessage
	case "latitude":
		return "must be a valid latitude"
	case "longitude":
		return "must be a valid longitude"
	case "min":
		if isNumberKind(fe.Kind()) {
			return "must be at least " + param
		}
		return "must be at least " + param + " characters long"
	case "max":
		if isNumberKind(fe.Kind()) {
			return "must be at most " + param
		}
		return "must be at most " + param + " characters long"
	case "gt":
		return "must be greater than " + param
	case "gte":
		return "must be greater than or equal to " + param
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(param), ", ")
	case "excluded_with":
		return "must be excluded when " + param + " is present"
	case "boolean":
		return "must be a boolean value"
	default:
		if param != "" {
			return "validation failed for '" + fe.Tag() + "' with parameter '" + param + "'"
		}
		return "validation failed for '" + fe.Tag() + "'"
	}
}

func isNumberKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
