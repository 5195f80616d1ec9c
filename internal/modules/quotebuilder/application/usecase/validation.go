package usecase

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	quotes "mealQuote/internal/modules/quotes/domain"
)

// ErrInvalidInput marks payloads rejected by validation.
var ErrInvalidInput = errors.New("invalid input")

// ValidationError lists the offending fields by their JSON path.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("invalid input: %s", strings.Join(names, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// PayloadValidator validates request payloads against their struct tags.
type PayloadValidator struct {
	validate *validator.Validate
}

func NewPayloadValidator() *PayloadValidator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = validate.RegisterValidation("menutier", validateMenuTier)
	return &PayloadValidator{validate: validate}
}

func (v *PayloadValidator) Struct(payload any) error {
	err := v.validate.Struct(payload)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields[fieldPath(fe.Namespace())] = describeFieldError(fe)
	}
	return &ValidationError{Fields: fields}
}

// withoutFields drops the named fields from a ValidationError. It returns nil when none remain.
func withoutFields(err error, names ...string) error {
	var validation *ValidationError
	if err == nil || !errors.As(err, &validation) {
		return err
	}
	fields := maps.Clone(validation.Fields)
	for _, name := range names {
		delete(fields, name)
	}
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

func validateMenuTier(fl validator.FieldLevel) bool {
	_, ok := quotes.ParseMenuTier(fl.Field().String())
	return ok
}

// fieldPath drops the root struct name from the namespace.
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "menutier":
		return "must be Silver, Gold or Platinum"
	case "email":
		return "must be a valid email"
	case "oneof":
		return "must be one of " + fe.Param()
	case "gte", "min":
		return "must be at least " + fe.Param()
	case "lte", "max":
		return "must be at most " + fe.Param()
	default:
		return "failed " + fe.Tag()
	}
}
