package domain

import (
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validate runs struct-tag validation on a payload and converts the first
// failing field into a ValidationError. Cross-field domain rules (e.g.
// percentage caps, time windows) are checked by the owning component.
func Validate(op string, v interface{}) error {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})

	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return Internal(err, op, "payload validation failed")
	}

	fields := make(map[string]string, len(errs))
	first := ""
	for i, fe := range errs {
		field := fieldName(fe)
		if i == 0 {
			first = field
		}
		fields[field] = fieldMessage(fe)
	}

	return &ValidationError{Op: op, First: first, Fields: fields}
}

// fieldName strips the root struct name from the validator namespace,
// leaving a payload-relative path like "Options[1].Values".
func fieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must not be empty"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "email":
		return "must be a valid email address"
	default:
		return "is invalid"
	}
}
