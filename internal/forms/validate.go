// Copyright (c) 2025 EventsOps
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package forms validates operator input before anything is sent to the
// backend. Failures are field-level and carry the same wording the dashboard
// showed inline; nothing in this package performs I/O.
package forms

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	apperrors "eventsops/cli/internal/errors"

	"github.com/go-playground/validator/v10"
)

// FieldError is one rejected field.
type FieldError struct {
	Field   string
	Message string
}

// Errors lists rejected fields in declaration order.
type Errors []FieldError

func (e Errors) Error() string {
	seen := make(map[string]bool, len(e))
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		if seen[fe.Message] {
			continue
		}
		seen[fe.Message] = true
		msgs = append(msgs, fe.Message)
	}
	return strings.Join(msgs, "; ")
}

// ErrorKind marks form errors as validation failures.
func (e Errors) ErrorKind() apperrors.Kind { return apperrors.Validation }

// Field returns the message for field, or "".
func (e Errors) Field(name string) string {
	for _, fe := range e {
		if fe.Field == name {
			return fe.Message
		}
	}
	return ""
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func instance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		// Report fields by their JSON name, which is what the backend and
		// the messages tables use.
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})

		// notblank rejects strings that are empty after trimming spaces.
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})

		validate = v
	})
	return validate
}

// check validates s and maps failures through messages, keyed "field.tag".
// Only the first failing rule of each field is reported.
func check(s any, messages map[string]string) Errors {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Errors{{Field: "", Message: err.Error()}}
	}

	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if out.Field(field) != "" {
			continue
		}
		msg, ok := messages[field+"."+fe.Tag()]
		if !ok {
			msg = field + " is invalid"
		}
		out = append(out, FieldError{Field: field, Message: msg})
	}
	return out
}

// orNil keeps a nil Errors from turning into a non-nil error interface.
func orNil(errs Errors) error {
	if len(errs) == 0 {
		return nil
	}
	return errs
}
