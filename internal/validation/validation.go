// Package validation checks raw JSON objects against per-entity rule tables and
// produces either a typed Record or the full list of violated fields.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Mode int

const (
	// Create requires every Required field.
	Create Mode = iota
	// Update checks only the fields present in input.
	Update
)

var (
	usernamePattern     = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	categoryNamePattern = regexp.MustCompile(`^[a-zA-Z0-9 ]+$`)
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is the ValidationError of the API: one entry per violated field.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e Errors) Fields() map[string]string {
	fields := make(map[string]string, len(e))
	for _, fe := range e {
		fields[fe.Field] = fe.Message
	}
	return fields
}

// Record is validated input. Values are string, int64 or nil (nullable fields).
type Record map[string]any

func (r Record) Has(field string) bool {
	_, ok := r[field]
	return ok
}

func (r Record) String(field string) string {
	s, _ := r[field].(string)
	return s
}

func (r Record) Int64(field string) int64 {
	n, _ := r[field].(int64)
	return n
}

// OptionalInt64 returns nil for an explicit null or an absent field.
func (r Record) OptionalInt64(field string) *int64 {
	n, ok := r[field].(int64)
	if !ok {
		return nil
	}
	return &n
}

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New()

	mustRegister(v, "username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "category_name", func(fl validator.FieldLevel) bool {
		return categoryNamePattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "special", func(fl validator.FieldLevel) bool {
		return strings.ContainsAny(fl.Field().String(), SpecialCharacters)
	})

	return &Validator{validate: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

// Validate checks every field of input in one pass. It never mutates input.
func (v *Validator) Validate(schema Schema, input map[string]any, mode Mode) (Record, error) {
	var errs Errors
	record := make(Record, len(schema.Rules))
	known := make(map[string]bool, len(schema.Rules)+len(schema.ReadOnly))

	for _, rule := range schema.Rules {
		known[rule.Field] = true

		raw, present := input[rule.Field]
		if !present {
			if mode == Create && rule.Required {
				errs = append(errs, FieldError{Field: rule.Field, Message: "is required"})
			}
			continue
		}

		if raw == nil {
			if rule.Nullable {
				record[rule.Field] = nil
			} else {
				errs = append(errs, FieldError{Field: rule.Field, Message: "may not be null"})
			}
			continue
		}

		value, msg := coerce(rule.Kind, raw)
		if msg != "" {
			errs = append(errs, FieldError{Field: rule.Field, Message: msg})
			continue
		}

		if rule.Tag != "" {
			if msg := v.check(value, rule); msg != "" {
				errs = append(errs, FieldError{Field: rule.Field, Message: msg})
				continue
			}
		}

		record[rule.Field] = value
	}

	var extra []string
	for field := range input {
		if !known[field] {
			extra = append(extra, field)
		}
	}
	sort.Strings(extra)

	readOnly := make(map[string]bool, len(schema.ReadOnly))
	for _, field := range schema.ReadOnly {
		readOnly[field] = true
	}
	for _, field := range extra {
		if readOnly[field] {
			errs = append(errs, FieldError{Field: field, Message: "is read-only"})
		} else {
			errs = append(errs, FieldError{Field: field, Message: "unknown field"})
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return record, nil
}

func (v *Validator) check(value any, rule Rule) string {
	err := v.validate.Var(value, rule.Tag)
	if err == nil {
		return ""
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "is invalid"
	}

	return message(verrs[0], rule.Kind)
}

func message(fe validator.FieldError, kind Kind) string {
	switch fe.Tag() {
	case "min":
		if kind == String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if kind == String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "email":
		return "must be a valid email address"
	case "username":
		return "may only contain letters, digits and underscores"
	case "category_name":
		return "may only contain letters, digits and spaces"
	case "special":
		return "must contain at least one special character (" + SpecialCharacters + ")"
	default:
		return "is invalid"
	}
}

func coerce(kind Kind, raw any) (any, string) {
	switch kind {
	case String:
		s, ok := raw.(string)
		if !ok {
			return nil, "must be a string"
		}
		return s, ""
	case Integer:
		n, ok := toInt64(raw)
		if !ok {
			return nil, "must be an integer"
		}
		return n, ""
	default:
		return nil, "is invalid"
	}
}

func toInt64(raw any) (int64, bool) {
	switch v := raw.(type) {
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	case float64:
		if v != math.Trunc(v) || v > math.MaxInt64 || v < math.MinInt64 {
			return 0, false
		}
		return int64(v), true
	case int:
		return int64(v), true
	case int64:
		return v, true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		return n, err == nil
	default:
		return 0, false
	}
}
