package service

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/claude/optcoach/internal/models"
	"github.com/go-playground/validator/v10"
)

// ValidationError lists the request fields that failed validation, keyed by
// their JSON name. It matches ErrValidation under errors.Is.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + ": " + e.Fields[name]
	}
	return "invalid request: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalidField(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// newValidator builds the request validator with the enumeration tags used
// on models.GenerateRequest.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister(v, "optphase", func(fl validator.FieldLevel) bool {
		return models.ParsePhase(fl.Field().String()) != ""
	})
	mustRegister(v, "level", func(fl validator.FieldLevel) bool {
		return models.ParseLevel(fl.Field().String()) != ""
	})
	mustRegister(v, "split", func(fl validator.FieldLevel) bool {
		return models.ParseSplitType(fl.Field().String()) != ""
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("registering %s validation: %v", tag, err))
	}
}

// validateRequest checks req against its struct tags.
func (s *Service) validateRequest(req *models.GenerateRequest) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validating request: %w", err)
	}
	ve := &ValidationError{Fields: make(map[string]string, len(fieldErrs))}
	for _, fe := range fieldErrs {
		ve.Fields[fieldPath(fe)] = describe(fe)
	}
	return ve
}

// fieldPath strips the struct name from the namespace: GenerateRequest.secondaryGoals[0]
// becomes secondaryGoals[0].
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "optphase":
		return "must be one of STABILIZATION_ENDURANCE, STRENGTH_ENDURANCE, MUSCULAR_DEVELOPMENT, MAXIMAL_STRENGTH, POWER"
	case "level":
		return "must be one of BEGINNER, INTERMEDIATE, ADVANCED"
	case "split":
		return "must be one of auto, full-body, upper-lower, push-pull-legs, bro-split, custom"
	}
	return "failed " + fe.Tag() + " check"
}
