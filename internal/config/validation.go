package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/modu-ai/scaffold/internal/core/selection"
)

var validate = newValidator()

// newValidator reports fields by their config key rather than the Go name.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the configuration for correctness. Each field is checked
// on its own; the default selection is additionally checked as a whole when
// every axis is set.
func Validate(cfg *Config) error {
	var errs []ValidationError

	if err := validate.Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		for _, fe := range fieldErrs {
			errs = append(errs, ValidationError{
				Field:   configKey(fe.Namespace()),
				Message: fieldMessage(fe),
				Value:   fe.Value(),
				Wrapped: ErrInvalidConfig,
			})
		}
	}

	d := cfg.Defaults
	if len(errs) == 0 && d.Template != "" && d.DBEngine != "" && d.DBLibrary != "" {
		if err := selection.Validate(d.Selection()); err != nil {
			errs = append(errs, ValidationError{
				Field:   "defaults",
				Message: err.Error(),
				Value:   d.Selection().String(),
				Wrapped: selection.ErrIncompatibleSelection,
			})
		}
	}

	if len(errs) > 0 {
		return &ValidationErrors{Errors: errs}
	}
	return nil
}

// configKey turns "Config.defaults.db_engine" into "defaults.db_engine".
func configKey(namespace string) string {
	_, key, found := strings.Cut(namespace, ".")
	if !found {
		return namespace
	}
	return key
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "bcp47_language_tag":
		return "must be a BCP 47 language tag"
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	default:
		return "failed " + fe.Tag() + " check"
	}
}
