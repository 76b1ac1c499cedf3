package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	sablierrors "github.com/alexisbeaulieu97/sablier/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

// validatorInstance configures and returns the shared validator instance used across the config package.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		// Report fields by their configuration key.
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("mapstructure"), ",", 2)[0]
			if name == "" || name == "-" {
				return field.Name
			}
			return name
		})

		validateInst = v
	})

	return validateInst
}

// GetValidator returns the shared validator instance.
func GetValidator() *validator.Validate {
	return validatorInstance()
}

// Validate checks every section and returns the first failure as a
// ValidationError named by its configuration key, e.g. "storage.driver".
func (c *Config) Validate() error {
	err := validatorInstance().Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return sablierrors.NewValidationError("", err.Error(), err)
	}

	first := fieldErrs[0]
	field := strings.TrimPrefix(first.Namespace(), "Config.")
	return sablierrors.NewValidationError(field, describe(first), err)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of [%s], got %q", fe.Param(), fe.Value())
	case "hostname_port":
		return fmt.Sprintf("must be host:port, got %q", fe.Value())
	case "gt", "gte":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
