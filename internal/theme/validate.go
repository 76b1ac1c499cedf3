package theme

import (
	stdErrors "errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	sablierrors "github.com/alexisbeaulieu97/sablier/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	tokenKeyPattern   = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	spacingKeyPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)
)

// forbiddenValueChars would let a stored value escape its declaration when
// written into a style sheet.
const forbiddenValueChars = ";{}<>\n\r"

// validatorInstance configures and returns the shared validator instance used across the theme package.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return field.Name
			}
			return name
		})

		_ = v.RegisterValidation("color_scheme", func(fl validator.FieldLevel) bool {
			return ColorScheme(fl.Field().String()).Valid()
		})

		_ = v.RegisterValidation("resolved_scheme", func(fl validator.FieldLevel) bool {
			value := fl.Field().String()
			return value == "" || ResolvedScheme(value).Valid()
		})

		_ = v.RegisterValidation("token_key", func(fl validator.FieldLevel) bool {
			return tokenKeyPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("spacing_key", func(fl validator.FieldLevel) bool {
			return spacingKeyPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("token_value", func(fl validator.FieldLevel) bool {
			return validTokenValue(fl.Field().String())
		})

		validateInst = v
	})

	return validateInst
}

// Validator returns the shared validator, with the theme tags registered, for
// use outside the theme package.
func Validator() *validator.Validate {
	return validatorInstance()
}

func validTokenValue(value string) bool {
	if strings.TrimSpace(value) == "" {
		return false
	}
	return !strings.ContainsAny(value, forbiddenValueChars)
}

// Validate checks that t has a known color scheme, non-empty scales and color
// keys and values that are safe to project as custom properties.
func Validate(t Theme) error {
	if err := validatorInstance().Struct(t); err != nil {
		return toValidationError(err)
	}
	return validateColors(t.Colors)
}

func validateColors(c Colors) error {
	if c.IsZero() {
		return sablierrors.NewValidationError("colors", "must define at least one color token", nil)
	}

	v := validatorInstance()
	for _, key := range c.TokenKeys() {
		if err := v.Var(key, "token_key"); err != nil {
			return sablierrors.NewValidationError("colors."+key, "invalid token key", err)
		}
		if err := v.Var(c.tokens[key], "token_value"); err != nil {
			return sablierrors.NewValidationError("colors."+key, fmt.Sprintf("invalid value %q", c.tokens[key]), err)
		}
	}
	for _, name := range c.GroupNames() {
		if err := v.Var(name, "token_key"); err != nil {
			return sablierrors.NewValidationError("colors."+name, "invalid group name", err)
		}
		group := c.groups[name]
		if len(group) == 0 {
			return sablierrors.NewValidationError("colors."+name, "group must not be empty", nil)
		}
		for _, key := range group.Keys() {
			field := "colors." + name + "." + key
			if err := v.Var(key, "token_key"); err != nil {
				return sablierrors.NewValidationError(field, "invalid token key", err)
			}
			if err := v.Var(group[key], "token_value"); err != nil {
				return sablierrors.NewValidationError(field, fmt.Sprintf("invalid value %q", group[key]), err)
			}
		}
	}
	return nil
}

func toValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !stdErrors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return sablierrors.NewValidationError("", err.Error(), err)
	}

	first := fieldErrs[0]
	field := strings.TrimPrefix(first.Namespace(), "Theme.")
	return sablierrors.NewValidationError(field, describeTag(first), err)
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must not be empty"
	case "color_scheme":
		return fmt.Sprintf("unknown color scheme %q", fe.Value())
	case "token_key", "spacing_key":
		return fmt.Sprintf("invalid key %q", fe.Value())
	case "token_value":
		return fmt.Sprintf("invalid value %q", fe.Value())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
