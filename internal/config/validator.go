package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidateConfig performs validation on the GlobalConfig structure.
func ValidateConfig(cfg *GlobalConfig) error {
	validate := validator.New()

	// Register custom validation for the run mode
	_ = validate.RegisterValidation("mode", func(fl validator.FieldLevel) bool {
		mode := fl.Field().String()
		return mode == "onetime" || mode == "scheduled"
	})

	// Register custom validation for region codes
	_ = validate.RegisterValidation("region", func(fl validator.FieldLevel) bool {
		region := strings.ToUpper(fl.Field().String())
		for _, supported := range SupportedRegions {
			if region == supported {
				return true
			}
		}
		return false
	})

	// Register custom validation for log format
	_ = validate.RegisterValidation("logformat", func(fl validator.FieldLevel) bool {
		format := fl.Field().String()
		return format == "json" || format == "console" || format == "text"
	})

	// Register custom validation for log level
	_ = validate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "trace", "debug", "info", "warn", "error", "fatal", "panic":
			return true
		}
		return false
	})

	if err := validate.Struct(cfg); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			messages := make([]string, 0, len(validationErrors))
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("field '%s' failed on '%s' rule", fieldErr.Namespace(), fieldErr.Tag()))
			}
			return fmt.Errorf("configuration invalid: %s", strings.Join(messages, "; "))
		}
		return err
	}

	return nil
}
