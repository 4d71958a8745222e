package config

import (
	"regexp"
	"strings"

	"github.com/docker/go-units"
	"github.com/go-playground/validator/v10"
	"github.com/gobwas/glob"
)

// validateSize validates the size format (e.g., "10MB", "1GB")
func validateSize(fl validator.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	if value == "" {
		return false
	}
	_, err := units.FromHumanSize(value)
	return err == nil
}

// validateGlob checks that a protect glob compiles with "/" as separator
func validateGlob(fl validator.FieldLevel) bool {
	_, err := glob.Compile(fl.Field().String(), '/')
	return err == nil
}

func validateRegexp(fl validator.FieldLevel) bool {
	_, err := regexp.Compile(fl.Field().String())
	return err == nil
}
