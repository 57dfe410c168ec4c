package router

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Constraint reports whether a route value is acceptable for a parameter.
type Constraint func(value string) bool

// defaultConstraints are available to every router.
var defaultConstraints = map[string]Constraint{
	"int":   IsInt,
	"alpha": IsAlpha,
	"bool":  IsBool,
	"guid":  IsGUID,
}

// IsInt accepts decimal digits only, with a value that fits a 32-bit integer.
func IsInt(v string) bool {
	if v == "" {
		return false
	}
	for i := 0; i < len(v); i++ {
		if v[i] < '0' || v[i] > '9' {
			return false
		}
	}
	_, err := strconv.ParseInt(v, 10, 32)
	return err == nil
}

// IsAlpha accepts one or more ASCII letters.
func IsAlpha(v string) bool {
	if v == "" {
		return false
	}
	for i := 0; i < len(v); i++ {
		c := v[i]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}

// IsBool accepts "true" or "false" in any case.
func IsBool(v string) bool {
	return strings.EqualFold(v, "true") || strings.EqualFold(v, "false")
}

// IsGUID accepts any UUID representation google/uuid can parse.
func IsGUID(v string) bool {
	return uuid.Validate(v) == nil
}
