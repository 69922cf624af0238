package validate

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var v = validator.New(validator.WithRequiredStructEnabled())

// Struct runs the `validate` tags on s.
func Struct(s any) error { return v.Struct(s) }

// Required trims s and reports whether anything is left.
func Required(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, v.Var(s, "required") == nil
}
