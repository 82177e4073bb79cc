// Package validate wraps go-playground/validator behind one shared instance
// so request DTOs across the services validate through the same rules.
package validate

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Shared validator. Custom registrations belong in an init() so they land
// before the first Struct call.
var v = validator.New()

// Struct runs the validate tags on s and flattens any violations into a
// single readable error.
func Struct(s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	var msgs []string
	for _, fe := range ve {
		msgs = append(msgs, fmt.Sprintf("field '%s' failed '%s'", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}
