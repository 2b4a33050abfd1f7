package api

import (
	"strings"

	"github.com/clearpass-tools/cpapi/internal/apperror"
)

var allowedMethods = map[string]bool{
	"GET":    true,
	"POST":   true,
	"PATCH":  true,
	"PUT":    true,
	"DELETE": true,
}

// ValidateMethod canonicalizes an HTTP method token to upper case. Only the
// methods the ClearPass API serves are accepted.
func ValidateMethod(method string) (string, error) {
	m := strings.ToUpper(method)
	if !allowedMethods[m] {
		return "", apperror.ConfigErrorf("Invalid HTTP method: %s", method)
	}
	return m, nil
}
