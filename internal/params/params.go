// Package params classifies positional request parameters into query-string
// and JSON-body fields.
package params

import (
	"regexp"
	"strings"

	"github.com/clearpass-tools/cpapi/internal/apperror"
)

// Parameters are written name=value (body) or name==value (query). (?s) lets
// the value carry embedded newlines; it may also be empty.
var paramPattern = regexp.MustCompile(`(?s)^(\w+)(==|=)(.*)$`)

// Classify partitions raw tokens into query-string and body parameter maps.
// The last occurrence of a duplicate name wins. Malformed tokens are
// collected across the whole scan and reported together in one configuration
// error rather than failing on the first.
func Classify(tokens []string) (query, body map[string]string, err error) {
	query = make(map[string]string)
	body = make(map[string]string)
	var bad []string
	for _, tok := range tokens {
		m := paramPattern.FindStringSubmatch(tok)
		switch {
		case m == nil:
			bad = append(bad, tok)
		case m[2] == "==":
			query[m[1]] = m[3]
		default:
			body[m[1]] = m[3]
		}
	}
	if len(bad) > 0 {
		return nil, nil, apperror.ConfigErrorf("Invalid parameter(s): %s", strings.Join(bad, ", "))
	}
	return query, body, nil
}
