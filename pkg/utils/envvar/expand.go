// Package envvar expands environment variable placeholders in configuration values.
package envvar

import (
	"os"
	"regexp"
)

// pattern matches ${NAME} and ${NAME:-default}.
// Groups: 1 = variable name, 2 = ":-" marker, 3 = default value.
var pattern = regexp.MustCompile(`\$\{([a-zA-Z_][a-zA-Z0-9_]*)(:-([^}]*))?\}`)

// LookupFunc resolves one variable. It has the signature of os.LookupEnv.
type LookupFunc func(name string) (string, bool)

// Expand replaces placeholders in value using the process environment.
// It returns the expanded value and the names of referenced variables that were
// unset and had no default, in order of appearance.
func Expand(value string) (string, []string) {
	return ExpandWith(value, os.LookupEnv)
}

// ExpandWith is Expand with a custom variable lookup.
// An unset variable without default expands to the empty string.
// ${NAME:-} is an explicit empty default and is not reported as missing.
func ExpandWith(value string, lookup LookupFunc) (string, []string) {
	if value == "" {
		return value, nil
	}

	var missing []string

	expanded := pattern.ReplaceAllStringFunc(value, func(match string) string {
		groups := pattern.FindStringSubmatch(match)
		name := groups[1]

		if resolved, ok := lookup(name); ok {
			return resolved
		}

		if groups[2] != "" {
			return groups[3]
		}

		missing = append(missing, name)

		return ""
	})

	return expanded, missing
}
