// Package mrn builds and parses stable locator strings that identify a
// canonical asset independent of its on-disk filename. No other package
// in this module imports it.
package mrn

import (
	"fmt"
	"strings"
)

// Locator is a parsed asset locator: kind/domain/name.
type Locator struct {
	Kind   string
	Domain string
	Name   string
}

// New builds a locator string of the form schemakit://<kind>/<domain>/<name>.
func New(kind, domain, name string) string {
	sanitized := strings.Map(func(r rune) rune {
		if r == '/' || r == ' ' {
			return '-'
		}
		return r
	}, name)

	return fmt.Sprintf("schemakit://%s/%s/%s",
		strings.ToLower(kind),
		strings.ToLower(domain),
		strings.ToLower(sanitized))
}

// Parse decomposes a locator string back into its kind, domain, and name.
func Parse(locator string) (*Locator, error) {
	parts := strings.Split(strings.TrimPrefix(locator, "schemakit://"), "/")
	if len(parts) != 3 {
		return nil, fmt.Errorf("invalid locator: expected schemakit://<kind>/<domain>/<name>, got %s", locator)
	}

	return &Locator{
		Kind:   parts[0],
		Domain: parts[1],
		Name:   parts[2],
	}, nil
}
