// Package component derives stable component keys and references, and keeps
// the long-lived registry of named components for a generation run.
package component

import (
	"regexp"
	"strings"

	"github.com/griffnb/core-schema/internal/domain"
)

var (
	keyPattern = regexp.MustCompile(`^[A-Za-z0-9.\-_]+$`)
	// bracket group with no nested brackets inside
	genericGroup = regexp.MustCompile(`<[^<>\[\]]*>|\[[^<>\[\]]*\]`)
)

// CanonicalKey derives the component key of a type.
func CanonicalKey(t domain.TypeDescriptor) (string, error) {
	return CanonicalName(t.String())
}

// CanonicalName derives a component key from a qualified type name.
// Generic bracket groups are stripped innermost first, then the namespace
// qualification is dropped, so "pkg.Outer.Inner<T>" becomes "Inner".
func CanonicalName(name string) (string, error) {
	key := name
	for genericGroup.MatchString(key) {
		key = genericGroup.ReplaceAllString(key, "")
	}
	if i := strings.LastIndexAny(key, "./"); i >= 0 {
		key = key[i+1:]
	}
	key = strings.TrimSpace(key)

	if !ValidKey(key) {
		return "", &KeyViolationError{Type: name, Key: key}
	}
	return key, nil
}

// ValidKey reports whether key matches the key grammar.
func ValidKey(key string) bool {
	return keyPattern.MatchString(key)
}
