// Package patch reads optional fields of partial-update requests.
package patch

import "strings"

// Coalesce returns *ptr, or fallback when the field was omitted.
func Coalesce[T any](ptr *T, fallback T) T {
	if ptr != nil {
		return *ptr
	}
	return fallback
}

// Trimmed strips surrounding spaces. A blank value counts as omitted.
func Trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

// Map converts a present field with f and leaves an omitted one nil.
func Map[T, U any](ptr *T, f func(T) (U, error)) (*U, error) {
	if ptr == nil {
		return nil, nil
	}
	v, err := f(*ptr)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
