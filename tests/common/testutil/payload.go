//go:build unit || e2e

package testutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// Edit changes one top-level key of a JSON payload.
type Edit func(m map[string]any)

// Payload renders v as its JSON object so a test can send a variant of a valid request.
func Payload(t *testing.T, v any, edits ...Edit) map[string]any {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	for _, e := range edits {
		e(m)
	}
	return m
}

func Set(key string, value any) Edit {
	return func(m map[string]any) { m[key] = value }
}

func Drop(key string) Edit {
	return func(m map[string]any) { delete(m, key) }
}
