// Package test contains helpers shared by the test suites.
package test

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

// TmpFile returns the path to a unique database file to be used in tests.
func TmpFile(t *testing.T) string {
	t.Helper()

	return filepath.Join(t.TempDir(), uuid.New().String())
}
