// Package testutil provides test helper functions for unit and integration tests.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/charter-booking/charter-booking-service/internal/adapter/http/middleware"
	"github.com/charter-booking/charter-booking-service/internal/domain"
)

// ProjectRoot returns the repository root directory.
func ProjectRoot(t *testing.T) string {
	t.Helper()

	_, currentFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}

	// testutil is in test/testutil
	return filepath.Join(filepath.Dir(currentFile), "..", "..")
}

// LoadCatalogJSON loads a file from the embedded catalog data directory.
func LoadCatalogJSON(t *testing.T, filename string) []byte {
	t.Helper()

	path := filepath.Join(ProjectRoot(t), "internal", "adapter", "catalog", "data", filename)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to load catalog file %s: %v", filename, err)
	}
	return data
}

// IssueToken signs an access token for userID with secret, valid for one hour.
func IssueToken(t *testing.T, secret, userID, email string) string {
	t.Helper()
	token, err := middleware.NewTokenVerifier(secret).Issue(domain.Identity{UserID: userID, Email: email}, time.Hour)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}
	return token
}

// BearerHeader returns an Authorization header map for token.
func BearerHeader(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// Ptr returns a pointer to the given value.
// Useful for creating pointers to literals in tests.
func Ptr[T any](v T) *T {
	return &v
}
