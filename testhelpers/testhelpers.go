// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/pocketbase/pocketbase"

	"lvestimate/collections"
	"lvestimate/services"
	"lvestimate/storage"
)

// FixedNow is the clock used by test workspaces.
var FixedNow = time.Date(2025, time.March, 14, 10, 0, 0, 0, time.UTC)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// TestSettings returns the workspace settings used across tests.
func TestSettings() services.Settings {
	return services.Settings{
		AdminPIN:        "1234",
		CompanyFallback: "Low Voltage Contractor",
		TaxRateLabel:    "8.875%",
	}
}

// NewTestWorkspace builds a workspace on top of the app's kv_records
// collection with a fixed clock and a discarding logger.
func NewTestWorkspace(t *testing.T, app *pocketbase.PocketBase) *services.Workspace {
	t.Helper()
	return NewWorkspaceOn(t, storage.NewRecordKV(app))
}

// NewWorkspaceOn builds a workspace over an arbitrary KV.
func NewWorkspaceOn(t *testing.T, kv storage.KV) *services.Workspace {
	t.Helper()

	ws := services.NewWorkspace(kv, DiscardLogger(), TestSettings())
	ws.Now = func() time.Time { return FixedNow }
	return ws
}

// DiscardLogger returns a logger that drops every record.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// AssertContains checks that body contains all specified fragments.
func AssertContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected body to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
