// Package backend assembles a concrete persistence adapter from
// configuration. Exactly one backend serves a process: callers receive a
// constructed instance and pass it by reference, there is no hidden global
// lookup.
package backend

import (
	"fmt"
	"strings"

	"github.com/msmraqeeb/Euro-IT-Accounts/internal/store"
)

const (
	// AutoBackend picks remote when both the store URL and access key are
	// configured, local otherwise. The fallback to local is silent: missing
	// remote configuration is a mode, not an error.
	AutoBackend Type = "auto"
	// RemoteBackend is the key-authenticated REST data service.
	RemoteBackend Type = "remote"
	// LocalBackend is the on-disk SQLite database.
	LocalBackend Type = "local"
	// MemoryBackend keeps everything in process memory. Tests and dry runs.
	MemoryBackend Type = "memory"
)

type (
	Type string

	// Backend is the full persistence capability surface the coordinator
	// works against.
	Backend interface {
		store.Loader
		store.ClientStore
		store.PaymentStore
		store.ExpenseStore
		store.Bulk
		store.Pinger
	}

	// CleanupFunc releases backend resources at shutdown.
	CleanupFunc func() error

	// Result is a constructed backend plus the type that was actually
	// selected (so callers can log what auto resolved to).
	Result struct {
		Backend Backend
		Type    Type
		Cleanup CleanupFunc
	}

	// Config holds everything backend selection needs.
	Config struct {
		Type Type

		// Remote data service.
		RemoteURL       string
		RemoteAccessKey string

		// Local SQLite database.
		SQLitePath string
	}
)

func (t Type) String() string { return string(t) }

// IsValid reports whether t is a known backend type.
func (t Type) IsValid() bool {
	switch t {
	case AutoBackend, RemoteBackend, LocalBackend, MemoryBackend:
		return true
	default:
		return false
	}
}

// hasRemoteConfig reports whether both remote values are present.
func (c Config) hasRemoteConfig() bool {
	return strings.TrimSpace(c.RemoteURL) != "" && strings.TrimSpace(c.RemoteAccessKey) != ""
}

// Resolve turns AutoBackend into the concrete selection by configuration
// presence.
func (c Config) Resolve() Type {
	if c.Type != AutoBackend && c.Type != "" {
		return c.Type
	}
	if c.hasRemoteConfig() {
		return RemoteBackend
	}
	return LocalBackend
}

// Validate checks that the resolved backend has what it needs.
func (c Config) Validate() error {
	if c.Type != "" && !c.Type.IsValid() {
		return fmt.Errorf("invalid backend type: %s", c.Type)
	}
	switch c.Resolve() {
	case RemoteBackend:
		if !c.hasRemoteConfig() {
			return fmt.Errorf("remote backend requires both store URL and access key")
		}
	case LocalBackend:
		if strings.TrimSpace(c.SQLitePath) == "" {
			return fmt.Errorf("local backend requires a database path")
		}
	}
	return nil
}
