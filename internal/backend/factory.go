package backend

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/msmraqeeb/Euro-IT-Accounts/internal/store/memory"
	"github.com/msmraqeeb/Euro-IT-Accounts/internal/store/remote"
	"github.com/msmraqeeb/Euro-IT-Accounts/internal/store/sqlite"
)

// Factory creates backends from configuration.
type Factory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) *Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{logger: logger}
}

// Create builds the backend the configuration selects. A remote backend is
// probed before it is returned: a present-but-unreachable remote
// configuration is an error, never a silent fallback.
func (f *Factory) Create(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch resolved := cfg.Resolve(); resolved {
	case RemoteBackend:
		return f.createRemote(ctx, cfg)
	case LocalBackend:
		return f.createLocal(cfg)
	case MemoryBackend:
		f.logger.Info("initialized memory backend")
		return &Result{Backend: memory.New(), Type: MemoryBackend}, nil
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", resolved)
	}
}

func (f *Factory) createRemote(ctx context.Context, cfg Config) (*Result, error) {
	cli, err := remote.New(cfg.RemoteURL, cfg.RemoteAccessKey)
	if err != nil {
		return nil, fmt.Errorf("initialize remote store: %w", err)
	}
	if err := cli.Ping(ctx); err != nil {
		return nil, fmt.Errorf("remote store probe failed: %w", err)
	}
	f.logger.Info("initialized remote backend", "url", cfg.RemoteURL)
	return &Result{Backend: cli, Type: RemoteBackend}, nil
}

func (f *Factory) createLocal(cfg Config) (*Result, error) {
	st, err := sqlite.Open(cfg.SQLitePath)
	if err != nil {
		return nil, fmt.Errorf("initialize local store: %w", err)
	}
	f.logger.Info("initialized local backend", "db_path", cfg.SQLitePath)
	return &Result{Backend: st, Type: LocalBackend, Cleanup: st.Close}, nil
}
