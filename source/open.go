package source

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
)

// Drivers accepted by Open.
const (
	DriverMock   = "mock"
	DriverFile   = "file"
	DriverDir    = "dir"
	DriverSQLite = "sqlite"
	DriverBlob   = "blob"
)

// Config selects and configures a data source.
type Config struct {
	Driver  string        // mock (default), file, dir, sqlite, blob
	Path    string        // catalog file, content directory or database path
	Pattern string        // dir: work item glob
	Delay   time.Duration // mock: overrides both artificial delays when > 0

	BlobURL   string
	BlobStore string
	BlobToken string

	Logger zerolog.Logger
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open builds the source set for cfg. The returned Closer releases any
// resources held by the driver and must be called once the set is no longer
// used.
func Open(cfg Config) (Set, io.Closer, error) {
	switch cfg.Driver {
	case "", DriverMock:
		m := NewMock()
		if cfg.Delay > 0 {
			m.WorkDelay, m.ProfileDelay = cfg.Delay, cfg.Delay
		}
		return m.Set(), nopCloser{}, nil
	case DriverFile:
		if cfg.Path == "" {
			return Set{}, nil, fmt.Errorf("source: driver %q needs a path", cfg.Driver)
		}
		return NewFile(cfg.Path).Set(), nopCloser{}, nil
	case DriverDir:
		if cfg.Path == "" {
			return Set{}, nil, fmt.Errorf("source: driver %q needs a path", cfg.Driver)
		}
		return NewDir(cfg.Path, cfg.Pattern).Set(), nopCloser{}, nil
	case DriverSQLite:
		if cfg.Path == "" {
			cfg.Path = "data/folio.db"
		}
		s, err := NewStore(cfg.Path)
		if err != nil {
			return Set{}, nil, fmt.Errorf("source: open sqlite: %w", err)
		}
		return s.Set(), s, nil
	case DriverBlob:
		if cfg.BlobURL == "" {
			return Set{}, nil, fmt.Errorf("source: driver %q needs a blob url", cfg.Driver)
		}
		if cfg.BlobToken == "" {
			return Set{}, nil, fmt.Errorf("source: driver %q needs a blob access token", cfg.Driver)
		}
		b := NewBlob(cfg.BlobURL, cfg.BlobStore, cfg.BlobToken)
		b.Logger = cfg.Logger
		return b.Set(), nopCloser{}, nil
	}
	return Set{}, nil, fmt.Errorf("source: unknown driver %q", cfg.Driver)
}
