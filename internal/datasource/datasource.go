// Package datasource resolves configured input sources to byte streams.
package datasource

import (
	"context"
	"fmt"
	"io"

	"github.com/KenilSohaliya/Automotive-Sales-Demand-Analytics-Power-BI/internal/config"
	"github.com/KenilSohaliya/Automotive-Sales-Demand-Analytics-Power-BI/internal/datasource/file"
)

// Source yields the raw bytes of one input dataset.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}

// New returns the Source selected by cfg.Kind.
func New(cfg config.Source) (Source, error) {
	switch cfg.Kind {
	case "file":
		if cfg.File.Path == "" {
			return nil, fmt.Errorf("datasource: file source requires a path")
		}
		return file.NewLocal(cfg.File.Path), nil
	default:
		return nil, fmt.Errorf("datasource: unsupported kind %q", cfg.Kind)
	}
}
