package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/go-data-exporter/docexport/document"
	"github.com/go-data-exporter/docexport/internal/config"
	"github.com/go-data-exporter/docexport/source"
)

// documentSource is an open cursor plus whatever must be released with it.
type documentSource struct {
	document.Cursor
	closers []io.Closer
}

func (s *documentSource) Close() error {
	errs := []error{s.Cursor.Close()}
	for _, c := range s.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// DatabaseName forwards to the cursor so the metadata sees the schema name.
func (s *documentSource) DatabaseName() string {
	if n, ok := s.Cursor.(interface{ DatabaseName() string }); ok {
		return n.DatabaseName()
	}
	return ""
}

// openSource opens the configured document source. stdin is read for jsonl
// sources without a path.
func openSource(ctx context.Context, cfg config.SourceConfig, stdin io.Reader, logger *zap.Logger) (*documentSource, error) {
	opts := []source.Option{
		source.WithLogger(logger),
		source.WithPageSize(cfg.PageSize),
	}
	if cfg.Database != "" {
		opts = append(opts, source.WithDatabaseName(cfg.Database))
	}

	switch cfg.Kind {
	case config.SourceJSONLines:
		if cfg.Path == "" || cfg.Path == "-" {
			logger.Debug("reading documents from stdin")
			return &documentSource{Cursor: source.NewJSONLines(io.NopCloser(stdin), opts...)}, nil
		}
		f, err := os.Open(cfg.Path)
		if err != nil {
			return nil, err
		}
		if cfg.Database == "" {
			opts = append(opts, source.WithDatabaseName(filepath.Base(cfg.Path)))
		}
		logger.Debug("reading documents from file", zap.String("path", cfg.Path))
		return &documentSource{Cursor: source.NewJSONLines(f, opts...)}, nil

	case config.SourceSQL:
		db, err := sql.Open(cfg.Driver, cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s database: %w", cfg.Driver, err)
		}
		rows, err := db.QueryContext(ctx, cfg.Query)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to query documents: %w", err)
		}
		logger.Debug("reading documents from sql", zap.String("driver", cfg.Driver))
		return &documentSource{Cursor: source.NewSQL(rows, opts...), closers: []io.Closer{db}}, nil

	case config.SourceRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.Addr})
		logger.Debug("reading documents from redis", zap.String("addr", cfg.Addr), zap.String("key", cfg.Key))
		return &documentSource{Cursor: source.NewRedis(ctx, client, cfg.Key, opts...), closers: []io.Closer{client}}, nil
	}
	return nil, fmt.Errorf("unknown source kind %q", cfg.Kind)
}
