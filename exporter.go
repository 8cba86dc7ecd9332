// Package exporter writes the rows of a scanner through a codec.
package exporter

import (
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/go-data-exporter/docexport/codec"
	"github.com/go-data-exporter/docexport/scanner"
)

type Exporter struct {
	rows   scanner.Rows
	codec  codec.Codec
	logger *zap.Logger
}

type Option func(*Exporter)

// WithLogger sets the logger used to report each export.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Exporter) {
		if logger != nil {
			e.logger = logger
		}
	}
}

func New(rows scanner.Rows, codec codec.Codec, opts ...Option) *Exporter {
	e := &Exporter{
		rows:   rows,
		codec:  codec,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Exporter) Write(writer io.Writer) error {
	start := time.Now()
	err := e.codec.Write(e.rows, writer)
	if err != nil {
		e.logger.Error("export failed", zap.String("driver", e.rows.Driver()), zap.Error(err))
		return err
	}
	e.logger.Debug("export finished",
		zap.String("driver", e.rows.Driver()),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

func (e *Exporter) WriteFile(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := e.Write(f); err != nil {
		return err
	}
	return f.Close()
}
