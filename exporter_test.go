package exporter

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/go-data-exporter/docexport/codec"
	"github.com/go-data-exporter/docexport/doctype"
	"github.com/go-data-exporter/docexport/document"
	"github.com/go-data-exporter/docexport/scanner"
	"github.com/go-data-exporter/docexport/source"
)

func people() scanner.Rows {
	return scanner.FromDocuments(source.NewSlice(
		document.New("Person").Set("name", "Alice").SetTyped("age", doctype.Integer, int32(30)),
		document.New("Person").Set("name", "Bob"),
	))
}

func TestWrite(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	var buf bytes.Buffer
	err := New(people(), codec.CSV(), WithLogger(zap.New(core))).Write(&buf)
	require.NoError(t, err)
	assert.Equal(t, "name,age\nAlice,30\nBob,\n", buf.String())

	entries := logs.FilterMessage("export finished").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "document", entries[0].ContextMap()["driver"])
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "people.jsonl")
	require.NoError(t, New(people(), codec.JSONLines()).WriteFile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\"name\":\"Alice\",\"age\":30}\n{\"name\":\"Bob\",\"age\":null}\n", string(data))
}

func TestWriteFileBadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.csv")
	assert.Error(t, New(people(), codec.CSV()).WriteFile(path))
}

type failingCodec struct{}

func (failingCodec) Write(scanner.Rows, io.Writer) error {
	return errors.New("codec failed")
}

func TestWriteError(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	err := New(people(), failingCodec{}, WithLogger(zap.New(core))).Write(io.Discard)
	assert.EqualError(t, err, "codec failed")
	assert.Equal(t, 1, logs.FilterMessage("export failed").Len())
}
