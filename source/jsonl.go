package source

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/go-data-exporter/docexport/document"
)

const maxLineSize = 16 << 20

// JSONLines is a cursor over a stream holding one JSON document per line.
// Blank lines are skipped.
type JSONLines struct {
	r       io.Reader
	scanner *bufio.Scanner
	opts    options
	line    int
	current *document.Doc
	err     error
}

var _ document.Cursor = (*JSONLines)(nil)

// NewJSONLines reads documents from r.
func NewJSONLines(r io.Reader, opts ...Option) *JSONLines {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	return &JSONLines{r: r, scanner: scanner, opts: newOptions(opts)}
}

// Next decodes the next document. A line that fails to decode ends the
// iteration; Err reports it with its line number.
func (j *JSONLines) Next() bool {
	j.current = nil
	if j.err != nil {
		return false
	}
	for j.scanner.Scan() {
		j.line++
		line := bytes.TrimSpace(j.scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		doc, err := document.Decode(line)
		if err != nil {
			j.err = fmt.Errorf("line %d: %w", j.line, err)
			return false
		}
		j.current = doc
		return true
	}
	j.err = j.scanner.Err()
	return false
}

func (j *JSONLines) Current() document.Document {
	if j.current == nil {
		return nil
	}
	return j.current
}

func (j *JSONLines) Err() error {
	return j.err
}

// DatabaseName returns the name set with WithDatabaseName.
func (j *JSONLines) DatabaseName() string {
	return j.opts.databaseName
}

// Close closes the underlying reader if it is an io.Closer.
func (j *JSONLines) Close() error {
	if c, ok := j.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
