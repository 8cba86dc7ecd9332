// Package codec defines the writers that serialize scanned rows.
package codec

import (
	"fmt"
	"io"
	"strings"

	csvcodec "github.com/go-data-exporter/docexport/codec/csv"
	htmlcodec "github.com/go-data-exporter/docexport/codec/html"
	jsoncodec "github.com/go-data-exporter/docexport/codec/json"
	xmlcodec "github.com/go-data-exporter/docexport/codec/xml"
	"github.com/go-data-exporter/docexport/scanner"
)

type Codec interface {
	Write(rows scanner.Rows, writer io.Writer) error
}

func JSON(opts ...jsoncodec.Option) Codec {
	return jsoncodec.New(opts...)
}

// JSONLines is JSON with one object per line.
func JSONLines(opts ...jsoncodec.Option) Codec {
	return jsoncodec.New(append([]jsoncodec.Option{jsoncodec.WithNewlineDelimited(true)}, opts...)...)
}

func CSV(opts ...csvcodec.Option) Codec {
	return csvcodec.New(opts...)
}

func HTML(opts ...htmlcodec.Option) Codec {
	return htmlcodec.New(opts...)
}

func XML(opts ...xmlcodec.Option) Codec {
	return xmlcodec.New(opts...)
}

// Formats lists the names accepted by ByName.
var Formats = []string{"csv", "json", "jsonl", "html", "xml"}

// Settings are the format-independent options ByName applies.
type Settings struct {
	// Limit caps the number of rows written; negative means unlimited.
	// The HTML codec has no limit.
	Limit     int
	NullValue string
	Delimiter rune
}

// ByName returns the codec for a format name.
func ByName(format string, s Settings) (Codec, error) {
	switch strings.ToLower(format) {
	case "csv":
		opts := []csvcodec.Option{csvcodec.WithLimit(s.Limit), csvcodec.WithCustomNULL(s.NullValue)}
		if s.Delimiter != 0 {
			opts = append(opts, csvcodec.WithCustomDelimiter(s.Delimiter))
		}
		return CSV(opts...), nil
	case "json":
		return JSON(jsoncodec.WithLimit(s.Limit)), nil
	case "jsonl", "ndjson":
		return JSONLines(jsoncodec.WithLimit(s.Limit)), nil
	case "html":
		if s.NullValue != "" {
			return HTML(htmlcodec.WithCustomNULL(s.NullValue)), nil
		}
		return HTML(), nil
	case "xml":
		return XML(xmlcodec.WithLimit(s.Limit), xmlcodec.WithTypeAttributes(true)), nil
	}
	return nil, fmt.Errorf("docexport: unknown format %q (want one of %s)", format, strings.Join(Formats, ", "))
}
