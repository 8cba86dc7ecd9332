package document

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/go-data-exporter/docexport/doctype"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Header keys of the JSON form. Other keys starting with '@' are ignored on decode.
const (
	keyClass      = "@class"
	keyRID        = "@rid"
	keyType       = "@type"
	keyData       = "@data"
	keyFieldTypes = "@fieldTypes"

	binaryRecordType = "b"
)

var timeLayouts = []string{time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02"}

// Decode parses a JSON object into a document, keeping the field order of the
// input.
//
// "@class" and "@rid" set the class and record id. "@fieldTypes" is an object
// mapping field names to native type names; values of declared fields are
// converted to the Go type that represents the declared type. Nested objects
// of the form {"@type":"b","@data":"<base64>"} decode to Bytes, other nested
// objects to embedded *Doc values and arrays to List. Numbers without a
// fraction or exponent decode to int32, or int64 when they do not fit;
// everything else to float64.
func Decode(data []byte) (*Doc, error) {
	iter := json.BorrowIterator(data)
	defer json.ReturnIterator(iter)

	if next := iter.WhatIsNext(); next != jsoniter.ObjectValue {
		return nil, errors.New("docexport: document JSON must be an object")
	}
	v, err := readObject(iter)
	if err != nil {
		return nil, err
	}
	if iter.Error != nil && iter.Error != io.EOF {
		return nil, fmt.Errorf("docexport: decode document: %w", iter.Error)
	}
	// Only whitespace may follow the object; reaching the end sets io.EOF.
	iter.WhatIsNext()
	if iter.Error == nil {
		return nil, errors.New("docexport: trailing data after document")
	}
	doc, ok := v.(*Doc)
	if !ok {
		return nil, errors.New("docexport: top-level binary record is not a document")
	}
	return doc, nil
}

func readValue(iter *jsoniter.Iterator) (any, error) {
	switch iter.WhatIsNext() {
	case jsoniter.StringValue:
		return iter.ReadString(), nil
	case jsoniter.NumberValue:
		return narrowNumber(string(iter.ReadNumber()))
	case jsoniter.BoolValue:
		return iter.ReadBool(), nil
	case jsoniter.NilValue:
		iter.ReadNil()
		return nil, nil
	case jsoniter.ArrayValue:
		list := List{}
		var err error
		iter.ReadArrayCB(func(iter *jsoniter.Iterator) bool {
			var v any
			if v, err = readValue(iter); err != nil {
				return false
			}
			list = append(list, v)
			return true
		})
		return list, err
	case jsoniter.ObjectValue:
		return readObject(iter)
	}
	iter.ReportError("readValue", "unexpected JSON value")
	return nil, fmt.Errorf("docexport: decode document: %w", iter.Error)
}

func readObject(iter *jsoniter.Iterator) (any, error) {
	doc := New("")
	var (
		recordType, data string
		fieldTypes       map[string]string
		err              error
	)
	iter.ReadObjectCB(func(iter *jsoniter.Iterator, field string) bool {
		switch field {
		case keyClass:
			doc.class = iter.ReadString()
		case keyRID:
			var rid RID
			if rid, err = ParseRID(iter.ReadString()); err != nil {
				return false
			}
			doc.SetRID(rid)
		case keyType:
			recordType = iter.ReadString()
		case keyData:
			data = iter.ReadString()
		case keyFieldTypes:
			fieldTypes = make(map[string]string)
			iter.ReadMapCB(func(iter *jsoniter.Iterator, name string) bool {
				fieldTypes[name] = iter.ReadString()
				return true
			})
		default:
			if strings.HasPrefix(field, "@") {
				iter.Skip()
				return true
			}
			var v any
			if v, err = readValue(iter); err != nil {
				return false
			}
			doc.Set(field, v)
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	if iter.Error != nil && iter.Error != io.EOF {
		return nil, fmt.Errorf("docexport: decode document: %w", iter.Error)
	}

	if recordType == binaryRecordType {
		payload, err := base64.StdEncoding.DecodeString(data)
		if err != nil {
			return nil, fmt.Errorf("docexport: binary record: %w", err)
		}
		return Bytes(payload), nil
	}

	for _, name := range doc.names {
		typeName, ok := fieldTypes[name]
		if !ok {
			continue
		}
		t, err := doctype.ParseNativeType(typeName)
		if err != nil {
			return nil, fmt.Errorf("docexport: field %q: %w", name, err)
		}
		v, err := coerce(t, doc.values[name])
		if err != nil {
			return nil, fmt.Errorf("docexport: field %q: %w", name, err)
		}
		doc.values[name] = v
		doc.types[name] = t
	}
	return doc, nil
}

func narrowNumber(s string) (any, error) {
	if !strings.ContainsAny(s, ".eE") {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			if n >= math.MinInt32 && n <= math.MaxInt32 {
				return int32(n), nil
			}
			return n, nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("docexport: invalid number %q: %w", s, err)
	}
	return f, nil
}

// coerce converts a decoded JSON value to the representation of t. Values
// that are already in that form, and nil, pass through unchanged.
func coerce(t doctype.NativeType, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	switch t {
	case doctype.Byte:
		n, err := toInt(v, math.MinInt8, math.MaxInt8)
		return int8(n), err
	case doctype.Short:
		n, err := toInt(v, math.MinInt16, math.MaxInt16)
		return int16(n), err
	case doctype.Integer:
		n, err := toInt(v, math.MinInt32, math.MaxInt32)
		return int32(n), err
	case doctype.Long:
		return toInt(v, math.MinInt64, math.MaxInt64)
	case doctype.Float:
		f, err := toFloat(v)
		if err != nil {
			return nil, err
		}
		if math.Abs(f) > math.MaxFloat32 {
			return nil, fmt.Errorf("%v out of float32 range", f)
		}
		return float32(f), nil
	case doctype.Double:
		return toFloat(v)
	case doctype.Date, doctype.Datetime:
		return toTime(v)
	case doctype.Binary:
		if s, ok := v.(string); ok {
			payload, err := base64.StdEncoding.DecodeString(s)
			if err != nil {
				return nil, err
			}
			return Bytes(payload), nil
		}
	case doctype.Link:
		if s, ok := v.(string); ok {
			return ParseRID(s)
		}
	case doctype.LinkList, doctype.LinkSet:
		if list, ok := v.(List); ok {
			out := make(List, len(list))
			for i, e := range list {
				s, ok := e.(string)
				if !ok {
					out[i] = e
					continue
				}
				rid, err := ParseRID(s)
				if err != nil {
					return nil, err
				}
				out[i] = rid
			}
			return out, nil
		}
	case doctype.EmbeddedMap:
		if d, ok := v.(*Doc); ok {
			return d.Map(), nil
		}
	}
	return v, nil
}

func toInt(v any, lo, hi int64) (int64, error) {
	var n int64
	switch v := v.(type) {
	case int8:
		n = int64(v)
	case int16:
		n = int64(v)
	case int32:
		n = int64(v)
	case int64:
		n = v
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("%v is not an integer", v)
		}
		if v < math.MinInt64 || v >= math.MaxInt64 {
			return 0, fmt.Errorf("%v out of range [%d, %d]", v, lo, hi)
		}
		n = int64(v)
	case string:
		var err error
		if n, err = strconv.ParseInt(v, 10, 64); err != nil {
			return 0, err
		}
	default:
		return 0, fmt.Errorf("cannot convert %T to an integer", v)
	}
	if n < lo || n > hi {
		return 0, fmt.Errorf("%d out of range [%d, %d]", n, lo, hi)
	}
	return n, nil
}

func toFloat(v any) (float64, error) {
	switch v := v.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		return strconv.ParseFloat(v, 64)
	}
	return 0, fmt.Errorf("cannot convert %T to a float", v)
}

// toTime accepts RFC 3339, "2006-01-02 15:04:05" and "2006-01-02" strings, or
// epoch milliseconds.
func toTime(v any) (time.Time, error) {
	switch v := v.(type) {
	case time.Time:
		return v, nil
	case int32:
		return time.UnixMilli(int64(v)).UTC(), nil
	case int64:
		return time.UnixMilli(v).UTC(), nil
	case string:
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, v); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("cannot parse %q as a date", v)
	}
	return time.Time{}, fmt.Errorf("cannot convert %T to a date", v)
}

// MarshalJSON encodes the document in the form Decode reads.
func (d *Doc) MarshalJSON() ([]byte, error) {
	stream := json.BorrowStream(nil)
	defer json.ReturnStream(stream)

	more := false
	field := func(name string) {
		if more {
			stream.WriteMore()
		}
		stream.WriteObjectField(name)
		more = true
	}

	stream.WriteObjectStart()
	if d.class != "" {
		field(keyClass)
		stream.WriteString(d.class)
	}
	if d.rid != nil {
		field(keyRID)
		stream.WriteString(d.rid.String())
	}
	for _, name := range d.names {
		field(name)
		stream.WriteVal(d.values[name])
	}
	if len(d.types) > 0 {
		field(keyFieldTypes)
		stream.WriteObjectStart()
		first := true
		for _, name := range d.names {
			t, ok := d.types[name]
			if !ok {
				continue
			}
			if !first {
				stream.WriteMore()
			}
			stream.WriteObjectField(name)
			stream.WriteString(t.String())
			first = false
		}
		stream.WriteObjectEnd()
	}
	stream.WriteObjectEnd()
	if stream.Error != nil {
		return nil, stream.Error
	}
	return slices.Clone(stream.Buffer()), nil
}
