// Package tostring converts exported values to strings and tells the codecs
// which values should be written as NULL.
package tostring

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/go-data-exporter/docexport/document"
)

var jsonStd = jsoniter.ConfigCompatibleWithStandardLibrary

// String is a string value along with whether it stands for NULL.
type String struct {
	String string
	IsNULL bool
}

var null = String{IsNULL: true}

func value(s string) String {
	return String{String: s}
}

// ToString converts v to a String.
//
// Primitive types, time.Time and document values are formatted directly:
// binary records as standard base64 and record ids as "#cluster:position".
// Embedded documents, lists and other composite values are rendered as JSON.
// nil, the zero time and composite values that render as null, [] or {} are
// NULL.
func ToString(v any) String {
	switch v := v.(type) {
	case nil:
		return null
	case string:
		return value(v)
	case []byte:
		return value(string(v))
	case document.Bytes:
		return value(base64.StdEncoding.EncodeToString(v))
	case document.RID:
		return value(v.String())
	case bool:
		return value(strconv.FormatBool(v))
	case int:
		return value(strconv.Itoa(v))
	case int8:
		return value(strconv.FormatInt(int64(v), 10))
	case int16:
		return value(strconv.FormatInt(int64(v), 10))
	case int32:
		return value(strconv.FormatInt(int64(v), 10))
	case int64:
		return value(strconv.FormatInt(v, 10))
	case uint:
		return value(strconv.FormatUint(uint64(v), 10))
	case uint8:
		return value(strconv.FormatUint(uint64(v), 10))
	case uint16:
		return value(strconv.FormatUint(uint64(v), 10))
	case uint32:
		return value(strconv.FormatUint(uint64(v), 10))
	case uint64:
		return value(strconv.FormatUint(v, 10))
	case time.Time:
		if v.IsZero() {
			return null
		}
		return value(v.Format(time.RFC3339Nano))
	case float32:
		return value(strconv.FormatFloat(float64(v), 'f', -1, 32))
	case float64:
		return value(strconv.FormatFloat(v, 'f', -1, 64))
	}
	if m, ok := v.(json.Marshaler); ok {
		if data, err := m.MarshalJSON(); err == nil {
			return fromJSON(data)
		}
	}
	if s, ok := v.(fmt.Stringer); ok {
		return value(s.String())
	}
	if data, err := jsonStd.Marshal(v); err == nil {
		return fromJSON(data)
	}
	return value(fmt.Sprintf("%v", v))
}

func fromJSON(data []byte) String {
	s := strings.Trim(string(data), `"`)
	if s == "[]" || s == "{}" || s == "null" {
		return null
	}
	return value(s)
}
