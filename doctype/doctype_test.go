package doctype

import (
	"bytes"
	"go/format"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLookupIsTotal(t *testing.T) {
	for _, nt := range NativeTypes() {
		st := Lookup(nt)
		if !st.Valid() {
			t.Errorf("Lookup(%s) = %v, not a known SQL type", nt, st)
		}
		if again := Lookup(nt); again != st {
			t.Errorf("Lookup(%s) not idempotent: %v then %v", nt, st, again)
		}
		if _, ok := sqlTypes[nt]; !ok {
			t.Errorf("no mapping entry for %s", nt)
		}
	}
	if len(sqlTypes) != len(NativeTypes()) {
		t.Errorf("mapping has %d entries, closed set has %d", len(sqlTypes), len(NativeTypes()))
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		native NativeType
		want   SQLType
	}{
		{String, SQLVarChar},
		{Integer, SQLInteger},
		{Float, SQLFloat},
		{Short, SQLSmallInt},
		{Boolean, SQLBoolean},
		{Long, SQLBigInt},
		{Double, SQLDecimal},
		{Date, SQLDate},
		{Datetime, SQLTimestamp},
		{Byte, SQLTinyInt},
		{Binary, SQLBinary},
		{Embedded, SQLObject},
		{EmbeddedList, SQLObject},
		{EmbeddedMap, SQLObject},
		{EmbeddedSet, SQLObject},
		{Link, SQLObject},
		{LinkList, SQLObject},
		{LinkMap, SQLObject},
		{LinkSet, SQLObject},
		{Transient, SQLNull},
	}
	for _, tt := range tests {
		t.Run(tt.native.String(), func(t *testing.T) {
			if got := Lookup(tt.native); got != tt.want {
				t.Errorf("Lookup(%s) = %s, want %s", tt.native, got, tt.want)
			}
		})
	}
	if got := Lookup(NativeType(99)); got != SQLNull {
		t.Errorf("Lookup(out of range) = %s, want NULL", got)
	}
}

func TestIsNumeric(t *testing.T) {
	numeric := map[NativeType]bool{
		Byte: true, Double: true, Float: true, Integer: true, Long: true, Short: true,
	}
	for _, nt := range NativeTypes() {
		if got := IsNumeric(nt); got != numeric[nt] {
			t.Errorf("IsNumeric(%s) = %v, want %v", nt, got, numeric[nt])
		}
	}
	if IsNumeric(NativeType(-1)) {
		t.Error("IsNumeric(invalid) should be false")
	}
}

func TestInferFromValue(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  SQLType
	}{
		{"bool", true, SQLBoolean},
		{"int8", int8(1), SQLTinyInt},
		{"byte", byte(1), SQLTinyInt},
		{"time", time.Now(), SQLTimestamp},
		{"float64", 3.14, SQLDecimal},
		{"float32", float32(3.14), SQLFloat},
		{"int32", int32(7), SQLInteger},
		{"int", 7, SQLInteger},
		{"int64", int64(7), SQLBigInt},
		{"int16", int16(7), SQLSmallInt},
		{"string", "Alice", SQLVarChar},
		{"nil", nil, SQLObject},
		{"uint64", uint64(1), SQLObject},
		{"struct", struct{}{}, SQLObject},
		{"slice", []any{1}, SQLObject},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InferFromValue(tt.value); got != tt.want {
				t.Errorf("InferFromValue(%v) = %s, want %s", tt.value, got, tt.want)
			}
		})
	}
}

func TestParseNativeType(t *testing.T) {
	for _, nt := range NativeTypes() {
		got, err := ParseNativeType(nt.String())
		if err != nil {
			t.Fatalf("ParseNativeType(%q): %v", nt.String(), err)
		}
		if got != nt {
			t.Errorf("ParseNativeType(%q) = %s", nt.String(), got)
		}
	}
	if got, err := ParseNativeType(" embeddedList "); err != nil || got != EmbeddedList {
		t.Errorf("case-insensitive parse failed: %v, %v", got, err)
	}
	if _, err := ParseNativeType("DECIMAL128"); err == nil {
		t.Error("expected error for unknown type name")
	}
}

func TestFromDatabaseTypeName(t *testing.T) {
	tests := []struct {
		name string
		want SQLType
	}{
		{"VARCHAR(255)", SQLVarChar},
		{"text", SQLVarChar},
		{"INT4", SQLInteger},
		{"BIGINT", SQLBigInt},
		{"NUMERIC(10,2)", SQLDecimal},
		{"timestamptz", SQLTimestamp},
		{"BYTEA", SQLVarBinary},
		{"STRING_TYPE", SQLVarChar},
		{"BOOLEAN_TYPE", SQLBoolean},
		{"ARRAY_TYPE", SQLObject},
		{"JSONB", SQLObject},
		{"", SQLNull},
	}
	for _, tt := range tests {
		if got := FromDatabaseTypeName(tt.name); got != tt.want {
			t.Errorf("FromDatabaseTypeName(%q) = %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestSQLTypeString(t *testing.T) {
	if SQLObject.String() != "OBJECT" || SQLObject.Code() != 2000 {
		t.Errorf("unexpected object type: %s %d", SQLObject, SQLObject.Code())
	}
	if SQLType(4242).String() != "SQLType(4242)" {
		t.Errorf("unexpected name for unknown code: %s", SQLType(4242))
	}
	if !SQLDecimal.IsNumeric() || SQLVarChar.IsNumeric() {
		t.Error("IsNumeric misclassified")
	}
}

func TestSourcesAreFormatted(t *testing.T) {
	files, err := filepath.Glob("*.go")
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range files {
		src, err := os.ReadFile(name)
		if err != nil {
			t.Fatal(err)
		}
		formatted, err := format.Source(src)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if !bytes.Equal(src, formatted) {
			t.Errorf("%s is not gofmt-formatted", name)
		}
	}
}
