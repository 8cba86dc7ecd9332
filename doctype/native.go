// Package doctype holds the two type vocabularies docexport translates between:
// the native field types of a document store and the tabular SQL type codes
// metadata consumers expect.
package doctype

import (
	"fmt"
	"strings"
)

// NativeType is the declared type of a document field.
type NativeType int

const (
	Boolean NativeType = iota
	Integer
	Short
	Long
	Float
	Double
	Datetime
	String
	Binary
	Embedded
	EmbeddedList
	EmbeddedSet
	EmbeddedMap
	Link
	LinkList
	LinkSet
	LinkMap
	Byte
	Transient
	Date
)

var nativeNames = [...]string{
	Boolean:      "BOOLEAN",
	Integer:      "INTEGER",
	Short:        "SHORT",
	Long:         "LONG",
	Float:        "FLOAT",
	Double:       "DOUBLE",
	Datetime:     "DATETIME",
	String:       "STRING",
	Binary:       "BINARY",
	Embedded:     "EMBEDDED",
	EmbeddedList: "EMBEDDEDLIST",
	EmbeddedSet:  "EMBEDDEDSET",
	EmbeddedMap:  "EMBEDDEDMAP",
	Link:         "LINK",
	LinkList:     "LINKLIST",
	LinkSet:      "LINKSET",
	LinkMap:      "LINKMAP",
	Byte:         "BYTE",
	Transient:    "TRANSIENT",
	Date:         "DATE",
}

// NativeTypes returns every member of the closed NativeType set in declaration order.
func NativeTypes() []NativeType {
	types := make([]NativeType, len(nativeNames))
	for i := range nativeNames {
		types[i] = NativeType(i)
	}
	return types
}

// Valid reports whether t belongs to the closed set.
func (t NativeType) Valid() bool {
	return t >= 0 && int(t) < len(nativeNames)
}

// String returns the upper-case type name, e.g. "EMBEDDEDLIST".
func (t NativeType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("NativeType(%d)", int(t))
	}
	return nativeNames[t]
}

// ParseNativeType parses a type name case-insensitively.
func ParseNativeType(name string) (NativeType, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for i, n := range nativeNames {
		if n == name {
			return NativeType(i), nil
		}
	}
	return 0, fmt.Errorf("docexport: unknown native type %q", name)
}
