package document

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

// Bytes is a binary record: an opaque byte payload stored as a record of its
// own, as opposed to embedded or linked structured documents.
type Bytes []byte

// IsBinary reports whether v is a binary record.
func IsBinary(v any) bool {
	_, ok := v.(Bytes)
	return ok
}

// MarshalJSON encodes the record in its tagged form {"@type":"b","@data":"<base64>"}.
func (b Bytes) MarshalJSON() ([]byte, error) {
	return []byte(`{"@type":"b","@data":"` + base64.StdEncoding.EncodeToString(b) + `"}`), nil
}

// Iterator walks a sequence forward.
type Iterator interface {
	Next() bool
	Value() any
}

// Sequence is a value made of ordered elements.
type Sequence interface {
	Iterator() Iterator
}

// List is the sequence used for list-typed fields.
type List []any

func (l List) Iterator() Iterator {
	return &listIterator{list: l}
}

type listIterator struct {
	list List
	pos  int
}

func (it *listIterator) Next() bool {
	if it.pos >= len(it.list) {
		return false
	}
	it.pos++
	return true
}

func (it *listIterator) Value() any {
	return it.list[it.pos-1]
}

// AsSequence returns v as a Sequence if it is one. Plain []any values are
// accepted as lists.
func AsSequence(v any) (Sequence, bool) {
	switch s := v.(type) {
	case nil:
		return nil, false
	case []any:
		return List(s), true
	case Sequence:
		return s, true
	}
	return nil, false
}

// RID identifies a record by cluster and position. Link fields hold RIDs.
type RID struct {
	Cluster  int64
	Position int64
}

// String formats the id as "#cluster:position".
func (r RID) String() string {
	return "#" + strconv.FormatInt(r.Cluster, 10) + ":" + strconv.FormatInt(r.Position, 10)
}

func (r RID) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// ParseRID parses "#cluster:position"; the leading '#' is optional.
func ParseRID(s string) (RID, error) {
	cluster, position, ok := strings.Cut(strings.TrimPrefix(s, "#"), ":")
	if !ok {
		return RID{}, fmt.Errorf("docexport: invalid record id %q", s)
	}
	c, err := strconv.ParseInt(cluster, 10, 64)
	if err != nil {
		return RID{}, fmt.Errorf("docexport: invalid record id %q: %w", s, err)
	}
	p, err := strconv.ParseInt(position, 10, 64)
	if err != nil {
		return RID{}, fmt.Errorf("docexport: invalid record id %q: %w", s, err)
	}
	return RID{Cluster: c, Position: p}, nil
}
