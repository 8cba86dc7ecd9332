package tostring

import (
	"testing"
	"time"

	"github.com/go-data-exporter/docexport/doctype"
	"github.com/go-data-exporter/docexport/document"
)

type stringer struct{}

func (stringer) String() string { return "stringer" }

func TestToString(t *testing.T) {
	when := time.Date(2024, 2, 29, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name   string
		value  any
		want   string
		isNULL bool
	}{
		{"nil", nil, "", true},
		{"string", "abc", "abc", false},
		{"bytes", []byte("abc"), "abc", false},
		{"binary record", document.Bytes{1, 2, 3}, "AQID", false},
		{"rid", document.RID{Cluster: 3, Position: 7}, "#3:7", false},
		{"bool", true, "true", false},
		{"int8", int8(-3), "-3", false},
		{"int32", int32(30), "30", false},
		{"uint8", uint8(200), "200", false},
		{"float32", float32(1.5), "1.5", false},
		{"float64", 3.25, "3.25", false},
		{"time", when, "2024-02-29T12:00:00Z", false},
		{"zero time", time.Time{}, "", true},
		{"list", document.List{"a", int32(1)}, `["a",1]`, false},
		{"empty list", document.List{}, "", true},
		{"embedded doc", document.New("").Set("city", "Paris"), `{"city":"Paris"}`, false},
		{"typed embedded doc", document.New("").SetTyped("n", doctype.Short, int16(1)), `{"n":1,"@fieldTypes":{"n":"SHORT"}}`, false},
		{"empty doc", document.New(""), "", true},
		{"stringer", stringer{}, "stringer", false},
		{"map", map[string]any{"k": 1}, `{"k":1}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToString(tt.value)
			if got.IsNULL != tt.isNULL {
				t.Errorf("IsNULL = %v, want %v", got.IsNULL, tt.isNULL)
			}
			if got.String != tt.want {
				t.Errorf("String = %q, want %q", got.String, tt.want)
			}
		})
	}
}
