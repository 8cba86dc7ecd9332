package scanner

import (
	"reflect"

	"github.com/go-data-exporter/docexport/doctype"
)

// Column describes one column of a result set. It follows the shape of
// *sql.ColumnType and adds the resolved SQL type code.
type Column interface {
	Name() string
	Length() (length int64, ok bool)
	DecimalSize() (precision, scale int64, ok bool)
	ScanType() reflect.Type
	Nullable() (nullable, ok bool)
	DatabaseTypeName() string
	SQLType() doctype.SQLType
}

// valueColumn is a column whose type was inferred from a sample value.
type valueColumn struct {
	index    int
	name     string
	goType   reflect.Type
	typeName string
	sqlType  doctype.SQLType
}

func newValueColumn(index int, name string, sample any) *valueColumn {
	c := &valueColumn{
		index:    index,
		name:     name,
		typeName: "nil",
		sqlType:  doctype.SQLNull,
	}
	if sample != nil {
		c.goType = reflect.TypeOf(sample)
		c.typeName = c.goType.String()
		c.sqlType = doctype.InferFromValue(sample)
	}
	return c
}

// Index returns the column's 0-based position.
func (c *valueColumn) Index() int {
	return c.index
}

func (c *valueColumn) Name() string {
	return c.name
}

func (c *valueColumn) Length() (length int64, ok bool) {
	return 0, false
}

func (c *valueColumn) DecimalSize() (precision, scale int64, ok bool) {
	return 0, 0, false
}

func (c *valueColumn) ScanType() reflect.Type {
	return c.goType
}

func (c *valueColumn) Nullable() (nullable, ok bool) {
	return false, false
}

func (c *valueColumn) DatabaseTypeName() string {
	return c.typeName
}

func (c *valueColumn) SQLType() doctype.SQLType {
	return c.sqlType
}
