package doctype

import "fmt"

// SQLType is a tabular type code. The numeric values are the codes shared by
// most database drivers and metadata APIs.
type SQLType int

const (
	SQLNull      SQLType = 0
	SQLBoolean   SQLType = 16
	SQLTinyInt   SQLType = -6
	SQLSmallInt  SQLType = 5
	SQLInteger   SQLType = 4
	SQLBigInt    SQLType = -5
	SQLFloat     SQLType = 6
	SQLDouble    SQLType = 8
	SQLDecimal   SQLType = 3
	SQLChar      SQLType = 1
	SQLVarChar   SQLType = 12
	SQLDate      SQLType = 91
	SQLTime      SQLType = 92
	SQLTimestamp SQLType = 93
	SQLBinary    SQLType = -2
	SQLVarBinary SQLType = -3
	SQLBlob      SQLType = 2004
	SQLClob      SQLType = 2005
	// SQLObject is the generic-object code. Embedded and linked values collapse to it.
	SQLObject SQLType = 2000
)

var sqlNames = map[SQLType]string{
	SQLNull:      "NULL",
	SQLBoolean:   "BOOLEAN",
	SQLTinyInt:   "TINYINT",
	SQLSmallInt:  "SMALLINT",
	SQLInteger:   "INTEGER",
	SQLBigInt:    "BIGINT",
	SQLFloat:     "FLOAT",
	SQLDouble:    "DOUBLE",
	SQLDecimal:   "DECIMAL",
	SQLChar:      "CHAR",
	SQLVarChar:   "VARCHAR",
	SQLDate:      "DATE",
	SQLTime:      "TIME",
	SQLTimestamp: "TIMESTAMP",
	SQLBinary:    "BINARY",
	SQLVarBinary: "VARBINARY",
	SQLBlob:      "BLOB",
	SQLClob:      "CLOB",
	SQLObject:    "OBJECT",
}

// Code returns the integer type code.
func (t SQLType) Code() int {
	return int(t)
}

// Valid reports whether t is one of the known codes.
func (t SQLType) Valid() bool {
	_, ok := sqlNames[t]
	return ok
}

func (t SQLType) String() string {
	if name, ok := sqlNames[t]; ok {
		return name
	}
	return fmt.Sprintf("SQLType(%d)", int(t))
}

// IsNumeric reports whether values of this type are numbers.
func (t SQLType) IsNumeric() bool {
	switch t {
	case SQLTinyInt, SQLSmallInt, SQLInteger, SQLBigInt, SQLFloat, SQLDouble, SQLDecimal:
		return true
	}
	return false
}
