package doctype

import "strings"

var databaseTypeNames = map[string]SQLType{
	"":                 SQLNull,
	"NULL":             SQLNull,
	"VOID":             SQLNull,
	"BOOL":             SQLBoolean,
	"BOOLEAN":          SQLBoolean,
	"BIT":              SQLBoolean,
	"TINYINT":          SQLTinyInt,
	"INT1":             SQLTinyInt,
	"SMALLINT":         SQLSmallInt,
	"INT2":             SQLSmallInt,
	"INT":              SQLInteger,
	"INT4":             SQLInteger,
	"INTEGER":          SQLInteger,
	"MEDIUMINT":        SQLInteger,
	"BIGINT":           SQLBigInt,
	"INT8":             SQLBigInt,
	"FLOAT":            SQLFloat,
	"FLOAT4":           SQLFloat,
	"REAL":             SQLFloat,
	"DOUBLE":           SQLDouble,
	"DOUBLE PRECISION": SQLDouble,
	"FLOAT8":           SQLDouble,
	"DECIMAL":          SQLDecimal,
	"NUMERIC":          SQLDecimal,
	"CHAR":             SQLChar,
	"BPCHAR":           SQLChar,
	"NCHAR":            SQLChar,
	"VARCHAR":          SQLVarChar,
	"NVARCHAR":         SQLVarChar,
	"VARCHAR2":         SQLVarChar,
	"STRING":           SQLVarChar,
	"TEXT":             SQLVarChar,
	"DATE":             SQLDate,
	"TIME":             SQLTime,
	"TIMETZ":           SQLTime,
	"TIMESTAMP":        SQLTimestamp,
	"TIMESTAMPTZ":      SQLTimestamp,
	"DATETIME":         SQLTimestamp,
	"DATETIME2":        SQLTimestamp,
	"BINARY":           SQLBinary,
	"VARBINARY":        SQLVarBinary,
	"BYTEA":            SQLVarBinary,
	"BLOB":             SQLBlob,
	"LONGBLOB":         SQLBlob,
	"CLOB":             SQLClob,
	"LONGTEXT":         SQLClob,

	"TIMESTAMP WITH TIME ZONE": SQLTimestamp,
}

// FromDatabaseTypeName maps a driver-reported column type name (as returned by
// sql.ColumnType.DatabaseTypeName or a Hive cursor description) to a SQL type
// code. Length and precision suffixes are ignored, and so is the Hive "_TYPE"
// suffix. Unknown names, including arrays, maps and structs, map to SQLObject.
func FromDatabaseTypeName(name string) SQLType {
	name = strings.ToUpper(strings.TrimSpace(name))
	if i := strings.IndexByte(name, '('); i >= 0 {
		name = strings.TrimSpace(name[:i])
	}
	name = strings.TrimSuffix(name, "_TYPE")
	if st, ok := databaseTypeNames[name]; ok {
		return st
	}
	return SQLObject
}
