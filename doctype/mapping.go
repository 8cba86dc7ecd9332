package doctype

// sqlTypes maps every NativeType to its SQL type code. It is built during
// package initialization and only read afterwards.
var sqlTypes = map[NativeType]SQLType{
	String:   SQLVarChar,
	Integer:  SQLInteger,
	Float:    SQLFloat,
	Short:    SQLSmallInt,
	Boolean:  SQLBoolean,
	Long:     SQLBigInt,
	Double:   SQLDecimal,
	Date:     SQLDate,
	Datetime: SQLTimestamp,
	Byte:     SQLTinyInt,
	Binary:   SQLBinary,

	// Aggregates and links have no tabular counterpart.
	Embedded:     SQLObject,
	EmbeddedList: SQLObject,
	EmbeddedMap:  SQLObject,
	EmbeddedSet:  SQLObject,
	Link:         SQLObject,
	LinkList:     SQLObject,
	LinkMap:      SQLObject,
	LinkSet:      SQLObject,

	Transient: SQLNull,
}

// Lookup returns the SQL type code for a declared native type. Values outside
// the closed NativeType set map to SQLNull.
func Lookup(t NativeType) SQLType {
	if st, ok := sqlTypes[t]; ok {
		return st
	}
	return SQLNull
}

// IsNumeric reports whether a native type holds numbers. Metadata consumers use
// it as the answer to "is this column signed".
func IsNumeric(t NativeType) bool {
	switch t {
	case Byte, Double, Float, Integer, Long, Short:
		return true
	}
	return false
}
