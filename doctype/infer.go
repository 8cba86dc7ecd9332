package doctype

import "time"

// InferFromValue guesses the SQL type of a value whose field carries no declared
// type. The case order is significant and mirrors the native type priorities:
// boolean, byte, date/time, double, float, integer, long, short, string.
func InferFromValue(v any) SQLType {
	switch v.(type) {
	case bool:
		return Lookup(Boolean)
	case int8, uint8:
		return Lookup(Byte)
	case time.Time:
		return Lookup(Datetime)
	case float64:
		return Lookup(Double)
	case float32:
		return Lookup(Float)
	case int32, int:
		return Lookup(Integer)
	case int64:
		return Lookup(Long)
	case int16:
		return Lookup(Short)
	case string:
		return Lookup(String)
	default:
		return SQLObject
	}
}
