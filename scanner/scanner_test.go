package scanner

import (
	"io"
	"reflect"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-data-exporter/docexport/doctype"
	"github.com/go-data-exporter/docexport/document"
	"github.com/go-data-exporter/docexport/metadata"
	"github.com/go-data-exporter/docexport/source"
)

func collect(t *testing.T, rows Rows) [][]any {
	t.Helper()
	var out [][]any
	for rows.Next() {
		row, err := rows.ScanRow()
		require.NoError(t, err)
		out = append(out, append([]any(nil), row...))
	}
	require.NoError(t, rows.Err())
	return out
}

func TestFromDocuments(t *testing.T) {
	alice := document.New("Person").
		Set("name", "Alice").
		SetTyped("age", doctype.Integer, int32(30)).
		Set("photo", document.Bytes{1, 2})
	bob := document.New("Person").Set("age", int32(41)).Set("nick", "b")
	rows := FromDocuments(source.NewSlice(alice, bob))
	assert.Equal(t, "document", rows.Driver())

	cols, err := rows.Columns()
	require.NoError(t, err)
	require.Len(t, cols, 3)

	tests := []struct {
		name     string
		sqlType  doctype.SQLType
		typeName string
		scanType reflect.Type
	}{
		{"name", doctype.SQLVarChar, "VARCHAR", reflect.TypeOf("")},
		{"age", doctype.SQLInteger, "INTEGER", reflect.TypeOf(int32(0))},
		{"photo", doctype.SQLBinary, "BINARY", reflect.TypeOf(document.Bytes{})},
	}
	for i, tt := range tests {
		assert.Equal(t, tt.name, cols[i].Name())
		assert.Equal(t, tt.sqlType, cols[i].SQLType(), tt.name)
		assert.Equal(t, tt.typeName, cols[i].DatabaseTypeName(), tt.name)
		assert.Equal(t, tt.scanType, cols[i].ScanType(), tt.name)
		_, ok := cols[i].Nullable()
		assert.False(t, ok)
	}

	// Columns advanced onto the first document; Next must not skip it.
	assert.Equal(t, [][]any{
		{"Alice", int32(30), document.Bytes{1, 2}},
		{nil, int32(41), nil},
	}, collect(t, rows))
	assert.False(t, rows.Next())
}

func TestFromDocumentsNextFirst(t *testing.T) {
	rows := FromDocuments(source.NewSlice(
		document.New("").Set("n", 1),
		document.New("").Set("n", 2),
	))
	require.True(t, rows.Next())
	cols, err := rows.Columns()
	require.NoError(t, err)
	require.Len(t, cols, 1)
	row, err := rows.ScanRow()
	require.NoError(t, err)
	assert.Equal(t, []any{1}, row)
	require.True(t, rows.Next())
	row, err = rows.ScanRow()
	require.NoError(t, err)
	assert.Equal(t, []any{2}, row)
	assert.False(t, rows.Next())
}

func TestFromDocumentsEmpty(t *testing.T) {
	rows := FromDocuments(source.NewSlice())
	cols, err := rows.Columns()
	require.NoError(t, err)
	assert.Empty(t, cols)
	assert.False(t, rows.Next())
	_, err = rows.ScanRow()
	assert.ErrorIs(t, err, metadata.ErrNoCurrentRow)
}

func TestFromData(t *testing.T) {
	rows := FromData([][]any{{int32(1), "a", nil}, {int32(2), "b", 3.5}})
	cols, err := rows.Columns()
	require.NoError(t, err)
	require.Len(t, cols, 3)
	assert.Equal(t, "column_0", cols[0].Name())
	assert.Equal(t, doctype.SQLInteger, cols[0].SQLType())
	assert.Equal(t, "int32", cols[0].DatabaseTypeName())
	assert.Equal(t, doctype.SQLVarChar, cols[1].SQLType())
	assert.Equal(t, doctype.SQLNull, cols[2].SQLType())
	assert.Equal(t, "nil", cols[2].DatabaseTypeName())

	assert.Equal(t, [][]any{{int32(1), "a", nil}, {int32(2), "b", 3.5}}, collect(t, rows))
	_, err = rows.ScanRow()
	assert.ErrorIs(t, err, io.EOF)
}

func TestFromDataRaggedRow(t *testing.T) {
	rows := FromData([][]any{{1, 2}, {3}})
	require.True(t, rows.Next())
	_, err := rows.ScanRow()
	require.NoError(t, err)
	require.True(t, rows.Next())
	_, err = rows.ScanRow()
	assert.ErrorContains(t, err, "length of row 2")
}

func TestFromDataScanWithoutNext(t *testing.T) {
	_, err := FromData([][]any{{1}}).ScanRow()
	assert.Error(t, err)
}

func TestFromSQL(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRowsWithColumnDefinition(
		sqlmock.NewColumn("id").OfType("INT4", int64(0)),
		sqlmock.NewColumn("name").OfType("VARCHAR(64)", ""),
		sqlmock.NewColumn("doc").OfType("JSONB", []byte(nil)),
	).AddRow(int64(1), "a", []byte(`{}`)).AddRow(int64(2), "b", nil))

	sqlRows, err := db.Query("SELECT id, name, doc FROM t")
	require.NoError(t, err)
	rows := FromSQL(sqlRows, "pgx")
	defer sqlRows.Close()
	assert.Equal(t, "pgx", rows.Driver())

	cols, err := rows.Columns()
	require.NoError(t, err)
	require.Len(t, cols, 3)
	assert.Equal(t, doctype.SQLInteger, cols[0].SQLType())
	assert.Equal(t, doctype.SQLVarChar, cols[1].SQLType())
	assert.Equal(t, doctype.SQLObject, cols[2].SQLType())
	assert.Equal(t, 2, cols[2].(*sqlColumn).Index())

	assert.Equal(t, [][]any{
		{int64(1), "a", []byte(`{}`)},
		{int64(2), "b", nil},
	}, collect(t, rows))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestParseHiveColumn(t *testing.T) {
	tests := []struct {
		desc     []string
		name     string
		hiveType string
		sqlType  doctype.SQLType
	}{
		{[]string{"people.name", "STRING_TYPE"}, "name", "STRING", doctype.SQLVarChar},
		{[]string{"age", "INT_TYPE"}, "age", "INT", doctype.SQLInteger},
		{[]string{"t.ts", "TIMESTAMP_TYPE"}, "ts", "TIMESTAMP", doctype.SQLTimestamp},
		{[]string{"tags", "ARRAY_TYPE"}, "tags", "ARRAY", doctype.SQLObject},
		{[]string{"bare"}, "bare", "", doctype.SQLNull},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col := parseHiveColumn(tt.desc)
			assert.Equal(t, tt.name, col.Name())
			assert.Equal(t, tt.hiveType, col.DatabaseTypeName())
			assert.Equal(t, tt.sqlType, col.SQLType())
		})
	}
}

func TestRowBuffer(t *testing.T) {
	var buf rowBuffer
	ptrs := buf.dest(2)
	require.Len(t, ptrs, 2)
	*(ptrs[1].(*any)) = "x"
	assert.Equal(t, []any{nil, "x"}, buf.values)

	again := buf.dest(2)
	assert.Same(t, ptrs[0], again[0])
	assert.Len(t, buf.dest(3), 3)
	assert.Len(t, buf.values, 3)
}
