package source

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-data-exporter/docexport/document"
)

func names(t *testing.T, c document.Cursor) []string {
	t.Helper()
	var out []string
	for c.Next() {
		out = append(out, c.Current().Field("name").(string))
	}
	return out
}

func TestSlice(t *testing.T) {
	c := NewSlice(document.New("").Set("name", "a"), document.New("").Set("name", "b"))
	assert.Nil(t, c.Current())
	assert.Equal(t, []string{"a", "b"}, names(t, c))
	assert.Nil(t, c.Current())
	assert.False(t, c.Next())
	assert.NoError(t, c.Err())
	assert.NoError(t, c.Close())
}

func TestJSONLines(t *testing.T) {
	input := `{"name": "Alice", "age": 30}

{"name": "Bob", "@fieldTypes": {"name": "STRING"}}
`
	c := NewJSONLines(strings.NewReader(input), WithDatabaseName("people.jsonl"))
	assert.Equal(t, []string{"Alice", "Bob"}, names(t, c))
	assert.NoError(t, c.Err())
	assert.Nil(t, c.Current())
	assert.Equal(t, "people.jsonl", c.DatabaseName())
}

func TestJSONLinesDecodeError(t *testing.T) {
	input := "{\"name\": \"Alice\"}\n\n{broken\n{\"name\": \"Carol\"}\n"
	c := NewJSONLines(strings.NewReader(input))
	assert.Equal(t, []string{"Alice"}, names(t, c))
	require.Error(t, c.Err())
	assert.Contains(t, c.Err().Error(), "line 3")
	assert.False(t, c.Next())
}

func TestJSONLinesTrailingData(t *testing.T) {
	input := "{\"name\": \"Alice\"}\n{\"name\": \"Bob\"} {\"name\": \"Eve\"}\n"
	c := NewJSONLines(strings.NewReader(input))
	assert.Equal(t, []string{"Alice"}, names(t, c))
	require.Error(t, c.Err())
	assert.Contains(t, c.Err().Error(), "line 2")
	assert.Contains(t, c.Err().Error(), "trailing data")
}

type closer struct {
	io.Reader
	closed bool
}

func (c *closer) Close() error {
	c.closed = true
	return nil
}

func TestJSONLinesClose(t *testing.T) {
	r := &closer{Reader: strings.NewReader("")}
	c := NewJSONLines(r)
	require.NoError(t, c.Close())
	assert.True(t, r.closed)
}

func TestSQL(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	mock.ExpectQuery("SELECT doc, id FROM people").
		WithArgs("active").
		WillReturnRows(sqlmock.NewRows([]string{"doc", "id"}).
			AddRow(`{"@class": "Person", "name": "Alice"}`, 1).
			AddRow([]byte(`{"name": "Bob"}`), 2))
	mock.ExpectClose()

	c, err := QuerySQL(context.Background(), db, "SELECT doc, id FROM people WHERE status = ?", "active")
	require.NoError(t, err)

	require.True(t, c.Next())
	assert.Equal(t, "Alice", c.Current().Field("name"))
	assert.Equal(t, "Person", c.Current().(document.Classed).ClassName())
	require.True(t, c.Next())
	assert.Equal(t, "Bob", c.Current().Field("name"))
	assert.False(t, c.Next())
	assert.NoError(t, c.Err())
	assert.NoError(t, c.Close())
	require.NoError(t, db.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLErrors(t *testing.T) {
	tests := []struct {
		name string
		rows *sqlmock.Rows
		want string
	}{
		{"null document", sqlmock.NewRows([]string{"doc"}).AddRow(nil), "row 1: document column is NULL"},
		{"not text", sqlmock.NewRows([]string{"doc"}).AddRow(int64(7)), "row 1: document column has type int64"},
		{"bad json", sqlmock.NewRows([]string{"doc"}).AddRow(`{"name": "ok"}`).AddRow(`[1]`), "row 2:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			mock.ExpectQuery("SELECT doc FROM t").WillReturnRows(tt.rows)

			c, err := QuerySQL(context.Background(), db, "SELECT doc FROM t")
			require.NoError(t, err)
			defer c.Close()
			for c.Next() {
			}
			require.Error(t, c.Err())
			assert.Contains(t, c.Err().Error(), tt.want)
		})
	}
}

func TestSQLQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectQuery("SELECT").WillReturnError(errors.New("boom"))

	_, err = QuerySQL(context.Background(), db, "SELECT doc FROM t")
	assert.ErrorContains(t, err, "boom")
}

func setupRedis(t *testing.T, docs ...string) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	if len(docs) > 0 {
		values := make([]any, len(docs))
		for i, d := range docs {
			values[i] = d
		}
		require.NoError(t, client.RPush(context.Background(), "people", values...).Err())
	}
	return client
}

func TestRedis(t *testing.T) {
	var docs []string
	want := []string{}
	for _, n := range []string{"a", "b", "c", "d", "e"} {
		docs = append(docs, `{"name": "`+n+`"}`)
		want = append(want, n)
	}
	client := setupRedis(t, docs...)

	for _, pageSize := range []int{1, 2, 5, 10} {
		c := NewRedis(context.Background(), client, "people", WithPageSize(pageSize))
		assert.Equal(t, want, names(t, c), "page size %d", pageSize)
		assert.NoError(t, c.Err())
		assert.NoError(t, c.Close())
	}
}

func TestRedisEmptyAndNames(t *testing.T) {
	client := setupRedis(t)
	c := NewRedis(context.Background(), client, "missing")
	assert.False(t, c.Next())
	assert.NoError(t, c.Err())
	assert.Equal(t, "missing", c.DatabaseName())

	c = NewRedis(context.Background(), client, "missing", WithDatabaseName("cache"))
	assert.Equal(t, "cache", c.DatabaseName())
}

func TestRedisDecodeError(t *testing.T) {
	client := setupRedis(t, `{"name": "a"}`, `nope`)
	c := NewRedis(context.Background(), client, "people", WithPageSize(1))
	assert.Equal(t, []string{"a"}, names(t, c))
	assert.ErrorContains(t, c.Err(), "people[1]")
}

func TestRedisCanceled(t *testing.T) {
	client := setupRedis(t, `{"name": "a"}`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := NewRedis(ctx, client, "people")
	assert.False(t, c.Next())
	assert.Error(t, c.Err())
}
