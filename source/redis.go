package source

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/go-data-exporter/docexport/document"
)

// Redis is a cursor over JSON documents stored as the elements of a Redis
// list. Elements are fetched page by page with LRANGE.
type Redis struct {
	ctx     context.Context
	client  redis.UniversalClient
	key     string
	opts    options
	offset  int64
	page    []string
	pos     int
	done    bool
	current *document.Doc
	err     error
}

var _ document.Cursor = (*Redis)(nil)

// NewRedis returns a cursor over the list stored at key. ctx bounds every fetch.
func NewRedis(ctx context.Context, client redis.UniversalClient, key string, opts ...Option) *Redis {
	return &Redis{ctx: ctx, client: client, key: key, opts: newOptions(opts)}
}

func (r *Redis) Next() bool {
	r.current = nil
	for r.err == nil {
		if r.pos < len(r.page) {
			index := r.offset - int64(len(r.page)) + int64(r.pos)
			doc, err := document.Decode([]byte(r.page[r.pos]))
			r.pos++
			if err != nil {
				r.err = fmt.Errorf("%s[%d]: %w", r.key, index, err)
				return false
			}
			r.current = doc
			return true
		}
		if r.done {
			return false
		}
		r.fetch()
	}
	return false
}

func (r *Redis) fetch() {
	page, err := r.client.LRange(r.ctx, r.key, r.offset, r.offset+r.opts.pageSize-1).Result()
	if err != nil {
		r.err = fmt.Errorf("docexport: read list %s: %w", r.key, err)
		return
	}
	r.opts.logger.Debug("fetched documents",
		zap.String("key", r.key),
		zap.Int64("offset", r.offset),
		zap.Int("count", len(page)))
	r.offset += int64(len(page))
	r.page, r.pos = page, 0
	if int64(len(page)) < r.opts.pageSize {
		r.done = true
	}
}

func (r *Redis) Current() document.Document {
	if r.current == nil {
		return nil
	}
	return r.current
}

func (r *Redis) Err() error {
	return r.err
}

// DatabaseName returns the name set with WithDatabaseName, or the list key.
func (r *Redis) DatabaseName() string {
	if r.opts.databaseName != "" {
		return r.opts.databaseName
	}
	return r.key
}

// Close does nothing; the client belongs to the caller.
func (r *Redis) Close() error {
	return nil
}
