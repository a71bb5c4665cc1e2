package seqstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/agptools/pkg/assemble"
	"github.com/matzehuels/agptools/pkg/cache"
	errs "github.com/matzehuels/agptools/pkg/errors"
)

// DefaultRedisPrefix namespaces component keys.
const DefaultRedisPrefix = "agptools:seq:"

// Redis serves slices of sequences stored as Redis strings under
// <prefix><id>.
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis returns a store reading keys under prefix. An empty prefix
// means DefaultRedisPrefix.
func NewRedis(client *redis.Client, prefix string) *Redis {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &Redis{client: client, prefix: prefix}
}

// DialRedis connects to the server at url (redis://host:port/db) and
// checks it responds.
func DialRedis(ctx context.Context, url, prefix string) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "redis url %q", url)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errs.Wrap(errs.ErrCodeNetwork, err, "connect to redis")
	}
	return NewRedis(client, prefix), nil
}

// Source identifies the store by server address, database and key prefix.
// Reloading different sequences under the same prefix keeps the Source, so
// clear the cache after "store load" replaces components.
func (r *Redis) Source() string {
	opts := r.client.Options()
	return "redis:" + opts.Addr + "/" + strconv.Itoa(opts.DB) + "/" + r.prefix
}

// Close closes the underlying client.
func (r *Redis) Close() error { return r.client.Close() }

func (r *Redis) key(id string) string { return r.prefix + id }

// Put stores a full sequence. It is used to load a FASTA into Redis.
func (r *Redis) Put(ctx context.Context, id string, seq []byte) error {
	if err := r.client.Set(ctx, r.key(id), seq, 0).Err(); err != nil {
		return errs.Wrap(errs.ErrCodeNetwork, err, "store %s", id)
	}
	return nil
}

// Fetch returns bases [start, end] of id using GETRANGE. Transport errors
// are retried with backoff.
func (r *Redis) Fetch(ctx context.Context, id string, start, end int) ([]byte, error) {
	var (
		length int64
		slice  string
	)
	err := cache.RetryWithBackoff(ctx, func() error {
		pipe := r.client.Pipeline()
		strlen := pipe.StrLen(ctx, r.key(id))
		getrange := pipe.GetRange(ctx, r.key(id), int64(start-1), int64(end-1))
		if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
			return cache.Retryable(fmt.Errorf("%w: %w", cache.ErrNetwork, err))
		}
		length, slice = strlen.Val(), getrange.Val()
		return nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errs.Wrap(errs.ErrCodeNetwork, err, "fetch %s:%d-%d", id, start, end)
	}
	if length == 0 {
		return nil, errs.New(errs.ErrCodeComponentNotFound, "sequence %s not found in redis", id)
	}
	if err := checkRange(id, start, end, int(length)); err != nil {
		return nil, err
	}
	return []byte(slice), nil
}

var (
	_ assemble.SequenceProvider = (*Redis)(nil)
	_ assemble.Sourced          = (*Redis)(nil)
)
