package cache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"mindcheck/internal/model"
)

// StatsCache keeps running submission counts per result in a Redis hash.
//
// A rebuild reads Generation, counts entries in storage, then calls Replace
// with that generation. Every Increment bumps the generation, so a rebuild
// that raced a submission is discarded instead of overwriting it. The hash
// expires after ttl so any remaining drift is rebuilt from storage.
type StatsCache interface {
	Increment(ctx context.Context, result model.Result) error
	// Counts returns nil, nil when the hash has not been built yet
	Counts(ctx context.Context) (map[model.Result]int64, error)
	Generation(ctx context.Context) (int64, error)
	// Replace overwrites the hash with counts rebuilt from storage. It
	// returns false without writing when gen is no longer current.
	Replace(ctx context.Context, gen int64, counts map[model.Result]int64) (bool, error)
}

type statsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStatsCache creates a new stats cache; ttl <= 0 keeps the hash until
// it is replaced
func NewStatsCache(client *redis.Client, ttl time.Duration) StatsCache {
	return &statsCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *statsCache) key() string {
	return "survey:stats"
}

func (c *statsCache) genKey() string {
	return "survey:stats:gen"
}

// KEYS[1] hash, KEYS[2] generation; ARGV[1] result
var incrementScript = redis.NewScript(`
redis.call('INCR', KEYS[2])
if redis.call('EXISTS', KEYS[1]) == 1 then
	redis.call('HINCRBY', KEYS[1], ARGV[1], 1)
end
return 0
`)

// KEYS[1] hash, KEYS[2] generation; ARGV[1] expected generation,
// ARGV[2] ttl in ms, then field/value pairs
var replaceScript = redis.NewScript(`
local gen = redis.call('GET', KEYS[2]) or '0'
if gen ~= ARGV[1] then
	return 0
end
redis.call('DEL', KEYS[1])
for i = 3, #ARGV, 2 do
	redis.call('HSET', KEYS[1], ARGV[i], ARGV[i + 1])
end
if tonumber(ARGV[2]) > 0 then
	redis.call('PEXPIRE', KEYS[1], ARGV[2])
end
return 1
`)

// Increment only bumps an existing hash, so a cold cache is rebuilt from
// storage instead of starting from a partial count.
func (c *statsCache) Increment(ctx context.Context, result model.Result) error {
	return incrementScript.Run(ctx, c.client, []string{c.key(), c.genKey()}, string(result)).Err()
}

func (c *statsCache) Counts(ctx context.Context) (map[model.Result]int64, error) {
	values, err := c.client.HGetAll(ctx, c.key()).Result()
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, nil
	}

	counts := make(map[model.Result]int64, len(values))
	for field, raw := range values {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		counts[model.Result(field)] = n
	}
	return counts, nil
}

func (c *statsCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, c.genKey()).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *statsCache) Replace(ctx context.Context, gen int64, counts map[model.Result]int64) (bool, error) {
	// every result is written, even zeros, so an empty store still yields a non-empty hash
	fields := make(map[string]int64, len(model.Results))
	for _, r := range model.Results {
		fields[string(r)] = counts[r]
	}
	for r, n := range counts {
		fields[string(r)] = n
	}

	args := make([]interface{}, 0, 2+2*len(fields))
	args = append(args, strconv.FormatInt(gen, 10), c.ttl.Milliseconds())
	for field, n := range fields {
		args = append(args, field, n)
	}

	replaced, err := replaceScript.Run(ctx, c.client, []string{c.key(), c.genKey()}, args...).Int()
	if err != nil {
		return false, err
	}
	return replaced == 1, nil
}
