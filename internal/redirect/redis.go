// internal/redirect/redis.go
//
// Redis-backed Store.
//
// Context
// -------
// The resolver is correct with the process-local MemoryStore; this
// implementation exists for deployments that run several replicas and want
// them to share one warm redirect cache.  It satisfies the same Store
// interface, so swapping it in is a wiring change in main, not a call-site
// change.
//
// Layout per tenant:
//
//	redirect:{tenant}        HASH  slug → target
//	redirect:{tenant}:meta   HASH  fetch_start, fetched_at (UnixNano)
//
// Replace runs as a Lua script so the monotonic fetch-start guard and the
// wholesale map swap stay atomic across replicas.
//
// Store methods report absence rather than errors, matching the resolver's
// never-propagate policy; Redis trouble is logged and degrades to a miss.
package redirect

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var replaceScript = redis.NewScript(`
local cur = tonumber(redis.call('HGET', KEYS[2], 'fetch_start') or '0')
local new = tonumber(ARGV[1])
if cur > new then
  return 0
end
redis.call('DEL', KEYS[1])
if #ARGV > 2 then
  redis.call('HSET', KEYS[1], unpack(ARGV, 3))
end
redis.call('HSET', KEYS[2], 'fetch_start', ARGV[1], 'fetched_at', ARGV[2])
return 1
`)

// RedisStore is the shared-cache Store implementation.
type RedisStore struct {
	rdb redis.UniversalClient

	now func() time.Time // swapped in tests
}

// NewRedisStore wraps an open client.  The client is shared; RedisStore
// does not close it.
func NewRedisStore(rdb redis.UniversalClient) *RedisStore {
	return &RedisStore{rdb: rdb, now: time.Now}
}

func mapKey(tenantID string) string  { return "redirect:" + tenantID }
func metaKey(tenantID string) string { return "redirect:" + tenantID + ":meta" }

func (s *RedisStore) Lookup(tenantID, slug string) (string, bool) {
	target, err := s.rdb.HGet(context.Background(), mapKey(tenantID), slug).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		zap.S().Warnw("redis redirect lookup failed", "tenant", tenantID, "err", err)
		return "", false
	}
	return target, true
}

func (s *RedisStore) Replace(tenantID string, mapping map[string]string, fetchStart time.Time) bool {
	args := make([]interface{}, 0, 2+2*len(mapping))
	args = append(args,
		strconv.FormatInt(fetchStart.UnixNano(), 10),
		strconv.FormatInt(s.now().UnixNano(), 10),
	)
	for slug, target := range mapping {
		args = append(args, slug, target)
	}

	applied, err := replaceScript.Run(context.Background(), s.rdb,
		[]string{mapKey(tenantID), metaKey(tenantID)}, args...).Int()
	if err != nil {
		zap.S().Warnw("redis redirect replace failed", "tenant", tenantID, "err", err)
		return false
	}
	return applied == 1
}

func (s *RedisStore) Fresh(tenantID string, maxAge time.Duration) bool {
	raw, err := s.rdb.HGet(context.Background(), metaKey(tenantID), "fetched_at").Result()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		zap.S().Warnw("redis redirect freshness check failed", "tenant", tenantID, "err", err)
		return false
	}
	nanos, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return false
	}
	return s.now().Sub(time.Unix(0, nanos)) < maxAge
}

func (s *RedisStore) Loaded(tenantID string) bool {
	n, err := s.rdb.Exists(context.Background(), metaKey(tenantID)).Result()
	if err != nil {
		zap.S().Warnw("redis redirect loaded check failed", "tenant", tenantID, "err", err)
		return false
	}
	return n > 0
}
