package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"agv-route-service/internal/measure"
	"agv-route-service/internal/platform/obs"
	"agv-route-service/internal/ports"
)

// Redis backed cache for origin->destination leg results.
//
// Legs for one origin live in a single hash: key "distance:<origin>",
// field = destination, value = "<meters>|<duration_seconds>". Meters use
// the shortest exact decimal rendering, so cached distances round-trip
// to the same float64 that was computed.
type RedisDistanceCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisDistanceCache(client *redis.Client, ttl time.Duration) *RedisDistanceCache {
	return &RedisDistanceCache{Client: client, TTL: ttl}
}

func distanceKey(origin string) string {
	return "distance:" + origin
}

// Fetch cached legs for one origin and multiple destinations.
func (r *RedisDistanceCache) GetMany(
	ctx context.Context,
	origin string,
	destinations []string,
) (_ map[string]ports.DistanceResult, err error) {
	defer obs.Time(ctx, "distance.cache.redis.GetMany")(&err)

	if r.Client == nil {
		return nil, errors.New("distance cache: redis client is nil")
	}

	if origin == "" {
		return nil, errors.New("get distance cache: origin must not be empty")
	}

	if len(destinations) == 0 {
		return map[string]ports.DistanceResult{}, nil
	}

	seen := map[string]struct{}{}
	uniq := make([]string, 0, len(destinations))
	for _, d := range destinations {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}

		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		uniq = append(uniq, d)
	}

	if len(uniq) == 0 {
		return map[string]ports.DistanceResult{}, nil
	}

	values, err := r.Client.HMGet(ctx, distanceKey(origin), uniq...).Result()
	if err != nil {
		return nil, fmt.Errorf("get distance cache: redis hmget origin=%q: %w", origin, err)
	}

	out := make(map[string]ports.DistanceResult, len(uniq))
	for i, v := range values {
		if v == nil {
			continue
		}

		raw, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("get distance cache: unexpected value type %T for %q", v, uniq[i])
		}

		result, err := decodeLeg(raw)
		if err != nil {
			return nil, fmt.Errorf("get distance cache: field %q: %w", uniq[i], err)
		}
		out[uniq[i]] = result
	}

	return out, nil
}

// Store many cached leg results for a single origin.
func (r *RedisDistanceCache) PutMany(
	ctx context.Context,
	origin string,
	results map[string]ports.DistanceResult,
) error {
	if r.Client == nil {
		return errors.New("distance cache: redis client is nil")
	}

	if origin == "" {
		return errors.New("insert distance cache: origin must not be empty")
	}

	if len(results) == 0 {
		return nil
	}

	fields := make(map[string]string, len(results))
	for dest, result := range results {
		if strings.TrimSpace(dest) == "" {
			return errors.New("insert distance cache: empty destination key")
		}
		fields[dest] = encodeLeg(result)
	}

	key := distanceKey(origin)
	pipe := r.Client.TxPipeline()
	pipe.HSet(ctx, key, fields)
	if r.TTL > 0 {
		pipe.Expire(ctx, key, r.TTL)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("insert distance cache: redis pipeline origin=%q: %w", origin, err)
	}

	return nil
}

func encodeLeg(r ports.DistanceResult) string {
	return strconv.FormatFloat(r.Distance.Meters(), 'g', -1, 64) +
		"|" +
		strconv.FormatInt(int64(r.Duration/time.Second), 10)
}

func decodeLeg(raw string) (ports.DistanceResult, error) {
	parts := strings.SplitN(raw, "|", 2)
	if len(parts) != 2 {
		return ports.DistanceResult{}, fmt.Errorf("malformed cached leg %q", raw)
	}

	meters, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return ports.DistanceResult{}, fmt.Errorf("malformed cached meters %q: %w", parts[0], err)
	}

	seconds, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return ports.DistanceResult{}, fmt.Errorf("malformed cached duration %q: %w", parts[1], err)
	}

	return ports.DistanceResult{
		Distance: measure.FromMeters(meters),
		Duration: time.Duration(seconds) * time.Second,
	}, nil
}
