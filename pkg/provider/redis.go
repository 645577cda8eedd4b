package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/netcheck-network/netcheck/pkg/statetree"
	"github.com/netcheck-network/netcheck/pkg/util"
)

// redisKeyPrefix namespaces netcheck state in a shared Redis instance.
const redisKeyPrefix = "netcheck:state"

// RedisProvider reads state trees from Redis. The collection pipeline
// stores each command's parse output as a JSON document under
// netcheck:state:<device>:<command slug>.
type RedisProvider struct {
	client *redis.Client
}

// NewRedisProvider returns a provider talking to the given address.
func NewRedisProvider(addr string) *RedisProvider {
	return &RedisProvider{
		client: redis.NewClient(&redis.Options{
			Addr: addr,
		}),
	}
}

// NewRedisProviderFromClient wraps an existing client; tests use this.
func NewRedisProviderFromClient(client *redis.Client) *RedisProvider {
	return &RedisProvider{client: client}
}

// Connect tests the connection.
func (p *RedisProvider) Connect(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

// Close closes the connection.
func (p *RedisProvider) Close() error {
	return p.client.Close()
}

// Key returns the Redis key for one (device, command) pair.
func Key(deviceID, command string) string {
	return fmt.Sprintf("%s:%s:%s", redisKeyPrefix, deviceID, CommandSlug(command))
}

// Fetch loads one command's state tree for a device. A missing key is
// an error so absent devices surface as parse-error verdicts.
func (p *RedisProvider) Fetch(ctx context.Context, deviceID, command string) (statetree.Tree, error) {
	data, err := p.client.Get(ctx, Key(deviceID, command)).Result()
	if err == redis.Nil {
		return nil, fmt.Errorf("no state stored for %q on %s: %w", command, deviceID, util.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", Key(deviceID, command), err)
	}

	var tree map[string]any
	if err := json.Unmarshal([]byte(data), &tree); err != nil {
		return nil, util.NewShapeViolationError(deviceID, command, fmt.Sprintf("stored state is not a JSON object: %v", err))
	}
	if tree == nil {
		return nil, util.NewShapeViolationError(deviceID, command, "stored state is null")
	}
	return statetree.Tree(tree), nil
}

// Store writes one command's state tree for a device. The collection
// tooling calls this after parsing; an optional TTL expires stale state
// so reconciliation never trusts captures older than the cutoff.
func (p *RedisProvider) Store(ctx context.Context, deviceID, command string, tree statetree.Tree, ttl time.Duration) error {
	data, err := json.Marshal(tree)
	if err != nil {
		return fmt.Errorf("marshal state for %q on %s: %w", command, deviceID, err)
	}
	return p.client.Set(ctx, Key(deviceID, command), data, ttl).Err()
}
