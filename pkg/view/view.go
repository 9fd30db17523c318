// Package view emits the view invalidation signal fired after every
// successful mutation. Views are identified by a logical path such as
// "admin/settings" or "gallery/{assetID}"; consumers (the web frontend's
// cache layer) subscribe to the publish channel and drop their cached
// render for that path.
package view

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

const channelSuffix = ":views:invalidate"

// Invalidator broadcasts invalidation events through Redis. A nil client
// turns every call into a no-op so the service runs without Redis.
type Invalidator struct {
	client *redis.Client
	prefix string
}

// NewInvalidator creates an Invalidator. prefix namespaces the cache keys
// and the publish channel (e.g. "pixeldock").
func NewInvalidator(client *redis.Client, prefix string) *Invalidator {
	if prefix == "" {
		prefix = "pixeldock"
	}
	return &Invalidator{client: client, prefix: prefix}
}

// Invalidate drops the cached render for the given view path and publishes
// the path on the invalidation channel. Failures are logged, never returned:
// a stale view must not fail the mutation that triggered it.
func (v *Invalidator) Invalidate(ctx context.Context, path string) {
	if v == nil || v.client == nil || path == "" {
		return
	}
	key := v.prefix + ":view:" + path
	if err := v.client.Del(ctx, key).Err(); err != nil {
		log.Printf("[view] delete cached view %s: %v", key, err)
	}
	if err := v.client.Publish(ctx, v.prefix+channelSuffix, path).Err(); err != nil {
		log.Printf("[view] publish invalidation for %s: %v", path, err)
	}
}
