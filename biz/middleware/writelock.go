package middleware

import (
	"context"
	"log"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/pixeldock/pixeldock/pkg/lock"
)

var adminWriteLock *lock.DistributedLock

// InitAdminWriteLock sets the distributed lock serializing admin mutations
// (category management, asset review) across service replicas. When unset,
// admin writes pass through without locking.
func InitAdminWriteLock(l *lock.DistributedLock) {
	adminWriteLock = l
}

// AdminWriteLockMw returns a middleware slice that acquires the admin write
// lock. If the lock is not initialized (Redis disabled), returns nil so
// requests pass through without any locking overhead.
func AdminWriteLockMw() []app.HandlerFunc {
	if adminWriteLock == nil {
		return nil
	}
	return []app.HandlerFunc{adminWriteLockHandler()}
}

func adminWriteLockHandler() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		lockID, err := adminWriteLock.Acquire(ctx)
		if err != nil {
			log.Printf("[WriteLock] failed to acquire lock: %v", err)
			c.JSON(http.StatusServiceUnavailable, map[string]interface{}{
				"code": http.StatusServiceUnavailable,
				"msg":  "service busy, please retry later",
			})
			c.Abort()
			return
		}
		defer func() {
			if releaseErr := adminWriteLock.Release(ctx, lockID); releaseErr != nil {
				log.Printf("[WriteLock] failed to release lock: %v", releaseErr)
			}
		}()
		c.Next(ctx)
	}
}
