package cache

import (
	"context"
	"fmt"
	"time"
)

const userKeyPrefix = "user:%d"

// UserTTL bounds how stale a cached user profile can get.
const UserTTL = 5 * time.Minute

// UserKey builds the cache key for a user id.
func UserKey(userID uint) string {
	return fmt.Sprintf(userKeyPrefix, userID)
}

// InvalidateUser drops the cached copy of a user after a write.
func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}
