package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix          = "user:%d"
	ThreadKeyPrefix        = "thread:%d"
	FollowerCountPrefix    = "user:%d:followers:count"
	ConfirmationCodePrefix = "confirm:%s"
)

const (
	UserTTL             = 5 * time.Minute
	ThreadTTL           = 2 * time.Minute
	FollowerCountTTL    = 1 * time.Minute
	ConfirmationCodeTTL = 10 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func ThreadKey(threadID uint) string {
	return fmt.Sprintf(ThreadKeyPrefix, threadID)
}

func FollowerCountKey(userID uint) string {
	return fmt.Sprintf(FollowerCountPrefix, userID)
}

func ConfirmationCodeKey(email string) string {
	return fmt.Sprintf(ConfirmationCodePrefix, email)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
	Invalidate(ctx, FollowerCountKey(userID))
}

func InvalidateThread(ctx context.Context, threadID uint) {
	Invalidate(ctx, ThreadKey(threadID))
}
