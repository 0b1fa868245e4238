package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Locker serializes booking creation per event.
type Locker interface {
	Acquire(ctx context.Context, eventID string) (release func(), err error)
}

// EventLock is a Redis mutex keyed by event id. Two concurrent bookings for
// the same event both resolving the same seat as free is the primary race;
// holding the lock across resolve-validate-write closes it, with the seat
// claim unique index as the backstop.
type EventLock struct {
	redis *redis.Client
	ttl   time.Duration

	// newToken is swappable for tests.
	newToken func() string
}

const lockRetryInterval = 20 * time.Millisecond

func NewEventLock(redisClient *redis.Client, ttl time.Duration) *EventLock {
	return &EventLock{
		redis:    redisClient,
		ttl:      ttl,
		newToken: func() string { return uuid.New().String() },
	}
}

func (l *EventLock) Acquire(ctx context.Context, eventID string) (func(), error) {
	key := fmt.Sprintf("lock:booking:%s", eventID)
	token := l.newToken()

	for {
		ok, err := l.redis.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(lockRetryInterval):
		}
	}

	release := func() {
		// Only delete the lock while it still holds our token; an expired
		// lock may already belong to another caller.
		val, err := l.redis.Get(context.Background(), key).Result()
		if err == nil && val == token {
			l.redis.Del(context.Background(), key)
		}
	}
	return release, nil
}

// NopLocker satisfies Locker without any coordination, for tests.
type NopLocker struct{}

func (NopLocker) Acquire(ctx context.Context, eventID string) (func(), error) {
	return func() {}, nil
}
