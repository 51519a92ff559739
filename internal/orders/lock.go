package orders

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/velureshop/velure-backend/pkg/logger"
)

const lockRetryInterval = 25 * time.Millisecond

// lockStore is the slice of the redis client the phone lock needs.
type lockStore interface {
	Get(ctx context.Context, key string) (string, error)
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	Del(ctx context.Context, keys ...string) error
	LockKey(scope, id string) string
}

// PhoneLock serializes intake per phone number with a short redis lease,
// so two near-simultaneous submissions from the same customer cannot both
// miss the merge window and open duplicate orders. The lease is best
// effort: when redis is unreachable the caller proceeds unlocked.
type PhoneLock struct {
	store lockStore
	ttl   time.Duration
}

func NewPhoneLock(store lockStore, ttl time.Duration) *PhoneLock {
	return &PhoneLock{store: store, ttl: ttl}
}

// Acquire blocks until the lease for phone is held, the lease TTL worth
// of waiting has elapsed, or ctx is done. It always returns a release
// func safe to defer; when the lease was not obtained the release is a
// no-op and the caller runs unlocked.
func (l *PhoneLock) Acquire(ctx context.Context, phone string) func() {
	noop := func() {}
	if l == nil || l.store == nil {
		return noop
	}

	key := l.store.LockKey("intake", logger.HashPhone(phone))
	owner := uuid.NewString()
	deadline := time.Now().Add(l.ttl)
	for {
		ok, err := l.store.SetNX(ctx, key, owner, l.ttl)
		if err != nil {
			return noop
		}
		if ok {
			break
		}
		if ctx.Err() != nil || time.Now().After(deadline) {
			return noop
		}
		time.Sleep(lockRetryInterval)
	}

	return func() {
		// Only the holder may delete the key; a lease that expired and
		// was re-acquired elsewhere is left alone.
		held, err := l.store.Get(context.Background(), key)
		if err != nil || held != owner {
			return
		}
		_ = l.store.Del(context.Background(), key)
	}
}
