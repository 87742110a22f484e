package cache

import (
	"context"
	"time"
)

// TieredStore reads L1 then L2, backfilling L1 on an L2 hit. Writes and
// deletes go to both levels.
type TieredStore struct {
	l1       Store
	l2       Store
	l1Expire time.Duration
}

// NewTieredStore caps how long backfilled entries live in L1 at l1Expire so
// an instance that missed an invalidation converges on L2.
func NewTieredStore(l1, l2 Store, l1Expire time.Duration) *TieredStore {
	return &TieredStore{l1: l1, l2: l2, l1Expire: l1Expire}
}

func (s *TieredStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, found, err := s.l1.Get(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if found {
		return val, true, nil
	}

	val, found, err = s.l2.Get(ctx, key)
	if err != nil || !found {
		return nil, false, err
	}
	_ = s.l1.Set(ctx, key, val, s.l1Expire)
	return val, true, nil
}

func (s *TieredStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	l1TTL := ttl
	if s.l1Expire > 0 && s.l1Expire < ttl {
		l1TTL = s.l1Expire
	}
	if err := s.l1.Set(ctx, key, value, l1TTL); err != nil {
		return err
	}
	return s.l2.Set(ctx, key, value, ttl)
}

// Delete clears L1 even when L2 fails so this instance stops serving the
// stale entry immediately.
func (s *TieredStore) Delete(ctx context.Context, key string) error {
	if err := s.l1.Delete(ctx, key); err != nil {
		return err
	}
	return s.l2.Delete(ctx, key)
}
