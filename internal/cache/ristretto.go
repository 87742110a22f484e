package cache

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto/v2"
)

// entryEstimate is the usual encoded size of one composed site entry. It
// sizes the admission counters.
const entryEstimate = 4 << 10

// LocalStore keeps encoded site entries in process memory. It is the L1 of a
// TieredStore, or the only store when redis is unavailable.
type LocalStore struct {
	entries  *ristretto.Cache[string, []byte]
	maxEntry int64
}

// NewLocalStore bounds the store by the total size of encoded entries. One
// entry may use at most an eighth of it.
func NewLocalStore(maxBytes int64) (*LocalStore, error) {
	if maxBytes < entryEstimate {
		return nil, fmt.Errorf("l1 cache needs at least %d bytes, got %d", entryEstimate, maxBytes)
	}
	entries, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		NumCounters: 10 * (maxBytes / entryEstimate),
		MaxCost:     maxBytes,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create l1 cache: %w", err)
	}
	return &LocalStore{entries: entries, maxEntry: maxBytes / 8}, nil
}

func (s *LocalStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	val, ok := s.entries.Get(key)
	return val, ok, nil
}

// Set keeps its own copy of value and waits for ristretto's write buffer so
// the next Get sees it. Oversized entries are skipped without error so a
// tiered write still reaches L2.
func (s *LocalStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	cost := int64(len(value))
	if cost > s.maxEntry {
		s.entries.Del(key)
		return nil
	}
	s.entries.SetWithTTL(key, bytes.Clone(value), cost, ttl)
	s.entries.Wait()
	return nil
}

func (s *LocalStore) Delete(_ context.Context, key string) error {
	s.entries.Del(key)
	return nil
}

func (s *LocalStore) Close() {
	s.entries.Close()
}
