// Property-based tests for keyed submission serialization.
package lock

import (
	"sync"
	"testing"

	"pgregory.net/rapid"
)

// TestSerializedAccumulationProperty tests that for any set of concurrent
// deltas applied to the same key under the lock, the final total equals
// the sum of the deltas, matching sequential execution.
func TestSerializedAccumulationProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		numOps := rapid.IntRange(2, 20).Draw(t, "numOps")

		deltas := make([]int64, numOps)
		var expectedTotal int64
		for i := 0; i < numOps; i++ {
			deltas[i] = rapid.Int64Range(0, 500).Draw(t, "delta")
			expectedTotal += deltas[i]
		}

		key := rapid.StringMatching(`[a-f0-9-]{8}/20[0-9]{2}-(0[1-9]|1[0-2])`).Draw(t, "key")

		kl := NewKeyLock()
		var total int64

		var wg sync.WaitGroup
		wg.Add(numOps)

		for _, delta := range deltas {
			go func(d int64) {
				defer wg.Done()
				kl.Lock(key)
				defer kl.Unlock(key)
				// Read-modify-write, serialized by the lock.
				total += d
			}(delta)
		}

		wg.Wait()

		if total != expectedTotal {
			t.Fatalf("total mismatch with locking: expected %d, got %d (numOps=%d)",
				expectedTotal, total, numOps)
		}
	})
}

// TestIndependentKeysDoNotBlock tests that TryLock on one key succeeds
// while a different key is held.
func TestIndependentKeysDoNotBlock(t *testing.T) {
	kl := NewKeyLock()

	kl.Lock("user-a/2024-01")
	defer kl.Unlock("user-a/2024-01")

	if !kl.TryLock("user-b/2024-01") {
		t.Fatal("lock on a different key blocked")
	}
	kl.Unlock("user-b/2024-01")

	if kl.TryLock("user-a/2024-01") {
		t.Fatal("second lock on a held key unexpectedly acquired")
	}
}

// TestWithLockReleasesOnError tests that WithLock releases the lock even
// when the wrapped function fails.
func TestWithLockReleasesOnError(t *testing.T) {
	kl := NewKeyLock()

	errBoom := errTest("boom")
	if err := kl.WithLock("key", func() error { return errBoom }); err != errBoom {
		t.Fatalf("WithLock returned %v, want %v", err, errBoom)
	}

	if !kl.TryLock("key") {
		t.Fatal("lock not released after WithLock error")
	}
	kl.Unlock("key")
}

type errTest string

func (e errTest) Error() string { return string(e) }
