package forecast_service

import (
	"context"
	"sync"
	"testing"
)

func TestMemoryRunLock_SerializesOneKey(t *testing.T) {
	lock := NewMemoryRunLock()
	ctx := context.Background()

	release, acquired, err := lock.TryAcquire(ctx, "orders||all")
	if err != nil || !acquired {
		t.Fatalf("first acquire: acquired=%v err=%v", acquired, err)
	}

	if _, again, _ := lock.TryAcquire(ctx, "orders||all"); again {
		t.Fatal("second acquire on a held key must fail")
	}

	// A different key is unaffected.
	otherRelease, acquired, _ := lock.TryAcquire(ctx, "revenue||all")
	if !acquired {
		t.Fatal("different key should be free")
	}
	otherRelease()

	release()
	release2, acquired, _ := lock.TryAcquire(ctx, "orders||all")
	if !acquired {
		t.Fatal("key should be free after release")
	}
	release2()
}

func TestMemoryRunLock_ConcurrentAcquire(t *testing.T) {
	lock := NewMemoryRunLock()
	ctx := context.Background()

	const contenders = 16
	var wg sync.WaitGroup
	var mu sync.Mutex
	winners := 0

	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, acquired, _ := lock.TryAcquire(ctx, "orders|branch-1|all"); acquired {
				mu.Lock()
				winners++
				mu.Unlock()
				// Deliberately never released: winners stay exclusive for
				// the duration of the test.
			}
		}()
	}
	wg.Wait()

	if winners != 1 {
		t.Fatalf("%d goroutines acquired one key, want exactly 1", winners)
	}
}
