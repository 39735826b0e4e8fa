package forecast_service

import (
	"context"
	"hash/fnv"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RunLocker guards the per-key serialization precondition: Replace is
// delete-then-insert, so two concurrent runs for one key can corrupt its
// record set. The HTTP layer acquires a lock for the run key before
// invoking the engine and releases it when the run finishes either way.
type RunLocker interface {
	// TryAcquire returns a release func when the key was free, or
	// (nil, false, nil) when another run currently holds it.
	TryAcquire(ctx context.Context, key string) (release func(), acquired bool, err error)
}

// PgAdvisoryRunLock serializes runs through Postgres advisory locks, so
// the guarantee holds across every replica pointed at the same database.
// The session holding the lock is pinned to one pooled connection until
// release.
type PgAdvisoryRunLock struct {
	pool *pgxpool.Pool
}

func NewPgAdvisoryRunLock(pool *pgxpool.Pool) *PgAdvisoryRunLock {
	return &PgAdvisoryRunLock{pool: pool}
}

func (l *PgAdvisoryRunLock) TryAcquire(ctx context.Context, key string) (func(), bool, error) {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return nil, false, err
	}

	var locked bool
	if err := conn.QueryRow(ctx, "SELECT pg_try_advisory_lock($1)", lockID(key)).Scan(&locked); err != nil {
		conn.Release()
		return nil, false, err
	}
	if !locked {
		conn.Release()
		return nil, false, nil
	}

	release := func() {
		// Unlock on the pinned connection; dropping the connection would
		// release the advisory lock anyway, but do it explicitly.
		_, _ = conn.Exec(context.Background(), "SELECT pg_advisory_unlock($1)", lockID(key))
		conn.Release()
	}
	return release, true, nil
}

// lockID folds a run key into the bigint namespace advisory locks use.
func lockID(key string) int64 {
	h := fnv.New64a()
	h.Write([]byte(key))
	return int64(h.Sum64())
}

// MemoryRunLock is the in-process fallback for tests and single-instance
// deployments without a database-backed lock.
type MemoryRunLock struct {
	mu   sync.Mutex
	held map[string]bool
}

func NewMemoryRunLock() *MemoryRunLock {
	return &MemoryRunLock{held: make(map[string]bool)}
}

func (l *MemoryRunLock) TryAcquire(_ context.Context, key string) (func(), bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[key] {
		return nil, false, nil
	}
	l.held[key] = true
	release := func() {
		l.mu.Lock()
		delete(l.held, key)
		l.mu.Unlock()
	}
	return release, true, nil
}
