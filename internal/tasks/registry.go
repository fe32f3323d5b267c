package tasks

import (
	"database/sql"
	"fmt"
	"sync"
)

// RunRegistry serializes migration runs per resolved user identity. The
// check-and-set in TryAcquire is atomic: under contention for one user,
// exactly one caller is granted.
//
// Entries are never expired. A process crash while a run is pending leaves
// that user denied until the backing store is reset; adding a lease is a
// deliberate non-feature here.
type RunRegistry interface {
	// TryAcquire marks a run pending for userID and reports whether the
	// caller won the slot.
	TryAcquire(userID string) (bool, error)

	// Release clears the pending flag. The entry itself is kept.
	Release(userID string) error
}

// MemoryRegistry keeps the run guard in process memory. Suitable for a
// single-process deployment.
type MemoryRegistry struct {
	mu      sync.Mutex
	pending map[string]bool
}

// NewMemoryRegistry creates an empty in-memory registry.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{pending: make(map[string]bool)}
}

func (r *MemoryRegistry) TryAcquire(userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pending[userID] {
		return false, nil
	}
	r.pending[userID] = true
	return true, nil
}

func (r *MemoryRegistry) Release(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Entries accumulate for the process lifetime; only the flag is cleared.
	r.pending[userID] = false
	return nil
}

// SQLiteRegistry keeps the run guard in a SQLite table so several processes
// sharing the database observe the same guard. The contract is identical to
// [MemoryRegistry]: atomic check-and-set, no expiry.
type SQLiteRegistry struct {
	db *sql.DB
}

const registrySchema = `
CREATE TABLE IF NOT EXISTS migration_runs (
	user_id    TEXT PRIMARY KEY,
	pending    INTEGER NOT NULL DEFAULT 0,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

// NewSQLiteRegistry creates a registry backed by db, ensuring its table exists.
func NewSQLiteRegistry(db *sql.DB) (*SQLiteRegistry, error) {
	if _, err := db.Exec(registrySchema); err != nil {
		return nil, fmt.Errorf("failed to create registry table: %w", err)
	}
	return &SQLiteRegistry{db: db}, nil
}

func (r *SQLiteRegistry) TryAcquire(userID string) (bool, error) {
	// The conditional UPSERT is a single statement, so the read-then-set is
	// atomic even across processes.
	res, err := r.db.Exec(`
		INSERT INTO migration_runs (user_id, pending) VALUES (?, 1)
		ON CONFLICT(user_id) DO UPDATE
		SET pending = 1, updated_at = CURRENT_TIMESTAMP
		WHERE pending = 0`, userID)
	if err != nil {
		return false, fmt.Errorf("failed to acquire run slot: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read acquire result: %w", err)
	}

	return affected == 1, nil
}

func (r *SQLiteRegistry) Release(userID string) error {
	_, err := r.db.Exec(`
		UPDATE migration_runs
		SET pending = 0, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("failed to release run slot: %w", err)
	}
	return nil
}
