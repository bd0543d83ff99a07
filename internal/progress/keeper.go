package progress

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// ErrNotFound is returned by a Repo when no value is stored under a key.
var ErrNotFound = errors.New("progress not found")

// Repo is a key-value blob store.
type Repo interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Keeper reads and writes one progress record under a fixed key.
type Keeper struct {
	repo   Repo
	key    string
	logger *slog.Logger
}

// NewKeeper creates a Keeper. A nil logger uses slog.Default().
func NewKeeper(repo Repo, key string, logger *slog.Logger) *Keeper {
	if logger == nil {
		logger = slog.Default()
	}
	return &Keeper{repo: repo, key: key, logger: logger}
}

// Key returns the storage key.
func (k *Keeper) Key() string {
	return k.key
}

// Load restores the record for a sequence of cardCount cards. It never
// fails: a missing record yields a fresh one, a corrupt record is deleted
// and yields a fresh one, and out-of-range values are dropped. found
// reports whether a usable record was read.
func (k *Keeper) Load(ctx context.Context, cardCount int) (rec Record, found bool) {
	raw, err := k.repo.Get(ctx, k.key)
	if errors.Is(err, ErrNotFound) {
		return Record{}, false
	}
	if err != nil {
		k.logger.Warn("read progress failed, starting fresh", "key", k.key, "error", err)
		return Record{}, false
	}

	rec, err = Decode(raw)
	if err != nil {
		k.logger.Warn("discarding corrupt progress", "key", k.key, "error", err)
		if derr := k.repo.Delete(ctx, k.key); derr != nil {
			k.logger.Warn("delete corrupt progress failed", "key", k.key, "error", derr)
		}
		return Record{}, false
	}

	return Sanitize(rec, cardCount), true
}

// Peek reads the record without repairing it. Unlike Load it never deletes
// anything: a missing record returns ErrNotFound and a corrupt one an
// error wrapping ErrInvalidRecord.
func (k *Keeper) Peek(ctx context.Context, cardCount int) (Record, error) {
	raw, err := k.repo.Get(ctx, k.key)
	if err != nil {
		return Record{}, err
	}
	rec, err := Decode(raw)
	if err != nil {
		return Record{}, err
	}
	return Sanitize(rec, cardCount), nil
}

// Save overwrites the stored record.
func (k *Keeper) Save(ctx context.Context, rec Record) error {
	raw, err := Encode(rec)
	if err != nil {
		return err
	}
	if err := k.repo.Put(ctx, k.key, raw); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

// Reset deletes the stored record.
func (k *Keeper) Reset(ctx context.Context) error {
	if err := k.repo.Delete(ctx, k.key); err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}
	return nil
}
