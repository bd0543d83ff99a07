package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/coursewalk/internal/progress"
)

// ProgressRepo stores progress blobs by key. Writes are last-write-wins.
type ProgressRepo struct {
	db  *sql.DB
	now func() time.Time
}

var _ progress.Repo = (*ProgressRepo)(nil)

func (r *ProgressRepo) Get(ctx context.Context, key string) ([]byte, error) {
	query, args := builder().
		Select("payload").
		From(entsql.Table("progress")).
		Where(entsql.EQ("record_key", key)).
		Query()

	var payload string
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&payload)
	if isNoRows(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query progress %q: %w", key, err)
	}
	return []byte(payload), nil
}

func (r *ProgressRepo) Put(ctx context.Context, key string, value []byte) error {
	query, args := builder().
		Insert("progress").
		Columns("record_key", "payload", "updated_at").
		Values(key, string(value), r.clock().UnixMilli()).
		OnConflict(
			entsql.ConflictColumns("record_key"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert progress %q: %w", key, err)
	}
	return nil
}

func (r *ProgressRepo) Delete(ctx context.Context, key string) error {
	query, args := builder().
		Delete("progress").
		Where(entsql.EQ("record_key", key)).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete progress %q: %w", key, err)
	}
	return nil
}

// UpdatedAt returns when key was last written.
func (r *ProgressRepo) UpdatedAt(ctx context.Context, key string) (time.Time, error) {
	query, args := builder().
		Select("updated_at").
		From(entsql.Table("progress")).
		Where(entsql.EQ("record_key", key)).
		Query()

	var ms int64
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&ms)
	if isNoRows(err) {
		return time.Time{}, ErrNotFound
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("query progress time %q: %w", key, err)
	}
	return time.UnixMilli(ms), nil
}

func (r *ProgressRepo) clock() time.Time {
	if r.now != nil {
		return r.now()
	}
	return time.Now()
}
