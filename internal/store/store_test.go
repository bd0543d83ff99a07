package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/abhisek/coursewalk/internal/progress"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is not checked here.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		if err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got); err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestProgressRepo_GetMissing(t *testing.T) {
	repo := openTestStore(t).ProgressRepo()

	_, err := repo.Get(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if !errors.Is(err, progress.ErrNotFound) {
		t.Fatal("store.ErrNotFound must match progress.ErrNotFound")
	}
}

func TestProgressRepo_PutOverwrites(t *testing.T) {
	repo := openTestStore(t).ProgressRepo()
	ctx := context.Background()

	if err := repo.Put(ctx, "k", []byte(`first`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := repo.Put(ctx, "k", []byte(`second`)); err != nil {
		t.Fatalf("put again: %v", err)
	}

	got, err := repo.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != "second" {
		t.Errorf("payload = %q, want %q", got, "second")
	}

	var rows int
	if err := openRowCount(repo, &rows); err != nil {
		t.Fatalf("count: %v", err)
	}
	if rows != 1 {
		t.Errorf("rows = %d, want 1 (last write wins)", rows)
	}
}

func openRowCount(repo *ProgressRepo, n *int) error {
	return repo.db.QueryRow("SELECT COUNT(*) FROM progress").Scan(n)
}

func TestProgressRepo_DeleteAndUpdatedAt(t *testing.T) {
	repo := openTestStore(t).ProgressRepo()
	ctx := context.Background()
	stamp := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return stamp }

	if err := repo.Put(ctx, "k", []byte(`{}`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	at, err := repo.UpdatedAt(ctx, "k")
	if err != nil {
		t.Fatalf("updated at: %v", err)
	}
	if !at.Equal(stamp) {
		t.Errorf("updated at = %v, want %v", at, stamp)
	}

	if err := repo.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Errorf("after delete err = %v, want ErrNotFound", err)
	}
	// Deleting a missing key is not an error.
	if err := repo.Delete(ctx, "k"); err != nil {
		t.Errorf("delete missing: %v", err)
	}
}

func TestProgressRepo_BacksKeeper(t *testing.T) {
	ctx := context.Background()
	k := progress.NewKeeper(openTestStore(t).ProgressRepo(), "course/x", nil)

	want := progress.Record{CurrentIndex: 4, ViewedCardIndexes: []int{0, 1, 2, 4}}
	if err := k.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, found := k.Load(ctx, 9)
	if !found {
		t.Fatal("expected stored record")
	}
	if got.CurrentIndex != 4 || len(got.ViewedCardIndexes) != 4 {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestEventRepo_AppendAndRecent(t *testing.T) {
	repo := openTestStore(t).EventRepo()
	ctx := context.Background()
	base := time.Now().Truncate(time.Millisecond)

	events := []Event{
		{SessionID: "s1", CourseID: "c", Kind: "card_viewed", CardIndex: 2, Title: "A", At: base},
		{SessionID: "s1", CourseID: "c", Kind: "assessment_completed", CardIndex: 6, Title: "Final",
			Detail: map[string]any{"score": 80, "passed": true}, At: base.Add(time.Second)},
		{SessionID: "s2", CourseID: "other", Kind: "assessment_completed", CardIndex: 6, Title: "Final", At: base},
		{SessionID: "s2", CourseID: "c", Kind: "assessment_completed", CardIndex: 6, Title: "Final",
			Detail: map[string]any{"score": 60, "passed": false}, At: base.Add(2 * time.Second)},
	}
	for _, e := range events {
		if err := repo.Append(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := repo.Recent(ctx, "c", "assessment_completed", 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].SessionID != "s2" {
		t.Errorf("newest first: got session %q, want s2", got[0].SessionID)
	}
	if score, _ := got[1].Detail["score"].(float64); score != 80 {
		t.Errorf("detail score = %v, want 80", got[1].Detail["score"])
	}
	if !got[1].At.Equal(base.Add(time.Second)) {
		t.Errorf("at = %v, want %v", got[1].At, base.Add(time.Second))
	}

	all, err := repo.Recent(ctx, "c", "", 0)
	if err != nil {
		t.Fatalf("recent all: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("len = %d, want 3", len(all))
	}

	limited, err := repo.Recent(ctx, "c", "", 1)
	if err != nil {
		t.Fatalf("recent limited: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("len = %d, want 1", len(limited))
	}
}

func TestSessionLog_Record(t *testing.T) {
	s := openTestStore(t)
	log := NewSessionLog(s.EventRepo(), "c", "session-1", nil)
	ctx := context.Background()

	log.Record(ctx, "challenge_submitted", 3, "Storing Data", map[string]any{"correct": true})

	got, err := s.EventRepo().Recent(ctx, "c", "challenge_submitted", 0)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 1 || got[0].SessionID != "session-1" || got[0].CardIndex != 3 {
		t.Fatalf("got %+v", got)
	}
}
