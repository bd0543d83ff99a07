package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// Event is one row of the append-only activity log. The log is for
// reporting only; it is never replayed into learner state.
type Event struct {
	ID        int64
	SessionID string
	CourseID  string
	Kind      string
	CardIndex int
	Title     string
	Detail    map[string]any
	At        time.Time
}

// EventRepo appends and queries activity-log events.
type EventRepo struct {
	db *sql.DB
}

// Append writes a new event. A zero At is stamped with the current time.
func (r *EventRepo) Append(ctx context.Context, e Event) error {
	if e.At.IsZero() {
		e.At = time.Now()
	}
	detail := []byte("{}")
	if len(e.Detail) > 0 {
		b, err := json.Marshal(e.Detail)
		if err != nil {
			return fmt.Errorf("marshal event detail: %w", err)
		}
		detail = b
	}

	query, args := builder().
		Insert("flow_events").
		Columns("session_id", "course_id", "kind", "card_index", "title", "detail", "created_at").
		Values(e.SessionID, e.CourseID, e.Kind, e.CardIndex, e.Title, string(detail), e.At.UnixMilli()).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("append %s event: %w", e.Kind, err)
	}
	return nil
}

// Recent returns up to limit events of kind for a course, newest first.
// An empty kind matches every kind. limit <= 0 means unlimited.
func (r *EventRepo) Recent(ctx context.Context, courseID, kind string, limit int) ([]Event, error) {
	pred := entsql.EQ("course_id", courseID)
	if kind != "" {
		pred = entsql.And(pred, entsql.EQ("kind", kind))
	}
	sel := builder().
		Select("id", "session_id", "course_id", "kind", "card_index", "title", "detail", "created_at").
		From(entsql.Table("flow_events")).
		Where(pred).
		OrderBy(entsql.Desc("id"))
	if limit > 0 {
		sel = sel.Limit(limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var (
			e      Event
			detail string
			ms     int64
		)
		if err := rows.Scan(&e.ID, &e.SessionID, &e.CourseID, &e.Kind, &e.CardIndex, &e.Title, &detail, &ms); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		if detail != "" && detail != "{}" {
			if err := json.Unmarshal([]byte(detail), &e.Detail); err != nil {
				return nil, fmt.Errorf("decode event %d detail: %w", e.ID, err)
			}
		}
		e.At = time.UnixMilli(ms)
		out = append(out, e)
	}
	return out, rows.Err()
}

// SessionLog stamps events with one launch's session and course ids.
// Write failures are logged, never returned: the activity log must not
// interrupt the learner.
type SessionLog struct {
	repo      *EventRepo
	courseID  string
	sessionID string
	logger    *slog.Logger
}

// NewSessionLog creates a SessionLog. A nil logger uses slog.Default().
func NewSessionLog(repo *EventRepo, courseID, sessionID string, logger *slog.Logger) *SessionLog {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionLog{repo: repo, courseID: courseID, sessionID: sessionID, logger: logger}
}

// SessionID returns the id stamped on every event.
func (l *SessionLog) SessionID() string {
	return l.sessionID
}

// Record appends an event for the current session.
func (l *SessionLog) Record(ctx context.Context, kind string, cardIndex int, title string, detail map[string]any) {
	err := l.repo.Append(ctx, Event{
		SessionID: l.sessionID,
		CourseID:  l.courseID,
		Kind:      kind,
		CardIndex: cardIndex,
		Title:     title,
		Detail:    detail,
	})
	if err != nil {
		l.logger.Warn("activity log write failed", "kind", kind, "error", err)
	}
}
