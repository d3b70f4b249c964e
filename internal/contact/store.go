package contact

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ziadkadry99/craftburger/internal/db"
)

// Store persists submission outcomes.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Log inserts an outcome record. If rec.ID is empty a UUID is generated.
func (s *Store) Log(ctx context.Context, rec Record) (Record, error) {
	if !rec.State.Terminal() {
		return rec, fmt.Errorf("logging submission: state %q is not terminal", rec.State)
	}
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO contact_submissions (id, client_id, state, http_status, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.ClientID,
		string(rec.State),
		rec.HTTPStatus,
		rec.Error,
		rec.CreatedAt.UTC().Format(time.DateTime),
	)
	if err != nil {
		return rec, fmt.Errorf("inserting submission record: %w", err)
	}
	return rec, nil
}

// QueryFilter controls which records List returns.
type QueryFilter struct {
	State State
	Since *time.Time
	Limit int
}

// List returns records newest first.
func (s *Store) List(ctx context.Context, filter QueryFilter) ([]Record, error) {
	query := "SELECT id, client_id, state, http_status, error, created_at FROM contact_submissions WHERE 1=1"
	var args []any
	if filter.State != "" {
		query += " AND state = ?"
		args = append(args, string(filter.State))
	}
	if filter.Since != nil {
		query += " AND created_at >= ?"
		args = append(args, filter.Since.UTC().Format(time.DateTime))
	}
	query += " ORDER BY created_at DESC, rowid DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying submission records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

// Stats counts records per terminal state.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var (
		st   Stats
		last sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN state = 'success' THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN state = 'error' THEN 1 ELSE 0 END), 0),
		       MAX(created_at)
		FROM contact_submissions`).Scan(&st.Total, &st.Success, &st.Error, &last)
	if err != nil {
		return Stats{}, fmt.Errorf("counting submission records: %w", err)
	}
	if last.Valid {
		if t, ok := parseTime(last.String); ok {
			st.Last = &t
		}
	}
	return st, nil
}

// DeleteBefore removes records older than before and returns how many.
func (s *Store) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM contact_submissions WHERE created_at < ?",
		before.UTC().Format(time.DateTime),
	)
	if err != nil {
		return 0, fmt.Errorf("deleting old submission records: %w", err)
	}
	return res.RowsAffected()
}

// scanner is implemented by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (*Record, error) {
	var (
		rec   Record
		state string
		ts    string
	)
	if err := sc.Scan(&rec.ID, &rec.ClientID, &state, &rec.HTTPStatus, &rec.Error, &ts); err != nil {
		return nil, err
	}
	rec.State = State(state)
	if t, ok := parseTime(ts); ok {
		rec.CreatedAt = t
	}
	return &rec, nil
}

func parseTime(s string) (time.Time, bool) {
	for _, layout := range []string{time.DateTime, time.RFC3339Nano, "2006-01-02T15:04:05Z"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
