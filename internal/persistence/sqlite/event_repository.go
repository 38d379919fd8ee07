package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/campus-events/internal/event"
	"github.com/example/campus-events/internal/persistence"
)

const eventColumns = `id, title, event_date, event_time, category, location, image, attendance, rating, created_at, updated_at`

// EventRepository implements persistence.EventRepository using SQLite
type EventRepository struct {
	pool   *ConnectionPool
	mapper *ErrorMapper
}

// NewEventRepository creates a new SQLite event repository
func NewEventRepository(pool *ConnectionPool) *EventRepository {
	return &EventRepository{
		pool:   pool,
		mapper: NewErrorMapper(),
	}
}

// Open creates an in-memory database and returns a repository backed by it.
func Open(ctx context.Context) (*EventRepository, error) {
	pool, err := OpenMemory(ctx)
	if err != nil {
		return nil, err
	}
	return NewEventRepository(pool), nil
}

// Close discards the underlying database.
func (r *EventRepository) Close() error {
	return r.pool.Close()
}

// InsertEvent inserts a new event record
func (r *EventRepository) InsertEvent(ctx context.Context, rec event.Record) error {
	query := `INSERT INTO events (` + eventColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.pool.db.ExecContext(ctx, query,
		rec.ID,
		rec.Title,
		rec.Date.String(),
		rec.Time.String(),
		string(rec.Category),
		rec.Location,
		rec.Image,
		rec.Attendance,
		nullFloat(rec.Rating),
		formatTime(rec.CreatedAt),
		nullTime(rec.UpdatedAt),
	)
	if err != nil {
		return r.mapper.MapError(err)
	}
	return nil
}

// ReplaceEvent overwrites every column of an existing event record. The
// insertion sequence is untouched so the record keeps its position.
func (r *EventRepository) ReplaceEvent(ctx context.Context, rec event.Record) error {
	return r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		query := `
			UPDATE events
			SET title = ?, event_date = ?, event_time = ?, category = ?, location = ?,
			    image = ?, attendance = ?, rating = ?, created_at = ?, updated_at = ?
			WHERE id = ?
		`
		result, err := tx.ExecContext(ctx, query,
			rec.Title,
			rec.Date.String(),
			rec.Time.String(),
			string(rec.Category),
			rec.Location,
			rec.Image,
			rec.Attendance,
			nullFloat(rec.Rating),
			formatTime(rec.CreatedAt),
			nullTime(rec.UpdatedAt),
			rec.ID,
		)
		if err != nil {
			return r.mapper.MapError(err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read affected rows: %w", err)
		}
		if affected == 0 {
			return persistence.ErrNotFound
		}
		return nil
	})
}

// GetEvent retrieves an event record by ID
func (r *EventRepository) GetEvent(ctx context.Context, id string) (event.Record, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = ?`

	rec, err := scanEvent(r.pool.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return event.Record{}, r.mapper.MapError(err)
	}
	return rec, nil
}

// EventExists reports whether an event record with the ID is stored
func (r *EventRepository) EventExists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.pool.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM events WHERE id = ?)`, id).Scan(&exists)
	if err != nil {
		return false, r.mapper.MapError(err)
	}
	return exists, nil
}

// ListEvents returns every event record, most recently inserted first
func (r *EventRepository) ListEvents(ctx context.Context) ([]event.Record, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY seq DESC`

	rows, err := r.pool.db.QueryContext(ctx, query)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	records := make([]event.Record, 0)
	for rows.Next() {
		rec, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}
	return records, nil
}

// CountEvents returns the number of stored event records
func (r *EventRepository) CountEvents(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&count); err != nil {
		return 0, r.mapper.MapError(err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (event.Record, error) {
	var (
		rec       event.Record
		date      string
		timeOfDay string
		category  string
		rating    sql.NullFloat64
		createdAt string
		updatedAt sql.NullString
	)

	if err := row.Scan(
		&rec.ID,
		&rec.Title,
		&date,
		&timeOfDay,
		&category,
		&rec.Location,
		&rec.Image,
		&rec.Attendance,
		&rating,
		&createdAt,
		&updatedAt,
	); err != nil {
		return event.Record{}, err
	}

	var err error
	if date != "" {
		if rec.Date, err = event.ParseDate(date); err != nil {
			return event.Record{}, fmt.Errorf("sqlite: event %s: %w", rec.ID, err)
		}
	}
	if rec.Time, err = event.ParseTimeOfDay(timeOfDay); err != nil {
		return event.Record{}, fmt.Errorf("sqlite: event %s: %w", rec.ID, err)
	}
	rec.Category = event.Category(category)
	if rating.Valid {
		rec.Rating = event.Float(rating.Float64)
	}
	if rec.CreatedAt, err = parseTime(createdAt); err != nil {
		return event.Record{}, fmt.Errorf("sqlite: event %s created_at: %w", rec.ID, err)
	}
	if updatedAt.Valid {
		updated, err := parseTime(updatedAt.String)
		if err != nil {
			return event.Record{}, fmt.Errorf("sqlite: event %s updated_at: %w", rec.ID, err)
		}
		rec.UpdatedAt = &updated
	}

	return rec, nil
}

// formatTime keeps the clock's UTC offset so reads return the same wall time
// the memory backend would.
func formatTime(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

func parseTime(value string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, value)
}

func nullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: formatTime(*t), Valid: true}
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
