package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/akif5298/flowstate/core/model"
)

// CalendarSource lists pre-committed events from the calendar_events table.
type CalendarSource struct {
	db *sql.DB
}

// NewCalendarSource creates an event source over the shared pool.
func NewCalendarSource(db *sql.DB) *CalendarSource {
	return &CalendarSource{db: db}
}

// Events returns the user's events intersecting [start, end) ordered by
// start time.
func (s *CalendarSource) Events(ctx context.Context, userID string, start, end time.Time) ([]model.ExistingEvent, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT title, start_time, end_time
		 FROM calendar_events
		 WHERE user_id = $1 AND start_time < $3 AND end_time > $2
		 ORDER BY start_time`,
		userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("query calendar events: %w", err)
	}
	defer rows.Close()

	var out []model.ExistingEvent
	for rows.Next() {
		var ev model.ExistingEvent
		if err := rows.Scan(&ev.Title, &ev.StartTime, &ev.EndTime); err != nil {
			return nil, fmt.Errorf("scan calendar event: %w", err)
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}
