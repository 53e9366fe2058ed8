package calendar

import (
	"context"
	"time"

	"github.com/akif5298/flowstate/core/model"
)

// EventSource lists a user's pre-committed calendar events for a time range.
// Events are immutable inputs; the optimizer carries them through unchanged.
type EventSource interface {
	Events(ctx context.Context, userID string, start, end time.Time) ([]model.ExistingEvent, error)
}
