package activity

import (
	"context"
	"errors"

	"github.com/carboloom/carboloom/internal/habits"
)

var (
	// ErrNotFound indicates no log exists for the requested date.
	ErrNotFound = errors.New("log not found")
	// ErrInvalidInput signals a rejected submission.
	ErrInvalidInput = errors.New("invalid input")
)

// Repository persists one LogEntry per user per date.
type Repository interface {
	// List returns every log for the user ordered by ascending date.
	List(ctx context.Context, userID string) ([]habits.LogEntry, error)
	Get(ctx context.Context, userID, date string) (habits.LogEntry, error)
	// Upsert replaces the log stored for entry.Date, if any.
	Upsert(ctx context.Context, userID string, entry habits.LogEntry) error
}

// Service owns log submission.
type Service interface {
	// SubmitLog saves habits as the user's log for date and returns the full,
	// date-sorted log list.
	SubmitLog(ctx context.Context, userID, date string, h habits.DailyHabits) ([]habits.LogEntry, error)
	ListLogs(ctx context.Context, userID string) ([]habits.LogEntry, error)
	GetLog(ctx context.Context, userID, date string) (habits.LogEntry, error)
}
