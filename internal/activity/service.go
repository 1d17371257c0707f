package activity

import (
	"context"
	"fmt"
	"strings"

	"github.com/carboloom/carboloom/internal/emission"
	"github.com/carboloom/carboloom/internal/habits"
	"github.com/go-playground/validator/v10"
)

type service struct {
	repo     Repository
	model    *emission.Model
	validate *validator.Validate
}

// NewService returns a log service that stamps travel emissions with model.
func NewService(repo Repository, model *emission.Model) Service {
	return &service{repo: repo, model: model, validate: validator.New()}
}

func (s *service) SubmitLog(ctx context.Context, userID, date string, h habits.DailyHabits) ([]habits.LogEntry, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: missing user id", ErrInvalidInput)
	}

	entry := habits.LogEntry{Date: strings.TrimSpace(date), Habits: h.Clone()}
	if err := s.validate.Struct(entry); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if _, err := habits.ParseDate(entry.Date); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	entry.Habits.Travel = s.model.StampTravel(entry.Habits.Travel)

	if err := s.repo.Upsert(ctx, userID, entry); err != nil {
		return nil, err
	}
	return s.ListLogs(ctx, userID)
}

func (s *service) ListLogs(ctx context.Context, userID string) ([]habits.LogEntry, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: missing user id", ErrInvalidInput)
	}
	logs, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	habits.SortByDate(logs)
	return logs, nil
}

func (s *service) GetLog(ctx context.Context, userID, date string) (habits.LogEntry, error) {
	if _, err := habits.ParseDate(date); err != nil {
		return habits.LogEntry{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return s.repo.Get(ctx, userID, date)
}
