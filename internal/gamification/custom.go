package gamification

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/carboloom/carboloom/internal/habits"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func (s *service) ListCustomChallenges(ctx context.Context, userID string) ([]Challenge, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: missing user id", ErrInvalidInput)
	}
	list, err := s.customs.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (s *service) CreateCustomChallenge(ctx context.Context, userID string, input CustomChallengeInput) (Challenge, error) {
	if strings.TrimSpace(userID) == "" {
		return Challenge{}, fmt.Errorf("%w: missing user id", ErrInvalidInput)
	}
	ch, err := s.fromInput(input)
	if err != nil {
		return Challenge{}, err
	}
	ch.ID = customIDPrefix + s.ids.NewID()
	if err := s.customs.Put(ctx, userID, ch); err != nil {
		return Challenge{}, err
	}
	s.logger.InfoContext(ctx, "custom challenge created", slog.String("userId", userID), slog.String("challengeId", ch.ID))
	return ch, nil
}

func (s *service) UpdateCustomChallenge(ctx context.Context, userID, challengeID string, input CustomChallengeInput) (Challenge, error) {
	if _, err := s.customs.Get(ctx, userID, challengeID); err != nil {
		return Challenge{}, err
	}
	ch, err := s.fromInput(input)
	if err != nil {
		return Challenge{}, err
	}
	ch.ID = challengeID
	if err := s.customs.Put(ctx, userID, ch); err != nil {
		return Challenge{}, err
	}
	return ch, nil
}

func (s *service) DeleteCustomChallenge(ctx context.Context, userID, challengeID string) error {
	return s.customs.Delete(ctx, userID, challengeID)
}

// RecordCustomProgress applies value to a stored custom challenge. An empty
// date means today.
func (s *service) RecordCustomProgress(ctx context.Context, userID, challengeID, date string, value float64) (*Data, error) {
	ch, err := s.customs.Get(ctx, userID, challengeID)
	if err != nil {
		return nil, err
	}
	if date == "" {
		date = s.today()
	}
	if _, err := habits.ParseDate(date); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return s.ProcessCustomChallengeUpdate(ctx, userID, ch, date, value)
}

func (s *service) fromInput(input CustomChallengeInput) (Challenge, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Unit = strings.TrimSpace(input.Unit)
	if err := s.validate.Struct(input); err != nil {
		return Challenge{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	icon := input.Icon
	if icon == "" {
		icon = "🎯"
	}
	return Challenge{
		Name:        titleCase(input.Name),
		Description: strings.TrimSpace(input.Description),
		Icon:        icon,
		Goal:        input.Goal,
		Unit:        input.Unit,
		Type:        input.Type,
		Reward:      input.Reward,
		IsCustom:    true,
	}, nil
}

// titleCase capitalises each word, leaving existing capitals alone.
// A Caser is not safe for concurrent use, so one is built per call.
func titleCase(name string) string {
	return cases.Title(language.English, cases.NoLower).String(name)
}
