package gamification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/carboloom/carboloom/internal/content"
	"github.com/carboloom/carboloom/internal/habits"
	"github.com/go-playground/validator/v10"
)

// ErrOutdated is returned when a custom update is dated before the challenge's last update.
var ErrOutdated = errors.New("update predates challenge progress")

const customIDPrefix = "custom_"

type service struct {
	repo      Repository
	customs   CustomChallengeRepository
	engine    *Engine
	evaluator *BadgeEvaluator
	clock     Clock
	ids       IDGenerator
	loc       *time.Location
	logger    *slog.Logger
	validate  *validator.Validate
}

// Option customises the service.
type Option func(*service)

func WithClock(c Clock) Option { return func(s *service) { s.clock = c } }

func WithIDGenerator(g IDGenerator) Option { return func(s *service) { s.ids = g } }

// WithLocation sets the timezone whose calendar date is "today".
func WithLocation(loc *time.Location) Option { return func(s *service) { s.loc = loc } }

func WithLogger(l *slog.Logger) Option { return func(s *service) { s.logger = l } }

// NewService wires the gamification store.
func NewService(repo Repository, customs CustomChallengeRepository, engine *Engine, evaluator *BadgeEvaluator, opts ...Option) Service {
	s := &service{
		repo:      repo,
		customs:   customs,
		engine:    engine,
		evaluator: evaluator,
		clock:     NewSystemClock(),
		ids:       NewUUIDGenerator(),
		loc:       time.UTC,
		logger:    slog.New(slog.DiscardHandler),
		validate:  validator.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) today() string {
	return habits.Today(s.clock.Now(), s.loc)
}

func (s *service) load(ctx context.Context, userID string) (*Data, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: missing user id", ErrInvalidInput)
	}
	data, err := s.repo.Get(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return NewData(), nil
	}
	if err != nil {
		return nil, err
	}
	return data.normalize(), nil
}

func (s *service) Init(ctx context.Context, userID string) (*Data, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: missing user id", ErrInvalidInput)
	}
	existing, err := s.repo.Get(ctx, userID)
	if err == nil {
		return existing.normalize(), nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	data := NewData()
	if err := s.repo.Put(ctx, userID, data); err != nil {
		return nil, err
	}
	return data, nil
}

func (s *service) Get(ctx context.Context, userID string) (*Data, error) {
	return s.load(ctx, userID)
}

func (s *service) ProcessLogAndAward(ctx context.Context, userID string, newLog habits.LogEntry, allLogs []habits.LogEntry) (*Data, *LogAward, error) {
	current, err := s.load(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	outcome := s.engine.ProcessLog(current.ChallengeStates, newLog)
	earned := s.evaluator.Evaluate(allLogs)

	next := current.clone()
	next.Points += BasePoints + outcome.Points
	next.ChallengeStates = outcome.States
	added := next.AddBadges(append(earned, outcome.Badges...)...)

	if err := s.repo.Put(ctx, userID, next); err != nil {
		return nil, nil, err
	}

	award := &LogAward{
		Points:          BasePoints + outcome.Points,
		NewBadges:       added,
		Completed:       outcome.Completed,
		SkippedOutdated: outcome.Outdated,
	}
	if award.NewBadges == nil {
		award.NewBadges = []Badge{}
	}
	if award.Completed == nil {
		award.Completed = []string{}
	}
	s.logger.InfoContext(ctx, "log processed",
		slog.String("userId", userID),
		slog.String("date", newLog.Date),
		slog.Int("pointsAwarded", award.Points),
		slog.Int("newBadges", len(added)),
	)
	return next, award, nil
}

func (s *service) ProcessCustomChallengeUpdate(ctx context.Context, userID string, challenge Challenge, today string, value float64) (*Data, error) {
	current, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	outcome, err := s.engine.ProcessCustom(current.ChallengeStates, challenge, today, value)
	if err != nil {
		return nil, err
	}
	if len(outcome.Outdated) > 0 {
		return nil, fmt.Errorf("%w: %s last updated %s", ErrOutdated, challenge.ID, current.ChallengeStates[challenge.ID].LastUpdated)
	}

	next := current.clone()
	next.Points += outcome.Points
	next.ChallengeStates = outcome.States
	next.AddBadges(outcome.Badges...)

	if err := s.repo.Put(ctx, userID, next); err != nil {
		return nil, err
	}
	return next, nil
}

func (s *service) ProcessQuizCompletion(ctx context.Context, userID string, quiz content.Quiz, score int) (*Data, error) {
	current, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	next := current.clone()
	if err := completeQuiz(next, quiz, score, s.today()); err != nil {
		return nil, err
	}
	if err := s.repo.Put(ctx, userID, next); err != nil {
		return nil, err
	}
	return next, nil
}

func (s *service) SaveQuizProgress(ctx context.Context, userID, quizID string, progress QuizProgress) (*Data, error) {
	if err := s.validate.Struct(progress); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	current, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	next := current.clone()
	saveQuizProgress(next, quizID, progress)
	if err := s.repo.Put(ctx, userID, next); err != nil {
		return nil, err
	}
	return next, nil
}

func (s *service) ClearQuizProgressAndRestart(ctx context.Context, userID, quizID string) (*Data, error) {
	current, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	next := current.clone()
	if !clearQuizProgress(next, quizID) {
		return current, nil
	}
	if err := s.repo.Put(ctx, userID, next); err != nil {
		return nil, err
	}
	return next, nil
}

func (s *service) Badges() []Badge {
	return badgeDefinitions()
}

func (s *service) Challenges() []Challenge {
	return s.engine.Challenges()
}
