package gamification

import (
	"context"
	"errors"
	"time"

	"github.com/carboloom/carboloom/internal/content"
	"github.com/carboloom/carboloom/internal/habits"
)

var (
	// ErrNotFound indicates a missing record or custom challenge.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput signals a request that failed validation.
	ErrInvalidInput = errors.New("invalid input")
)

// BasePoints is paid for every submitted log.
const BasePoints = 10

// Badge is a static catalog entry.
type Badge struct {
	ID          string `json:"id" firestore:"id"`
	Name        string `json:"name" firestore:"name"`
	Description string `json:"description" firestore:"description"`
	Icon        string `json:"icon" firestore:"icon"`
}

// ChallengeType selects the progress rule.
type ChallengeType string

const (
	// ChallengeStreak counts consecutive qualifying days.
	ChallengeStreak ChallengeType = "streak"
	// ChallengeDaily accumulates within one day and resets the next.
	ChallengeDaily ChallengeType = "daily"
)

// Challenge is a predefined or user-owned goal.
type Challenge struct {
	ID          string        `json:"id" firestore:"id"`
	Name        string        `json:"name" firestore:"name" validate:"required,max=80"`
	Description string        `json:"description" firestore:"description" validate:"max=280"`
	Icon        string        `json:"icon" firestore:"icon"`
	Goal        float64       `json:"goal" firestore:"goal" validate:"gt=0"`
	Unit        string        `json:"unit" firestore:"unit" validate:"required,max=20"`
	Type        ChallengeType `json:"type" firestore:"type" validate:"oneof=streak daily"`
	Reward      int           `json:"reward" firestore:"reward" validate:"gte=0"`
	IsCustom    bool          `json:"isCustom" firestore:"isCustom"`
	// BadgeID is granted together with the reward, if set.
	BadgeID string `json:"badgeId,omitempty" firestore:"badgeId,omitempty"`
}

// ChallengeState is a user's progress on one challenge.
type ChallengeState struct {
	Progress     float64 `json:"progress" firestore:"progress"`
	LastUpdated  string  `json:"lastUpdated" firestore:"lastUpdated"`
	RewardedGoal float64 `json:"rewardedGoal" firestore:"rewardedGoal"`
}

// Completed reports whether the goal was reached and already paid.
func (s ChallengeState) Completed(goal float64) bool {
	return s.Progress >= goal && s.RewardedGoal >= goal
}

// QuizProgress is an unsubmitted attempt that can be resumed.
type QuizProgress struct {
	CurrentQuestionIndex int                `json:"currentQuestionIndex" firestore:"currentQuestionIndex" validate:"gte=0"`
	SelectedAnswers      map[string]int     `json:"selectedAnswers" firestore:"selectedAnswers"`
	ShuffledQuestions    []content.Question `json:"shuffledQuestions" firestore:"shuffledQuestions"`
}

// QuizState tracks a user's attempts on one quiz.
type QuizState struct {
	Attempts       int           `json:"attempts" firestore:"attempts"`
	HighestScore   int           `json:"highestScore" firestore:"highestScore"`
	TotalQuestions int           `json:"totalQuestions" firestore:"totalQuestions"`
	LastAttempted  string        `json:"lastAttempted" firestore:"lastAttempted"`
	Progress       *QuizProgress `json:"progress,omitempty" firestore:"progress,omitempty"`
}

// Data is the persisted per-user gamification record.
type Data struct {
	Points          int                       `json:"points" firestore:"points"`
	Badges          []Badge                   `json:"badges" firestore:"badges"`
	ChallengeStates map[string]ChallengeState `json:"challengeStates" firestore:"challengeStates"`
	QuizStates      map[string]QuizState      `json:"quizStates" firestore:"quizStates"`
}

// NewData returns the zeroed record a user starts with.
func NewData() *Data {
	return &Data{
		Badges:          []Badge{},
		ChallengeStates: map[string]ChallengeState{},
		QuizStates:      map[string]QuizState{},
	}
}

// normalize repairs nil collections read from storage.
func (d *Data) normalize() *Data {
	if d.Badges == nil {
		d.Badges = []Badge{}
	}
	if d.ChallengeStates == nil {
		d.ChallengeStates = map[string]ChallengeState{}
	}
	if d.QuizStates == nil {
		d.QuizStates = map[string]QuizState{}
	}
	return d
}

// HasBadge reports whether id is already earned.
func (d *Data) HasBadge(id string) bool {
	for _, b := range d.Badges {
		if b.ID == id {
			return true
		}
	}
	return false
}

// AddBadges appends badges not yet held, preserving earn order.
func (d *Data) AddBadges(badges ...Badge) []Badge {
	var added []Badge
	for _, b := range badges {
		if d.HasBadge(b.ID) {
			continue
		}
		d.Badges = append(d.Badges, b)
		added = append(added, b)
	}
	return added
}

func (d *Data) clone() *Data {
	out := &Data{
		Points:          d.Points,
		Badges:          append([]Badge{}, d.Badges...),
		ChallengeStates: make(map[string]ChallengeState, len(d.ChallengeStates)),
		QuizStates:      make(map[string]QuizState, len(d.QuizStates)),
	}
	for k, v := range d.ChallengeStates {
		out.ChallengeStates[k] = v
	}
	for k, v := range d.QuizStates {
		out.QuizStates[k] = v
	}
	return out
}

// LogAward describes what one log submission earned.
type LogAward struct {
	Points          int      `json:"points"`
	NewBadges       []Badge  `json:"newBadges"`
	Completed       []string `json:"completedChallenges"`
	SkippedOutdated []string `json:"skippedChallenges,omitempty"`
}

// Repository stores one gamification record per user.
type Repository interface {
	// Get returns ErrNotFound when the user has no record yet.
	Get(ctx context.Context, userID string) (*Data, error)
	Put(ctx context.Context, userID string, data *Data) error
}

// CustomChallengeRepository stores user-owned challenge definitions.
type CustomChallengeRepository interface {
	List(ctx context.Context, userID string) ([]Challenge, error)
	Get(ctx context.Context, userID, challengeID string) (Challenge, error)
	Put(ctx context.Context, userID string, challenge Challenge) error
	Delete(ctx context.Context, userID, challengeID string) error
}

// Clock abstracts time.Now for deterministic tests.
type Clock interface {
	Now() time.Time
}

// IDGenerator produces identifiers for new custom challenges.
type IDGenerator interface {
	NewID() string
}

// CustomChallengeInput is the editable part of a custom challenge.
type CustomChallengeInput struct {
	Name        string        `json:"name" validate:"required,max=80"`
	Description string        `json:"description" validate:"max=280"`
	Icon        string        `json:"icon" validate:"max=16"`
	Goal        float64       `json:"goal" validate:"gt=0"`
	Unit        string        `json:"unit" validate:"required,max=20"`
	Type        ChallengeType `json:"type" validate:"oneof=streak daily"`
	Reward      int           `json:"reward" validate:"gte=0,lte=1000"`
}

// Service is the gamification store: it owns every write to a user's record.
type Service interface {
	Init(ctx context.Context, userID string) (*Data, error)
	Get(ctx context.Context, userID string) (*Data, error)
	ProcessLogAndAward(ctx context.Context, userID string, newLog habits.LogEntry, allLogs []habits.LogEntry) (*Data, *LogAward, error)
	ProcessCustomChallengeUpdate(ctx context.Context, userID string, challenge Challenge, today string, value float64) (*Data, error)
	ProcessQuizCompletion(ctx context.Context, userID string, quiz content.Quiz, score int) (*Data, error)
	SaveQuizProgress(ctx context.Context, userID, quizID string, progress QuizProgress) (*Data, error)
	ClearQuizProgressAndRestart(ctx context.Context, userID, quizID string) (*Data, error)

	Badges() []Badge
	Challenges() []Challenge

	ListCustomChallenges(ctx context.Context, userID string) ([]Challenge, error)
	CreateCustomChallenge(ctx context.Context, userID string, input CustomChallengeInput) (Challenge, error)
	UpdateCustomChallenge(ctx context.Context, userID, challengeID string, input CustomChallengeInput) (Challenge, error)
	DeleteCustomChallenge(ctx context.Context, userID, challengeID string) error
	RecordCustomProgress(ctx context.Context, userID, challengeID, date string, value float64) (*Data, error)
}
