package assistant

import (
	"context"
	"errors"

	"github.com/carboloom/carboloom/internal/habits"
)

// ErrUnavailable is returned when the model cannot serve a request. Callers
// should surface it as retryable.
var ErrUnavailable = errors.New("assistant unavailable")

// Suggestion is one eco tip.
type Suggestion struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// Source is a web page the model grounded its answer on.
type Source struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// GroundedResponse is a summary with its search sources.
type GroundedResponse struct {
	Summary string   `json:"summary"`
	Sources []Source `json:"sources"`
}

// PlantBasedSwap replaces red meat servings with a plant-based option.
type PlantBasedSwap struct {
	Title               string  `json:"title"`
	Description         string  `json:"description"`
	ReductionPercentage float64 `json:"reductionPercentage"`
}

// Habit is a suggested eco habit with its expected effort.
type Habit struct {
	Description  string `json:"description"`
	CO2Reduction string `json:"co2Reduction"`
	Commitment   string `json:"commitment"`
}

// HabitQuery describes the user for habit discovery.
type HabitQuery struct {
	Interests    string `json:"interests" validate:"required,max=500"`
	AgeGroup     string `json:"ageGroup" validate:"max=40"`
	DailyRoutine string `json:"dailyRoutine" validate:"max=1000"`
}

// ChatMessage is one turn in a conversation.
type ChatMessage struct {
	Role    string `json:"role" validate:"oneof=user assistant"`
	Content string `json:"content" validate:"required"`
}

// Assistant is the model-backed advice provider. Implementations never touch
// user state.
type Assistant interface {
	Suggestions(ctx context.Context, h habits.DailyHabits) ([]Suggestion, error)
	SavingsPrediction(ctx context.Context, footprintTotal float64, swap Suggestion, monthlyGoal *float64) (string, error)
	TravelCO2e(ctx context.Context, from, to string) (float64, error)
	News(ctx context.Context) (*GroundedResponse, error)
	StateReport(ctx context.Context, state string) (*GroundedResponse, error)
	FoodSwap(ctx context.Context, weeklyServings float64) (*PlantBasedSwap, error)
	DiscoverHabits(ctx context.Context, q HabitQuery) ([]Habit, error)
	Chat(ctx context.Context, history []ChatMessage, message string) (string, error)
	Close() error
}
