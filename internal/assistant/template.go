package assistant

import (
	"context"

	"github.com/carboloom/carboloom/internal/habits"
)

// TemplateAssistant stands in when no model is configured. Every call fails
// with ErrUnavailable.
type TemplateAssistant struct{}

func NewTemplateAssistant() *TemplateAssistant {
	return &TemplateAssistant{}
}

func (TemplateAssistant) Suggestions(context.Context, habits.DailyHabits) ([]Suggestion, error) {
	return nil, ErrUnavailable
}

func (TemplateAssistant) SavingsPrediction(context.Context, float64, Suggestion, *float64) (string, error) {
	return "", ErrUnavailable
}

func (TemplateAssistant) TravelCO2e(context.Context, string, string) (float64, error) {
	return 0, ErrUnavailable
}

func (TemplateAssistant) News(context.Context) (*GroundedResponse, error) {
	return nil, ErrUnavailable
}

func (TemplateAssistant) StateReport(context.Context, string) (*GroundedResponse, error) {
	return nil, ErrUnavailable
}

func (TemplateAssistant) FoodSwap(context.Context, float64) (*PlantBasedSwap, error) {
	return nil, ErrUnavailable
}

func (TemplateAssistant) DiscoverHabits(context.Context, HabitQuery) ([]Habit, error) {
	return nil, ErrUnavailable
}

func (TemplateAssistant) Chat(context.Context, []ChatMessage, string) (string, error) {
	return "", ErrUnavailable
}

func (TemplateAssistant) Close() error { return nil }
