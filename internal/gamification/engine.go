package gamification

import (
	"fmt"
	"log/slog"

	"github.com/carboloom/carboloom/internal/footprint"
	"github.com/carboloom/carboloom/internal/habits"
)

// lowCarbonThreshold is the daily kg CO2e under which a day counts as low carbon.
const lowCarbonThreshold = 5.0

// DayContext is what a predefined challenge can inspect for one log.
type DayContext struct {
	Log       habits.LogEntry
	Footprint *footprint.Data
}

// Measure scores a day for a challenge. For streaks a positive score means the
// day qualifies; for daily goals it is the amount contributed.
type Measure func(DayContext) float64

func met(ok bool) float64 {
	if ok {
		return 1
	}
	return 0
}

func defaultMeasures() map[string]Measure {
	return map[string]Measure{
		ChallengeLogging5: func(DayContext) float64 {
			return 1
		},
		ChallengeLowCarbon3: func(day DayContext) float64 {
			return met(day.Footprint != nil && day.Footprint.Total < lowCarbonThreshold)
		},
		ChallengeGreenRun3: func(day DayContext) float64 {
			return met(day.Log.Habits.HasTrip(habits.TransportMode.IsGreen))
		},
		ChallengeGreen10: func(day DayContext) float64 {
			return day.Log.Habits.DistanceBy(habits.TransportMode.IsGreen)
		},
	}
}

// step is the result of advancing one challenge state.
type step int

const (
	stepAdvanced step = iota
	stepFrozen
	stepOutdated
	stepIgnored
)

// advance applies one day's value to a challenge state. It returns the new
// state, whether the goal was reached for the first time, and how the step
// resolved.
func advance(ch Challenge, st ChallengeState, today string, value float64) (ChallengeState, bool, step) {
	if st.Completed(ch.Goal) {
		return st, false, stepFrozen
	}

	sinceLast := -1
	if st.LastUpdated != "" {
		days, err := habits.DaysBetween(st.LastUpdated, today)
		if err == nil {
			if days < 0 {
				return st, false, stepOutdated
			}
			sinceLast = days
		}
	}

	switch ch.Type {
	case ChallengeStreak:
		if value > 0 {
			switch {
			case sinceLast == 0:
			case sinceLast == 1 || st.Progress == 0:
				st.Progress++
			default:
				st.Progress = 1
			}
			st.LastUpdated = today
		} else if sinceLast != 0 {
			// lastUpdated stays put so a later qualifying log for today still counts.
			st.Progress = 0
		}
	case ChallengeDaily:
		if sinceLast != 0 {
			st.Progress = 0
		}
		st.Progress += value
		st.LastUpdated = today
	default:
		return st, false, stepIgnored
	}

	if st.Progress >= ch.Goal && st.RewardedGoal < ch.Goal {
		st.RewardedGoal = ch.Goal
		return st, true, stepAdvanced
	}
	return st, false, stepAdvanced
}

// Outcome is the engine's result for one update.
type Outcome struct {
	States    map[string]ChallengeState
	Points    int
	Badges    []Badge
	Completed []string
	// Outdated lists challenges left untouched because the update was dated
	// before their last update.
	Outdated []string
}

// Engine advances challenge states from logs and custom updates.
type Engine struct {
	challenges []Challenge
	measures   map[string]Measure
	calc       *footprint.Calculator
	gridFactor float64
	logger     *slog.Logger
}

// NewEngine wires the predefined challenge catalog with its measures.
func NewEngine(calc *footprint.Calculator, gridFactor float64, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{
		challenges: challengeDefinitions(),
		measures:   defaultMeasures(),
		calc:       calc,
		gridFactor: gridFactor,
		logger:     logger,
	}
}

// Register adds a predefined challenge, or replaces the one with the same ID.
func (e *Engine) Register(ch Challenge, measure Measure) {
	for i, existing := range e.challenges {
		if existing.ID == ch.ID {
			e.challenges[i] = ch
			e.measures[ch.ID] = measure
			return
		}
	}
	e.challenges = append(e.challenges, ch)
	e.measures[ch.ID] = measure
}

// Challenges returns a copy of the predefined catalog.
func (e *Engine) Challenges() []Challenge {
	out := make([]Challenge, len(e.challenges))
	copy(out, e.challenges)
	return out
}

// ProcessLog advances every predefined challenge with newLog. The log's date is
// taken as today. states is not modified.
func (e *Engine) ProcessLog(states map[string]ChallengeState, newLog habits.LogEntry) Outcome {
	out := Outcome{States: copyStates(states)}
	if _, err := habits.ParseDate(newLog.Date); err != nil {
		e.logger.Warn("skipping challenge evaluation for malformed log date", slog.String("date", newLog.Date))
		return out
	}

	day := DayContext{Log: newLog, Footprint: e.calc.Calculate(&newLog.Habits, e.gridFactor)}
	for _, ch := range e.challenges {
		measure, ok := e.measures[ch.ID]
		if !ok {
			continue
		}
		e.apply(&out, ch, newLog.Date, measure(day))
	}
	return out
}

// ProcessCustom advances a single custom challenge with a caller supplied value.
func (e *Engine) ProcessCustom(states map[string]ChallengeState, ch Challenge, today string, value float64) (Outcome, error) {
	if _, err := habits.ParseDate(today); err != nil {
		return Outcome{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if value < 0 {
		return Outcome{}, fmt.Errorf("%w: value must not be negative", ErrInvalidInput)
	}
	out := Outcome{States: copyStates(states)}
	e.apply(&out, ch, today, value)
	return out, nil
}

func (e *Engine) apply(out *Outcome, ch Challenge, today string, value float64) {
	next, reached, result := advance(ch, out.States[ch.ID], today, value)
	switch result {
	case stepIgnored:
		e.logger.Warn("ignoring challenge with unknown type",
			slog.String("challengeId", ch.ID),
			slog.String("type", string(ch.Type)),
		)
		return
	case stepOutdated:
		e.logger.Warn("update predates challenge progress; leaving state unchanged",
			slog.String("challengeId", ch.ID),
			slog.String("date", today),
			slog.String("lastUpdated", next.LastUpdated),
		)
		out.Outdated = append(out.Outdated, ch.ID)
		return
	case stepFrozen:
		return
	}

	out.States[ch.ID] = next
	if !reached {
		return
	}
	out.Completed = append(out.Completed, ch.ID)
	out.Points += ch.Reward
	if ch.BadgeID != "" {
		if badge, ok := BadgeByID(ch.BadgeID); ok {
			out.Badges = append(out.Badges, badge)
		}
	}
}

func copyStates(states map[string]ChallengeState) map[string]ChallengeState {
	out := make(map[string]ChallengeState, len(states))
	for k, v := range states {
		out[k] = v
	}
	return out
}
