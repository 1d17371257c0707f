package gamification

import (
	"errors"
	"testing"

	"github.com/carboloom/carboloom/internal/emission"
	"github.com/carboloom/carboloom/internal/footprint"
	"github.com/carboloom/carboloom/internal/habits"
)

func newTestCalculator() *footprint.Calculator {
	return footprint.NewCalculator(emission.NewModel(emission.DefaultFactors(), nil))
}

func newTestEngine() *Engine {
	return NewEngine(newTestCalculator(), emission.DefaultGridFactor, nil)
}

func logOn(date string, trips ...habits.TravelEntry) habits.LogEntry {
	h := habits.Empty()
	h.Travel = append(h.Travel, trips...)
	return habits.LogEntry{Date: date, Habits: h}
}

func walk(km float64) habits.TravelEntry {
	return habits.TravelEntry{Distance: km, Mode: habits.TransportWalking}
}

func cab(km float64) habits.TravelEntry {
	return habits.TravelEntry{Distance: km, Mode: habits.TransportCab}
}

func runLogs(e *Engine, logs ...habits.LogEntry) (map[string]ChallengeState, []Outcome) {
	states := map[string]ChallengeState{}
	var outcomes []Outcome
	for _, l := range logs {
		out := e.ProcessLog(states, l)
		states = out.States
		outcomes = append(outcomes, out)
	}
	return states, outcomes
}

func TestStreakContinuity(t *testing.T) {
	states, _ := runLogs(newTestEngine(), logOn("2024-06-01"), logOn("2024-06-02"), logOn("2024-06-03"))
	if got := states[ChallengeLogging5].Progress; got != 3 {
		t.Fatalf("progress=%v, want 3", got)
	}
	if got := states[ChallengeLogging5].LastUpdated; got != "2024-06-03" {
		t.Fatalf("lastUpdated=%s, want 2024-06-03", got)
	}
}

func TestStreakGapRestarts(t *testing.T) {
	states, _ := runLogs(newTestEngine(), logOn("2024-06-01"), logOn("2024-06-03"))
	if got := states[ChallengeLogging5].Progress; got != 1 {
		t.Fatalf("progress=%v, want 1 after a gap", got)
	}
}

func TestStreakAcrossMonthBoundary(t *testing.T) {
	states, _ := runLogs(newTestEngine(), logOn("2024-02-28"), logOn("2024-02-29"), logOn("2024-03-01"))
	if got := states[ChallengeLogging5].Progress; got != 3 {
		t.Fatalf("progress=%v, want 3", got)
	}
}

func TestFiveDayLoggingStreakRewardsOnce(t *testing.T) {
	e := newTestEngine()
	states, outcomes := runLogs(e,
		logOn("2024-06-01"), logOn("2024-06-02"), logOn("2024-06-03"), logOn("2024-06-04"), logOn("2024-06-05"),
	)
	st := states[ChallengeLogging5]
	if st.Progress != 5 || st.RewardedGoal != 5 {
		t.Fatalf("unexpected state after day 5: %+v", st)
	}
	day5 := outcomes[4]
	if day5.Points < 100 {
		t.Fatalf("expected at least 100 points on day 5, got %d", day5.Points)
	}
	if len(day5.Badges) != 1 || day5.Badges[0].ID != BadgeStreakMaster5 {
		t.Fatalf("expected streak_master_5 badge, got %+v", day5.Badges)
	}

	// Frozen afterwards: neither points nor the badge come back.
	after := e.ProcessLog(states, logOn("2024-06-06"))
	if after.States[ChallengeLogging5] != st {
		t.Fatalf("completed challenge should be frozen, got %+v", after.States[ChallengeLogging5])
	}
	for _, b := range after.Badges {
		if b.ID == BadgeStreakMaster5 {
			t.Fatalf("streak_master_5 granted twice")
		}
	}
	for _, id := range after.Completed {
		if id == ChallengeLogging5 {
			t.Fatalf("logging streak rewarded twice")
		}
	}
}

func TestSameDayEvaluationIsIdempotent(t *testing.T) {
	e := newTestEngine()
	log := logOn("2024-06-01", walk(3))
	first := e.ProcessLog(map[string]ChallengeState{}, log)
	second := e.ProcessLog(first.States, log)

	for _, id := range []string{ChallengeLogging5, ChallengeLowCarbon3, ChallengeGreenRun3} {
		if first.States[id] != second.States[id] {
			t.Fatalf("%s changed on re-evaluation: %+v -> %+v", id, first.States[id], second.States[id])
		}
	}
}

func TestStreakConditionFalseResetsWithoutTouchingLastUpdated(t *testing.T) {
	e := newTestEngine()
	states, _ := runLogs(e, logOn("2024-06-01", walk(2)), logOn("2024-06-02", walk(2)))
	if states[ChallengeGreenRun3].Progress != 2 {
		t.Fatalf("expected green streak 2, got %+v", states[ChallengeGreenRun3])
	}

	failing := e.ProcessLog(states, logOn("2024-06-03", cab(3)))
	st := failing.States[ChallengeGreenRun3]
	if st.Progress != 0 || st.LastUpdated != "2024-06-02" {
		t.Fatalf("expected reset with lastUpdated kept, got %+v", st)
	}

	// A corrected log for the same day still extends from yesterday.
	fixed := e.ProcessLog(failing.States, logOn("2024-06-03", walk(1)))
	if got := fixed.States[ChallengeGreenRun3]; got.Progress != 1 || got.LastUpdated != "2024-06-03" {
		t.Fatalf("expected progress 1 on corrected day, got %+v", got)
	}
}

func TestLowCarbonStreak(t *testing.T) {
	e := newTestEngine()
	// 40km by cab is 6kg CO2e.
	states, _ := runLogs(e, logOn("2024-06-01", cab(10)), logOn("2024-06-02", cab(40)))
	if got := states[ChallengeLowCarbon3].Progress; got != 0 {
		t.Fatalf("expected low-carbon streak broken, got %v", got)
	}
	states, outcomes := runLogs(e, logOn("2024-06-01"), logOn("2024-06-02"), logOn("2024-06-03"))
	if states[ChallengeLowCarbon3].RewardedGoal != 3 {
		t.Fatalf("expected low-carbon streak rewarded, got %+v", states[ChallengeLowCarbon3])
	}
	if outcomes[2].Points != 75 {
		t.Fatalf("expected 75 points on day 3, got %d", outcomes[2].Points)
	}
}

func TestDailyGoalResetsEachDay(t *testing.T) {
	e := newTestEngine()
	states, outcomes := runLogs(e, logOn("2024-06-01", walk(6)), logOn("2024-06-02", walk(4)))
	if got := states[ChallengeGreen10]; got.Progress != 4 || got.LastUpdated != "2024-06-02" {
		t.Fatalf("expected daily progress to restart, got %+v", got)
	}
	if outcomes[1].Points != 0 {
		t.Fatalf("expected no reward yet, got %d", outcomes[1].Points)
	}

	out := e.ProcessLog(states, logOn("2024-06-03", walk(7), habits.TravelEntry{Distance: 3.5, Mode: habits.TransportBicycle}))
	if got := out.States[ChallengeGreen10]; got.Progress != 10.5 || got.RewardedGoal != 10 {
		t.Fatalf("expected goal reached, got %+v", got)
	}
	if out.Points < 30 {
		t.Fatalf("expected green commute reward, got %d", out.Points)
	}
}

func TestOutdatedLogLeavesStateUntouched(t *testing.T) {
	e := newTestEngine()
	states, _ := runLogs(e, logOn("2024-06-09"), logOn("2024-06-10"))
	out := e.ProcessLog(states, logOn("2024-06-05"))

	if out.States[ChallengeLogging5] != states[ChallengeLogging5] {
		t.Fatalf("retroactive log changed state: %+v", out.States[ChallengeLogging5])
	}
	found := false
	for _, id := range out.Outdated {
		if id == ChallengeLogging5 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected %s reported as outdated, got %v", ChallengeLogging5, out.Outdated)
	}
}

func TestProcessLogDoesNotMutateInput(t *testing.T) {
	e := newTestEngine()
	states := map[string]ChallengeState{ChallengeLogging5: {Progress: 1, LastUpdated: "2024-06-01"}}
	e.ProcessLog(states, logOn("2024-06-02"))
	if states[ChallengeLogging5].Progress != 1 {
		t.Fatalf("input states mutated: %+v", states[ChallengeLogging5])
	}
}

func TestProcessCustomStreakAndDaily(t *testing.T) {
	e := newTestEngine()
	streak := Challenge{ID: "custom_a", Goal: 2, Type: ChallengeStreak, Reward: 20, IsCustom: true}

	out, err := e.ProcessCustom(nil, streak, "2024-06-01", 1)
	if err != nil {
		t.Fatalf("ProcessCustom returned error: %v", err)
	}
	out, _ = e.ProcessCustom(out.States, streak, "2024-06-02", 0)
	if got := out.States["custom_a"]; got.Progress != 0 || got.LastUpdated != "2024-06-01" {
		t.Fatalf("expected reset on zero value, got %+v", got)
	}
	out, _ = e.ProcessCustom(out.States, streak, "2024-06-02", 1)
	out, _ = e.ProcessCustom(out.States, streak, "2024-06-03", 1)
	if out.Points != 20 || out.States["custom_a"].RewardedGoal != 2 {
		t.Fatalf("expected reward on streak of 2, got points=%d state=%+v", out.Points, out.States["custom_a"])
	}

	daily := Challenge{ID: "custom_b", Goal: 8, Type: ChallengeDaily, Reward: 5, IsCustom: true}
	out, _ = e.ProcessCustom(nil, daily, "2024-06-01", 5)
	out, _ = e.ProcessCustom(out.States, daily, "2024-06-01", 4)
	if got := out.States["custom_b"]; got.Progress != 9 || got.RewardedGoal != 8 || out.Points != 5 {
		t.Fatalf("expected same-day accumulation to reach goal, got %+v points=%d", got, out.Points)
	}
}

func TestProcessCustomValidation(t *testing.T) {
	e := newTestEngine()
	ch := Challenge{ID: "custom_a", Goal: 2, Type: ChallengeStreak}
	if _, err := e.ProcessCustom(nil, ch, "06/01/2024", 1); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad date, got %v", err)
	}
	if _, err := e.ProcessCustom(nil, ch, "2024-06-01", -1); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative value, got %v", err)
	}
}

func TestUnknownChallengeTypeIsIgnored(t *testing.T) {
	e := newTestEngine()
	out, err := e.ProcessCustom(nil, Challenge{ID: "custom_x", Goal: 1, Type: "weekly"}, "2024-06-01", 3)
	if err != nil {
		t.Fatalf("ProcessCustom returned error: %v", err)
	}
	if _, ok := out.States["custom_x"]; ok {
		t.Fatalf("unknown type should not produce state")
	}
}

func TestRegisterStrategy(t *testing.T) {
	e := newTestEngine()
	e.Register(Challenge{ID: "metro_day", Goal: 1, Type: ChallengeStreak, Reward: 5}, func(day DayContext) float64 {
		return met(day.Log.Habits.HasTrip(func(m habits.TransportMode) bool { return m == habits.TransportMetro }))
	})
	out := e.ProcessLog(nil, logOn("2024-06-01", habits.TravelEntry{Distance: 2, Mode: habits.TransportMetro}))
	if out.States["metro_day"].RewardedGoal != 1 {
		t.Fatalf("registered strategy not evaluated: %+v", out.States["metro_day"])
	}
	if len(e.Challenges()) != len(challengeDefinitions())+1 {
		t.Fatalf("expected registered challenge in catalog")
	}
}
