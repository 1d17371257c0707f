package gamification

import (
	"testing"

	"github.com/carboloom/carboloom/internal/emission"
	"github.com/carboloom/carboloom/internal/habits"
)

func badgeIDs(badges []Badge) map[string]bool {
	out := make(map[string]bool, len(badges))
	for _, b := range badges {
		out[b.ID] = true
	}
	return out
}

func cycle(km float64) habits.TravelEntry {
	return habits.TravelEntry{Distance: km, Mode: habits.TransportBicycle}
}

func TestPedalPowerStrictThreshold(t *testing.T) {
	e := NewBadgeEvaluator(newTestCalculator(), emission.DefaultGridFactor)

	atBoundary := e.Evaluate([]habits.LogEntry{logOn("2024-06-01", cycle(15)), logOn("2024-06-02", cycle(5))})
	if badgeIDs(atBoundary)[BadgePedalPower] {
		t.Fatalf("pedal_power must not fire at exactly 20km")
	}

	above := e.Evaluate([]habits.LogEntry{logOn("2024-06-01", cycle(15)), logOn("2024-06-02", cycle(6))})
	if !badgeIDs(above)[BadgePedalPower] {
		t.Fatalf("pedal_power expected at 21km")
	}
}

func TestBadgeConditions(t *testing.T) {
	e := NewBadgeEvaluator(newTestCalculator(), emission.DefaultGridFactor)

	if got := e.Evaluate(nil); len(got) != 0 {
		t.Fatalf("expected no badges for empty history, got %+v", got)
	}

	shopping := habits.Empty()
	for _, m := range []string{"Organic Cotton", "Recycled Polyester", "organic cotton", "Recycled Cotton"} {
		shopping.Shopping = append(shopping.Shopping, habits.ShoppingItem{Category: "Clothing", Type: "Topwear", Item: "T-shirt", Material: m})
	}
	shopping.Travel = []habits.TravelEntry{{Distance: 30, Mode: habits.TransportBus}, cab(40)}

	logs := []habits.LogEntry{
		{Date: "2024-06-01", Habits: shopping},
		logOn("2024-06-02", habits.TravelEntry{Distance: 21, Mode: habits.TransportTrain}, cab(40)),
	}
	got := badgeIDs(e.Evaluate(logs))
	if !got[BadgeFirstLog] || !got[BadgeCommuterHero] {
		t.Fatalf("expected first_log and commuter_hero, got %v", got)
	}
	if got[BadgeEcoShopper] {
		t.Fatalf("eco_shopper needs 5 items, only 4 logged")
	}
	if got[BadgeLowCarbonDay] {
		t.Fatalf("no day was under 5kg")
	}

	more := habits.Empty()
	more.Shopping = []habits.ShoppingItem{{Category: "Clothing", Type: "Footwear", Item: "Sandals", Material: "Recycled Plastic"}}
	logs = append(logs, habits.LogEntry{Date: "2024-06-03", Habits: more})
	got = badgeIDs(e.Evaluate(logs))
	if !got[BadgeEcoShopper] || !got[BadgeLowCarbonDay] {
		t.Fatalf("expected eco_shopper and low_carbon_day, got %v", got)
	}
	if got[BadgeConsistent7] || got[BadgeStreakMaster5] || got[BadgeQuizMaster] {
		t.Fatalf("unexpected badges: %v", got)
	}
}

func TestBadgesMonotonicOverGrowingHistory(t *testing.T) {
	e := NewBadgeEvaluator(newTestCalculator(), emission.DefaultGridFactor)
	var logs []habits.LogEntry
	prev := map[string]bool{}
	for i := 1; i <= 8; i++ {
		date, _ := habits.AddDays("2024-06-01", i)
		logs = append(logs, logOn(date, cycle(4), habits.TravelEntry{Distance: 8, Mode: habits.TransportBus}))
		cur := badgeIDs(e.Evaluate(logs))
		for id := range prev {
			if !cur[id] {
				t.Fatalf("badge %s disappeared after %d logs", id, i)
			}
		}
		prev = cur
	}
	if !prev[BadgeConsistent7] || !prev[BadgePedalPower] || !prev[BadgeCommuterHero] {
		t.Fatalf("expected cumulative badges after 8 logs, got %v", prev)
	}
}
