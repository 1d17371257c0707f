package footprint

import (
	"math"
	"testing"

	"github.com/carboloom/carboloom/internal/emission"
	"github.com/carboloom/carboloom/internal/habits"
)

func newCalculator() *Calculator {
	return NewCalculator(emission.NewModel(emission.DefaultFactors(), nil))
}

func busLog(date string, km float64) habits.LogEntry {
	h := habits.Empty()
	h.Travel = append(h.Travel, habits.TravelEntry{Distance: km, Mode: habits.TransportBus})
	return habits.LogEntry{Date: date, Habits: h}
}

func TestCalculateNilHabits(t *testing.T) {
	if got := newCalculator().Calculate(nil, 0.71); got != nil {
		t.Fatalf("expected nil footprint, got %+v", got)
	}
}

func TestCalculateSingleBusTrip(t *testing.T) {
	entry := busLog("2024-06-01", 10)
	got := newCalculator().Calculate(&entry.Habits, 0.71)
	if got == nil {
		t.Fatalf("expected footprint")
	}
	if got.Breakdown.Travel != 1.0 || got.Total != 1.0 {
		t.Fatalf("expected travel=1.0 total=1.0, got %+v", got)
	}
}

func TestCalculateTotalRoundedIndependently(t *testing.T) {
	h := habits.Empty()
	// 0.004 kg each: both categories round to 0, the total rounds to 0.01.
	h.Travel = []habits.TravelEntry{{Distance: 0.04, Mode: habits.TransportBus}}
	h.Food = []habits.FoodEntry{{Category: "Plant-based Protein", Servings: 0.04}}
	got := newCalculator().Calculate(&h, 0.71)

	if got.Breakdown.Travel != 0 || got.Breakdown.Food != 0 {
		t.Fatalf("expected rounded categories to be 0, got %+v", got.Breakdown)
	}
	if got.Total != 0.01 {
		t.Fatalf("total=%v, want 0.01", got.Total)
	}
}

func TestCalculateAdditivity(t *testing.T) {
	h := habits.Empty()
	h.Travel = []habits.TravelEntry{{Distance: 12.3, Mode: habits.TransportCab}, {Distance: 4, Mode: habits.TransportMetro}}
	h.Shopping = []habits.ShoppingItem{{Category: "Clothing", Type: "Topwear", Item: "Shirt", Material: "Linen"}}
	h.Electronics = []habits.ElectronicsItem{{Category: "Accessories", Item: "Power Bank"}}
	h.Home = []habits.HomeApplianceUsage{{Name: "Microwave", Hours: 0.25, Quantity: 1}}
	h.Food = []habits.FoodEntry{{Category: "Poultry", Servings: 1.5}}

	c := newCalculator()
	got := c.Calculate(&h, 0.71)
	raw := c.raw(h, 0.71)
	sum := raw.Travel + raw.Shopping + raw.Electronics + raw.Home + raw.Food
	if math.Abs(got.Total-Round2(sum)) > 1e-9 {
		t.Fatalf("total=%v, want round(%v)", got.Total, sum)
	}
}

func TestAggregateEmptyLogs(t *testing.T) {
	if got := AggregateHabitsForPeriod(nil, habits.PeriodDaily, "2024-06-10"); got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}

func TestAggregateWindows(t *testing.T) {
	logs := []habits.LogEntry{
		busLog("2024-06-10", 1),
		busLog("2024-06-04", 2), // 6 days ago: inside week
		busLog("2024-06-03", 3), // 7 days ago: outside week
		busLog("2024-05-12", 4), // 29 days ago: inside month
		busLog("2024-05-11", 5), // 30 days ago: outside month
		busLog("2024-06-11", 6), // future
		{Date: "not-a-date", Habits: habits.Empty()},
	}

	tests := []struct {
		period habits.Period
		want   []float64
	}{
		{habits.PeriodDaily, []float64{1}},
		{habits.PeriodWeekly, []float64{2, 1}},
		{habits.PeriodMonthly, []float64{4, 3, 2, 1}},
	}
	for _, tt := range tests {
		got := AggregateHabitsForPeriod(logs, tt.period, "2024-06-10")
		if got == nil {
			t.Fatalf("%s: expected habits", tt.period)
		}
		if len(got.Travel) != len(tt.want) {
			t.Fatalf("%s: got %d trips, want %d", tt.period, len(got.Travel), len(tt.want))
		}
		for i, km := range tt.want {
			if got.Travel[i].Distance != km {
				t.Fatalf("%s: trip %d distance=%v, want %v", tt.period, i, got.Travel[i].Distance, km)
			}
		}
	}
}

func TestAggregateNoneInRange(t *testing.T) {
	logs := []habits.LogEntry{busLog("2024-01-01", 1)}
	if got := AggregateHabitsForPeriod(logs, habits.PeriodWeekly, "2024-06-10"); got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}

func TestWeeklyDaywise(t *testing.T) {
	logs := []habits.LogEntry{busLog("2024-06-10", 10), busLog("2024-06-05", 20), busLog("2024-06-01", 30)}
	points, err := newCalculator().WeeklyDaywise(logs, 0.71, "2024-06-10")
	if err != nil {
		t.Fatalf("WeeklyDaywise returned error: %v", err)
	}
	if len(points) != 7 {
		t.Fatalf("expected 7 points, got %d", len(points))
	}
	// 2024-06-04 is Tuesday; 2024-06-10 is Monday.
	wantNames := []string{"Tue", "Wed", "Thu", "Fri", "Sat", "Sun", "Mon"}
	wantValues := []float64{0, 2, 0, 0, 0, 0, 1}
	for i := range points {
		if points[i].Name != wantNames[i] || points[i].Footprint != wantValues[i] {
			t.Fatalf("point %d=%+v, want %s/%v", i, points[i], wantNames[i], wantValues[i])
		}
	}
}

func TestMonthlyWeekwise(t *testing.T) {
	logs := []habits.LogEntry{
		busLog("2024-06-28", 10), // 0 days ago -> This Week
		busLog("2024-06-22", 10), // 6 days ago -> This Week
		busLog("2024-06-21", 20), // 7 days ago -> Week 3
		busLog("2024-06-01", 30), // 27 days ago -> Week 1
		busLog("2024-05-31", 99), // 28 days ago -> excluded
	}
	points, err := newCalculator().MonthlyWeekwise(logs, 0.71, "2024-06-28")
	if err != nil {
		t.Fatalf("MonthlyWeekwise returned error: %v", err)
	}
	want := []ChartPoint{
		{Name: "Week 1", Footprint: 3},
		{Name: "Week 2", Footprint: 0},
		{Name: "Week 3", Footprint: 2},
		{Name: "This Week", Footprint: 2},
	}
	for i := range want {
		if points[i] != want[i] {
			t.Fatalf("bucket %d=%+v, want %+v", i, points[i], want[i])
		}
	}
}
