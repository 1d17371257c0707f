package footprint

import (
	"github.com/carboloom/carboloom/internal/habits"
)

// ChartPoint is one bar of a history chart.
type ChartPoint struct {
	Name      string  `json:"name"`
	Footprint float64 `json:"footprint"`
}

var weekBucketLabels = [4]string{"Week 1", "Week 2", "Week 3", "This Week"}

// WeeklyDaywise returns the last 7 days ending today, oldest first, labelled
// by weekday. Days without a log are 0.
func (c *Calculator) WeeklyDaywise(logs []habits.LogEntry, gridFactor float64, today string) ([]ChartPoint, error) {
	byDate := make(map[string]habits.DailyHabits, len(logs))
	for _, entry := range logs {
		byDate[entry.Date] = entry.Habits
	}

	points := make([]ChartPoint, 0, 7)
	for offset := -6; offset <= 0; offset++ {
		date, err := habits.AddDays(today, offset)
		if err != nil {
			return nil, err
		}
		label, err := habits.Weekday(date)
		if err != nil {
			return nil, err
		}
		value := 0.0
		if h, ok := byDate[date]; ok {
			value = Round2(c.DayTotal(h, gridFactor))
		}
		points = append(points, ChartPoint{Name: label, Footprint: value})
	}
	return points, nil
}

// MonthlyWeekwise buckets the last 28 days into four 7-day sums, oldest
// first. Logs older than 28 days or dated after today are excluded.
func (c *Calculator) MonthlyWeekwise(logs []habits.LogEntry, gridFactor float64, today string) ([]ChartPoint, error) {
	if _, err := habits.ParseDate(today); err != nil {
		return nil, err
	}

	var sums [4]float64
	for _, entry := range logs {
		ago, err := habits.DaysBetween(entry.Date, today)
		if err != nil || ago < 0 || ago >= 28 {
			continue
		}
		sums[3-ago/7] += c.DayTotal(entry.Habits, gridFactor)
	}

	points := make([]ChartPoint, 4)
	for i := range sums {
		points[i] = ChartPoint{Name: weekBucketLabels[i], Footprint: Round2(sums[i])}
	}
	return points, nil
}
