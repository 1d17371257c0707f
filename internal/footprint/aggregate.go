package footprint

import (
	"github.com/carboloom/carboloom/internal/habits"
)

// windowDays is the inclusive lookback for each period, today included.
var windowDays = map[habits.Period]int{
	habits.PeriodDaily:   1,
	habits.PeriodWeekly:  7,
	habits.PeriodMonthly: 30,
}

// AggregateHabitsForPeriod concatenates the habits of every log inside the
// period ending on today, in ascending date order. It returns nil when no
// log falls in range. Logs with malformed dates are ignored.
func AggregateHabitsForPeriod(logs []habits.LogEntry, period habits.Period, today string) *habits.DailyHabits {
	days, ok := windowDays[period]
	if !ok {
		return nil
	}

	matched := make([]habits.LogEntry, 0, len(logs))
	for _, entry := range logs {
		ago, err := habits.DaysBetween(entry.Date, today)
		if err != nil {
			continue
		}
		if ago >= 0 && ago < days {
			matched = append(matched, entry)
		}
	}
	if len(matched) == 0 {
		return nil
	}
	habits.SortByDate(matched)

	out := habits.Empty()
	for _, entry := range matched {
		out.Append(entry.Habits)
	}
	return &out
}
