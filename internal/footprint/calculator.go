package footprint

import (
	"math"

	"github.com/carboloom/carboloom/internal/emission"
	"github.com/carboloom/carboloom/internal/habits"
)

// Breakdown is the per-category footprint in kg CO2e.
type Breakdown struct {
	Travel      float64 `json:"travel"`
	Shopping    float64 `json:"shopping"`
	Electronics float64 `json:"electronics"`
	Home        float64 `json:"home"`
	Food        float64 `json:"food"`
}

// Data is a derived footprint. Every value is rounded to 2 decimals on its own.
type Data struct {
	Breakdown Breakdown `json:"breakdown"`
	Total     float64   `json:"total"`
}

// Round2 rounds half away from zero to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Calculator combines the emission model with aggregation over logs.
type Calculator struct {
	model *emission.Model
}

func NewCalculator(model *emission.Model) *Calculator {
	return &Calculator{model: model}
}

// Calculate returns nil when habits is nil, meaning no data for the scope.
func (c *Calculator) Calculate(h *habits.DailyHabits, gridFactor float64) *Data {
	if h == nil {
		return nil
	}
	raw := c.raw(*h, gridFactor)
	total := raw.Travel + raw.Shopping + raw.Electronics + raw.Home + raw.Food
	return &Data{
		Breakdown: Breakdown{
			Travel:      Round2(raw.Travel),
			Shopping:    Round2(raw.Shopping),
			Electronics: Round2(raw.Electronics),
			Home:        Round2(raw.Home),
			Food:        Round2(raw.Food),
		},
		Total: Round2(total),
	}
}

// DayTotal is the unrounded total for one day's habits.
func (c *Calculator) DayTotal(h habits.DailyHabits, gridFactor float64) float64 {
	raw := c.raw(h, gridFactor)
	return raw.Travel + raw.Shopping + raw.Electronics + raw.Home + raw.Food
}

func (c *Calculator) raw(h habits.DailyHabits, gridFactor float64) Breakdown {
	var b Breakdown
	for _, t := range h.Travel {
		b.Travel += c.model.Travel(t)
	}
	for _, s := range h.Shopping {
		b.Shopping += c.model.Shopping(s)
	}
	for _, e := range h.Electronics {
		b.Electronics += c.model.Electronics(e)
	}
	for _, u := range h.Home {
		b.Home += c.model.Home(u, gridFactor)
	}
	for _, f := range h.Food {
		b.Food += c.model.Food(f)
	}
	return b
}
