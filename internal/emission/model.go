package emission

import (
	"fmt"
	"log/slog"

	"github.com/carboloom/carboloom/internal/habits"
)

// Result is a footprint lookup outcome. Warning is set when the item
// referenced a key missing from the tables; Value is then 0.
type Result struct {
	Value   float64
	Warning string
}

// Known reports whether the lookup resolved against the tables.
func (r Result) Known() bool {
	return r.Warning == ""
}

func unknown(format string, args ...any) Result {
	return Result{Warning: fmt.Sprintf(format, args...)}
}

// Model maps logged items to kg CO2e. Values are not rounded.
type Model struct {
	factors Factors
	logger  *slog.Logger
}

// NewModel builds a model over the given tables. A nil logger discards warnings.
func NewModel(factors Factors, logger *slog.Logger) *Model {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Model{factors: factors, logger: logger}
}

// Factors exposes the tables in use.
func (m *Model) Factors() Factors {
	return m.factors
}

func (m *Model) record(category string, r Result) float64 {
	if !r.Known() {
		m.logger.Warn("emission lookup fell back to zero",
			slog.String("category", category),
			slog.String("reason", r.Warning),
		)
	}
	return r.Value
}

// LookupTravelFactor returns kg CO2e per km for mode.
func (m *Model) LookupTravelFactor(mode habits.TransportMode) Result {
	factor, ok := m.factors.Travel[mode]
	if !ok {
		return unknown("unknown transport mode %q", mode)
	}
	return Result{Value: factor}
}

// LookupTravel computes a trip's emissions from the current factors,
// ignoring any value stamped on the entry.
func (m *Model) LookupTravel(entry habits.TravelEntry) Result {
	r := m.LookupTravelFactor(entry.Mode)
	r.Value *= entry.Distance
	return r
}

// LookupShopping resolves a clothing item's per-item footprint.
func (m *Model) LookupShopping(item habits.ShoppingItem) Result {
	types, ok := m.factors.Shopping[item.Category]
	if !ok {
		return unknown("unknown shopping category %q", item.Category)
	}
	items, ok := types[item.Type]
	if !ok {
		return unknown("unknown %s type %q", item.Category, item.Type)
	}
	clothing, ok := items[item.Item]
	if !ok {
		return unknown("unknown %s item %q", item.Type, item.Item)
	}
	kg, ok := clothing.Materials[item.Material]
	if !ok {
		return unknown("unknown material %q for %s", item.Material, item.Item)
	}
	return Result{Value: kg}
}

// LookupElectronics resolves an electronics purchase's footprint.
func (m *Model) LookupElectronics(item habits.ElectronicsItem) Result {
	items, ok := m.factors.Electronics[item.Category]
	if !ok {
		return unknown("unknown electronics category %q", item.Category)
	}
	kg, ok := items[item.Item]
	if !ok {
		return unknown("unknown electronics item %q in %s", item.Item, item.Category)
	}
	return Result{Value: kg}
}

// LookupHome converts appliance usage to emissions: kW × hours × quantity × grid.
// A missing quantity counts as one unit for appliances that are not counted.
func (m *Model) LookupHome(usage habits.HomeApplianceUsage, gridFactor float64) Result {
	appliance, ok := m.factors.Appliances[usage.Name]
	if !ok {
		return unknown("unknown appliance %q", usage.Name)
	}
	quantity := float64(usage.Quantity)
	if quantity <= 0 && !appliance.RequiresQuantity {
		quantity = 1
	}
	kwh := appliance.Watts / 1000 * usage.Hours * quantity
	return Result{Value: kwh * gridFactor}
}

// LookupFood multiplies servings by the category's per-serving footprint.
func (m *Model) LookupFood(entry habits.FoodEntry) Result {
	kg, ok := m.factors.Food[entry.Category]
	if !ok {
		return unknown("unknown food category %q", entry.Category)
	}
	return Result{Value: kg * entry.Servings}
}

// Travel returns a trip's emissions, preferring the value stamped at entry time.
func (m *Model) Travel(entry habits.TravelEntry) float64 {
	if entry.Emissions != nil {
		return *entry.Emissions
	}
	return m.record("travel", m.LookupTravel(entry))
}

func (m *Model) Shopping(item habits.ShoppingItem) float64 {
	return m.record("shopping", m.LookupShopping(item))
}

func (m *Model) Electronics(item habits.ElectronicsItem) float64 {
	return m.record("electronics", m.LookupElectronics(item))
}

func (m *Model) Home(usage habits.HomeApplianceUsage, gridFactor float64) float64 {
	return m.record("home", m.LookupHome(usage, gridFactor))
}

func (m *Model) Food(entry habits.FoodEntry) float64 {
	return m.record("food", m.LookupFood(entry))
}

// StampTravel fills in Emissions on entries that lack it, using the current factors.
// Unknown modes are stamped with 0.
func (m *Model) StampTravel(entries []habits.TravelEntry) []habits.TravelEntry {
	out := make([]habits.TravelEntry, len(entries))
	for i, entry := range entries {
		out[i] = entry
		if entry.Emissions != nil {
			continue
		}
		v := m.record("travel", m.LookupTravel(entry))
		out[i].Emissions = &v
	}
	return out
}
