package gamification

import (
	"strings"

	"github.com/carboloom/carboloom/internal/footprint"
	"github.com/carboloom/carboloom/internal/habits"
)

const (
	commuterHeroKm   = 50.0
	pedalPowerKm     = 20.0
	ecoShopperItems  = 5
	consistentLogDay = 7
)

// BadgeEvaluator derives cumulative badges from a user's full history.
type BadgeEvaluator struct {
	calc       *footprint.Calculator
	gridFactor float64
}

func NewBadgeEvaluator(calc *footprint.Calculator, gridFactor float64) *BadgeEvaluator {
	return &BadgeEvaluator{calc: calc, gridFactor: gridFactor}
}

// Evaluate returns every history-derived badge the logs qualify for, in catalog
// order. It may include badges the user already holds; callers union by ID.
// quiz_master and streak_master_5 are granted elsewhere.
func (e *BadgeEvaluator) Evaluate(logs []habits.LogEntry) []Badge {
	var (
		publicKm, cycledKm float64
		sustainableItems   int
		lowCarbonDay       bool
	)
	for _, entry := range logs {
		h := entry.Habits
		publicKm += h.DistanceBy(habits.TransportMode.IsPublic)
		cycledKm += h.DistanceBy(func(m habits.TransportMode) bool { return m == habits.TransportBicycle })
		for _, item := range h.Shopping {
			if isSustainableMaterial(item.Material) {
				sustainableItems++
			}
		}
		if !lowCarbonDay {
			if fp := e.calc.Calculate(&h, e.gridFactor); fp != nil && fp.Total < lowCarbonThreshold {
				lowCarbonDay = true
			}
		}
	}

	earned := map[string]bool{
		BadgeFirstLog:     len(logs) >= 1,
		BadgeConsistent7:  len(logs) >= consistentLogDay,
		BadgeCommuterHero: publicKm > commuterHeroKm,
		BadgePedalPower:   cycledKm > pedalPowerKm,
		BadgeEcoShopper:   sustainableItems >= ecoShopperItems,
		BadgeLowCarbonDay: lowCarbonDay,
	}

	var out []Badge
	for _, b := range badgeDefinitions() {
		if earned[b.ID] {
			out = append(out, b)
		}
	}
	return out
}

func isSustainableMaterial(material string) bool {
	m := strings.ToLower(material)
	return strings.Contains(m, "organic") || strings.Contains(m, "recycled")
}
