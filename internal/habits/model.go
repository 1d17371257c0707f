package habits

// TransportMode identifies how a trip was made.
type TransportMode string

const (
	TransportWalking      TransportMode = "WALKING"
	TransportBicycle      TransportMode = "BICYCLE"
	TransportBus          TransportMode = "BUS"
	TransportMetro        TransportMode = "METRO"
	TransportTrain        TransportMode = "TRAIN"
	TransportMotorcycle   TransportMode = "MOTORCYCLE"
	TransportAutoRickshaw TransportMode = "AUTO_RICKSHAW"
	TransportCab          TransportMode = "CAB"
)

// TransportModes lists every known mode in display order.
var TransportModes = []TransportMode{
	TransportWalking,
	TransportBicycle,
	TransportBus,
	TransportMetro,
	TransportTrain,
	TransportMotorcycle,
	TransportAutoRickshaw,
	TransportCab,
}

// IsGreen reports whether the mode is human powered.
func (m TransportMode) IsGreen() bool {
	return m == TransportWalking || m == TransportBicycle
}

// IsPublic reports whether the mode counts as public transport for badges.
func (m TransportMode) IsPublic() bool {
	return m == TransportBus || m == TransportTrain
}

// Period selects the aggregation window for footprint queries.
type Period string

const (
	PeriodDaily   Period = "DAILY"
	PeriodWeekly  Period = "WEEKLY"
	PeriodMonthly Period = "MONTHLY"
)

// TravelEntry is one trip. Emissions is stamped at submission time with the
// factor in effect then; nil means it must be recomputed.
type TravelEntry struct {
	Distance  float64       `json:"distance" firestore:"distance" validate:"gte=0"`
	Mode      TransportMode `json:"mode" firestore:"mode" validate:"required"`
	Emissions *float64      `json:"emissions,omitempty" firestore:"emissions,omitempty" validate:"omitempty,gte=0"`
}

// ShoppingItem is one clothing purchase.
type ShoppingItem struct {
	Category string `json:"category" firestore:"category" validate:"required"`
	Type     string `json:"type" firestore:"type" validate:"required"`
	Item     string `json:"item" firestore:"item" validate:"required"`
	Material string `json:"material" firestore:"material" validate:"required"`
}

// ElectronicsItem is one electronics purchase.
type ElectronicsItem struct {
	Category string `json:"category" firestore:"category" validate:"required"`
	Item     string `json:"item" firestore:"item" validate:"required"`
}

// HomeApplianceUsage records how long an appliance ran.
type HomeApplianceUsage struct {
	Name     string  `json:"name" firestore:"name" validate:"required"`
	Hours    float64 `json:"hours" firestore:"hours" validate:"gte=0,lte=24"`
	Quantity int     `json:"quantity" firestore:"quantity" validate:"gte=0"`
}

// FoodEntry records servings of a food category.
type FoodEntry struct {
	Category string  `json:"category" firestore:"category" validate:"required"`
	Servings float64 `json:"servings" firestore:"servings" validate:"gte=0"`
}

// DailyHabits holds everything logged for one calendar day.
type DailyHabits struct {
	Travel      []TravelEntry        `json:"travel" firestore:"travel" validate:"dive"`
	Shopping    []ShoppingItem       `json:"shopping" firestore:"shopping" validate:"dive"`
	Electronics []ElectronicsItem    `json:"electronics" firestore:"electronics" validate:"dive"`
	Home        []HomeApplianceUsage `json:"home" firestore:"home" validate:"dive"`
	Food        []FoodEntry          `json:"food" firestore:"food" validate:"dive"`
}

// LogEntry is a user's record for a single date. Date is unique per user.
type LogEntry struct {
	Date   string      `json:"date" firestore:"date" validate:"required,datetime=2006-01-02"`
	Habits DailyHabits `json:"habits" firestore:"habits"`
}

// Empty returns DailyHabits with every list initialised.
func Empty() DailyHabits {
	return DailyHabits{
		Travel:      []TravelEntry{},
		Shopping:    []ShoppingItem{},
		Electronics: []ElectronicsItem{},
		Home:        []HomeApplianceUsage{},
		Food:        []FoodEntry{},
	}
}

// Clone returns a deep copy so callers can append without aliasing.
func (h DailyHabits) Clone() DailyHabits {
	out := DailyHabits{
		Travel:      append([]TravelEntry{}, h.Travel...),
		Shopping:    append([]ShoppingItem{}, h.Shopping...),
		Electronics: append([]ElectronicsItem{}, h.Electronics...),
		Home:        append([]HomeApplianceUsage{}, h.Home...),
		Food:        append([]FoodEntry{}, h.Food...),
	}
	for i, t := range out.Travel {
		if t.Emissions != nil {
			v := *t.Emissions
			out.Travel[i].Emissions = &v
		}
	}
	return out
}

// Append concatenates other's entries after h's, preserving order.
func (h *DailyHabits) Append(other DailyHabits) {
	h.Travel = append(h.Travel, other.Travel...)
	h.Shopping = append(h.Shopping, other.Shopping...)
	h.Electronics = append(h.Electronics, other.Electronics...)
	h.Home = append(h.Home, other.Home...)
	h.Food = append(h.Food, other.Food...)
}

// DistanceBy sums trip distances whose mode satisfies match.
func (h DailyHabits) DistanceBy(match func(TransportMode) bool) float64 {
	total := 0.0
	for _, t := range h.Travel {
		if match(t.Mode) {
			total += t.Distance
		}
	}
	return total
}

// HasTrip reports whether any trip satisfies match.
func (h DailyHabits) HasTrip(match func(TransportMode) bool) bool {
	for _, t := range h.Travel {
		if match(t.Mode) {
			return true
		}
	}
	return false
}
