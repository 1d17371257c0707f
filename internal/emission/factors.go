package emission

import (
	"fmt"
	"io"

	"github.com/carboloom/carboloom/internal/habits"
	"go.uber.org/config"
)

// DefaultGridFactor is India's grid intensity in kg CO2e per kWh (CEA 2022-23).
const DefaultGridFactor = 0.71

// Appliance describes an appliance's average draw.
type Appliance struct {
	Watts            float64 `json:"watts" yaml:"watts"`
	RequiresQuantity bool    `json:"requiresQuantity" yaml:"requiresQuantity"`
}

// ClothingItem lists the materials an item can be made of and their per-item footprint.
type ClothingItem struct {
	Materials map[string]float64 `json:"materials" yaml:"materials"`
}

// Factors holds every lookup table used to convert a logged item into kg CO2e.
//
// Shopping is keyed category -> type -> item. Electronics is keyed category -> item.
type Factors struct {
	Travel      map[habits.TransportMode]float64              `json:"travel" yaml:"travel"`
	Shopping    map[string]map[string]map[string]ClothingItem `json:"shopping" yaml:"shopping"`
	Electronics map[string]map[string]float64                 `json:"electronics" yaml:"electronics"`
	Appliances  map[string]Appliance                          `json:"appliances" yaml:"appliances"`
	Food        map[string]float64                            `json:"food" yaml:"food"`
}

// DefaultFactors returns the built-in tables. Each call returns fresh maps.
func DefaultFactors() Factors {
	return Factors{
		Travel: map[habits.TransportMode]float64{
			habits.TransportWalking:      0,
			habits.TransportBicycle:      0,
			habits.TransportBus:          0.10,
			habits.TransportMetro:        0.03,
			habits.TransportTrain:        0.04,
			habits.TransportMotorcycle:   0.11,
			habits.TransportAutoRickshaw: 0.06,
			habits.TransportCab:          0.15,
		},
		Shopping: map[string]map[string]map[string]ClothingItem{
			"Clothing": {
				"Topwear": {
					"T-shirt": {Materials: map[string]float64{
						"Cotton": 2.1, "Organic Cotton": 1.5, "Polyester": 5.5, "Recycled Polyester": 3.0,
						"Linen": 1.5, "Hemp": 1.2, "Wool": 7.0, "Bamboo Viscose": 2.5, "Modal": 2.8,
						"Lyocell": 2.7, "Viscose": 3.0, "Rayon": 2.9, "Recycled Cotton": 1.0, "Spandex Blend": 2.5,
					}},
					"Shirt": {Materials: map[string]float64{
						"Cotton": 2.5, "Organic Cotton": 1.8, "Polyester": 6.0, "Recycled Polyester": 3.5,
						"Linen": 1.8, "Silk": 40.0, "Rayon": 3.0, "Tencel": 3.2, "Viscose": 3.5,
						"Bamboo Viscose": 3.0, "Modal": 3.1,
					}},
					"Kurta": {Materials: map[string]float64{
						"Cotton": 2.8, "Organic Cotton": 2.0, "Linen": 2.0, "Silk": 42.0, "Rayon": 3.2, "Viscose": 3.5,
					}},
					"Sweater": {Materials: map[string]float64{
						"Cotton": 4.0, "Wool": 15.0, "Recycled Wool": 6.0, "Cashmere": 60.0, "Polyester": 9.0,
						"Acrylic": 12.0, "Alpaca": 55.0, "Mohair": 50.0, "Felt": 16.0, "Cotton-Poly Blend": 7.0,
					}},
					"Jacket": {Materials: map[string]float64{
						"Down": 50.0, "Faux Fur": 25.0, "Recycled Polyester": 10.0, "Leather": 60.0, "Denim": 22.0,
						"Wool": 45.0, "Felt": 18.0, "Cordura": 15.0, "Gore-Tex (synthetic)": 30.0,
					}},
				},
				"Bottomwear": {
					"Jeans": {Materials: map[string]float64{
						"Cotton": 20.0, "Organic Cotton": 14.0, "Cotton-Polyester Blend": 25.0, "Hemp-Cotton Blend": 15.0,
						"Recycled Cotton": 5.0, "Lycra/Spandex Blend": 22.0, "Tencel Blend": 16.0,
					}},
					"Trousers": {Materials: map[string]float64{
						"Cotton": 7.0, "Polyester": 12.0, "Recycled Polyester": 8.0, "Wool": 20.0, "Linen": 5.0,
						"Corduroy": 7.5, "Viscose": 8.0, "Tencel": 6.0, "Rayon": 7.0, "Spandex Blend": 8.5,
					}},
					"Pajama": {Materials: map[string]float64{"Cotton": 4.0, "Linen": 2.5, "Silk": 30.0}},
					"Shorts": {Materials: map[string]float64{
						"Cotton": 3.0, "Linen": 2.0, "Polyester": 6.0, "Recycled Polyester": 4.5, "Spandex": 4.0,
						"Denim": 7.0, "Hemp": 1.8, "Tencel": 2.5,
					}},
				},
				"Footwear": {
					"Sneakers": {Materials: map[string]float64{
						"Canvas": 8.0, "Leather": 20.0, "Suede": 22.0, "Recycled Plastic": 6.0, "Synthetic Leather": 14.0,
						"Faux Leather": 14.0, "Hemp": 5.0, "Rubber": 10.0, "Recycled Rubber": 6.0,
						"Recycled Cotton": 4.0, "Algae Foam": 3.0,
					}},
					"Sandals": {Materials: map[string]float64{
						"Leather": 10.0, "Rubber": 5.0, "Cork": 2.0, "Synthetic": 7.0, "Faux Leather": 7.0,
						"EVA Foam": 4.0, "Hemp": 2.5, "Recycled Plastic": 4.5,
					}},
					"Chappals": {Materials: map[string]float64{"Leather": 9.0, "Rubber": 4.5, "Synthetic": 6.0}},
					"Boots": {Materials: map[string]float64{
						"Leather": 70.0, "Suede": 75.0, "Synthetic Leather": 35.0, "Rubber": 25.0,
						"Recycled Rubber sole": 20.0, "Gore-Tex": 40.0, "Faux Fur lining": 38.0,
					}},
				},
			},
		},
		Electronics: map[string]map[string]float64{
			"Mobile Devices":     {"Smartphone": 70, "Tablet": 130, "Smartwatch": 25},
			"Computing":          {"Laptop": 250, "Desktop PC": 450, "Monitor": 100},
			"Audio":              {"Headphones (Over-ear)": 30, "Earbuds (Wireless)": 15, "Bluetooth Speaker": 20},
			"Home Entertainment": {"Television (55-inch LED)": 500, "Gaming Console": 80},
			"Accessories":        {"Charger & Cable": 5, "Power Bank": 12},
		},
		Appliances: map[string]Appliance{
			"Television (LED)":          {Watts: 80},
			"Refrigerator":              {Watts: 100},
			"Air Conditioner (1.5 Ton)": {Watts: 1500},
			"Ceiling Fan":               {Watts: 75, RequiresQuantity: true},
			"LED Bulb":                  {Watts: 9, RequiresQuantity: true},
			"Washing Machine":           {Watts: 500},
			"Water Heater (Geyser)":     {Watts: 2000},
			"Microwave":                 {Watts: 1200},
			"Laptop":                    {Watts: 65},
		},
		Food: map[string]float64{
			"Red Meat":            2.5,
			"Poultry":             0.7,
			"Fish":                0.6,
			"Dairy":               0.5,
			"Plant-based Protein": 0.1,
		},
	}
}

// LoadFactors merges the built-in tables with an optional YAML override file.
// Keys present in the file replace the defaults; absent keys keep them.
// ${VAR} references in the file are expanded from the environment lookup.
func LoadFactors(path string, lookup func(string) (string, bool)) (Factors, error) {
	opts := []config.YAMLOption{config.Static(DefaultFactors())}
	if path != "" {
		opts = append(opts, config.File(path))
	}
	return populate(opts, lookup)
}

// ParseFactors is LoadFactors over an in-memory document.
func ParseFactors(r io.Reader, lookup func(string) (string, bool)) (Factors, error) {
	return populate([]config.YAMLOption{config.Static(DefaultFactors()), config.Source(r)}, lookup)
}

func populate(opts []config.YAMLOption, lookup func(string) (string, bool)) (Factors, error) {
	if lookup != nil {
		opts = append(opts, config.Expand(lookup))
	}
	provider, err := config.NewYAML(opts...)
	if err != nil {
		return Factors{}, fmt.Errorf("load emission factors: %w", err)
	}
	var f Factors
	if err := provider.Get(config.Root).Populate(&f); err != nil {
		return Factors{}, fmt.Errorf("decode emission factors: %w", err)
	}
	return f, nil
}
