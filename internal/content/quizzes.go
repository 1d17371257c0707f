package content

// Category groups educational content by habit area.
type Category string

const (
	CategoryFood     Category = "Food"
	CategoryTravel   Category = "Travel"
	CategoryHome     Category = "Home"
	CategoryShopping Category = "Shopping"
	CategoryWaste    Category = "Waste"
)

// Question is one multiple-choice quiz question.
type Question struct {
	ID                 string   `json:"id" firestore:"id"`
	Question           string   `json:"question" firestore:"question"`
	Options            []string `json:"options" firestore:"options"`
	CorrectAnswerIndex int      `json:"correctAnswerIndex" firestore:"correctAnswerIndex"`
	Explanation        string   `json:"explanation" firestore:"explanation"`
}

// Reward is paid on a quiz's first completion only.
type Reward struct {
	Points  int    `json:"points"`
	BadgeID string `json:"badgeId,omitempty"`
}

type Quiz struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    Category   `json:"category"`
	Questions   []Question `json:"questions"`
	Reward      Reward     `json:"reward"`
}

// Quizzes returns the quiz catalog. Quiz IDs are stored in user records; keep them stable.
func Quizzes() []Quiz {
	return []Quiz{
		{
			ID:          "sustainability-basics-1",
			Title:       "Sustainability Basics",
			Description: "Test your knowledge of fundamental environmental concepts at home.",
			Category:    CategoryHome,
			Reward:      Reward{Points: 50, BadgeID: "quiz_master"},
			Questions: []Question{
				{
					ID:                 "q1",
					Question:           "Which of the following is a major greenhouse gas responsible for global warming?",
					Options:            []string{"Oxygen", "Nitrogen", "Carbon Dioxide", "Argon"},
					CorrectAnswerIndex: 2,
					Explanation:        "Carbon Dioxide (CO2) is a primary greenhouse gas, trapping heat in the atmosphere and contributing to climate change.",
				},
				{
					ID:                 "q2",
					Question:           "What does \"composting\" primarily help reduce?",
					Options:            []string{"Plastic waste in oceans", "Methane emissions from landfills", "Air pollution from cars", "Water consumption"},
					CorrectAnswerIndex: 1,
					Explanation:        "Composting organic waste like food scraps prevents it from rotting in landfills, where it would produce methane, a potent greenhouse gas.",
				},
				{
					ID:                 "q3_home",
					Question:           "What are \"energy vampires\" in a household context?",
					Options:            []string{"Pests that eat electrical wires", "Appliances that draw power even when turned off", "A type of energy-efficient light bulb", "Solar panels that work at night"},
					CorrectAnswerIndex: 1,
					Explanation:        "Also known as \"phantom load\", energy vampires are devices that consume electricity even in standby mode, contributing to wasted energy.",
				},
				{
					ID:                 "q4_home",
					Question:           "When using a washing machine, which setting is the most energy-efficient for a standard load?",
					Options:            []string{"Hot Wash", "Warm Wash", "Cold Wash", "Extra Rinse Cycle"},
					CorrectAnswerIndex: 2,
					Explanation:        "Heating water accounts for about 90% of the energy your washing machine uses. Switching to cold water can save a significant amount of energy.",
				},
			},
		},
		{
			ID:          "food-footprint-quiz",
			Title:       "Your Food's Footprint",
			Description: "How much do you know about the environmental impact of what you eat?",
			Category:    CategoryFood,
			Reward:      Reward{Points: 50},
			Questions: []Question{
				{
					ID:                 "q1_food",
					Question:           "Which of these food items generally has the highest carbon footprint per kilogram?",
					Options:            []string{"Lentils", "Beef", "Chicken", "Potatoes"},
					CorrectAnswerIndex: 1,
					Explanation:        "Beef production is resource-intensive, requiring large amounts of land and water, and cattle produce significant methane emissions, leading to a high carbon footprint.",
				},
				{
					ID:                 "q2_food",
					Question:           "What is the best way to reduce the carbon footprint of your food shopping?",
					Options:            []string{"Buying only organic food", "Eating local and seasonal produce", "Avoiding all packaged food", "Only shopping at large supermarkets"},
					CorrectAnswerIndex: 1,
					Explanation:        "Eating local and seasonal produce reduces \"food miles\" (the distance food travels) and the energy required for out-of-season cultivation.",
				},
				{
					ID:                 "q3_food",
					Question:           "Approximately how much of the world's food produced for human consumption is lost or wasted each year?",
					Options:            []string{"About 10%", "About one-third (33%)", "About 50%", "About 5%"},
					CorrectAnswerIndex: 1,
					Explanation:        "According to the UN, about one-third of all food produced globally is lost or wasted, which has a massive carbon footprint due to methane emissions from landfills.",
				},
				{
					ID:                 "q4_food",
					Question:           "Which of these plant-based milks generally has the lowest environmental footprint (considering water and land use)?",
					Options:            []string{"Almond Milk", "Soy Milk", "Oat Milk", "Rice Milk"},
					CorrectAnswerIndex: 2,
					Explanation:        "Oat milk generally has a lower footprint compared to others. Almond milk is very water-intensive, and rice farming can produce significant methane emissions.",
				},
			},
		},
		{
			ID:          "travel-savvy-quiz",
			Title:       "Travel Savvy",
			Description: "How eco-friendly is your commute? Test your knowledge on sustainable travel.",
			Category:    CategoryTravel,
			Reward:      Reward{Points: 50},
			Questions: []Question{
				{
					ID:                 "q1_travel",
					Question:           "For a short-distance trip in a city, which of these transport modes has the lowest carbon footprint?",
					Options:            []string{"Cab", "Bus", "Motorcycle", "Cycling"},
					CorrectAnswerIndex: 3,
					Explanation:        "Cycling is a zero-emission mode of transport, making it the most environmentally friendly option for short trips.",
				},
				{
					ID:                 "q2_travel",
					Question:           "What is \"carbon offsetting\" in the context of air travel?",
					Options:            []string{"Flying on planes with special carbon filters", "Choosing to fly during off-peak hours", "Donating to a project that reduces greenhouse gases to compensate for your flight's emissions", "Packing lighter to reduce the plane's weight"},
					CorrectAnswerIndex: 2,
					Explanation:        "Carbon offsetting allows travelers to invest in environmental projects (like reforestation or renewable energy) to balance out the carbon emissions from their flights.",
				},
				{
					ID:                 "q3_travel",
					Question:           "Which of these is NOT a good practice for sustainable tourism?",
					Options:            []string{"Respecting local customs and culture", "Buying single-use plastic water bottles", "Supporting local businesses and artisans", "Conserving water and energy in your accommodation"},
					CorrectAnswerIndex: 1,
					Explanation:        "Single-use plastics are a major source of pollution. Carrying a reusable water bottle is a simple way to reduce waste while traveling.",
				},
				{
					ID:                 "q4_travel",
					Question:           "How does maintaining proper tire pressure on a car affect fuel efficiency?",
					Options:            []string{"It has no effect", "It slightly decreases efficiency", "It can significantly improve efficiency", "It only matters for electric cars"},
					CorrectAnswerIndex: 2,
					Explanation:        "Underinflated tires increase rolling resistance, forcing your engine to work harder and burn more fuel. Proper tire pressure can improve fuel efficiency by several percent.",
				},
			},
		},
		{
			ID:          "conscious-consumer-quiz",
			Title:       "Conscious Consumer",
			Description: "Think you're a smart shopper? Test your knowledge on sustainable purchasing.",
			Category:    CategoryShopping,
			Reward:      Reward{Points: 50},
			Questions: []Question{
				{
					ID:                 "q1_shop",
					Question:           "What is \"fast fashion\"?",
					Options:            []string{"Clothing that helps you run faster", "A style of clothing from the 1980s", "Inexpensive clothing produced rapidly in response to trends", "A brand of luxury sportswear"},
					CorrectAnswerIndex: 2,
					Explanation:        "Fast fashion is a business model characterized by cheap, trendy clothing that is mass-produced, leading to significant environmental and social costs.",
				},
				{
					ID:                 "q2_shop",
					Question:           "When buying clothes, which material is generally a more sustainable choice than conventional cotton?",
					Options:            []string{"Polyester", "Organic Cotton", "Acrylic", "Nylon"},
					CorrectAnswerIndex: 1,
					Explanation:        "Organic cotton is grown without synthetic pesticides and fertilizers and typically uses less water than conventional cotton, making it a more eco-friendly option.",
				},
				{
					ID:                 "q3_shop",
					Question:           "What does the \"circular economy\" concept mean in the context of shopping?",
					Options:            []string{"Only buying from stores that are circular in shape", "A system where products are designed to be reused, repaired, and recycled rather than thrown away", "A shopping festival that happens once a year", "An economy based on bartering goods"},
					CorrectAnswerIndex: 1,
					Explanation:        "The circular economy aims to eliminate waste by keeping products and materials in use for as long as possible through practices like recycling, upcycling, and repair.",
				},
				{
					ID:                 "q4_shop",
					Question:           "What is the main environmental problem associated with purchasing new electronics frequently?",
					Options:            []string{"They are too expensive", "They often require software updates", "The creation of \"e-waste\" which is difficult to recycle and contains toxic materials", "They use too much electricity"},
					CorrectAnswerIndex: 2,
					Explanation:        "Electronic waste, or e-waste, is a growing global problem. Discarded devices contain hazardous materials that can pollute the environment if not disposed of properly.",
				},
			},
		},
		{
			ID:          "e-waste-warriors-quiz",
			Title:       "E-Waste Warriors",
			Description: "Test your knowledge on the impact of electronics and managing e-waste.",
			Category:    CategoryWaste,
			Reward:      Reward{Points: 50},
			Questions: []Question{
				{
					ID:                 "q1_ewaste",
					Question:           "What is \"e-waste\"?",
					Options:            []string{"Energy-efficient waste", "Economical waste products", "Discarded electronic devices", "Extra wiring from installations"},
					CorrectAnswerIndex: 2,
					Explanation:        "E-waste refers to all types of electrical and electronic equipment that have been discarded as waste without the intent of re-use.",
				},
				{
					ID:                 "q2_ewaste",
					Question:           "Which of these is a major environmental concern with improperly disposed e-waste?",
					Options:            []string{"It takes up too much space in landfills", "It can be recycled into new products easily", "It can leak toxic materials like lead and mercury into the soil and water", "It attracts pests to landfill sites"},
					CorrectAnswerIndex: 2,
					Explanation:        "E-waste contains hazardous substances like lead, mercury, and cadmium, which can contaminate ecosystems and harm human health if not managed correctly.",
				},
				{
					ID:                 "q3_ewaste",
					Question:           "What is \"planned obsolescence\" in the electronics industry?",
					Options:            []string{"A plan for future software updates", "A strategy of designing products to have a limited lifespan, encouraging consumers to buy new ones", "A feature that makes devices more durable", "A recycling program planned by the manufacturer"},
					CorrectAnswerIndex: 1,
					Explanation:        "Planned obsolescence is a controversial business practice that drives consumerism by making products artificially non-functional or outdated after a certain period.",
				},
				{
					ID:                 "q4_ewaste",
					Question:           "What does the \"Right to Repair\" movement advocate for?",
					Options:            []string{"Free device repairs from the manufacturer for life", "Making parts, tools, and information available for consumers to repair their own devices", "Banning the sale of devices that can break", "Only allowing authorized dealers to perform repairs"},
					CorrectAnswerIndex: 1,
					Explanation:        "The Right to Repair movement aims to empower consumers to fix their own electronics, which extends product lifespans and reduces e-waste.",
				},
			},
		},	}
}

// QuizByID looks a quiz up in the catalog.
func QuizByID(id string) (Quiz, bool) {
	for _, q := range Quizzes() {
		if q.ID == id {
			return q, true
		}
	}
	return Quiz{}, false
}
