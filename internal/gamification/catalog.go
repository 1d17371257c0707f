package gamification

// Badge and challenge IDs are persisted in user records; keep them stable.
const (
	BadgeFirstLog       = "first_log"
	BadgeConsistent7    = "consistent_logger_7"
	BadgeCommuterHero   = "commuter_hero"
	BadgePedalPower     = "pedal_power"
	BadgeEcoShopper     = "eco_shopper"
	BadgeLowCarbonDay   = "low_carbon_day"
	BadgeStreakMaster5  = "streak_master_5"
	BadgeQuizMaster     = "quiz_master"
	ChallengeLogging5   = "logging_streak_5"
	ChallengeLowCarbon3 = "low_carbon_day_streak_3"
	ChallengeGreenRun3  = "green_commute_streak_3"
	ChallengeGreen10    = "green_commute_10"
)

func badgeDefinitions() []Badge {
	return []Badge{
		{ID: BadgeFirstLog, Name: "Eco Starter", Description: "Logged your first activity!", Icon: "🌱"},
		{ID: BadgeConsistent7, Name: "Habit Builder", Description: "Logged habits on 7 different days.", Icon: "🗓️"},
		{ID: BadgeCommuterHero, Name: "Commuter Hero", Description: "Traveled over 50km using public transport (Bus/Train).", Icon: "🚌"},
		{ID: BadgePedalPower, Name: "Pedal Power", Description: "Cycled for more than 20km.", Icon: "🚲"},
		{ID: BadgeEcoShopper, Name: "Eco Shopper", Description: "Purchased 5 items made from sustainable materials like organic or recycled.", Icon: "♻️"},
		{ID: BadgeLowCarbonDay, Name: "Carbon Conscious", Description: "Achieved a \"Low Carbon Day\" (under 5kg CO2e)!", Icon: "🍃"},
		{ID: BadgeStreakMaster5, Name: "Streak Master", Description: "Completed the 5-day logging streak challenge!", Icon: "🏅"},
		{ID: BadgeQuizMaster, Name: "Eco Scholar", Description: "Completed your first sustainability quiz!", Icon: "🎓"},
	}
}

func challengeDefinitions() []Challenge {
	return []Challenge{
		{
			ID:          ChallengeLogging5,
			Name:        "Logging Streak",
			Description: "Log your habits for 5 consecutive days to earn a big bonus!",
			Icon:        "🔥",
			Goal:        5,
			Unit:        "days",
			Type:        ChallengeStreak,
			Reward:      100,
			BadgeID:     BadgeStreakMaster5,
		},
		{
			ID:          ChallengeLowCarbon3,
			Name:        "Low Carbon Streak",
			Description: "Keep your daily footprint under 5kg for 3 days in a row.",
			Icon:        "🌿",
			Goal:        3,
			Unit:        "days",
			Type:        ChallengeStreak,
			Reward:      75,
		},
		{
			ID:          ChallengeGreenRun3,
			Name:        "Green Commute Streak",
			Description: "Use walking or cycling for your commute for 3 consecutive days.",
			Icon:        "🚴",
			Goal:        3,
			Unit:        "days",
			Type:        ChallengeStreak,
			Reward:      60,
		},
		{
			ID:          ChallengeGreen10,
			Name:        "Green Commuter",
			Description: "Travel 10km by walking or cycling in a single day.",
			Icon:        "🏃",
			Goal:        10,
			Unit:        "km",
			Type:        ChallengeDaily,
			Reward:      30,
		},
	}
}

// BadgeByID looks a badge up in the static catalog.
func BadgeByID(id string) (Badge, bool) {
	for _, b := range badgeDefinitions() {
		if b.ID == id {
			return b, true
		}
	}
	return Badge{}, false
}
