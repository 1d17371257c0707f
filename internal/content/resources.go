package content

// Resource is a curated external link about climate and sustainability.
type Resource struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

func Resources() []Resource {
	return []Resource{
		{
			Title:       "UN Climate Change (UNFCCC)",
			Description: "The official source for international climate policy, negotiations, and news from the United Nations.",
			URL:         "https://unfccc.int/",
		},
		{
			Title:       "NASA: Global Climate Change",
			Description: "Explore data, visualizations, and vital signs of the planet's climate from a leading scientific agency.",
			URL:         "https://climate.nasa.gov/",
		},
		{
			Title:       "Project Drawdown",
			Description: "A leading resource for discovering and understanding a comprehensive portfolio of climate solutions.",
			URL:         "https://drawdown.org/",
		},
		{
			Title:       "The World Bank | Climate Change",
			Description: "Focuses on the intersection of climate action and global development, providing data and reports.",
			URL:         "https://www.worldbank.org/en/topic/climatechange",
		},
		{
			Title:       "Ministry of Environment, Forest and Climate Change (India)",
			Description: "The official government portal for India-specific environmental policies, reports, and initiatives.",
			URL:         "https://moefcc.gov.in/",
		},
		{
			Title:       "Centre for Science and Environment (CSE India)",
			Description: "A respected Indian public interest research and advocacy organisation based in New Delhi.",
			URL:         "https://www.cseindia.org/",
		},
	}
}
