package models

import "time"

// MarketProfile is the calibrated aggregate derived from a batch of marketplace
// listings. It is the system's only durable artifact: created by the calibration
// builder, overwritten wholesale on each run, and read by every estimation and
// scoring request. When no profile has ever been computed the embedded defaults
// stand in, so a profile is always available.
type MarketProfile struct {
	LastUpdated   time.Time `json:"last_updated"`
	TotalListings int       `json:"total_listings"`
	SoldListings  int       `json:"sold_listings"`

	// CategoryMultipliers maps category name -> multiplier in [0.6, 2.0].
	// Categories below the minimum weighted sample are omitted entirely.
	CategoryMultipliers map[string]float64 `json:"category_multipliers"`

	AvgRevenueMultiple float64 `json:"avg_revenue_multiple"`
	AvgProfitMultiple  float64 `json:"avg_profit_multiple"`
	AvgTrafficValue    float64 `json:"avg_traffic_value"`   // $ per monthly visit
	AvgCommunityValue  float64 `json:"avg_community_value"` // $ per user

	SuccessPatterns SuccessPatterns `json:"success_patterns"`
	TopPerformers   TopPerformers   `json:"top_performers"`
}

// SuccessPatterns summarizes what sold listings look like.
type SuccessPatterns struct {
	TopCategories []string `json:"top_categories"` // most frequent first
	AvgSoldPrice  float64  `json:"avg_sold_price"`
	AvgUserBase   float64  `json:"avg_user_base"`
	AvgTraffic    float64  `json:"avg_traffic"`
}

// TopPerformers is the ranked projection served by the reporter endpoint.
type TopPerformers struct {
	MainCategories     []CategoryPerformance `json:"main_categories"`
	SpecificCategories []CategoryPerformance `json:"specific_categories"`
	Keywords           []KeywordStat         `json:"keywords"`
}

// CategoryPerformance is one ranked category row.
type CategoryPerformance struct {
	Name         string  `json:"name"`
	SuccessRate  float64 `json:"success_rate"` // in [0,1]
	AvgPrice     float64 `json:"avg_price"`
	ListingCount int     `json:"listing_count"`
}

// KeywordStat is one ranked title/description keyword among sold listings.
type KeywordStat struct {
	Word      string  `json:"word"`
	Frequency int     `json:"frequency"`
	AvgPrice  float64 `json:"avg_price"`
}
