package calibration

import (
	"time"

	"exitlens/pkg/models"
)

// DefaultProfile returns the embedded fallback profile used when no calibration
// has ever run or the listings source yields nothing. Values are plausible
// static constants, not derived statistics; LastUpdated is zero so callers can
// tell defaults from a real calibration.
func DefaultProfile() models.MarketProfile {
	return models.MarketProfile{
		LastUpdated:   time.Time{},
		TotalListings: 0,
		SoldListings:  0,
		CategoryMultipliers: map[string]float64{
			"ai":           1.6,
			"saas":         1.4,
			"devtools":     1.3,
			"fintech":      1.3,
			"ecommerce":    1.2,
			"marketplace":  1.2,
			"newsletter":   1.1,
			"mobile-app":   1.1,
			"productivity": 1.0,
			"community":    1.0,
			"edtech":       1.0,
			"content":      0.9,
			"blog":         0.9,
			"directory":    0.9,
			"agency":       0.8,
			"crypto":       0.8,
		},
		AvgRevenueMultiple: 2.5,
		AvgProfitMultiple:  3.0,
		AvgTrafficValue:    0.12,
		AvgCommunityValue:  5.0,
		SuccessPatterns: models.SuccessPatterns{
			TopCategories: []string{"saas", "ai", "ecommerce", "newsletter", "content"},
			AvgSoldPrice:  14500,
			AvgUserBase:   2800,
			AvgTraffic:    21000,
		},
		TopPerformers: models.TopPerformers{
			MainCategories: []models.CategoryPerformance{
				{Name: "saas", SuccessRate: 0.42, AvgPrice: 18200, ListingCount: 60},
				{Name: "ecommerce", SuccessRate: 0.36, AvgPrice: 12400, ListingCount: 45},
				{Name: "content", SuccessRate: 0.31, AvgPrice: 8900, ListingCount: 38},
				{Name: "marketplace", SuccessRate: 0.29, AvgPrice: 9600, ListingCount: 21},
				{Name: "agency", SuccessRate: 0.24, AvgPrice: 7100, ListingCount: 17},
			},
			SpecificCategories: []models.CategoryPerformance{
				{Name: "ai", SuccessRate: 0.48, AvgPrice: 22600, ListingCount: 34},
				{Name: "devtools", SuccessRate: 0.40, AvgPrice: 16800, ListingCount: 19},
				{Name: "newsletter", SuccessRate: 0.38, AvgPrice: 9800, ListingCount: 26},
				{Name: "browser-ext", SuccessRate: 0.35, AvgPrice: 7400, ListingCount: 14},
				{Name: "fintech", SuccessRate: 0.33, AvgPrice: 15200, ListingCount: 11},
			},
			Keywords: []models.KeywordStat{
				{Word: "automation", Frequency: 24, AvgPrice: 19800},
				{Word: "analytics", Frequency: 18, AvgPrice: 17200},
				{Word: "subscription", Frequency: 16, AvgPrice: 14900},
				{Word: "dashboard", Frequency: 14, AvgPrice: 13100},
				{Word: "generator", Frequency: 12, AvgPrice: 11800},
			},
		},
	}
}
