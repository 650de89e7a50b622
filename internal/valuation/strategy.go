package valuation

import (
	"math"

	"exitlens/internal/category"
	"exitlens/pkg/models"
)

// Strategy is one valuation model over a submission and a calibrated profile.
// Two models exist: the simple linear one and the tiered, penalty-aware one.
// The tiered model is normative; the simple model stays pluggable behind this
// interface.
type Strategy interface {
	Name() string
	Estimate(sub models.StartupSubmission, profile models.MarketProfile) models.ValuationResult
}

// Config holds the valuation constants that are business calibration rather
// than structure. They are decisions recomputed from real outcome data over
// time, so they live here instead of inline.
type Config struct {
	Ceiling      int     // pre-revenue valuation ceiling
	Floor        int     // minimum when any meaningful signal is present
	TestDataCap  int     // hard cap for placeholder/test submissions
	NearEmptyCap int     // hard cap when traction and tagline are all absent
	Conversion   float64 // assumed pre-revenue user -> paid conversion, $/user/month
	QualityMin   float64 // lower clamp of the quality multiplier
	QualityMax   float64 // upper clamp of the quality multiplier

	// minimal two-factor fallback when the full model fails
	FallbackUserValue    float64
	FallbackTrafficValue float64
	FallbackFloor        int
}

// DefaultConfig returns the normative constants of the tiered model.
func DefaultConfig() Config {
	return Config{
		Ceiling:      500000,
		Floor:        500,
		TestDataCap:  1000,
		NearEmptyCap: 2500,
		Conversion:   0.03,
		QualityMin:   0.5,
		QualityMax:   1.8,

		FallbackUserValue:    2.0,
		FallbackTrafficValue: 0.05,
		FallbackFloor:        100,
	}
}

const maxCategories = 3

// sanitize coerces malformed fields to safe defaults instead of rejecting:
// negative numbers become zero and categories are soft-capped.
func sanitize(sub models.StartupSubmission) models.StartupSubmission {
	if sub.UserBase < 0 {
		sub.UserBase = 0
	}
	if sub.MonthlyTraffic < 0 {
		sub.MonthlyTraffic = 0
	}
	if sub.MonthlyCost < 0 {
		sub.MonthlyCost = 0
	}
	if len(sub.Categories) > maxCategories {
		sub.Categories = sub.Categories[:maxCategories]
	}
	return sub
}

// categoryFactor averages the calibrated multiplier across the submission's
// categories and applies a small diversification bonus for covering more than
// one. No categories means the neutral 1.0.
func categoryFactor(categories []string, multipliers map[string]float64) float64 {
	if len(categories) == 0 {
		return 1.0
	}
	var sum float64
	for _, c := range categories {
		sum += category.Multiplier(c, multipliers)
	}
	factor := sum / float64(len(categories))
	switch len(categories) {
	case 2:
		factor *= 1.05
	case 3:
		factor *= 1.10
	}
	return factor
}

// finish applies ceiling, rounding and the ±30% band shared by all strategies.
func finish(value float64, breakdown models.ValuationBreakdown, ceiling int) models.ValuationResult {
	atCeiling := value >= float64(ceiling)
	if atCeiling {
		value = float64(ceiling)
	}
	if value < 0 {
		value = 0
	}
	est := int(math.Round(value))
	return models.ValuationResult{
		EstimatedValuation: est,
		IsAtCeiling:        atCeiling,
		Range: models.ValuationRange{
			Low:  int(math.Round(value * 0.7)),
			High: int(math.Round(value * 1.3)),
		},
		Breakdown: breakdown,
	}
}
