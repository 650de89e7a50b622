package score

import (
	"context"
	"strings"

	"exitlens/internal/category"
	"exitlens/internal/valuation"
	"exitlens/pkg/models"
)

// Fallback is the deterministic rule-based scorer: a weighted, tiered point
// system over traction, tagline quality, calibrated category strength and cost
// efficiency. It never fails.
type Fallback struct {
	cfg FallbackConfig
}

// FallbackConfig holds the point-table ceilings and caps. The tier thresholds
// themselves are fixed step functions below.
type FallbackConfig struct {
	QualityCap     int // max points from tagline heuristics
	PlaceholderCap int // overall ceiling for detected test submissions
}

// DefaultFallbackConfig returns the normative point caps.
func DefaultFallbackConfig() FallbackConfig {
	return FallbackConfig{
		QualityCap:     25,
		PlaceholderCap: 15,
	}
}

// NewFallback creates the rule-based scorer.
func NewFallback(cfg FallbackConfig) *Fallback {
	return &Fallback{cfg: cfg}
}

func (f *Fallback) Name() string { return "rules" }

// Score sums the tiered sub-scores, applies red-flag deductions and the
// placeholder cap, and clamps to [1,100]. The error return is always nil; it
// exists to satisfy the Scorer interface.
func (f *Fallback) Score(_ context.Context, sub models.StartupSubmission, profile models.MarketProfile) (int, error) {
	if sub.UserBase < 0 {
		sub.UserBase = 0
	}
	if sub.MonthlyTraffic < 0 {
		sub.MonthlyTraffic = 0
	}
	if sub.MonthlyCost < 0 {
		sub.MonthlyCost = 0
	}

	total := userPoints(sub.UserBase)
	total += trafficPoints(sub.MonthlyTraffic)
	total += f.qualityPoints(sub.Tagline)
	total += categoryPoints(sub.Categories, profile.CategoryMultipliers)
	total += efficiencyPoints(sub)

	// data-quality red flags
	if strings.TrimSpace(sub.Tagline) == "" {
		total -= 5
	}
	if sub.UserBase == 0 && sub.MonthlyTraffic == 0 {
		total -= 5
	}

	if valuation.IsPlaceholder(sub.Tagline) && total > f.cfg.PlaceholderCap {
		total = f.cfg.PlaceholderCap
	}

	if total < 1 {
		total = 1
	}
	if total > 100 {
		total = 100
	}
	return total, nil
}

// userPoints is the tiered user-base sub-score.
func userPoints(users int) int {
	switch {
	case users >= 10000:
		return 20
	case users >= 5000:
		return 16
	case users >= 1000:
		return 12
	case users >= 500:
		return 8
	case users >= 100:
		return 5
	case users > 0:
		return 3
	default:
		return 2
	}
}

// trafficPoints is the tiered monthly-traffic sub-score.
func trafficPoints(traffic int) int {
	switch {
	case traffic >= 100000:
		return 20
	case traffic >= 50000:
		return 16
	case traffic >= 10000:
		return 12
	case traffic >= 1000:
		return 8
	case traffic >= 100:
		return 5
	case traffic > 0:
		return 3
	default:
		return 2
	}
}

// qualityPoints scores the tagline: keyword bonuses, length bonuses, a floor
// for any non-empty tagline, capped at QualityCap. Placeholder text earns
// nothing here; the overall cap punishes it further.
func (f *Fallback) qualityPoints(tagline string) int {
	t := strings.TrimSpace(tagline)
	if t == "" {
		return 0
	}
	if valuation.IsPlaceholder(t) {
		return 0
	}

	points := 3 // floor for a minimal real tagline
	if valuation.HasValueProposition(t) {
		points += 6
	}
	if valuation.HasTargetMarket(t) {
		points += 6
	}
	if len(strings.Fields(t)) >= 6 {
		points += 4
	}
	if len(t) >= 40 {
		points += 4
	}

	if points > f.cfg.QualityCap {
		points = f.cfg.QualityCap
	}
	return points
}

// categoryPoints buckets the averaged calibrated multiplier into point tiers,
// plus a small bonus per extra category.
func categoryPoints(categories []string, multipliers map[string]float64) int {
	if len(categories) == 0 {
		return 3
	}
	if len(categories) > 3 {
		categories = categories[:3]
	}

	var sum float64
	for _, c := range categories {
		sum += category.Multiplier(c, multipliers)
	}
	avg := sum / float64(len(categories))

	var points int
	switch {
	case avg >= 1.5:
		points = 15
	case avg >= 1.2:
		points = 12
	case avg >= 1.0:
		points = 8
	case avg >= 0.8:
		points = 5
	default:
		points = 3
	}
	points += 2 * (len(categories) - 1)
	return points
}

// efficiencyPoints rewards traction that does not burn cash.
func efficiencyPoints(sub models.StartupSubmission) int {
	traction := float64(sub.UserBase) + float64(sub.MonthlyTraffic)/10
	if sub.MonthlyCost <= 0 {
		if traction > 0 {
			return 8 // traction at zero reported cost
		}
		return 0
	}

	ratio := traction / float64(sub.MonthlyCost)
	switch {
	case ratio >= 50:
		return 15
	case ratio >= 10:
		return 12
	case ratio >= 1:
		return 8
	case ratio > 0:
		return 3
	default:
		return 0
	}
}

// multiplierFor is shared with the oracle prompt builder.
func multiplierFor(name string, profile models.MarketProfile) float64 {
	return category.Multiplier(name, profile.CategoryMultipliers)
}
