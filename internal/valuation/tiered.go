package valuation

import (
	"exitlens/pkg/models"
)

// Tiered is the normative valuation model: tiered per-unit values, a clamped
// quality multiplier, and reality-check caps that stop near-empty submissions
// from compounding multipliers into implausible numbers.
type Tiered struct {
	cfg Config
}

// NewTiered creates the tiered strategy.
func NewTiered(cfg Config) *Tiered {
	return &Tiered{cfg: cfg}
}

func (t *Tiered) Name() string { return "tiered" }

// userTierMultiplier scales the per-user value by absolute user-base
// magnitude: large user bases are disproportionately attractive to acquirers,
// so marginal per-user value rises with scale.
func userTierMultiplier(users int) float64 {
	switch {
	case users >= 10000:
		return 3.0
	case users >= 5000:
		return 2.0
	case users >= 1000:
		return 1.5
	case users >= 500:
		return 1.0
	default:
		return 0.5
	}
}

// trafficTierMultiplier does the same for monthly traffic, on top of the
// calibrated per-visit value.
func trafficTierMultiplier(traffic int) float64 {
	switch {
	case traffic >= 100000:
		return 2.5
	case traffic >= 50000:
		return 2.0
	case traffic >= 10000:
		return 1.5
	case traffic >= 1000:
		return 1.0
	default:
		return 0.5
	}
}

// Estimate runs the full tiered pipeline: components, category factor,
// quality factor, reality caps, floor, ceiling.
func (t *Tiered) Estimate(sub models.StartupSubmission, profile models.MarketProfile) models.ValuationResult {
	sub = sanitize(sub)

	community := float64(sub.UserBase) * profile.AvgCommunityValue * userTierMultiplier(sub.UserBase)
	traffic := float64(sub.MonthlyTraffic) * profile.AvgTrafficValue * trafficTierMultiplier(sub.MonthlyTraffic)

	// assumed pre-revenue conversion, annualized, at the calibrated multiple
	estimatedMRR := float64(sub.UserBase) * t.cfg.Conversion
	revenue := estimatedMRR * 12 * profile.AvgRevenueMultiple

	base := community + traffic + revenue

	catFactor := categoryFactor(sub.Categories, profile.CategoryMultipliers)
	quality := t.qualityMultiplier(sub)

	value := base * catFactor * quality

	placeholder := IsPlaceholder(sub.Tagline)
	switch {
	case placeholder:
		if value > float64(t.cfg.TestDataCap) {
			value = float64(t.cfg.TestDataCap)
		}
	case sub.UserBase < 10 && sub.MonthlyTraffic < 100 && IsTrivial(sub.Tagline):
		if value > float64(t.cfg.NearEmptyCap) {
			value = float64(t.cfg.NearEmptyCap)
		}
	}

	if hasSignal(sub) && value < float64(t.cfg.Floor) {
		value = float64(t.cfg.Floor)
	}

	return finish(value, models.ValuationBreakdown{
		RevenueComponent:    revenue,
		TrafficComponent:    traffic,
		CommunityComponent:  community,
		EffectiveMultiplier: catFactor * quality,
	}, t.cfg.Ceiling)
}

// qualityMultiplier adjusts for tagline signal and cost efficiency, clamped so
// no single heuristic can zero out or explode the estimate.
func (t *Tiered) qualityMultiplier(sub models.StartupSubmission) float64 {
	q := 1.0

	if HasValueProposition(sub.Tagline) {
		q += 0.1
	}
	if HasTargetMarket(sub.Tagline) {
		q += 0.1
	}
	if IsTrivial(sub.Tagline) {
		q -= 0.2
	}

	if sub.MonthlyCost > 0 {
		traction := float64(sub.UserBase) + float64(sub.MonthlyTraffic)/10
		ratio := traction / float64(sub.MonthlyCost)
		if ratio > 50 {
			q += 0.15
		} else if ratio < 1 && sub.MonthlyCost > 1000 {
			q -= 0.2
		}
	}

	if q < t.cfg.QualityMin {
		q = t.cfg.QualityMin
	}
	if q > t.cfg.QualityMax {
		q = t.cfg.QualityMax
	}
	return q
}

// hasSignal reports whether the submission carries any meaningful signal,
// which earns it the minimum floor.
func hasSignal(sub models.StartupSubmission) bool {
	return sub.UserBase > 0 || sub.MonthlyTraffic > 0 || !IsTrivial(sub.Tagline)
}
