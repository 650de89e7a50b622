package valuation

import (
	"exitlens/pkg/models"
)

// Simple is the earlier linear model: flat per-unit values, no quality
// adjustment and no reality caps. Kept behind the Strategy interface so the
// two calibrations stay comparable; the tiered model is the default.
type Simple struct {
	cfg Config
}

// NewSimple creates the simple linear strategy.
func NewSimple(cfg Config) *Simple {
	return &Simple{cfg: cfg}
}

func (s *Simple) Name() string { return "simple" }

func (s *Simple) Estimate(sub models.StartupSubmission, profile models.MarketProfile) models.ValuationResult {
	sub = sanitize(sub)

	community := float64(sub.UserBase) * profile.AvgCommunityValue
	traffic := float64(sub.MonthlyTraffic) * profile.AvgTrafficValue
	revenue := float64(sub.UserBase) * s.cfg.Conversion * 12 * profile.AvgRevenueMultiple

	catFactor := categoryFactor(sub.Categories, profile.CategoryMultipliers)
	value := (community + traffic + revenue) * catFactor

	return finish(value, models.ValuationBreakdown{
		RevenueComponent:    revenue,
		TrafficComponent:    traffic,
		CommunityComponent:  community,
		EffectiveMultiplier: catFactor,
	}, s.cfg.Ceiling)
}
