package valuation

import (
	"math"

	"github.com/sirupsen/logrus"

	"exitlens/pkg/models"
)

// Estimator wraps a Strategy with the never-fail guarantee: whatever happens
// inside the model, the caller gets a plausible, bounded result in the same
// shape. A failure degrades to the minimal two-factor estimate.
type Estimator struct {
	strategy Strategy
	cfg      Config
	logger   *logrus.Logger
}

// NewEstimator builds an Estimator around the given strategy.
func NewEstimator(strategy Strategy, cfg Config, logger *logrus.Logger) *Estimator {
	return &Estimator{strategy: strategy, cfg: cfg, logger: logger}
}

// Estimate runs the configured strategy, falling back to the minimal estimate
// on any panic inside the model.
func (e *Estimator) Estimate(sub models.StartupSubmission, profile models.MarketProfile) (result models.ValuationResult) {
	defer func() {
		if r := recover(); r != nil {
			if e.logger != nil {
				e.logger.WithField("panic", r).Error("valuation model failed, using fallback estimate")
			}
			result = e.fallback(sub)
		}
	}()
	return e.strategy.Estimate(sub, profile)
}

// fallback is the minimal two-factor estimate: users and traffic at fixed
// per-unit values, floored.
func (e *Estimator) fallback(sub models.StartupSubmission) models.ValuationResult {
	sub = sanitize(sub)
	community := float64(sub.UserBase) * e.cfg.FallbackUserValue
	traffic := float64(sub.MonthlyTraffic) * e.cfg.FallbackTrafficValue

	value := community + traffic
	value = math.Max(value, float64(e.cfg.FallbackFloor))

	return finish(value, models.ValuationBreakdown{
		TrafficComponent:    traffic,
		CommunityComponent:  community,
		EffectiveMultiplier: 1.0,
	}, e.cfg.Ceiling)
}
