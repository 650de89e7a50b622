package score

import (
	"context"

	"github.com/sirupsen/logrus"

	"exitlens/pkg/models"
)

// Scorer rates a submission 1-100 against the calibrated profile. Two
// implementations exist: the remote text-scoring oracle and the deterministic
// rule-based fallback. Which one answers is an availability decision made by
// the Service, not a branch inside the scoring logic.
type Scorer interface {
	Name() string
	Score(ctx context.Context, sub models.StartupSubmission, profile models.MarketProfile) (int, error)
}

// Service delegates to the oracle when one is configured and falls back to the
// rule-based scorer on any oracle failure. An oracle failure is never surfaced
// to the caller.
type Service struct {
	oracle   Scorer // nil when no oracle is configured
	fallback *Fallback
	logger   *logrus.Logger
}

// NewService builds a Service. oracle may be nil.
func NewService(oracle Scorer, fallback *Fallback, logger *logrus.Logger) *Service {
	return &Service{oracle: oracle, fallback: fallback, logger: logger}
}

// Score returns a success score in [1,100].
func (s *Service) Score(ctx context.Context, sub models.StartupSubmission, profile models.MarketProfile) int {
	if s.oracle != nil {
		n, err := s.oracle.Score(ctx, sub, profile)
		if err == nil {
			return clampScore(n)
		}
		if s.logger != nil {
			s.logger.WithError(err).WithField("scorer", s.oracle.Name()).Warn("oracle scoring failed, using rule-based fallback")
		}
	}
	n, _ := s.fallback.Score(ctx, sub, profile)
	return clampScore(n)
}

func clampScore(n int) int {
	if n < 1 {
		return 1
	}
	if n > 100 {
		return 100
	}
	return n
}
