package calibration

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"exitlens/internal/listings"
	"exitlens/internal/live"
	"exitlens/pkg/models"
	"exitlens/pkg/utils"
)

// Service orchestrates a calibration run: fetch listings, build the profile,
// swap the in-process snapshot, persist, broadcast. Runs are idempotent over
// the same listings snapshot; the weekly schedule makes last-writer-wins an
// acceptable concurrency model.
type Service struct {
	Source  listings.Source
	Builder *Builder
	Store   *Store
	Snap    *Snapshot
	Hub     *live.Hub // optional
	Logger  *logrus.Logger

	// FetchRetry overrides the default bounded retry for the listings fetch.
	FetchRetry *utils.RetryConfig
}

// Restore loads the persisted profile into the snapshot at startup. A missing
// profile is a valid state: the snapshot keeps the embedded defaults.
func (s *Service) Restore(ctx context.Context) error {
	p, err := s.Store.Load(ctx)
	if err != nil {
		return err
	}
	if p == nil {
		s.Logger.Info("no stored market profile, serving embedded defaults")
		return nil
	}
	s.Snap.Set(*p)
	s.Logger.WithField("last_updated", p.LastUpdated).Info("market profile restored")
	return nil
}

// Recalibrate runs one full calibration. An unreachable or empty source never
// fails the run: the current snapshot (at worst the embedded defaults) stays
// in effect. A persistence failure is logged and the fresh profile is still
// served; the stored copy stays stale until the next successful write.
func (s *Service) Recalibrate(ctx context.Context) models.MarketProfile {
	retry := s.FetchRetry
	if retry == nil {
		retry = &utils.RetryConfig{MaxAttempts: 3, BaseDelay: 2 * time.Second, Logger: s.Logger}
	}

	var records []models.ListingRecord
	err := retry.Do("listings fetch", func() error {
		var ferr error
		records, ferr = s.Source.FetchAll(ctx)
		return ferr
	})
	if err != nil {
		s.Logger.WithError(err).Warn("listings fetch failed, keeping current profile")
		return s.Snap.Get()
	}
	if len(records) == 0 {
		s.Logger.Warn("listings source returned no records, keeping current profile")
		return s.Snap.Get()
	}

	profile := s.Builder.Build(records)
	s.Snap.Set(profile)

	if err := s.Store.Save(ctx, profile); err != nil {
		s.Logger.WithError(err).Error("persisting market profile failed, serving unsaved profile")
	}

	if s.Hub != nil {
		s.Hub.BroadcastJSON(live.ProfileUpdated{
			Type:        "profile.updated",
			LastUpdated: profile.LastUpdated,
			Categories:  len(profile.CategoryMultipliers),
			At:          time.Now(),
		})
	}

	s.Logger.WithFields(logrus.Fields{
		"listings":   profile.TotalListings,
		"sold":       profile.SoldListings,
		"categories": len(profile.CategoryMultipliers),
	}).Info("market profile recalibrated")

	return profile
}
