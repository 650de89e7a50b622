package calibration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	"exitlens/pkg/models"
)

// profileName is the single named blob the store keeps. The profile is
// overwritten wholesale on each calibration run; there is no incremental merge.
const profileName = "market_profile"

// Store persists the MarketProfile as one named JSON blob.
type Store struct {
	DB *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{DB: db}
}

// Load reads the stored profile. Absence is a valid state, not an error:
// it returns (nil, nil) and callers fall back to the embedded defaults.
func (s *Store) Load(ctx context.Context) (*models.MarketProfile, error) {
	row := s.DB.QueryRowContext(ctx, `
		SELECT data FROM market_profiles WHERE name = ?
	`, profileName)

	var data string
	if err := row.Scan(&data); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("load profile: %w", err)
	}

	var p models.MarketProfile
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return &p, nil
}

// Save overwrites the stored profile.
func (s *Store) Save(ctx context.Context, p models.MarketProfile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	_, err = s.DB.ExecContext(ctx, `
		INSERT INTO market_profiles (name, data, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP
	`, profileName, string(data))
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// Snapshot holds the current in-process profile. Estimation and scoring read
// an immutable copy; a recalibration produces a new profile and swaps the
// reference, never mutates in place. Readers during a swap see either the old
// or the new profile, which is all the isolation the system needs.
type Snapshot struct {
	mu      sync.RWMutex
	profile models.MarketProfile
}

// NewSnapshot starts from the embedded defaults.
func NewSnapshot() *Snapshot {
	return &Snapshot{profile: DefaultProfile()}
}

// Get returns the current profile by value.
func (s *Snapshot) Get() models.MarketProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

// Set swaps in a new profile.
func (s *Snapshot) Set(p models.MarketProfile) {
	s.mu.Lock()
	s.profile = p
	s.mu.Unlock()
}
