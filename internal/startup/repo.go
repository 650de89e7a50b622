package startup

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"exitlens/pkg/models"
)

// Repo persists submissions and their computed results. The core never needs
// this data back; it exists so a stored estimate can be replayed by id.
type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

func (r *Repo) Save(ctx context.Context, s models.StoredSubmission) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode submission: %w", err)
	}
	_, err = r.DB.ExecContext(ctx, `
		INSERT INTO submissions (id, data, estimated_valuation, success_score)
		VALUES (?, ?, ?, ?)
	`, s.ID, string(data), s.Valuation.EstimatedValuation, s.SuccessScore)
	if err != nil {
		return fmt.Errorf("save submission: %w", err)
	}
	return nil
}

// GetByID returns (nil, nil) when no submission exists under the id.
func (r *Repo) GetByID(ctx context.Context, id string) (*models.StoredSubmission, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT data FROM submissions WHERE id = ?
	`, id)

	var data string
	if err := row.Scan(&data); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get submission: %w", err)
	}

	var s models.StoredSubmission
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return nil, fmt.Errorf("decode submission: %w", err)
	}
	return &s, nil
}
