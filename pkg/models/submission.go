package models

import "time"

// StartupSubmission is the ephemeral payload a founder submits for estimation.
// Missing or malformed numeric fields are coerced to zero rather than rejected;
// categories beyond the cap are dropped.
type StartupSubmission struct {
	Tagline        string   `json:"tagline"`
	UserBase       int      `json:"user_base"`
	MonthlyTraffic int      `json:"monthly_traffic"`
	MonthlyCost    int      `json:"monthly_cost"`
	Categories     []string `json:"categories"` // 0-3 category names
}

// ValuationRange is the fixed ±30% band around the point estimate.
type ValuationRange struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

// ValuationBreakdown exposes the independent components behind an estimate.
type ValuationBreakdown struct {
	RevenueComponent    float64 `json:"revenue_component"`
	TrafficComponent    float64 `json:"traffic_component"`
	CommunityComponent  float64 `json:"community_component"`
	EffectiveMultiplier float64 `json:"effective_multiplier"`
}

// ValuationResult is the derived estimate. Never persisted by the core;
// the submission repo may store a copy alongside its submission.
type ValuationResult struct {
	EstimatedValuation int                `json:"estimated_valuation"`
	IsAtCeiling        bool               `json:"is_at_ceiling"`
	Range              ValuationRange     `json:"valuation_range"`
	Breakdown          ValuationBreakdown `json:"breakdown"`
}

// StoredSubmission is a submission plus its computed results, as persisted by
// the submission repo keyed by a generated id.
type StoredSubmission struct {
	ID           string            `json:"id"`
	Submission   StartupSubmission `json:"submission"`
	Valuation    ValuationResult   `json:"valuation"`
	SuccessScore int               `json:"success_score"`
	CreatedAt    time.Time         `json:"created_at"`
}
