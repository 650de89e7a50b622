package models

// ListingRecord is the normalized form of one marketplace listing as returned
// by the external acquisitions source. Records are fetched fresh on every
// calibration run, read-only, and never persisted individually.
type ListingRecord struct {
	ID            string   `json:"id"`
	Price         float64  `json:"price"`                    // asking/sale price, >= 0
	Category      string   `json:"category,omitempty"`       // primary specific category
	CategoryList  []string `json:"categories,omitempty"`     // legacy multi-category field
	BroadCategory string   `json:"broad_category,omitempty"` // umbrella category
	Sold          bool     `json:"sold"`
	Metrics       Metrics  `json:"metrics"`
	Title         string   `json:"title,omitempty"`
	Description   string   `json:"description,omitempty"`
}

// Metrics carries the optional traction numbers a listing may expose.
// Zero means "not reported": calibration must never let a missing metric
// corrupt another listing's contribution.
type Metrics struct {
	Traffic float64 `json:"traffic,omitempty"` // monthly visits
	Users   float64 `json:"users,omitempty"`   // registered users / community size
}

// ListingsPage is one page of the paginated listings source response.
type ListingsPage struct {
	Results   []ListingRecord `json:"results"`
	Remaining int             `json:"remaining"`
}
