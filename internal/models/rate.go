package models

import "time"

// ExchangeRate is the BCV (Banco Central de Venezuela) reference rate used
// for display conversion on the storefront. The rate is fetched from a
// configurable upstream and cached; Stale marks a value served after an
// upstream failure.
type ExchangeRate struct {
	Currency  string    `json:"currency"`
	Rate      float64   `json:"rate"`
	Source    string    `json:"source"`
	FetchedAt time.Time `json:"fetchedAt"`
	Stale     bool      `json:"stale,omitempty"`
}

// SearchState is a saved list-view state (filters, query, pagination) kept
// per user and view with a short TTL.
type SearchState struct {
	View    string    `json:"view"`
	State   JSONB     `json:"state"`
	SavedAt time.Time `json:"savedAt"`
}
