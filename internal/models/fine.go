package models

import "time"

// WarningDescription marks a fine as a non-monetary warning. Entries carrying
// it are excluded from every monetary aggregation.
const WarningDescription = "Fine Warning"

// Fine is a single ledger entry. Entries are inserted and deleted, never
// updated in place.
type Fine struct {
	ID           int       `json:"id"`
	Date         time.Time `json:"date"` // server-assigned at insert, UTC
	Offender     string    `json:"offender"`
	Description  string    `json:"description"`
	Amount       float64   `json:"amount"`
	ProposerID   int       `json:"proposer_id"`
	ProposerName string    `json:"proposer_name"` // joined from users at read time
}

// IsWarning reports whether the entry is the non-monetary sentinel.
func (f Fine) IsWarning() bool {
	return f.Description == WarningDescription
}

// OffenderTotal is one row of the per-offender aggregation.
type OffenderTotal struct {
	Offender    string  `json:"offender"`
	TotalAmount float64 `json:"total_amount"`
	FineCount   int     `json:"fine_count"`
}
