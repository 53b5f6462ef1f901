package handlers

import "fineboard/internal/models"

// Template data types. Every page shares User (for the header) and Flash
// (one-shot notice).

type loginData struct {
	User  *models.User
	Flash string
	Error string
}

type indexData struct {
	User       *models.User
	Flash      string
	Fines      []models.Fine
	CanPropose bool
}

type addData struct {
	User      *models.User
	Flash     string
	Error     string
	Offenders []string

	// Entered values, echoed back when validation fails.
	Offender    string
	Description string
	Amount      string
}

type totalsData struct {
	User       *models.User
	Flash      string
	Totals     []models.OffenderTotal
	GrandTotal float64
}

type forbiddenData struct {
	User  *models.User
	Flash string
}
