package service

import (
	"context"

	"fineboard/internal/models"
	"fineboard/internal/repository"
)

// Authorization establishes caller identity: credential checks, session token
// issue/parse, and the demo user seed.
type Authorization interface {
	Login(username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
	UserByID(id int) (*models.User, error)
	SeedUsers() (int, error)
}

// CreateFineInput carries the raw form values for a new fine. Amount stays a
// string until the service applies the parsing policy.
type CreateFineInput struct {
	Offender    string
	Description string
	AmountRaw   string
	ProposerID  int
}

// BoardTotals is the per-offender aggregation plus the grand total.
type BoardTotals struct {
	Rows       []models.OffenderTotal
	GrandTotal float64
}

// Ledger exposes the fine list, creation, deletion and aggregation.
type Ledger interface {
	List(ctx context.Context) ([]models.Fine, error)
	Create(ctx context.Context, in CreateFineInput) (models.Fine, error)
	Delete(ctx context.Context, id int) error
	Totals(ctx context.Context) (BoardTotals, error)
	SeedFines(ctx context.Context) (int, error)
}

// Service aggregates all sub-services.
type Service struct {
	Authorization
	Ledger
}

// NewService wires the repository layer into concrete services. The session
// secret signs the client-side tokens and comes from configuration.
func NewService(repos *repository.Repository, sessionSecret string) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Users, []byte(sessionSecret)),
		Ledger:        NewLedgerService(repos.Fines),
	}
}
