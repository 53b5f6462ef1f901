package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"fineboard/internal/models"
	"fineboard/internal/repository"
)

// Validation errors for fine creation.
var (
	ErrMissingOffender    = errors.New("offender is required")
	ErrMissingDescription = errors.New("description is required")
	// ErrInvalidAmount: a non-blank amount that does not parse as a
	// non-negative number is a hard error on every path, warnings included.
	// A blank amount defaults to 0.
	ErrInvalidAmount = errors.New("amount must be a non-negative number")
)

// LedgerService implements the fine list, creation, deletion and aggregation.
type LedgerService struct {
	fines repository.Fines
	now   func() time.Time
}

func NewLedgerService(fines repository.Fines) *LedgerService {
	return &LedgerService{fines: fines, now: time.Now}
}

// List returns every fine joined with its proposer's username, newest first.
func (s *LedgerService) List(ctx context.Context) ([]models.Fine, error) {
	return s.fines.List(ctx)
}

// Create validates the form input and inserts a new fine. The date is the
// server clock at insert, never caller-supplied; the proposer is the gated
// caller's identity.
func (s *LedgerService) Create(ctx context.Context, in CreateFineInput) (models.Fine, error) {
	offender := strings.TrimSpace(in.Offender)
	description := strings.TrimSpace(in.Description)

	if offender == "" {
		return models.Fine{}, ErrMissingOffender
	}
	if description == "" {
		return models.Fine{}, ErrMissingDescription
	}

	amount, err := parseAmount(in.AmountRaw)
	if err != nil {
		return models.Fine{}, err
	}

	f := models.Fine{
		Date:        s.now().UTC(),
		Offender:    offender,
		Description: description,
		Amount:      amount,
		ProposerID:  in.ProposerID,
	}
	id, err := s.fines.Insert(ctx, f)
	if err != nil {
		return models.Fine{}, fmt.Errorf("record fine: %w", err)
	}
	f.ID = id
	return f, nil
}

// Delete removes a fine by id. Any authenticated caller may delete, not just
// upper — shared trust on cleanup is intentional. A missing id reports
// repository.ErrFineNotFound; deleting twice reports it the second time.
func (s *LedgerService) Delete(ctx context.Context, id int) error {
	return s.fines.Delete(ctx, id)
}

// Totals aggregates per offender and computes the grand total, both excluding
// warning entries. GrandTotal is 0 when nothing qualifies.
func (s *LedgerService) Totals(ctx context.Context) (BoardTotals, error) {
	rows, err := s.fines.Totals(ctx)
	if err != nil {
		return BoardTotals{}, err
	}
	grand, err := s.fines.GrandTotal(ctx)
	if err != nil {
		return BoardTotals{}, err
	}
	return BoardTotals{Rows: rows, GrandTotal: grand}, nil
}

// sampleFines seed the board on first init so the demo is not empty.
var sampleFines = []struct {
	Offender    string
	Description string
	Amount      float64
	ProposerID  int
}{
	{"Koong", "Late to meeting", 5.00, 1},
	{"Noah", "Left dishes in sink", 3.50, 1},
	{"Zander", "Forgot to take out trash", 2.00, 3},
}

// SeedFines inserts the sample fines if the table is empty and returns the
// number created. Calling it again is a no-op.
func (s *LedgerService) SeedFines(ctx context.Context) (int, error) {
	n, err := s.fines.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}

	created := 0
	for _, sf := range sampleFines {
		f := models.Fine{
			Date:        s.now().UTC(),
			Offender:    sf.Offender,
			Description: sf.Description,
			Amount:      sf.Amount,
			ProposerID:  sf.ProposerID,
		}
		if _, err := s.fines.Insert(ctx, f); err != nil {
			return created, fmt.Errorf("seed fine for %q: %w", sf.Offender, err)
		}
		created++
	}
	return created, nil
}

// parseAmount applies the amount policy: blank defaults to 0 (a warning with
// no amount is the common case), anything else must parse as a non-negative
// float.
func parseAmount(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil || amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, ErrInvalidAmount
	}
	return amount, nil
}
