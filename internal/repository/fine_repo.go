package repository

import (
	"context"
	"database/sql"
	"fmt"

	"fineboard/internal/models"
)

type FineRepository struct {
	db *sql.DB
}

func NewFineRepository(db *sql.DB) *FineRepository {
	return &FineRepository{db: db}
}

// Ensure implementation of Fines interface at compile time.
var _ Fines = (*FineRepository)(nil)

const (
	insertFineSQL = `INSERT INTO fines (date, offender, description, amount, proposer_id) VALUES (?, ?, ?, ?, ?)`

	// Proposer usernames are resolved by join at read time; there is no
	// cascading constraint keeping them around.
	listFinesSQL = `SELECT f.id, f.date, f.offender, f.description, f.amount, f.proposer_id, u.username
FROM fines f JOIN users u ON f.proposer_id = u.id
ORDER BY f.date DESC, f.id DESC`

	deleteFineSQL = `DELETE FROM fines WHERE id = ?`

	// Warnings carry no monetary weight and are excluded from aggregation
	// entirely, not zero-valued.
	totalsSQL = `SELECT offender, SUM(amount) AS total_amount, COUNT(*) AS fine_count
FROM fines
WHERE description != ?
GROUP BY offender
ORDER BY total_amount DESC`

	grandTotalSQL = `SELECT COALESCE(SUM(amount), 0) FROM fines WHERE description != ?`

	countFinesSQL = `SELECT COUNT(*) FROM fines`
)

// Insert stores a new fine and returns its ID.
func (r *FineRepository) Insert(ctx context.Context, f models.Fine) (int, error) {
	res, err := r.db.ExecContext(ctx, insertFineSQL, f.Date, f.Offender, f.Description, f.Amount, f.ProposerID)
	if err != nil {
		return 0, fmt.Errorf("insert fine for %q: %w", f.Offender, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for fine: %w", err)
	}
	return int(lastID), nil
}

// List returns every fine joined with its proposer's username, newest first.
func (r *FineRepository) List(ctx context.Context) ([]models.Fine, error) {
	rows, err := r.db.QueryContext(ctx, listFinesSQL)
	if err != nil {
		return nil, fmt.Errorf("list fines: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var fines []models.Fine
	for rows.Next() {
		var f models.Fine
		if err := rows.Scan(&f.ID, &f.Date, &f.Offender, &f.Description, &f.Amount, &f.ProposerID, &f.ProposerName); err != nil {
			return nil, fmt.Errorf("scan fine row: %w", err)
		}
		fines = append(fines, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate fine rows: %w", err)
	}
	return fines, nil
}

// Delete removes the fine with the given id. Returns ErrFineNotFound when no
// row matched, so a repeated delete reports the same condition as a miss.
func (r *FineRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, deleteFineSQL, id)
	if err != nil {
		return fmt.Errorf("delete fine id=%d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for fine id=%d: %w", id, err)
	}
	if affected == 0 {
		return ErrFineNotFound
	}
	return nil
}

// Totals aggregates per offender, excluding warning entries, ordered by
// descending total. Tie order between equal totals is the store's natural
// row order.
func (r *FineRepository) Totals(ctx context.Context) ([]models.OffenderTotal, error) {
	rows, err := r.db.QueryContext(ctx, totalsSQL, models.WarningDescription)
	if err != nil {
		return nil, fmt.Errorf("aggregate fine totals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var totals []models.OffenderTotal
	for rows.Next() {
		var t models.OffenderTotal
		if err := rows.Scan(&t.Offender, &t.TotalAmount, &t.FineCount); err != nil {
			return nil, fmt.Errorf("scan totals row: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate totals rows: %w", err)
	}
	return totals, nil
}

// GrandTotal sums every non-warning amount; 0 when nothing qualifies.
func (r *FineRepository) GrandTotal(ctx context.Context) (float64, error) {
	var total float64
	if err := r.db.QueryRowContext(ctx, grandTotalSQL, models.WarningDescription).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum fine amounts: %w", err)
	}
	return total, nil
}

// Count returns the number of fine rows.
func (r *FineRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, countFinesSQL).Scan(&n); err != nil {
		return 0, fmt.Errorf("count fines: %w", err)
	}
	return n, nil
}
