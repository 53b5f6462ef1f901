package repository

import (
	"context"
	"database/sql"
	"errors"

	"fineboard/internal/models"
)

// ErrFineNotFound is returned by Delete when no row carries the given id.
var ErrFineNotFound = errors.New("fine not found")

type Users interface {
	Create(username, passwordHash string, role models.Role) (int, error)
	GetByUsername(username string) (*models.User, error)
	GetByID(id int) (*models.User, error)
	Count() (int, error)
}

type Fines interface {
	Insert(ctx context.Context, f models.Fine) (int, error)
	List(ctx context.Context) ([]models.Fine, error)
	Delete(ctx context.Context, id int) error
	Totals(ctx context.Context) ([]models.OffenderTotal, error)
	GrandTotal(ctx context.Context) (float64, error)
	Count(ctx context.Context) (int, error)
}

type Repository struct {
	Users Users
	Fines Fines
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users: NewUserRepository(db),
		Fines: NewFineRepository(db),
	}
}
