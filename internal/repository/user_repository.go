package repository

import (
	"context"
	"errors"

	"fruitstand-backend/internal/db"
	"fruitstand-backend/internal/domain"
	"github.com/jackc/pgx/v5"
)

type UserRepository struct {
	DB *db.Postgres
}

// GetByID returns one user, or ErrNotFound.
func (r UserRepository) GetByID(ctx context.Context, q db.Querier, id int64) (*domain.User, error) {
	var u domain.User
	err := q.QueryRow(ctx, `
		SELECT id, name, role, created_at FROM users WHERE id=$1
	`, id).Scan(&u.ID, &u.Name, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
