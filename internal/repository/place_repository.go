package repository

import (
	"context"
	"errors"

	"fruitstand-backend/internal/db"
	"fruitstand-backend/internal/domain"
	"github.com/jackc/pgx/v5"
)

type PlaceRepository struct {
	DB *db.Postgres
}

// GetByID returns one place, or ErrNotFound.
func (r PlaceRepository) GetByID(ctx context.Context, q db.Querier, id int64) (*domain.Place, error) {
	var p domain.Place
	err := q.QueryRow(ctx, `
		SELECT id, name, created_at, updated_at FROM places WHERE id=$1
	`, id).Scan(&p.ID, &p.Name, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// MembershipsFor returns the place ids the user holds an explicit
// place-level grant for.
func (r PlaceRepository) MembershipsFor(ctx context.Context, q db.Querier, userID int64) ([]int64, error) {
	rows, err := q.Query(ctx, `
		SELECT place_id FROM place_members WHERE user_id=$1 ORDER BY place_id ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
