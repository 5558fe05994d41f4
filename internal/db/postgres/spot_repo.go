package postgres

import (
	"Bislei/internal/core/spots"
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

type postgresSpotRepo struct {
	db *sql.DB
}

// NewSpotRepository creates a new PostgreSQL fishing spot repository
func NewSpotRepository(db *sql.DB) spots.Repository {
	return &postgresSpotRepo{db: db}
}

func (r *postgresSpotRepo) List(ctx context.Context) ([]*spots.FishingSpot, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, description, best_season, fish_species, latitude, longitude, created_at
		FROM fishing_spots
		ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list fishing spots: %w", err)
	}
	defer rows.Close()

	list := []*spots.FishingSpot{}
	for rows.Next() {
		var s spots.FishingSpot
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.BestSeason,
			pq.Array(&s.FishSpecies), &s.Latitude, &s.Longitude, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan fishing spot: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

func (r *postgresSpotRepo) GetByID(ctx context.Context, id string) (*spots.FishingSpot, error) {
	var s spots.FishingSpot
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, description, best_season, fish_species, latitude, longitude, created_at
		FROM fishing_spots
		WHERE id = $1`, id,
	).Scan(&s.ID, &s.Name, &s.Description, &s.BestSeason,
		pq.Array(&s.FishSpecies), &s.Latitude, &s.Longitude, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, spots.ErrSpotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get fishing spot: %w", err)
	}
	return &s, nil
}
