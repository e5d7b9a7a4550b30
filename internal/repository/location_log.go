package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type locationLogRepository struct {
	db *sqlx.DB
}

func newLocationLogRepository(db *sqlx.DB) *locationLogRepository {
	return &locationLogRepository{
		db: db,
	}
}

func (r *locationLogRepository) Insert(ctx context.Context, userID uuid.UUID, latitude, longitude float64, accuracy *float64) error {
	const query = `
	INSERT INTO user_location_log (user_id, location, recorded_at, accuracy)
	VALUES ($1, ST_SetSRID(ST_MakePoint($2, $3), 4326)::geography, now(), $4);
	`
	if _, err := r.db.ExecContext(ctx, query, userID, longitude, latitude, accuracy); err != nil {
		return fmt.Errorf("db insert location log: %w", err)
	}

	return nil
}
