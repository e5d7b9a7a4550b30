package repository

import (
	"context"
	"fmt"

	"github.com/crime-alert/backend/internal/domain"

	"github.com/jmoiron/sqlx"
)

type crimeRepository struct {
	db *sqlx.DB
}

func newCrimeRepository(db *sqlx.DB) *crimeRepository {
	return &crimeRepository{
		db: db,
	}
}

func (r *crimeRepository) Create(ctx context.Context, crime *domain.Crime) error {
	const query = `
	INSERT INTO crime_data (id, reporter_id, title, description, category, severity, city, location, status, incident_time, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7,
	        ST_SetSRID(ST_MakePoint($8, $9), 4326)::geography,
	        $10, COALESCE($11, now()), now(), now());
	`

	var incidentTime interface{}
	if !crime.IncidentTime.IsZero() {
		incidentTime = crime.IncidentTime
	}

	_, err := r.db.ExecContext(ctx, query,
		crime.ID,
		crime.ReporterID,
		crime.Title,
		crime.Description,
		crime.Category,
		crime.Severity,
		crime.City,
		crime.Longitude,
		crime.Latitude,
		crime.Status,
		incidentTime,
	)
	if err != nil {
		return fmt.Errorf("db insert crime report: %w", err)
	}

	return nil
}

func (r *crimeRepository) GetNearby(ctx context.Context, latitude, longitude float64, radiusMeters int) ([]domain.Crime, error) {
	const query = `
	SELECT id, title, description, category, severity, status,
	       ST_X(location::geometry) AS longitude,
	       ST_Y(location::geometry) AS latitude,
	       incident_time, created_at, updated_at
	FROM crime_data
	WHERE ST_DWithin(location, ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography, $3)
	ORDER BY incident_time DESC
	LIMIT 1000;
	`
	var crimes []domain.Crime
	if err := r.db.SelectContext(ctx, &crimes, query, longitude, latitude, radiusMeters); err != nil {
		return nil, fmt.Errorf("select nearby crimes failed: %w", err)
	}

	return crimes, nil
}

// GetHeatmap aggregates reports onto a ~200m grid and returns the
// centroid and count for every populated cell inside the window.
func (r *crimeRepository) GetHeatmap(ctx context.Context, latitude, longitude float64, radiusMeters, windowHours int) ([]domain.HeatPoint, error) {
	const query = `
	SELECT
	    ST_X(ST_Centroid(geom)) AS longitude,
	    ST_Y(ST_Centroid(geom)) AS latitude,
	    SUM(cnt) AS intensity
	FROM (
	    SELECT ST_SnapToGrid(location::geometry, 0.002, 0.002) AS geom, COUNT(*) AS cnt
	    FROM crime_data
	    WHERE ST_DWithin(location, ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography, $3)
	      AND created_at >= now() - ($4 || ' hours')::interval
	    GROUP BY ST_SnapToGrid(location::geometry, 0.002, 0.002)
	) grid
	GROUP BY geom
	ORDER BY intensity DESC
	LIMIT 1000;
	`
	var points []domain.HeatPoint
	if err := r.db.SelectContext(ctx, &points, query, longitude, latitude, radiusMeters, windowHours); err != nil {
		return nil, fmt.Errorf("select heatmap points failed: %w", err)
	}

	return points, nil
}

func (r *crimeRepository) Count(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM crime_data;`
	var count int64
	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("count crimes failed: %w", err)
	}
	return count, nil
}

func (r *crimeRepository) CountByCategory(ctx context.Context) ([]domain.CategoryCount, error) {
	const query = `
	SELECT category, COUNT(*) AS count
	FROM crime_data
	GROUP BY category
	ORDER BY count DESC
	LIMIT 10;
	`
	var rows []domain.CategoryCount
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("count crimes by category failed: %w", err)
	}
	return rows, nil
}

func (r *crimeRepository) CountBySeverity(ctx context.Context) ([]domain.SeverityCount, error) {
	const query = `
	SELECT severity, COUNT(*) AS count
	FROM crime_data
	GROUP BY severity
	ORDER BY severity;
	`
	var rows []domain.SeverityCount
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("count crimes by severity failed: %w", err)
	}
	return rows, nil
}

func (r *crimeRepository) CountLastDays(ctx context.Context, days int) ([]domain.DailyCount, error) {
	const query = `
	SELECT TO_CHAR(created_at::date, 'YYYY-MM-DD') AS date, COUNT(*) AS count
	FROM crime_data
	WHERE created_at >= now() - ($1 || ' days')::interval
	GROUP BY created_at::date
	ORDER BY date ASC;
	`
	var rows []domain.DailyCount
	if err := r.db.SelectContext(ctx, &rows, query, days); err != nil {
		return nil, fmt.Errorf("count crimes per day failed: %w", err)
	}
	return rows, nil
}

func (r *crimeRepository) CountByCity(ctx context.Context) ([]domain.CityCount, error) {
	const query = `
	SELECT city, COUNT(*) AS count
	FROM crime_data
	WHERE city IS NOT NULL
	GROUP BY city
	ORDER BY count DESC;
	`
	var rows []domain.CityCount
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("count crimes by city failed: %w", err)
	}
	return rows, nil
}
