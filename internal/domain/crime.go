package domain

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

const (
	CrimeStatusReported = "reported"

	SeverityMinor    = "minor"
	SeverityModerate = "moderate"
	SeveritySevere   = "severe"

	CategoryOther = "other"
)

type Crime struct {
	ID           uuid.UUID      `db:"id" json:"id"`
	ReporterID   *uuid.UUID     `db:"reporter_id" json:"reporter_id,omitempty"`
	Title        string         `db:"title" json:"title"`
	Description  sql.NullString `db:"description" json:"description,omitempty"`
	Category     string         `db:"category" json:"category"`
	Severity     string         `db:"severity" json:"severity"`
	City         sql.NullString `db:"city" json:"city,omitempty"`
	Latitude     float64        `db:"latitude" json:"latitude"`
	Longitude    float64        `db:"longitude" json:"longitude"`
	Status       string         `db:"status" json:"status"`
	IncidentTime time.Time      `db:"incident_time" json:"incident_time"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// HeatPoint is one grid-aggregated heatmap cell: the centroid of all
// reports snapped to the same grid square and their total count.
type HeatPoint struct {
	Longitude float64 `db:"longitude" json:"longitude"`
	Latitude  float64 `db:"latitude" json:"latitude"`
	Intensity int64   `db:"intensity" json:"intensity"`
}
