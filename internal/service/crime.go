package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/crime-alert/backend/internal/domain"
	"github.com/crime-alert/backend/internal/repository"

	"github.com/google/uuid"
)

type crimeService struct {
	crimeRepository repository.Crimes
}

func newCrimeService(crimeRepository repository.Crimes) *crimeService {
	return &crimeService{
		crimeRepository: crimeRepository,
	}
}

type CreateCrimeInput struct {
	ReporterID   uuid.UUID
	Title        string
	Description  string
	Category     string
	Severity     string
	City         string
	Latitude     float64
	Longitude    float64
	IncidentTime time.Time
}

func (s *crimeService) Create(ctx context.Context, input CreateCrimeInput) (uuid.UUID, error) {
	if input.Category == "" {
		input.Category = domain.CategoryOther
	}
	if input.Severity == "" {
		input.Severity = domain.SeverityMinor
	}

	id, err := uuid.NewV7()
	if err != nil {
		return uuid.Nil, fmt.Errorf("generate crime id failed: %w", err)
	}

	crime := &domain.Crime{
		ID:           id,
		Title:        input.Title,
		Category:     input.Category,
		Severity:     input.Severity,
		Latitude:     input.Latitude,
		Longitude:    input.Longitude,
		Status:       domain.CrimeStatusReported,
		IncidentTime: input.IncidentTime,
		Description: sql.NullString{
			String: input.Description,
			Valid:  input.Description != "",
		},
		City: sql.NullString{
			String: input.City,
			Valid:  input.City != "",
		},
	}
	if input.ReporterID != uuid.Nil {
		reporterID := input.ReporterID
		crime.ReporterID = &reporterID
	}

	if err := s.crimeRepository.Create(ctx, crime); err != nil {
		return uuid.Nil, fmt.Errorf("create crime report failed: %w", err)
	}

	return id, nil
}

func (s *crimeService) GetNearby(ctx context.Context, latitude, longitude float64, radiusMeters int) ([]domain.Crime, error) {
	return s.crimeRepository.GetNearby(ctx, latitude, longitude, radiusMeters)
}

func (s *crimeService) GetHeatmap(ctx context.Context, latitude, longitude float64, radiusMeters, windowHours int) ([]domain.HeatPoint, error) {
	return s.crimeRepository.GetHeatmap(ctx, latitude, longitude, radiusMeters, windowHours)
}
