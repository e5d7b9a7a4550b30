package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/crime-alert/backend/internal/domain"
	"github.com/crime-alert/backend/internal/repository"

	"github.com/google/uuid"
)

type locationService struct {
	userRepository        repository.Users
	locationLogRepository repository.LocationLogs
}

func newLocationService(userRepository repository.Users, locationLogRepository repository.LocationLogs) *locationService {
	return &locationService{
		userRepository:        userRepository,
		locationLogRepository: locationLogRepository,
	}
}

// Update moves the user's current position and appends a history row
// used by the heatmap views.
func (s *locationService) Update(ctx context.Context, userID uuid.UUID, latitude, longitude float64, accuracy *float64) error {
	if err := s.userRepository.UpdateLocation(ctx, userID, latitude, longitude); err != nil {
		if errors.Is(err, domain.ErrNoRowsAffected) {
			return ErrUserNotFound
		}
		return fmt.Errorf("update user location failed: %w", err)
	}

	if err := s.locationLogRepository.Insert(ctx, userID, latitude, longitude, accuracy); err != nil {
		return fmt.Errorf("insert location log failed: %w", err)
	}

	return nil
}
