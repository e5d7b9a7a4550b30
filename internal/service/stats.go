package service

import (
	"context"
	"fmt"

	"github.com/crime-alert/backend/internal/domain"
	"github.com/crime-alert/backend/internal/repository"
)

const trendDays = 7

type statisticsService struct {
	crimeRepository repository.Crimes
	userRepository  repository.Users
}

func newStatisticsService(crimeRepository repository.Crimes, userRepository repository.Users) *statisticsService {
	return &statisticsService{
		crimeRepository: crimeRepository,
		userRepository:  userRepository,
	}
}

func (s *statisticsService) Get(ctx context.Context) (*domain.Statistics, error) {
	totalCrimes, err := s.crimeRepository.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count crimes failed: %w", err)
	}

	totalUsers, err := s.userRepository.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users failed: %w", err)
	}

	byCategory, err := s.crimeRepository.CountByCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("count crimes by category failed: %w", err)
	}

	bySeverity, err := s.crimeRepository.CountBySeverity(ctx)
	if err != nil {
		return nil, fmt.Errorf("count crimes by severity failed: %w", err)
	}

	last7Days, err := s.crimeRepository.CountLastDays(ctx, trendDays)
	if err != nil {
		return nil, fmt.Errorf("count crimes per day failed: %w", err)
	}

	byCity, err := s.crimeRepository.CountByCity(ctx)
	if err != nil {
		return nil, fmt.Errorf("count crimes by city failed: %w", err)
	}

	return &domain.Statistics{
		Overview: domain.StatsOverview{
			TotalCrimes: totalCrimes,
			TotalUsers:  totalUsers,
		},
		ByCategory: byCategory,
		BySeverity: bySeverity,
		Last7Days:  last7Days,
		ByCity:     byCity,
	}, nil
}
