package repository

import (
	"context"
	"time"

	"github.com/crime-alert/backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	Users        Users
	Crimes       Crimes
	LocationLogs LocationLogs
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		Users:        newUserRepository(db),
		Crimes:       newCrimeRepository(db),
		LocationLogs: newLocationLogRepository(db),
	}
}

type Users interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	MarkVerified(ctx context.Context, id uuid.UUID) error
	SetOtp(ctx context.Context, id uuid.UUID, code string, expiry time.Time) error
	IncrementOtpAttempts(ctx context.Context, id uuid.UUID) (int, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteUnverified(ctx context.Context, email string, phone string) (bool, error)
	UpdateLocation(ctx context.Context, id uuid.UUID, latitude, longitude float64) error
	Count(ctx context.Context) (int64, error)
}

type Crimes interface {
	Create(ctx context.Context, crime *domain.Crime) error
	GetNearby(ctx context.Context, latitude, longitude float64, radiusMeters int) ([]domain.Crime, error)
	GetHeatmap(ctx context.Context, latitude, longitude float64, radiusMeters, windowHours int) ([]domain.HeatPoint, error)
	Count(ctx context.Context) (int64, error)
	CountByCategory(ctx context.Context) ([]domain.CategoryCount, error)
	CountBySeverity(ctx context.Context) ([]domain.SeverityCount, error)
	CountLastDays(ctx context.Context, days int) ([]domain.DailyCount, error)
	CountByCity(ctx context.Context) ([]domain.CityCount, error)
}

type LocationLogs interface {
	Insert(ctx context.Context, userID uuid.UUID, latitude, longitude float64, accuracy *float64) error
}
