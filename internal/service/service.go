package service

import (
	"context"

	"github.com/crime-alert/backend/internal/config"
	"github.com/crime-alert/backend/internal/domain"
	"github.com/crime-alert/backend/internal/repository"
	"github.com/crime-alert/backend/pkg/auth"
	"github.com/crime-alert/backend/pkg/hash"
	"github.com/crime-alert/backend/pkg/otp"

	"github.com/google/uuid"
)

type Services struct {
	Users      Users
	Crimes     Crimes
	Locations  Locations
	Statistics Statistics
}

// OtpEmailSender delivers a one-time code to an address. The lifecycle
// service awaits it on the resend and forgot-password paths; the
// registration path goes through the queue instead.
type OtpEmailSender interface {
	SendOtpEmail(ctx context.Context, email string, code string) error
}

type Deps struct {
	Config       *config.Config
	Hasher       hash.PasswordHasher
	TokenManager auth.TokenManager
	OtpGenerator otp.Generator
	EmailSender  OtpEmailSender
	Repos        *repository.Repositories
}

func NewServices(deps Deps) *Services {
	return &Services{
		Users: newUserService(deps.Repos.Users,
			deps.Hasher,
			deps.TokenManager,
			deps.OtpGenerator,
			deps.EmailSender,
			deps.Config.Auth,
		),
		Crimes:     newCrimeService(deps.Repos.Crimes),
		Locations:  newLocationService(deps.Repos.Users, deps.Repos.LocationLogs),
		Statistics: newStatisticsService(deps.Repos.Crimes, deps.Repos.Users),
	}
}

type Users interface {
	Register(ctx context.Context, input RegisterInput) error
	VerifyOtp(ctx context.Context, email string, code string) error
	Login(ctx context.Context, email string, password string) (*Token, error)
	ResendVerificationOtp(ctx context.Context, email string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email string, code string, newPassword string) error
	DeleteUnverified(ctx context.Context, email string, phone string) error
}

type Crimes interface {
	Create(ctx context.Context, input CreateCrimeInput) (uuid.UUID, error)
	GetNearby(ctx context.Context, latitude, longitude float64, radiusMeters int) ([]domain.Crime, error)
	GetHeatmap(ctx context.Context, latitude, longitude float64, radiusMeters, windowHours int) ([]domain.HeatPoint, error)
}

type Locations interface {
	Update(ctx context.Context, userID uuid.UUID, latitude, longitude float64, accuracy *float64) error
}

type Statistics interface {
	Get(ctx context.Context) (*domain.Statistics, error)
}
