package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"
	"unicode"

	"github.com/crime-alert/backend/internal/config"
	"github.com/crime-alert/backend/internal/domain"
	"github.com/crime-alert/backend/internal/queue/client"
	"github.com/crime-alert/backend/internal/queue/task"
	"github.com/crime-alert/backend/internal/repository"
	"github.com/crime-alert/backend/pkg/auth"
	"github.com/crime-alert/backend/pkg/hash"
	"github.com/crime-alert/backend/pkg/logger"
	"github.com/crime-alert/backend/pkg/otp"

	"database/sql"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxOtpAttempts = 3

var (
	phoneRegexp = regexp.MustCompile(`^[0-9]{10}$`)
	dobRegexp   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

type userService struct {
	userRepository repository.Users
	hasher         hash.PasswordHasher
	tokenManager   auth.TokenManager
	otpGenerator   otp.Generator
	emailSender    OtpEmailSender
	authConfig     config.AuthConfig
}

func newUserService(userRepository repository.Users,
	hasher hash.PasswordHasher,
	tokenManager auth.TokenManager,
	otpGenerator otp.Generator,
	emailSender OtpEmailSender,
	authConfig config.AuthConfig,
) *userService {
	return &userService{
		userRepository: userRepository,
		hasher:         hasher,
		tokenManager:   tokenManager,
		otpGenerator:   otpGenerator,
		emailSender:    emailSender,
		authConfig:     authConfig,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
	Phone    string
	Dob      string
}

type Token struct {
	AccessToken string
	TTL         time.Duration
}

// Register creates an unverified account with a pending one-time code.
// All validation happens before any write; the verification email is
// dispatched through the queue and never fails the operation.
func (s *userService) Register(ctx context.Context, input RegisterInput) error {
	if input.Name == "" || input.Email == "" || input.Password == "" || input.Phone == "" || input.Dob == "" {
		return ErrMissingFields
	}

	role := domain.Role(input.Role)
	if input.Role == "" {
		role = domain.RoleTourist
	}
	if !role.Valid() {
		return ErrInvalidRole
	}

	if !dobRegexp.MatchString(input.Dob) {
		return ErrInvalidDob
	}

	dob, err := time.Parse("2006-01-02", input.Dob)
	if err != nil {
		return ErrInvalidDob
	}

	if ageInYears(dob, time.Now().UTC()) < 18 {
		return ErrUnderage
	}

	if !isStrongPassword(input.Password) {
		return ErrWeakPassword
	}

	if !phoneRegexp.MatchString(input.Phone) {
		return ErrInvalidPhone
	}

	if _, err := s.userRepository.GetByEmail(ctx, input.Email); err == nil {
		return ErrUserAlreadyExists
	} else if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("get user by email failed: %w", err)
	}

	passwordHash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return fmt.Errorf("hash password failed: %w", err)
	}

	code := s.otpGenerator.RandomCode(s.authConfig.VerificationCodeLength)
	expiry := time.Now().Add(s.authConfig.OtpTTL)

	userID, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("generate user id failed: %w", err)
	}

	user := &domain.User{
		ID:           userID,
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: passwordHash,
		Role:         role,
		Phone:        input.Phone,
		DateOfBirth:  dob,
		Otp:          sql.NullString{String: code, Valid: true},
		OtpExpiry:    sql.NullTime{Time: expiry, Valid: true},
	}

	if err := s.userRepository.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEntry) {
			return ErrUserAlreadyExists
		}
		return fmt.Errorf("create user failed: %w", err)
	}

	// Fire and forget: the account exists either way, the user can ask
	// for a resend if delivery fails.
	s.enqueueOtpEmail(ctx, input.Email, code)

	return nil
}

func (s *userService) enqueueOtpEmail(ctx context.Context, email string, code string) {
	t, err := task.NewSendOtpEmailTask(email, code)
	if err != nil {
		logger.Error("build otp email task failed", zap.Error(err))
		return
	}

	queueClient := client.GetClient(ctx)
	if queueClient == nil {
		logger.Error("otp email not enqueued: queue client is not configured")
		return
	}

	if _, err := queueClient.EnqueueContext(ctx, t); err != nil {
		logger.Error("enqueue otp email failed", zap.Error(err), zap.String("email", email))
	}
}

// VerifyOtp flips the account to verified on a correct, unexpired code.
// A wrong or expired code burns one attempt; the third burned attempt
// deletes the account entirely and registration has to start over.
func (s *userService) VerifyOtp(ctx context.Context, email string, code string) error {
	user, err := s.userRepository.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("get user by email failed: %w", err)
	}

	if user.IsVerified {
		return ErrAlreadyVerified
	}

	if !s.otpMatches(user, code) {
		attempts, err := s.userRepository.IncrementOtpAttempts(ctx, user.ID)
		if err != nil {
			return fmt.Errorf("increment otp attempts failed: %w", err)
		}

		if attempts >= maxOtpAttempts {
			if err := s.userRepository.Delete(ctx, user.ID); err != nil {
				return fmt.Errorf("delete user after max otp attempts failed: %w", err)
			}
			return ErrMaxOtpAttempts
		}

		return &InvalidOtpError{AttemptsLeft: maxOtpAttempts - attempts}
	}

	if err := s.userRepository.MarkVerified(ctx, user.ID); err != nil {
		return fmt.Errorf("mark user verified failed: %w", err)
	}

	return nil
}

func (s *userService) otpMatches(user *domain.User, code string) bool {
	if !user.Otp.Valid || !user.OtpExpiry.Valid {
		return false
	}
	if time.Now().After(user.OtpExpiry.Time) {
		return false
	}
	return user.Otp.String == code
}

// Login deliberately reports unknown email and wrong password with the
// same error.
func (s *userService) Login(ctx context.Context, email string, password string) (*Token, error) {
	user, err := s.userRepository.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user by email failed: %w", err)
	}

	if !s.hasher.Check(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	if !user.IsVerified {
		return nil, ErrNotVerified
	}

	accessToken, ttl, err := s.tokenManager.NewJWT(user.ID, string(user.Role), user.Email)
	if err != nil {
		return nil, fmt.Errorf("generate access token failed: %w", err)
	}

	return &Token{
		AccessToken: accessToken,
		TTL:         ttl,
	}, nil
}

// ResendVerificationOtp issues a fresh code and awaits delivery: the
// caller explicitly asked for the email, so a transport failure is
// surfaced instead of swallowed.
func (s *userService) ResendVerificationOtp(ctx context.Context, email string) error {
	user, err := s.userRepository.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("get user by email failed: %w", err)
	}

	if user.IsVerified {
		return ErrAlreadyVerified
	}

	return s.issueAndSendOtp(ctx, user)
}

// ForgotPassword issues a reset code regardless of verification state.
func (s *userService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepository.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("get user by email failed: %w", err)
	}

	return s.issueAndSendOtp(ctx, user)
}

func (s *userService) issueAndSendOtp(ctx context.Context, user *domain.User) error {
	code := s.otpGenerator.RandomCode(s.authConfig.VerificationCodeLength)
	expiry := time.Now().Add(s.authConfig.OtpTTL)

	if err := s.userRepository.SetOtp(ctx, user.ID, code, expiry); err != nil {
		return fmt.Errorf("set otp failed: %w", err)
	}

	if err := s.emailSender.SendOtpEmail(ctx, user.Email, code); err != nil {
		return fmt.Errorf("send otp email failed: %w", err)
	}

	return nil
}

// ResetPassword validates the code with the same match-and-expiry rule
// as VerifyOtp but never touches the attempt counter: the reset path
// has no delete-on-threshold behavior.
func (s *userService) ResetPassword(ctx context.Context, email string, code string, newPassword string) error {
	if len(newPassword) < 8 {
		return ErrWeakPassword
	}

	user, err := s.userRepository.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrInvalidOtp
		}
		return fmt.Errorf("get user by email failed: %w", err)
	}

	if !s.otpMatches(user, code) {
		return ErrInvalidOtp
	}

	passwordHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password failed: %w", err)
	}

	if err := s.userRepository.UpdatePassword(ctx, user.ID, passwordHash); err != nil {
		return fmt.Errorf("update password failed: %w", err)
	}

	return nil
}

func (s *userService) DeleteUnverified(ctx context.Context, email string, phone string) error {
	deleted, err := s.userRepository.DeleteUnverified(ctx, email, phone)
	if err != nil {
		return fmt.Errorf("delete unverified user failed: %w", err)
	}

	if !deleted {
		return ErrUnverifiedUserNotFound
	}

	return nil
}

// ageInYears mirrors the epoch-based computation the web client was
// built against: elapsed time projected onto the unix epoch calendar.
func ageInYears(dob time.Time, now time.Time) int {
	elapsed := now.Sub(dob)
	return time.Unix(0, 0).UTC().Add(elapsed).Year() - 1970
}

func isStrongPassword(password string) bool {
	if len(password) < 8 {
		return false
	}

	var lower, upper, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		default:
			special = true
		}
	}

	return lower && upper && digit && special
}
