package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/crime-alert/backend/internal/config"
	"github.com/crime-alert/backend/internal/domain"
	"github.com/crime-alert/backend/pkg/auth"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserRepo) MarkVerified(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockUserRepo) SetOtp(ctx context.Context, id uuid.UUID, code string, expiry time.Time) error {
	return m.Called(ctx, id, code, expiry).Error(0)
}
func (m *mockUserRepo) IncrementOtpAttempts(ctx context.Context, id uuid.UUID) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}
func (m *mockUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return m.Called(ctx, id, passwordHash).Error(0)
}
func (m *mockUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockUserRepo) DeleteUnverified(ctx context.Context, email string, phone string) (bool, error) {
	args := m.Called(ctx, email, phone)
	return args.Bool(0), args.Error(1)
}
func (m *mockUserRepo) UpdateLocation(ctx context.Context, id uuid.UUID, latitude, longitude float64) error {
	return m.Called(ctx, id, latitude, longitude).Error(0)
}
func (m *mockUserRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockHasher struct{ mock.Mock }

func (m *mockHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}
func (m *mockHasher) Check(hashed string, password string) bool {
	return m.Called(hashed, password).Bool(0)
}

type mockTokenManager struct{ mock.Mock }

func (m *mockTokenManager) NewJWT(userID uuid.UUID, role string, email string) (string, time.Duration, error) {
	args := m.Called(userID, role, email)
	return args.String(0), args.Get(1).(time.Duration), args.Error(2)
}
func (m *mockTokenManager) Parse(accessToken string) (*auth.Claims, error) {
	args := m.Called(accessToken)
	if c, _ := args.Get(0).(*auth.Claims); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockOtpGenerator struct{ mock.Mock }

func (m *mockOtpGenerator) RandomCode(length int) string {
	return m.Called(length).String(0)
}

type mockOtpEmailSender struct{ mock.Mock }

func (m *mockOtpEmailSender) SendOtpEmail(ctx context.Context, email string, code string) error {
	return m.Called(ctx, email, code).Error(0)
}

// --- builder ---

func newTestUserService(repo *mockUserRepo, hasher *mockHasher, tm *mockTokenManager, gen *mockOtpGenerator, sender *mockOtpEmailSender) *userService {
	return newUserService(repo, hasher, tm, gen, sender, config.AuthConfig{
		VerificationCodeLength: 6,
		OtpTTL:                 10 * time.Minute,
	})
}

func validRegisterInput() RegisterInput {
	return RegisterInput{
		Name:     "John Doe",
		Email:    "john@example.com",
		Password: "Str0ng!pass",
		Phone:    "0123456789",
		Dob:      "1990-05-20",
	}
}

func unverifiedUser(code string, expiry time.Time) *domain.User {
	return &domain.User{
		ID:           uuid.New(),
		Name:         "John Doe",
		Email:        "john@example.com",
		PasswordHash: "hashed",
		Role:         domain.RoleCitizen,
		Phone:        "0123456789",
		IsVerified:   false,
		Otp:          sql.NullString{String: code, Valid: true},
		OtpExpiry:    sql.NullTime{Time: expiry, Valid: true},
	}
}

// --- Register ---

func TestRegister_MissingFields(t *testing.T) {
	svc := newTestUserService(&mockUserRepo{}, &mockHasher{}, &mockTokenManager{}, &mockOtpGenerator{}, &mockOtpEmailSender{})

	input := validRegisterInput()
	input.Email = ""

	err := svc.Register(context.Background(), input)
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestRegister_InvalidDobFormat(t *testing.T) {
	svc := newTestUserService(&mockUserRepo{}, &mockHasher{}, &mockTokenManager{}, &mockOtpGenerator{}, &mockOtpEmailSender{})

	for _, dob := range []string{"20-05-1990", "1990/05/20", "not-a-date"} {
		input := validRegisterInput()
		input.Dob = dob

		err := svc.Register(context.Background(), input)
		assert.ErrorIs(t, err, ErrInvalidDob, dob)
	}
}

func TestRegister_AgeBoundary(t *testing.T) {
	svc := newTestUserService(&mockUserRepo{}, &mockHasher{}, &mockTokenManager{}, &mockOtpGenerator{}, &mockOtpEmailSender{})

	input := validRegisterInput()
	input.Dob = time.Now().UTC().AddDate(-18, 0, 2).Format("2006-01-02")

	err := svc.Register(context.Background(), input)
	assert.ErrorIs(t, err, ErrUnderage)
}

func TestRegister_ExactlyEighteenAllowed(t *testing.T) {
	repo := &mockUserRepo{}
	repo.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	hasher := &mockHasher{}
	hasher.On("Hash", mock.Anything).Return("hashed", nil)

	gen := &mockOtpGenerator{}
	gen.On("RandomCode", 6).Return("123456")

	svc := newTestUserService(repo, hasher, &mockTokenManager{}, gen, &mockOtpEmailSender{})

	input := validRegisterInput()
	input.Dob = time.Now().UTC().AddDate(-18, 0, 0).Format("2006-01-02")

	err := svc.Register(context.Background(), input)
	require.NoError(t, err)
}

func TestRegister_WeakPasswords(t *testing.T) {
	svc := newTestUserService(&mockUserRepo{}, &mockHasher{}, &mockTokenManager{}, &mockOtpGenerator{}, &mockOtpEmailSender{})

	weak := []string{
		"short1!",      // too short
		"alllower1!",   // no uppercase
		"ALLUPPER1!",   // no lowercase
		"NoDigits!!",   // no digit
		"NoSpecial11a", // no special character
	}
	for _, password := range weak {
		input := validRegisterInput()
		input.Password = password

		err := svc.Register(context.Background(), input)
		assert.ErrorIs(t, err, ErrWeakPassword, password)
	}
}

func TestRegister_InvalidPhone(t *testing.T) {
	svc := newTestUserService(&mockUserRepo{}, &mockHasher{}, &mockTokenManager{}, &mockOtpGenerator{}, &mockOtpEmailSender{})

	for _, phone := range []string{"12345", "01234567890", "abcdefghij", "012345678x"} {
		input := validRegisterInput()
		input.Phone = phone

		err := svc.Register(context.Background(), input)
		assert.ErrorIs(t, err, ErrInvalidPhone, phone)
	}
}

func TestRegister_InvalidRole(t *testing.T) {
	svc := newTestUserService(&mockUserRepo{}, &mockHasher{}, &mockTokenManager{}, &mockOtpGenerator{}, &mockOtpEmailSender{})

	input := validRegisterInput()
	input.Role = "superuser"

	err := svc.Register(context.Background(), input)
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := &mockUserRepo{}
	repo.On("GetByEmail", mock.Anything, "john@example.com").Return(unverifiedUser("123456", time.Now().Add(time.Minute)), nil)

	svc := newTestUserService(repo, &mockHasher{}, &mockTokenManager{}, &mockOtpGenerator{}, &mockOtpEmailSender{})

	err := svc.Register(context.Background(), validRegisterInput())
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestRegister_DuplicateEmailOnInsertRace(t *testing.T) {
	repo := &mockUserRepo{}
	repo.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)
	repo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDuplicateEntry)

	hasher := &mockHasher{}
	hasher.On("Hash", mock.Anything).Return("hashed", nil)

	gen := &mockOtpGenerator{}
	gen.On("RandomCode", 6).Return("123456")

	svc := newTestUserService(repo, hasher, &mockTokenManager{}, gen, &mockOtpEmailSender{})

	err := svc.Register(context.Background(), validRegisterInput())
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestRegister_Success(t *testing.T) {
	repo := &mockUserRepo{}
	repo.On("GetByEmail", mock.Anything, "john@example.com").Return(nil, domain.ErrNotFound)

	var created *domain.User
	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		created = u
		return true
	})).Return(nil)

	hasher := &mockHasher{}
	hasher.On("Hash", "Str0ng!pass").Return("bcrypt-hash", nil)

	gen := &mockOtpGenerator{}
	gen.On("RandomCode", 6).Return("042137")

	svc := newTestUserService(repo, hasher, &mockTokenManager{}, gen, &mockOtpEmailSender{})

	err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	require.NotNil(t, created)
	assert.Equal(t, "bcrypt-hash", created.PasswordHash)
	assert.Equal(t, domain.RoleTourist, created.Role)
	assert.False(t, created.IsVerified)
	assert.Equal(t, "042137", created.Otp.String)
	assert.True(t, created.OtpExpiry.Valid)
	assert.WithinDuration(t, time.Now().Add(10*time.Minute), created.OtpExpiry.Time, 5*time.Second)
}

// --- VerifyOtp ---

func TestVerifyOtp_UserNotFound(t *testing.T) {
	repo := &mockUserRepo{}
	repo.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)

	svc := newTestUserService(repo, &mockHasher{}, &mockTokenManager{}, &mockOtpGenerator{}, &mockOtpEmailSender{})

	err := svc.VerifyOtp(context.Background(), "ghost@example.com", "123456")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestVerifyOtp_AlreadyVerified(t *testing.T) {
	user := unverifiedUser("123456", time.Now().Add(time.Minute))
	user.IsVerified = true

	repo := &mockUserRepo{}
	repo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	svc := newTestUserService(repo, &mockHasher{}, &mockTokenManager{}, &mockOtpGenerator{}, &mockOtpEmailSender{})

	err := svc.VerifyOtp(context.Background(), user.Email, "123456")
	assert.ErrorIs(t, err, ErrAlreadyVerified)
}

func TestVerifyOtp_WrongCodeBurnsAttempt(t *testing.T) {
	user := unverifiedUser("123456", time.Now().Add(time.Minute))

	repo := &mockUserRepo{}
	repo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)
	repo.On("IncrementOtpAttempts", mock.Anything, user.ID).Return(1, nil)

	svc := newTestUserService(repo, &mockHasher{}, &mockTokenManager{}, &mockOtpGenerator{}, &mockOtpEmailSender{})

	err := svc.VerifyOtp(context.Background(), user.Email, "000000")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidOtp)

	var invalidOtp *InvalidOtpError
	require.ErrorAs(t, err, &invalidOtp)
	assert.Equal(t, 2, invalidOtp.AttemptsLeft)

	repo.AssertNotCalled(t, "MarkVerified", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestVerifyOtp_ThirdFailureDeletesAccount(t *testing.T) {
	user := unverifiedUser("123456", time.Now().Add(time.Minute))

	repo := &mockUserRepo{}
	repo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)
	repo.On("IncrementOtpAttempts", mock.Anything, user.ID).Return(3, nil)
	repo.On("Delete", mock.Anything, user.ID).Return(nil)

	svc := newTestUserService(repo, &mockHasher{}, &mockTokenManager{}, &mockOtpGenerator{}, &mockOtpEmailSender{})

	err := svc.VerifyOtp(context.Background(), user.Email, "000000")
	assert.ErrorIs(t, err, ErrMaxOtpAttempts)
	repo.AssertCalled(t, "Delete", mock.Anything, user.ID)
}

func TestVerifyOtp_ExpiredCodeBurnsAttempt(t *testing.T) {
	user := unverifiedUser("123456", time.Now().Add(-time.Second))

	repo := &mockUserRepo{}
	repo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)
	repo.On("IncrementOtpAttempts", mock.Anything, user.ID).Return(1, nil)

	svc := newTestUserService(repo, &mockHasher{}, &mockTokenManager{}, &mockOtpGenerator{}, &mockOtpEmailSender{})

	// the correct code, but past its expiry
	err := svc.VerifyOtp(context.Background(), user.Email, "123456")
	assert.ErrorIs(t, err, ErrInvalidOtp)
	repo.AssertCalled(t, "IncrementOtpAttempts", mock.Anything, user.ID)
}

func TestVerifyOtp_Success(t *testing.T) {
	user := unverifiedUser("123456", time.Now().Add(time.Minute))

	repo := &mockUserRepo{}
	repo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)
	repo.On("MarkVerified", mock.Anything, user.ID).Return(nil)

	svc := newTestUserService(repo, &mockHasher{}, &mockTokenManager{}, &mockOtpGenerator{}, &mockOtpEmailSender{})

	err := svc.VerifyOtp(context.Background(), user.Email, "123456")
	require.NoError(t, err)
	repo.AssertNotCalled(t, "IncrementOtpAttempts", mock.Anything, mock.Anything)
}

// --- Login ---

func TestLogin_UnknownEmail(t *testing.T) {
	repo := &mockUserRepo{}
	repo.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)

	svc := newTestUserService(repo, &mockHasher{}, &mockTokenManager{}, &mockOtpGenerator{}, &mockOtpEmailSender{})

	_, err := svc.Login(context.Background(), "ghost@example.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_WrongPassword(t *testing.T) {
	user := unverifiedUser("123456", time.Now().Add(time.Minute))
	user.IsVerified = true

	repo := &mockUserRepo{}
	repo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	hasher := &mockHasher{}
	hasher.On("Check", user.PasswordHash, "wrong").Return(false)

	svc := newTestUserService(repo, hasher, &mockTokenManager{}, &mockOtpGenerator{}, &mockOtpEmailSender{})

	_, err := svc.Login(context.Background(), user.Email, "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnverifiedWithWrongPassword(t *testing.T) {
	// the password check runs first, so a bad password on an unverified
	// account must not leak the verification state
	user := unverifiedUser("123456", time.Now().Add(time.Minute))

	repo := &mockUserRepo{}
	repo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	hasher := &mockHasher{}
	hasher.On("Check", user.PasswordHash, "wrong").Return(false)

	svc := newTestUserService(repo, hasher, &mockTokenManager{}, &mockOtpGenerator{}, &mockOtpEmailSender{})

	_, err := svc.Login(context.Background(), user.Email, "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.NotErrorIs(t, err, ErrNotVerified)
}

func TestLogin_UnverifiedWithCorrectPassword(t *testing.T) {
	user := unverifiedUser("123456", time.Now().Add(time.Minute))

	repo := &mockUserRepo{}
	repo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	hasher := &mockHasher{}
	hasher.On("Check", user.PasswordHash, "Str0ng!pass").Return(true)

	svc := newTestUserService(repo, hasher, &mockTokenManager{}, &mockOtpGenerator{}, &mockOtpEmailSender{})

	_, err := svc.Login(context.Background(), user.Email, "Str0ng!pass")
	assert.ErrorIs(t, err, ErrNotVerified)
}

func TestLogin_Success(t *testing.T) {
	user := unverifiedUser("123456", time.Now().Add(time.Minute))
	user.IsVerified = true

	repo := &mockUserRepo{}
	repo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	hasher := &mockHasher{}
	hasher.On("Check", user.PasswordHash, "Str0ng!pass").Return(true)

	tm := &mockTokenManager{}
	tm.On("NewJWT", user.ID, string(user.Role), user.Email).Return("jwt-token", time.Hour, nil)

	svc := newTestUserService(repo, hasher, tm, &mockOtpGenerator{}, &mockOtpEmailSender{})

	token, err := svc.Login(context.Background(), user.Email, "Str0ng!pass")
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", token.AccessToken)
	assert.Equal(t, time.Hour, token.TTL)
}

// --- ResendVerificationOtp ---

func TestResendVerificationOtp_UserNotFound(t *testing.T) {
	repo := &mockUserRepo{}
	repo.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)

	svc := newTestUserService(repo, &mockHasher{}, &mockTokenManager{}, &mockOtpGenerator{}, &mockOtpEmailSender{})

	err := svc.ResendVerificationOtp(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestResendVerificationOtp_AlreadyVerified(t *testing.T) {
	user := unverifiedUser("123456", time.Now().Add(time.Minute))
	user.IsVerified = true

	repo := &mockUserRepo{}
	repo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	svc := newTestUserService(repo, &mockHasher{}, &mockTokenManager{}, &mockOtpGenerator{}, &mockOtpEmailSender{})

	err := svc.ResendVerificationOtp(context.Background(), user.Email)
	assert.ErrorIs(t, err, ErrAlreadyVerified)
}

func TestResendVerificationOtp_EmailFailureSurfaced(t *testing.T) {
	user := unverifiedUser("123456", time.Now().Add(time.Minute))

	repo := &mockUserRepo{}
	repo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)
	repo.On("SetOtp", mock.Anything, user.ID, "654321", mock.Anything).Return(nil)

	gen := &mockOtpGenerator{}
	gen.On("RandomCode", 6).Return("654321")

	sender := &mockOtpEmailSender{}
	sender.On("SendOtpEmail", mock.Anything, user.Email, "654321").Return(errors.New("smtp down"))

	svc := newTestUserService(repo, &mockHasher{}, &mockTokenManager{}, gen, sender)

	err := svc.ResendVerificationOtp(context.Background(), user.Email)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "send otp email failed")
}

func TestResendVerificationOtp_Success(t *testing.T) {
	user := unverifiedUser("123456", time.Now().Add(time.Minute))

	repo := &mockUserRepo{}
	repo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)
	repo.On("SetOtp", mock.Anything, user.ID, "654321", mock.Anything).Return(nil)

	gen := &mockOtpGenerator{}
	gen.On("RandomCode", 6).Return("654321")

	sender := &mockOtpEmailSender{}
	sender.On("SendOtpEmail", mock.Anything, user.Email, "654321").Return(nil)

	svc := newTestUserService(repo, &mockHasher{}, &mockTokenManager{}, gen, sender)

	err := svc.ResendVerificationOtp(context.Background(), user.Email)
	require.NoError(t, err)
	repo.AssertCalled(t, "SetOtp", mock.Anything, user.ID, "654321", mock.Anything)
}

// --- ForgotPassword ---

func TestForgotPassword_UnknownEmail(t *testing.T) {
	repo := &mockUserRepo{}
	repo.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)

	svc := newTestUserService(repo, &mockHasher{}, &mockTokenManager{}, &mockOtpGenerator{}, &mockOtpEmailSender{})

	err := svc.ForgotPassword(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestForgotPassword_WorksForUnverifiedUser(t *testing.T) {
	user := unverifiedUser("123456", time.Now().Add(time.Minute))

	repo := &mockUserRepo{}
	repo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)
	repo.On("SetOtp", mock.Anything, user.ID, "777777", mock.Anything).Return(nil)

	gen := &mockOtpGenerator{}
	gen.On("RandomCode", 6).Return("777777")

	sender := &mockOtpEmailSender{}
	sender.On("SendOtpEmail", mock.Anything, user.Email, "777777").Return(nil)

	svc := newTestUserService(repo, &mockHasher{}, &mockTokenManager{}, gen, sender)

	err := svc.ForgotPassword(context.Background(), user.Email)
	require.NoError(t, err)
}

// --- ResetPassword ---

func TestResetPassword_TooShortPassword(t *testing.T) {
	svc := newTestUserService(&mockUserRepo{}, &mockHasher{}, &mockTokenManager{}, &mockOtpGenerator{}, &mockOtpEmailSender{})

	err := svc.ResetPassword(context.Background(), "john@example.com", "123456", "short")
	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestResetPassword_UnknownEmail(t *testing.T) {
	repo := &mockUserRepo{}
	repo.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)

	svc := newTestUserService(repo, &mockHasher{}, &mockTokenManager{}, &mockOtpGenerator{}, &mockOtpEmailSender{})

	err := svc.ResetPassword(context.Background(), "ghost@example.com", "123456", "NewPass1!")
	assert.ErrorIs(t, err, ErrInvalidOtp)
}

func TestResetPassword_WrongCodeDoesNotBurnAttempt(t *testing.T) {
	user := unverifiedUser("123456", time.Now().Add(time.Minute))

	repo := &mockUserRepo{}
	repo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	svc := newTestUserService(repo, &mockHasher{}, &mockTokenManager{}, &mockOtpGenerator{}, &mockOtpEmailSender{})

	err := svc.ResetPassword(context.Background(), user.Email, "000000", "NewPass1!")
	assert.ErrorIs(t, err, ErrInvalidOtp)

	repo.AssertNotCalled(t, "IncrementOtpAttempts", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestResetPassword_ExpiredCode(t *testing.T) {
	user := unverifiedUser("123456", time.Now().Add(-time.Second))

	repo := &mockUserRepo{}
	repo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	svc := newTestUserService(repo, &mockHasher{}, &mockTokenManager{}, &mockOtpGenerator{}, &mockOtpEmailSender{})

	err := svc.ResetPassword(context.Background(), user.Email, "123456", "NewPass1!")
	assert.ErrorIs(t, err, ErrInvalidOtp)
}

func TestResetPassword_Success(t *testing.T) {
	user := unverifiedUser("123456", time.Now().Add(time.Minute))

	repo := &mockUserRepo{}
	repo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)
	repo.On("UpdatePassword", mock.Anything, user.ID, "new-hash").Return(nil)

	hasher := &mockHasher{}
	hasher.On("Hash", "NewPass1!").Return("new-hash", nil)

	svc := newTestUserService(repo, hasher, &mockTokenManager{}, &mockOtpGenerator{}, &mockOtpEmailSender{})

	err := svc.ResetPassword(context.Background(), user.Email, "123456", "NewPass1!")
	require.NoError(t, err)
	repo.AssertCalled(t, "UpdatePassword", mock.Anything, user.ID, "new-hash")
}

// --- DeleteUnverified ---

func TestDeleteUnverified_NotFound(t *testing.T) {
	repo := &mockUserRepo{}
	repo.On("DeleteUnverified", mock.Anything, "john@example.com", "0123456789").Return(false, nil)

	svc := newTestUserService(repo, &mockHasher{}, &mockTokenManager{}, &mockOtpGenerator{}, &mockOtpEmailSender{})

	err := svc.DeleteUnverified(context.Background(), "john@example.com", "0123456789")
	assert.ErrorIs(t, err, ErrUnverifiedUserNotFound)
}

func TestDeleteUnverified_Success(t *testing.T) {
	repo := &mockUserRepo{}
	repo.On("DeleteUnverified", mock.Anything, "john@example.com", "0123456789").Return(true, nil)

	svc := newTestUserService(repo, &mockHasher{}, &mockTokenManager{}, &mockOtpGenerator{}, &mockOtpEmailSender{})

	err := svc.DeleteUnverified(context.Background(), "john@example.com", "0123456789")
	require.NoError(t, err)
}

// --- helpers ---

func TestAgeInYears(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 18, ageInYears(time.Date(2006, 6, 15, 0, 0, 0, 0, time.UTC), now))
	assert.Equal(t, 17, ageInYears(time.Date(2006, 6, 18, 0, 0, 0, 0, time.UTC), now))
	assert.Equal(t, 34, ageInYears(time.Date(1990, 5, 20, 0, 0, 0, 0, time.UTC), now))
}

func TestIsStrongPassword(t *testing.T) {
	assert.True(t, isStrongPassword("Str0ng!pass"))
	assert.True(t, isStrongPassword("Aa1!aaaa"))

	assert.False(t, isStrongPassword("Aa1!aaa"))
	assert.False(t, isStrongPassword("password1!"))
	assert.False(t, isStrongPassword("PASSWORD1!"))
	assert.False(t, isStrongPassword("Password!!"))
	assert.False(t, isStrongPassword("Password11"))
}
