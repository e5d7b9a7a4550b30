package service

import (
	"errors"
	"fmt"
)

var (
	ErrMissingFields = errors.New("name, email, password, phone and dob are required")
	ErrWeakPassword  = errors.New("password must be at least 8 characters long and include uppercase, lowercase, number, and special character")
	ErrInvalidPhone  = errors.New("phone number must be 10 digits")
	ErrInvalidDob    = errors.New("invalid date of birth format, use YYYY-MM-DD")
	ErrUnderage      = errors.New("you must be at least 18 years old to register")
	ErrInvalidRole   = errors.New("unknown role")

	ErrUserAlreadyExists = errors.New("email already registered")
	ErrUserNotFound      = errors.New("user not found")
	ErrAlreadyVerified   = errors.New("email already verified")

	ErrInvalidOtp     = errors.New("invalid or expired otp")
	ErrMaxOtpAttempts = errors.New("maximum otp attempts reached, your registration has been cancelled")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotVerified        = errors.New("please verify your email before logging in")

	ErrUnverifiedUserNotFound = errors.New("unverified user not found")
)

// InvalidOtpError is returned on a failed verification check that did
// not yet exhaust the attempt budget. It unwraps to ErrInvalidOtp so
// callers can match either the class or the exact shape.
type InvalidOtpError struct {
	AttemptsLeft int
}

func (e *InvalidOtpError) Error() string {
	return fmt.Sprintf("invalid or expired otp, attempts left: %d", e.AttemptsLeft)
}

func (e *InvalidOtpError) Unwrap() error {
	return ErrInvalidOtp
}
