package otp

import "github.com/xlzd/gotp"

const secretLength = 16

// Generator produces short numeric one-time codes for email verification
// and password reset.
type Generator interface {
	RandomCode(length int) string
}

type GOTPGenerator struct{}

func NewGOTPGenerator() *GOTPGenerator {
	return &GOTPGenerator{}
}

// RandomCode returns a zero-padded numeric code of the requested length,
// derived from a fresh random secret on every call.
func (g *GOTPGenerator) RandomCode(length int) string {
	totp := gotp.NewTOTP(gotp.RandomSecret(secretLength), length, 30, nil)
	return totp.Now()
}
