package domain

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleTourist Role = "tourist"
	RoleCitizen Role = "citizen"
	RolePolice  Role = "police"
	RoleAdmin   Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleTourist, RoleCitizen, RolePolice, RoleAdmin:
		return true
	}
	return false
}

// User carries the whole account lifecycle state: otp/otp_expiry are
// both set while a verification or password reset is pending and both
// null otherwise; otp_attempts counts consecutive failed verification
// checks since the last issuance.
type User struct {
	ID           uuid.UUID      `db:"id" json:"id"`
	Name         string         `db:"name" json:"name"`
	Email        string         `db:"email" json:"email"`
	PasswordHash string         `db:"password_hash" json:"-"`
	Role         Role           `db:"role" json:"role"`
	Phone        string         `db:"phone" json:"phone"`
	DateOfBirth  time.Time      `db:"dob" json:"dob"`
	IsVerified   bool           `db:"is_verified" json:"is_verified"`
	Otp          sql.NullString `db:"otp" json:"-"`
	OtpExpiry    sql.NullTime   `db:"otp_expiry" json:"-"`
	OtpAttempts  int            `db:"otp_attempts" json:"-"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
