package models

import (
	"time"
)

// VerificationTTL is how long a signup verification code stays valid.
const VerificationTTL = 10 * time.Minute

// VerificationCode holds a pending signup: the emailed 6-digit code plus the
// submitted account data (password already hashed). Rows past VerificationTTL
// are treated as expired and purged on lookup.
type VerificationCode struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Email string `gorm:"index;not null;size:100" json:"email"`
	Code  string `gorm:"size:6;not null" json:"-"`

	// Pending account data
	Name     string `gorm:"size:100;not null" json:"-"`
	Password string `gorm:"not null" json:"-"`
	Phone    string `gorm:"size:10;not null" json:"-"`
	Location string `gorm:"size:255;not null" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
}

// Expired reports whether the code is past its TTL.
func (v *VerificationCode) Expired() bool {
	return time.Since(v.CreatedAt) > VerificationTTL
}
