package models

import (
	"regexp"
	"strings"
	"time"
)

var (
	phonePattern = regexp.MustCompile(`^[0-9]{10}$`)
	upiPattern   = regexp.MustCompile(`^[a-zA-Z0-9._-]{2,}@[a-zA-Z]{2,}$`)
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Identity
	Name     string `gorm:"size:100;not null" json:"name"`
	Email    string `gorm:"unique;not null;size:100" json:"email"`
	Password string `gorm:"not null" json:"-"`

	// Contact & payout
	Phone    string `gorm:"size:10;not null" json:"phone"`
	Location string `gorm:"size:255;not null" json:"location"`
	UpiID    string `gorm:"size:100" json:"upiId"` // handle@bank, empty until configured

	IsAdmin  bool   `gorm:"default:false" json:"isAdmin"`
	Initials string `gorm:"size:2" json:"initials"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DeriveInitials builds the two-letter avatar initials from a full name.
func DeriveInitials(name string) string {
	initials := ""
	for _, part := range strings.Fields(name) {
		initials += strings.ToUpper(string([]rune(part)[0]))
		if len(initials) >= 2 {
			break
		}
	}
	if initials == "" {
		return "US"
	}
	return initials
}

// ValidPhone reports whether phone is a 10-digit number.
func ValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// ValidUpiID reports whether upiId matches the handle@bank pattern.
func ValidUpiID(upiId string) bool {
	return upiPattern.MatchString(upiId)
}

// PublicProfile is the user shape returned by the auth endpoints.
type PublicProfile struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	UpiID    string `json:"upiId"`
	IsAdmin  bool   `json:"isAdmin"`
	Initials string `json:"initials"`
}

func (u *User) Profile() PublicProfile {
	return PublicProfile{
		Name:     u.Name,
		Email:    u.Email,
		Phone:    u.Phone,
		Location: u.Location,
		UpiID:    u.UpiID,
		IsAdmin:  u.IsAdmin,
		Initials: u.Initials,
	}
}
