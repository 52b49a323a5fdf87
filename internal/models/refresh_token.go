package models

import (
	"time"
)

// RefreshToken is a stored, revocable refresh token issued at login
type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"size:36;index" json:"userId"`
	Token     string    `gorm:"type:text;not null" json:"-"`
	ExpiresAt time.Time `json:"expiresAt"`
	IsRevoked bool      `gorm:"default:false" json:"isRevoked"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// Usable reports whether the token can still be exchanged at the given instant.
func (rt *RefreshToken) Usable(now time.Time) bool {
	return !rt.IsRevoked && rt.ExpiresAt.After(now)
}
