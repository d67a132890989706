package models

import "time"

// Session is one login of a user. The auth middleware rejects tokens whose
// session is revoked or expired, so logout takes effect immediately even
// though the JWT itself stays valid until its expiry.
type Session struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"` // UUID
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	ExpiresAt time.Time `gorm:"index;not null" json:"expires_at"`
	Revoked   bool      `gorm:"index;not null" json:"-"`
	CreatedAt time.Time `json:"-"`

	User User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
