// Package entity defines the domain entities for the account feature.
package entity

import "time"

// Account represents a registered job-portal user.
type Account struct {
	// ID is the opaque identifier assigned at creation. It never changes.
	ID string `gorm:"primaryKey;size:36"`

	Fullname    string `gorm:"size:255;not null"`
	PhoneNumber string `gorm:"size:32;not null"`

	// Email is unique across all accounts. The unique index is the
	// authoritative guard against concurrent registrations.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the bcrypt hash (salt embedded). Never plaintext.
	Password string `gorm:"size:255;not null"`

	// Role is fixed at registration.
	Role Role `gorm:"size:32;not null"`

	Profile Profile `gorm:"embedded;embeddedPrefix:profile_"`

	// Version is bumped on every update. An update carrying an older
	// version is rejected.
	Version int64 `gorm:"not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Profile holds the user-editable part of an account.
type Profile struct {
	ProfilePhoto       string   `json:"profilePhoto" gorm:"size:1024"`
	Bio                string   `json:"bio" gorm:"type:text"`
	Skills             []string `json:"skills" gorm:"serializer:json"`
	Resume             string   `json:"resume" gorm:"size:1024"`
	ResumeOriginalName string   `json:"resumeOriginalName" gorm:"size:255"`
}

// AccountView is the sanitized projection of an Account sent to clients.
// It has no password field.
type AccountView struct {
	ID          string  `json:"_id"`
	Fullname    string  `json:"fullname"`
	Email       string  `json:"email"`
	PhoneNumber string  `json:"phoneNumber"`
	Role        Role    `json:"role"`
	Profile     Profile `json:"profile"`
}

// Sanitize drops the password hash.
func (a *Account) Sanitize() AccountView {
	profile := a.Profile
	if profile.Skills == nil {
		profile.Skills = []string{}
	}
	return AccountView{
		ID:          a.ID,
		Fullname:    a.Fullname,
		Email:       a.Email,
		PhoneNumber: a.PhoneNumber,
		Role:        a.Role,
		Profile:     profile,
	}
}
