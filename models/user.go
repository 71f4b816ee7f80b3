// models/user.go
package models

import "time"

// User represents an account holder who books sessions.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Email        string    `bson:"email" json:"email"`
	Name         string    `bson:"name" json:"name"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	Timezone     string    `bson:"timezone" json:"timezone"` // IANA name, e.g. "Africa/Lagos"
	Active       bool      `bson:"active" json:"active"`
	Verified     bool      `bson:"verified" json:"verified"`
	CreatedAt    time.Time `bson:"createdAt" json:"created_at"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updated_at"`
}

// Location resolves the user's preferred timezone, falling back to UTC when
// unset or unknown.
func (u *User) Location() *time.Location {
	if u.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(u.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// UserUpdateRequest carries the account fields a user may change themselves.
type UserUpdateRequest struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Timezone string `json:"timezone"`
}
