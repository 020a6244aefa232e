// Package models contains data structures for the application's domain models.
package models

import "time"

// User is a registered identity.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"not null" json:"name"`
	Username string `gorm:"not null;uniqueIndex:idx_users_username" json:"username"`
	Email    string `gorm:"not null;uniqueIndex:idx_users_email" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Bio      string `json:"bio"`
	URL      string `json:"url"`
	Picture  string `json:"picture"`
	// Deactivated identities keep their username and email but never authenticate again.
	Deactivated bool `gorm:"not null;default:false;index" json:"deactivated"`
	// DeactivationRequestedAt marks a deactivation that has started and may need resuming.
	DeactivationRequestedAt *time.Time `gorm:"index" json:"-"`
	CreatedAt               time.Time  `json:"created_at"`
	UpdatedAt               time.Time  `json:"updated_at"`
}

// ProfileColumns are the columns a profile save may write. The password hash and
// the deactivation state have dedicated update paths.
var ProfileColumns = []string{"name", "username", "email", "bio", "url", "picture"}

// AccountSummary is the identity shape returned by registration and login.
type AccountSummary struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Summary returns the public account summary of u.
func (u *User) Summary() AccountSummary {
	return AccountSummary{ID: u.ID, Name: u.Name, Username: u.Username, Email: u.Email}
}

// PublicProfile is what other users see when looking someone up.
type PublicProfile struct {
	Name    string `json:"name"`
	Picture string `json:"picture"`
	Bio     string `json:"bio"`
}

// FriendSummary describes one entry in a friends list.
type FriendSummary struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Picture  string `json:"picture"`
}
