package models

import "time"

// Profile is a detached read-only view of a User, assembled with its blocked
// words and friend references. It is what read-only requests see and what the
// profile cache stores, so decoding must tolerate fields being added or removed.
type Profile struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Bio          string    `json:"bio"`
	URL          string    `json:"url"`
	Picture      string    `json:"picture"`
	BlockedWords []string  `json:"blocked_words"`
	Friends      []uint    `json:"friends"`
	Deactivated  bool      `json:"deactivated"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewProfile builds a Profile from u. Nil lists become empty ones.
func NewProfile(u *User, blockedWords []string, friends []uint) *Profile {
	if blockedWords == nil {
		blockedWords = []string{}
	}
	if friends == nil {
		friends = []uint{}
	}
	return &Profile{
		ID:           u.ID,
		Name:         u.Name,
		Username:     u.Username,
		Email:        u.Email,
		Bio:          u.Bio,
		URL:          u.URL,
		Picture:      u.Picture,
		BlockedWords: blockedWords,
		Friends:      friends,
		Deactivated:  u.Deactivated,
		CreatedAt:    u.CreatedAt,
	}
}
