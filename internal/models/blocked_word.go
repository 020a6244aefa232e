package models

import "time"

// BlockedWord is one entry in a user's blocked words list.
type BlockedWord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_blocked_words_user_word" json:"user_id"`
	Word      string    `gorm:"not null;uniqueIndex:idx_blocked_words_user_word" json:"word"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (BlockedWord) TableName() string {
	return "blocked_words"
}
