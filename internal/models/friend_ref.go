package models

import "time"

// FriendRef is a one-directional reference from UserID to FriendID.
type FriendRef struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_friend_refs_pair" json:"user_id"`
	FriendID  uint      `gorm:"not null;uniqueIndex:idx_friend_refs_pair;index" json:"friend_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (FriendRef) TableName() string {
	return "friend_refs"
}
