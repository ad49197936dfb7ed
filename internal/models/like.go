package models

import "time"

// Like represents a user's appreciation of a piece.
// The combination of UserID and PieceID must be unique; the storage-level
// index closes the check-then-act race under concurrent requests.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_likes_user_piece" json:"user_id"`
	PieceID   uint      `gorm:"not null;uniqueIndex:idx_likes_user_piece" json:"piece_id"`
	CreatedAt time.Time `json:"created_at"`
}
