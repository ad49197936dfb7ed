// Package models contains data structures for the application's domain models.
package models

import "time"

// User represents a graffiti artist account.
// Accounts are never hard-deleted; IsActive=false disables them instead.
type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Username       string    `gorm:"size:50;unique;not null" json:"username"`
	Email          string    `gorm:"size:100;unique;not null" json:"email"`
	HashedPassword string    `gorm:"size:100;not null" json:"-"`
	TagName        string    `gorm:"size:50" json:"tag_name"`
	Bio            string    `gorm:"type:text" json:"bio"`
	Location       string    `gorm:"size:100" json:"location"`
	Crew           string    `gorm:"size:50" json:"crew"`
	IsActive       bool      `gorm:"default:true" json:"is_active"`
	IsPremium      bool      `gorm:"default:false" json:"is_premium"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Pieces   []Piece   `gorm:"foreignKey:ArtistID;constraint:OnDelete:CASCADE" json:"pieces,omitempty"`
	Comments []Comment `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	Likes    []Like    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
