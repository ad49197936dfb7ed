package models

import "time"

// Competition represents a themed challenge built around a short random
// letter sequence.
type Competition struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Title            string    `gorm:"size:200;not null" json:"title"`
	Description      string    `gorm:"type:text" json:"description"`
	Letters          string    `gorm:"size:10" json:"letters"`
	Theme            string    `gorm:"size:100" json:"theme,omitempty"`
	StyleRequirement string    `gorm:"size:100" json:"style_requirement,omitempty"`
	StartDate        time.Time `gorm:"not null" json:"start_date"`
	EndDate          time.Time `gorm:"not null" json:"end_date"`
	CreatedAt        time.Time `json:"created_at"`

	Entries []CompetitionEntry `gorm:"foreignKey:CompetitionID;constraint:OnDelete:CASCADE" json:"entries,omitempty"`
}

// Open reports whether the competition accepts entries at the given instant.
func (c *Competition) Open(now time.Time) bool {
	return !now.Before(c.StartDate) && !now.After(c.EndDate)
}

// CompetitionEntry links a piece to a competition. Votes is only ever read;
// no voting operation exists.
type CompetitionEntry struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	CompetitionID uint      `gorm:"not null;uniqueIndex:idx_entries_competition_piece" json:"competition_id"`
	PieceID       uint      `gorm:"not null;uniqueIndex:idx_entries_competition_piece" json:"piece_id"`
	Piece         Piece     `gorm:"foreignKey:PieceID" json:"piece,omitempty"`
	SubmittedAt   time.Time `gorm:"autoCreateTime" json:"submitted_at"`
	Votes         int       `gorm:"default:0" json:"votes"`
}
