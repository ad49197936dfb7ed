package models

import "time"

// PieceType categorizes a graffiti piece by style.
type PieceType string

const (
	PieceTypeTag            PieceType = "tag"
	PieceTypeThrowie        PieceType = "throwie"
	PieceTypeHollow         PieceType = "hollow"
	PieceTypeStraightLetter PieceType = "straight_letter"
	PieceTypePiece          PieceType = "piece"
	PieceTypeBlockbuster    PieceType = "blockbuster"
	PieceTypeWildstyle      PieceType = "wildstyle"
	PieceTypeStencil        PieceType = "stencil"
	PieceTypeWheatpaste     PieceType = "wheatpaste"
	PieceTypeSticker        PieceType = "sticker"
	PieceTypeDigital        PieceType = "digital"
	PieceTypeSketch         PieceType = "sketch"
)

// PieceTypes lists every valid piece type.
var PieceTypes = []PieceType{
	PieceTypeTag, PieceTypeThrowie, PieceTypeHollow, PieceTypeStraightLetter,
	PieceTypePiece, PieceTypeBlockbuster, PieceTypeWildstyle, PieceTypeStencil,
	PieceTypeWheatpaste, PieceTypeSticker, PieceTypeDigital, PieceTypeSketch,
}

// Valid reports whether t is a member of the closed piece type set.
func (t PieceType) Valid() bool {
	switch t {
	case PieceTypeTag, PieceTypeThrowie, PieceTypeHollow, PieceTypeStraightLetter,
		PieceTypePiece, PieceTypeBlockbuster, PieceTypeWildstyle, PieceTypeStencil,
		PieceTypeWheatpaste, PieceTypeSticker, PieceTypeDigital, PieceTypeSketch:
		return true
	}
	return false
}

// Surface categorizes the medium a piece was painted on.
type Surface string

const (
	SurfaceWall      Surface = "wall"
	SurfaceTrain     Surface = "train"
	SurfaceCanvas    Surface = "canvas"
	SurfaceBlackbook Surface = "blackbook"
	SurfaceDigital   Surface = "digital"
	SurfaceSticker   Surface = "sticker"
	SurfacePoster    Surface = "poster"
	SurfaceOther     Surface = "other"
)

// Surfaces lists every valid surface.
var Surfaces = []Surface{
	SurfaceWall, SurfaceTrain, SurfaceCanvas, SurfaceBlackbook,
	SurfaceDigital, SurfaceSticker, SurfacePoster, SurfaceOther,
}

// Valid reports whether s is a member of the closed surface set.
func (s Surface) Valid() bool {
	switch s {
	case SurfaceWall, SurfaceTrain, SurfaceCanvas, SurfaceBlackbook,
		SurfaceDigital, SurfaceSticker, SurfacePoster, SurfaceOther:
		return true
	}
	return false
}

// Piece represents a graffiti artwork.
type Piece struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"size:200;not null" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	PieceType    PieceType `gorm:"size:20;not null" json:"piece_type"`
	Surface      Surface   `gorm:"size:20;not null" json:"surface"`
	ImageURL     string    `gorm:"size:500;not null" json:"image_url"`
	ThumbnailURL string    `gorm:"size:500" json:"thumbnail_url,omitempty"`
	IsPublic     bool      `gorm:"default:true" json:"is_public"`
	Location     string    `gorm:"size:200" json:"location"`
	CreatedAt    time.Time `json:"created_at"`
	ArtistID     uint      `gorm:"not null;index" json:"artist_id"`
	Artist       User      `gorm:"foreignKey:ArtistID" json:"artist"`

	// Computed at query time from likes/comments rows; never persisted.
	LikesCount    int  `gorm:"->;-:migration" json:"likes_count"`
	CommentsCount int  `gorm:"->;-:migration" json:"comments_count"`
	Liked         bool `gorm:"->;-:migration" json:"is_liked_by_user"`

	Comments []Comment          `gorm:"foreignKey:PieceID;constraint:OnDelete:CASCADE" json:"-"`
	Likes    []Like             `gorm:"foreignKey:PieceID;constraint:OnDelete:CASCADE" json:"-"`
	Entries  []CompetitionEntry `gorm:"foreignKey:PieceID;constraint:OnDelete:CASCADE" json:"-"`
}
