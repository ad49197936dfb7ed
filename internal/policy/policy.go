// Package policy holds the visibility and ownership rules for pieces,
// comments, and likes. Every function is a pure decision over already-loaded
// records; callers translate denials into Forbidden responses, keeping them
// distinct from NotFound.
package policy

import "blackbook/internal/models"

// CanViewPiece reports whether the actor may read the piece. A nil actor is
// an anonymous viewer. Public pieces are visible to everyone; private pieces
// only to their owner.
func CanViewPiece(actor *models.User, piece *models.Piece) bool {
	if piece.IsPublic {
		return true
	}
	return actor != nil && actor.ID == piece.ArtistID
}

// CanDeletePiece reports whether the actor may delete the piece. Only the
// owning artist may.
func CanDeletePiece(actor *models.User, piece *models.Piece) bool {
	return actor != nil && actor.ID == piece.ArtistID
}

// CanCommentOnPiece reports whether the actor may comment on the piece.
// The rule matches piece read visibility: public, or owned by the actor.
func CanCommentOnPiece(actor *models.User, piece *models.Piece) bool {
	return CanViewPiece(actor, piece)
}

// CanListComments reports whether the piece's comment list may be read.
// Only public pieces expose their comments; the owner of a private piece is
// NOT exempt, unlike the piece read rule. The asymmetry is intentional and
// pinned by tests.
func CanListComments(piece *models.Piece) bool {
	return piece.IsPublic
}

// CanDeleteComment reports whether the actor may delete the comment. The
// comment's author and the owner of the piece it is attached to both may.
func CanDeleteComment(actor *models.User, comment *models.Comment, piece *models.Piece) bool {
	if actor == nil {
		return false
	}
	return actor.ID == comment.AuthorID || actor.ID == piece.ArtistID
}

// CanViewAllPiecesOf reports whether the actor sees the owner's full gallery
// (including private pieces). Only the owner does; everyone else sees public
// pieces only.
func CanViewAllPiecesOf(actor *models.User, owner *models.User) bool {
	return actor != nil && actor.ID == owner.ID
}

// CanEnterCompetition reports whether the actor may submit the piece to a
// competition. Entries must be the actor's own pieces.
func CanEnterCompetition(actor *models.User, piece *models.Piece) bool {
	return actor != nil && actor.ID == piece.ArtistID
}
