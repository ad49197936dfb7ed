package repository

import (
	"context"

	"blackbook/internal/models"

	"gorm.io/gorm"
)

// PieceFilter narrows a public piece listing. All predicates are conjunctive.
type PieceFilter struct {
	PieceType *models.PieceType
	Surface   *models.Surface
	Search    string
	Limit     int
	Offset    int
}

// PieceRepository defines the interface for piece data operations.
type PieceRepository interface {
	Create(ctx context.Context, piece *models.Piece) error
	GetByID(ctx context.Context, id uint, viewerID uint) (*models.Piece, error)
	ListPublic(ctx context.Context, filter PieceFilter, viewerID uint) ([]*models.Piece, error)
	ListByArtist(ctx context.Context, artistID uint, includePrivate bool, pieceType *models.PieceType, limit, offset int, viewerID uint) ([]*models.Piece, error)
	Delete(ctx context.Context, id uint) error
	Like(ctx context.Context, userID, pieceID uint) error
	Unlike(ctx context.Context, userID, pieceID uint) error
	IsLiked(ctx context.Context, userID, pieceID uint) (bool, error)
}

type pieceRepository struct {
	db *gorm.DB
}

// NewPieceRepository creates a new piece repository.
func NewPieceRepository(db *gorm.DB) PieceRepository {
	return &pieceRepository{db: db}
}

func (r *pieceRepository) Create(ctx context.Context, piece *models.Piece) error {
	return r.db.WithContext(ctx).Create(piece).Error
}

func (r *pieceRepository) GetByID(ctx context.Context, id uint, viewerID uint) (*models.Piece, error) {
	var piece models.Piece
	err := r.applyPieceStats(r.db.WithContext(ctx), viewerID).
		Preload("Artist").
		First(&piece, id).Error
	if err != nil {
		return nil, err
	}
	return &piece, nil
}

func (r *pieceRepository) ListPublic(ctx context.Context, filter PieceFilter, viewerID uint) ([]*models.Piece, error) {
	var pieces []*models.Piece

	q := r.applyPieceStats(r.db.WithContext(ctx), viewerID).
		Preload("Artist").
		Where("pieces.is_public = ?", true)

	if filter.PieceType != nil {
		q = q.Where("pieces.piece_type = ?", *filter.PieceType)
	}
	if filter.Surface != nil {
		q = q.Where("pieces.surface = ?", *filter.Surface)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Joins("JOIN users ON users.id = pieces.artist_id").
			Where("(pieces.title ILIKE ? OR pieces.description ILIKE ? OR users.username ILIKE ? OR users.tag_name ILIKE ?)",
				like, like, like, like)
	}

	err := q.Order("pieces.created_at DESC, pieces.id ASC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&pieces).Error
	return pieces, err
}

func (r *pieceRepository) ListByArtist(ctx context.Context, artistID uint, includePrivate bool, pieceType *models.PieceType, limit, offset int, viewerID uint) ([]*models.Piece, error) {
	var pieces []*models.Piece

	q := r.applyPieceStats(r.db.WithContext(ctx), viewerID).
		Preload("Artist").
		Where("pieces.artist_id = ?", artistID)
	if !includePrivate {
		q = q.Where("pieces.is_public = ?", true)
	}
	if pieceType != nil {
		q = q.Where("pieces.piece_type = ?", *pieceType)
	}

	err := q.Order("pieces.created_at DESC, pieces.id ASC").
		Limit(limit).
		Offset(offset).
		Find(&pieces).Error
	return pieces, err
}

// applyPieceStats adds subqueries computing likes_count, comments_count, and
// the viewer's liked flag in a single query. The same builder serves listing
// and detail paths so the two never diverge. Anonymous viewers always get
// liked=false.
func (r *pieceRepository) applyPieceStats(db *gorm.DB, viewerID uint) *gorm.DB {
	selectQuery := "pieces.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.piece_id = pieces.id) AS comments_count, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.piece_id = pieces.id) AS likes_count"

	if viewerID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM likes WHERE likes.piece_id = pieces.id AND likes.user_id = ?) AS liked", viewerID)
	}

	return db.Select(selectQuery + ", false AS liked")
}

// Delete removes a piece and all dependent rows in one transaction so a
// failure mid-sequence cannot leave counts inconsistent.
func (r *pieceRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("piece_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("piece_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("piece_id = ?", id).Delete(&models.CompetitionEntry{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Piece{}, id).Error
	})
}

// Like inserts a like row. A duplicate (user, piece) pair surfaces as a
// Conflict; the unique index enforces this under concurrent requests.
func (r *pieceRepository) Like(ctx context.Context, userID, pieceID uint) error {
	like := &models.Like{UserID: userID, PieceID: pieceID}
	err := r.db.WithContext(ctx).Create(like).Error
	if isDuplicateKeyError(err) {
		return models.NewConflictError("Already liked this piece")
	}
	return err
}

// Unlike removes the like row. Absence is an error, not a no-op.
func (r *pieceRepository) Unlike(ctx context.Context, userID, pieceID uint) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND piece_id = ?", userID, pieceID).
		Delete(&models.Like{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.NewConflictError("Piece is not liked")
	}
	return nil
}

func (r *pieceRepository) IsLiked(ctx context.Context, userID, pieceID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND piece_id = ?", userID, pieceID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
