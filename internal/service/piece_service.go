package service

import (
	"context"
	"errors"

	"blackbook/internal/middleware"
	"blackbook/internal/models"
	"blackbook/internal/observability"
	"blackbook/internal/policy"
	"blackbook/internal/repository"
	"blackbook/internal/validation"

	"gorm.io/gorm"
)

// PieceService orchestrates piece CRUD, visibility, and reactions.
type PieceService struct {
	pieceRepo repository.PieceRepository
	uploads   *UploadService
}

func NewPieceService(pieceRepo repository.PieceRepository, uploads *UploadService) *PieceService {
	return &PieceService{pieceRepo: pieceRepo, uploads: uploads}
}

// CreatePieceInput carries the multipart fields for a new piece.
type CreatePieceInput struct {
	Title       string
	Description string
	PieceType   string
	Surface     string
	Location    string
	IsPublic    bool
	FileName    string
	FileBytes   []byte
}

// CreatePiece validates the metadata, stores the image, and inserts the row.
// Validation runs before the file write so a bad request leaves nothing on
// disk; if the insert fails after the write, the stored file is removed.
func (s *PieceService) CreatePiece(ctx context.Context, actor *models.User, in CreatePieceInput) (*models.Piece, error) {
	if errs := validation.ValidatePiece(validation.PieceInput{
		Title:     in.Title,
		PieceType: in.PieceType,
		Surface:   in.Surface,
		Location:  in.Location,
	}); len(errs) > 0 {
		return nil, models.NewValidationError(validation.JoinFieldErrors(errs))
	}

	imageURL, err := s.uploads.Save(in.FileName, in.FileBytes)
	if err != nil {
		return nil, err
	}

	piece := &models.Piece{
		Title:       in.Title,
		Description: in.Description,
		PieceType:   models.PieceType(in.PieceType),
		Surface:     models.Surface(in.Surface),
		Location:    in.Location,
		IsPublic:    in.IsPublic,
		ImageURL:    imageURL,
		ArtistID:    actor.ID,
	}
	if err := s.pieceRepo.Create(ctx, piece); err != nil {
		s.uploads.Remove(imageURL)
		return nil, models.NewInternalError(err)
	}
	observability.PieceUploadsTotal.WithLabelValues(in.PieceType).Inc()

	return s.GetPiece(ctx, piece.ID, actor)
}

// GetPiece loads a piece with its stats. Missing pieces are NotFound; pieces
// the actor may not view are Forbidden, so the caller learns the piece exists
// but not its content.
func (s *PieceService) GetPiece(ctx context.Context, id uint, actor *models.User) (*models.Piece, error) {
	viewerID := uint(0)
	if actor != nil {
		viewerID = actor.ID
	}

	piece, err := s.pieceRepo.GetByID(ctx, id, viewerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Piece", id)
		}
		return nil, models.NewInternalError(err)
	}

	if !policy.CanViewPiece(actor, piece) {
		return nil, models.NewForbiddenError("This piece is private")
	}
	return piece, nil
}

// ListPublic returns the public feed with all filters applied conjunctively.
func (s *PieceService) ListPublic(ctx context.Context, filter repository.PieceFilter, actor *models.User) ([]*models.Piece, error) {
	viewerID := uint(0)
	if actor != nil {
		viewerID = actor.ID
	}

	pieces, err := s.pieceRepo.ListPublic(ctx, filter, viewerID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return pieces, nil
}

// DeletePiece removes a piece, its dependents, and its stored image. Only the
// owner may delete; the image removal is best effort after the row is gone.
func (s *PieceService) DeletePiece(ctx context.Context, id uint, actor *models.User) error {
	piece, err := s.loadPiece(ctx, id)
	if err != nil {
		return err
	}

	if !policy.CanDeletePiece(actor, piece) {
		return models.NewForbiddenError("Not authorized to delete this piece")
	}

	if err := s.pieceRepo.Delete(ctx, id); err != nil {
		return models.NewInternalError(err)
	}

	s.uploads.Remove(piece.ImageURL)
	middleware.Logger.InfoContext(ctx, "piece deleted", "piece_id", id, "artist_id", piece.ArtistID)
	return nil
}

// Like records the actor's like. Liking an already-liked piece is a Conflict,
// not a no-op.
func (s *PieceService) Like(ctx context.Context, pieceID uint, actor *models.User) error {
	piece, err := s.loadPiece(ctx, pieceID)
	if err != nil {
		return err
	}
	if !policy.CanViewPiece(actor, piece) {
		return models.NewForbiddenError("This piece is private")
	}

	if err := s.pieceRepo.Like(ctx, actor.ID, pieceID); err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return err
		}
		return models.NewInternalError(err)
	}
	return nil
}

// Unlike removes the actor's like. Unliking a piece that was never liked is
// an error, mirroring Like.
func (s *PieceService) Unlike(ctx context.Context, pieceID uint, actor *models.User) error {
	piece, err := s.loadPiece(ctx, pieceID)
	if err != nil {
		return err
	}
	if !policy.CanViewPiece(actor, piece) {
		return models.NewForbiddenError("This piece is private")
	}

	if err := s.pieceRepo.Unlike(ctx, actor.ID, pieceID); err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return err
		}
		return models.NewInternalError(err)
	}
	return nil
}

// loadPiece fetches a piece without a viewer, mapping absence to NotFound.
// Policy checks happen at the call sites that know the operation.
func (s *PieceService) loadPiece(ctx context.Context, id uint) (*models.Piece, error) {
	piece, err := s.pieceRepo.GetByID(ctx, id, 0)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Piece", id)
		}
		return nil, models.NewInternalError(err)
	}
	return piece, nil
}
