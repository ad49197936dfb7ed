package service

import (
	"context"
	"errors"
	"time"

	"blackbook/internal/models"
	"blackbook/internal/policy"
	"blackbook/internal/repository"

	"gorm.io/gorm"
)

// CompetitionService handles competition listings and entry submission.
type CompetitionService struct {
	compRepo  repository.CompetitionRepository
	pieceRepo repository.PieceRepository
	now       func() time.Time
}

func NewCompetitionService(compRepo repository.CompetitionRepository, pieceRepo repository.PieceRepository) *CompetitionService {
	return &CompetitionService{
		compRepo:  compRepo,
		pieceRepo: pieceRepo,
		now:       time.Now,
	}
}

// List returns competitions, most recently started first.
func (s *CompetitionService) List(ctx context.Context, limit, offset int) ([]*models.Competition, error) {
	competitions, err := s.compRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return competitions, nil
}

// Get returns a competition with its entries, or NotFound.
func (s *CompetitionService) Get(ctx context.Context, id uint) (*models.Competition, error) {
	competition, err := s.compRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Competition", id)
		}
		return nil, models.NewInternalError(err)
	}
	return competition, nil
}

// SubmitEntry enters one of the actor's pieces into an open competition.
// Entries outside the window are rejected, pieces the actor does not own are
// Forbidden, and a repeat submission of the same piece is a Conflict.
func (s *CompetitionService) SubmitEntry(ctx context.Context, actor *models.User, competitionID, pieceID uint) (*models.CompetitionEntry, error) {
	competition, err := s.Get(ctx, competitionID)
	if err != nil {
		return nil, err
	}
	if !competition.Open(s.now()) {
		return nil, models.NewValidationError("Competition is not open for entries")
	}

	piece, err := s.pieceRepo.GetByID(ctx, pieceID, 0)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Piece", pieceID)
		}
		return nil, models.NewInternalError(err)
	}
	if !policy.CanEnterCompetition(actor, piece) {
		return nil, models.NewForbiddenError("Only your own pieces can be entered")
	}

	entry := &models.CompetitionEntry{
		CompetitionID: competitionID,
		PieceID:       pieceID,
	}
	if err := s.compRepo.CreateEntry(ctx, entry); err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, models.NewInternalError(err)
	}
	entry.Piece = *piece
	return entry, nil
}
