package service

import (
	"context"

	"blackbook/internal/models"
	"blackbook/internal/repository"
)

// Function-field stubs keep each test's behavior next to its assertions.

type stubUserRepo struct {
	createFn        func(ctx context.Context, user *models.User) error
	getByIDFn       func(ctx context.Context, id uint) (*models.User, error)
	getByUsernameFn func(ctx context.Context, username string) (*models.User, error)
	getByEmailFn    func(ctx context.Context, email string) (*models.User, error)
	listFn          func(ctx context.Context, search string, limit, offset int) ([]*models.User, error)
	updateFn        func(ctx context.Context, user *models.User) error
}

func (s *stubUserRepo) Create(ctx context.Context, user *models.User) error {
	if s.createFn != nil {
		return s.createFn(ctx, user)
	}
	return nil
}

func (s *stubUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (s *stubUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if s.getByUsernameFn != nil {
		return s.getByUsernameFn(ctx, username)
	}
	return nil, nil
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.getByEmailFn != nil {
		return s.getByEmailFn(ctx, email)
	}
	return nil, nil
}

func (s *stubUserRepo) List(ctx context.Context, search string, limit, offset int) ([]*models.User, error) {
	if s.listFn != nil {
		return s.listFn(ctx, search, limit, offset)
	}
	return nil, nil
}

func (s *stubUserRepo) Update(ctx context.Context, user *models.User) error {
	if s.updateFn != nil {
		return s.updateFn(ctx, user)
	}
	return nil
}

type stubPieceRepo struct {
	createFn       func(ctx context.Context, piece *models.Piece) error
	getByIDFn      func(ctx context.Context, id uint, viewerID uint) (*models.Piece, error)
	listPublicFn   func(ctx context.Context, filter repository.PieceFilter, viewerID uint) ([]*models.Piece, error)
	listByArtistFn func(ctx context.Context, artistID uint, includePrivate bool, pieceType *models.PieceType, limit, offset int, viewerID uint) ([]*models.Piece, error)
	deleteFn       func(ctx context.Context, id uint) error
	likeFn         func(ctx context.Context, userID, pieceID uint) error
	unlikeFn       func(ctx context.Context, userID, pieceID uint) error
	isLikedFn      func(ctx context.Context, userID, pieceID uint) (bool, error)
}

func (s *stubPieceRepo) Create(ctx context.Context, piece *models.Piece) error {
	if s.createFn != nil {
		return s.createFn(ctx, piece)
	}
	return nil
}

func (s *stubPieceRepo) GetByID(ctx context.Context, id uint, viewerID uint) (*models.Piece, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id, viewerID)
	}
	return nil, nil
}

func (s *stubPieceRepo) ListPublic(ctx context.Context, filter repository.PieceFilter, viewerID uint) ([]*models.Piece, error) {
	if s.listPublicFn != nil {
		return s.listPublicFn(ctx, filter, viewerID)
	}
	return nil, nil
}

func (s *stubPieceRepo) ListByArtist(ctx context.Context, artistID uint, includePrivate bool, pieceType *models.PieceType, limit, offset int, viewerID uint) ([]*models.Piece, error) {
	if s.listByArtistFn != nil {
		return s.listByArtistFn(ctx, artistID, includePrivate, pieceType, limit, offset, viewerID)
	}
	return nil, nil
}

func (s *stubPieceRepo) Delete(ctx context.Context, id uint) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return nil
}

func (s *stubPieceRepo) Like(ctx context.Context, userID, pieceID uint) error {
	if s.likeFn != nil {
		return s.likeFn(ctx, userID, pieceID)
	}
	return nil
}

func (s *stubPieceRepo) Unlike(ctx context.Context, userID, pieceID uint) error {
	if s.unlikeFn != nil {
		return s.unlikeFn(ctx, userID, pieceID)
	}
	return nil
}

func (s *stubPieceRepo) IsLiked(ctx context.Context, userID, pieceID uint) (bool, error) {
	if s.isLikedFn != nil {
		return s.isLikedFn(ctx, userID, pieceID)
	}
	return false, nil
}

type stubCommentRepo struct {
	createFn      func(ctx context.Context, comment *models.Comment) error
	getByIDFn     func(ctx context.Context, id uint) (*models.Comment, error)
	listByPieceFn func(ctx context.Context, pieceID uint, limit, offset int) ([]*models.Comment, error)
	deleteFn      func(ctx context.Context, id uint) error
}

func (s *stubCommentRepo) Create(ctx context.Context, comment *models.Comment) error {
	if s.createFn != nil {
		return s.createFn(ctx, comment)
	}
	return nil
}

func (s *stubCommentRepo) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (s *stubCommentRepo) ListByPiece(ctx context.Context, pieceID uint, limit, offset int) ([]*models.Comment, error) {
	if s.listByPieceFn != nil {
		return s.listByPieceFn(ctx, pieceID, limit, offset)
	}
	return nil, nil
}

func (s *stubCommentRepo) Delete(ctx context.Context, id uint) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return nil
}

type stubCompetitionRepo struct {
	listFn        func(ctx context.Context, limit, offset int) ([]*models.Competition, error)
	getByIDFn     func(ctx context.Context, id uint) (*models.Competition, error)
	createEntryFn func(ctx context.Context, entry *models.CompetitionEntry) error
}

func (s *stubCompetitionRepo) List(ctx context.Context, limit, offset int) ([]*models.Competition, error) {
	if s.listFn != nil {
		return s.listFn(ctx, limit, offset)
	}
	return nil, nil
}

func (s *stubCompetitionRepo) GetByID(ctx context.Context, id uint) (*models.Competition, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (s *stubCompetitionRepo) CreateEntry(ctx context.Context, entry *models.CompetitionEntry) error {
	if s.createEntryFn != nil {
		return s.createEntryFn(ctx, entry)
	}
	return nil
}
