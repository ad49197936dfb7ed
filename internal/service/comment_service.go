package service

import (
	"context"
	"errors"

	"blackbook/internal/models"
	"blackbook/internal/policy"
	"blackbook/internal/repository"
	"blackbook/internal/validation"

	"gorm.io/gorm"
)

// CommentService handles comment creation, listing, and moderation.
type CommentService struct {
	commentRepo repository.CommentRepository
	pieceRepo   repository.PieceRepository
}

func NewCommentService(commentRepo repository.CommentRepository, pieceRepo repository.PieceRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, pieceRepo: pieceRepo}
}

// CreateComment attaches a comment to a piece the actor can view.
func (s *CommentService) CreateComment(ctx context.Context, actor *models.User, pieceID uint, content string) (*models.Comment, error) {
	if err := validation.ValidateCommentContent(content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	piece, err := s.loadPiece(ctx, pieceID)
	if err != nil {
		return nil, err
	}
	if !policy.CanCommentOnPiece(actor, piece) {
		return nil, models.NewForbiddenError("Cannot comment on a private piece")
	}

	comment := &models.Comment{
		Content:  content,
		AuthorID: actor.ID,
		PieceID:  pieceID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, models.NewInternalError(err)
	}

	created, err := s.commentRepo.GetByID(ctx, comment.ID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return created, nil
}

// ListByPiece returns a piece's comments, newest first. Comments on private
// pieces are hidden from everyone, the piece's owner included.
func (s *CommentService) ListByPiece(ctx context.Context, pieceID uint, limit, offset int) ([]*models.Comment, error) {
	piece, err := s.loadPiece(ctx, pieceID)
	if err != nil {
		return nil, err
	}
	if !policy.CanListComments(piece) {
		return nil, models.NewForbiddenError("Comments on a private piece are not visible")
	}

	comments, err := s.commentRepo.ListByPiece(ctx, pieceID, limit, offset)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}

// DeleteComment removes a comment. The comment's author and the owner of the
// piece both qualify.
func (s *CommentService) DeleteComment(ctx context.Context, actor *models.User, commentID uint) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Comment", commentID)
		}
		return models.NewInternalError(err)
	}

	piece, err := s.loadPiece(ctx, comment.PieceID)
	if err != nil {
		return err
	}
	if !policy.CanDeleteComment(actor, comment, piece) {
		return models.NewForbiddenError("Not authorized to delete this comment")
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (s *CommentService) loadPiece(ctx context.Context, id uint) (*models.Piece, error) {
	piece, err := s.pieceRepo.GetByID(ctx, id, 0)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Piece", id)
		}
		return nil, models.NewInternalError(err)
	}
	return piece, nil
}
