package service

import (
	"context"
	"testing"
	"time"

	"blackbook/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCompetitionService_SubmitEntry(t *testing.T) {
	actor := &models.User{ID: 10}
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	open := &models.Competition{
		ID:        1,
		Title:     "Chrome Letters August",
		Letters:   "KSM",
		StartDate: now.Add(-24 * time.Hour),
		EndDate:   now.Add(24 * time.Hour),
	}
	closed := &models.Competition{
		ID:        2,
		Title:     "Last Month's Battle",
		StartDate: now.Add(-60 * 24 * time.Hour),
		EndDate:   now.Add(-30 * 24 * time.Hour),
	}
	ownPiece := &models.Piece{ID: 5, ArtistID: 10}
	otherPiece := &models.Piece{ID: 6, ArtistID: 99}

	newSvc := func(comps *stubCompetitionRepo, pieces *stubPieceRepo) *CompetitionService {
		svc := NewCompetitionService(comps, pieces)
		svc.now = func() time.Time { return now }
		return svc
	}
	comps := &stubCompetitionRepo{
		getByIDFn: func(_ context.Context, id uint) (*models.Competition, error) {
			switch id {
			case 1:
				return open, nil
			case 2:
				return closed, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
	pieces := &stubPieceRepo{
		getByIDFn: func(_ context.Context, id uint, _ uint) (*models.Piece, error) {
			switch id {
			case 5:
				return ownPiece, nil
			case 6:
				return otherPiece, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
	ctx := context.Background()

	t.Run("own piece into open competition", func(t *testing.T) {
		svc := newSvc(&stubCompetitionRepo{
			getByIDFn: comps.getByIDFn,
			createEntryFn: func(_ context.Context, entry *models.CompetitionEntry) error {
				entry.ID = 3
				return nil
			},
		}, pieces)

		entry, err := svc.SubmitEntry(ctx, actor, 1, 5)
		require.NoError(t, err)
		assert.Equal(t, uint(1), entry.CompetitionID)
		assert.Equal(t, uint(5), entry.PieceID)
		assert.Zero(t, entry.Votes)
	})

	t.Run("closed competition rejects entries", func(t *testing.T) {
		svc := newSvc(comps, pieces)
		_, err := svc.SubmitEntry(ctx, actor, 2, 5)
		assertAppErrorCode(t, err, models.CodeValidation)
	})

	t.Run("someone else's piece forbidden", func(t *testing.T) {
		svc := newSvc(comps, pieces)
		_, err := svc.SubmitEntry(ctx, actor, 1, 6)
		assertAppErrorCode(t, err, models.CodeForbidden)
	})

	t.Run("duplicate entry conflicts", func(t *testing.T) {
		svc := newSvc(&stubCompetitionRepo{
			getByIDFn: comps.getByIDFn,
			createEntryFn: func(context.Context, *models.CompetitionEntry) error {
				return models.NewConflictError("Piece already entered in this competition")
			},
		}, pieces)

		_, err := svc.SubmitEntry(ctx, actor, 1, 5)
		assertAppErrorCode(t, err, models.CodeConflict)
	})

	t.Run("unknown competition", func(t *testing.T) {
		svc := newSvc(comps, pieces)
		_, err := svc.SubmitEntry(ctx, actor, 99, 5)
		assertAppErrorCode(t, err, models.CodeNotFound)
	})
}

func TestCompetitionService_Get_NotFound(t *testing.T) {
	comps := &stubCompetitionRepo{
		getByIDFn: func(context.Context, uint) (*models.Competition, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewCompetitionService(comps, &stubPieceRepo{})

	_, err := svc.Get(context.Background(), 42)
	assertAppErrorCode(t, err, models.CodeNotFound)
}
