package repository

import (
	"context"

	"blackbook/internal/models"

	"gorm.io/gorm"
)

// CompetitionRepository defines the interface for competition data operations.
type CompetitionRepository interface {
	List(ctx context.Context, limit, offset int) ([]*models.Competition, error)
	GetByID(ctx context.Context, id uint) (*models.Competition, error)
	CreateEntry(ctx context.Context, entry *models.CompetitionEntry) error
}

type competitionRepository struct {
	db *gorm.DB
}

// NewCompetitionRepository creates a new competition repository.
func NewCompetitionRepository(db *gorm.DB) CompetitionRepository {
	return &competitionRepository{db: db}
}

func (r *competitionRepository) List(ctx context.Context, limit, offset int) ([]*models.Competition, error) {
	var competitions []*models.Competition
	err := r.db.WithContext(ctx).
		Order("start_date DESC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&competitions).Error
	return competitions, err
}

func (r *competitionRepository) GetByID(ctx context.Context, id uint) (*models.Competition, error) {
	var competition models.Competition
	err := r.db.WithContext(ctx).
		Preload("Entries").
		Preload("Entries.Piece").
		Preload("Entries.Piece.Artist").
		First(&competition, id).Error
	if err != nil {
		return nil, err
	}
	return &competition, nil
}

// CreateEntry inserts a competition entry. Submitting the same piece to the
// same competition twice surfaces as a Conflict.
func (r *competitionRepository) CreateEntry(ctx context.Context, entry *models.CompetitionEntry) error {
	err := r.db.WithContext(ctx).Create(entry).Error
	if isDuplicateKeyError(err) {
		return models.NewConflictError("Piece already entered in this competition")
	}
	return err
}
