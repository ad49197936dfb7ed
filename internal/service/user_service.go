package service

import (
	"context"

	"blackbook/internal/models"
	"blackbook/internal/policy"
	"blackbook/internal/repository"
	"blackbook/internal/validation"
)

// UserService handles registration and profile reads.
type UserService struct {
	userRepo  repository.UserRepository
	pieceRepo repository.PieceRepository
	auth      *AuthService
}

func NewUserService(userRepo repository.UserRepository, pieceRepo repository.PieceRepository, auth *AuthService) *UserService {
	return &UserService{
		userRepo:  userRepo,
		pieceRepo: pieceRepo,
		auth:      auth,
	}
}

// RegisterInput carries the fields accepted at sign-up.
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	TagName  string `json:"tag_name"`
	Bio      string `json:"bio"`
	Location string `json:"location"`
	Crew     string `json:"crew"`
}

// Register validates input, checks uniqueness, hashes the password, and
// creates the account. The unique indexes on username and email back the
// pre-checks, so a racing duplicate still surfaces as a Conflict.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	existing, err := s.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if existing != nil {
		return nil, models.NewConflictError("Username already registered")
	}

	existing, err = s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if existing != nil {
		return nil, models.NewConflictError("Email already registered")
	}

	hashed, err := s.auth.HashPassword(in.Password)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username:       in.Username,
		Email:          in.Email,
		HashedPassword: hashed,
		TagName:        in.TagName,
		Bio:            in.Bio,
		Location:       in.Location,
		Crew:           in.Crew,
		IsActive:       true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// List returns users ordered by username, optionally filtered by a
// case-insensitive search over username, tag name, and crew.
func (s *UserService) List(ctx context.Context, search string, limit, offset int) ([]*models.User, error) {
	users, err := s.userRepo.List(ctx, search, limit, offset)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

// GetByUsername returns a user profile or NotFound.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", username)
	}
	return user, nil
}

// ListPieces returns a user's gallery. The owner sees private pieces too;
// everyone else gets the public subset of the same listing.
func (s *UserService) ListPieces(ctx context.Context, username string, actor *models.User, pieceType *models.PieceType, limit, offset int) ([]*models.Piece, error) {
	owner, err := s.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	includePrivate := policy.CanViewAllPiecesOf(actor, owner)
	viewerID := uint(0)
	if actor != nil {
		viewerID = actor.ID
	}

	pieces, err := s.pieceRepo.ListByArtist(ctx, owner.ID, includePrivate, pieceType, limit, offset, viewerID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return pieces, nil
}
