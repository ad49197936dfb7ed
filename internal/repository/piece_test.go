package repository

import (
	"context"
	"errors"
	"testing"

	"blackbook/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestPieceRepository_GetByID_WithStats(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPieceRepository(db)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "title", "piece_type", "surface", "is_public", "artist_id", "comments_count", "likes_count", "liked"}).
		AddRow(1, "Midnight Burner", "wildstyle", "wall", true, 10, 5, 12, true)
	mock.ExpectQuery(`SELECT pieces\..+ FROM "pieces" WHERE "pieces"\."id" = .+`).
		WithArgs(2, 1, 1).
		WillReturnRows(rows)

	mock.ExpectQuery(`SELECT .+ FROM "users" WHERE "users"\."id" = .+`).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(10, "writer10"))

	piece, err := repo.GetByID(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, "Midnight Burner", piece.Title)
	assert.Equal(t, 5, piece.CommentsCount)
	assert.Equal(t, 12, piece.LikesCount)
	assert.True(t, piece.Liked)
	assert.Equal(t, "writer10", piece.Artist.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPieceRepository_GetByID_AnonymousLikedFalse(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPieceRepository(db)
	ctx := context.Background()

	// No viewer: the select carries a constant false, not an EXISTS subquery.
	rows := sqlmock.NewRows([]string{"id", "title", "artist_id", "comments_count", "likes_count", "liked"}).
		AddRow(1, "Silver Hollow", 10, 0, 3, false)
	mock.ExpectQuery(`SELECT pieces\..+false AS liked FROM "pieces" WHERE "pieces"\."id" = .+`).
		WithArgs(1, 1).
		WillReturnRows(rows)

	mock.ExpectQuery(`SELECT .+ FROM "users" WHERE "users"\."id" = .+`).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(10, "writer10"))

	piece, err := repo.GetByID(ctx, 1, 0)
	require.NoError(t, err)
	assert.False(t, piece.Liked)
	assert.Equal(t, 3, piece.LikesCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPieceRepository_GetByID_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPieceRepository(db)

	mock.ExpectQuery(`SELECT pieces\..+ FROM "pieces" WHERE "pieces"\."id" = .+`).
		WithArgs(99, 1).
		WillReturnError(gorm.ErrRecordNotFound)

	_, err := repo.GetByID(context.Background(), 99, 0)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPieceRepository_Like_Duplicate(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPieceRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "likes"`).
		WillReturnError(errors.New(`ERROR: duplicate key value violates unique constraint "idx_likes_user_piece" (SQLSTATE 23505)`))
	mock.ExpectRollback()

	err := repo.Like(context.Background(), 2, 1)
	require.Error(t, err)

	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeConflict, appErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPieceRepository_Unlike_Absent(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPieceRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "likes"`).
		WithArgs(2, 1).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.Unlike(context.Background(), 2, 1)
	require.Error(t, err)

	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeConflict, appErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPieceRepository_Unlike_Success(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPieceRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "likes"`).
		WithArgs(2, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assert.NoError(t, repo.Unlike(context.Background(), 2, 1))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPieceRepository_Delete_CascadesDependents(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPieceRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "comments" WHERE piece_id = .+`).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec(`DELETE FROM "likes" WHERE piece_id = .+`).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 7))
	mock.ExpectExec(`DELETE FROM "competition_entries" WHERE piece_id = .+`).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "pieces"`).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assert.NoError(t, repo.Delete(context.Background(), 1))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPieceRepository_ListPublic_ConjunctiveFilters(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPieceRepository(db)

	rows := sqlmock.NewRows([]string{"id", "title", "piece_type", "surface", "artist_id", "comments_count", "likes_count", "liked"}).
		AddRow(3, "Faded Tag", "tag", "wall", 10, 1, 2, false)
	// is_public, piece_type, surface, and the search group all narrow the
	// same WHERE clause.
	mock.ExpectQuery(`SELECT pieces\..+ FROM "pieces" JOIN users ON users\.id = pieces\.artist_id WHERE pieces\.is_public = .+ AND pieces\.piece_type = .+ AND pieces\.surface = .+ILIKE.+ORDER BY pieces\.created_at DESC, pieces\.id ASC`).
		WillReturnRows(rows)

	mock.ExpectQuery(`SELECT .+ FROM "users" WHERE "users"\."id" = .+`).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(10, "writer10"))

	pt := models.PieceTypeTag
	sf := models.SurfaceWall
	pieces, err := repo.ListPublic(context.Background(), PieceFilter{
		PieceType: &pt,
		Surface:   &sf,
		Search:    "fade",
		Limit:     20,
	}, 0)
	require.NoError(t, err)
	require.Len(t, pieces, 1)
	assert.Equal(t, "Faded Tag", pieces[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}
