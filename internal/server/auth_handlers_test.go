package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func userRowWithPassword(t *testing.T, password string) *sqlmock.Rows {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return sqlmock.NewRows([]string{"id", "username", "email", "hashed_password", "is_active"}).
		AddRow(1, "writer", "writer@example.com", string(hash), true)
}

func TestLogin(t *testing.T) {
	t.Run("valid credentials return a usable token", func(t *testing.T) {
		db, mock := setupMockDB(t)
		srv, app := newTestServer(t, db)

		mock.ExpectQuery(`SELECT .+ FROM "users" WHERE username = .+`).
			WithArgs("writer", 1).
			WillReturnRows(userRowWithPassword(t, "paintcans"))

		req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
			strings.NewReader(`{"username":"writer","password":"paintcans"}`))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body loginResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "bearer", body.TokenType)
		assert.NotEmpty(t, body.AccessToken)
		assert.Equal(t, "writer", body.User.Username)
		assert.Empty(t, body.User.HashedPassword, "hash never serializes")

		subject, err := srv.auth.VerifyToken(body.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "writer", subject)
	})

	t.Run("wrong password is 401", func(t *testing.T) {
		db, mock := setupMockDB(t)
		_, app := newTestServer(t, db)

		mock.ExpectQuery(`SELECT .+ FROM "users" WHERE username = .+`).
			WithArgs("writer", 1).
			WillReturnRows(userRowWithPassword(t, "paintcans"))

		req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
			strings.NewReader(`{"username":"writer","password":"wrong"}`))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("missing fields is 400", func(t *testing.T) {
		db, _ := setupMockDB(t)
		_, app := newTestServer(t, db)

		req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
			strings.NewReader(`{"username":"writer"}`))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestRequireAuth(t *testing.T) {
	t.Run("no token is 401", func(t *testing.T) {
		db, _ := setupMockDB(t)
		_, app := newTestServer(t, db)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/users/", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("garbage token is 401", func(t *testing.T) {
		db, _ := setupMockDB(t)
		_, app := newTestServer(t, db)

		req := httptest.NewRequest(http.MethodGet, "/api/users/", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("inactive account is 403, not 401", func(t *testing.T) {
		db, mock := setupMockDB(t)
		srv, app := newTestServer(t, db)

		token, err := srv.auth.IssueToken("writer")
		require.NoError(t, err)

		mock.ExpectQuery(`SELECT .+ FROM "users" WHERE username = .+`).
			WithArgs("writer", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "is_active"}).
				AddRow(1, "writer", false))

		req := httptest.NewRequest(http.MethodGet, "/api/users/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("token for deleted account is 401", func(t *testing.T) {
		db, mock := setupMockDB(t)
		srv, app := newTestServer(t, db)

		token, err := srv.auth.IssueToken("ghost")
		require.NoError(t, err)

		mock.ExpectQuery(`SELECT .+ FROM "users" WHERE username = .+`).
			WithArgs("ghost", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "is_active"}))

		req := httptest.NewRequest(http.MethodGet, "/api/users/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}
