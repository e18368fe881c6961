package users

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/model-registry/model-registry/internal/auth"
	"github.com/model-registry/model-registry/internal/config"
	"github.com/model-registry/model-registry/internal/db/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Setenv("MR_JWT_SECRET", "test-secret-that-is-at-least-32-chars-long")
	os.Exit(m.Run())
}

var userCols = []string{"id", "username", "email", "password_hash", "invite_token", "invite_token_expires_at", "created_at", "updated_at"}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{BaseURL: "https://registry.example.com"},
		Auth:   config.AuthConfig{TokenTTL: time.Hour},
	}
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// ---------------------------------------------------------------------------
// RegisterHandler
// ---------------------------------------------------------------------------

func TestRegisterHandler_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), "alice", "alice@example.com", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	router := gin.New()
	router.POST("/register", RegisterHandler(db, testConfig()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("POST", "/register",
		`{"username":"alice","email":"alice@example.com","password":"s3cret-password"}`))

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"username":"alice"`)
	assert.NotContains(t, w.Body.String(), "password")
}

func TestRegisterHandler_DuplicateUsername(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(&pq.Error{Code: "23505"})

	router := gin.New()
	router.POST("/register", RegisterHandler(db, testConfig()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("POST", "/register",
		`{"username":"alice","email":"alice@example.com","password":"s3cret-password"}`))

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegisterHandler_DisabledWithoutToken(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cfg := testConfig()
	cfg.Auth.DisableRegistration = true

	router := gin.New()
	router.POST("/register", RegisterHandler(db, cfg))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("POST", "/register",
		`{"username":"alice","email":"alice@example.com","password":"s3cret-password"}`))

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRegisterHandler_DisabledWithValidInvite(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cfg := testConfig()
	cfg.Auth.DisableRegistration = true

	token := "valid-invite-token"
	expiry := time.Now().Add(24 * time.Hour)
	mock.ExpectQuery("SELECT.*FROM users.*WHERE invite_token").
		WithArgs(token).
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow("inviter-1", "bob", "bob@example.com", "$2a$12$hash", token, expiry, time.Now(), time.Now()))
	mock.ExpectExec("INSERT INTO users").
		WillReturnResult(sqlmock.NewResult(0, 1))

	router := gin.New()
	router.POST("/register", RegisterHandler(db, cfg))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("POST", "/register",
		`{"username":"alice","email":"alice@example.com","password":"s3cret-password","invite_token":"valid-invite-token"}`))

	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestRegisterHandler_DisabledWithExpiredInvite(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cfg := testConfig()
	cfg.Auth.DisableRegistration = true

	token := "expired-invite-token"
	expiry := time.Now().Add(-time.Hour)
	mock.ExpectQuery("SELECT.*FROM users.*WHERE invite_token").
		WithArgs(token).
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow("inviter-1", "bob", "bob@example.com", "$2a$12$hash", token, expiry, time.Now(), time.Now()))

	router := gin.New()
	router.POST("/register", RegisterHandler(db, cfg))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("POST", "/register",
		`{"username":"alice","email":"alice@example.com","password":"s3cret-password","invite_token":"expired-invite-token"}`))

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRegisterHandler_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing username", `{"email":"a@example.com","password":"s3cret-password"}`},
		{"bad email", `{"username":"alice","email":"not-an-email","password":"s3cret-password"}`},
		{"short password", `{"username":"alice","email":"a@example.com","password":"short"}`},
	}

	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	router := gin.New()
	router.POST("/register", RegisterHandler(db, testConfig()))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, jsonRequest("POST", "/register", tt.body))
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

// ---------------------------------------------------------------------------
// LoginHandler
// ---------------------------------------------------------------------------

func TestLoginHandler_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	hash, err := auth.HashPassword("s3cret-password")
	require.NoError(t, err)

	mock.ExpectQuery("SELECT.*FROM users.*WHERE username").
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow("user-1", "alice", "alice@example.com", hash, nil, nil, time.Now(), time.Now()))

	router := gin.New()
	router.POST("/login", LoginHandler(db, testConfig()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("POST", "/login", `{"username":"alice","password":"s3cret-password"}`))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"token"`)
	assert.Contains(t, w.Body.String(), `"expires_in":3600`)
}

func TestLoginHandler_WrongPassword(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	hash, err := auth.HashPassword("s3cret-password")
	require.NoError(t, err)

	mock.ExpectQuery("SELECT.*FROM users.*WHERE username").
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow("user-1", "alice", "alice@example.com", hash, nil, nil, time.Now(), time.Now()))

	router := gin.New()
	router.POST("/login", LoginHandler(db, testConfig()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("POST", "/login", `{"username":"alice","password":"wrong"}`))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")
}

func TestLoginHandler_UnknownUserSameResponse(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT.*FROM users.*WHERE username").
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(userCols))

	router := gin.New()
	router.POST("/login", LoginHandler(db, testConfig()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("POST", "/login", `{"username":"ghost","password":"whatever"}`))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")
}

// ---------------------------------------------------------------------------
// RegistrationStatusHandler
// ---------------------------------------------------------------------------

func TestRegistrationStatusHandler(t *testing.T) {
	for _, disabled := range []bool{true, false} {
		cfg := testConfig()
		cfg.Auth.DisableRegistration = disabled

		router := gin.New()
		router.GET("/registration", RegistrationStatusHandler(cfg))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/registration", nil))

		require.Equal(t, http.StatusOK, w.Code)
		if disabled {
			assert.Contains(t, w.Body.String(), `"allowed":false`)
		} else {
			assert.Contains(t, w.Body.String(), `"allowed":true`)
		}
	}
}

// ---------------------------------------------------------------------------
// MeHandler
// ---------------------------------------------------------------------------

func withUser(user *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user", user)
		c.Set("user_id", user.ID)
		c.Next()
	}
}

func TestMeHandler_ReturnsProfileWithoutPasswordHash(t *testing.T) {
	user := &models.User{
		ID:           "user-1",
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "$2a$12$hash",
	}

	router := gin.New()
	router.GET("/me", withUser(user), MeHandler())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/me", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"alice"`)
	assert.NotContains(t, w.Body.String(), "$2a$12$hash")
}

func TestMeHandler_NoUserContext(t *testing.T) {
	router := gin.New()
	router.GET("/me", MeHandler())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/me", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// ---------------------------------------------------------------------------
// Invite handlers
// ---------------------------------------------------------------------------

func TestCreateInviteHandler_IssuesNewToken(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE users.*SET invite_token").
		WithArgs("user-1", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	router := gin.New()
	router.POST("/invite", withUser(&models.User{ID: "user-1", Username: "alice"}), CreateInviteHandler(db, testConfig()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/invite", nil))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"token"`)
	assert.Contains(t, w.Body.String(), "https://registry.example.com/register?token=")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateInviteHandler_ReturnsExistingActiveToken(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	token := "existing-active-token"
	expiry := time.Now().Add(48 * time.Hour)
	user := &models.User{
		ID:                   "user-1",
		Username:             "alice",
		InviteToken:          &token,
		InviteTokenExpiresAt: &expiry,
	}

	// No ExpectExec: reusing the active token must not touch the database.
	router := gin.New()
	router.POST("/invite", withUser(user), CreateInviteHandler(db, testConfig()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/invite", nil))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "existing-active-token")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResetInviteHandler_AlwaysRotates(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	token := "existing-active-token"
	expiry := time.Now().Add(48 * time.Hour)
	user := &models.User{
		ID:                   "user-1",
		Username:             "alice",
		InviteToken:          &token,
		InviteTokenExpiresAt: &expiry,
	}

	mock.ExpectExec("UPDATE users.*SET invite_token").
		WithArgs("user-1", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	router := gin.New()
	router.POST("/invite/reset", withUser(user), ResetInviteHandler(db, testConfig()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/invite/reset", nil))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotContains(t, w.Body.String(), "existing-active-token")
	require.NoError(t, mock.ExpectationsWereMet())
}
