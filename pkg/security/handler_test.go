package security

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/FractiqLabs/StockEasy/internal/database"
	"github.com/FractiqLabs/StockEasy/internal/repository"
	"github.com/FractiqLabs/StockEasy/internal/users"
	"github.com/FractiqLabs/StockEasy/pkg/models"
	"github.com/FractiqLabs/StockEasy/pkg/roles"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// The login tests run against the real sqlite-backed stores; seeding a
// credential goes through the same repository the create-admin command
// uses.
func setupLoginRouter(t *testing.T, staffPasscode string) (*gin.Engine, *loginFixture) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, driver := database.NewTestDB(t)
	repo := repository.NewRepository(db, driver)
	userRepo := users.NewRepository(repo)
	sessionStore := NewSessionStore(repo, time.Hour)
	handler := NewLoginHandler(userRepo, sessionStore, staffPasscode, time.Hour)

	router := gin.New()
	api := router.Group("/api")
	api.Use(SessionMiddleware(sessionStore))
	handler.RegisterRoutes(api)

	return router, &loginFixture{db: db, users: userRepo, sessions: sessionStore}
}

type loginFixture struct {
	db       *sql.DB
	users    *users.UserRepository
	sessions *SessionStore
}

func seedUser(t *testing.T, userRepo *users.UserRepository, username, password string, role roles.Role, facilityID *int64) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, userRepo.PersistUser(username, hash, role, facilityID))
}

func postJSON(router *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestAdminLogin(t *testing.T) {
	router, fx := setupLoginRouter(t, "")
	seedUser(t, fx.users, "admin", "correct-horse", roles.Admin, nil)

	t.Run("valid credentials", func(t *testing.T) {
		w := postJSON(router, "/api/admin/login", map[string]string{
			"username": "admin",
			"password": "correct-horse",
		})

		require.Equal(t, http.StatusOK, w.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, true, resp["success"])
		assert.Equal(t, "admin", resp["role"])
		assert.NotEmpty(t, resp["token"])
	})

	t.Run("wrong password", func(t *testing.T) {
		w := postJSON(router, "/api/admin/login", map[string]string{
			"username": "admin",
			"password": "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown user looks like wrong password", func(t *testing.T) {
		w := postJSON(router, "/api/admin/login", map[string]string{
			"username": "nobody",
			"password": "whatever",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "invalid username or password")
	})
}

func TestStaffLoginRequiresCredential(t *testing.T) {
	facilityID := int64(1)

	t.Run("facility staff user", func(t *testing.T) {
		router, fx := setupLoginRouter(t, "")
		_, err := fx.db.Exec(`INSERT INTO facilities (id, name) VALUES (1, 'Main Ward')`)
		require.NoError(t, err)
		seedUser(t, fx.users, "staff-1f", "ward-pass", roles.Staff, &facilityID)

		w := postJSON(router, "/api/staff/login", map[string]interface{}{
			"facilityId": facilityID,
			"password":   "ward-pass",
		})
		assert.Equal(t, http.StatusOK, w.Code)

		w = postJSON(router, "/api/staff/login", map[string]interface{}{
			"facilityId": facilityID,
			"password":   "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("shared passcode fallback", func(t *testing.T) {
		router, _ := setupLoginRouter(t, "floor-passcode")

		w := postJSON(router, "/api/staff/login", map[string]string{
			"password": "floor-passcode",
		})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("no credential configured means no login", func(t *testing.T) {
		router, _ := setupLoginRouter(t, "")

		w := postJSON(router, "/api/staff/login", map[string]string{
			"password": "anything",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

// failingCredentials simulates a credential store whose backend is down.
type failingCredentials struct{}

func (failingCredentials) GetAdminByUsername(string) (*models.User, error) {
	return nil, errors.New("pq: connection reset")
}

func (failingCredentials) GetStaffByFacility(int64) (*models.User, error) {
	return nil, errors.New("pq: connection reset")
}

func TestLoginStorageFault(t *testing.T) {
	gin.SetMode(gin.TestMode)

	handler := NewLoginHandler(failingCredentials{}, nil, "", time.Hour)
	router := gin.New()
	handler.RegisterRoutes(router.Group("/api"))

	t.Run("admin login is a 500, not a 401", func(t *testing.T) {
		w := postJSON(router, "/api/admin/login", map[string]string{
			"username": "admin",
			"password": "whatever",
		})
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "connection reset")
	})

	t.Run("staff login does not fall through to the passcode", func(t *testing.T) {
		facilityID := int64(1)
		w := postJSON(router, "/api/staff/login", map[string]interface{}{
			"facilityId": facilityID,
			"password":   "whatever",
		})
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestLogoutClearsSession(t *testing.T) {
	router, fx := setupLoginRouter(t, "")
	seedUser(t, fx.users, "admin", "correct-horse", roles.Admin, nil)

	w := postJSON(router, "/api/admin/login", map[string]string{
		"username": "admin",
		"password": "correct-horse",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	token := resp["token"].(string)

	logout := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/logout", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	router.ServeHTTP(logout, req)
	assert.Equal(t, http.StatusOK, logout.Code)

	session, err := fx.sessions.Get(token)
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestSessionCheck(t *testing.T) {
	router, fx := setupLoginRouter(t, "")
	seedUser(t, fx.users, "admin", "correct-horse", roles.Admin, nil)

	t.Run("anonymous", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/api/session/check", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"authenticated":false`)
	})

	t.Run("established session", func(t *testing.T) {
		token, err := fx.sessions.Create("admin", roles.Admin, nil)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/session/check", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"authenticated":true`)
		assert.Contains(t, w.Body.String(), `"role":"admin"`)
	})
}
