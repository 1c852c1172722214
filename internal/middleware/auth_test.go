package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/innoforms/admission-portal/config"
	"github.com/innoforms/admission-portal/internal/model"
	"github.com/innoforms/admission-portal/internal/repository"
	"github.com/innoforms/admission-portal/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupRouter(t *testing.T) (*gin.Engine, service.TokenService, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.TokenRecord{}))

	cfg := &config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.AccessTTL = 15 * time.Minute
	cfg.Auth.RefreshTTL = 24 * time.Hour

	tokens := service.NewTokenService(repository.NewTokenRepository(db), cfg)
	am := NewAuthMiddleware(tokens, repository.NewUserRepository(db))

	r := gin.New()
	r.GET("/any", am.RequireAuth(), func(c *gin.Context) {
		c.String(http.StatusOK, string(Identity(c).Role))
	})
	r.GET("/staff", am.RequireAuth(), am.RequireRoles(model.RoleStaff, model.RoleManager), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/refresh", am.RequireRefresh(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r, tokens, db
}

func do(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	r, tokens, db := setupRouter(t)
	user := model.User{Role: model.RoleCandidate}
	require.NoError(t, db.Create(&user).Error)

	signed, record, err := tokens.Issue(user.ID, model.TokenAccess)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, do(r, "/any", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "/any", "garbage").Code)

	resp := do(r, "/any", signed)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "CANDIDATE", resp.Body.String())

	// A revoked token is rejected on the very next request.
	_, err = tokens.Revoke(record.JTI)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, do(r, "/any", signed).Code)
}

func TestTokenKindEnforced(t *testing.T) {
	r, tokens, db := setupRouter(t)
	user := model.User{Role: model.RoleCandidate}
	require.NoError(t, db.Create(&user).Error)

	access, _, err := tokens.Issue(user.ID, model.TokenAccess)
	require.NoError(t, err)
	refresh, _, err := tokens.Issue(user.ID, model.TokenRefresh)
	require.NoError(t, err)

	// A refresh token never authenticates a guarded endpoint, and an access
	// token cannot drive the refresh flow.
	assert.Equal(t, http.StatusUnauthorized, do(r, "/any", refresh).Code)
	assert.Equal(t, http.StatusOK, do(r, "/any", access).Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "/refresh", access).Code)
	assert.Equal(t, http.StatusOK, do(r, "/refresh", refresh).Code)
}

func TestRequireAuthUnknownUser(t *testing.T) {
	r, tokens, _ := setupRouter(t)

	// Valid token for a user that no longer exists.
	signed, _, err := tokens.Issue(999, model.TokenAccess)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, do(r, "/any", signed).Code)
}

func TestRequireRoles(t *testing.T) {
	r, tokens, db := setupRouter(t)

	candidate := model.User{Role: model.RoleCandidate}
	staff := model.User{Role: model.RoleStaff}
	require.NoError(t, db.Create(&candidate).Error)
	require.NoError(t, db.Create(&staff).Error)

	candidateToken, _, err := tokens.Issue(candidate.ID, model.TokenAccess)
	require.NoError(t, err)
	staffToken, _, err := tokens.Issue(staff.ID, model.TokenAccess)
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, do(r, "/staff", candidateToken).Code)
	assert.Equal(t, http.StatusOK, do(r, "/staff", staffToken).Code)
}
