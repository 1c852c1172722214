package user

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/innoforms/admission-portal/config"
	"github.com/innoforms/admission-portal/internal/middleware"
	"github.com/innoforms/admission-portal/internal/model"
	"github.com/innoforms/admission-portal/internal/repository"
	"github.com/innoforms/admission-portal/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupStartRoute wires the production start route: auth middleware, the
// candidate role gate, and the real controller over an in-memory database.
func setupStartRoute(t *testing.T) (*gin.Engine, service.TokenService, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.TokenRecord{},
		&model.Test{},
		&model.Question{},
		&model.QuestionTest{},
		&model.Submission{},
		&model.Answer{},
	))

	cfg := &config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.AccessTTL = 15 * time.Minute
	cfg.Auth.RefreshTTL = 24 * time.Hour

	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	testRepo := repository.NewTestRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	answerRepo := repository.NewAnswerRepository(db)

	tokens := service.NewTokenService(tokenRepo, cfg)
	submissions := service.NewSubmissionService(testRepo, questionRepo, submissionRepo, answerRepo)
	tests := service.NewTestService(testRepo, questionRepo, submissionRepo)
	accounts := service.NewAccountService(userRepo, tokenRepo, db)

	ctrl := NewUserController(accounts, tests, submissions)
	am := middleware.NewAuthMiddleware(tokens, userRepo)

	r := gin.New()
	r.POST("/api/v1/tests/:test_id/start",
		am.RequireAuth(), am.RequireRoles(model.RoleCandidate), ctrl.StartTest)
	return r, tokens, db
}

func postStart(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestStartRouteRejectsNonCandidates(t *testing.T) {
	r, tokens, db := setupStartRoute(t)

	test := model.Test{Name: "Entrance exam"}
	require.NoError(t, db.Create(&test).Error)

	staff := model.User{Role: model.RoleStaff}
	manager := model.User{Role: model.RoleManager}
	candidate := model.User{Role: model.RoleCandidate}
	require.NoError(t, db.Create(&staff).Error)
	require.NoError(t, db.Create(&manager).Error)
	require.NoError(t, db.Create(&candidate).Error)

	staffToken, _, err := tokens.Issue(staff.ID, model.TokenAccess)
	require.NoError(t, err)
	managerToken, _, err := tokens.Issue(manager.ID, model.TokenAccess)
	require.NoError(t, err)
	candidateToken, _, err := tokens.Issue(candidate.ID, model.TokenAccess)
	require.NoError(t, err)

	path := "/api/v1/tests/1/start"
	assert.Equal(t, http.StatusForbidden, postStart(r, path, staffToken).Code)
	assert.Equal(t, http.StatusForbidden, postStart(r, path, managerToken).Code)

	// The rejected attempts must not have opened anything.
	var count int64
	require.NoError(t, db.Model(&model.Submission{}).Count(&count).Error)
	assert.Zero(t, count)

	assert.Equal(t, http.StatusCreated, postStart(r, path, candidateToken).Code)
	require.NoError(t, db.Model(&model.Submission{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
