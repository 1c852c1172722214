package service

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/innoforms/admission-portal/config"
	"github.com/innoforms/admission-portal/internal/model"
	"github.com/innoforms/admission-portal/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// fixture wires the full service stack over an in-memory sqlite database.
type fixture struct {
	db *gorm.DB

	userRepo       repository.UserRepository
	tokenRepo      repository.TokenRepository
	testRepo       repository.TestRepository
	questionRepo   repository.QuestionRepository
	submissionRepo repository.SubmissionRepository
	answerRepo     repository.AnswerRepository

	tokens      TokenService
	auth        AuthService
	accounts    AccountService
	tests       TestService
	submissions SubmissionService
	grading     GradingService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// A pooled second connection would see a different :memory: database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Authorization{},
		&model.TokenRecord{},
		&model.CandidateInfo{},
		&model.CandidateDocuments{},
		&model.CandidateStatus{},
		&model.Test{},
		&model.Question{},
		&model.QuestionTest{},
		&model.Submission{},
		&model.Answer{},
	))

	f := &fixture{
		db:             db,
		userRepo:       repository.NewUserRepository(db),
		tokenRepo:      repository.NewTokenRepository(db),
		testRepo:       repository.NewTestRepository(db),
		questionRepo:   repository.NewQuestionRepository(db),
		submissionRepo: repository.NewSubmissionRepository(db),
		answerRepo:     repository.NewAnswerRepository(db),
	}

	cfg := &config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.AccessTTL = 15 * time.Minute
	cfg.Auth.RefreshTTL = 24 * time.Hour

	f.tokens = NewTokenService(f.tokenRepo, cfg)
	f.auth = NewAuthService(f.userRepo, f.tokens)
	f.accounts = NewAccountService(f.userRepo, f.tokenRepo, db)
	f.tests = NewTestService(f.testRepo, f.questionRepo, f.submissionRepo)
	f.submissions = NewSubmissionService(f.testRepo, f.questionRepo, f.submissionRepo, f.answerRepo)
	f.grading = NewGradingService(f.submissionRepo, f.answerRepo)

	return f
}

// setClock pins the submission service clock.
func (f *fixture) setClock(t *testing.T, at time.Time) {
	t.Helper()
	f.submissions.(*submissionService).now = func() time.Time { return at }
}

func (f *fixture) seedUser(t *testing.T, role model.Role) *model.User {
	t.Helper()
	user := model.User{FirstName: "Jordan", LastName: "Reyes", Role: role}
	require.NoError(t, f.db.Create(&user).Error)
	return &user
}

// seedTest creates a test with one question per given definition and returns
// the test and its question IDs in order.
func (f *fixture) seedTest(t *testing.T, maxTime *int, questions ...model.Question) (*model.Test, []uint) {
	t.Helper()
	test := model.Test{Name: "Entrance exam", MaxTime: maxTime}
	require.NoError(t, f.testRepo.Create(&test))

	ids := make([]uint, 0, len(questions))
	for i := range questions {
		require.NoError(t, f.questionRepo.Create(&questions[i], test.ID))
		ids = append(ids, questions[i].ID)
	}
	return &test, ids
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func floatPtr(v float64) *float64 { return &v }
