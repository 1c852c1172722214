package service

import (
	"fmt"
	"strings"

	"github.com/innoforms/admission-portal/internal/apperr"
	"github.com/innoforms/admission-portal/internal/dto"
	"github.com/innoforms/admission-portal/internal/model"
	"github.com/innoforms/admission-portal/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

// TestService is the test catalog: it owns Test and Question entities and the
// link rows binding questions to their test.
type TestService interface {
	CreateTest(req dto.TestCreateDTO) (*dto.TestResponseDTO, error)
	AddQuestion(testID uint, req dto.QuestionCreateDTO) (*dto.QuestionResponseDTO, error)
	UpdateTest(testID uint, req dto.TestUpdateDTO) error
	UpdateQuestion(questionID uint, req dto.QuestionUpdateDTO) error
	ArchiveTest(testID uint) error
	// DeleteTest removes a test outright; it refuses when any submission still
	// references it (archive instead).
	DeleteTest(testID uint) error
	ListActiveTests() ([]dto.TestSummaryDTO, error)
	// GetTest and GetQuestion return (nil, nil) when the id is unknown so
	// callers can branch without error handling.
	GetTest(id uint) (*model.Test, error)
	GetQuestion(id uint) (*model.Question, error)
	GetTestWithQuestions(testID uint, includeAnswers bool) (*dto.TestResponseDTO, *dto.TestPublicDTO, error)
	ListSubmissionsForTest(testID uint) ([]dto.SubmissionSummaryDTO, error)
}

type testService struct {
	testRepo       repository.TestRepository
	questionRepo   repository.QuestionRepository
	submissionRepo repository.SubmissionRepository
}

func NewTestService(testRepo repository.TestRepository, questionRepo repository.QuestionRepository, submissionRepo repository.SubmissionRepository) TestService {
	return &testService{testRepo: testRepo, questionRepo: questionRepo, submissionRepo: submissionRepo}
}

func (s *testService) CreateTest(req dto.TestCreateDTO) (*dto.TestResponseDTO, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: test name must not be empty", apperr.ErrInvalidInput)
	}
	if req.MaxTime != nil && *req.MaxTime <= 0 {
		return nil, fmt.Errorf("%w: max_time must be positive", apperr.ErrInvalidInput)
	}
	for _, q := range req.Questions {
		if err := validateQuestionInput(model.QuestionType(q.Type), q.CorrectAnswer, q.ManuallyGraded); err != nil {
			return nil, err
		}
	}

	test := model.Test{Name: req.Name, MaxTime: req.MaxTime}
	if err := s.testRepo.Create(&test); err != nil {
		log.Error().Err(err).Msg("CreateTest: database write failed")
		return nil, fmt.Errorf("%w: creating test: %v", apperr.ErrPersistence, err)
	}

	resp := dto.TestResponseDTO{ID: test.ID, Name: test.Name, MaxTime: test.MaxTime, CreatedAt: test.CreatedAt}
	for _, q := range req.Questions {
		qResp, err := s.AddQuestion(test.ID, q)
		if err != nil {
			return nil, err
		}
		resp.Questions = append(resp.Questions, *qResp)
	}
	return &resp, nil
}

func (s *testService) AddQuestion(testID uint, req dto.QuestionCreateDTO) (*dto.QuestionResponseDTO, error) {
	test, err := s.GetTest(testID)
	if err != nil {
		return nil, err
	}
	if test == nil {
		return nil, fmt.Errorf("%w: test %d", apperr.ErrNotFound, testID)
	}
	if err := validateQuestionInput(model.QuestionType(req.Type), req.CorrectAnswer, req.ManuallyGraded); err != nil {
		return nil, err
	}

	question := model.Question{
		Prompt:         req.Prompt,
		Type:           model.QuestionType(req.Type),
		CorrectAnswer:  req.CorrectAnswer,
		ManuallyGraded: req.ManuallyGraded,
		Points:         req.Points,
	}
	if err := s.questionRepo.Create(&question, testID); err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("AddQuestion: database write failed")
		return nil, fmt.Errorf("%w: creating question: %v", apperr.ErrPersistence, err)
	}

	var resp dto.QuestionResponseDTO
	copier.Copy(&resp, &question)
	return &resp, nil
}

func (s *testService) UpdateTest(testID uint, req dto.TestUpdateDTO) error {
	test, err := s.GetTest(testID)
	if err != nil {
		return err
	}
	if test == nil {
		return fmt.Errorf("%w: test %d", apperr.ErrNotFound, testID)
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return fmt.Errorf("%w: test name must not be empty", apperr.ErrInvalidInput)
		}
		test.Name = *req.Name
	}
	if req.MaxTime != nil {
		if *req.MaxTime <= 0 {
			return fmt.Errorf("%w: max_time must be positive", apperr.ErrInvalidInput)
		}
		test.MaxTime = req.MaxTime
	}
	if err := s.testRepo.Save(test); err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("UpdateTest: database write failed")
		return fmt.Errorf("%w: updating test: %v", apperr.ErrPersistence, err)
	}
	return nil
}

func (s *testService) UpdateQuestion(questionID uint, req dto.QuestionUpdateDTO) error {
	question, err := s.GetQuestion(questionID)
	if err != nil {
		return err
	}
	if question == nil {
		return fmt.Errorf("%w: question %d", apperr.ErrNotFound, questionID)
	}

	if req.Prompt != nil {
		question.Prompt = *req.Prompt
	}
	if req.Type != nil {
		question.Type = model.QuestionType(*req.Type)
	}
	if req.CorrectAnswer != nil {
		question.CorrectAnswer = *req.CorrectAnswer
	}
	if req.ManuallyGraded != nil {
		question.ManuallyGraded = *req.ManuallyGraded
	}
	if req.Points != nil {
		if *req.Points < 0 {
			return fmt.Errorf("%w: points must be non-negative", apperr.ErrInvalidInput)
		}
		question.Points = *req.Points
	}
	if err := validateQuestionInput(question.Type, question.CorrectAnswer, question.ManuallyGraded); err != nil {
		return err
	}

	if err := s.questionRepo.Save(question); err != nil {
		log.Error().Err(err).Uint("questionID", questionID).Msg("UpdateQuestion: database write failed")
		return fmt.Errorf("%w: updating question: %v", apperr.ErrPersistence, err)
	}
	return nil
}

func (s *testService) ArchiveTest(testID uint) error {
	test, err := s.GetTest(testID)
	if err != nil {
		return err
	}
	if test == nil {
		return fmt.Errorf("%w: test %d", apperr.ErrNotFound, testID)
	}
	test.Archived = true
	if err := s.testRepo.Save(test); err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("ArchiveTest: database write failed")
		return fmt.Errorf("%w: archiving test: %v", apperr.ErrPersistence, err)
	}
	return nil
}

func (s *testService) DeleteTest(testID uint) error {
	test, err := s.GetTest(testID)
	if err != nil {
		return err
	}
	if test == nil {
		return fmt.Errorf("%w: test %d", apperr.ErrNotFound, testID)
	}
	referenced, err := s.testRepo.HasSubmissions(testID)
	if err != nil {
		return fmt.Errorf("%w: checking submissions: %v", apperr.ErrPersistence, err)
	}
	if referenced {
		return fmt.Errorf("%w: test %d has submissions, archive it instead", apperr.ErrConflict, testID)
	}
	if err := s.testRepo.Delete(testID); err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("DeleteTest: database write failed")
		return fmt.Errorf("%w: deleting test: %v", apperr.ErrPersistence, err)
	}
	return nil
}

func (s *testService) ListActiveTests() ([]dto.TestSummaryDTO, error) {
	tests, err := s.testRepo.FindAllActive()
	if err != nil {
		log.Error().Err(err).Msg("ListActiveTests: database read failed")
		return nil, fmt.Errorf("%w: listing tests: %v", apperr.ErrPersistence, err)
	}
	summaries := make([]dto.TestSummaryDTO, 0, len(tests))
	for _, t := range tests {
		summaries = append(summaries, dto.TestSummaryDTO{ID: t.ID, Name: t.Name, MaxTime: t.MaxTime})
	}
	return summaries, nil
}

func (s *testService) GetTest(id uint) (*model.Test, error) {
	test, err := s.testRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: loading test: %v", apperr.ErrPersistence, err)
	}
	return test, nil
}

func (s *testService) GetQuestion(id uint) (*model.Question, error) {
	question, err := s.questionRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: loading question: %v", apperr.ErrPersistence, err)
	}
	return question, nil
}

// GetTestWithQuestions returns the staff view when includeAnswers is set,
// otherwise the candidate view with correct answers stripped.
func (s *testService) GetTestWithQuestions(testID uint, includeAnswers bool) (*dto.TestResponseDTO, *dto.TestPublicDTO, error) {
	test, err := s.GetTest(testID)
	if err != nil {
		return nil, nil, err
	}
	if test == nil {
		return nil, nil, fmt.Errorf("%w: test %d", apperr.ErrNotFound, testID)
	}
	questions, err := s.questionRepo.FindByTestID(testID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: loading questions: %v", apperr.ErrPersistence, err)
	}

	if includeAnswers {
		resp := dto.TestResponseDTO{ID: test.ID, Name: test.Name, MaxTime: test.MaxTime, Archived: test.Archived, CreatedAt: test.CreatedAt}
		for _, q := range questions {
			var qDTO dto.QuestionResponseDTO
			copier.Copy(&qDTO, &q)
			resp.Questions = append(resp.Questions, qDTO)
		}
		return &resp, nil, nil
	}

	pub := dto.TestPublicDTO{ID: test.ID, Name: test.Name, MaxTime: test.MaxTime}
	for _, q := range questions {
		var qDTO dto.QuestionPublicDTO
		copier.Copy(&qDTO, &q)
		pub.Questions = append(pub.Questions, qDTO)
	}
	return nil, &pub, nil
}

func (s *testService) ListSubmissionsForTest(testID uint) ([]dto.SubmissionSummaryDTO, error) {
	test, err := s.GetTest(testID)
	if err != nil {
		return nil, err
	}
	if test == nil {
		return nil, fmt.Errorf("%w: test %d", apperr.ErrNotFound, testID)
	}
	submissions, err := s.submissionRepo.FindAllByTest(testID)
	if err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("ListSubmissionsForTest: database read failed")
		return nil, fmt.Errorf("%w: listing submissions: %v", apperr.ErrPersistence, err)
	}
	summaries := make([]dto.SubmissionSummaryDTO, 0, len(submissions))
	for _, sub := range submissions {
		var summary dto.SubmissionSummaryDTO
		copier.Copy(&summary, &sub)
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// validateQuestionInput enforces that auto-gradable questions carry a correct
// answer. Manually graded questions may omit it.
func validateQuestionInput(qType model.QuestionType, correct []string, manuallyGraded bool) error {
	switch qType {
	case model.QuestionSingleChoice, model.QuestionMultiChoice, model.QuestionOpenText:
	default:
		return fmt.Errorf("%w: unknown question type %q", apperr.ErrInvalidInput, qType)
	}
	if !manuallyGraded && len(correct) == 0 {
		return fmt.Errorf("%w: correct_answer is required unless the question is manually graded", apperr.ErrInvalidInput)
	}
	return nil
}
