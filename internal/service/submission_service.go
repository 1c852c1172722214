package service

import (
	"fmt"
	"time"

	"github.com/innoforms/admission-portal/internal/apperr"
	"github.com/innoforms/admission-portal/internal/dto"
	"github.com/innoforms/admission-portal/internal/model"
	"github.com/innoforms/admission-portal/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

// SubmissionService is the attempt state machine. An attempt moves
// NotStarted -> Open -> Completed; Completed is terminal and nothing reopens
// it. The service is the only writer of the submitted flag.
type SubmissionService interface {
	// Start opens a new attempt. Rejected with Conflict while another attempt
	// for the same (candidate, test) pair is still open.
	Start(candidateID, testID uint) (*dto.StartResponseDTO, error)
	// Checkpoint saves the current answers of an open attempt. Once the
	// test's deadline has passed the attempt is force-completed and the
	// checkpoint is rejected with Expired.
	Checkpoint(submissionID uint, actor *model.User, req dto.CheckpointRequest) error
	// Complete closes the attempt; exactly one of two concurrent calls wins.
	Complete(submissionID uint, actor *model.User) error
	GetSubmission(submissionID uint, actor *model.User) (*dto.SubmissionDetailDTO, error)
}

type submissionService struct {
	testRepo       repository.TestRepository
	questionRepo   repository.QuestionRepository
	submissionRepo repository.SubmissionRepository
	answerRepo     repository.AnswerRepository
	now            func() time.Time
}

func NewSubmissionService(
	testRepo repository.TestRepository,
	questionRepo repository.QuestionRepository,
	submissionRepo repository.SubmissionRepository,
	answerRepo repository.AnswerRepository,
) SubmissionService {
	return &submissionService{
		testRepo:       testRepo,
		questionRepo:   questionRepo,
		submissionRepo: submissionRepo,
		answerRepo:     answerRepo,
		now:            time.Now,
	}
}

func (s *submissionService) Start(candidateID, testID uint) (*dto.StartResponseDTO, error) {
	test, err := s.testRepo.FindByID(testID)
	if err != nil {
		return nil, fmt.Errorf("%w: loading test: %v", apperr.ErrPersistence, err)
	}
	if test == nil || test.Archived {
		return nil, fmt.Errorf("%w: test %d", apperr.ErrNotFound, testID)
	}

	open, err := s.submissionRepo.FindOpen(candidateID, testID)
	if err != nil {
		return nil, fmt.Errorf("%w: checking open attempts: %v", apperr.ErrPersistence, err)
	}
	if open != nil {
		return nil, fmt.Errorf("%w: attempt already in progress", apperr.ErrConflict)
	}

	submission := model.Submission{
		CandidateID: candidateID,
		TestID:      testID,
		TimeStart:   s.now(),
	}
	if err := s.submissionRepo.Create(&submission); err != nil {
		log.Error().Err(err).Uint("candidateID", candidateID).Uint("testID", testID).Msg("Start: database write failed")
		return nil, fmt.Errorf("%w: creating submission: %v", apperr.ErrPersistence, err)
	}

	log.Info().Uint("submissionID", submission.ID).Uint("candidateID", candidateID).Uint("testID", testID).Msg("Attempt started")
	return &dto.StartResponseDTO{SubmissionID: submission.ID}, nil
}

func (s *submissionService) Checkpoint(submissionID uint, actor *model.User, req dto.CheckpointRequest) error {
	submission, err := s.submissionRepo.FindByID(submissionID)
	if err != nil {
		return fmt.Errorf("%w: loading submission: %v", apperr.ErrPersistence, err)
	}
	if submission == nil {
		return fmt.Errorf("%w: submission %d", apperr.ErrNotFound, submissionID)
	}
	if err := s.checkOwnership(submission, actor); err != nil {
		return err
	}
	if submission.Submitted {
		return fmt.Errorf("%w: submission already completed", apperr.ErrConflict)
	}

	test, err := s.testRepo.FindByID(submission.TestID)
	if err != nil {
		return fmt.Errorf("%w: loading test: %v", apperr.ErrPersistence, err)
	}
	if test == nil {
		return fmt.Errorf("%w: test %d", apperr.ErrNotFound, submission.TestID)
	}

	// Server-enforced deadline: a checkpoint arriving even one tick late is
	// rejected and the attempt is frozen at time_start + max_time.
	if deadline, limited := test.Deadline(submission.TimeStart); limited && s.now().After(deadline) {
		won, err := s.submissionRepo.MarkCompleted(submissionID, deadline)
		if err != nil {
			return fmt.Errorf("%w: completing expired submission: %v", apperr.ErrPersistence, err)
		}
		if won {
			if err := s.autoGrade(submissionID); err != nil {
				log.Error().Err(err).Uint("submissionID", submissionID).Msg("Checkpoint: auto-grading expired submission failed")
			}
			log.Info().Uint("submissionID", submissionID).Time("deadline", deadline).Msg("Attempt expired, completed at deadline")
		}
		return fmt.Errorf("%w: time limit exceeded", apperr.ErrExpired)
	}

	questions, err := s.questionRepo.FindByTestID(submission.TestID)
	if err != nil {
		return fmt.Errorf("%w: loading questions: %v", apperr.ErrPersistence, err)
	}
	questionSet := make(map[uint]struct{}, len(questions))
	for _, q := range questions {
		questionSet[q.ID] = struct{}{}
	}

	grader := actor.HasAnyRole(model.RoleStaff, model.RoleManager)
	for _, input := range req.Answers {
		if _, ok := questionSet[input.QuestionID]; !ok {
			return fmt.Errorf("%w: question %d does not belong to test %d", apperr.ErrInvalidInput, input.QuestionID, submission.TestID)
		}
		answer := model.Answer{
			SubmissionID: submissionID,
			QuestionID:   input.QuestionID,
			Values:       input.Values,
		}
		if grader {
			answer.Grade = input.Grade
			answer.Comments = input.Comments
		}
		if err := s.answerRepo.Upsert(&answer, grader); err != nil {
			log.Error().Err(err).Uint("submissionID", submissionID).Uint("questionID", input.QuestionID).Msg("Checkpoint: answer write failed")
			return fmt.Errorf("%w: saving answer: %v", apperr.ErrPersistence, err)
		}
	}
	return nil
}

func (s *submissionService) Complete(submissionID uint, actor *model.User) error {
	submission, err := s.submissionRepo.FindByID(submissionID)
	if err != nil {
		return fmt.Errorf("%w: loading submission: %v", apperr.ErrPersistence, err)
	}
	if submission == nil {
		return fmt.Errorf("%w: submission %d", apperr.ErrNotFound, submissionID)
	}
	if err := s.checkOwnership(submission, actor); err != nil {
		return err
	}

	won, err := s.submissionRepo.MarkCompleted(submissionID, s.now())
	if err != nil {
		log.Error().Err(err).Uint("submissionID", submissionID).Msg("Complete: database write failed")
		return fmt.Errorf("%w: completing submission: %v", apperr.ErrPersistence, err)
	}
	if !won {
		return fmt.Errorf("%w: submission already completed", apperr.ErrConflict)
	}

	if err := s.autoGrade(submissionID); err != nil {
		log.Error().Err(err).Uint("submissionID", submissionID).Msg("Complete: auto-grading failed")
		return fmt.Errorf("%w: auto-grading: %v", apperr.ErrPersistence, err)
	}

	log.Info().Uint("submissionID", submissionID).Msg("Attempt completed")
	return nil
}

func (s *submissionService) GetSubmission(submissionID uint, actor *model.User) (*dto.SubmissionDetailDTO, error) {
	submission, err := s.submissionRepo.FindByIDWithAnswers(submissionID)
	if err != nil {
		return nil, fmt.Errorf("%w: loading submission: %v", apperr.ErrPersistence, err)
	}
	if submission == nil {
		return nil, fmt.Errorf("%w: submission %d", apperr.ErrNotFound, submissionID)
	}
	if err := s.checkOwnership(submission, actor); err != nil {
		return nil, err
	}

	var resp dto.SubmissionDetailDTO
	copier.Copy(&resp, submission)
	resp.TestName = submission.Test.Name
	resp.Answers = make([]dto.AnswerResponseDTO, 0, len(submission.Answers))
	for _, answer := range submission.Answers {
		var aDTO dto.AnswerResponseDTO
		copier.Copy(&aDTO, &answer)
		copier.Copy(&aDTO.Question, &answer.Question)
		resp.Answers = append(resp.Answers, aDTO)
	}
	return &resp, nil
}

// checkOwnership rejects candidates touching attempts they do not own. Staff
// and managers may act on any attempt (review carve-out). The role failure is
// reported before any resource state is considered.
func (s *submissionService) checkOwnership(submission *model.Submission, actor *model.User) error {
	if actor == nil {
		return apperr.ErrUnauthenticated
	}
	if actor.Role == model.RoleCandidate && actor.ID != submission.CandidateID {
		return fmt.Errorf("%w: not your submission", apperr.ErrInsufficientRights)
	}
	return nil
}

// autoGrade scores the auto-gradable answers of a just-completed submission:
// exact case-sensitive match for single-choice and open text, set equality
// for multi-choice. Manually graded questions keep a nil grade until review.
func (s *submissionService) autoGrade(submissionID uint) error {
	answers, err := s.answerRepo.FindAllBySubmission(submissionID)
	if err != nil {
		return err
	}
	for i := range answers {
		answer := &answers[i]
		if answer.Question.ManuallyGraded || answer.Grade != nil {
			continue
		}
		grade := 0.0
		if answerMatches(answer.Question, answer.Values) {
			grade = answer.Question.Points
		}
		answer.Grade = &grade
		if err := s.answerRepo.Save(answer); err != nil {
			return err
		}
	}
	return nil
}

func answerMatches(question model.Question, values []string) bool {
	if question.Type == model.QuestionMultiChoice {
		return setsEqual(values, question.CorrectAnswer)
	}
	return len(values) == 1 && len(question.CorrectAnswer) == 1 && values[0] == question.CorrectAnswer[0]
}

func setsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[string]int, len(a))
	for _, v := range a {
		set[v]++
	}
	for _, v := range b {
		if set[v] == 0 {
			return false
		}
		set[v]--
	}
	return true
}
