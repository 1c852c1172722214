package service

import (
	"fmt"

	"github.com/innoforms/admission-portal/internal/apperr"
	"github.com/innoforms/admission-portal/internal/dto"
	"github.com/innoforms/admission-portal/internal/repository"
	"github.com/rs/zerolog/log"
)

// GradingService derives scores from completed submissions and records the
// manual review pass for open-text questions.
type GradingService interface {
	// ScoreSubmission sums grades across the submission's answers. Ungraded
	// answers are excluded from the total and counted as pending.
	ScoreSubmission(submissionID uint) (*dto.ScoreReportDTO, error)
	// RecordManualGrade writes a reviewer's grade for a manually graded
	// question of a completed submission.
	RecordManualGrade(submissionID uint, req dto.ManualGradeRequest, graderID uint) error
}

type gradingService struct {
	submissionRepo repository.SubmissionRepository
	answerRepo     repository.AnswerRepository
}

func NewGradingService(submissionRepo repository.SubmissionRepository, answerRepo repository.AnswerRepository) GradingService {
	return &gradingService{submissionRepo: submissionRepo, answerRepo: answerRepo}
}

func (s *gradingService) ScoreSubmission(submissionID uint) (*dto.ScoreReportDTO, error) {
	submission, err := s.submissionRepo.FindByID(submissionID)
	if err != nil {
		return nil, fmt.Errorf("%w: loading submission: %v", apperr.ErrPersistence, err)
	}
	// Scoring an open attempt is disallowed; answers are only frozen once the
	// submission completes.
	if submission == nil || !submission.Submitted {
		return nil, fmt.Errorf("%w: completed submission %d", apperr.ErrNotFound, submissionID)
	}

	answers, err := s.answerRepo.FindAllBySubmission(submissionID)
	if err != nil {
		return nil, fmt.Errorf("%w: loading answers: %v", apperr.ErrPersistence, err)
	}

	report := dto.ScoreReportDTO{SubmissionID: submissionID}
	for _, answer := range answers {
		report.PerQuestion = append(report.PerQuestion, dto.QuestionScoreDTO{
			QuestionID:     answer.QuestionID,
			Points:         answer.Question.Points,
			Grade:          answer.Grade,
			ManuallyGraded: answer.Question.ManuallyGraded,
		})
		if answer.Grade == nil {
			report.PendingManualGrades++
			continue
		}
		report.Total += *answer.Grade
	}
	return &report, nil
}

func (s *gradingService) RecordManualGrade(submissionID uint, req dto.ManualGradeRequest, graderID uint) error {
	submission, err := s.submissionRepo.FindByID(submissionID)
	if err != nil {
		return fmt.Errorf("%w: loading submission: %v", apperr.ErrPersistence, err)
	}
	if submission == nil {
		return fmt.Errorf("%w: submission %d", apperr.ErrNotFound, submissionID)
	}
	if !submission.Submitted {
		return fmt.Errorf("%w: submission %d is still open", apperr.ErrInvalidOperation, submissionID)
	}

	answers, err := s.answerRepo.FindAllBySubmission(submissionID)
	if err != nil {
		return fmt.Errorf("%w: loading answers: %v", apperr.ErrPersistence, err)
	}
	for i := range answers {
		answer := &answers[i]
		if answer.QuestionID != req.QuestionID {
			continue
		}
		if !answer.Question.ManuallyGraded {
			return fmt.Errorf("%w: question %d is auto-graded", apperr.ErrInvalidOperation, req.QuestionID)
		}
		grade := req.Grade
		answer.Grade = &grade
		answer.Comments = req.Comments
		if err := s.answerRepo.Save(answer); err != nil {
			log.Error().Err(err).Uint("submissionID", submissionID).Uint("questionID", req.QuestionID).Msg("RecordManualGrade: answer write failed")
			return fmt.Errorf("%w: saving grade: %v", apperr.ErrPersistence, err)
		}
		submission.GradedBy = &graderID
		if err := s.submissionRepo.Save(submission); err != nil {
			log.Error().Err(err).Uint("submissionID", submissionID).Msg("RecordManualGrade: submission write failed")
			return fmt.Errorf("%w: recording grader: %v", apperr.ErrPersistence, err)
		}
		log.Info().Uint("submissionID", submissionID).Uint("questionID", req.QuestionID).Uint("graderID", graderID).Msg("Manual grade recorded")
		return nil
	}
	return fmt.Errorf("%w: no answer for question %d in submission %d", apperr.ErrNotFound, req.QuestionID, submissionID)
}
