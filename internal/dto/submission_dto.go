package dto

import "time"

// AnswerInputDTO is one question's worth of a checkpoint. Grade and Comments
// are only honored when the caller holds a staff or manager role.
type AnswerInputDTO struct {
	QuestionID uint     `json:"question_id" binding:"required"`
	Values     []string `json:"values" binding:"required"`
	Grade      *float64 `json:"grade"`
	Comments   *string  `json:"comments"`
}

type CheckpointRequest struct {
	Answers []AnswerInputDTO `json:"answers" binding:"required,min=1,dive"`
}

type StartResponseDTO struct {
	SubmissionID uint `json:"submission_id"`
}

type AnswerResponseDTO struct {
	QuestionID uint              `json:"question_id"`
	Question   QuestionPublicDTO `json:"question,omitempty"`
	Values     []string          `json:"values"`
	Grade      *float64          `json:"grade,omitempty"`
	Comments   *string           `json:"comments,omitempty"`
}

type SubmissionDetailDTO struct {
	ID          uint                `json:"id"`
	CandidateID uint                `json:"candidate_id"`
	TestID      uint                `json:"test_id"`
	TestName    string              `json:"test_name,omitempty"`
	TimeStart   time.Time           `json:"time_start"`
	TimeEnd     *time.Time          `json:"time_end,omitempty"`
	Submitted   bool                `json:"submitted"`
	GradedBy    *uint               `json:"graded_by,omitempty"`
	Answers     []AnswerResponseDTO `json:"answers,omitempty"`
}

type SubmissionSummaryDTO struct {
	ID          uint       `json:"id"`
	CandidateID uint       `json:"candidate_id"`
	TestID      uint       `json:"test_id"`
	TimeStart   time.Time  `json:"time_start"`
	TimeEnd     *time.Time `json:"time_end,omitempty"`
	Submitted   bool       `json:"submitted"`
}

type QuestionScoreDTO struct {
	QuestionID     uint     `json:"question_id"`
	Points         float64  `json:"points"`
	Grade          *float64 `json:"grade,omitempty"`
	ManuallyGraded bool     `json:"manually_graded"`
}

type ScoreReportDTO struct {
	SubmissionID        uint               `json:"submission_id"`
	Total               float64            `json:"total"`
	PendingManualGrades int                `json:"pending_manual_grades"`
	PerQuestion         []QuestionScoreDTO `json:"per_question"`
}

type ManualGradeRequest struct {
	QuestionID uint    `json:"question_id" binding:"required"`
	Grade      float64 `json:"grade" binding:"gte=0"`
	Comments   *string `json:"comments"`
}
