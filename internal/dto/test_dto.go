package dto

import "time"

// QuestionCreateDTO is used within TestCreateDTO and for adding questions to
// an existing test.
type QuestionCreateDTO struct {
	Prompt         string   `json:"prompt" binding:"required"`
	Type           string   `json:"type" binding:"required,oneof=single_choice multi_choice open_text"`
	CorrectAnswer  []string `json:"correct_answer"`
	ManuallyGraded bool     `json:"manually_graded"`
	Points         float64  `json:"points" binding:"gte=0"`
}

// TestCreateDTO is for staff to create a new test, optionally with questions.
type TestCreateDTO struct {
	Name      string              `json:"name" binding:"required"`
	MaxTime   *int                `json:"max_time"` // minutes; omit for unlimited
	Questions []QuestionCreateDTO `json:"questions" binding:"omitempty,dive"`
}

// TestUpdateDTO carries a partial update; nil fields are left untouched.
type TestUpdateDTO struct {
	Name    *string `json:"name"`
	MaxTime *int    `json:"max_time"`
}

type QuestionUpdateDTO struct {
	Prompt         *string   `json:"prompt"`
	Type           *string   `json:"type" binding:"omitempty,oneof=single_choice multi_choice open_text"`
	CorrectAnswer  *[]string `json:"correct_answer"`
	ManuallyGraded *bool     `json:"manually_graded"`
	Points         *float64  `json:"points" binding:"omitempty,gte=0"`
}

// QuestionResponseDTO is the staff-facing question view, correct answer included.
type QuestionResponseDTO struct {
	ID             uint     `json:"id"`
	Prompt         string   `json:"prompt"`
	Type           string   `json:"type"`
	CorrectAnswer  []string `json:"correct_answer,omitempty"`
	ManuallyGraded bool     `json:"manually_graded"`
	Points         float64  `json:"points"`
}

// QuestionPublicDTO is the candidate-facing view; it never carries the
// correct answer.
type QuestionPublicDTO struct {
	ID             uint    `json:"id"`
	Prompt         string  `json:"prompt"`
	Type           string  `json:"type"`
	ManuallyGraded bool    `json:"manually_graded"`
	Points         float64 `json:"points"`
}

type TestResponseDTO struct {
	ID        uint                  `json:"id"`
	Name      string                `json:"name"`
	MaxTime   *int                  `json:"max_time,omitempty"`
	Archived  bool                  `json:"archived"`
	Questions []QuestionResponseDTO `json:"questions,omitempty"`
	CreatedAt time.Time             `json:"created_at"`
}

type TestPublicDTO struct {
	ID        uint                `json:"id"`
	Name      string              `json:"name"`
	MaxTime   *int                `json:"max_time,omitempty"`
	Questions []QuestionPublicDTO `json:"questions,omitempty"`
}

type TestSummaryDTO struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	MaxTime *int   `json:"max_time,omitempty"`
}
