package model

import (
	"time"

	"gorm.io/gorm"
)

type QuestionType string

const (
	QuestionSingleChoice QuestionType = "single_choice"
	QuestionMultiChoice  QuestionType = "multi_choice"
	QuestionOpenText     QuestionType = "open_text"
)

type Question struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	Prompt         string         `json:"prompt" gorm:"type:text;not null"`
	Type           QuestionType   `json:"type" gorm:"not null"`
	CorrectAnswer  []string       `json:"correct_answer,omitempty" gorm:"serializer:json"`
	ManuallyGraded bool           `json:"manually_graded" gorm:"not null;default:false"`
	Points         float64        `json:"points" gorm:"not null"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// QuestionTest links a question to the single test that owns it.
type QuestionTest struct {
	QuestionID uint `gorm:"primarykey" json:"question_id"`
	TestID     uint `json:"test_id" gorm:"index;not null"`
}
