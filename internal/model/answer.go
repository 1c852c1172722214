package model

import "time"

// Answer stores a candidate's current values for one question of one
// submission. Values holds several entries for multi-choice questions. Grade
// and Comments stay nil until auto-grading or a manual review writes them.
type Answer struct {
	SubmissionID uint      `gorm:"primarykey" json:"submission_id"`
	QuestionID   uint      `gorm:"primarykey" json:"question_id"`
	Question     Question  `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	Values       []string  `json:"values" gorm:"serializer:json;not null"`
	Grade        *float64  `json:"grade,omitempty"`
	Comments     *string   `json:"comments,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
