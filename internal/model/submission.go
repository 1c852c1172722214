package model

import (
	"time"

	"gorm.io/gorm"
)

// Submission is one candidate's attempt at one test. While Submitted is false
// the attempt is open; Complete (or deadline expiry) sets Submitted and
// TimeEnd, after which the row is frozen except for manual grading fields on
// its answers. At most one open submission may exist per (candidate, test).
type Submission struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	CandidateID uint           `json:"candidate_id" gorm:"index;not null"`
	TestID      uint           `json:"test_id" gorm:"index;not null"`
	Test        Test           `json:"test,omitempty" gorm:"foreignKey:TestID"`
	TimeStart   time.Time      `json:"time_start" gorm:"not null"`
	TimeEnd     *time.Time     `json:"time_end,omitempty"`
	Submitted   bool           `json:"submitted" gorm:"not null;default:false"`
	GradedBy    *uint          `json:"graded_by,omitempty"`
	Answers     []Answer       `json:"answers,omitempty" gorm:"foreignKey:SubmissionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
