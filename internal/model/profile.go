package model

import "time"

type CandidateStatusValue string

const (
	StatusPending CandidateStatusValue = "PENDING"
	StatusFailed  CandidateStatusValue = "FAILED"
	StatusPassed  CandidateStatusValue = "PASSED"
)

// CandidateInfo is the one-to-one personal data block of a candidate's profile.
type CandidateInfo struct {
	UserID            uint       `gorm:"primarykey" json:"user_id"`
	Nationality       *string    `json:"nationality,omitempty"`
	Gender            *string    `json:"gender,omitempty"`
	DateOfBirth       *time.Time `json:"date_of_birth,omitempty"`
	SubscriptionEmail *string    `json:"subscription_email,omitempty"`
	Skype             *string    `json:"skype,omitempty"`
	Phone             *string    `json:"phone,omitempty"`
}

// CandidateDocuments keeps links to the uploaded application documents.
type CandidateDocuments struct {
	UserID                 uint    `gorm:"primarykey" json:"user_id"`
	CV                     *string `json:"cv,omitempty"`
	LetterOfRecommendation *string `json:"letter_of_recommendation,omitempty"`
	MotivationLetter       *string `json:"motivation_letter,omitempty"`
	Passport               *string `json:"passport,omitempty"`
	Photo                  *string `json:"photo,omitempty"`
	ProjectDescription     *string `json:"project_description,omitempty"`
	Transcript             *string `json:"transcript,omitempty"`
}

type CandidateStatus struct {
	UserID        uint                 `gorm:"primarykey" json:"user_id"`
	Status        CandidateStatusValue `json:"status" gorm:"not null;default:'PENDING'"`
	AdmissionDate *time.Time           `json:"admission_date,omitempty"`
}
