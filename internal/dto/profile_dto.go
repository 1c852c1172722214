package dto

import "time"

type ProfileInfoDTO struct {
	Nationality       *string    `json:"nationality,omitempty"`
	Gender            *string    `json:"gender,omitempty"`
	DateOfBirth       *time.Time `json:"date_of_birth,omitempty"`
	SubscriptionEmail *string    `json:"subscription_email,omitempty"`
	Skype             *string    `json:"skype,omitempty"`
	Phone             *string    `json:"phone,omitempty"`
}

type ProfileDocumentsDTO struct {
	CV                     *string `json:"cv,omitempty"`
	LetterOfRecommendation *string `json:"letter_of_recommendation,omitempty"`
	MotivationLetter       *string `json:"motivation_letter,omitempty"`
	Passport               *string `json:"passport,omitempty"`
	Photo                  *string `json:"photo,omitempty"`
	ProjectDescription     *string `json:"project_description,omitempty"`
	Transcript             *string `json:"transcript,omitempty"`
}

type ProfileResponseDTO struct {
	UserID        uint                 `json:"user_id"`
	FirstName     string               `json:"first_name"`
	LastName      string               `json:"last_name"`
	Role          string               `json:"role"`
	Info          *ProfileInfoDTO      `json:"info,omitempty"`
	Documents     *ProfileDocumentsDTO `json:"documents,omitempty"`
	Status        *string              `json:"status,omitempty"`
	AdmissionDate *time.Time           `json:"admission_date,omitempty"`
}

// ProfileUpdateRequest carries partial profile updates; nil blocks are skipped.
type ProfileUpdateRequest struct {
	Info      *ProfileInfoDTO      `json:"info"`
	Documents *ProfileDocumentsDTO `json:"documents"`
}

// StatusUpdateRequest records the admission decision for a candidate.
type StatusUpdateRequest struct {
	Status        string     `json:"status" binding:"required,oneof=PENDING FAILED PASSED"`
	AdmissionDate *time.Time `json:"admission_date"`
}
