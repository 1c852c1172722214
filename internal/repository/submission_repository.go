package repository

import (
	"errors"
	"time"

	"github.com/innoforms/admission-portal/internal/model"
	"gorm.io/gorm"
)

type SubmissionRepository interface {
	Create(submission *model.Submission) error
	FindByID(id uint) (*model.Submission, error)
	FindByIDWithAnswers(id uint) (*model.Submission, error)
	FindOpen(candidateID, testID uint) (*model.Submission, error)
	FindAllByTest(testID uint) ([]model.Submission, error)
	// MarkCompleted flips the submitted flag with a guarded update so that of
	// two concurrent callers exactly one observes true.
	MarkCompleted(id uint, end time.Time) (bool, error)
	Save(submission *model.Submission) error
}

type submissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) Create(submission *model.Submission) error {
	return r.db.Create(submission).Error
}

func (r *submissionRepository) FindByID(id uint) (*model.Submission, error) {
	var submission model.Submission
	if err := r.db.First(&submission, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &submission, nil
}

func (r *submissionRepository) FindByIDWithAnswers(id uint) (*model.Submission, error) {
	var submission model.Submission
	err := r.db.
		Preload("Test").
		Preload("Answers.Question").
		First(&submission, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &submission, nil
}

func (r *submissionRepository) FindOpen(candidateID, testID uint) (*model.Submission, error) {
	var submission model.Submission
	err := r.db.
		Where("candidate_id = ? AND test_id = ? AND submitted = ?", candidateID, testID, false).
		First(&submission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &submission, nil
}

func (r *submissionRepository) FindAllByTest(testID uint) ([]model.Submission, error) {
	var submissions []model.Submission
	if err := r.db.Where("test_id = ?", testID).Order("time_start desc").Find(&submissions).Error; err != nil {
		return nil, err
	}
	return submissions, nil
}

func (r *submissionRepository) MarkCompleted(id uint, end time.Time) (bool, error) {
	res := r.db.Model(&model.Submission{}).
		Where("id = ? AND submitted = ?", id, false).
		Updates(map[string]interface{}{"submitted": true, "time_end": end})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *submissionRepository) Save(submission *model.Submission) error {
	return r.db.Save(submission).Error
}
