package repository

import (
	"errors"

	"github.com/innoforms/admission-portal/internal/model"
	"gorm.io/gorm"
)

type TestRepository interface {
	Create(test *model.Test) error
	FindByID(id uint) (*model.Test, error)
	FindAllActive() ([]model.Test, error)
	Save(test *model.Test) error
	// HasSubmissions reports whether any submission, open or completed,
	// references the test.
	HasSubmissions(testID uint) (bool, error)
	// Delete removes the test together with its question links and questions.
	Delete(testID uint) error
}

type testRepository struct {
	db *gorm.DB
}

func NewTestRepository(db *gorm.DB) TestRepository {
	return &testRepository{db: db}
}

func (r *testRepository) Create(test *model.Test) error {
	return r.db.Create(test).Error
}

func (r *testRepository) FindByID(id uint) (*model.Test, error) {
	var test model.Test
	if err := r.db.First(&test, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &test, nil
}

func (r *testRepository) FindAllActive() ([]model.Test, error) {
	var tests []model.Test
	if err := r.db.Where("archived = ?", false).Order("created_at desc").Find(&tests).Error; err != nil {
		return nil, err
	}
	return tests, nil
}

func (r *testRepository) Save(test *model.Test) error {
	return r.db.Save(test).Error
}

func (r *testRepository) HasSubmissions(testID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&model.Submission{}).Where("test_id = ?", testID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *testRepository) Delete(testID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var questionIDs []uint
		if err := tx.Model(&model.QuestionTest{}).Where("test_id = ?", testID).Pluck("question_id", &questionIDs).Error; err != nil {
			return err
		}
		if err := tx.Where("test_id = ?", testID).Delete(&model.QuestionTest{}).Error; err != nil {
			return err
		}
		if len(questionIDs) > 0 {
			if err := tx.Unscoped().Where("id IN ?", questionIDs).Delete(&model.Question{}).Error; err != nil {
				return err
			}
		}
		return tx.Unscoped().Delete(&model.Test{}, testID).Error
	})
}
