package repository

import (
	"errors"

	"github.com/innoforms/admission-portal/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	// Create inserts the question and the link row binding it to its test.
	Create(question *model.Question, testID uint) error
	FindByID(id uint) (*model.Question, error)
	FindByTestID(testID uint) ([]model.Question, error)
	Save(question *model.Question) error
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(question *model.Question, testID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(question).Error; err != nil {
			return err
		}
		return tx.Create(&model.QuestionTest{QuestionID: question.ID, TestID: testID}).Error
	})
}

func (r *questionRepository) FindByID(id uint) (*model.Question, error) {
	var question model.Question
	if err := r.db.First(&question, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindByTestID(testID uint) ([]model.Question, error) {
	var questions []model.Question
	err := r.db.
		Joins("JOIN question_tests ON question_tests.question_id = questions.id").
		Where("question_tests.test_id = ?", testID).
		Order("questions.id ASC").
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) Save(question *model.Question) error {
	return r.db.Save(question).Error
}
