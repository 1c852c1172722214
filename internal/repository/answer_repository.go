package repository

import (
	"github.com/innoforms/admission-portal/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AnswerRepository interface {
	// Upsert inserts the answer or overwrites the existing row for the same
	// (submission, question) pair. Last writer wins, no merge. Grade and
	// comments are only overwritten when withGrading is set; a plain
	// candidate checkpoint never clears review fields.
	Upsert(answer *model.Answer, withGrading bool) error
	FindAllBySubmission(submissionID uint) ([]model.Answer, error)
	Save(answer *model.Answer) error
}

type answerRepository struct {
	db *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

func (r *answerRepository) Upsert(answer *model.Answer, withGrading bool) error {
	columns := []string{"values", "updated_at"}
	if withGrading {
		columns = append(columns, "grade", "comments")
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "submission_id"}, {Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns(columns),
	}).Create(answer).Error
}

func (r *answerRepository) FindAllBySubmission(submissionID uint) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.db.Preload("Question").
		Where("submission_id = ?", submissionID).
		Order("question_id ASC").
		Find(&answers).Error
	if err != nil {
		return nil, err
	}
	return answers, nil
}

func (r *answerRepository) Save(answer *model.Answer) error {
	return r.db.Save(answer).Error
}
