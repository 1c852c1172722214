package repository

import (
	"errors"

	"github.com/innoforms/admission-portal/internal/model"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(tx *gorm.DB, user *model.User) error
	FindByID(id uint) (*model.User, error)
	CreateAuthorization(tx *gorm.DB, auth *model.Authorization) error
	FindAuthorizationByEmail(email string) (*model.Authorization, error)

	SaveInfo(info *model.CandidateInfo) error
	FindInfo(userID uint) (*model.CandidateInfo, error)
	SaveDocuments(docs *model.CandidateDocuments) error
	FindDocuments(userID uint) (*model.CandidateDocuments, error)
	SaveStatus(status *model.CandidateStatus) error
	FindStatus(userID uint) (*model.CandidateStatus, error)

	// DeleteCascade removes the user and everything it owns inside tx:
	// answers, submissions, authorization, profile blocks. Token records are
	// the token repository's to delete.
	DeleteCascade(tx *gorm.DB, userID uint) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(tx *gorm.DB, user *model.User) error {
	return tx.Create(user).Error
}

func (r *userRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) CreateAuthorization(tx *gorm.DB, auth *model.Authorization) error {
	return tx.Create(auth).Error
}

func (r *userRepository) FindAuthorizationByEmail(email string) (*model.Authorization, error) {
	var auth model.Authorization
	if err := r.db.Where("email = ?", email).First(&auth).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &auth, nil
}

func (r *userRepository) SaveInfo(info *model.CandidateInfo) error {
	return r.db.Save(info).Error
}

func (r *userRepository) FindInfo(userID uint) (*model.CandidateInfo, error) {
	var info model.CandidateInfo
	if err := r.db.First(&info, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &info, nil
}

func (r *userRepository) SaveDocuments(docs *model.CandidateDocuments) error {
	return r.db.Save(docs).Error
}

func (r *userRepository) FindDocuments(userID uint) (*model.CandidateDocuments, error) {
	var docs model.CandidateDocuments
	if err := r.db.First(&docs, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &docs, nil
}

func (r *userRepository) SaveStatus(status *model.CandidateStatus) error {
	return r.db.Save(status).Error
}

func (r *userRepository) FindStatus(userID uint) (*model.CandidateStatus, error) {
	var status model.CandidateStatus
	if err := r.db.First(&status, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &status, nil
}

func (r *userRepository) DeleteCascade(tx *gorm.DB, userID uint) error {
	var submissionIDs []uint
	if err := tx.Model(&model.Submission{}).Where("candidate_id = ?", userID).Pluck("id", &submissionIDs).Error; err != nil {
		return err
	}
	if len(submissionIDs) > 0 {
		if err := tx.Where("submission_id IN ?", submissionIDs).Delete(&model.Answer{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("id IN ?", submissionIDs).Delete(&model.Submission{}).Error; err != nil {
			return err
		}
	}
	if err := tx.Where("user_id = ?", userID).Delete(&model.Authorization{}).Error; err != nil {
		return err
	}
	if err := tx.Where("user_id = ?", userID).Delete(&model.CandidateInfo{}).Error; err != nil {
		return err
	}
	if err := tx.Where("user_id = ?", userID).Delete(&model.CandidateDocuments{}).Error; err != nil {
		return err
	}
	if err := tx.Where("user_id = ?", userID).Delete(&model.CandidateStatus{}).Error; err != nil {
		return err
	}
	return tx.Unscoped().Delete(&model.User{}, userID).Error
}
