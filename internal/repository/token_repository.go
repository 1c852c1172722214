package repository

import (
	"errors"

	"github.com/innoforms/admission-portal/internal/model"
	"gorm.io/gorm"
)

type TokenRepository interface {
	Create(record *model.TokenRecord) error
	FindByJTI(jti string) (*model.TokenRecord, error)
	// Revoke marks the matching record revoked and reports how many rows the
	// update touched. Revoking an already revoked token still counts as a hit.
	Revoke(jti string) (int64, error)
	DeleteByUserID(tx *gorm.DB, userID uint) error
}

type tokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) Create(record *model.TokenRecord) error {
	return r.db.Create(record).Error
}

func (r *tokenRepository) FindByJTI(jti string) (*model.TokenRecord, error) {
	var record model.TokenRecord
	if err := r.db.Where("jti = ?", jti).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *tokenRepository) Revoke(jti string) (int64, error) {
	res := r.db.Model(&model.TokenRecord{}).Where("jti = ?", jti).Update("revoked", true)
	return res.RowsAffected, res.Error
}

func (r *tokenRepository) DeleteByUserID(tx *gorm.DB, userID uint) error {
	return tx.Where("user_id = ?", userID).Delete(&model.TokenRecord{}).Error
}
