package service

import (
	"fmt"

	"github.com/innoforms/admission-portal/internal/apperr"
	"github.com/innoforms/admission-portal/internal/dto"
	"github.com/innoforms/admission-portal/internal/model"
	"github.com/innoforms/admission-portal/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AccountService interface {
	// Register creates a candidate account: user row plus its authorization.
	Register(req dto.RegisterRequest) (uint, error)
	GetProfile(userID uint) (*dto.ProfileResponseDTO, error)
	UpdateProfile(userID uint, req dto.ProfileUpdateRequest) error
	// UpdateStatus records the admission decision for a candidate.
	UpdateStatus(userID uint, req dto.StatusUpdateRequest) error
	// DeleteUser removes the user and cascades to everything it owns.
	DeleteUser(userID uint) error
}

type accountService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
	db        *gorm.DB
}

func NewAccountService(userRepo repository.UserRepository, tokenRepo repository.TokenRepository, db *gorm.DB) AccountService {
	return &accountService{userRepo: userRepo, tokenRepo: tokenRepo, db: db}
}

func (s *accountService) Register(req dto.RegisterRequest) (uint, error) {
	existing, err := s.userRepo.FindAuthorizationByEmail(req.Email)
	if err != nil {
		return 0, fmt.Errorf("%w: checking email: %v", apperr.ErrPersistence, err)
	}
	if existing != nil {
		return 0, fmt.Errorf("%w: a user with that email already exists", apperr.ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("%w: hashing password: %v", apperr.ErrPersistence, err)
	}

	user := model.User{FirstName: req.FirstName, LastName: req.LastName, Role: model.RoleCandidate}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.Create(tx, &user); err != nil {
			return err
		}
		auth := model.Authorization{Email: req.Email, UserID: user.ID, PasswordHash: string(hash)}
		return s.userRepo.CreateAuthorization(tx, &auth)
	})
	if err != nil {
		log.Error().Err(err).Msg("Register: transaction failed")
		return 0, fmt.Errorf("%w: creating user: %v", apperr.ErrPersistence, err)
	}

	log.Info().Uint("userID", user.ID).Msg("Candidate registered")
	return user.ID, nil
}

func (s *accountService) GetProfile(userID uint) (*dto.ProfileResponseDTO, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: loading user: %v", apperr.ErrPersistence, err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %d", apperr.ErrNotFound, userID)
	}

	resp := dto.ProfileResponseDTO{
		UserID:    user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      string(user.Role),
	}

	info, err := s.userRepo.FindInfo(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: loading profile info: %v", apperr.ErrPersistence, err)
	}
	if info != nil {
		var infoDTO dto.ProfileInfoDTO
		copier.Copy(&infoDTO, info)
		resp.Info = &infoDTO
	}

	docs, err := s.userRepo.FindDocuments(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: loading documents: %v", apperr.ErrPersistence, err)
	}
	if docs != nil {
		var docsDTO dto.ProfileDocumentsDTO
		copier.Copy(&docsDTO, docs)
		resp.Documents = &docsDTO
	}

	status, err := s.userRepo.FindStatus(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: loading status: %v", apperr.ErrPersistence, err)
	}
	if status != nil {
		st := string(status.Status)
		resp.Status = &st
		resp.AdmissionDate = status.AdmissionDate
	}

	return &resp, nil
}

func (s *accountService) UpdateProfile(userID uint, req dto.ProfileUpdateRequest) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return fmt.Errorf("%w: loading user: %v", apperr.ErrPersistence, err)
	}
	if user == nil {
		return fmt.Errorf("%w: user %d", apperr.ErrNotFound, userID)
	}

	if req.Info != nil {
		info := model.CandidateInfo{UserID: userID}
		copier.Copy(&info, req.Info)
		if err := s.userRepo.SaveInfo(&info); err != nil {
			log.Error().Err(err).Uint("userID", userID).Msg("UpdateProfile: saving info failed")
			return fmt.Errorf("%w: saving profile info: %v", apperr.ErrPersistence, err)
		}
	}
	if req.Documents != nil {
		docs := model.CandidateDocuments{UserID: userID}
		copier.Copy(&docs, req.Documents)
		if err := s.userRepo.SaveDocuments(&docs); err != nil {
			log.Error().Err(err).Uint("userID", userID).Msg("UpdateProfile: saving documents failed")
			return fmt.Errorf("%w: saving documents: %v", apperr.ErrPersistence, err)
		}
	}
	return nil
}

func (s *accountService) UpdateStatus(userID uint, req dto.StatusUpdateRequest) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return fmt.Errorf("%w: loading user: %v", apperr.ErrPersistence, err)
	}
	if user == nil {
		return fmt.Errorf("%w: user %d", apperr.ErrNotFound, userID)
	}
	if user.Role != model.RoleCandidate {
		return fmt.Errorf("%w: user %d is not a candidate", apperr.ErrInvalidOperation, userID)
	}

	status := model.CandidateStatus{
		UserID:        userID,
		Status:        model.CandidateStatusValue(req.Status),
		AdmissionDate: req.AdmissionDate,
	}
	if err := s.userRepo.SaveStatus(&status); err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("UpdateStatus: database write failed")
		return fmt.Errorf("%w: saving status: %v", apperr.ErrPersistence, err)
	}
	log.Info().Uint("userID", userID).Str("status", req.Status).Msg("Admission status updated")
	return nil
}

func (s *accountService) DeleteUser(userID uint) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return fmt.Errorf("%w: loading user: %v", apperr.ErrPersistence, err)
	}
	if user == nil {
		return fmt.Errorf("%w: user %d", apperr.ErrNotFound, userID)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.tokenRepo.DeleteByUserID(tx, userID); err != nil {
			return err
		}
		return s.userRepo.DeleteCascade(tx, userID)
	})
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("DeleteUser: cascade failed")
		return fmt.Errorf("%w: deleting user: %v", apperr.ErrPersistence, err)
	}
	log.Info().Uint("userID", userID).Msg("User deleted with owned records")
	return nil
}
