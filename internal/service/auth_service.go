package service

import (
	"fmt"

	"github.com/innoforms/admission-portal/internal/apperr"
	"github.com/innoforms/admission-portal/internal/dto"
	"github.com/innoforms/admission-portal/internal/model"
	"github.com/innoforms/admission-portal/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Login(req dto.LoginRequest) (*dto.TokenPairResponse, error)
	// Refresh issues a fresh access token for an identity presenting a valid
	// refresh token.
	Refresh(identity *model.User, kind model.TokenKind) (*dto.TokenPairResponse, error)
	Logout(jti string) error
}

type authService struct {
	userRepo     repository.UserRepository
	tokenService TokenService
}

func NewAuthService(userRepo repository.UserRepository, tokenService TokenService) AuthService {
	return &authService{userRepo: userRepo, tokenService: tokenService}
}

func (s *authService) Login(req dto.LoginRequest) (*dto.TokenPairResponse, error) {
	auth, err := s.userRepo.FindAuthorizationByEmail(req.Email)
	if err != nil {
		log.Error().Err(err).Msg("Login: authorization lookup failed")
		return nil, fmt.Errorf("%w: looking up credentials: %v", apperr.ErrPersistence, err)
	}
	// Same failure for unknown email and bad password.
	if auth == nil {
		return nil, fmt.Errorf("%w: bad email or password", apperr.ErrInvalidInput)
	}
	if bcrypt.CompareHashAndPassword([]byte(auth.PasswordHash), []byte(req.Password)) != nil {
		return nil, fmt.Errorf("%w: bad email or password", apperr.ErrInvalidInput)
	}

	access, _, err := s.tokenService.Issue(auth.UserID, model.TokenAccess)
	if err != nil {
		return nil, err
	}
	refresh, _, err := s.tokenService.Issue(auth.UserID, model.TokenRefresh)
	if err != nil {
		return nil, err
	}

	log.Info().Uint("userID", auth.UserID).Msg("User logged in")
	return &dto.TokenPairResponse{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *authService) Refresh(identity *model.User, kind model.TokenKind) (*dto.TokenPairResponse, error) {
	if identity == nil {
		return nil, apperr.ErrUnauthenticated
	}
	if kind != model.TokenRefresh {
		return nil, fmt.Errorf("%w: refresh requires a refresh token", apperr.ErrUnauthenticated)
	}
	access, _, err := s.tokenService.Issue(identity.ID, model.TokenAccess)
	if err != nil {
		return nil, err
	}
	return &dto.TokenPairResponse{AccessToken: access}, nil
}

func (s *authService) Logout(jti string) error {
	if _, err := s.tokenService.Revoke(jti); err != nil {
		return err
	}
	return nil
}
