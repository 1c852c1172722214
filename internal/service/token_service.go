package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/innoforms/admission-portal/config"
	"github.com/innoforms/admission-portal/internal/apperr"
	"github.com/innoforms/admission-portal/internal/model"
	"github.com/innoforms/admission-portal/internal/repository"
	"github.com/rs/zerolog/log"
)

// TokenClaims is the JWT payload: the ledger key (jti) plus the owning user.
type TokenClaims struct {
	UserID uint            `json:"uid"`
	Kind   model.TokenKind `json:"kind"`
	jwt.RegisteredClaims
}

// TokenService is the token ledger. Every issued token gets a durable record
// keyed by jti; validity checks re-read the ledger so a revocation takes
// effect on the very next request.
type TokenService interface {
	Issue(userID uint, kind model.TokenKind) (string, *model.TokenRecord, error)
	Parse(token string) (*TokenClaims, error)
	IsValid(jti string) bool
	// Revoke marks the token unusable. Returns false when no record matches;
	// revoking twice is a no-op success.
	Revoke(jti string) (bool, error)
}

type tokenService struct {
	tokenRepo  repository.TokenRepository
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewTokenService(tokenRepo repository.TokenRepository, cfg *config.Config) TokenService {
	return &tokenService{
		tokenRepo:  tokenRepo,
		secret:     []byte(cfg.Auth.JWTSecret),
		accessTTL:  cfg.Auth.AccessTTL,
		refreshTTL: cfg.Auth.RefreshTTL,
		now:        time.Now,
	}
}

func (s *tokenService) Issue(userID uint, kind model.TokenKind) (string, *model.TokenRecord, error) {
	ttl := s.accessTTL
	if kind == model.TokenRefresh {
		ttl = s.refreshTTL
	}
	issued := s.now()
	expires := issued.Add(ttl)

	record := model.TokenRecord{
		JTI:       uuid.NewString(),
		IssuedAt:  issued,
		ExpiresAt: expires,
		Kind:      kind,
		UserID:    userID,
	}

	claims := TokenClaims{
		UserID: userID,
		Kind:   kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        record.JTI,
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("Failed to sign token")
		return "", nil, fmt.Errorf("%w: signing token: %v", apperr.ErrPersistence, err)
	}

	if err := s.tokenRepo.Create(&record); err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("Failed to persist token record")
		return "", nil, fmt.Errorf("%w: storing token record: %v", apperr.ErrPersistence, err)
	}
	return signed, &record, nil
}

func (s *tokenService) Parse(token string) (*TokenClaims, error) {
	var claims TokenClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid {
		return nil, apperr.ErrUnauthenticated
	}
	return &claims, nil
}

// IsValid re-reads the ledger: the token must exist, be unrevoked, and not yet
// expired. Any ledger read failure or missing record is treated as invalid.
func (s *tokenService) IsValid(jti string) bool {
	record, err := s.tokenRepo.FindByJTI(jti)
	if err != nil {
		log.Error().Err(err).Str("jti", jti).Msg("Token ledger read failed, failing closed")
		return false
	}
	if record == nil || record.Revoked {
		return false
	}
	return s.now().Before(record.ExpiresAt)
}

func (s *tokenService) Revoke(jti string) (bool, error) {
	affected, err := s.tokenRepo.Revoke(jti)
	if err != nil {
		log.Error().Err(err).Str("jti", jti).Msg("Failed to revoke token")
		return false, fmt.Errorf("%w: revoking token: %v", apperr.ErrPersistence, err)
	}
	return affected > 0, nil
}
