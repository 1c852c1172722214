package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/innoforms/admission-portal/internal/dto"
	"github.com/innoforms/admission-portal/internal/model"
	"github.com/innoforms/admission-portal/internal/repository"
	"github.com/innoforms/admission-portal/internal/service"
)

const (
	// IdentityKey is where the resolved *model.User lives in the gin context.
	IdentityKey = "identity"
	// ClaimsKey holds the parsed token claims (jti, kind) for logout/refresh.
	ClaimsKey = "tokenClaims"
)

type AuthMiddleware struct {
	tokenService service.TokenService
	userRepo     repository.UserRepository
}

func NewAuthMiddleware(tokenService service.TokenService, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokenService: tokenService, userRepo: userRepo}
}

// RequireAuth resolves an access bearer token into an identity exactly once
// per request: signature and expiry via the JWT itself, revocation via the
// token ledger. A refresh token never authenticates a guarded endpoint.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return am.requireToken(model.TokenAccess)
}

// RequireRefresh is the same resolution for the refresh endpoint, which
// legitimately presents a REFRESH token.
func (am *AuthMiddleware) RequireRefresh() gin.HandlerFunc {
	return am.requireToken(model.TokenRefresh)
}

// requireToken accepts only the given token kind. Any ambiguity fails closed
// with 401.
func (am *AuthMiddleware) requireToken(kind model.TokenKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Authorization token not provided"})
			return
		}

		claims, err := am.tokenService.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Invalid or expired token"})
			return
		}
		if claims.Kind != kind {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Wrong token type"})
			return
		}
		if !am.tokenService.IsValid(claims.ID) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Token has been revoked"})
			return
		}

		user, err := am.userRepo.FindByID(claims.UserID)
		if err != nil || user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Unknown user"})
			return
		}

		c.Set(IdentityKey, user)
		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// RequireRoles gates a route group on the guard before the handler runs.
func (am *AuthMiddleware) RequireRoles(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := service.Authorize(Identity(c), roles...); err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Message: "You have insufficient rights for this action"})
			return
		}
		c.Next()
	}
}

// Identity returns the resolved user, or nil when the request is anonymous.
func Identity(c *gin.Context) *model.User {
	v, ok := c.Get(IdentityKey)
	if !ok {
		return nil
	}
	user, _ := v.(*model.User)
	return user
}

// Claims returns the parsed token claims bound to the request.
func Claims(c *gin.Context) *service.TokenClaims {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*service.TokenClaims)
	return claims
}
