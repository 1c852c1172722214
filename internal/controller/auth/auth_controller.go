package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/innoforms/admission-portal/internal/controller"
	"github.com/innoforms/admission-portal/internal/dto"
	"github.com/innoforms/admission-portal/internal/middleware"
	"github.com/innoforms/admission-portal/internal/service"
	"github.com/rs/zerolog/log"
)

type AuthController struct {
	authService    service.AuthService
	accountService service.AccountService
}

func NewAuthController(authService service.AuthService, accountService service.AccountService) *AuthController {
	return &AuthController{authService: authService, accountService: accountService}
}

// Login godoc
// @Summary Login
// @Description Exchanges email and password for an access/refresh token pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.TokenPairResponse
// @Failure 400 {object} dto.ErrorResponse "Bad email or password"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	tokens, err := c.authService.Login(req)
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, tokens)
}

// Refresh godoc
// @Summary Token refresh
// @Description Issues a new access token; requires a valid refresh token
// @Tags Auth
// @Produce json
// @Success 200 {object} dto.TokenPairResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/refresh [post]
// @Security BearerAuth
func (c *AuthController) Refresh(ctx *gin.Context) {
	claims := middleware.Claims(ctx)
	if claims == nil {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Authorization token not provided"})
		return
	}

	tokens, err := c.authService.Refresh(middleware.Identity(ctx), claims.Kind)
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, tokens)
}

// Logout godoc
// @Summary Logout
// @Description Revokes the presented token
// @Tags Auth
// @Produce json
// @Success 202 {object} dto.MessageResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/logout [post]
// @Security BearerAuth
func (c *AuthController) Logout(ctx *gin.Context) {
	claims := middleware.Claims(ctx)
	if claims == nil {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Authorization token not provided"})
		return
	}

	if err := c.authService.Logout(claims.ID); err != nil {
		controller.Fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusAccepted, dto.MessageResponse{Message: "Logged out"})
}

// Register godoc
// @Summary Registration
// @Description Creates a new candidate profile with login credentials
// @Tags Auth
// @Accept json
// @Produce json
// @Param registration body dto.RegisterRequest true "Registration data"
// @Success 201 {object} dto.MessageResponse
// @Failure 409 {object} dto.ErrorResponse "A user with that email already exists"
// @Router /profile/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	userID, err := c.accountService.Register(req)
	if err != nil {
		log.Warn().Err(err).Msg("Register: service error")
		controller.Fail(ctx, err)
		return
	}
	log.Info().Uint("userID", userID).Msg("Registration completed")
	ctx.JSON(http.StatusCreated, dto.MessageResponse{Message: "Registration successful"})
}
