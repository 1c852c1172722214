package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/innoforms/admission-portal/internal/controller"
	"github.com/innoforms/admission-portal/internal/dto"
	"github.com/innoforms/admission-portal/internal/middleware"
	"github.com/innoforms/admission-portal/internal/model"
	"github.com/innoforms/admission-portal/internal/service"
	"github.com/rs/zerolog/log"
)

// UserController serves the candidate-facing surface: profile, test listing,
// and the attempt lifecycle.
type UserController struct {
	accountService    service.AccountService
	testService       service.TestService
	submissionService service.SubmissionService
}

func NewUserController(accountService service.AccountService, testService service.TestService, submissionService service.SubmissionService) *UserController {
	return &UserController{
		accountService:    accountService,
		testService:       testService,
		submissionService: submissionService,
	}
}

// GetProfile godoc
// @Summary Profile info
// @Description All information about the current user's profile
// @Tags Profile
// @Produce json
// @Success 200 {object} dto.ProfileResponseDTO
// @Failure 401 {object} dto.ErrorResponse
// @Router /profile [get]
// @Security BearerAuth
func (c *UserController) GetProfile(ctx *gin.Context) {
	identity := middleware.Identity(ctx)
	profile, err := c.accountService.GetProfile(identity.ID)
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, profile)
}

// UpdateProfile godoc
// @Summary Profile update
// @Description Updates the current user's profile data
// @Tags Profile
// @Accept json
// @Produce json
// @Param profile body dto.ProfileUpdateRequest true "Profile blocks to update"
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /profile [put]
// @Security BearerAuth
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	var req dto.ProfileUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	identity := middleware.Identity(ctx)
	if err := c.accountService.UpdateProfile(identity.ID, req); err != nil {
		controller.Fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Profile updated"})
}

// ListTests godoc
// @Summary List active tests
// @Description All non-archived tests available to candidates
// @Tags Tests
// @Produce json
// @Success 200 {array} dto.TestSummaryDTO
// @Failure 401 {object} dto.ErrorResponse
// @Router /tests [get]
// @Security BearerAuth
func (c *UserController) ListTests(ctx *gin.Context) {
	tests, err := c.testService.ListActiveTests()
	if err != nil {
		log.Error().Err(err).Msg("ListTests: service error")
		controller.Fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, tests)
}

// GetTest godoc
// @Summary Get test by id
// @Description Test metadata with its questions; correct answers are only
// included for staff and manager callers.
// @Tags Tests
// @Produce json
// @Param test_id path int true "Test ID"
// @Success 200 {object} dto.TestPublicDTO
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /tests/{test_id} [get]
// @Security BearerAuth
func (c *UserController) GetTest(ctx *gin.Context) {
	testID, ok := controller.PathID(ctx, "test_id")
	if !ok {
		return
	}

	identity := middleware.Identity(ctx)
	includeAnswers := identity.HasAnyRole(model.RoleStaff, model.RoleManager)

	full, public, err := c.testService.GetTestWithQuestions(testID, includeAnswers)
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	if includeAnswers {
		ctx.JSON(http.StatusOK, full)
		return
	}
	ctx.JSON(http.StatusOK, public)
}

// StartTest godoc
// @Summary Test start
// @Description Starts the picked test for the current candidate and opens an
// empty submission
// @Tags Submissions
// @Produce json
// @Param test_id path int true "Test ID"
// @Success 201 {object} dto.StartResponseDTO
// @Failure 404 {object} dto.ErrorResponse "Test missing or archived"
// @Failure 409 {object} dto.ErrorResponse "Attempt already in progress"
// @Router /tests/{test_id}/start [post]
// @Security BearerAuth
func (c *UserController) StartTest(ctx *gin.Context) {
	testID, ok := controller.PathID(ctx, "test_id")
	if !ok {
		return
	}

	identity := middleware.Identity(ctx)
	resp, err := c.submissionService.Start(identity.ID, testID)
	if err != nil {
		log.Warn().Err(err).Uint("candidateID", identity.ID).Uint("testID", testID).Msg("StartTest: rejected")
		controller.Fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// Checkpoint godoc
// @Summary Test checkpoint
// @Description Saves the current answers for an open submission
// @Tags Submissions
// @Accept json
// @Produce json
// @Param submission_id path int true "Submission ID"
// @Param answers body dto.CheckpointRequest true "Current answers"
// @Success 201 {object} dto.MessageResponse
// @Failure 409 {object} dto.ErrorResponse "Submission already completed"
// @Failure 410 {object} dto.ErrorResponse "Time limit exceeded"
// @Router /submissions/{submission_id}/checkpoint [put]
// @Security BearerAuth
func (c *UserController) Checkpoint(ctx *gin.Context) {
	submissionID, ok := controller.PathID(ctx, "submission_id")
	if !ok {
		return
	}

	var req dto.CheckpointRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	if err := c.submissionService.Checkpoint(submissionID, middleware.Identity(ctx), req); err != nil {
		controller.Fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.MessageResponse{Message: "Answers saved"})
}

// Complete godoc
// @Summary Test submission
// @Description Marks the submission as completed. After this no checkpoints
// are accepted; save answers first, then complete.
// @Tags Submissions
// @Produce json
// @Param submission_id path int true "Submission ID"
// @Success 201 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse "Submission not found"
// @Failure 409 {object} dto.ErrorResponse "Submission already completed"
// @Router /submissions/{submission_id}/complete [post]
// @Security BearerAuth
func (c *UserController) Complete(ctx *gin.Context) {
	submissionID, ok := controller.PathID(ctx, "submission_id")
	if !ok {
		return
	}

	if err := c.submissionService.Complete(submissionID, middleware.Identity(ctx)); err != nil {
		controller.Fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.MessageResponse{Message: "Submission completed"})
}

// GetSubmission godoc
// @Summary Submission info
// @Description Submission state with its saved answers. Candidates only see
// their own submissions.
// @Tags Submissions
// @Produce json
// @Param submission_id path int true "Submission ID"
// @Success 200 {object} dto.SubmissionDetailDTO
// @Failure 404 {object} dto.ErrorResponse "Submission not found"
// @Router /submissions/{submission_id} [get]
// @Security BearerAuth
func (c *UserController) GetSubmission(ctx *gin.Context) {
	submissionID, ok := controller.PathID(ctx, "submission_id")
	if !ok {
		return
	}

	detail, err := c.submissionService.GetSubmission(submissionID, middleware.Identity(ctx))
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, detail)
}
