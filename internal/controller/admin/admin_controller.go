package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/innoforms/admission-portal/internal/controller"
	"github.com/innoforms/admission-portal/internal/dto"
	"github.com/innoforms/admission-portal/internal/middleware"
	"github.com/innoforms/admission-portal/internal/service"
	"github.com/rs/zerolog/log"
)

// AdminController serves staff/manager operations: the test catalog,
// submission review and grading, and account removal.
type AdminController struct {
	testService    service.TestService
	gradingService service.GradingService
	accountService service.AccountService
}

func NewAdminController(testService service.TestService, gradingService service.GradingService, accountService service.AccountService) *AdminController {
	return &AdminController{
		testService:    testService,
		gradingService: gradingService,
		accountService: accountService,
	}
}

// CreateTest godoc
// @Summary Create test
// @Description Creates a test with its initial set of questions
// @Tags Admin
// @Accept json
// @Produce json
// @Param test body dto.TestCreateDTO true "Test definition"
// @Success 201 {object} dto.TestResponseDTO
// @Failure 422 {object} dto.ErrorResponse "Invalid test or question data"
// @Router /admin/tests [post]
// @Security BearerAuth
func (c *AdminController) CreateTest(ctx *gin.Context) {
	var req dto.TestCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.testService.CreateTest(req)
	if err != nil {
		log.Warn().Err(err).Str("name", req.Name).Msg("CreateTest: rejected")
		controller.Fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// UpdateTest godoc
// @Summary Update test
// @Description Partial update of test metadata; set archived=true to retire a
// test while keeping its submissions readable
// @Tags Admin
// @Accept json
// @Produce json
// @Param test_id path int true "Test ID"
// @Param test body dto.TestUpdateDTO true "Fields to change"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /admin/tests/{test_id} [put]
// @Security BearerAuth
func (c *AdminController) UpdateTest(ctx *gin.Context) {
	testID, ok := controller.PathID(ctx, "test_id")
	if !ok {
		return
	}

	var req dto.TestUpdateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	if err := c.testService.UpdateTest(testID, req); err != nil {
		controller.Fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Test updated"})
}

// DeleteTest godoc
// @Summary Delete test
// @Description Permanently removes a test and its questions. Refused when
// submissions exist; archive the test instead.
// @Tags Admin
// @Produce json
// @Param test_id path int true "Test ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Failure 409 {object} dto.ErrorResponse "Test has submissions"
// @Router /admin/tests/{test_id} [delete]
// @Security BearerAuth
func (c *AdminController) DeleteTest(ctx *gin.Context) {
	testID, ok := controller.PathID(ctx, "test_id")
	if !ok {
		return
	}

	if err := c.testService.DeleteTest(testID); err != nil {
		log.Warn().Err(err).Uint("testID", testID).Msg("DeleteTest: rejected")
		controller.Fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Test deleted"})
}

// AddQuestion godoc
// @Summary Add question
// @Description Adds a question to an existing test
// @Tags Admin
// @Accept json
// @Produce json
// @Param test_id path int true "Test ID"
// @Param question body dto.QuestionCreateDTO true "Question definition"
// @Success 201 {object} dto.QuestionResponseDTO
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Failure 422 {object} dto.ErrorResponse "Invalid question data"
// @Router /admin/tests/{test_id}/questions [post]
// @Security BearerAuth
func (c *AdminController) AddQuestion(ctx *gin.Context) {
	testID, ok := controller.PathID(ctx, "test_id")
	if !ok {
		return
	}

	var req dto.QuestionCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.testService.AddQuestion(testID, req)
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// UpdateQuestion godoc
// @Summary Update question
// @Description Partial update of a question's prompt, type, answer key or
// points
// @Tags Admin
// @Accept json
// @Produce json
// @Param question_id path int true "Question ID"
// @Param question body dto.QuestionUpdateDTO true "Fields to change"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Router /admin/questions/{question_id} [put]
// @Security BearerAuth
func (c *AdminController) UpdateQuestion(ctx *gin.Context) {
	questionID, ok := controller.PathID(ctx, "question_id")
	if !ok {
		return
	}

	var req dto.QuestionUpdateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	if err := c.testService.UpdateQuestion(questionID, req); err != nil {
		controller.Fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Question updated"})
}

// ListSubmissions godoc
// @Summary List submissions for a test
// @Description All submissions recorded against the given test
// @Tags Admin
// @Produce json
// @Param test_id path int true "Test ID"
// @Success 200 {array} dto.SubmissionSummaryDTO
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /admin/tests/{test_id}/submissions [get]
// @Security BearerAuth
func (c *AdminController) ListSubmissions(ctx *gin.Context) {
	testID, ok := controller.PathID(ctx, "test_id")
	if !ok {
		return
	}

	submissions, err := c.testService.ListSubmissionsForTest(testID)
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, submissions)
}

// ScoreSubmission godoc
// @Summary Score report
// @Description Total score and per-question breakdown for a completed
// submission, with the number of answers still waiting for manual grading
// @Tags Admin
// @Produce json
// @Param submission_id path int true "Submission ID"
// @Success 200 {object} dto.ScoreReportDTO
// @Failure 404 {object} dto.ErrorResponse "No completed submission"
// @Router /admin/submissions/{submission_id}/score [get]
// @Security BearerAuth
func (c *AdminController) ScoreSubmission(ctx *gin.Context) {
	submissionID, ok := controller.PathID(ctx, "submission_id")
	if !ok {
		return
	}

	report, err := c.gradingService.ScoreSubmission(submissionID)
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, report)
}

// RecordManualGrade godoc
// @Summary Manual grade
// @Description Records a grade and optional comments for one answer of a
// completed submission
// @Tags Admin
// @Accept json
// @Produce json
// @Param submission_id path int true "Submission ID"
// @Param grade body dto.ManualGradeRequest true "Grade to record"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse "Submission or answer not found"
// @Failure 422 {object} dto.ErrorResponse "Submission still open"
// @Router /admin/submissions/{submission_id}/grade [post]
// @Security BearerAuth
func (c *AdminController) RecordManualGrade(ctx *gin.Context) {
	submissionID, ok := controller.PathID(ctx, "submission_id")
	if !ok {
		return
	}

	var req dto.ManualGradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	grader := middleware.Identity(ctx)
	if err := c.gradingService.RecordManualGrade(submissionID, req, grader.ID); err != nil {
		log.Warn().Err(err).Uint("submissionID", submissionID).Uint("graderID", grader.ID).Msg("RecordManualGrade: rejected")
		controller.Fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Grade recorded"})
}

// UpdateUserStatus godoc
// @Summary Admission status
// @Description Records the admission decision for a candidate
// @Tags Admin
// @Accept json
// @Produce json
// @Param user_id path int true "User ID"
// @Param status body dto.StatusUpdateRequest true "Decision"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 422 {object} dto.ErrorResponse "User is not a candidate"
// @Router /admin/users/{user_id}/status [put]
// @Security BearerAuth
func (c *AdminController) UpdateUserStatus(ctx *gin.Context) {
	userID, ok := controller.PathID(ctx, "user_id")
	if !ok {
		return
	}

	var req dto.StatusUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	if err := c.accountService.UpdateStatus(userID, req); err != nil {
		controller.Fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Status updated"})
}

// DeleteUser godoc
// @Summary Delete user
// @Description Removes a user account together with its submissions, answers,
// tokens and profile data
// @Tags Admin
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /admin/users/{user_id} [delete]
// @Security BearerAuth
func (c *AdminController) DeleteUser(ctx *gin.Context) {
	userID, ok := controller.PathID(ctx, "user_id")
	if !ok {
		return
	}

	if err := c.accountService.DeleteUser(userID); err != nil {
		controller.Fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "User deleted"})
}
