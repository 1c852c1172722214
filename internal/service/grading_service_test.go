package service

import (
	"testing"

	"github.com/innoforms/admission-portal/internal/apperr"
	"github.com/innoforms/admission-portal/internal/dto"
	"github.com/innoforms/admission-portal/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// completedSubmission seeds a candidate, a test with one auto-graded and one
// manually graded question, answers both, and completes the attempt.
func completedSubmission(t *testing.T, f *fixture) (submissionID uint, autoQ, manualQ uint, grader *model.User) {
	t.Helper()
	candidate := f.seedUser(t, model.RoleCandidate)
	grader = f.seedUser(t, model.RoleStaff)

	test, qids := f.seedTest(t, nil,
		singleChoice("A", 2),
		model.Question{
			Prompt:         "motivation letter",
			Type:           model.QuestionOpenText,
			ManuallyGraded: true,
			Points:         8,
		},
	)

	started, err := f.submissions.Start(candidate.ID, test.ID)
	require.NoError(t, err)
	req := dto.CheckpointRequest{Answers: []dto.AnswerInputDTO{
		{QuestionID: qids[0], Values: []string{"A"}},
		{QuestionID: qids[1], Values: []string{"I want to study here"}},
	}}
	require.NoError(t, f.submissions.Checkpoint(started.SubmissionID, candidate, req))
	require.NoError(t, f.submissions.Complete(started.SubmissionID, candidate))
	return started.SubmissionID, qids[0], qids[1], grader
}

func TestScoreSubmissionCountsPendingManualGrades(t *testing.T) {
	f := newFixture(t)
	submissionID, _, manualQ, grader := completedSubmission(t, f)

	report, err := f.grading.ScoreSubmission(submissionID)
	require.NoError(t, err)
	assert.Equal(t, 2.0, report.Total)
	assert.Equal(t, 1, report.PendingManualGrades)
	require.Len(t, report.PerQuestion, 2)

	err = f.grading.RecordManualGrade(submissionID, dto.ManualGradeRequest{
		QuestionID: manualQ,
		Grade:      8,
		Comments:   strPtr("strong letter"),
	}, grader.ID)
	require.NoError(t, err)

	report, err = f.grading.ScoreSubmission(submissionID)
	require.NoError(t, err)
	assert.Equal(t, 10.0, report.Total)
	assert.Equal(t, 0, report.PendingManualGrades)

	submission, err := f.submissionRepo.FindByID(submissionID)
	require.NoError(t, err)
	require.NotNil(t, submission.GradedBy)
	assert.Equal(t, grader.ID, *submission.GradedBy)
}

func TestScoreSubmissionRequiresCompletion(t *testing.T) {
	f := newFixture(t)
	candidate := f.seedUser(t, model.RoleCandidate)
	test, _ := f.seedTest(t, nil, singleChoice("A", 1))

	started, err := f.submissions.Start(candidate.ID, test.ID)
	require.NoError(t, err)

	_, err = f.grading.ScoreSubmission(started.SubmissionID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = f.grading.ScoreSubmission(999)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestRecordManualGradeGuards(t *testing.T) {
	f := newFixture(t)
	submissionID, autoQ, _, grader := completedSubmission(t, f)

	// Auto-graded questions are not re-gradable by hand.
	err := f.grading.RecordManualGrade(submissionID, dto.ManualGradeRequest{QuestionID: autoQ, Grade: 1}, grader.ID)
	assert.ErrorIs(t, err, apperr.ErrInvalidOperation)

	// Unanswered question id.
	err = f.grading.RecordManualGrade(submissionID, dto.ManualGradeRequest{QuestionID: 999, Grade: 1}, grader.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestRecordManualGradeOnOpenSubmission(t *testing.T) {
	f := newFixture(t)
	candidate := f.seedUser(t, model.RoleCandidate)
	grader := f.seedUser(t, model.RoleStaff)
	test, qids := f.seedTest(t, nil, model.Question{
		Prompt:         "essay",
		Type:           model.QuestionOpenText,
		ManuallyGraded: true,
		Points:         5,
	})

	started, err := f.submissions.Start(candidate.ID, test.ID)
	require.NoError(t, err)
	require.NoError(t, f.submissions.Checkpoint(started.SubmissionID, candidate, checkpoint(qids[0], "draft")))

	err = f.grading.RecordManualGrade(started.SubmissionID, dto.ManualGradeRequest{QuestionID: qids[0], Grade: 5}, grader.ID)
	assert.ErrorIs(t, err, apperr.ErrInvalidOperation)
}
