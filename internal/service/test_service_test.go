package service

import (
	"testing"

	"github.com/innoforms/admission-portal/internal/apperr"
	"github.com/innoforms/admission-portal/internal/dto"
	"github.com/innoforms/admission-portal/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTestWithQuestions(t *testing.T) {
	f := newFixture(t)

	resp, err := f.tests.CreateTest(dto.TestCreateDTO{
		Name:    "Math entrance",
		MaxTime: intPtr(45),
		Questions: []dto.QuestionCreateDTO{
			{Prompt: "2+2", Type: "single_choice", CorrectAnswer: []string{"4"}, Points: 1},
			{Prompt: "essay", Type: "open_text", ManuallyGraded: true, Points: 5},
		},
	})
	require.NoError(t, err)
	assert.NotZero(t, resp.ID)
	require.Len(t, resp.Questions, 2)
	assert.Equal(t, []string{"4"}, resp.Questions[0].CorrectAnswer)

	questions, err := f.questionRepo.FindByTestID(resp.ID)
	require.NoError(t, err)
	assert.Len(t, questions, 2)
}

func TestCreateTestValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.tests.CreateTest(dto.TestCreateDTO{Name: "   "})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, err = f.tests.CreateTest(dto.TestCreateDTO{Name: "x", MaxTime: intPtr(0)})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	// An auto-graded question needs an answer key.
	_, err = f.tests.CreateTest(dto.TestCreateDTO{
		Name:      "x",
		Questions: []dto.QuestionCreateDTO{{Prompt: "2+2", Type: "single_choice", Points: 1}},
	})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestAddQuestionToUnknownTest(t *testing.T) {
	f := newFixture(t)

	_, err := f.tests.AddQuestion(999, dto.QuestionCreateDTO{
		Prompt: "2+2", Type: "single_choice", CorrectAnswer: []string{"4"}, Points: 1,
	})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestArchiveHidesTestFromCatalog(t *testing.T) {
	f := newFixture(t)
	test, _ := f.seedTest(t, nil, singleChoice("A", 1))

	active, err := f.tests.ListActiveTests()
	require.NoError(t, err)
	require.Len(t, active, 1)

	require.NoError(t, f.tests.ArchiveTest(test.ID))

	active, err = f.tests.ListActiveTests()
	require.NoError(t, err)
	assert.Empty(t, active)

	// Archived tests stay readable by id.
	full, _, err := f.tests.GetTestWithQuestions(test.ID, true)
	require.NoError(t, err)
	assert.True(t, full.Archived)
}

func TestDeleteTestRefusedWhileSubmissionsExist(t *testing.T) {
	f := newFixture(t)
	candidate := f.seedUser(t, model.RoleCandidate)
	test, _ := f.seedTest(t, nil, singleChoice("A", 1))

	_, err := f.submissions.Start(candidate.ID, test.ID)
	require.NoError(t, err)

	err = f.tests.DeleteTest(test.ID)
	assert.ErrorIs(t, err, apperr.ErrConflict)

	// Without submissions the delete goes through, questions included.
	empty, qids := f.seedTest(t, nil, singleChoice("B", 1))
	require.NoError(t, f.tests.DeleteTest(empty.ID))

	gone, err := f.tests.GetTest(empty.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
	q, err := f.tests.GetQuestion(qids[0])
	require.NoError(t, err)
	assert.Nil(t, q)
}

func TestGetTestWithQuestionsViews(t *testing.T) {
	f := newFixture(t)
	test, _ := f.seedTest(t, intPtr(30), singleChoice("secret", 1))

	full, public, err := f.tests.GetTestWithQuestions(test.ID, true)
	require.NoError(t, err)
	require.NotNil(t, full)
	assert.Nil(t, public)
	require.Len(t, full.Questions, 1)
	assert.Equal(t, []string{"secret"}, full.Questions[0].CorrectAnswer)

	full, public, err = f.tests.GetTestWithQuestions(test.ID, false)
	require.NoError(t, err)
	assert.Nil(t, full)
	require.NotNil(t, public)
	require.Len(t, public.Questions, 1)
	assert.Equal(t, "pick one", public.Questions[0].Prompt)

	_, _, err = f.tests.GetTestWithQuestions(999, false)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUpdateQuestionPartial(t *testing.T) {
	f := newFixture(t)
	_, qids := f.seedTest(t, nil, singleChoice("A", 1))

	require.NoError(t, f.tests.UpdateQuestion(qids[0], dto.QuestionUpdateDTO{
		Points:        floatPtr(3),
		CorrectAnswer: &[]string{"B"},
	}))

	q, err := f.tests.GetQuestion(qids[0])
	require.NoError(t, err)
	require.NotNil(t, q)
	assert.Equal(t, 3.0, q.Points)
	assert.Equal(t, []string{"B"}, q.CorrectAnswer)
	assert.Equal(t, "pick one", q.Prompt, "untouched fields survive")

	err = f.tests.UpdateQuestion(999, dto.QuestionUpdateDTO{Points: floatPtr(1)})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestListSubmissionsForTest(t *testing.T) {
	f := newFixture(t)
	a := f.seedUser(t, model.RoleCandidate)
	b := f.seedUser(t, model.RoleCandidate)
	test, _ := f.seedTest(t, nil, singleChoice("A", 1))

	started, err := f.submissions.Start(a.ID, test.ID)
	require.NoError(t, err)
	require.NoError(t, f.submissions.Complete(started.SubmissionID, a))
	_, err = f.submissions.Start(b.ID, test.ID)
	require.NoError(t, err)

	summaries, err := f.tests.ListSubmissionsForTest(test.ID)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	_, err = f.tests.ListSubmissionsForTest(999)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
