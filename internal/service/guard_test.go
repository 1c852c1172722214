package service

import (
	"testing"

	"github.com/innoforms/admission-portal/internal/apperr"
	"github.com/innoforms/admission-portal/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestAuthorize(t *testing.T) {
	staff := &model.User{ID: 1, Role: model.RoleStaff}

	assert.ErrorIs(t, Authorize(nil, model.RoleStaff), apperr.ErrUnauthenticated)
	assert.ErrorIs(t, Authorize(staff, model.RoleManager), apperr.ErrInsufficientRights)
	assert.NoError(t, Authorize(staff, model.RoleStaff))
	assert.NoError(t, Authorize(staff, model.RoleStaff, model.RoleManager))

	// No allowed roles means nobody passes.
	assert.ErrorIs(t, Authorize(staff), apperr.ErrInsufficientRights)
}
