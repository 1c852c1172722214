package service

import (
	"fmt"

	"github.com/innoforms/admission-portal/internal/apperr"
	"github.com/innoforms/admission-portal/internal/model"
)

// Authorize is the access-control gate every operation runs through. The
// identity is resolved once per request by the auth middleware and passed in
// explicitly; a nil identity means no valid token could be resolved. The gate
// has no side effects and never downgrades a request's permissions.
func Authorize(identity *model.User, allowed ...model.Role) error {
	if identity == nil {
		return apperr.ErrUnauthenticated
	}
	if !identity.HasAnyRole(allowed...) {
		return fmt.Errorf("%w: role %s", apperr.ErrInsufficientRights, identity.Role)
	}
	return nil
}
