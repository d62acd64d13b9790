package invitation

import apperrors "github.com/orghub/server/internal/shared/errors"

// Domain errors for the invitation module.
var (
	ErrInvitationNotFound   = apperrors.NewNotFound("INVITATION_NOT_FOUND", "invitation not found or already used")
	ErrInvitationExpired    = apperrors.NewBadRequest("INVITATION_EXPIRED", "invitation has expired")
	ErrInvitationNotPending = apperrors.NewBadRequest("INVITATION_NOT_PENDING", "invitation is no longer pending")
	ErrEmailMismatch        = apperrors.NewBadRequest("INVITATION_EMAIL_MISMATCH", "invitation was sent to a different email address")
	ErrCancelNotAllowed     = apperrors.NewBadRequest("INVITATION_CANCEL_NOT_ALLOWED", "only the inviter or an organization owner or admin can cancel this invitation")
	ErrUserNotFound         = apperrors.NewNotFound("USER_NOT_FOUND", "user not found")
	ErrAlreadyMember        = apperrors.NewConflict("ALREADY_MEMBER", "user is already a member of this organization")
	ErrOrganizationNotFound = apperrors.NewNotFound("ORGANIZATION_NOT_FOUND", "organization not found")
	ErrAccessDenied         = apperrors.NewForbidden("ORGANIZATION_ACCESS_DENIED", "access denied to this organization")
)
