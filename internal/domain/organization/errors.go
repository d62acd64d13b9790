package organization

import apperrors "github.com/orghub/server/internal/shared/errors"

// Domain errors for the organization module.
var (
	// Organization errors
	ErrOrganizationNotFound = apperrors.NewNotFound("ORGANIZATION_NOT_FOUND", "organization not found")
	ErrNameExists           = apperrors.NewConflict("ORGANIZATION_NAME_EXISTS", "organization name already exists")
	ErrOrganizationConflict = apperrors.NewConflict("ORGANIZATION_CONFLICT", "organization name or slug already exists")
	ErrInvalidName          = apperrors.NewBadRequest("INVALID_ORGANIZATION_NAME", "organization name is required and must not contain control characters")
	ErrInvalidStatus        = apperrors.NewBadRequest("INVALID_ORGANIZATION_STATUS", "status must be active, inactive or suspended")
	ErrInvalidLimits        = apperrors.NewBadRequest("INVALID_ORGANIZATION_LIMITS", "limits must be positive")
	ErrSlugExhausted        = apperrors.NewConflict("ORGANIZATION_SLUG_EXHAUSTED", "could not derive a unique slug for this name")

	// Access errors
	ErrAccessDenied      = apperrors.NewForbidden("ORGANIZATION_ACCESS_DENIED", "access denied to this organization")
	ErrUpdateForbidden   = apperrors.NewForbidden("INSUFFICIENT_PERMISSIONS", "insufficient permissions to update organization")
	ErrDeleteForbidden   = apperrors.NewForbidden("OWNER_REQUIRED", "only the organization owner can delete the organization")
	ErrInviteForbidden   = apperrors.NewForbidden("INSUFFICIENT_PERMISSIONS", "insufficient permissions to invite members")
	ErrManageForbidden   = apperrors.NewForbidden("INSUFFICIENT_PERMISSIONS", "insufficient permissions to update member")
	ErrRemoveForbidden   = apperrors.NewForbidden("INSUFFICIENT_PERMISSIONS", "insufficient permissions to remove member")
	ErrAuditLogForbidden = apperrors.NewForbidden("INSUFFICIENT_PERMISSIONS", "insufficient permissions to view the audit log")

	// Member errors
	ErrMemberNotFound      = apperrors.NewNotFound("MEMBER_NOT_FOUND", "member not found")
	ErrAlreadyMember       = apperrors.NewConflict("ALREADY_MEMBER", "user is already a member of this organization")
	ErrOwnerImmutable      = apperrors.NewForbidden("OWNER_IMMUTABLE", "cannot modify or remove the organization owner")
	ErrOwnerPromotion      = apperrors.NewForbidden("OWNER_PROMOTION_FORBIDDEN", "cannot promote a member to owner")
	ErrInvalidRole         = apperrors.NewBadRequest("INVALID_ROLE", "role must be admin, manager, member or viewer")
	ErrInvalidMemberStatus = apperrors.NewBadRequest("INVALID_MEMBER_STATUS", "status must be active, inactive or suspended")
	ErrMemberLimitExceeded = apperrors.NewBadRequest("ORGANIZATION_MEMBER_LIMIT_EXCEEDED", "organization has reached maximum user limit")

	// Invitation errors
	ErrInvitationPending = apperrors.NewConflict("INVITATION_ALREADY_PENDING", "a pending invitation already exists for this email")
)
