package orghttp

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orghub/server/internal/port/inbound"
	apperrors "github.com/orghub/server/internal/shared/errors"
)

// GetInvitation returns a pending invitation by its token.
//
//	@Summary	Get invitation by token
//	@Tags		Invitations
//	@Security	BearerAuth
//	@Produce	json
//	@Param		token	path		string	true	"Invitation token"
//	@Success	200		{object}	map[string]any
//	@Failure	400,404	{object}	apperrors.ErrorResponse
//	@Router		/organizations/invitations/{token} [get]
func (h *Handler) GetInvitation(c *gin.Context) {
	if _, ok := requireAuth(c); !ok {
		return
	}

	inv, err := h.invitations.GetInvitationByToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Invitation details retrieved successfully",
		"invitation": inv,
	})
}

// AcceptInvitation turns the caller's invitation into a membership.
//
//	@Summary	Accept invitation
//	@Tags		Invitations
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		body			body		inbound.AcceptInvitationInput	true	"Token"
//	@Success	200				{object}	map[string]any
//	@Failure	400,404,409		{object}	apperrors.ErrorResponse
//	@Router		/organizations/invitations/accept [post]
func (h *Handler) AcceptInvitation(c *gin.Context) {
	userID, ok := requireAuth(c)
	if !ok {
		return
	}

	var input inbound.AcceptInvitationInput
	if !bindJSON(c, &input) {
		return
	}

	membership, err := h.invitations.AcceptInvitation(c.Request.Context(), input.Token, userID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.recordInvitation("accepted")

	c.JSON(http.StatusOK, gin.H{
		"message":    "Invitation accepted successfully",
		"membership": membership,
	})
}

// CancelInvitation cancels a pending invitation.
//
//	@Summary	Cancel invitation
//	@Tags		Invitations
//	@Security	BearerAuth
//	@Produce	json
//	@Param		invitationId	path		string	true	"Invitation ID"
//	@Success	200				{object}	map[string]any
//	@Failure	400,404			{object}	apperrors.ErrorResponse
//	@Router		/organizations/invitations/{invitationId} [delete]
func (h *Handler) CancelInvitation(c *gin.Context) {
	userID, ok := requireAuth(c)
	if !ok {
		return
	}
	invitationID, ok := pathID(c, "invitationId")
	if !ok {
		return
	}

	if err := h.invitations.CancelInvitation(c.Request.Context(), invitationID, userID); err != nil {
		h.handleError(c, err)
		return
	}
	h.recordInvitation("cancelled")

	c.JSON(http.StatusOK, gin.H{"message": "Invitation cancelled successfully"})
}

// ListOrganizationInvitations lists pending and accepted invitations, newest first.
//
//	@Summary	List organization invitations
//	@Tags		Invitations
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id		path		string	true	"Organization ID"
//	@Success	200		{object}	map[string]any
//	@Failure	403,404	{object}	apperrors.ErrorResponse
//	@Router		/organizations/{id}/invitations [get]
func (h *Handler) ListOrganizationInvitations(c *gin.Context) {
	userID, ok := requireAuth(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	invitations, err := h.invitations.GetOrganizationInvitations(c.Request.Context(), id, userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Invitations retrieved successfully",
		"invitations": invitations,
		"count":       len(invitations),
	})
}

func badQuery(err error) error {
	return apperrors.NewAppError("VALIDATION_ERROR", err.Error(), http.StatusBadRequest, apperrors.ErrBadRequest)
}

// Compile-time checks
var (
	_ inbound.OrganizationHttpPort = (*Handler)(nil)
	_ inbound.MemberHttpPort       = (*Handler)(nil)
	_ inbound.InvitationHttpPort   = (*Handler)(nil)
)
