package orghttp

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orghub/server/internal/port/inbound"
)

// ListMembers lists all memberships of an organization.
//
//	@Summary	List members
//	@Tags		Members
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id		path		string	true	"Organization ID"
//	@Success	200		{object}	map[string]any
//	@Failure	403,404	{object}	apperrors.ErrorResponse
//	@Router		/organizations/{id}/members [get]
func (h *Handler) ListMembers(c *gin.Context) {
	userID, ok := requireAuth(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	members, err := h.orgs.GetMembers(c.Request.Context(), id, userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Members retrieved successfully",
		"members": members,
		"count":   len(members),
	})
}

// InviteMember invites an email address into the organization.
//
//	@Summary	Invite member
//	@Tags		Members
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		id					path		string						true	"Organization ID"
//	@Param		body				body		inbound.InviteMemberInput	true	"Invitation"
//	@Success	201					{object}	map[string]any
//	@Failure	400,403,404,409		{object}	apperrors.ErrorResponse
//	@Router		/organizations/{id}/invite [post]
func (h *Handler) InviteMember(c *gin.Context) {
	userID, ok := requireAuth(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input inbound.InviteMemberInput
	if !bindJSON(c, &input) {
		return
	}

	out, err := h.orgs.InviteMember(c.Request.Context(), id, userID, &input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.recordInvitation("sent")

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Invitation sent successfully",
		"invitation": out,
	})
}

// UpdateMember changes a member's role or status.
//
//	@Summary	Update member
//	@Tags		Members
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		id				path		string						true	"Organization ID"
//	@Param		memberId		path		string						true	"Membership ID"
//	@Param		body			body		inbound.UpdateMemberInput	true	"Changes"
//	@Success	200				{object}	map[string]any
//	@Failure	400,403,404		{object}	apperrors.ErrorResponse
//	@Router		/organizations/{id}/members/{memberId} [patch]
func (h *Handler) UpdateMember(c *gin.Context) {
	userID, ok := requireAuth(c)
	if !ok {
		return
	}
	orgID, ok := pathID(c, "id")
	if !ok {
		return
	}
	memberID, ok := pathID(c, "memberId")
	if !ok {
		return
	}

	var input inbound.UpdateMemberInput
	if !bindJSON(c, &input) {
		return
	}

	member, err := h.orgs.UpdateMember(c.Request.Context(), orgID, memberID, userID, &input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.recordMember("updated")

	c.JSON(http.StatusOK, gin.H{
		"message": "Member updated successfully",
		"member":  member,
	})
}

// RemoveMember deletes a membership.
//
//	@Summary	Remove member
//	@Tags		Members
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id			path		string	true	"Organization ID"
//	@Param		memberId	path		string	true	"Membership ID"
//	@Success	200			{object}	map[string]any
//	@Failure	403,404		{object}	apperrors.ErrorResponse
//	@Router		/organizations/{id}/members/{memberId} [delete]
func (h *Handler) RemoveMember(c *gin.Context) {
	userID, ok := requireAuth(c)
	if !ok {
		return
	}
	orgID, ok := pathID(c, "id")
	if !ok {
		return
	}
	memberID, ok := pathID(c, "memberId")
	if !ok {
		return
	}

	if err := h.orgs.RemoveMember(c.Request.Context(), orgID, memberID, userID); err != nil {
		h.handleError(c, err)
		return
	}
	h.recordMember("removed")

	c.JSON(http.StatusOK, gin.H{"message": "Member removed successfully"})
}
