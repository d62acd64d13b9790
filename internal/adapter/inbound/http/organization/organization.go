package orghttp

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orghub/server/internal/port/inbound"
	"github.com/orghub/server/internal/utils/pagination"
)

// CreateOrganization creates an organization owned by the caller.
//
//	@Summary	Create organization
//	@Tags		Organizations
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		inbound.CreateOrganizationInput	true	"Organization"
//	@Success	201		{object}	map[string]any
//	@Failure	400,409	{object}	apperrors.ErrorResponse
//	@Router		/organizations [post]
func (h *Handler) CreateOrganization(c *gin.Context) {
	userID, ok := requireAuth(c)
	if !ok {
		return
	}

	var input inbound.CreateOrganizationInput
	if !bindJSON(c, &input) {
		return
	}

	org, err := h.orgs.Create(c.Request.Context(), userID, &input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	if h.metrics != nil {
		h.metrics.RecordOrganizationCreated()
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Organization created successfully",
		"organization": org,
	})
}

// ListOrganizations lists the caller's active organizations.
//
//	@Summary	List my organizations
//	@Tags		Organizations
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	map[string]any
//	@Router		/organizations [get]
func (h *Handler) ListOrganizations(c *gin.Context) {
	userID, ok := requireAuth(c)
	if !ok {
		return
	}

	orgs, err := h.orgs.FindUserOrganizations(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Organizations retrieved successfully",
		"organizations": orgs,
		"count":         len(orgs),
	})
}

// GetOrganization returns one organization.
//
//	@Summary	Get organization
//	@Tags		Organizations
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id			path		string	true	"Organization ID"
//	@Success	200			{object}	map[string]any
//	@Failure	403,404		{object}	apperrors.ErrorResponse
//	@Router		/organizations/{id} [get]
func (h *Handler) GetOrganization(c *gin.Context) {
	userID, ok := requireAuth(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	org, err := h.orgs.FindOne(c.Request.Context(), id, userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Organization retrieved successfully",
		"organization": org,
	})
}

// UpdateOrganization applies a partial update.
//
//	@Summary	Update organization
//	@Tags		Organizations
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		id				path		string							true	"Organization ID"
//	@Param		body			body		inbound.UpdateOrganizationInput	true	"Changes"
//	@Success	200				{object}	map[string]any
//	@Failure	400,403,404,409	{object}	apperrors.ErrorResponse
//	@Router		/organizations/{id} [patch]
func (h *Handler) UpdateOrganization(c *gin.Context) {
	userID, ok := requireAuth(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input inbound.UpdateOrganizationInput
	if !bindJSON(c, &input) {
		return
	}

	org, err := h.orgs.Update(c.Request.Context(), id, userID, &input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Organization updated successfully",
		"organization": org,
	})
}

// DeleteOrganization deletes an organization and everything it owns.
//
//	@Summary	Delete organization
//	@Tags		Organizations
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id		path		string	true	"Organization ID"
//	@Success	200		{object}	map[string]any
//	@Failure	403,404	{object}	apperrors.ErrorResponse
//	@Router		/organizations/{id} [delete]
func (h *Handler) DeleteOrganization(c *gin.Context) {
	userID, ok := requireAuth(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.orgs.Remove(c.Request.Context(), id, userID); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Organization deleted successfully"})
}

// GetAuditLog returns one page of the audit log, oldest first.
//
//	@Summary	Get audit log
//	@Tags		Organizations
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id			path		string	true	"Organization ID"
//	@Param		page		query		int		false	"Page"
//	@Param		page_size	query		int		false	"Page size"
//	@Success	200			{object}	map[string]any
//	@Failure	403,404		{object}	apperrors.ErrorResponse
//	@Router		/organizations/{id}/audit-log [get]
func (h *Handler) GetAuditLog(c *gin.Context) {
	userID, ok := requireAuth(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	page := pagination.New()
	if err := c.ShouldBindQuery(page); err != nil {
		h.handleError(c, badQuery(err))
		return
	}

	out, err := h.orgs.GetAuditLog(c.Request.Context(), id, userID, page.Normalize())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Audit log retrieved successfully",
		"entries":   out.Entries,
		"page_info": out.PageInfo,
		"count":     len(out.Entries),
	})
}
