package orghttp

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/orghub/server/internal/port/inbound"
	apperrors "github.com/orghub/server/internal/shared/errors"
	"github.com/orghub/server/internal/shared/logger"
	"github.com/orghub/server/internal/utils/metrics"
	"github.com/orghub/server/internal/utils/middleware"
	"github.com/orghub/server/internal/utils/requestctx"
)

// Handler serves the /organizations API.
type Handler struct {
	orgs        inbound.OrganizationDomain
	invitations inbound.InvitationDomain
	metrics     *metrics.Metrics
	logger      *zap.Logger
	debug       bool
}

// Options configure a Handler. All fields are optional.
type Options struct {
	Metrics *metrics.Metrics
	Logger  *zap.Logger
	// Debug includes the underlying error in internal error responses.
	Debug bool
}

// NewHandler creates a new organization handler.
func NewHandler(orgs inbound.OrganizationDomain, invitations inbound.InvitationDomain, opts Options) *Handler {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Handler{
		orgs:        orgs,
		invitations: invitations,
		metrics:     opts.Metrics,
		logger:      opts.Logger,
		debug:       opts.Debug,
	}
}

// Middlewares are optional route middlewares. Nil entries are skipped.
type Middlewares struct {
	Auth        gin.HandlerFunc
	RateLimit   gin.HandlerFunc // invitation endpoints
	Idempotency gin.HandlerFunc // create and invite
}

// RegisterRoutes registers organization, member and invitation routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, mw Middlewares) {
	orgs := r.Group("/organizations", with(nil, mw.Auth)...)
	{
		orgs.POST("", with(h.CreateOrganization, mw.Idempotency)...)
		orgs.GET("", h.ListOrganizations)

		// Static segments take priority over :id.
		orgs.GET("/invitations/:token", with(h.GetInvitation, mw.RateLimit)...)
		orgs.POST("/invitations/accept", with(h.AcceptInvitation, mw.RateLimit)...)
		orgs.DELETE("/invitations/:invitationId", h.CancelInvitation)

		orgs.GET("/:id", h.GetOrganization)
		orgs.PATCH("/:id", h.UpdateOrganization)
		orgs.DELETE("/:id", h.DeleteOrganization)
		orgs.GET("/:id/audit-log", h.GetAuditLog)

		orgs.GET("/:id/members", h.ListMembers)
		orgs.POST("/:id/invite", with(h.InviteMember, mw.RateLimit, mw.Idempotency)...)
		orgs.PATCH("/:id/members/:memberId", h.UpdateMember)
		orgs.DELETE("/:id/members/:memberId", h.RemoveMember)

		orgs.GET("/:id/invitations", h.ListOrganizationInvitations)
	}
}

// with returns the non-nil middlewares followed by handler, if any.
func with(handler gin.HandlerFunc, middlewares ...gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(middlewares)+1)
	for _, m := range middlewares {
		if m != nil {
			out = append(out, m)
		}
	}
	if handler != nil {
		out = append(out, handler)
	}
	return out
}

// requireAuth returns the caller's user ID or writes 401.
func requireAuth(c *gin.Context) (uuid.UUID, bool) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		abort(c, apperrors.Unauthorized(""))
		return uuid.Nil, false
	}
	return userID, true
}

// pathID parses a UUID path parameter or writes 400.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		abort(c, apperrors.NewBadRequest("INVALID_ID", "invalid "+name))
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON binds the request body or writes 400.
func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		abort(c, apperrors.NewBadRequest("VALIDATION_ERROR", err.Error()))
		return false
	}
	return true
}

// handleError writes err as an error envelope, logging internal failures.
func (h *Handler) handleError(c *gin.Context, err error) {
	appErr := apperrors.From(err)
	if appErr.StatusCode >= http.StatusInternalServerError {
		fields := []zap.Field{zap.String("path", c.FullPath()), zap.Error(err)}
		if actor, ok := requestctx.Actor(c.Request.Context()); ok {
			fields = append(fields, zap.String("user_id", actor.String()))
		}
		logger.FromContext(c.Request.Context(), h.logger).Error("request failed", fields...)
		if h.debug {
			appErr = apperrors.Internal(err.Error(), err)
		}
	}
	_ = c.Error(err)
	abort(c, appErr)
}

func (h *Handler) recordInvitation(event string) {
	if h.metrics != nil {
		h.metrics.RecordInvitationEvent(event)
	}
}

func (h *Handler) recordMember(event string) {
	if h.metrics != nil {
		h.metrics.RecordMemberEvent(event)
	}
}

func abort(c *gin.Context, appErr *apperrors.AppError) {
	c.AbortWithStatusJSON(appErr.StatusCode, appErr.ToResponse())
}
