package inbound

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/orghub/server/internal/domain/permission"
	"github.com/orghub/server/internal/model"
	"github.com/orghub/server/internal/utils/pagination"
)

// --- Request/Response Types ---

// SettingsInput carries settings overrides. Each non-nil top-level key replaces the stored value.
type SettingsInput struct {
	Timezone   *string                     `json:"timezone" binding:"omitempty,max=64"`
	DateFormat *string                     `json:"date_format" binding:"omitempty,max=32"`
	Language   *string                     `json:"language" binding:"omitempty,max=16"`
	Currency   *string                     `json:"currency" binding:"omitempty,len=3"`
	Features   *model.OrganizationFeatures `json:"features"`
	Limits     *model.OrganizationLimits   `json:"limits"`
}

// CreateOrganizationInput represents a request to create an organization.
type CreateOrganizationInput struct {
	Name        string         `json:"name" binding:"required,min=2,max=100"`
	Description string         `json:"description" binding:"max=500"`
	Logo        string         `json:"logo" binding:"omitempty,url"`
	Settings    *SettingsInput `json:"settings"`
}

// UpdateOrganizationInput represents a request to update an organization.
type UpdateOrganizationInput struct {
	Name        *string                   `json:"name" binding:"omitempty,min=2,max=100"`
	Description *string                   `json:"description" binding:"omitempty,max=500"`
	Logo        *string                   `json:"logo" binding:"omitempty,url"`
	Status      *model.OrganizationStatus `json:"status"`
	Settings    *SettingsInput            `json:"settings"`
}

// InviteMemberInput represents a request to invite someone by email.
type InviteMemberInput struct {
	Email   string          `json:"email" binding:"required,email"`
	Role    permission.Role `json:"role" binding:"required"`
	Message string          `json:"message" binding:"max=1000"`
}

// UpdateMemberInput represents a request to change a member's role or status.
type UpdateMemberInput struct {
	Role   *permission.Role        `json:"role"`
	Status *model.MembershipStatus `json:"status"`
}

// AcceptInvitationInput represents a request to accept an invitation.
type AcceptInvitationInput struct {
	Token string `json:"token" binding:"required"`
}

// UserSummary is the public part of a user record.
type UserSummary struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Avatar string    `json:"avatar,omitempty"`
}

// OrganizationSummary is the public part of an organization shown to invitees.
type OrganizationSummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Logo        string    `json:"logo,omitempty"`
}

// MemberOutput represents a membership in API responses.
type MemberOutput struct {
	ID             uuid.UUID               `json:"id"`
	UserID         uuid.UUID               `json:"user_id"`
	OrganizationID uuid.UUID               `json:"organization_id"`
	Role           permission.Role         `json:"role"`
	Status         model.MembershipStatus  `json:"status"`
	Permissions    permission.Capabilities `json:"permissions"`
	User           *UserSummary            `json:"user,omitempty"`
	InvitedBy      *UserSummary            `json:"invited_by,omitempty"`
	InvitedAt      *time.Time              `json:"invited_at,omitempty"`
	JoinedAt       *time.Time              `json:"joined_at,omitempty"`
	LastAccessAt   *time.Time              `json:"last_access_at,omitempty"`
	CreatedAt      time.Time               `json:"created_at"`
	UpdatedAt      time.Time               `json:"updated_at"`
}

// InvitationOutput represents an invitation in API responses.
type InvitationOutput struct {
	ID             uuid.UUID              `json:"id"`
	Email          string                 `json:"email"`
	OrganizationID uuid.UUID              `json:"organization_id"`
	Organization   *OrganizationSummary   `json:"organization,omitempty"`
	Role           permission.Role        `json:"role"`
	Status         model.InvitationStatus `json:"status"`
	InvitedBy      *UserSummary           `json:"invited_by,omitempty"`
	Message        string                 `json:"message,omitempty"`
	ExpiresAt      time.Time              `json:"expires_at"`
	AcceptedAt     *time.Time             `json:"accepted_at,omitempty"`
	AcceptedBy     *uuid.UUID             `json:"accepted_by,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
}

// InviteMemberOutput is returned to the inviter.
type InviteMemberOutput struct {
	InvitationID    uuid.UUID       `json:"invitation_id"`
	Email           string          `json:"email"`
	Role            permission.Role `json:"role"`
	InvitationToken string          `json:"invitation_token"`
	ExpiresAt       time.Time       `json:"expires_at"`
	EmailSent       bool            `json:"email_sent"`
}

// AuditLogOutput is one page of an organization's audit log.
type AuditLogOutput struct {
	Entries  []*model.AuditEntry `json:"entries"`
	PageInfo pagination.PageInfo `json:"page_info"`
}

// --- Domain Interfaces ---

// OrganizationDomain defines organization and member management operations.
type OrganizationDomain interface {
	Create(ctx context.Context, userID uuid.UUID, input *CreateOrganizationInput) (*model.Organization, error)
	FindUserOrganizations(ctx context.Context, userID uuid.UUID) ([]*model.Organization, error)
	FindOne(ctx context.Context, id, userID uuid.UUID) (*model.Organization, error)
	Update(ctx context.Context, id, userID uuid.UUID, input *UpdateOrganizationInput) (*model.Organization, error)
	Remove(ctx context.Context, id, userID uuid.UUID) error
	GetMembers(ctx context.Context, id, userID uuid.UUID) ([]*MemberOutput, error)
	InviteMember(ctx context.Context, id, userID uuid.UUID, input *InviteMemberInput) (*InviteMemberOutput, error)
	UpdateMember(ctx context.Context, orgID, memberID, userID uuid.UUID, input *UpdateMemberInput) (*MemberOutput, error)
	RemoveMember(ctx context.Context, orgID, memberID, userID uuid.UUID) error
	GetAuditLog(ctx context.Context, id, userID uuid.UUID, page *pagination.Pagination) (*AuditLogOutput, error)
}

// InvitationDomain defines invitation lifecycle operations.
type InvitationDomain interface {
	AcceptInvitation(ctx context.Context, token string, userID uuid.UUID) (*MemberOutput, error)
	CancelInvitation(ctx context.Context, invitationID, userID uuid.UUID) error
	GetInvitationByToken(ctx context.Context, token string) (*InvitationOutput, error)
	GetOrganizationInvitations(ctx context.Context, orgID, userID uuid.UUID) ([]*InvitationOutput, error)
}

// --- HTTP Ports ---

// OrganizationHttpPort defines organization HTTP handlers.
type OrganizationHttpPort interface {
	CreateOrganization(c *gin.Context)
	ListOrganizations(c *gin.Context)
	GetOrganization(c *gin.Context)
	UpdateOrganization(c *gin.Context)
	DeleteOrganization(c *gin.Context)
	GetAuditLog(c *gin.Context)
}

// MemberHttpPort defines member HTTP handlers.
type MemberHttpPort interface {
	ListMembers(c *gin.Context)
	InviteMember(c *gin.Context)
	UpdateMember(c *gin.Context)
	RemoveMember(c *gin.Context)
}

// InvitationHttpPort defines invitation HTTP handlers.
type InvitationHttpPort interface {
	GetInvitation(c *gin.Context)
	AcceptInvitation(c *gin.Context)
	CancelInvitation(c *gin.Context)
	ListOrganizationInvitations(c *gin.Context)
}

// --- Output Builders ---

// NewUserSummary returns nil for a nil user.
func NewUserSummary(u *model.User) *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Avatar: u.Avatar,
	}
}

// NewOrganizationSummary returns nil for a nil organization.
func NewOrganizationSummary(org *model.Organization) *OrganizationSummary {
	if org == nil {
		return nil
	}
	return &OrganizationSummary{
		ID:          org.ID,
		Name:        org.Name,
		Description: org.Description,
		Logo:        org.Logo,
	}
}

// NewMemberOutput converts a membership. users may be nil or partial.
func NewMemberOutput(m *model.Membership, users map[uuid.UUID]*model.User) *MemberOutput {
	out := &MemberOutput{
		ID:             m.ID,
		UserID:         m.UserID,
		OrganizationID: m.OrganizationID,
		Role:           m.Role,
		Status:         m.Status,
		Permissions:    m.Capabilities(),
		User:           NewUserSummary(users[m.UserID]),
		InvitedAt:      m.InvitedAt,
		JoinedAt:       m.JoinedAt,
		LastAccessAt:   m.LastAccessAt,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
	if m.InvitedBy != nil {
		out.InvitedBy = NewUserSummary(users[*m.InvitedBy])
	}
	return out
}

// NewInvitationOutput converts an invitation. org and users may be nil.
func NewInvitationOutput(inv *model.Invitation, org *model.Organization, users map[uuid.UUID]*model.User) *InvitationOutput {
	return &InvitationOutput{
		ID:             inv.ID,
		Email:          inv.Email,
		OrganizationID: inv.OrganizationID,
		Organization:   NewOrganizationSummary(org),
		Role:           inv.Role,
		Status:         inv.Status,
		InvitedBy:      NewUserSummary(users[inv.InvitedBy]),
		Message:        inv.Message,
		ExpiresAt:      inv.ExpiresAt,
		AcceptedAt:     inv.AcceptedAt,
		AcceptedBy:     inv.AcceptedBy,
		CreatedAt:      inv.CreatedAt,
	}
}
