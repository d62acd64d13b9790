package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/orghub/server/internal/domain/permission"
)

// OrganizationStatus represents the lifecycle state of an organization.
type OrganizationStatus string

const (
	OrganizationStatusActive    OrganizationStatus = "active"
	OrganizationStatusInactive  OrganizationStatus = "inactive"
	OrganizationStatusSuspended OrganizationStatus = "suspended"
)

// IsValid checks if the status is valid.
func (s OrganizationStatus) IsValid() bool {
	switch s {
	case OrganizationStatusActive, OrganizationStatusInactive, OrganizationStatusSuspended:
		return true
	default:
		return false
	}
}

// OrganizationFeatures holds feature flags.
type OrganizationFeatures struct {
	Analytics         bool `json:"analytics"`
	Scheduling        bool `json:"scheduling"`
	TeamCollaboration bool `json:"team_collaboration"`
	CustomBranding    bool `json:"custom_branding"`
	APIAccess         bool `json:"api_access"`
}

// OrganizationLimits holds numeric quotas.
type OrganizationLimits struct {
	MaxUsers          int `json:"max_users"`
	MaxBrands         int `json:"max_brands"`
	MaxPostsPerMonth  int `json:"max_posts_per_month"`
	MaxSocialAccounts int `json:"max_social_accounts"`
}

// OrganizationSettings is stored as a JSON document on the organization row.
type OrganizationSettings struct {
	Timezone   string               `json:"timezone"`
	DateFormat string               `json:"date_format"`
	Language   string               `json:"language"`
	Currency   string               `json:"currency"`
	Features   OrganizationFeatures `json:"features"`
	Limits     OrganizationLimits   `json:"limits"`
}

// SubscriptionStatus represents the billing state of a subscription.
type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusInactive  SubscriptionStatus = "inactive"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
	SubscriptionStatusPastDue   SubscriptionStatus = "past_due"
)

// BillingCycle is the subscription renewal period.
type BillingCycle string

const (
	BillingCycleMonthly BillingCycle = "monthly"
	BillingCycleYearly  BillingCycle = "yearly"
)

// Subscription describes the plan an organization is on.
type Subscription struct {
	PlanID       string             `json:"plan_id"`
	PlanName     string             `json:"plan_name"`
	Status       SubscriptionStatus `json:"status"`
	StartDate    time.Time          `json:"start_date"`
	EndDate      *time.Time         `json:"end_date,omitempty"`
	BillingCycle BillingCycle       `json:"billing_cycle"`
	Amount       float64            `json:"amount"`
	Currency     string             `json:"currency"`
	AutoRenew    bool               `json:"auto_renew"`
	TrialEndsAt  *time.Time         `json:"trial_ends_at,omitempty"`
	Metadata     map[string]any     `json:"metadata"`
}

// Organization is a tenant that users join through memberships.
type Organization struct {
	ID           uuid.UUID                                `json:"id" gorm:"type:uuid;primaryKey"`
	Name         string                                   `json:"name" gorm:"uniqueIndex;not null"`
	Slug         string                                   `json:"slug" gorm:"uniqueIndex;not null"`
	Description  string                                   `json:"description,omitempty"`
	Logo         string                                   `json:"logo,omitempty"`
	Status       OrganizationStatus                       `json:"status" gorm:"not null;default:active;index"`
	OwnerID      uuid.UUID                                `json:"owner_id" gorm:"type:uuid;not null;index"`
	Settings     datatypes.JSONType[OrganizationSettings] `json:"settings" gorm:"not null"`
	Subscription datatypes.JSONType[Subscription]         `json:"subscription" gorm:"not null"`
	CreatedAt    time.Time                                `json:"created_at"`
	UpdatedAt    time.Time                                `json:"updated_at"`
}

// TableName returns the database table name.
func (Organization) TableName() string {
	return "organizations"
}

// IsOwner returns true if userID created the organization.
func (o *Organization) IsOwner(userID uuid.UUID) bool {
	return o.OwnerID == userID
}

// MembershipStatus represents the state of a membership.
type MembershipStatus string

const (
	MembershipStatusActive    MembershipStatus = "active"
	MembershipStatusInactive  MembershipStatus = "inactive"
	MembershipStatusPending   MembershipStatus = "pending"
	MembershipStatusSuspended MembershipStatus = "suspended"
)

// IsValid checks if the status is valid.
func (s MembershipStatus) IsValid() bool {
	switch s {
	case MembershipStatusActive, MembershipStatusInactive, MembershipStatusPending, MembershipStatusSuspended:
		return true
	default:
		return false
	}
}

// Membership grants a user a role inside one organization.
type Membership struct {
	ID             uuid.UUID                                   `json:"id" gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID                                   `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_membership_user_org,priority:1;index"`
	OrganizationID uuid.UUID                                   `json:"organization_id" gorm:"type:uuid;not null;uniqueIndex:idx_membership_user_org,priority:2;index"`
	Role           permission.Role                             `json:"role" gorm:"not null;index"`
	Status         MembershipStatus                            `json:"status" gorm:"not null;default:active;index"`
	Permissions    datatypes.JSONType[permission.Capabilities] `json:"permissions" gorm:"not null"`
	InvitedBy      *uuid.UUID                                  `json:"invited_by,omitempty" gorm:"type:uuid"`
	InvitedAt      *time.Time                                  `json:"invited_at,omitempty"`
	JoinedAt       *time.Time                                  `json:"joined_at,omitempty"`
	LastAccessAt   *time.Time                                  `json:"last_access_at,omitempty"`
	CreatedAt      time.Time                                   `json:"created_at"`
	UpdatedAt      time.Time                                   `json:"updated_at"`
}

// TableName returns the database table name.
func (Membership) TableName() string {
	return "memberships"
}

// AssignRole sets the role and recomputes the permission snapshot from it.
func (m *Membership) AssignRole(role permission.Role) {
	m.Role = role
	m.Permissions = datatypes.NewJSONType(permission.CapabilitiesOf(role))
}

// Capabilities returns the stored permission snapshot.
func (m *Membership) Capabilities() permission.Capabilities {
	return m.Permissions.Data()
}

// IsActive returns true if the membership is active.
func (m *Membership) IsActive() bool {
	return m.Status == MembershipStatusActive
}

// IsOwner returns true for the organization owner's membership.
func (m *Membership) IsOwner() bool {
	return m.Role == permission.RoleOwner
}

// InvitationStatus represents the status of an invitation.
type InvitationStatus string

const (
	InvitationStatusPending   InvitationStatus = "pending"
	InvitationStatusAccepted  InvitationStatus = "accepted"
	InvitationStatusExpired   InvitationStatus = "expired"
	InvitationStatusCancelled InvitationStatus = "cancelled"
)

// Invitation offers an email address a role in an organization.
type Invitation struct {
	ID             uuid.UUID        `json:"id" gorm:"type:uuid;primaryKey"`
	Email          string           `json:"email" gorm:"not null;index:idx_invitation_email_org,priority:1;uniqueIndex:idx_invitation_pending,priority:1,where:status = 'pending'"`
	OrganizationID uuid.UUID        `json:"organization_id" gorm:"type:uuid;not null;index:idx_invitation_email_org,priority:2;uniqueIndex:idx_invitation_pending,priority:2,where:status = 'pending'"`
	Role           permission.Role  `json:"role" gorm:"not null"`
	Status         InvitationStatus `json:"status" gorm:"not null;default:pending;index"`
	InvitedBy      uuid.UUID        `json:"invited_by" gorm:"type:uuid;not null"`
	Token          string           `json:"-" gorm:"uniqueIndex;not null"`
	ExpiresAt      time.Time        `json:"expires_at" gorm:"not null;index"`
	Message        string           `json:"message,omitempty"`
	AcceptedAt     *time.Time       `json:"accepted_at,omitempty"`
	AcceptedBy     *uuid.UUID       `json:"accepted_by,omitempty" gorm:"type:uuid"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// TableName returns the database table name.
func (Invitation) TableName() string {
	return "invitations"
}

// IsPending returns true if the invitation is still pending.
func (i *Invitation) IsPending() bool {
	return i.Status == InvitationStatusPending
}

// IsExpiredAt returns true if the invitation deadline has passed at now.
func (i *Invitation) IsExpiredAt(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

// NormalizeEmail lowercases and trims an email address for comparison and storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// AuditAction names a recorded organization mutation.
type AuditAction string

const (
	AuditActionOrganizationCreated AuditAction = "organization_created"
	AuditActionOrganizationUpdated AuditAction = "organization_updated"
	AuditActionMemberInvited       AuditAction = "member_invited"
	AuditActionMemberUpdated       AuditAction = "member_updated"
	AuditActionMemberRemoved       AuditAction = "member_removed"
)

// AuditEntry is one append-only audit record. ID is monotonic and breaks timestamp ties.
type AuditEntry struct {
	ID             uint64            `json:"id" gorm:"primaryKey;autoIncrement"`
	OrganizationID uuid.UUID         `json:"organization_id" gorm:"type:uuid;not null;index:idx_audit_org_time,priority:1"`
	Action         AuditAction       `json:"action" gorm:"not null"`
	ActorUserID    uuid.UUID         `json:"actor_user_id" gorm:"type:uuid;not null"`
	Timestamp      time.Time         `json:"timestamp" gorm:"not null;index:idx_audit_org_time,priority:2"`
	Metadata       datatypes.JSONMap `json:"metadata"`
}

// TableName returns the database table name.
func (AuditEntry) TableName() string {
	return "organization_audit_entries"
}

// UserStatus represents the status of a user account.
type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusInactive  UserStatus = "inactive"
	UserStatusSuspended UserStatus = "suspended"
)

// User is the directory record consulted for invitations and member listings.
type User struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Email     string     `json:"email" gorm:"uniqueIndex;not null"`
	Name      string     `json:"name" gorm:"not null"`
	Avatar    string     `json:"avatar,omitempty"`
	Status    UserStatus `json:"status" gorm:"not null;default:active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TableName returns the database table name.
func (User) TableName() string {
	return "users"
}
