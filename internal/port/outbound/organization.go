package outbound

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/orghub/server/internal/model"
)

// Store-level errors returned by database adapters.
var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a write violates a unique constraint.
	ErrDuplicate = errors.New("duplicate record")
)

// OrganizationDatabasePort defines organization persistence operations.
type OrganizationDatabasePort interface {
	// Create creates a new organization.
	Create(ctx context.Context, org *model.Organization) error

	// FindByID finds an organization by ID.
	FindByID(ctx context.Context, id uuid.UUID) (*model.Organization, error)

	// FindByIDs returns the organizations that exist among ids, in no particular order.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Organization, error)

	// ExistsByName checks whether a name is taken by an organization other than excludeID.
	ExistsByName(ctx context.Context, name string, excludeID uuid.UUID) (bool, error)

	// ExistsBySlug checks whether a slug is taken by an organization other than excludeID.
	ExistsBySlug(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)

	// Update saves all fields of an organization.
	Update(ctx context.Context, org *model.Organization) error

	// Delete deletes an organization.
	Delete(ctx context.Context, id uuid.UUID) error
}

// MembershipDatabasePort defines membership persistence operations.
type MembershipDatabasePort interface {
	// Create creates a new membership.
	Create(ctx context.Context, m *model.Membership) error

	// FindByID finds a membership by ID within an organization.
	FindByID(ctx context.Context, orgID, id uuid.UUID) (*model.Membership, error)

	// FindByUserAndOrganization finds the membership of a user in an organization regardless of status.
	FindByUserAndOrganization(ctx context.Context, userID, orgID uuid.UUID) (*model.Membership, error)

	// FindActive finds the active membership of a user in an organization.
	FindActive(ctx context.Context, userID, orgID uuid.UUID) (*model.Membership, error)

	// ListByOrganization lists all memberships of an organization, newest first.
	ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]*model.Membership, error)

	// ListActiveByUser lists the active memberships of a user.
	ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]*model.Membership, error)

	// CountByStatus counts memberships of an organization with any of the given statuses.
	CountByStatus(ctx context.Context, orgID uuid.UUID, statuses ...model.MembershipStatus) (int64, error)

	// Update saves all fields of a membership.
	Update(ctx context.Context, m *model.Membership) error

	// Delete deletes a membership.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByOrganization deletes all memberships of an organization.
	DeleteByOrganization(ctx context.Context, orgID uuid.UUID) error
}

// InvitationDatabasePort defines invitation persistence operations.
type InvitationDatabasePort interface {
	// Create creates a new invitation.
	Create(ctx context.Context, inv *model.Invitation) error

	// FindByID finds an invitation by ID.
	FindByID(ctx context.Context, id uuid.UUID) (*model.Invitation, error)

	// FindPendingByToken finds a pending invitation by token.
	FindPendingByToken(ctx context.Context, token string) (*model.Invitation, error)

	// FindPendingByEmail finds the pending invitation for an email in an organization.
	FindPendingByEmail(ctx context.Context, orgID uuid.UUID, email string) (*model.Invitation, error)

	// ListByOrganization lists invitations with any of the given statuses, newest first.
	ListByOrganization(ctx context.Context, orgID uuid.UUID, statuses ...model.InvitationStatus) ([]*model.Invitation, error)

	// CountPending counts pending invitations of an organization that are still valid at now.
	CountPending(ctx context.Context, orgID uuid.UUID, now time.Time) (int64, error)

	// Transition persists inv's status and acceptance fields only if the stored
	// status still equals from. Returns ErrNotFound when it does not.
	Transition(ctx context.Context, inv *model.Invitation, from model.InvitationStatus) error

	// DeleteByOrganization deletes all invitations of an organization.
	DeleteByOrganization(ctx context.Context, orgID uuid.UUID) error
}

// AuditLogDatabasePort defines append-only audit log operations.
type AuditLogDatabasePort interface {
	// Append appends an entry. The entry ID is assigned by the store.
	Append(ctx context.Context, entry *model.AuditEntry) error

	// List lists entries of an organization oldest first, with pagination.
	List(ctx context.Context, orgID uuid.UUID, limit, offset int) ([]*model.AuditEntry, int64, error)

	// DeleteByOrganization deletes all entries of an organization.
	DeleteByOrganization(ctx context.Context, orgID uuid.UUID) error
}

// UserDirectoryPort resolves users owned by the identity service.
type UserDirectoryPort interface {
	// FindByEmail returns (nil, nil) when no user has the email.
	// A non-nil error always means the lookup itself failed.
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// FindByID returns (nil, nil) when the user does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)

	// FindByIDs returns the users that exist among ids.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.User, error)
}

// TransactionPort runs a function inside a database transaction.
// Adapters called with the context passed to fn join the transaction.
type TransactionPort interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
