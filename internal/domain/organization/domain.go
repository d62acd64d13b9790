// Package organization implements organization lifecycle and member management.
package organization

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/orghub/server/internal/domain/permission"
	"github.com/orghub/server/internal/model"
	"github.com/orghub/server/internal/port/inbound"
	"github.com/orghub/server/internal/port/outbound"
	"github.com/orghub/server/internal/utils/pagination"
)

// Domain implements inbound.OrganizationDomain.
type Domain struct {
	orgDB        outbound.OrganizationDatabasePort
	memberDB     outbound.MembershipDatabasePort
	invitationDB outbound.InvitationDatabasePort
	auditDB      outbound.AuditLogDatabasePort
	users        outbound.UserDirectoryPort
	notifier     outbound.NotificationPort
	txPort       outbound.TransactionPort
	cfg          *Config
	logger       *zap.Logger
}

// NewDomain creates a new organization domain.
func NewDomain(
	orgDB outbound.OrganizationDatabasePort,
	memberDB outbound.MembershipDatabasePort,
	invitationDB outbound.InvitationDatabasePort,
	auditDB outbound.AuditLogDatabasePort,
	users outbound.UserDirectoryPort,
	notifier outbound.NotificationPort,
	txPort outbound.TransactionPort,
	cfg *Config,
	logger *zap.Logger,
) *Domain {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	cfg.applyDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Domain{
		orgDB:        orgDB,
		memberDB:     memberDB,
		invitationDB: invitationDB,
		auditDB:      auditDB,
		users:        users,
		notifier:     notifier,
		txPort:       txPort,
		cfg:          cfg,
		logger:       logger,
	}
}

// Create creates an organization together with its owner membership.
func (d *Domain) Create(ctx context.Context, userID uuid.UUID, input *inbound.CreateOrganizationInput) (*model.Organization, error) {
	name := strings.TrimSpace(input.Name)
	if !validName(name) {
		return nil, ErrInvalidName
	}
	if err := validateSettings(input.Settings); err != nil {
		return nil, err
	}

	exists, err := d.orgDB.ExistsByName(ctx, name, uuid.Nil)
	if err != nil {
		return nil, fmt.Errorf("check name: %w", err)
	}
	if exists {
		return nil, ErrNameExists
	}

	slug, err := d.uniqueSlug(ctx, name, uuid.Nil)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	org := &model.Organization{
		ID:           uuid.New(),
		Name:         name,
		Slug:         slug,
		Description:  strings.TrimSpace(input.Description),
		Logo:         strings.TrimSpace(input.Logo),
		Status:       model.OrganizationStatusActive,
		OwnerID:      userID,
		Settings:     datatypes.NewJSONType(mergeSettings(d.cfg.DefaultSettings, input.Settings)),
		Subscription: datatypes.NewJSONType(d.cfg.defaultSubscription(now)),
	}

	owner := &model.Membership{
		ID:             uuid.New(),
		UserID:         userID,
		OrganizationID: org.ID,
		Status:         model.MembershipStatusActive,
		JoinedAt:       &now,
		LastAccessAt:   &now,
	}
	owner.AssignRole(permission.RoleOwner)

	err = d.txPort.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := d.orgDB.Create(txCtx, org); err != nil {
			if errors.Is(err, outbound.ErrDuplicate) {
				return ErrOrganizationConflict
			}
			return fmt.Errorf("create organization: %w", err)
		}
		if err := d.memberDB.Create(txCtx, owner); err != nil {
			return fmt.Errorf("create owner membership: %w", err)
		}
		return d.appendAudit(txCtx, org.ID, model.AuditActionOrganizationCreated, userID, map[string]any{
			"organization_name": name,
		})
	})
	if err != nil {
		return nil, err
	}

	d.logger.Info("organization created",
		zap.String("organization_id", org.ID.String()),
		zap.String("slug", org.Slug),
		zap.String("owner_id", userID.String()),
	)

	return org, nil
}

// FindUserOrganizations returns the organizations the user actively belongs to.
func (d *Domain) FindUserOrganizations(ctx context.Context, userID uuid.UUID) ([]*model.Organization, error) {
	memberships, err := d.memberDB.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	if len(memberships) == 0 {
		return []*model.Organization{}, nil
	}

	ids := make([]uuid.UUID, 0, len(memberships))
	for _, m := range memberships {
		ids = append(ids, m.OrganizationID)
	}

	orgs, err := d.orgDB.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load organizations: %w", err)
	}

	byID := make(map[uuid.UUID]*model.Organization, len(orgs))
	for _, org := range orgs {
		byID[org.ID] = org
	}

	// Memberships whose organization no longer exists are skipped.
	result := make([]*model.Organization, 0, len(orgs))
	for _, id := range ids {
		if org, ok := byID[id]; ok {
			result = append(result, org)
		}
	}
	return result, nil
}

// FindOne returns an organization visible to the caller.
func (d *Domain) FindOne(ctx context.Context, id, userID uuid.UUID) (*model.Organization, error) {
	org, err := d.getOrganization(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := d.requireActiveMember(ctx, userID, org.ID); err != nil {
		return nil, err
	}
	return org, nil
}

// Update applies partial changes to an organization.
func (d *Domain) Update(ctx context.Context, id, userID uuid.UUID, input *inbound.UpdateOrganizationInput) (*model.Organization, error) {
	org, err := d.getOrganization(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := d.requireCapability(ctx, userID, org.ID, permission.OrganizationsUpdate, ErrUpdateForbidden); err != nil {
		return nil, err
	}
	if err := validateSettings(input.Settings); err != nil {
		return nil, err
	}

	changes := map[string]any{}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if !validName(name) {
			return nil, ErrInvalidName
		}
		if name != org.Name {
			exists, err := d.orgDB.ExistsByName(ctx, name, org.ID)
			if err != nil {
				return nil, fmt.Errorf("check name: %w", err)
			}
			if exists {
				return nil, ErrNameExists
			}
			slug, err := d.uniqueSlug(ctx, name, org.ID)
			if err != nil {
				return nil, err
			}
			org.Name = name
			org.Slug = slug
			changes["name"] = name
			changes["slug"] = slug
		}
	}

	if input.Description != nil {
		org.Description = strings.TrimSpace(*input.Description)
		changes["description"] = org.Description
	}

	if input.Logo != nil {
		org.Logo = strings.TrimSpace(*input.Logo)
		changes["logo"] = org.Logo
	}

	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, ErrInvalidStatus
		}
		org.Status = *input.Status
		changes["status"] = org.Status
	}

	if input.Settings != nil {
		org.Settings = datatypes.NewJSONType(mergeSettings(org.Settings.Data(), input.Settings))
		changes["settings"] = settingsChanges(input.Settings)
	}

	err = d.txPort.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := d.orgDB.Update(txCtx, org); err != nil {
			switch {
			case errors.Is(err, outbound.ErrDuplicate):
				return ErrOrganizationConflict
			case errors.Is(err, outbound.ErrNotFound):
				return ErrOrganizationNotFound
			}
			return fmt.Errorf("update organization: %w", err)
		}
		return d.appendAudit(txCtx, org.ID, model.AuditActionOrganizationUpdated, userID, map[string]any{
			"changes": changes,
		})
	})
	if err != nil {
		return nil, err
	}

	d.logger.Info("organization updated",
		zap.String("organization_id", org.ID.String()),
		zap.String("user_id", userID.String()),
	)

	return org, nil
}

// Remove deletes an organization and everything scoped to it. Only the owner may do this.
func (d *Domain) Remove(ctx context.Context, id, userID uuid.UUID) error {
	org, err := d.getOrganization(ctx, id)
	if err != nil {
		return err
	}
	if !org.IsOwner(userID) {
		return ErrDeleteForbidden
	}

	err = d.txPort.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := d.memberDB.DeleteByOrganization(txCtx, org.ID); err != nil {
			return fmt.Errorf("delete memberships: %w", err)
		}
		if err := d.invitationDB.DeleteByOrganization(txCtx, org.ID); err != nil {
			return fmt.Errorf("delete invitations: %w", err)
		}
		if err := d.auditDB.DeleteByOrganization(txCtx, org.ID); err != nil {
			return fmt.Errorf("delete audit log: %w", err)
		}
		if err := d.orgDB.Delete(txCtx, org.ID); err != nil {
			if errors.Is(err, outbound.ErrNotFound) {
				return ErrOrganizationNotFound
			}
			return fmt.Errorf("delete organization: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	d.logger.Info("organization deleted",
		zap.String("organization_id", org.ID.String()),
		zap.String("user_id", userID.String()),
	)

	return nil
}

// GetAuditLog returns a page of the organization's audit log, oldest first.
func (d *Domain) GetAuditLog(ctx context.Context, id, userID uuid.UUID, page *pagination.Pagination) (*inbound.AuditLogOutput, error) {
	org, err := d.getOrganization(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := d.requireCapability(ctx, userID, org.ID, permission.SettingsManage, ErrAuditLogForbidden); err != nil {
		return nil, err
	}
	if page == nil {
		page = pagination.New()
	}
	page.Normalize()

	entries, total, err := d.auditDB.List(ctx, org.ID, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("list audit log: %w", err)
	}

	return &inbound.AuditLogOutput{
		Entries:  entries,
		PageInfo: page.Info(total),
	}, nil
}

// --- Helpers ---

func (d *Domain) getOrganization(ctx context.Context, id uuid.UUID) (*model.Organization, error) {
	org, err := d.orgDB.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, outbound.ErrNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("get organization: %w", err)
	}
	return org, nil
}

func (d *Domain) requireActiveMember(ctx context.Context, userID, orgID uuid.UUID) (*model.Membership, error) {
	m, err := d.memberDB.FindActive(ctx, userID, orgID)
	if err != nil {
		if errors.Is(err, outbound.ErrNotFound) {
			return nil, ErrAccessDenied
		}
		return nil, fmt.Errorf("get membership: %w", err)
	}
	return m, nil
}

// requireCapability returns the caller's active membership if it grants capability, otherwise denied.
func (d *Domain) requireCapability(ctx context.Context, userID, orgID uuid.UUID, capability permission.Capability, denied error) (*model.Membership, error) {
	m, err := d.memberDB.FindActive(ctx, userID, orgID)
	if err != nil {
		if errors.Is(err, outbound.ErrNotFound) {
			return nil, denied
		}
		return nil, fmt.Errorf("get membership: %w", err)
	}
	if !m.Capabilities().Allows(capability) {
		return nil, denied
	}
	return m, nil
}

func (d *Domain) appendAudit(ctx context.Context, orgID uuid.UUID, action model.AuditAction, actorID uuid.UUID, metadata map[string]any) error {
	entry := &model.AuditEntry{
		OrganizationID: orgID,
		Action:         action,
		ActorUserID:    actorID,
		Timestamp:      time.Now(),
		Metadata:       datatypes.JSONMap(metadata),
	}
	if err := d.auditDB.Append(ctx, entry); err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}
	return nil
}

// validName rejects blank names and names carrying control characters such as CR/LF.
func validName(name string) bool {
	return name != "" && strings.IndexFunc(name, unicode.IsControl) < 0
}

// Compile-time interface check
var _ inbound.OrganizationDomain = (*Domain)(nil)
