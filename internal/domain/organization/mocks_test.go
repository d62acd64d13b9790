package organization

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/orghub/server/internal/model"
)

type mockOrgDB struct {
	mock.Mock
}

func (m *mockOrgDB) Create(ctx context.Context, org *model.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

func (m *mockOrgDB) FindByID(ctx context.Context, id uuid.UUID) (*model.Organization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Organization), args.Error(1)
}

func (m *mockOrgDB) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Organization, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Organization), args.Error(1)
}

func (m *mockOrgDB) ExistsByName(ctx context.Context, name string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockOrgDB) ExistsBySlug(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockOrgDB) Update(ctx context.Context, org *model.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

func (m *mockOrgDB) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockMemberDB struct {
	mock.Mock
}

func (m *mockMemberDB) Create(ctx context.Context, member *model.Membership) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *mockMemberDB) FindByID(ctx context.Context, orgID, id uuid.UUID) (*model.Membership, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Membership), args.Error(1)
}

func (m *mockMemberDB) FindByUserAndOrganization(ctx context.Context, userID, orgID uuid.UUID) (*model.Membership, error) {
	args := m.Called(ctx, userID, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Membership), args.Error(1)
}

func (m *mockMemberDB) FindActive(ctx context.Context, userID, orgID uuid.UUID) (*model.Membership, error) {
	args := m.Called(ctx, userID, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Membership), args.Error(1)
}

func (m *mockMemberDB) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]*model.Membership, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Membership), args.Error(1)
}

func (m *mockMemberDB) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]*model.Membership, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Membership), args.Error(1)
}

func (m *mockMemberDB) CountByStatus(ctx context.Context, orgID uuid.UUID, statuses ...model.MembershipStatus) (int64, error) {
	args := m.Called(ctx, orgID, statuses)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockMemberDB) Update(ctx context.Context, member *model.Membership) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *mockMemberDB) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockMemberDB) DeleteByOrganization(ctx context.Context, orgID uuid.UUID) error {
	args := m.Called(ctx, orgID)
	return args.Error(0)
}

type mockInvitationDB struct {
	mock.Mock
}

func (m *mockInvitationDB) Create(ctx context.Context, inv *model.Invitation) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *mockInvitationDB) FindByID(ctx context.Context, id uuid.UUID) (*model.Invitation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Invitation), args.Error(1)
}

func (m *mockInvitationDB) FindPendingByToken(ctx context.Context, token string) (*model.Invitation, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Invitation), args.Error(1)
}

func (m *mockInvitationDB) FindPendingByEmail(ctx context.Context, orgID uuid.UUID, email string) (*model.Invitation, error) {
	args := m.Called(ctx, orgID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Invitation), args.Error(1)
}

func (m *mockInvitationDB) ListByOrganization(ctx context.Context, orgID uuid.UUID, statuses ...model.InvitationStatus) ([]*model.Invitation, error) {
	args := m.Called(ctx, orgID, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Invitation), args.Error(1)
}

func (m *mockInvitationDB) CountPending(ctx context.Context, orgID uuid.UUID, now time.Time) (int64, error) {
	args := m.Called(ctx, orgID, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockInvitationDB) Transition(ctx context.Context, inv *model.Invitation, from model.InvitationStatus) error {
	args := m.Called(ctx, inv, from)
	return args.Error(0)
}

func (m *mockInvitationDB) DeleteByOrganization(ctx context.Context, orgID uuid.UUID) error {
	args := m.Called(ctx, orgID)
	return args.Error(0)
}

type mockAuditDB struct {
	mock.Mock
}

func (m *mockAuditDB) Append(ctx context.Context, entry *model.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *mockAuditDB) List(ctx context.Context, orgID uuid.UUID, limit, offset int) ([]*model.AuditEntry, int64, error) {
	args := m.Called(ctx, orgID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*model.AuditEntry), args.Get(1).(int64), args.Error(2)
}

func (m *mockAuditDB) DeleteByOrganization(ctx context.Context, orgID uuid.UUID) error {
	args := m.Called(ctx, orgID)
	return args.Error(0)
}

type mockUsers struct {
	mock.Mock
}

func (m *mockUsers) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUsers) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUsers) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.User), args.Error(1)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) SendInvitation(ctx context.Context, email, orgName, inviterName, token, message string) error {
	args := m.Called(ctx, email, orgName, inviterName, token, message)
	return args.Error(0)
}

func (m *mockNotifier) SendWelcome(ctx context.Context, email, userName, orgName string) error {
	args := m.Called(ctx, email, userName, orgName)
	return args.Error(0)
}

type mockTransaction struct{}

func (m *mockTransaction) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type testDeps struct {
	orgDB        *mockOrgDB
	memberDB     *mockMemberDB
	invitationDB *mockInvitationDB
	auditDB      *mockAuditDB
	users        *mockUsers
	notifier     *mockNotifier
}

func setupDomain() (*Domain, *testDeps) {
	deps := &testDeps{
		orgDB:        new(mockOrgDB),
		memberDB:     new(mockMemberDB),
		invitationDB: new(mockInvitationDB),
		auditDB:      new(mockAuditDB),
		users:        new(mockUsers),
		notifier:     new(mockNotifier),
	}

	domain := NewDomain(
		deps.orgDB,
		deps.memberDB,
		deps.invitationDB,
		deps.auditDB,
		deps.users,
		deps.notifier,
		&mockTransaction{},
		DefaultConfig(),
		nil,
	)

	return domain, deps
}
