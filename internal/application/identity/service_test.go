package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/lucamadonia/dpp-backend/internal/domain/identity"
	"github.com/lucamadonia/dpp-backend/internal/domain/shared"
	"github.com/lucamadonia/dpp-backend/internal/infrastructure/auth"
	"github.com/lucamadonia/dpp-backend/internal/infrastructure/config"
)

// MockTenantRepository is a mock implementation of identity.TenantRepository
type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindByCode(ctx context.Context, code string) (*identity.Tenant, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.Tenant, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]identity.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindByStatus(ctx context.Context, status identity.TenantStatus, filter shared.Filter) ([]identity.Tenant, error) {
	args := m.Called(ctx, status, filter)
	return args.Get(0).([]identity.Tenant), args.Error(1)
}

func (m *MockTenantRepository) Save(ctx context.Context, tenant *identity.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTenantRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTenantRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*identity.User, error) {
	args := m.Called(ctx, tenantID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]identity.User, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, tenantID uuid.UUID, email string) (bool, error) {
	args := m.Called(ctx, tenantID, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

// Test helpers

const testPassword = "correct-horse-battery"

func newTestTenantID() uuid.UUID {
	return uuid.MustParse("11111111-1111-1111-1111-111111111111")
}

func newTestUserID() uuid.UUID {
	return uuid.MustParse("22222222-2222-2222-2222-222222222222")
}

func createTestTenant() *identity.Tenant {
	tenant, _ := identity.NewTenant("acme", "Acme GmbH")
	tenant.ID = newTestTenantID()
	return tenant
}

func createTestUser(role identity.UserRole) *identity.User {
	user, _ := identity.NewActiveUser(newTestTenantID(), "jane@acme.example", testPassword, role)
	user.ID = newTestUserID()
	return user
}

func newTestService() (*IdentityService, *MockTenantRepository, *MockUserRepository) {
	tenantRepo := new(MockTenantRepository)
	userRepo := new(MockUserRepository)
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-for-signing",
		AccessTokenExpiration: time.Hour,
		Issuer:                "dpp-test",
	})
	return NewIdentityService(tenantRepo, userRepo, jwtService, nil), tenantRepo, userRepo
}

// Tests

func TestIdentityService_RegisterTenant_Success(t *testing.T) {
	service, tenantRepo, userRepo := newTestService()

	ctx := context.Background()
	req := RegisterTenantRequest{
		TenantCode:    "acme",
		TenantName:    "Acme GmbH",
		AdminEmail:    "admin@acme.example",
		AdminPassword: testPassword,
	}

	tenantRepo.On("ExistsByCode", ctx, "acme").Return(false, nil)
	tenantRepo.On("Save", ctx, mock.AnythingOfType("*identity.Tenant")).Return(nil)
	userRepo.On("Save", ctx, mock.AnythingOfType("*identity.User")).Return(nil)

	result, err := service.RegisterTenant(ctx, req)

	assert.NoError(t, err)
	assert.Equal(t, "acme", result.Tenant.Code)
	assert.Equal(t, "free", result.Tenant.Plan)
	assert.Equal(t, "admin", result.Admin.Role)
	assert.Equal(t, "active", result.Admin.Status)
	tenantRepo.AssertExpectations(t)
	userRepo.AssertExpectations(t)
}

func TestIdentityService_RegisterTenant_CodeTaken(t *testing.T) {
	service, tenantRepo, _ := newTestService()

	ctx := context.Background()
	tenantRepo.On("ExistsByCode", ctx, "acme").Return(true, nil)

	result, err := service.RegisterTenant(ctx, RegisterTenantRequest{
		TenantCode:    "acme",
		TenantName:    "Acme GmbH",
		AdminEmail:    "admin@acme.example",
		AdminPassword: testPassword,
	})

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	tenantRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestIdentityService_Login_Success(t *testing.T) {
	service, tenantRepo, userRepo := newTestService()

	ctx := context.Background()
	tenant := createTestTenant()
	user := createTestUser(identity.RoleAdmin)

	tenantRepo.On("FindByCode", ctx, "acme").Return(tenant, nil)
	userRepo.On("FindByEmail", ctx, tenant.ID, "jane@acme.example").Return(user, nil)
	userRepo.On("Save", ctx, user).Return(nil)

	result, err := service.Login(ctx, LoginRequest{
		TenantCode: "acme",
		Email:      "jane@acme.example",
		Password:   testPassword,
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.Equal(t, "Bearer", result.TokenType)
	assert.NotNil(t, user.LastLoginAt)
	userRepo.AssertExpectations(t)
}

func TestIdentityService_Login_WrongPassword(t *testing.T) {
	service, tenantRepo, userRepo := newTestService()

	ctx := context.Background()
	tenant := createTestTenant()
	user := createTestUser(identity.RoleViewer)

	tenantRepo.On("FindByCode", ctx, "acme").Return(tenant, nil)
	userRepo.On("FindByEmail", ctx, tenant.ID, "jane@acme.example").Return(user, nil)
	userRepo.On("Save", ctx, user).Return(nil)

	result, err := service.Login(ctx, LoginRequest{
		TenantCode: "acme",
		Email:      "jane@acme.example",
		Password:   "wrong-password",
	})

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	assert.Equal(t, 1, user.FailedAttempts, "failed attempt is recorded")
}

func TestIdentityService_Login_LocksAfterRepeatedFailures(t *testing.T) {
	service, tenantRepo, userRepo := newTestService()

	ctx := context.Background()
	tenant := createTestTenant()
	user := createTestUser(identity.RoleViewer)

	tenantRepo.On("FindByCode", ctx, "acme").Return(tenant, nil)
	userRepo.On("FindByEmail", ctx, tenant.ID, "jane@acme.example").Return(user, nil)
	userRepo.On("Save", ctx, user).Return(nil)

	req := LoginRequest{TenantCode: "acme", Email: "jane@acme.example", Password: "wrong-password"}
	for i := 0; i < maxFailedLogins; i++ {
		_, err := service.Login(ctx, req)
		assert.Error(t, err)
	}

	assert.True(t, user.IsLocked())

	// Even the correct password is rejected while the lock holds.
	_, err := service.Login(ctx, LoginRequest{
		TenantCode: "acme",
		Email:      "jane@acme.example",
		Password:   testPassword,
	})
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ACCOUNT_LOCKED", domainErr.Code)
}

func TestIdentityService_Login_UnknownTenant(t *testing.T) {
	service, tenantRepo, _ := newTestService()

	ctx := context.Background()
	tenantRepo.On("FindByCode", ctx, "ghost").Return(nil, shared.ErrNotFound)

	result, err := service.Login(ctx, LoginRequest{
		TenantCode: "ghost",
		Email:      "jane@acme.example",
		Password:   testPassword,
	})

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code, "unknown tenants look like bad credentials")
}

func TestIdentityService_Login_SuspendedTenant(t *testing.T) {
	service, tenantRepo, _ := newTestService()

	ctx := context.Background()
	tenant := createTestTenant()
	_ = tenant.Suspend()

	tenantRepo.On("FindByCode", ctx, "acme").Return(tenant, nil)

	result, err := service.Login(ctx, LoginRequest{
		TenantCode: "acme",
		Email:      "jane@acme.example",
		Password:   testPassword,
	})

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "TENANT_SUSPENDED", domainErr.Code)
}

func TestIdentityService_CreateUser_LimitReached(t *testing.T) {
	service, tenantRepo, userRepo := newTestService()

	ctx := context.Background()
	tenantID := newTestTenantID()
	tenant := createTestTenant()
	tenant.Config.MaxUsers = 2

	tenantRepo.On("FindByID", ctx, tenantID).Return(tenant, nil)
	userRepo.On("CountForTenant", ctx, tenantID, shared.Filter{}).Return(int64(2), nil)

	result, err := service.CreateUser(ctx, tenantID, CreateUserRequest{
		Email:    "new@acme.example",
		Password: testPassword,
		Role:     "editor",
	})

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "LIMIT_REACHED", domainErr.Code)
}

func TestIdentityService_CreateUser_DuplicateEmail(t *testing.T) {
	service, tenantRepo, userRepo := newTestService()

	ctx := context.Background()
	tenantID := newTestTenantID()

	tenantRepo.On("FindByID", ctx, tenantID).Return(createTestTenant(), nil)
	userRepo.On("CountForTenant", ctx, tenantID, shared.Filter{}).Return(int64(1), nil)
	userRepo.On("ExistsByEmail", ctx, tenantID, "jane@acme.example").Return(true, nil)

	result, err := service.CreateUser(ctx, tenantID, CreateUserRequest{
		Email:    "jane@acme.example",
		Password: testPassword,
		Role:     "viewer",
	})

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestIdentityService_CreateUser_Success(t *testing.T) {
	service, tenantRepo, userRepo := newTestService()

	ctx := context.Background()
	tenantID := newTestTenantID()

	tenantRepo.On("FindByID", ctx, tenantID).Return(createTestTenant(), nil)
	userRepo.On("CountForTenant", ctx, tenantID, shared.Filter{}).Return(int64(1), nil)
	userRepo.On("ExistsByEmail", ctx, tenantID, "new@acme.example").Return(false, nil)
	userRepo.On("Save", ctx, mock.AnythingOfType("*identity.User")).Return(nil)

	result, err := service.CreateUser(ctx, tenantID, CreateUserRequest{
		Email:       "new@acme.example",
		Password:    testPassword,
		DisplayName: "New Editor",
		Role:        "editor",
	})

	assert.NoError(t, err)
	assert.Equal(t, "editor", result.Role)
	assert.Equal(t, "New Editor", result.DisplayName)
	userRepo.AssertExpectations(t)
}

func TestIdentityService_DeactivateUser_SelfRejected(t *testing.T) {
	service, _, userRepo := newTestService()

	ctx := context.Background()
	userID := newTestUserID()

	result, err := service.DeactivateUser(ctx, newTestTenantID(), userID, userID)

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_OPERATION", domainErr.Code)
	userRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestIdentityService_DeleteUser_CrossTenantRejected(t *testing.T) {
	service, _, userRepo := newTestService()

	ctx := context.Background()
	otherTenant := uuid.MustParse("99999999-9999-9999-9999-999999999999")
	user := createTestUser(identity.RoleViewer)

	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

	err := service.DeleteUser(ctx, otherTenant, user.ID, uuid.New())

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code, "foreign users are indistinguishable from missing ones")
	userRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestIdentityService_ChangePlan(t *testing.T) {
	service, tenantRepo, _ := newTestService()

	ctx := context.Background()
	tenantID := newTestTenantID()
	tenant := createTestTenant()

	tenantRepo.On("FindByID", ctx, tenantID).Return(tenant, nil)
	tenantRepo.On("Save", ctx, tenant).Return(nil)

	result, err := service.ChangePlan(ctx, tenantID, "pro")

	assert.NoError(t, err)
	assert.Equal(t, "pro", result.Plan)
	assert.Greater(t, result.MaxProducts, 100, "plan change raises the limits")
	tenantRepo.AssertExpectations(t)
}
