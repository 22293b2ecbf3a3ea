package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lucamadonia/dpp-backend/internal/domain/identity"
	"github.com/lucamadonia/dpp-backend/internal/domain/shared"
	"github.com/lucamadonia/dpp-backend/internal/infrastructure/auth"
)

// Account lockout policy
const (
	maxFailedLogins = 5
	lockoutDuration = 15 * time.Minute
)

// IdentityService handles tenant and user operations including authentication
type IdentityService struct {
	tenantRepo identity.TenantRepository
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	logger     *zap.Logger
}

// NewIdentityService creates a new IdentityService
func NewIdentityService(
	tenantRepo identity.TenantRepository,
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	logger *zap.Logger,
) *IdentityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IdentityService{
		tenantRepo: tenantRepo,
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// =============================================================================
// Registration and Login
// =============================================================================

// RegisterTenant creates a new tenant together with its first admin user
func (s *IdentityService) RegisterTenant(ctx context.Context, req RegisterTenantRequest) (*RegisterTenantResponse, error) {
	exists, err := s.tenantRepo.ExistsByCode(ctx, req.TenantCode)
	if err != nil {
		return nil, fmt.Errorf("failed to check tenant code: %w", err)
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Tenant code is already taken")
	}

	var tenant *identity.Tenant
	if req.TrialDays > 0 {
		tenant, err = identity.NewTrialTenant(req.TenantCode, req.TenantName, req.TrialDays)
	} else {
		tenant, err = identity.NewTenant(req.TenantCode, req.TenantName)
	}
	if err != nil {
		return nil, err
	}

	admin, err := identity.NewActiveUser(tenant.ID, req.AdminEmail, req.AdminPassword, identity.RoleAdmin)
	if err != nil {
		return nil, err
	}
	if req.AdminDisplayName != "" {
		if err := admin.SetDisplayName(req.AdminDisplayName); err != nil {
			return nil, err
		}
	}

	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, fmt.Errorf("failed to save tenant: %w", err)
	}
	if err := s.userRepo.Save(ctx, admin); err != nil {
		return nil, fmt.Errorf("failed to save admin user: %w", err)
	}

	s.logger.Info("tenant registered",
		zap.String("id", tenant.ID.String()),
		zap.String("code", tenant.Code),
		zap.String("plan", string(tenant.Plan)))

	return &RegisterTenantResponse{
		Tenant: *toTenantResponse(tenant),
		Admin:  *toUserResponse(admin),
	}, nil
}

// Login authenticates a user and issues an access token. Credentials failures
// are indistinguishable from unknown accounts to callers.
func (s *IdentityService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	tenant, err := s.tenantRepo.FindByCode(ctx, req.TenantCode)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid credentials")
		}
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}

	if tenant.IsSuspended() {
		return nil, shared.NewDomainError("TENANT_SUSPENDED", "This organization is suspended")
	}
	if tenant.IsTrialExpired() {
		return nil, shared.NewDomainError("TRIAL_EXPIRED", "The trial period has ended")
	}

	user, err := s.userRepo.FindByEmail(ctx, tenant.ID, req.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid credentials")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !user.CanLogin() {
		return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Account is locked or inactive")
	}

	if !user.VerifyPassword(req.Password) {
		locked := user.RecordLoginFailure(maxFailedLogins, lockoutDuration)
		if err := s.userRepo.Save(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to record login failure: %w", err)
		}
		if locked {
			s.logger.Warn("account locked after repeated failures",
				zap.String("userId", user.ID.String()))
		}
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid credentials")
	}

	user.RecordLoginSuccess()
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}

	token, err := s.jwtService.GenerateToken(auth.GenerateTokenInput{
		TenantID: tenant.ID,
		UserID:   user.ID,
		Email:    user.Email,
		Role:     string(user.Role),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &LoginResponse{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresAt:   token.ExpiresAt,
		User:        *toUserResponse(user),
	}, nil
}

// ChangePassword changes the caller's own password
func (s *IdentityService) ChangePassword(ctx context.Context, tenantID, userID uuid.UUID, req ChangePasswordRequest) error {
	user, err := s.findTenantUser(ctx, tenantID, userID)
	if err != nil {
		return err
	}

	if err := user.ChangePassword(req.OldPassword, req.NewPassword); err != nil {
		return err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}

	s.logger.Info("password changed", zap.String("userId", userID.String()))
	return nil
}

// =============================================================================
// Tenant Operations
// =============================================================================

// GetTenant returns the caller's tenant
func (s *IdentityService) GetTenant(ctx context.Context, tenantID uuid.UUID) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Tenant not found")
		}
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}
	return toTenantResponse(tenant), nil
}

// UpdateTenant updates tenant master data
func (s *IdentityService) UpdateTenant(ctx context.Context, tenantID uuid.UUID, req UpdateTenantRequest) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Tenant not found")
		}
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}

	if req.Name != nil {
		if err := tenant.Update(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.ContactName != nil || req.ContactEmail != nil {
		contactName := tenant.ContactName
		if req.ContactName != nil {
			contactName = *req.ContactName
		}
		contactEmail := tenant.ContactEmail
		if req.ContactEmail != nil {
			contactEmail = *req.ContactEmail
		}
		if err := tenant.SetContact(contactName, contactEmail); err != nil {
			return nil, err
		}
	}
	if req.Address != nil {
		if err := tenant.SetAddress(*req.Address); err != nil {
			return nil, err
		}
	}
	if req.EORINumber != nil {
		if err := tenant.SetEORINumber(*req.EORINumber); err != nil {
			return nil, err
		}
	}
	if req.LogoURL != nil {
		if err := tenant.SetLogoURL(*req.LogoURL); err != nil {
			return nil, err
		}
	}

	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, fmt.Errorf("failed to save tenant: %w", err)
	}

	s.logger.Info("tenant updated", zap.String("id", tenant.ID.String()))
	return toTenantResponse(tenant), nil
}

// ChangePlan moves the tenant to a different subscription plan
func (s *IdentityService) ChangePlan(ctx context.Context, tenantID uuid.UUID, plan string) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Tenant not found")
		}
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}

	if err := tenant.SetPlan(identity.TenantPlan(plan)); err != nil {
		return nil, err
	}

	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, fmt.Errorf("failed to save tenant: %w", err)
	}

	s.logger.Info("tenant plan changed",
		zap.String("id", tenant.ID.String()),
		zap.String("plan", plan))
	return toTenantResponse(tenant), nil
}

// =============================================================================
// User Operations
// =============================================================================

// CreateUser adds a user to the tenant, enforcing the plan's user limit
func (s *IdentityService) CreateUser(ctx context.Context, tenantID uuid.UUID, req CreateUserRequest) (*UserResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Tenant not found")
		}
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}

	count, err := s.userRepo.CountForTenant(ctx, tenantID, shared.Filter{})
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if !tenant.CanAddUser(int(count)) {
		return nil, shared.NewDomainError("LIMIT_REACHED", "User limit for the current plan is reached")
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, tenantID, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A user with this email already exists")
	}

	user, err := identity.NewActiveUser(tenantID, req.Email, req.Password, identity.UserRole(req.Role))
	if err != nil {
		return nil, err
	}
	if req.DisplayName != "" {
		if err := user.SetDisplayName(req.DisplayName); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	s.logger.Info("user created",
		zap.String("id", user.ID.String()),
		zap.String("role", string(user.Role)))
	return toUserResponse(user), nil
}

// GetUser returns a user within the caller's tenant
func (s *IdentityService) GetUser(ctx context.Context, tenantID, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.findTenantUser(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// ListUsers returns a paginated list of the tenant's users
func (s *IdentityService) ListUsers(ctx context.Context, tenantID uuid.UUID, req ListUsersRequest) (*ListUsersResponse, error) {
	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	if req.OrderBy != "" {
		filter.OrderBy = req.OrderBy
	}
	if req.OrderDir != "" {
		filter.OrderDir = req.OrderDir
	}
	filter.Search = req.Search
	if req.Role != "" {
		filter.Filters["role"] = req.Role
	}
	if req.Status != "" {
		filter.Filters["status"] = req.Status
	}

	users, err := s.userRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	total, err := s.userRepo.CountForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	items := make([]UserResponse, len(users))
	for i, u := range users {
		items[i] = *toUserResponse(&u)
	}

	return &ListUsersResponse{
		Items: items,
		Total: total,
		Page:  filter.Page,
		Size:  filter.PageSize,
	}, nil
}

// UpdateUser updates a user's display name or role
func (s *IdentityService) UpdateUser(ctx context.Context, tenantID, userID uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.findTenantUser(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		if err := user.SetDisplayName(*req.DisplayName); err != nil {
			return nil, err
		}
	}
	if req.Role != nil {
		if err := user.SetRole(identity.UserRole(*req.Role)); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	return toUserResponse(user), nil
}

// ActivateUser re-enables a deactivated or locked user
func (s *IdentityService) ActivateUser(ctx context.Context, tenantID, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.findTenantUser(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}

	if user.IsLocked() {
		if err := user.Unlock(); err != nil {
			return nil, err
		}
	} else if err := user.Activate(); err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}
	return toUserResponse(user), nil
}

// DeactivateUser disables a user. Users cannot deactivate themselves.
func (s *IdentityService) DeactivateUser(ctx context.Context, tenantID, userID, callerID uuid.UUID) (*UserResponse, error) {
	if userID == callerID {
		return nil, shared.NewDomainError("INVALID_OPERATION", "You cannot deactivate your own account")
	}

	user, err := s.findTenantUser(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}

	if err := user.Deactivate(); err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}
	return toUserResponse(user), nil
}

// DeleteUser removes a user. Users cannot delete themselves.
func (s *IdentityService) DeleteUser(ctx context.Context, tenantID, userID, callerID uuid.UUID) error {
	if userID == callerID {
		return shared.NewDomainError("INVALID_OPERATION", "You cannot delete your own account")
	}

	if _, err := s.findTenantUser(ctx, tenantID, userID); err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.Info("user deleted", zap.String("id", userID.String()))
	return nil
}

// findTenantUser loads a user and verifies tenant ownership
func (s *IdentityService) findTenantUser(ctx context.Context, tenantID, userID uuid.UUID) (*identity.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "User not found")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user.TenantID != tenantID {
		return nil, shared.NewDomainError("NOT_FOUND", "User not found")
	}
	return user, nil
}

// =============================================================================
// Helper Functions
// =============================================================================

func toTenantResponse(t *identity.Tenant) *TenantResponse {
	return &TenantResponse{
		ID:           t.ID.String(),
		Code:         t.Code,
		Name:         t.Name,
		Status:       string(t.Status),
		Plan:         string(t.Plan),
		ContactName:  t.ContactName,
		ContactEmail: t.ContactEmail,
		Address:      t.Address,
		LogoURL:      t.LogoURL,
		EORINumber:   t.EORINumber,
		TrialEndsAt:  t.TrialEndsAt,
		MaxUsers:     t.Config.MaxUsers,
		MaxProducts:  t.Config.MaxProducts,
		MaxPassports: t.Config.MaxPassports,
		Locale:       t.Config.Locale,
		Timezone:     t.Config.Timezone,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

func toUserResponse(u *identity.User) *UserResponse {
	return &UserResponse{
		ID:          u.ID.String(),
		TenantID:    u.TenantID.String(),
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Role:        string(u.Role),
		Status:      string(u.Status),
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
