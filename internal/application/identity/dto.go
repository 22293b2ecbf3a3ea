package identity

import "time"

// =============================================================================
// Registration and Login DTOs
// =============================================================================

// RegisterTenantRequest creates a new tenant together with its admin user
type RegisterTenantRequest struct {
	TenantCode       string `json:"tenant_code" binding:"required,min=2,max=50"`
	TenantName       string `json:"tenant_name" binding:"required,min=1,max=200"`
	AdminEmail       string `json:"admin_email" binding:"required,email"`
	AdminPassword    string `json:"admin_password" binding:"required,min=8,max=72"`
	AdminDisplayName string `json:"admin_display_name" binding:"max=100"`
	TrialDays        int    `json:"trial_days" binding:"omitempty,min=1,max=90"`
}

// RegisterTenantResponse carries the created tenant and admin
type RegisterTenantResponse struct {
	Tenant TenantResponse `json:"tenant"`
	Admin  UserResponse   `json:"admin"`
}

// LoginRequest authenticates a user within a tenant
type LoginRequest struct {
	TenantCode string `json:"tenant_code" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token and the authenticated user
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        UserResponse `json:"user"`
}

// ChangePasswordRequest changes the caller's own password
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}

// =============================================================================
// Tenant DTOs
// =============================================================================

// UpdateTenantRequest updates tenant master data
type UpdateTenantRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=1,max=200"`
	ContactName  *string `json:"contact_name" binding:"omitempty,max=100"`
	ContactEmail *string `json:"contact_email" binding:"omitempty,email"`
	Address      *string `json:"address" binding:"omitempty,max=500"`
	EORINumber   *string `json:"eori_number" binding:"omitempty,max=17"`
	LogoURL      *string `json:"logo_url" binding:"omitempty,url"`
}

// TenantResponse represents a tenant
type TenantResponse struct {
	ID           string     `json:"id"`
	Code         string     `json:"code"`
	Name         string     `json:"name"`
	Status       string     `json:"status"`
	Plan         string     `json:"plan"`
	ContactName  string     `json:"contact_name,omitempty"`
	ContactEmail string     `json:"contact_email,omitempty"`
	Address      string     `json:"address,omitempty"`
	LogoURL      string     `json:"logo_url,omitempty"`
	EORINumber   string     `json:"eori_number,omitempty"`
	TrialEndsAt  *time.Time `json:"trial_ends_at,omitempty"`
	MaxUsers     int        `json:"max_users"`
	MaxProducts  int        `json:"max_products"`
	MaxPassports int        `json:"max_passports"`
	Locale       string     `json:"locale"`
	Timezone     string     `json:"timezone"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// =============================================================================
// User DTOs
// =============================================================================

// CreateUserRequest adds a user to the caller's tenant
type CreateUserRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8,max=72"`
	DisplayName string `json:"display_name" binding:"max=100"`
	Role        string `json:"role" binding:"required,oneof=admin editor viewer"`
}

// UpdateUserRequest updates a user's profile or role
type UpdateUserRequest struct {
	DisplayName *string `json:"display_name" binding:"omitempty,max=100"`
	Role        *string `json:"role" binding:"omitempty,oneof=admin editor viewer"`
}

// ListUsersRequest lists the tenant's users
type ListUsersRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
	Search   string `form:"search"`
	Role     string `form:"role" binding:"omitempty,oneof=admin editor viewer"`
	Status   string `form:"status"`
}

// UserResponse represents a user
type UserResponse struct {
	ID          string     `json:"id"`
	TenantID    string     `json:"tenant_id"`
	Email       string     `json:"email"`
	DisplayName string     `json:"display_name,omitempty"`
	Role        string     `json:"role"`
	Status      string     `json:"status"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ListUsersResponse is a paginated list of users
type ListUsersResponse struct {
	Items []UserResponse `json:"items"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Size  int            `json:"size"`
}
