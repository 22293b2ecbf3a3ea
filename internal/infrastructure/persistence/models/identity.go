package models

import (
	"encoding/json"
	"time"

	"github.com/lucamadonia/dpp-backend/internal/domain/identity"
)

// TenantModel is the GORM model for the tenants table
type TenantModel struct {
	AggregateModel
	Code         string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name         string `gorm:"type:varchar(200);not null"`
	Status       string `gorm:"type:varchar(20);not null;default:'active'"`
	Plan         string `gorm:"type:varchar(20);not null;default:'free'"`
	ContactName  string `gorm:"column:contact_name;type:varchar(100)"`
	ContactEmail string `gorm:"column:contact_email;type:varchar(200)"`
	Address      string `gorm:"type:varchar(500)"`
	LogoURL      string `gorm:"column:logo_url;type:varchar(500)"`
	EORINumber   string `gorm:"column:eori_number;type:varchar(20)"`
	ExpiresAt    *time.Time
	TrialEndsAt  *time.Time `gorm:"column:trial_ends_at"`
	Config       string     `gorm:"type:jsonb;not null;default:'{}'"`
}

// TableName returns the table name for TenantModel
func (TenantModel) TableName() string {
	return "tenants"
}

// ToDomain converts TenantModel to a domain Tenant
func (m *TenantModel) ToDomain() (*identity.Tenant, error) {
	config := identity.DefaultTenantConfig()
	if m.Config != "" {
		if err := json.Unmarshal([]byte(m.Config), &config); err != nil {
			return nil, err
		}
	}

	return &identity.Tenant{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Code:              m.Code,
		Name:              m.Name,
		Status:            identity.TenantStatus(m.Status),
		Plan:              identity.TenantPlan(m.Plan),
		ContactName:       m.ContactName,
		ContactEmail:      m.ContactEmail,
		Address:           m.Address,
		LogoURL:           m.LogoURL,
		EORINumber:        m.EORINumber,
		ExpiresAt:         m.ExpiresAt,
		TrialEndsAt:       m.TrialEndsAt,
		Config:            config,
	}, nil
}

// TenantModelFromDomain creates a TenantModel from a domain Tenant
func TenantModelFromDomain(t *identity.Tenant) (*TenantModel, error) {
	config, err := json.Marshal(t.Config)
	if err != nil {
		return nil, err
	}

	model := &TenantModel{
		Code:         t.Code,
		Name:         t.Name,
		Status:       string(t.Status),
		Plan:         string(t.Plan),
		ContactName:  t.ContactName,
		ContactEmail: t.ContactEmail,
		Address:      t.Address,
		LogoURL:      t.LogoURL,
		EORINumber:   t.EORINumber,
		ExpiresAt:    t.ExpiresAt,
		TrialEndsAt:  t.TrialEndsAt,
		Config:       string(config),
	}
	model.FromDomainAggregateRoot(t.BaseAggregateRoot)
	return model, nil
}

// UserModel is the GORM model for the users table
type UserModel struct {
	TenantAggregateModel
	Email             string `gorm:"type:varchar(200);not null;index"`
	PasswordHash      string `gorm:"column:password_hash;type:varchar(255);not null"`
	DisplayName       string `gorm:"column:display_name;type:varchar(200)"`
	Role              string `gorm:"type:varchar(20);not null;default:'viewer'"`
	Status            string `gorm:"type:varchar(20);not null;default:'pending'"`
	LastLoginAt       *time.Time `gorm:"column:last_login_at;index"`
	FailedAttempts    int        `gorm:"column:failed_attempts;not null;default:0"`
	LockedUntil       *time.Time `gorm:"column:locked_until"`
	PasswordChangedAt *time.Time `gorm:"column:password_changed_at"`
}

// TableName returns the table name for UserModel
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts UserModel to a domain User
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Email:               m.Email,
		PasswordHash:        m.PasswordHash,
		DisplayName:         m.DisplayName,
		Role:                identity.UserRole(m.Role),
		Status:              identity.UserStatus(m.Status),
		LastLoginAt:         m.LastLoginAt,
		FailedAttempts:      m.FailedAttempts,
		LockedUntil:         m.LockedUntil,
		PasswordChangedAt:   m.PasswordChangedAt,
	}
}

// UserModelFromDomain creates a UserModel from a domain User
func UserModelFromDomain(u *identity.User) *UserModel {
	model := &UserModel{
		Email:             u.Email,
		PasswordHash:      u.PasswordHash,
		DisplayName:       u.DisplayName,
		Role:              string(u.Role),
		Status:            string(u.Status),
		LastLoginAt:       u.LastLoginAt,
		FailedAttempts:    u.FailedAttempts,
		LockedUntil:       u.LockedUntil,
		PasswordChangedAt: u.PasswordChangedAt,
	}
	model.FromDomainTenantAggregateRoot(u.TenantAggregateRoot)
	return model
}
