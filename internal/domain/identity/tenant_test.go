package identity

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTenant(t *testing.T) {
	tests := []struct {
		name       string
		code       string
		tenantName string
		wantErr    bool
		errCode    string
	}{
		{
			name:       "valid tenant",
			code:       "acme",
			tenantName: "ACME GmbH",
		},
		{
			name:       "empty code",
			code:       "",
			tenantName: "ACME GmbH",
			wantErr:    true,
			errCode:    "INVALID_CODE",
		},
		{
			name:       "code with invalid characters",
			code:       "acme gmbh!",
			tenantName: "ACME GmbH",
			wantErr:    true,
			errCode:    "INVALID_CODE",
		},
		{
			name:       "empty name",
			code:       "acme",
			tenantName: "",
			wantErr:    true,
			errCode:    "INVALID_NAME",
		},
		{
			name:       "name too long",
			code:       "acme",
			tenantName: strings.Repeat("x", 201),
			wantErr:    true,
			errCode:    "INVALID_NAME",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tenant, err := NewTenant(tt.code, tt.tenantName)
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, tenant)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, strings.ToUpper(tt.code), tenant.Code)
			assert.Equal(t, tt.tenantName, tenant.Name)
			assert.Equal(t, TenantStatusActive, tenant.Status)
			assert.Equal(t, TenantPlanFree, tenant.Plan)
			assert.Equal(t, DefaultTenantConfig(), tenant.Config)

			events := tenant.GetDomainEvents()
			require.Len(t, events, 1)
			assert.Equal(t, EventTypeTenantCreated, events[0].EventType())
		})
	}
}

func TestNewTrialTenant(t *testing.T) {
	tenant, err := NewTrialTenant("trial-co", "Trial Co", 14)
	require.NoError(t, err)

	assert.Equal(t, TenantStatusTrial, tenant.Status)
	require.NotNil(t, tenant.TrialEndsAt)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 14), *tenant.TrialEndsAt, time.Minute)
	assert.False(t, tenant.IsTrialExpired())

	_, err = NewTrialTenant("trial-co", "Trial Co", 0)
	assert.Error(t, err)
}

func TestTenant_SetPlan(t *testing.T) {
	tenant, err := NewTrialTenant("acme", "ACME GmbH", 14)
	require.NoError(t, err)
	tenant.ClearDomainEvents()

	require.NoError(t, tenant.SetPlan(TenantPlanPro))

	assert.Equal(t, TenantPlanPro, tenant.Plan)
	assert.Equal(t, TenantStatusActive, tenant.Status, "trial converts to active on upgrade")
	assert.Nil(t, tenant.TrialEndsAt)
	assert.Equal(t, 25, tenant.Config.MaxUsers)
	assert.Equal(t, 5000, tenant.Config.MaxProducts)

	err = tenant.SetPlan(TenantPlan("platinum"))
	assert.Error(t, err)
}

func TestTenant_StatusTransitions(t *testing.T) {
	tenant, err := NewTenant("acme", "ACME GmbH")
	require.NoError(t, err)

	// already active
	err = tenant.Activate()
	assert.Error(t, err)

	require.NoError(t, tenant.Suspend())
	assert.True(t, tenant.IsSuspended())

	err = tenant.Suspend()
	assert.Error(t, err)

	require.NoError(t, tenant.Activate())
	assert.True(t, tenant.IsActive())
}

func TestTenant_SetEORINumber(t *testing.T) {
	tenant, err := NewTenant("acme", "ACME GmbH")
	require.NoError(t, err)

	require.NoError(t, tenant.SetEORINumber(" de123456789 "))
	assert.Equal(t, "DE123456789", tenant.EORINumber)

	err = tenant.SetEORINumber(strings.Repeat("X", 21))
	assert.Error(t, err)
}

func TestTenant_Limits(t *testing.T) {
	tenant, err := NewTenant("acme", "ACME GmbH")
	require.NoError(t, err)

	assert.True(t, tenant.CanAddUser(4))
	assert.False(t, tenant.CanAddUser(5))
	assert.True(t, tenant.CanAddProduct(99))
	assert.False(t, tenant.CanAddProduct(100))
}
