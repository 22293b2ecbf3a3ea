package passport

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucamadonia/dpp-backend/internal/domain/catalog"
	"github.com/lucamadonia/dpp-backend/internal/domain/identity"
	"github.com/lucamadonia/dpp-backend/internal/domain/label"
)

func TestBuildFieldValues(t *testing.T) {
	tenant, err := identity.NewTenant("acme", "ACME GmbH")
	require.NoError(t, err)
	require.NoError(t, tenant.SetEORINumber("DE123456789"))

	product, err := catalog.NewProduct(tenant.ID, "Cordless Drill X200", "DRL-X200", label.CategoryElectronics)
	require.NoError(t, err)
	require.NoError(t, product.SetGTIN("4006381333931"))
	require.NoError(t, product.SetManufacturer("ACME Tools"))
	require.NoError(t, product.SetCountryOfOrigin("de"))
	require.NoError(t, product.SetWeights(decimal.NewFromFloat(1.2), decimal.NewFromFloat(1.5)))
	require.NoError(t, product.SetEnergyData("B", "EPREL-998877"))
	require.NoError(t, product.SetMaterials([]catalog.MaterialEntry{
		{Material: "ABS", Percentage: decimal.NewFromInt(60)},
		{Material: "ALU", Percentage: decimal.NewFromInt(40)},
	}))
	require.NoError(t, product.SetCarbonFootprint(catalog.CarbonFootprint{
		KgCO2ePerUnit: decimal.NewFromFloat(4.2),
		Scope:         "cradle-to-gate",
	}))

	batch, err := NewBatch(tenant.ID, product.ID, "LOT-2026-001",
		time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(500))
	require.NoError(t, err)
	require.NoError(t, batch.SetExpiryDate(time.Date(2028, time.March, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, batch.SetPackageCount(4))
	require.NoError(t, batch.Publish())

	values := BuildFieldValues(tenant, product, batch, "https://dpp.example.com/")

	assert.Equal(t, "Cordless Drill X200", values[label.FieldProductName])
	assert.Equal(t, "4006381333931", values[label.FieldGTIN])
	assert.Equal(t, "DRL-X200", values[label.FieldSKU])
	assert.Equal(t, "ACME Tools", values[label.FieldManufacturerName])
	assert.Equal(t, "DE", values[label.FieldCountryOfOrigin])
	assert.Equal(t, "1.2 kg", values[label.FieldNetWeight])
	assert.Equal(t, "1.5 kg", values[label.FieldGrossWeight])
	assert.Equal(t, "B", values[label.FieldEnergyClass])
	assert.Equal(t, "EPREL-998877", values[label.FieldEPRELID])
	assert.Equal(t, "ABS 60%, ALU 40%", values[label.FieldMaterialComposition])
	assert.Equal(t, "4.2 kg CO2e", values[label.FieldCarbonFootprint])
	assert.Equal(t, "LOT-2026-001", values[label.FieldBatchNumber])
	assert.Equal(t, "2026-03-01", values[label.FieldProductionDate])
	assert.Equal(t, "2028-03-01", values[label.FieldExpiryDate])
	assert.Equal(t, "4", values[label.FieldPackageCount])
	assert.Equal(t, "ACME GmbH", values[label.FieldImporterName])
	assert.Equal(t, "DE123456789", values[label.FieldImporterEORI])
	assert.Equal(t, "https://dpp.example.com/public/passports/"+batch.PublicSlug, values[label.FieldPassportURL])
}

func TestBuildFieldValues_OmitsEmptyFields(t *testing.T) {
	product, err := catalog.NewProduct(uuid.New(), "Plain Widget", "WID-1", label.CategoryGeneral)
	require.NoError(t, err)

	values := BuildFieldValues(nil, product, nil, "")

	assert.Equal(t, "Plain Widget", values[label.FieldProductName])
	assert.Equal(t, "WID-1", values[label.FieldSKU])
	_, hasGTIN := values[label.FieldGTIN]
	assert.False(t, hasGTIN)
	_, hasBatch := values[label.FieldBatchNumber]
	assert.False(t, hasBatch)
	_, hasURL := values[label.FieldPassportURL]
	assert.False(t, hasURL)
	_, hasWeight := values[label.FieldNetWeight]
	assert.False(t, hasWeight)
}
