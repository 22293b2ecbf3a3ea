package passport

import (
	"strconv"
	"strings"

	"github.com/lucamadonia/dpp-backend/internal/domain/catalog"
	"github.com/lucamadonia/dpp-backend/internal/domain/identity"
	"github.com/lucamadonia/dpp-backend/internal/domain/label"
)

// dateLayout is how dates are printed on labels and the public page
const dateLayout = "2006-01-02"

// BuildFieldValues flattens a product, its batch and the owning tenant into
// the field lookup consumed by label resolution and the public passport page.
// Fields without data are simply absent from the map.
func BuildFieldValues(tenant *identity.Tenant, product *catalog.Product, batch *Batch, publicBaseURL string) label.FieldValues {
	values := label.FieldValues{}

	put := func(key label.FieldKey, value string) {
		if value != "" {
			values[key] = value
		}
	}

	put(label.FieldProductName, product.Name)
	put(label.FieldGTIN, product.GTIN)
	put(label.FieldSKU, product.SKU)
	put(label.FieldManufacturerName, product.Manufacturer)
	put(label.FieldCountryOfOrigin, product.CountryOfOrigin)
	put(label.FieldEnergyClass, product.EnergyClass)
	put(label.FieldEPRELID, product.EPRELID)
	put(label.FieldMaterialComposition, product.MaterialComposition())

	if !product.NetWeightKg.IsZero() {
		put(label.FieldNetWeight, product.NetWeightKg.String()+" kg")
	}
	if !product.GrossWeightKg.IsZero() {
		put(label.FieldGrossWeight, product.GrossWeightKg.String()+" kg")
	}
	if product.Carbon != nil {
		put(label.FieldCarbonFootprint, product.Carbon.KgCO2ePerUnit.String()+" kg CO2e")
	}

	if batch != nil {
		put(label.FieldBatchNumber, batch.BatchNumber)
		put(label.FieldProductionDate, batch.ProductionDate.Format(dateLayout))
		if batch.ExpiryDate != nil {
			put(label.FieldExpiryDate, batch.ExpiryDate.Format(dateLayout))
		}
		if batch.PackageCount > 0 {
			put(label.FieldPackageCount, strconv.Itoa(batch.PackageCount))
		}
		if batch.PublicSlug != "" && publicBaseURL != "" {
			put(label.FieldPassportURL, strings.TrimRight(publicBaseURL, "/")+"/public/passports/"+batch.PublicSlug)
		}
	}

	if tenant != nil {
		put(label.FieldImporterName, tenant.Name)
		put(label.FieldImporterEORI, tenant.EORINumber)
	}

	return values
}
