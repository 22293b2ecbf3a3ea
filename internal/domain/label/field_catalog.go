package label

// FieldKey identifies a product or batch attribute that a field-value element
// can bind to. Values are resolved at render time from the product/batch record.
type FieldKey string

const (
	FieldProductName         FieldKey = "productName"
	FieldGTIN                FieldKey = "gtin"
	FieldSKU                 FieldKey = "sku"
	FieldBatchNumber         FieldKey = "batchNumber"
	FieldSerialNumber        FieldKey = "serialNumber"
	FieldManufacturerName    FieldKey = "manufacturerName"
	FieldNetWeight           FieldKey = "netWeight"
	FieldGrossWeight         FieldKey = "grossWeight"
	FieldCountryOfOrigin     FieldKey = "countryOfOrigin"
	FieldProductionDate      FieldKey = "productionDate"
	FieldExpiryDate          FieldKey = "expiryDate"
	FieldEPRELID             FieldKey = "eprelId"
	FieldEnergyClass         FieldKey = "energyClass"
	FieldImporterName        FieldKey = "importerName"
	FieldImporterEORI        FieldKey = "importerEori"
	FieldMaterialComposition FieldKey = "materialComposition"
	FieldCareInstructions    FieldKey = "careInstructions"
	FieldCarbonFootprint     FieldKey = "carbonFootprint"
	FieldPackageCount        FieldKey = "packageCount"
	FieldPassportURL         FieldKey = "passportUrl"
)

// IsValid checks if the FieldKey is part of the field catalog
func (f FieldKey) IsValid() bool {
	switch f {
	case FieldProductName, FieldGTIN, FieldSKU, FieldBatchNumber, FieldSerialNumber,
		FieldManufacturerName, FieldNetWeight, FieldGrossWeight, FieldCountryOfOrigin,
		FieldProductionDate, FieldExpiryDate, FieldEPRELID, FieldEnergyClass,
		FieldImporterName, FieldImporterEORI, FieldMaterialComposition,
		FieldCareInstructions, FieldCarbonFootprint, FieldPackageCount, FieldPassportURL:
		return true
	}
	return false
}

// String returns the string representation of FieldKey
func (f FieldKey) String() string {
	return string(f)
}

// DisplayLabel returns the default human-readable label for the field.
// The editor UI uses these as pre-filled label text for field-value elements.
func (f FieldKey) DisplayLabel() string {
	switch f {
	case FieldProductName:
		return "Product"
	case FieldGTIN:
		return "GTIN"
	case FieldSKU:
		return "SKU"
	case FieldBatchNumber:
		return "Batch"
	case FieldSerialNumber:
		return "Serial No."
	case FieldManufacturerName:
		return "Manufacturer"
	case FieldNetWeight:
		return "Net Weight"
	case FieldGrossWeight:
		return "Gross Weight"
	case FieldCountryOfOrigin:
		return "Country of Origin"
	case FieldProductionDate:
		return "Production Date"
	case FieldExpiryDate:
		return "Expiry Date"
	case FieldEPRELID:
		return "EPREL"
	case FieldEnergyClass:
		return "Energy Class"
	case FieldImporterName:
		return "Importer"
	case FieldImporterEORI:
		return "EORI"
	case FieldMaterialComposition:
		return "Materials"
	case FieldCareInstructions:
		return "Care"
	case FieldCarbonFootprint:
		return "Carbon Footprint"
	case FieldPackageCount:
		return "Packages"
	case FieldPassportURL:
		return "Product Passport"
	default:
		return string(f)
	}
}

// AllFieldKeys returns all valid FieldKey values in catalog order
func AllFieldKeys() []FieldKey {
	return []FieldKey{
		FieldProductName, FieldGTIN, FieldSKU, FieldBatchNumber, FieldSerialNumber,
		FieldManufacturerName, FieldNetWeight, FieldGrossWeight, FieldCountryOfOrigin,
		FieldProductionDate, FieldExpiryDate, FieldEPRELID, FieldEnergyClass,
		FieldImporterName, FieldImporterEORI, FieldMaterialComposition,
		FieldCareInstructions, FieldCarbonFootprint, FieldPackageCount, FieldPassportURL,
	}
}
