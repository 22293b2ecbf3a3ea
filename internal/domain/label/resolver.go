package label

import "strings"

// FieldValues is the flat field lookup supplied by the product/batch data
// source at render time, keyed by the field catalog's keys
type FieldValues map[FieldKey]string

// Resolve merges a design document with a product/batch record, producing an
// independent document whose auto-populated elements carry their bound values.
// Elements bound to fields absent from the lookup keep an empty value; the
// renderer decides how to present gaps.
func Resolve(doc *DesignDocument, values FieldValues) DesignDocument {
	resolved := doc.Clone()

	for _, el := range resolved.Elements {
		switch e := el.(type) {
		case *FieldValueElement:
			e.Value = values[e.Field]
		case *QRCodeElement:
			e.URL = values[FieldPassportURL]
		case *BarcodeElement:
			if e.AutoPopulate {
				e.Value = values[FieldGTIN]
			}
		case *MaterialCodeElement:
			if e.AutoPopulate {
				e.Codes = splitMaterialCodes(values[FieldMaterialComposition])
			}
		case *PackageCounterElement:
			count := values[FieldPackageCount]
			if count != "" {
				e.Format = strings.ReplaceAll(e.Format, "{total}", count)
			}
		}
	}

	return resolved
}

// splitMaterialCodes derives recycling codes from the serialized material
// composition ("PET 70%, PE-LD 30%" yields ["PET", "PE-LD"])
func splitMaterialCodes(composition string) []string {
	if composition == "" {
		return []string{}
	}
	parts := strings.Split(composition, ",")
	codes := make([]string, 0, len(parts))
	for _, p := range parts {
		fields := strings.Fields(strings.TrimSpace(p))
		if len(fields) > 0 {
			codes = append(codes, fields[0])
		}
	}
	return codes
}
