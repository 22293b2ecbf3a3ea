package label

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	factory := NewElementFactory(NewSequenceIDGenerator())
	doc := NewBlankDesign()

	field := factory.New(ElementFieldValue, SectionIdentity, 0).(*FieldValueElement)
	field.Field = FieldProductName
	qr := factory.New(ElementQRCode, SectionDPP, 0).(*QRCodeElement)
	barcode := factory.New(ElementBarcode, SectionDPP, 1).(*BarcodeElement)
	mc := factory.New(ElementMaterialCode, SectionSustainability, 0).(*MaterialCodeElement)
	counter := factory.New(ElementPackageCounter, SectionFooter, 0).(*PackageCounterElement)
	for _, el := range []Element{field, qr, barcode, mc, counter} {
		require.NoError(t, doc.AddElement(el))
	}

	values := FieldValues{
		FieldProductName:         "Cordless Drill X200",
		FieldPassportURL:         "https://dpp.example.com/p/abc123",
		FieldGTIN:                "4006381333931",
		FieldMaterialComposition: "PET 70%, PE-LD 30%",
		FieldPackageCount:        "4",
	}

	resolved := Resolve(&doc, values)

	assert.Equal(t, "Cordless Drill X200", resolved.Elements[0].(*FieldValueElement).Value)
	assert.Equal(t, "https://dpp.example.com/p/abc123", resolved.Elements[1].(*QRCodeElement).URL)
	assert.Equal(t, "4006381333931", resolved.Elements[2].(*BarcodeElement).Value)
	assert.Equal(t, []string{"PET", "PE-LD"}, resolved.Elements[3].(*MaterialCodeElement).Codes)
	assert.Contains(t, resolved.Elements[4].(*PackageCounterElement).Format, "4")

	// source document stays untouched
	assert.Empty(t, doc.Elements[0].(*FieldValueElement).Value)
	assert.Empty(t, doc.Elements[1].(*QRCodeElement).URL)
}

func TestResolve_MissingValues(t *testing.T) {
	factory := NewElementFactory(NewSequenceIDGenerator())
	doc := NewBlankDesign()
	field := factory.New(ElementFieldValue, SectionIdentity, 0).(*FieldValueElement)
	field.Field = FieldEPRELID
	require.NoError(t, doc.AddElement(field))

	resolved := Resolve(&doc, FieldValues{})

	assert.Empty(t, resolved.Elements[0].(*FieldValueElement).Value)
}

func TestResolve_AutoPopulateOff(t *testing.T) {
	factory := NewElementFactory(NewSequenceIDGenerator())
	doc := NewBlankDesign()

	barcode := factory.New(ElementBarcode, SectionDPP, 0).(*BarcodeElement)
	barcode.AutoPopulate = false
	barcode.Value = "1234567890128"
	mc := factory.New(ElementMaterialCode, SectionSustainability, 0).(*MaterialCodeElement)
	mc.AutoPopulate = false
	mc.Codes = []string{"GL70"}
	require.NoError(t, doc.AddElement(barcode))
	require.NoError(t, doc.AddElement(mc))

	resolved := Resolve(&doc, FieldValues{
		FieldGTIN:                "4006381333931",
		FieldMaterialComposition: "PET 70%",
	})

	assert.Equal(t, "1234567890128", resolved.Elements[0].(*BarcodeElement).Value)
	assert.Equal(t, []string{"GL70"}, resolved.Elements[1].(*MaterialCodeElement).Codes)
}

func TestSplitMaterialCodes(t *testing.T) {
	tests := []struct {
		name        string
		composition string
		expected    []string
	}{
		{"two materials with percentages", "PET 70%, PE-LD 30%", []string{"PET", "PE-LD"}},
		{"single code without percentage", "PAP", []string{"PAP"}},
		{"empty input", "", []string{}},
		{"extra whitespace", "  ALU 50% ,  GL70 50% ", []string{"ALU", "GL70"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, splitMaterialCodes(tt.composition))
		})
	}
}
