package label

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElementFactory_New_AllTypes(t *testing.T) {
	factory := NewElementFactory(NewSequenceIDGenerator())

	for i, typ := range AllElementTypes() {
		t.Run(typ.String(), func(t *testing.T) {
			el := factory.New(typ, SectionCompliance, i)
			require.NotNil(t, el)

			base := el.Base()
			assert.Equal(t, typ, el.ElementType())
			assert.Equal(t, typ, base.Kind)
			assert.Equal(t, SectionCompliance, base.SectionID)
			assert.Equal(t, i, base.SortOrder)
			assert.NotEmpty(t, base.ID)
		})
	}
}

func TestElementFactory_New_UniqueIDs(t *testing.T) {
	factory := NewElementFactory(NewIDGenerator())

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		el := factory.New(ElementText, SectionIdentity, i)
		id := el.Base().ID
		assert.False(t, seen[id], "duplicate id %q", id)
		seen[id] = true
	}
}

func TestElementFactory_New_Defaults(t *testing.T) {
	factory := NewElementFactory(NewSequenceIDGenerator())

	text := factory.New(ElementText, SectionIdentity, 0).(*TextElement)
	assert.Equal(t, AlignLeft, text.Align)
	assert.Equal(t, "normal", text.FontWeight)
	assert.NotEmpty(t, text.Color)
	assert.Positive(t, text.FontSize)

	field := factory.New(ElementFieldValue, SectionIdentity, 1).(*FieldValueElement)
	assert.True(t, field.ShowLabel)
	assert.Equal(t, FieldProductName, field.Field)
	assert.Equal(t, LayoutInline, field.Layout)
	assert.NotEmpty(t, field.LabelText)

	qr := factory.New(ElementQRCode, SectionDPP, 2).(*QRCodeElement)
	assert.Positive(t, qr.Size)
	assert.True(t, qr.ShowLabel)
	assert.False(t, qr.ShowURL)

	badge := factory.New(ElementComplianceBadge, SectionCompliance, 3).(*ComplianceBadgeElement)
	assert.Equal(t, BadgeOutlined, badge.Style)
	assert.NotEmpty(t, badge.Symbol)

	mc := factory.New(ElementMaterialCode, SectionSustainability, 4).(*MaterialCodeElement)
	assert.True(t, mc.AutoPopulate)
	assert.NotNil(t, mc.Codes)

	bc := factory.New(ElementBarcode, SectionDPP, 5).(*BarcodeElement)
	assert.Equal(t, "EAN13", bc.Symbology)
	assert.True(t, bc.AutoPopulate)
	assert.True(t, bc.ShowText)

	pc := factory.New(ElementPackageCounter, SectionFooter, 6).(*PackageCounterElement)
	assert.Contains(t, pc.Format, "{current}")
	assert.Contains(t, pc.Format, "{total}")
}

func TestElementFactory_New_UnknownTypePanics(t *testing.T) {
	factory := NewElementFactory(NewSequenceIDGenerator())

	assert.Panics(t, func() {
		factory.New(ElementType("hologram"), SectionIdentity, 0)
	})
}

func TestSequenceIDGenerator(t *testing.T) {
	gen := NewSequenceIDGenerator()
	assert.Equal(t, "el-1", gen.NextID())
	assert.Equal(t, "el-2", gen.NextID())
	assert.Equal(t, "el-3", gen.NextID())
}
