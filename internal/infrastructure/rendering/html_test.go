package rendering

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucamadonia/dpp-backend/internal/domain/label"
)

func electronicsDesign(t *testing.T) label.DesignDocument {
	t.Helper()
	doc, ok := label.NewRegistry().DefaultDesignForGroup(label.CategoryElectronics)
	require.True(t, ok)
	return doc
}

func TestHTMLBuilder_PageGeometry(t *testing.T) {
	builder := NewHTMLBuilder(nil)
	doc := electronicsDesign(t)

	page, err := builder.Build(&doc)
	require.NoError(t, err)

	assert.Contains(t, page, "<!DOCTYPE html>")
	assert.Contains(t, page, "@page { size: 297.64pt 419.53pt; margin: 0; }")
	assert.Contains(t, page, "class=\"label-page\"")
}

func TestHTMLBuilder_SkipsHiddenSections(t *testing.T) {
	builder := NewHTMLBuilder(nil)
	doc := electronicsDesign(t)

	page, err := builder.Build(&doc)
	require.NoError(t, err)

	assert.Contains(t, page, `data-section="identity"`)
	// custom and footer zones start hidden
	assert.NotContains(t, page, `data-section="custom"`)
	assert.NotContains(t, page, `data-section="footer"`)
}

func TestHTMLBuilder_ResolvedFieldValues(t *testing.T) {
	builder := NewHTMLBuilder(nil)
	doc := electronicsDesign(t)

	resolved := label.Resolve(&doc, label.FieldValues{
		label.FieldProductName: "Cordless Drill 18V",
		label.FieldPassportURL: "https://dpp.example.com/p/abc123",
	})

	page, err := builder.Build(&resolved)
	require.NoError(t, err)

	assert.Contains(t, page, "Cordless Drill 18V")
	assert.Contains(t, page, "data:image/png;base64,")
}

func TestHTMLBuilder_EscapesContent(t *testing.T) {
	builder := NewHTMLBuilder(nil)
	doc := label.NewBlankDesign()
	doc.Elements = label.ElementList{
		&label.TextElement{
			ElementBase: label.ElementBase{Kind: label.ElementText, ID: "t1", SectionID: label.SectionIdentity, SortOrder: 0},
			Content:     `<script>alert("x")</script>`,
			FontSize:    8,
			FontWeight:  "normal",
			Color:       "#000000",
			Align:       label.AlignLeft,
		},
	}

	page, err := builder.Build(&doc)
	require.NoError(t, err)

	assert.NotContains(t, page, "<script>")
	assert.Contains(t, page, "&lt;script&gt;")
}

func TestHTMLBuilder_UppercaseText(t *testing.T) {
	builder := NewHTMLBuilder(nil)
	doc := label.NewBlankDesign()
	doc.Elements = label.ElementList{
		&label.TextElement{
			ElementBase: label.ElementBase{Kind: label.ElementText, ID: "t1", SectionID: label.SectionIdentity, SortOrder: 0},
			Content:     "ce marking",
			Uppercase:   true,
			FontSize:    8,
			FontWeight:  "bold",
			Color:       "#000000",
			Align:       label.AlignCenter,
		},
	}

	page, err := builder.Build(&doc)
	require.NoError(t, err)

	assert.Contains(t, page, "CE MARKING")
	assert.Contains(t, page, "font-weight:bold")
	assert.Contains(t, page, "text-align:center")
}

func TestHTMLBuilder_BarcodeEAN13(t *testing.T) {
	builder := NewHTMLBuilder(nil)
	doc := label.NewBlankDesign()
	doc.Elements = label.ElementList{
		&label.BarcodeElement{
			ElementBase: label.ElementBase{Kind: label.ElementBarcode, ID: "b1", SectionID: label.SectionIdentity, SortOrder: 0},
			Symbology:   "ean13",
			Value:       "4006381333931",
			Height:      30,
			ShowText:    true,
		},
	}

	page, err := builder.Build(&doc)
	require.NoError(t, err)

	assert.Contains(t, page, "data:image/png;base64,")
	assert.Contains(t, page, "4006381333931")
}

func TestHTMLBuilder_InvalidBarcodeOmitted(t *testing.T) {
	builder := NewHTMLBuilder(nil)
	doc := label.NewBlankDesign()
	doc.Elements = label.ElementList{
		&label.BarcodeElement{
			ElementBase: label.ElementBase{Kind: label.ElementBarcode, ID: "b1", SectionID: label.SectionIdentity, SortOrder: 0},
			Symbology:   "ean13",
			Value:       "not-a-gtin",
			Height:      30,
		},
	}

	page, err := builder.Build(&doc)
	require.NoError(t, err)

	assert.NotContains(t, page, "data:image/png")
	assert.NotContains(t, page, "not-a-gtin")
}

func TestHTMLBuilder_MaterialCodesAndCounter(t *testing.T) {
	builder := NewHTMLBuilder(nil)
	doc := label.NewBlankDesign()
	doc.Elements = label.ElementList{
		&label.MaterialCodeElement{
			ElementBase: label.ElementBase{Kind: label.ElementMaterialCode, ID: "m1", SectionID: label.SectionSustainability, SortOrder: 0},
			Codes:       []string{"PET", "PE-LD"},
			FontSize:    6,
			Color:       "#333333",
		},
		&label.PackageCounterElement{
			ElementBase:     label.ElementBase{Kind: label.ElementPackageCounter, ID: "p1", SectionID: label.SectionFooter, SortOrder: 0},
			Format:          "Package 1 of 12",
			FontSize:        7,
			BackgroundColor: "#ffffff",
			BorderColor:     "#000000",
			BorderRadius:    2,
			Padding:         2,
		},
	}
	for i := range doc.Sections {
		doc.Sections[i].Visible = true
	}

	page, err := builder.Build(&doc)
	require.NoError(t, err)

	assert.Contains(t, page, `<span class="material-code">PET</span>`)
	assert.Contains(t, page, `<span class="material-code">PE-LD</span>`)
	assert.Contains(t, page, "Package 1 of 12")
}

func TestHTMLBuilder_NilDocument(t *testing.T) {
	builder := NewHTMLBuilder(nil)

	_, err := builder.Build(nil)
	require.Error(t, err)

	var rerr *RenderError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, ErrCodeInvalidHTML, rerr.Code)
}

func TestHTMLBuilder_ElementOrderFollowsSortOrder(t *testing.T) {
	builder := NewHTMLBuilder(nil)
	doc := label.NewBlankDesign()
	doc.Elements = label.ElementList{
		&label.TextElement{
			ElementBase: label.ElementBase{Kind: label.ElementText, ID: "second", SectionID: label.SectionIdentity, SortOrder: 1},
			Content:     "SECOND", FontSize: 8, FontWeight: "normal", Color: "#000", Align: label.AlignLeft,
		},
		&label.TextElement{
			ElementBase: label.ElementBase{Kind: label.ElementText, ID: "first", SectionID: label.SectionIdentity, SortOrder: 0},
			Content:     "FIRST", FontSize: 8, FontWeight: "normal", Color: "#000", Align: label.AlignLeft,
		},
	}

	page, err := builder.Build(&doc)
	require.NoError(t, err)

	assert.Less(t, strings.Index(page, "FIRST"), strings.Index(page, "SECOND"))
}
