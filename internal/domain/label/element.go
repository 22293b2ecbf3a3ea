package label

import (
	"encoding/json"
	"fmt"
)

// ElementType is the discriminant tag of the element union. The set is closed;
// adding a variant requires extending the factory, the decoder and the clone
// switch in lockstep.
type ElementType string

const (
	ElementText            ElementType = "text"
	ElementFieldValue      ElementType = "field-value"
	ElementQRCode          ElementType = "qr-code"
	ElementPictogram       ElementType = "pictogram"
	ElementComplianceBadge ElementType = "compliance-badge"
	ElementImage           ElementType = "image"
	ElementDivider         ElementType = "divider"
	ElementSpacer          ElementType = "spacer"
	ElementMaterialCode    ElementType = "material-code"
	ElementBarcode         ElementType = "barcode"
	ElementIconText        ElementType = "icon-text"
	ElementPackageCounter  ElementType = "package-counter"
)

// IsValid checks if the ElementType is a valid value
func (t ElementType) IsValid() bool {
	switch t {
	case ElementText, ElementFieldValue, ElementQRCode, ElementPictogram,
		ElementComplianceBadge, ElementImage, ElementDivider, ElementSpacer,
		ElementMaterialCode, ElementBarcode, ElementIconText, ElementPackageCounter:
		return true
	}
	return false
}

// String returns the string representation of ElementType
func (t ElementType) String() string {
	return string(t)
}

// AllElementTypes returns all valid ElementType values
func AllElementTypes() []ElementType {
	return []ElementType{
		ElementText, ElementFieldValue, ElementQRCode, ElementPictogram,
		ElementComplianceBadge, ElementImage, ElementDivider, ElementSpacer,
		ElementMaterialCode, ElementBarcode, ElementIconText, ElementPackageCounter,
	}
}

// Element is one renderable primitive placed within a section.
// Exactly one concrete variant exists per ElementType.
type Element interface {
	ElementType() ElementType
	Base() *ElementBase
	isElement()
}

// ElementBase carries the attributes common to every element variant
type ElementBase struct {
	Kind      ElementType `json:"type"`
	ID        string      `json:"id"`
	SectionID SectionID   `json:"sectionId"`
	SortOrder int         `json:"sortOrder"`
}

// ElementType returns the discriminant tag
func (b *ElementBase) ElementType() ElementType { return b.Kind }

// Base returns the common attributes
func (b *ElementBase) Base() *ElementBase { return b }

func (b *ElementBase) isElement() {}

// TextAlign is the horizontal alignment of text content
type TextAlign string

const (
	AlignLeft   TextAlign = "left"
	AlignCenter TextAlign = "center"
	AlignRight  TextAlign = "right"
)

// FieldLayout controls how a field-value element arranges label and value
type FieldLayout string

const (
	LayoutInline  FieldLayout = "inline"
	LayoutStacked FieldLayout = "stacked"
)

// BadgeStyle is the visual style of a compliance badge
type BadgeStyle string

const (
	BadgeOutlined BadgeStyle = "outlined"
	BadgeFilled   BadgeStyle = "filled"
)

// PictogramSource tells the renderer where the pictogram artwork comes from
type PictogramSource string

const (
	PictogramBuiltin PictogramSource = "builtin"
	PictogramCustom  PictogramSource = "custom"
)

// TextElement renders a literal string
type TextElement struct {
	ElementBase
	Content    string    `json:"content"`
	FontSize   float64   `json:"fontSize"`
	FontWeight string    `json:"fontWeight"`
	Color      string    `json:"color"`
	Align      TextAlign `json:"align"`
	Italic     bool      `json:"italic"`
	Uppercase  bool      `json:"uppercase"`
}

// FieldValueElement renders a product/batch field bound via the field catalog
type FieldValueElement struct {
	ElementBase
	Field      FieldKey    `json:"field"`
	ShowLabel  bool        `json:"showLabel"`
	LabelText  string      `json:"labelText"`
	Value      string      `json:"value,omitempty"` // filled by auto-population at render time
	FontSize   float64     `json:"fontSize"`
	FontWeight string      `json:"fontWeight"`
	Color      string      `json:"color"`
	Layout     FieldLayout `json:"layout"`
}

// QRCodeElement renders the passport QR code
type QRCodeElement struct {
	ElementBase
	Size      float64 `json:"size"`
	ShowLabel bool    `json:"showLabel"`
	LabelText string  `json:"labelText"`
	ShowURL   bool    `json:"showUrl"`
	URL       string  `json:"url,omitempty"` // filled by auto-population at render time
}

// PictogramElement renders a regulatory or handling pictogram
type PictogramElement struct {
	ElementBase
	Pictogram string          `json:"pictogram"`
	Source    PictogramSource `json:"source"`
	Size      float64         `json:"size"`
	Label     string          `json:"label"`
}

// ComplianceBadgeElement renders a conformity marking such as CE or WEEE
type ComplianceBadgeElement struct {
	ElementBase
	Badge           string     `json:"badge"`
	Symbol          string     `json:"symbol"`
	Style           BadgeStyle `json:"style"`
	Size            float64    `json:"size"`
	Color           string     `json:"color"`
	BackgroundColor string     `json:"backgroundColor"`
}

// ImageElement renders a tenant-provided image
type ImageElement struct {
	ElementBase
	URL    string  `json:"url"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Fit    string  `json:"fit"`
}

// DividerElement renders a horizontal rule
type DividerElement struct {
	ElementBase
	Thickness float64 `json:"thickness"`
	Color     string  `json:"color"`
	MarginY   float64 `json:"marginY"`
}

// SpacerElement renders vertical whitespace
type SpacerElement struct {
	ElementBase
	Height float64 `json:"height"`
}

// MaterialCodeElement renders material recycling codes; when AutoPopulate is
// set the codes are derived from the product's material composition at render time
type MaterialCodeElement struct {
	ElementBase
	Codes        []string `json:"codes"`
	AutoPopulate bool     `json:"autoPopulate"`
	FontSize     float64  `json:"fontSize"`
	Color        string   `json:"color"`
}

// BarcodeElement renders a linear barcode
type BarcodeElement struct {
	ElementBase
	Symbology    string  `json:"symbology"`
	Value        string  `json:"value"`
	AutoPopulate bool    `json:"autoPopulate"`
	Height       float64 `json:"height"`
	ShowText     bool    `json:"showText"`
}

// IconTextElement renders an icon with accompanying text, e.g. age warnings
type IconTextElement struct {
	ElementBase
	Icon     string  `json:"icon"`
	Text     string  `json:"text"`
	IconSize float64 `json:"iconSize"`
	FontSize float64 `json:"fontSize"`
	Color    string  `json:"color"`
}

// PackageCounterElement renders a boxed "package X of Y" counter
type PackageCounterElement struct {
	ElementBase
	Format          string  `json:"format"`
	FontSize        float64 `json:"fontSize"`
	BackgroundColor string  `json:"backgroundColor"`
	BorderColor     string  `json:"borderColor"`
	BorderRadius    float64 `json:"borderRadius"`
	Padding         float64 `json:"padding"`
}

// ElementList is an ordered list of elements that round-trips through JSON
// preserving each element's concrete variant via the "type" discriminant.
type ElementList []Element

// UnmarshalJSON decodes each element into its concrete variant
func (l *ElementList) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}

	elements := make(ElementList, 0, len(raws))
	for i, raw := range raws {
		var probe struct {
			Type ElementType `json:"type"`
		}
		if err := json.Unmarshal(raw, &probe); err != nil {
			return fmt.Errorf("element %d: cannot read type tag: %w", i, err)
		}

		el := newEmptyElement(probe.Type)
		if el == nil {
			return fmt.Errorf("element %d: unknown element type %q", i, probe.Type)
		}
		if err := json.Unmarshal(raw, el); err != nil {
			return fmt.Errorf("element %d (%s): %w", i, probe.Type, err)
		}
		elements = append(elements, el)
	}

	*l = elements
	return nil
}

// newEmptyElement allocates the concrete variant for a type tag, or nil for
// an unknown tag
func newEmptyElement(t ElementType) Element {
	switch t {
	case ElementText:
		return &TextElement{}
	case ElementFieldValue:
		return &FieldValueElement{}
	case ElementQRCode:
		return &QRCodeElement{}
	case ElementPictogram:
		return &PictogramElement{}
	case ElementComplianceBadge:
		return &ComplianceBadgeElement{}
	case ElementImage:
		return &ImageElement{}
	case ElementDivider:
		return &DividerElement{}
	case ElementSpacer:
		return &SpacerElement{}
	case ElementMaterialCode:
		return &MaterialCodeElement{}
	case ElementBarcode:
		return &BarcodeElement{}
	case ElementIconText:
		return &IconTextElement{}
	case ElementPackageCounter:
		return &PackageCounterElement{}
	}
	return nil
}

// cloneElement returns an independent deep copy of the element
func cloneElement(el Element) Element {
	switch e := el.(type) {
	case *TextElement:
		c := *e
		return &c
	case *FieldValueElement:
		c := *e
		return &c
	case *QRCodeElement:
		c := *e
		return &c
	case *PictogramElement:
		c := *e
		return &c
	case *ComplianceBadgeElement:
		c := *e
		return &c
	case *ImageElement:
		c := *e
		return &c
	case *DividerElement:
		c := *e
		return &c
	case *SpacerElement:
		c := *e
		return &c
	case *MaterialCodeElement:
		c := *e
		c.Codes = append([]string(nil), e.Codes...)
		return &c
	case *BarcodeElement:
		c := *e
		return &c
	case *IconTextElement:
		c := *e
		return &c
	case *PackageCounterElement:
		c := *e
		return &c
	default:
		panic(fmt.Sprintf("label: unhandled element type %T", el))
	}
}
