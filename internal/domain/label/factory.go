package label

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Default visual values applied by the element factory. The editor relies on
// every element arriving fully populated, so there are no zero-value fields
// left for the UI to guess at.
const (
	defaultTextColor    = "#1f2937"
	defaultMutedColor   = "#6b7280"
	defaultBorderColor  = "#d1d5db"
	defaultBadgeColor   = "#111827"
	defaultFontSize     = 8
	defaultHeadingSize  = 10
	defaultQRSize       = 64
	defaultPictogramSz  = 28
	defaultBadgeSize    = 24
	defaultBarcodeH     = 32
	defaultDividerThick = 0.5
	defaultSpacerHeight = 6
)

// IDGenerator produces element ids unique for the lifetime of one design
// document. Injected so tests can use a deterministic sequence.
type IDGenerator interface {
	NextID() string
}

// ClockIDGenerator combines a monotonic counter with a timestamp. Collisions
// across process restarts are acceptable: ids only need to be unique within a
// single design document.
type ClockIDGenerator struct {
	counter atomic.Uint64
}

// NewIDGenerator creates the default clock-based id generator
func NewIDGenerator() *ClockIDGenerator {
	return &ClockIDGenerator{}
}

// NextID returns the next element id
func (g *ClockIDGenerator) NextID() string {
	n := g.counter.Add(1)
	return fmt.Sprintf("el-%d-%d", time.Now().UnixMilli(), n)
}

// SequenceIDGenerator yields el-1, el-2, ... for deterministic documents
type SequenceIDGenerator struct {
	counter atomic.Uint64
}

// NewSequenceIDGenerator creates a deterministic id generator
func NewSequenceIDGenerator() *SequenceIDGenerator {
	return &SequenceIDGenerator{}
}

// NextID returns the next element id in sequence
func (g *SequenceIDGenerator) NextID() string {
	return fmt.Sprintf("el-%d", g.counter.Add(1))
}

// ElementFactory produces fully-populated elements with documented defaults
type ElementFactory struct {
	ids IDGenerator
}

// NewElementFactory creates an element factory using the given id generator
func NewElementFactory(ids IDGenerator) *ElementFactory {
	return &ElementFactory{ids: ids}
}

// New constructs exactly one concrete element matching the type tag. The
// switch is exhaustive over the closed element set; an unknown tag is a
// programming defect, not a runtime condition, and panics.
func (f *ElementFactory) New(typ ElementType, sectionID SectionID, sortOrder int) Element {
	base := ElementBase{
		Kind:      typ,
		ID:        f.ids.NextID(),
		SectionID: sectionID,
		SortOrder: sortOrder,
	}

	switch typ {
	case ElementText:
		return &TextElement{
			ElementBase: base,
			Content:     "",
			FontSize:    defaultFontSize,
			FontWeight:  "normal",
			Color:       defaultTextColor,
			Align:       AlignLeft,
		}
	case ElementFieldValue:
		return &FieldValueElement{
			ElementBase: base,
			Field:       FieldProductName,
			ShowLabel:   true,
			LabelText:   FieldProductName.DisplayLabel(),
			FontSize:    defaultFontSize,
			FontWeight:  "normal",
			Color:       defaultTextColor,
			Layout:      LayoutInline,
		}
	case ElementQRCode:
		return &QRCodeElement{
			ElementBase: base,
			Size:        defaultQRSize,
			ShowLabel:   true,
			LabelText:   "Digital Product Passport",
			ShowURL:     false,
		}
	case ElementPictogram:
		return &PictogramElement{
			ElementBase: base,
			Pictogram:   "recycling",
			Source:      PictogramBuiltin,
			Size:        defaultPictogramSz,
		}
	case ElementComplianceBadge:
		return &ComplianceBadgeElement{
			ElementBase:     base,
			Badge:           "ce",
			Symbol:          "CE",
			Style:           BadgeOutlined,
			Size:            defaultBadgeSize,
			Color:           defaultBadgeColor,
			BackgroundColor: "#ffffff",
		}
	case ElementImage:
		return &ImageElement{
			ElementBase: base,
			Width:       48,
			Height:      48,
			Fit:         "contain",
		}
	case ElementDivider:
		return &DividerElement{
			ElementBase: base,
			Thickness:   defaultDividerThick,
			Color:       defaultBorderColor,
			MarginY:     4,
		}
	case ElementSpacer:
		return &SpacerElement{
			ElementBase: base,
			Height:      defaultSpacerHeight,
		}
	case ElementMaterialCode:
		return &MaterialCodeElement{
			ElementBase:  base,
			Codes:        []string{},
			AutoPopulate: true,
			FontSize:     defaultFontSize,
			Color:        defaultMutedColor,
		}
	case ElementBarcode:
		return &BarcodeElement{
			ElementBase:  base,
			Symbology:    "EAN13",
			AutoPopulate: true,
			Height:       defaultBarcodeH,
			ShowText:     true,
		}
	case ElementIconText:
		return &IconTextElement{
			ElementBase: base,
			Icon:        "info",
			IconSize:    12,
			FontSize:    defaultFontSize,
			Color:       defaultTextColor,
		}
	case ElementPackageCounter:
		return &PackageCounterElement{
			ElementBase:     base,
			Format:          "Package {current} of {total}",
			FontSize:        defaultFontSize,
			BackgroundColor: "#f3f4f6",
			BorderColor:     defaultBorderColor,
			BorderRadius:    2,
			Padding:         3,
		}
	default:
		panic(fmt.Sprintf("label: unknown element type %q", typ))
	}
}
