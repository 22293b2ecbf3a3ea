package label

import "time"

// builtinTimestamp is the release date of the built-in preset catalog.
// Builders must stay deterministic, so they do not read the wall clock.
var builtinTimestamp = time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)

// docBuilder accumulates a design document while assigning element sort
// orders by literal position within each section, keeping rendering order
// stable and monotonically increasing.
type docBuilder struct {
	doc     DesignDocument
	factory *ElementFactory
	orders  map[SectionID]int
}

func newDocBuilder() *docBuilder {
	return &docBuilder{
		doc:     NewBlankDesign(),
		factory: NewElementFactory(NewSequenceIDGenerator()),
		orders:  make(map[SectionID]int),
	}
}

func (b *docBuilder) next(section SectionID) int {
	order := b.orders[section]
	b.orders[section] = order + 1
	return order
}

func (b *docBuilder) add(typ ElementType, section SectionID) Element {
	el := b.factory.New(typ, section, b.next(section))
	b.doc.Elements = append(b.doc.Elements, el)
	return el
}

func (b *docBuilder) text(section SectionID) *TextElement {
	return b.add(ElementText, section).(*TextElement)
}

func (b *docBuilder) heading(section SectionID, content string) *TextElement {
	t := b.text(section)
	t.Content = content
	t.FontSize = defaultHeadingSize
	t.FontWeight = "bold"
	t.Uppercase = true
	return t
}

func (b *docBuilder) field(section SectionID, key FieldKey) *FieldValueElement {
	f := b.add(ElementFieldValue, section).(*FieldValueElement)
	f.Field = key
	f.LabelText = key.DisplayLabel()
	return f
}

func (b *docBuilder) badge(section SectionID, id, symbol string) *ComplianceBadgeElement {
	bd := b.add(ElementComplianceBadge, section).(*ComplianceBadgeElement)
	bd.Badge = id
	bd.Symbol = symbol
	return bd
}

func (b *docBuilder) pictogram(section SectionID, id string) *PictogramElement {
	p := b.add(ElementPictogram, section).(*PictogramElement)
	p.Pictogram = id
	return p
}

func (b *docBuilder) qr(section SectionID) *QRCodeElement {
	return b.add(ElementQRCode, section).(*QRCodeElement)
}

func (b *docBuilder) barcode(section SectionID) *BarcodeElement {
	return b.add(ElementBarcode, section).(*BarcodeElement)
}

func (b *docBuilder) materialCode(section SectionID) *MaterialCodeElement {
	return b.add(ElementMaterialCode, section).(*MaterialCodeElement)
}

func (b *docBuilder) iconText(section SectionID, icon, text string) *IconTextElement {
	it := b.add(ElementIconText, section).(*IconTextElement)
	it.Icon = icon
	it.Text = text
	return it
}

func (b *docBuilder) divider(section SectionID) *DividerElement {
	return b.add(ElementDivider, section).(*DividerElement)
}

func (b *docBuilder) packageCounter(section SectionID) *PackageCounterElement {
	return b.add(ElementPackageCounter, section).(*PackageCounterElement)
}

func newBuiltin(id, name, description string, category Category, variant string, doc DesignDocument) Template {
	return Template{
		ID:          id,
		Name:        name,
		Description: description,
		Category:    category,
		Variant:     variant,
		Design:      doc,
		IsDefault:   true,
		CreatedAt:   builtinTimestamp,
		UpdatedAt:   builtinTimestamp,
	}
}

// BuildElectronicsTemplate curates the electronics label: CE/WEEE/RoHS
// markings, EPREL registration and the energy pictogram.
func BuildElectronicsTemplate() Template {
	b := newDocBuilder()

	name := b.field(SectionIdentity, FieldProductName)
	name.ShowLabel = false
	name.FontSize = defaultHeadingSize
	name.FontWeight = "bold"
	b.field(SectionIdentity, FieldManufacturerName)
	b.field(SectionIdentity, FieldGTIN)
	b.field(SectionIdentity, FieldSerialNumber)

	b.qr(SectionDPP)
	b.field(SectionDPP, FieldBatchNumber)

	b.heading(SectionCompliance, "Compliance")
	b.badge(SectionCompliance, "ce", "CE")
	b.badge(SectionCompliance, "weee", "WEEE")
	b.badge(SectionCompliance, "rohs", "RoHS")
	b.pictogram(SectionCompliance, "weee-bin")
	b.field(SectionCompliance, FieldEPRELID)

	b.pictogram(SectionSustainability, "energy-rating")
	b.field(SectionSustainability, FieldEnergyClass)
	mc := b.materialCode(SectionSustainability)
	mc.AutoPopulate = true

	footer := b.text(SectionFooter)
	footer.Content = "Dispose of electronic equipment at designated collection points."
	footer.FontSize = 6
	footer.Color = defaultMutedColor

	return newBuiltin(
		"tpl-electronics-standard",
		"Electronics Standard",
		"CE, WEEE and RoHS markings with EPREL registration and energy rating.",
		CategoryElectronics,
		"universal",
		b.doc,
	)
}

// BuildTextilesTemplate curates the textiles label: fibre composition, care
// instructions and material codes.
func BuildTextilesTemplate() Template {
	b := newDocBuilder()

	name := b.field(SectionIdentity, FieldProductName)
	name.ShowLabel = false
	name.FontSize = defaultHeadingSize
	name.FontWeight = "bold"
	b.field(SectionIdentity, FieldManufacturerName)
	b.field(SectionIdentity, FieldCountryOfOrigin)

	b.qr(SectionDPP)
	b.field(SectionDPP, FieldBatchNumber)

	b.heading(SectionCompliance, "Composition")
	comp := b.field(SectionCompliance, FieldMaterialComposition)
	comp.Layout = LayoutStacked
	b.iconText(SectionCompliance, "wash", "See care label before washing")
	b.field(SectionCompliance, FieldCareInstructions)

	mc := b.materialCode(SectionSustainability)
	mc.AutoPopulate = true
	b.pictogram(SectionSustainability, "recycling")
	b.field(SectionSustainability, FieldCarbonFootprint)

	return newBuiltin(
		"tpl-textiles-standard",
		"Textiles Standard",
		"Fibre composition, care instructions and recycling codes per EU textile labelling.",
		CategoryTextiles,
		"universal",
		b.doc,
	)
}

// BuildToysTemplate curates the toys label: CE and EN 71 markings plus the
// age warning block.
func BuildToysTemplate() Template {
	b := newDocBuilder()

	name := b.field(SectionIdentity, FieldProductName)
	name.ShowLabel = false
	name.FontSize = defaultHeadingSize
	name.FontWeight = "bold"
	b.field(SectionIdentity, FieldManufacturerName)
	b.field(SectionIdentity, FieldGTIN)

	b.qr(SectionDPP)
	b.field(SectionDPP, FieldBatchNumber)

	b.heading(SectionCompliance, "Safety")
	b.badge(SectionCompliance, "ce", "CE")
	b.badge(SectionCompliance, "en71", "EN 71")
	warning := b.iconText(SectionCompliance, "age-warning",
		"Warning! Not suitable for children under 3 years. Small parts.")
	warning.Color = "#b91c1c"

	b.pictogram(SectionSustainability, "recycling")
	mc := b.materialCode(SectionSustainability)
	mc.AutoPopulate = true

	return newBuiltin(
		"tpl-toys-standard",
		"Toys Standard",
		"CE and EN 71 safety markings with the mandatory age warning.",
		CategoryToys,
		"universal",
		b.doc,
	)
}

// BuildHouseholdTemplate curates the household goods label
func BuildHouseholdTemplate() Template {
	b := newDocBuilder()

	name := b.field(SectionIdentity, FieldProductName)
	name.ShowLabel = false
	name.FontSize = defaultHeadingSize
	name.FontWeight = "bold"
	b.field(SectionIdentity, FieldManufacturerName)
	b.field(SectionIdentity, FieldNetWeight)
	b.field(SectionIdentity, FieldCountryOfOrigin)

	b.qr(SectionDPP)
	b.field(SectionDPP, FieldBatchNumber)

	b.heading(SectionCompliance, "Compliance")
	b.badge(SectionCompliance, "ce", "CE")
	b.field(SectionCompliance, FieldExpiryDate)

	b.pictogram(SectionSustainability, "recycling")
	mc := b.materialCode(SectionSustainability)
	mc.AutoPopulate = true

	return newBuiltin(
		"tpl-household-standard",
		"Household Standard",
		"General household goods label with CE marking and recycling codes.",
		CategoryHousehold,
		"universal",
		b.doc,
	)
}

// BuildGeneralTemplate curates the minimal universal label usable for any
// product family
func BuildGeneralTemplate() Template {
	b := newDocBuilder()

	name := b.field(SectionIdentity, FieldProductName)
	name.ShowLabel = false
	name.FontSize = defaultHeadingSize
	name.FontWeight = "bold"
	b.field(SectionIdentity, FieldManufacturerName)

	b.qr(SectionDPP)
	b.field(SectionDPP, FieldBatchNumber)
	b.field(SectionDPP, FieldGTIN)

	return newBuiltin(
		"tpl-general-universal",
		"General Universal",
		"Minimal label with identity fields and the passport QR code.",
		CategoryGeneral,
		"universal",
		b.doc,
	)
}

// Logistics zone ids. The logistics label replaces the six standard zones
// with five transport-oriented ones.
const (
	SectionLogisticsHeader     SectionID = "logistics-header"
	SectionLogisticsProduct    SectionID = "logistics-product"
	SectionLogisticsRouting    SectionID = "logistics-routing"
	SectionLogisticsCompliance SectionID = "logistics-compliance"
	SectionLogisticsFooter     SectionID = "logistics-footer"
)

// logisticsSections returns the five custom logistics zones
func logisticsSections() []Section {
	return []Section{
		{ID: SectionLogisticsHeader, LabelKey: "label.section.logisticsHeader", Visible: true, SortOrder: 0, PaddingTop: 2, PaddingBottom: 2, ShowBorder: true, BorderColor: defaultBorderColor},
		{ID: SectionLogisticsProduct, LabelKey: "label.section.logisticsProduct", Visible: true, SortOrder: 1, PaddingTop: 4, PaddingBottom: 4, ShowBorder: false, BorderColor: defaultBorderColor},
		{ID: SectionLogisticsRouting, LabelKey: "label.section.logisticsRouting", Visible: true, SortOrder: 2, PaddingTop: 4, PaddingBottom: 4, ShowBorder: true, BorderColor: defaultBorderColor},
		{ID: SectionLogisticsCompliance, LabelKey: "label.section.logisticsCompliance", Visible: true, SortOrder: 3, PaddingTop: 4, PaddingBottom: 4, ShowBorder: true, BorderColor: defaultBorderColor},
		{ID: SectionLogisticsFooter, LabelKey: "label.section.logisticsFooter", Visible: true, SortOrder: 4, PaddingTop: 2, PaddingBottom: 2, ShowBorder: false, BorderColor: defaultBorderColor},
	}
}

// BuildLogisticsTemplate curates the B2B transport label: shipment
// identifiers, importer block, machine-readable codes, material codes and
// ISO 780 handling pictograms.
func BuildLogisticsTemplate() Template {
	b := newDocBuilder()
	b.doc.Sections = logisticsSections()
	b.orders = make(map[SectionID]int)

	title := b.heading(SectionLogisticsHeader, "Transport Label")
	title.Align = AlignCenter
	counter := b.packageCounter(SectionLogisticsHeader)
	counter.Format = "Package {current} of {total}"

	b.field(SectionLogisticsProduct, FieldSKU)
	b.field(SectionLogisticsProduct, FieldBatchNumber)
	b.field(SectionLogisticsProduct, FieldNetWeight)
	b.field(SectionLogisticsProduct, FieldGrossWeight)
	b.divider(SectionLogisticsProduct)
	b.field(SectionLogisticsProduct, FieldProductionDate)

	importer := b.field(SectionLogisticsRouting, FieldImporterName)
	importer.Layout = LayoutStacked
	b.field(SectionLogisticsRouting, FieldImporterEORI)
	b.field(SectionLogisticsRouting, FieldCountryOfOrigin)

	b.badge(SectionLogisticsCompliance, "ce", "CE")
	qr := b.qr(SectionLogisticsCompliance)
	qr.ShowURL = true
	bc := b.barcode(SectionLogisticsCompliance)
	bc.AutoPopulate = true
	mc := b.materialCode(SectionLogisticsCompliance)
	mc.AutoPopulate = true

	b.pictogram(SectionLogisticsFooter, "iso780-fragile")
	b.pictogram(SectionLogisticsFooter, "iso780-keep-dry")
	b.pictogram(SectionLogisticsFooter, "iso780-this-way-up")

	return newBuiltin(
		"tpl-logistics-2026",
		"Logistics 2026",
		"B2B transport label with shipment identifiers, importer block and ISO 780 handling marks.",
		CategoryLogistics,
		"b2b",
		b.doc,
	)
}

// BuiltinTemplates constructs the full preset catalog. Each call builds fresh
// template values; the registry holds one set for the process lifetime.
func BuiltinTemplates() []Template {
	return []Template{
		BuildElectronicsTemplate(),
		BuildTextilesTemplate(),
		BuildToysTemplate(),
		BuildHouseholdTemplate(),
		BuildGeneralTemplate(),
		BuildLogisticsTemplate(),
	}
}
