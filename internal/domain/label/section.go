package label

// SectionID names a section within a design document. The six canonical ids
// below cover the standard label zones; templates may define ad-hoc custom
// zones with their own ids (the Logistics template does).
type SectionID string

const (
	SectionIdentity       SectionID = "identity"
	SectionDPP            SectionID = "dpp"
	SectionCompliance     SectionID = "compliance"
	SectionSustainability SectionID = "sustainability"
	SectionCustom         SectionID = "custom"
	SectionFooter         SectionID = "footer"
)

// IsCanonical reports whether the id is one of the six standard zones
func (s SectionID) IsCanonical() bool {
	switch s {
	case SectionIdentity, SectionDPP, SectionCompliance,
		SectionSustainability, SectionCustom, SectionFooter:
		return true
	}
	return false
}

// String returns the string representation of SectionID
func (s SectionID) String() string {
	return string(s)
}

// Section is a named, ordered grouping of elements with shared visual framing
type Section struct {
	ID            SectionID `json:"id"`
	LabelKey      string    `json:"labelKey"`
	Visible       bool      `json:"visible"`
	Collapsed     bool      `json:"collapsed"`
	SortOrder     int       `json:"sortOrder"`
	PaddingTop    float64   `json:"paddingTop"`
	PaddingBottom float64   `json:"paddingBottom"`
	ShowBorder    bool      `json:"showBorder"`
	BorderColor   string    `json:"borderColor"`
}

// DefaultSections returns the six canonical sections in their fixed order.
// Each call returns a fresh independent slice since callers mutate it.
// The custom and footer zones start hidden.
func DefaultSections() []Section {
	return []Section{
		{ID: SectionIdentity, LabelKey: "label.section.identity", Visible: true, SortOrder: 0, PaddingTop: 4, PaddingBottom: 4, ShowBorder: false, BorderColor: defaultBorderColor},
		{ID: SectionDPP, LabelKey: "label.section.dpp", Visible: true, SortOrder: 1, PaddingTop: 4, PaddingBottom: 4, ShowBorder: false, BorderColor: defaultBorderColor},
		{ID: SectionCompliance, LabelKey: "label.section.compliance", Visible: true, SortOrder: 2, PaddingTop: 4, PaddingBottom: 4, ShowBorder: true, BorderColor: defaultBorderColor},
		{ID: SectionSustainability, LabelKey: "label.section.sustainability", Visible: true, SortOrder: 3, PaddingTop: 4, PaddingBottom: 4, ShowBorder: false, BorderColor: defaultBorderColor},
		{ID: SectionCustom, LabelKey: "label.section.custom", Visible: false, SortOrder: 4, PaddingTop: 4, PaddingBottom: 4, ShowBorder: false, BorderColor: defaultBorderColor},
		{ID: SectionFooter, LabelKey: "label.section.footer", Visible: false, SortOrder: 5, PaddingTop: 2, PaddingBottom: 2, ShowBorder: false, BorderColor: defaultBorderColor},
	}
}
