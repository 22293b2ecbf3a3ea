package label

import (
	"fmt"
	"sort"

	"github.com/lucamadonia/dpp-backend/internal/domain/shared"
)

// DocumentVersion is the current design document schema version. Persisted as
// `_version` and required to survive serialization round-trips unchanged so
// forward migrations can key off it.
const DocumentVersion = 1

// A6 label dimensions in PostScript points (105mm x 148mm)
const (
	PageWidthA6  = 297.64
	PageHeightA6 = 419.53
)

// Default page geometry and typography for a blank design
const (
	defaultPageMargin = 8.0
	defaultFontFamily = "Inter"
	defaultPageSize   = "A6"
	defaultBackground = "#ffffff"
)

// DesignDocument is the complete serializable description of one printable
// label layout: page geometry, global typography defaults, ordered sections
// and a flat element list tagged with owning section ids.
//
// The document must stay fully JSON-serializable (no functions, no cycles):
// registry isolation and tenant persistence both go through the serialized shape.
type DesignDocument struct {
	Version         int         `json:"_version"`
	PageSize        string      `json:"pageSize"`
	PageWidth       float64     `json:"pageWidth"`
	PageHeight      float64     `json:"pageHeight"`
	PageMargin      float64     `json:"pageMargin"`
	BackgroundColor string      `json:"backgroundColor"`
	FontFamily      string      `json:"fontFamily"`
	FontSize        float64     `json:"fontSize"`
	TextColor       string      `json:"textColor"`
	Sections        []Section   `json:"sections"`
	Elements        ElementList `json:"elements"`
}

// NewBlankDesign assembles the fixed A6 page geometry, default typography and
// the default section set into an empty document. Callers populate Elements
// afterward.
func NewBlankDesign() DesignDocument {
	return DesignDocument{
		Version:         DocumentVersion,
		PageSize:        defaultPageSize,
		PageWidth:       PageWidthA6,
		PageHeight:      PageHeightA6,
		PageMargin:      defaultPageMargin,
		BackgroundColor: defaultBackground,
		FontFamily:      defaultFontFamily,
		FontSize:        defaultFontSize,
		TextColor:       defaultTextColor,
		Sections:        DefaultSections(),
		Elements:        ElementList{},
	}
}

// Clone returns an independent deep copy of the document. Mutating the copy
// never affects the original.
func (d *DesignDocument) Clone() DesignDocument {
	c := *d
	c.Sections = append([]Section(nil), d.Sections...)
	c.Elements = make(ElementList, len(d.Elements))
	for i, el := range d.Elements {
		c.Elements[i] = cloneElement(el)
	}
	return c
}

// Validate enforces the document invariants: every element's sectionId must
// reference a section present in this document, and element ids must be unique.
func (d *DesignDocument) Validate() error {
	sections := make(map[SectionID]bool, len(d.Sections))
	for _, s := range d.Sections {
		if s.ID == "" {
			return shared.NewDomainError("INVALID_INPUT", "Section id cannot be empty")
		}
		if sections[s.ID] {
			return shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Duplicate section id %q", s.ID))
		}
		sections[s.ID] = true
	}

	ids := make(map[string]bool, len(d.Elements))
	for _, el := range d.Elements {
		base := el.Base()
		if !base.Kind.IsValid() {
			return shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Unknown element type %q", base.Kind))
		}
		if base.ID == "" {
			return shared.NewDomainError("INVALID_INPUT", "Element id cannot be empty")
		}
		if ids[base.ID] {
			return shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Duplicate element id %q", base.ID))
		}
		ids[base.ID] = true
		if !sections[base.SectionID] {
			return shared.NewDomainError("INVALID_INPUT",
				fmt.Sprintf("Element %q references unknown section %q", base.ID, base.SectionID))
		}
	}
	return nil
}

// SectionByID returns the section with the given id, or nil
func (d *DesignDocument) SectionByID(id SectionID) *Section {
	for i := range d.Sections {
		if d.Sections[i].ID == id {
			return &d.Sections[i]
		}
	}
	return nil
}

// ElementByID returns the element with the given id, or nil
func (d *DesignDocument) ElementByID(id string) Element {
	for _, el := range d.Elements {
		if el.Base().ID == id {
			return el
		}
	}
	return nil
}

// ElementsInSection returns the section's elements ordered by sortOrder,
// ties broken by position in the flat list
func (d *DesignDocument) ElementsInSection(id SectionID) []Element {
	var out []Element
	for _, el := range d.Elements {
		if el.Base().SectionID == id {
			out = append(out, el)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Base().SortOrder < out[j].Base().SortOrder
	})
	return out
}

// OrderedSections returns sections sorted by sortOrder, ties broken by
// insertion order
func (d *DesignDocument) OrderedSections() []Section {
	out := append([]Section(nil), d.Sections...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SortOrder < out[j].SortOrder
	})
	return out
}

// AddElement appends an element after checking its section exists and its id
// is unique within the document
func (d *DesignDocument) AddElement(el Element) error {
	base := el.Base()
	if d.SectionByID(base.SectionID) == nil {
		return shared.NewDomainError("INVALID_INPUT",
			fmt.Sprintf("Section %q does not exist in this document", base.SectionID))
	}
	if d.ElementByID(base.ID) != nil {
		return shared.NewDomainError("ALREADY_EXISTS",
			fmt.Sprintf("Element id %q already exists in this document", base.ID))
	}
	d.Elements = append(d.Elements, el)
	return nil
}

// RemoveElement deletes an element by id
func (d *DesignDocument) RemoveElement(id string) error {
	for i, el := range d.Elements {
		if el.Base().ID == id {
			d.Elements = append(d.Elements[:i], d.Elements[i+1:]...)
			return nil
		}
	}
	return shared.ErrNotFound
}

// MoveElement reassigns an element to a section at the given position
func (d *DesignDocument) MoveElement(id string, sectionID SectionID, sortOrder int) error {
	if d.SectionByID(sectionID) == nil {
		return shared.NewDomainError("INVALID_INPUT",
			fmt.Sprintf("Section %q does not exist in this document", sectionID))
	}
	el := d.ElementByID(id)
	if el == nil {
		return shared.ErrNotFound
	}
	el.Base().SectionID = sectionID
	el.Base().SortOrder = sortOrder
	return nil
}

// AddSection appends a section; its sort order must not collide with an
// existing one
func (d *DesignDocument) AddSection(s Section) error {
	if s.ID == "" {
		return shared.NewDomainError("INVALID_INPUT", "Section id cannot be empty")
	}
	if d.SectionByID(s.ID) != nil {
		return shared.NewDomainError("ALREADY_EXISTS",
			fmt.Sprintf("Section %q already exists in this document", s.ID))
	}
	for _, existing := range d.Sections {
		if existing.SortOrder == s.SortOrder {
			return shared.NewDomainError("INVALID_INPUT",
				fmt.Sprintf("Section sort order %d is already taken by %q", s.SortOrder, existing.ID))
		}
	}
	d.Sections = append(d.Sections, s)
	return nil
}

// RemoveSection deletes a section and all elements assigned to it
func (d *DesignDocument) RemoveSection(id SectionID) error {
	idx := -1
	for i := range d.Sections {
		if d.Sections[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return shared.ErrNotFound
	}
	d.Sections = append(d.Sections[:idx], d.Sections[idx+1:]...)

	kept := d.Elements[:0]
	for _, el := range d.Elements {
		if el.Base().SectionID != id {
			kept = append(kept, el)
		}
	}
	d.Elements = kept
	return nil
}
