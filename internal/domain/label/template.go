package label

import "time"

// Category is the product-family key a template is curated for. It doubles as
// the lookup key for a tenant's saved label design.
type Category string

const (
	CategoryElectronics Category = "electronics"
	CategoryTextiles    Category = "textiles"
	CategoryToys        Category = "toys"
	CategoryHousehold   Category = "household"
	CategoryGeneral     Category = "general"
	CategoryLogistics   Category = "logistics"
)

// IsValid checks if the Category is a valid value
func (c Category) IsValid() bool {
	switch c {
	case CategoryElectronics, CategoryTextiles, CategoryToys,
		CategoryHousehold, CategoryGeneral, CategoryLogistics:
		return true
	}
	return false
}

// String returns the string representation of Category
func (c Category) String() string {
	return string(c)
}

// AllCategories returns all valid Category values
func AllCategories() []Category {
	return []Category{
		CategoryElectronics, CategoryTextiles, CategoryToys,
		CategoryHousehold, CategoryGeneral, CategoryLogistics,
	}
}

// Template is an immutable, named preset bundling a category with a starting
// design document. The embedded document is deep-copied before any caller may
// edit it; the preset itself never changes after construction.
type Template struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Category    Category       `json:"category"`
	Variant     string         `json:"variant"`
	Design      DesignDocument `json:"design"`
	IsDefault   bool           `json:"isDefault"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}
