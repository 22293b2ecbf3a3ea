package label

// Registry holds the built-in template presets and resolves the default
// design for a product category. Purely in-memory; no storage or network
// access happens at this layer.
type Registry struct {
	templates []Template
}

// NewRegistry creates a registry populated with the built-in templates
func NewRegistry() *Registry {
	return &Registry{templates: BuiltinTemplates()}
}

// All returns the built-in templates with deep-copied design documents, so
// callers can never alias the registry's canonical state
func (r *Registry) All() []Template {
	out := make([]Template, len(r.templates))
	for i, t := range r.templates {
		out[i] = t
		out[i].Design = t.Design.Clone()
	}
	return out
}

// ByID returns a template by id with a deep-copied design document
func (r *Registry) ByID(id string) (Template, bool) {
	for _, t := range r.templates {
		if t.ID == id {
			t.Design = t.Design.Clone()
			return t, true
		}
	}
	return Template{}, false
}

// DefaultDesignForGroup returns a deep copy of the matched template's design
// document for the category, or a fresh blank document when no template
// matches. Unknown categories are not an error: the editor must always get
// something renderable. The bool reports whether a built-in matched.
func (r *Registry) DefaultDesignForGroup(category Category) (DesignDocument, bool) {
	for _, t := range r.templates {
		if t.Category == category {
			return t.Design.Clone(), true
		}
	}
	return NewBlankDesign(), false
}
