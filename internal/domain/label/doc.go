// Package label contains the master label editor's document model: the field
// catalog, the typed element set, sections, the design document aggregate and
// the built-in template registry used to produce printable compliance labels.
package label
