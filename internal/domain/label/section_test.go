package label

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSections(t *testing.T) {
	sections := DefaultSections()
	require.Len(t, sections, 6)

	expectedOrder := []SectionID{
		SectionIdentity, SectionDPP, SectionCompliance,
		SectionSustainability, SectionCustom, SectionFooter,
	}
	for i, s := range sections {
		assert.Equal(t, expectedOrder[i], s.ID)
		assert.Equal(t, i, s.SortOrder)
		assert.NotEmpty(t, s.LabelKey)
	}

	// custom and footer start hidden, everything else visible
	for _, s := range sections {
		if s.ID == SectionCustom || s.ID == SectionFooter {
			assert.False(t, s.Visible, "section %s should start hidden", s.ID)
		} else {
			assert.True(t, s.Visible, "section %s should start visible", s.ID)
		}
	}
}

func TestDefaultSections_FreshSlicePerCall(t *testing.T) {
	first := DefaultSections()
	second := DefaultSections()

	first[0].Visible = false
	first[0].LabelKey = "mutated"

	assert.True(t, second[0].Visible)
	assert.Equal(t, "label.section.identity", second[0].LabelKey)
}

func TestSectionID_IsCanonical(t *testing.T) {
	for _, id := range []SectionID{SectionIdentity, SectionDPP, SectionCompliance, SectionSustainability, SectionCustom, SectionFooter} {
		assert.True(t, id.IsCanonical())
	}
	assert.False(t, SectionID("logistics-header").IsCanonical())
	assert.False(t, SectionID("").IsCanonical())
}
