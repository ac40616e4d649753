//go:build unit
// +build unit

package dietary

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize_GroupsByNormalizedLabel(t *testing.T) {
	alice := uuid.NewString()
	bob := uuid.NewString()

	items := Summarize([]*Restriction{
		{UserID: alice, Label: "Laktose", Severity: SeverityIntolerance},
		{UserID: bob, Label: " laktose ", Severity: SeverityPreference, Notes: "nur Milch"},
		{UserID: bob, Label: "Erdnüsse", Severity: SeveritySevereAllergy},
		{UserID: alice, Label: "vegetarisch", Severity: SeverityPreference},
		{UserID: alice, Label: "LAKTOSE", Severity: SeverityIntolerance},
		{UserID: alice, Label: "   ", Severity: SeverityAllergy},
	})

	require.Len(t, items, 3)

	assert.Equal(t, "Erdnüsse", items[0].Label)
	assert.Equal(t, SeveritySevereAllergy, items[0].Severity)
	assert.Equal(t, 1, items[0].Count)

	assert.Equal(t, "Laktose", items[1].Label)
	assert.Equal(t, 2, items[1].Count)
	assert.Equal(t, SeverityIntolerance, items[1].Severity)
	assert.Equal(t, []string{"nur Milch"}, items[1].Notes)

	assert.Equal(t, "vegetarisch", items[2].Label)
}

func TestSummarize_Empty(t *testing.T) {
	assert.Empty(t, Summarize(nil))
}

func TestInput_Validate(t *testing.T) {
	valid := &Input{Label: "Gluten", Severity: SeverityAllergy}
	assert.NoError(t, valid.Validate())

	invalid := &Input{Label: "Gluten", Severity: "deadly"}
	assert.Error(t, invalid.Validate())

	blank := &Input{Label: "  ", Severity: SeverityAllergy}
	assert.Error(t, blank.Validate())
}
