//go:build unit
// +build unit

package measurements

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInput_ResolvedUnit(t *testing.T) {
	assert.Equal(t, UnitCM, (&Input{Kind: KindChest}).ResolvedUnit())
	assert.Equal(t, UnitEU, (&Input{Kind: KindShoeSize}).ResolvedUnit())
	assert.Equal(t, UnitSize, (&Input{Kind: KindDressSize}).ResolvedUnit())
	assert.Equal(t, UnitEU, (&Input{Kind: KindHead, Unit: UnitEU}).ResolvedUnit())
}

func TestInput_Validate(t *testing.T) {
	tests := []struct {
		name    string
		input   Input
		wantErr bool
	}{
		{"valid", Input{Kind: KindWaist, Value: 82.5}, false},
		{"zero value", Input{Kind: KindWaist, Value: 0}, true},
		{"unknown kind", Input{Kind: "elbow", Value: 10}, true},
		{"unknown unit", Input{Kind: KindWaist, Value: 80, Unit: "inch"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
