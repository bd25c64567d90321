package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMaterial(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Material
		wantErr bool
	}{
		{name: "exact", input: "PAPER", want: MaterialPaper},
		{name: "lowercase", input: "cardboard", want: MaterialCardboard},
		{name: "padded", input: "  organic ", want: MaterialOrganic},
		{name: "household", input: "Household", want: MaterialHousehold},
		{name: "unknown", input: "plastics", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMaterial(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCategory_Equal(t *testing.T) {
	base := Category{Material: MaterialPaper, Region: RegionZH, Area: "8001"}

	assert.True(t, base.Equal(Category{Material: MaterialPaper, Region: RegionZH, Area: "8001"}))
	assert.False(t, base.Equal(Category{Material: MaterialCardboard, Region: RegionZH, Area: "8001"}))
	assert.False(t, base.Equal(Category{Material: MaterialPaper, Region: RegionZH, Area: "8002"}))
	assert.False(t, base.Equal(Category{Material: MaterialPaper, Region: RegionZH, Area: "8001", SubArea: "north"}))
}
