// Package model defines the core domain types: materials, categories,
// collection events, and the dataset they form.
package model

import (
	"fmt"
	"strings"
)

// Material identifies a waste stream.
type Material string

const (
	// MaterialPaper represents paper collections.
	MaterialPaper Material = "PAPER"
	// MaterialCardboard represents cardboard collections.
	MaterialCardboard Material = "CARDBOARD"
	// MaterialOrganic represents organic/green waste collections.
	MaterialOrganic Material = "ORGANIC"
	// MaterialHousehold represents household/residual waste collections.
	MaterialHousehold Material = "HOUSEHOLD"
)

// KnownMaterials lists every material this build understands, in display order.
var KnownMaterials = []Material{
	MaterialPaper,
	MaterialCardboard,
	MaterialOrganic,
	MaterialHousehold,
}

// ParseMaterial converts a case-insensitive material name into a Material.
func ParseMaterial(s string) (Material, error) {
	m := Material(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range KnownMaterials {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown material %q", s)
}

// Region identifies the municipality a schedule belongs to.
type Region string

// RegionZH is the only region currently published.
const RegionZH Region = "ZH"

// CategoryID is a stable, 1-based identifier for a category within one
// loaded dataset. IDs are dense and never reassigned.
type CategoryID int

// Category is a unique (material, region, area, sub-area) combination.
// Area and SubArea are optional display labels; SubArea is reserved for
// finer granularity than the published datasets currently provide.
type Category struct {
	Material Material
	Region   Region
	Area     string
	SubArea  string
}

// Equal reports whether two categories carry the same attribute tuple.
func (c Category) Equal(other Category) bool {
	return c.Material == other.Material &&
		c.Region == other.Region &&
		c.Area == other.Area &&
		c.SubArea == other.SubArea
}
