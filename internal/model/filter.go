package model

import "time"

// Filter narrows a dataset to matching categories and dates. A nil or
// empty slice means the dimension is unconstrained; both date bounds are
// inclusive.
type Filter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Materials []Material
	Regions   []Region
	Areas     []string
	SubAreas  []string
}

// MatchesCategory reports whether the category passes every constrained
// dimension of the filter.
func (f *Filter) MatchesCategory(c Category) bool {
	if f == nil {
		return true
	}
	if len(f.Materials) > 0 && !containsMaterial(f.Materials, c.Material) {
		return false
	}
	if len(f.Regions) > 0 && !containsRegion(f.Regions, c.Region) {
		return false
	}
	if len(f.Areas) > 0 && !containsString(f.Areas, c.Area) {
		return false
	}
	if len(f.SubAreas) > 0 && !containsString(f.SubAreas, c.SubArea) {
		return false
	}
	return true
}

// MatchesDate reports whether the date lies within the filter's inclusive
// bounds.
func (f *Filter) MatchesDate(t time.Time) bool {
	if f == nil {
		return true
	}
	if f.StartDate != nil && t.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && t.After(*f.EndDate) {
		return false
	}
	return true
}

func containsMaterial(haystack []Material, needle Material) bool {
	for _, m := range haystack {
		if m == needle {
			return true
		}
	}
	return false
}

func containsRegion(haystack []Region, needle Region) bool {
	for _, r := range haystack {
		if r == needle {
			return true
		}
	}
	return false
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
