// Package filter selects events from a dataset by category attributes and
// date range.
package filter

import (
	"sort"

	"github.com/binalert/bin-alert/internal/model"
)

// Dates returns the dataset's events matching the filter, in dataset
// order. Selection runs in two stages: category ids whose attributes pass
// the filter, then events by id membership and inclusive date bounds. A
// nil filter, and any unset dimension, matches everything.
func Dates(ds *model.Dataset, f *model.Filter) []model.Event {
	if ds == nil {
		return nil
	}

	selected := make(map[model.CategoryID]bool, len(ds.Categories))
	for id, cat := range ds.Categories {
		if f.MatchesCategory(cat) {
			selected[id] = true
		}
	}

	var out []model.Event
	for _, e := range ds.Events {
		if !selected[e.Category] {
			continue
		}
		if !f.MatchesDate(e.Date) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Materials returns the distinct materials present in the dataset, in
// first-seen category-id order.
func Materials(ds *model.Dataset) []model.Material {
	if ds == nil {
		return nil
	}

	seen := make(map[model.Material]bool)
	var out []model.Material
	for _, id := range sortedIDs(ds) {
		m := ds.Categories[id].Material
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	return out
}

// Areas returns the distinct non-empty areas present in the dataset, in
// first-seen category-id order.
func Areas(ds *model.Dataset) []string {
	if ds == nil {
		return nil
	}

	seen := make(map[string]bool)
	var out []string
	for _, id := range sortedIDs(ds) {
		a := ds.Categories[id].Area
		if a == "" || seen[a] {
			continue
		}
		seen[a] = true
		out = append(out, a)
	}
	return out
}

func sortedIDs(ds *model.Dataset) []model.CategoryID {
	ids := make([]model.CategoryID, 0, len(ds.Categories))
	for id := range ds.Categories {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
