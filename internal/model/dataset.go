package model

import "time"

// Event is one scheduled collection: a category on a calendar date.
// Dates carry local midnight with no time-of-day component.
type Event struct {
	Date     time.Time
	Category CategoryID
}

// Dataset pairs the category table with the flat, ordered event list a
// provider produced. A dataset is immutable once built; it lives as long
// as the provider that loaded it.
type Dataset struct {
	Categories map[CategoryID]Category
	Events     []Event
}

// Day truncates t to local midnight.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
