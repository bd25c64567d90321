package provider

import (
	"time"

	"github.com/binalert/bin-alert/internal/model"
)

// Registry assigns stable identifiers to unique category attribute tuples.
// It is append-only: ids are 1-based, dense, and never reassigned or
// reused. A registry is private to one load sequence and must not be
// mutated after the load completes.
type Registry struct {
	categories []model.Category
}

// Lookup returns the id of a previously registered category. The explicit
// found flag matters: id values are never a reliable presence signal, and
// the very first slot would otherwise be indistinguishable from a miss.
func (r *Registry) Lookup(cat model.Category) (model.CategoryID, bool) {
	for i, existing := range r.categories {
		if existing.Equal(cat) {
			return model.CategoryID(i + 1), true
		}
	}
	return 0, false
}

// GetOrAdd returns the id for cat, registering it first if it is new.
// The scan is linear; dataset category counts are small enough that an
// index would not pay for itself.
func (r *Registry) GetOrAdd(cat model.Category) model.CategoryID {
	if id, ok := r.Lookup(cat); ok {
		return id
	}
	r.categories = append(r.categories, cat)
	return model.CategoryID(len(r.categories))
}

// Len returns the number of registered categories.
func (r *Registry) Len() int {
	return len(r.categories)
}

// Categories returns the registered categories keyed by id.
func (r *Registry) Categories() map[model.CategoryID]model.Category {
	out := make(map[model.CategoryID]model.Category, len(r.categories))
	for i, cat := range r.categories {
		out[model.CategoryID(i+1)] = cat
	}
	return out
}

// datasetBuilder accumulates categories and events during a load,
// deduplicating events against everything inserted so far.
type datasetBuilder struct {
	registry Registry
	events   []model.Event
}

// add resolves the category id for cat and inserts the event unless the
// same (category, date) pair is already present. It reports whether an
// event was inserted.
func (b *datasetBuilder) add(cat model.Category, date time.Time) bool {
	id := b.registry.GetOrAdd(cat)
	for _, e := range b.events {
		if e.Category == id && e.Date.Equal(date) {
			return false
		}
	}
	b.events = append(b.events, model.Event{Category: id, Date: date})
	return true
}

// dataset freezes the accumulated state into an immutable Dataset.
func (b *datasetBuilder) dataset() *model.Dataset {
	return &model.Dataset{
		Categories: b.registry.Categories(),
		Events:     b.events,
	}
}
