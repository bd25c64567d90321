package provider

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/binalert/bin-alert/internal/model"
)

func TestRegistry_GetOrAdd(t *testing.T) {
	paperA := model.Category{Material: model.MaterialPaper, Region: model.RegionZH, Area: "Zone A"}
	paperB := model.Category{Material: model.MaterialPaper, Region: model.RegionZH, Area: "Zone B"}
	cardboardA := model.Category{Material: model.MaterialCardboard, Region: model.RegionZH, Area: "Zone A"}

	t.Run("identical tuples get the same id", func(t *testing.T) {
		var r Registry
		first := r.GetOrAdd(paperA)
		second := r.GetOrAdd(paperA)
		assert.Equal(t, first, second)
		assert.Equal(t, 1, r.Len())
	})

	t.Run("distinct tuples get distinct dense ids", func(t *testing.T) {
		var r Registry
		a := r.GetOrAdd(paperA)
		b := r.GetOrAdd(paperB)
		c := r.GetOrAdd(cardboardA)
		assert.Equal(t, model.CategoryID(1), a)
		assert.Equal(t, model.CategoryID(2), b)
		assert.Equal(t, model.CategoryID(3), c)
	})

	t.Run("first slot is found, not re-registered", func(t *testing.T) {
		var r Registry
		r.GetOrAdd(paperA)

		id, ok := r.Lookup(paperA)
		require.True(t, ok)
		assert.Equal(t, model.CategoryID(1), id)

		_, ok = r.Lookup(paperB)
		assert.False(t, ok)

		// Re-adding the first-ever category must not create a duplicate.
		assert.Equal(t, model.CategoryID(1), r.GetOrAdd(paperA))
		assert.Equal(t, 1, r.Len())
	})

	t.Run("categories map is keyed by id", func(t *testing.T) {
		var r Registry
		r.GetOrAdd(paperA)
		r.GetOrAdd(paperB)

		cats := r.Categories()
		require.Len(t, cats, 2)
		assert.Equal(t, "Zone A", cats[1].Area)
		assert.Equal(t, "Zone B", cats[2].Area)
	})
}

func TestDatasetBuilder_Dedup(t *testing.T) {
	paperA := model.Category{Material: model.MaterialPaper, Region: model.RegionZH, Area: "Zone A"}
	day := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.Local)

	b := &datasetBuilder{}
	assert.True(t, b.add(paperA, day))
	assert.False(t, b.add(paperA, day), "duplicate (category, date) must not insert")
	assert.True(t, b.add(paperA, day.AddDate(0, 0, 1)))

	ds := b.dataset()
	assert.Len(t, ds.Events, 2)
	assert.Len(t, ds.Categories, 1)
}
