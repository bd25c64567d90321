package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/binalert/bin-alert/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func datePtr(t time.Time) *time.Time { return &t }

func testDataset() *model.Dataset {
	return &model.Dataset{
		Categories: map[model.CategoryID]model.Category{
			1: {Material: model.MaterialPaper, Region: model.RegionZH, Area: "Zone A"},
			2: {Material: model.MaterialPaper, Region: model.RegionZH, Area: "Zone B"},
			3: {Material: model.MaterialCardboard, Region: model.RegionZH, Area: "Zone A"},
		},
		Events: []model.Event{
			{Category: 1, Date: day(2024, time.January, 10)},
			{Category: 2, Date: day(2024, time.February, 5)},
			{Category: 3, Date: day(2024, time.March, 1)},
		},
	}
}

func TestDates(t *testing.T) {
	ds := testDataset()

	t.Run("nil filter returns everything", func(t *testing.T) {
		assert.Len(t, Dates(ds, nil), 3)
	})

	t.Run("open filter returns everything", func(t *testing.T) {
		assert.Len(t, Dates(ds, &model.Filter{}), 3)
	})

	t.Run("material filter excludes other materials", func(t *testing.T) {
		got := Dates(ds, &model.Filter{Materials: []model.Material{model.MaterialPaper}})
		require.Len(t, got, 2)
		for _, e := range got {
			assert.Equal(t, model.MaterialPaper, ds.Categories[e.Category].Material)
		}
	})

	t.Run("area filter", func(t *testing.T) {
		got := Dates(ds, &model.Filter{Areas: []string{"Zone A"}})
		require.Len(t, got, 2)
		assert.Equal(t, model.CategoryID(1), got[0].Category)
		assert.Equal(t, model.CategoryID(3), got[1].Category)
	})

	t.Run("material and area combine conjunctively", func(t *testing.T) {
		got := Dates(ds, &model.Filter{
			Materials: []model.Material{model.MaterialPaper},
			Areas:     []string{"Zone A"},
		})
		require.Len(t, got, 1)
		assert.Equal(t, model.CategoryID(1), got[0].Category)
	})

	t.Run("region filter", func(t *testing.T) {
		assert.Len(t, Dates(ds, &model.Filter{Regions: []model.Region{model.RegionZH}}), 3)
		assert.Empty(t, Dates(ds, &model.Filter{Regions: []model.Region{"BE"}}))
	})

	t.Run("no match yields empty", func(t *testing.T) {
		assert.Empty(t, Dates(ds, &model.Filter{Areas: []string{"Zone Z"}}))
	})
}

func TestDates_RangeBoundsInclusive(t *testing.T) {
	ds := testDataset()
	jan10 := day(2024, time.January, 10)

	tests := []struct {
		start *time.Time
		end   *time.Time
		name  string
		want  int
	}{
		{name: "start exactly on event includes it", start: datePtr(jan10), want: 3},
		{name: "start one day after excludes it", start: datePtr(jan10.AddDate(0, 0, 1)), want: 2},
		{name: "end exactly on event includes it", end: datePtr(jan10), want: 1},
		{name: "end one day before excludes it", end: datePtr(jan10.AddDate(0, 0, -1)), want: 0},
		{
			name:  "start and end pinned to one event",
			start: datePtr(jan10),
			end:   datePtr(jan10),
			want:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Dates(ds, &model.Filter{StartDate: tt.start, EndDate: tt.end})
			assert.Len(t, got, tt.want)
		})
	}
}

func TestMaterialsAndAreas(t *testing.T) {
	ds := testDataset()

	assert.Equal(t, []model.Material{model.MaterialPaper, model.MaterialCardboard}, Materials(ds))
	assert.Equal(t, []string{"Zone A", "Zone B"}, Areas(ds))

	assert.Nil(t, Materials(nil))
	assert.Nil(t, Areas(nil))
}
