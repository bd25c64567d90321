package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/binalert/bin-alert/internal/filter"
	"github.com/binalert/bin-alert/internal/ics"
	"github.com/binalert/bin-alert/internal/model"
)

const datasetWait = 30 * time.Second

// categoryJSON is the wire shape for one category.
type categoryJSON struct {
	Material model.Material   `json:"material"`
	Region   model.Region     `json:"region"`
	Area     string           `json:"area,omitempty"`
	SubArea  string           `json:"subArea,omitempty"`
	ID       model.CategoryID `json:"id"`
}

// eventJSON is the wire shape for one collection event.
type eventJSON struct {
	Date     string           `json:"date"`
	Material model.Material   `json:"material"`
	Area     string           `json:"area,omitempty"`
	Category model.CategoryID `json:"category"`
}

// dataset waits for the shared load. A failed load is permanent for this
// process, so it surfaces as 502 on every request.
func (s *Server) dataset(c *gin.Context) (*model.Dataset, bool) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), datasetWait)
	defer cancel()

	ds, err := s.provider.Dataset(ctx)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return nil, false
	}
	return ds, true
}

// handleMaterials returns the distinct materials in the dataset.
// GET /api/v1/materials
func (s *Server) handleMaterials(c *gin.Context) {
	ds, ok := s.dataset(c)
	if !ok {
		return
	}

	materials := filter.Materials(ds)
	c.JSON(http.StatusOK, gin.H{
		"data": materials,
		"meta": gin.H{"count": len(materials)},
	})
}

// handleAreas returns the distinct areas in the dataset.
// GET /api/v1/areas
func (s *Server) handleAreas(c *gin.Context) {
	ds, ok := s.dataset(c)
	if !ok {
		return
	}

	areas := filter.Areas(ds)
	c.JSON(http.StatusOK, gin.H{
		"data": areas,
		"meta": gin.H{"count": len(areas)},
	})
}

// handleCategories returns the full category table.
// GET /api/v1/categories
func (s *Server) handleCategories(c *gin.Context) {
	ds, ok := s.dataset(c)
	if !ok {
		return
	}

	out := make([]categoryJSON, 0, len(ds.Categories))
	for id := 1; id <= len(ds.Categories); id++ {
		cat := ds.Categories[model.CategoryID(id)]
		out = append(out, categoryJSON{
			ID:       model.CategoryID(id),
			Material: cat.Material,
			Region:   cat.Region,
			Area:     cat.Area,
			SubArea:  cat.SubArea,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"data": out,
		"meta": gin.H{"count": len(out)},
	})
}

// handleDates returns filtered events.
// GET /api/v1/dates?material=&area=&start=&end=
func (s *Server) handleDates(c *gin.Context) {
	ds, ok := s.dataset(c)
	if !ok {
		return
	}

	f, err := filterFromQuery(c, false)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	events := filter.Dates(ds, f)
	out := make([]eventJSON, 0, len(events))
	for _, e := range events {
		cat := ds.Categories[e.Category]
		out = append(out, eventJSON{
			Category: e.Category,
			Date:     e.Date.Format("2006-01-02"),
			Material: cat.Material,
			Area:     cat.Area,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"data": out,
		"meta": gin.H{"count": len(out)},
	})
}

// handleCalendar returns the iCalendar document as a download. Without
// explicit bounds the calendar starts today: past collections are noise
// in a subscription.
// GET /api/v1/calendar.ics?material=&area=&start=&end=&reminder=&shift=&duration=
func (s *Server) handleCalendar(c *gin.Context) {
	ds, ok := s.dataset(c)
	if !ok {
		return
	}

	f, err := filterFromQuery(c, true)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	opts, err := optionsFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doc, err := s.gen.Build(ds, f, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", ics.Filename))
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(doc))
}

// filterFromQuery builds a Filter from repeatable material/area params and
// start/end date bounds.
func filterFromQuery(c *gin.Context, defaultStartToday bool) (*model.Filter, error) {
	f := &model.Filter{}

	for _, raw := range c.QueryArray("material") {
		m, err := model.ParseMaterial(raw)
		if err != nil {
			return nil, err
		}
		f.Materials = append(f.Materials, m)
	}
	f.Areas = append(f.Areas, c.QueryArray("area")...)

	if raw := c.Query("start"); raw != "" {
		t, err := parseQueryDate(raw)
		if err != nil {
			return nil, err
		}
		f.StartDate = &t
	}
	if raw := c.Query("end"); raw != "" {
		t, err := parseQueryDate(raw)
		if err != nil {
			return nil, err
		}
		f.EndDate = &t
	}

	if defaultStartToday && f.StartDate == nil && f.EndDate == nil {
		today := model.Day(time.Now())
		f.StartDate = &today
	}

	return f, nil
}

// optionsFromQuery builds calendar options from repeatable reminder deltas
// plus optional shift/duration deltas.
func optionsFromQuery(c *gin.Context) (ics.Options, error) {
	var opts ics.Options

	for _, raw := range c.QueryArray("reminder") {
		d, err := model.ParseTimeDelta(raw)
		if err != nil {
			return ics.Options{}, err
		}
		opts.Reminders = append(opts.Reminders, d)
	}

	if raw := c.Query("shift"); raw != "" {
		d, err := model.ParseTimeDelta(raw)
		if err != nil {
			return ics.Options{}, err
		}
		opts.EventTimeShift = &d
	}
	if raw := c.Query("duration"); raw != "" {
		d, err := model.ParseTimeDelta(raw)
		if err != nil {
			return ics.Options{}, err
		}
		opts.EventDuration = &d
	}

	return opts, nil
}

func parseQueryDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return t, nil
}
