// Package ics renders filtered collection events as an iCalendar document
// with per-event reminder alarms.
package ics

import (
	"bytes"
	"fmt"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"

	"github.com/binalert/bin-alert/internal/filter"
	"github.com/binalert/bin-alert/internal/model"
)

const (
	// Filename is the conventional download name for generated documents.
	Filename = "bin-alert.ics"

	defaultProdID  = "-//bin//alert//EN"
	defaultCalName = "bin-alert"
)

// Options controls how events are mapped to calendar entries.
type Options struct {
	// EventTimeShift moves the displayed start away from the nominal
	// collection date (which is local midnight). Nil leaves the start at
	// the nominal date.
	EventTimeShift *model.TimeDelta
	// EventDuration sets the entry length. Nil means 15 minutes.
	EventDuration *model.TimeDelta
	// Reminders become display alarms. Each trigger is computed from the
	// nominal collection date, not the shifted start, so a "day before at
	// 20:00" reminder stays put when the event itself is shifted.
	Reminders []model.TimeDelta
}

// Generator builds iCalendar documents from a dataset.
type Generator struct {
	now    func() time.Time
	ProdID string
	Name   string
}

// NewGenerator returns a Generator with the bin-alert calendar identity.
func NewGenerator() *Generator {
	return &Generator{
		ProdID: defaultProdID,
		Name:   defaultCalName,
		now:    time.Now,
	}
}

// Build filters the dataset and serializes the matching events as one
// complete VCALENDAR document.
func (g *Generator) Build(ds *model.Dataset, f *model.Filter, opts Options) (string, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, g.ProdID)
	cal.Props.SetText("X-WR-CALNAME", g.Name)

	stamp := g.now().UTC()
	duration := model.TimeDelta{Minutes: 15}
	if opts.EventDuration != nil {
		duration = *opts.EventDuration
	}

	for _, event := range filter.Dates(ds, f) {
		cat := ds.Categories[event.Category]

		start := event.Date
		if opts.EventTimeShift != nil {
			start = opts.EventTimeShift.Shift(start)
		}
		end := duration.Shift(start)

		ve := ical.NewComponent(ical.CompEvent)
		ve.Props.SetText(ical.PropUID, eventUID(event.Date, cat))
		ve.Props.SetDateTime(ical.PropDateTimeStamp, stamp)
		ve.Props.Set(floatingTime(ical.PropDateTimeStart, start))
		ve.Props.Set(floatingTime(ical.PropDateTimeEnd, end))
		ve.Props.SetText(ical.PropSummary, "Waste collection")
		ve.Props.SetText(ical.PropDescription, fmt.Sprintf(
			"Reminder for waste collection of %s in the area %s. Collection day is %s",
			cat.Material, cat.Area, event.Date.Format("Mon Jan 2 2006")))

		for _, reminder := range opts.Reminders {
			ve.Children = append(ve.Children, alarm(reminder.Shift(event.Date)))
		}

		cal.Children = append(cal.Children, ve)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return "", fmt.Errorf("failed to encode calendar: %w", err)
	}
	return buf.String(), nil
}

// alarm builds a display VALARM with an absolute trigger.
func alarm(trigger time.Time) *ical.Component {
	va := ical.NewComponent(ical.CompAlarm)
	va.Props.SetText(ical.PropAction, "DISPLAY")
	va.Props.SetText(ical.PropDescription, "Waste collection")
	p := floatingTime(ical.PropTrigger, trigger)
	p.Params.Set(ical.ParamValue, string(ical.ValueDateTime))
	va.Props.Set(p)
	return va
}

const floatingTimeLayout = "20060102T150405"

// floatingTime writes a datetime without zone information. Collection
// dates are wall-clock local times; attaching a TZID would require a
// matching VTIMEZONE, and UTC would move the entry for viewers in other
// zones.
func floatingTime(name string, t time.Time) *ical.Prop {
	p := ical.NewProp(name)
	p.Value = t.Format(floatingTimeLayout)
	return p
}

// eventUID derives a stable identifier so re-generated documents update
// rather than duplicate entries in calendar applications.
func eventUID(date time.Time, cat model.Category) string {
	if cat.Area == "" {
		return uuid.NewString() + "@bin-alert"
	}
	uid := fmt.Sprintf("%s-%s-%s-%s", date.Format("20060102"), cat.Region, cat.Material, cat.Area)
	if cat.SubArea != "" {
		uid += "-" + cat.SubArea
	}
	return uid + "@bin-alert"
}
