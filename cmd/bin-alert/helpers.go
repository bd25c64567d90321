package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/binalert/bin-alert/internal/config"
	"github.com/binalert/bin-alert/internal/model"
	"github.com/binalert/bin-alert/internal/provider"
)

// buildProvider assembles the configured dataset provider. Construction
// starts the background load immediately.
func buildProvider(cfg config.Config) (provider.Provider, error) {
	switch cfg.ProviderKind {
	case config.ProviderStatic:
		var source provider.Source
		if strings.Contains(cfg.Static.Source, "://") {
			source = &provider.HTTPSource{BaseURL: cfg.Static.Source}
		} else {
			source = &provider.DirSource{Dir: cfg.Static.Source}
		}
		return provider.NewStatic(provider.StaticConfig{
			Source:      source,
			Manifest:    cfg.Static.Manifest,
			LoadTimeout: cfg.LoadTimeout,
			Retry:       cfg.Retry,
		}), nil

	case config.ProviderOpenData:
		return provider.NewOpenData(provider.OpenDataConfig{
			RecordsBaseURL: cfg.OpenData.RecordsBaseURL,
			PageSize:       cfg.OpenData.PageSize,
			MaxPages:       cfg.OpenData.MaxPages,
			LoadTimeout:    cfg.LoadTimeout,
			Retry:          cfg.Retry,
		}), nil

	default:
		return nil, fmt.Errorf("unknown provider kind %q", cfg.ProviderKind)
	}
}

// addFilterFlags registers the shared filter flags on a command.
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceP("material", "m", nil, "materials to include (paper, cardboard, organic, household)")
	cmd.Flags().StringSliceP("area", "a", nil, "areas to include")
	cmd.Flags().String("from", "", "inclusive start date (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "inclusive end date (YYYY-MM-DD)")
}

// filterFromFlags builds a Filter from the shared filter flags.
func filterFromFlags(cmd *cobra.Command) (*model.Filter, error) {
	f := &model.Filter{}

	materials, _ := cmd.Flags().GetStringSlice("material")
	for _, raw := range materials {
		m, err := model.ParseMaterial(raw)
		if err != nil {
			return nil, err
		}
		f.Materials = append(f.Materials, m)
	}

	areas, _ := cmd.Flags().GetStringSlice("area")
	f.Areas = append(f.Areas, areas...)

	if raw, _ := cmd.Flags().GetString("from"); raw != "" {
		t, err := parseFlagDate(raw)
		if err != nil {
			return nil, err
		}
		f.StartDate = &t
	}
	if raw, _ := cmd.Flags().GetString("to"); raw != "" {
		t, err := parseFlagDate(raw)
		if err != nil {
			return nil, err
		}
		f.EndDate = &t
	}

	return f, nil
}

func parseFlagDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return t, nil
}

// deltaPresets are named shorthands accepted wherever a time delta flag
// is, alongside the compact form ("-1d20h").
var deltaPresets = map[string]model.TimeDelta{
	// Reminder times.
	"same-day":           {},
	"same-day-morning":   {Hours: 7},
	"day-before":         {Days: -1},
	"day-before-evening": {Days: -1, Hours: 20},
	"week-before":        {Days: -7},
	// Event durations.
	"10min": {Minutes: 10},
	"30min": {Minutes: 30},
	"24h":   {Days: 1},
}

// parseDelta resolves a preset name or a compact time delta.
func parseDelta(s string) (model.TimeDelta, error) {
	if d, ok := deltaPresets[s]; ok {
		return d, nil
	}
	return model.ParseTimeDelta(s)
}
