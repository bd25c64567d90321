package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/binalert/bin-alert/internal/common"
	"github.com/binalert/bin-alert/internal/config"
	"github.com/binalert/bin-alert/internal/ics"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the filtered schedule as an iCalendar file",
		Long: `Export generates an iCalendar document from the filtered schedule and
writes it to a file (or stdout with --out -).

Reminder, shift, and duration flags take a compact time delta such as
"-1d20h" (one day back, twenty hours forward) or a preset name:
same-day, same-day-morning, day-before, day-before-evening, week-before,
10min, 30min, 24h.`,
		RunE: runExport,
	}

	addFilterFlags(cmd)
	cmd.Flags().StringP("out", "o", ics.Filename, "output file, or - for stdout")
	cmd.Flags().StringArrayP("reminder", "r", nil, "reminder offset from the collection date (repeatable)")
	cmd.Flags().String("shift", "", "shift event start away from midnight")
	cmd.Flags().String("duration", "", "event duration (default 15 minutes)")

	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	f, err := filterFromFlags(cmd)
	if err != nil {
		return err
	}

	var opts ics.Options
	reminders, _ := cmd.Flags().GetStringArray("reminder")
	for _, raw := range reminders {
		d, err := parseDelta(raw)
		if err != nil {
			return fmt.Errorf("invalid reminder: %w", err)
		}
		opts.Reminders = append(opts.Reminders, d)
	}
	if raw, _ := cmd.Flags().GetString("shift"); raw != "" {
		d, err := parseDelta(raw)
		if err != nil {
			return fmt.Errorf("invalid shift: %w", err)
		}
		opts.EventTimeShift = &d
	}
	if raw, _ := cmd.Flags().GetString("duration"); raw != "" {
		d, err := parseDelta(raw)
		if err != nil {
			return fmt.Errorf("invalid duration: %w", err)
		}
		opts.EventDuration = &d
	}

	p, err := buildProvider(cfg)
	if err != nil {
		return err
	}

	ds, err := p.Dataset(cmd.Context())
	if err != nil {
		return common.NewUserError("could not load the collection schedule", err)
	}

	doc, err := ics.NewGenerator().Build(ds, f, opts)
	if err != nil {
		return err
	}

	out, _ := cmd.Flags().GetString("out")
	if out == "-" {
		fmt.Print(doc)
		return nil
	}

	if err := os.WriteFile(out, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}

	slog.Info("Calendar exported", "file", out)
	return nil
}
