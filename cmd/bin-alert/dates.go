package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/binalert/bin-alert/internal/common"
	"github.com/binalert/bin-alert/internal/config"
	"github.com/binalert/bin-alert/internal/filter"
	"github.com/binalert/bin-alert/internal/model"
)

func datesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dates",
		Short: "List collection dates matching a filter",
		RunE:  runDates,
	}

	addFilterFlags(cmd)
	cmd.Flags().String("format", "table", "output format (table, json, csv)")

	return cmd
}

func runDates(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	f, err := filterFromFlags(cmd)
	if err != nil {
		return err
	}

	p, err := buildProvider(cfg)
	if err != nil {
		return err
	}

	ds, err := p.Dataset(cmd.Context())
	if err != nil {
		return common.NewUserError("could not load the collection schedule", err)
	}

	events := filter.Dates(ds, f)

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "json":
		type row struct {
			Date     string           `json:"date"`
			Material model.Material   `json:"material"`
			Area     string           `json:"area,omitempty"`
			Category model.CategoryID `json:"category"`
		}
		rows := make([]row, 0, len(events))
		for _, e := range events {
			cat := ds.Categories[e.Category]
			rows = append(rows, row{
				Date:     e.Date.Format("2006-01-02"),
				Material: cat.Material,
				Area:     cat.Area,
				Category: e.Category,
			})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)

	case "csv":
		fmt.Println("date,material,area")
		for _, e := range events {
			cat := ds.Categories[e.Category]
			fmt.Printf("%s,%s,%s\n", e.Date.Format("2006-01-02"), cat.Material, cat.Area)
		}
		return nil

	case "table":
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "DATE\tMATERIAL\tAREA")
		for _, e := range events {
			cat := ds.Categories[e.Category]
			fmt.Fprintf(w, "%s\t%s\t%s\n", e.Date.Format("2006-01-02"), cat.Material, cat.Area)
		}
		return w.Flush()

	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
