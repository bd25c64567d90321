package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/binalert/bin-alert/internal/common"
	"github.com/binalert/bin-alert/internal/config"
	"github.com/binalert/bin-alert/internal/model"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List the categories in the loaded dataset",
		RunE:  runCategories,
	}

	cmd.Flags().String("format", "table", "output format (table, json)")

	return cmd
}

func runCategories(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
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

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "json":
		type row struct {
			Material model.Material   `json:"material"`
			Region   model.Region     `json:"region"`
			Area     string           `json:"area,omitempty"`
			SubArea  string           `json:"subArea,omitempty"`
			ID       model.CategoryID `json:"id"`
		}
		rows := make([]row, 0, len(ds.Categories))
		for id := 1; id <= len(ds.Categories); id++ {
			cat := ds.Categories[model.CategoryID(id)]
			rows = append(rows, row{
				ID:       model.CategoryID(id),
				Material: cat.Material,
				Region:   cat.Region,
				Area:     cat.Area,
				SubArea:  cat.SubArea,
			})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)

	case "table":
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tMATERIAL\tREGION\tAREA")
		for id := 1; id <= len(ds.Categories); id++ {
			cat := ds.Categories[model.CategoryID(id)]
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", id, cat.Material, cat.Region, cat.Area)
		}
		return w.Flush()

	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
