package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"go-plantcare/catalog"
	"go-plantcare/config"
	"go-plantcare/models"
)

// newPlantsCmd lists and filters the catalog.
func newPlantsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "plants [query]",
		Short: "List catalog plants, optionally filtered by name or species",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.openDBIfNeeded()
			if err != nil {
				return err
			}
			if db != nil {
				defer db.Close()
			}

			src, err := a.catalogSource(db)
			if err != nil {
				return err
			}
			plants, err := src.Load(ctxOf(cmd))
			if err != nil {
				return err
			}

			matched := catalog.Filter(plants, strings.Join(args, " "))
			out := cmd.OutOrStdout()
			if len(matched) == 0 {
				fmt.Fprintln(out, models.ErrMsgNoPlantsFound)
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSPECIES\tIMAGE")
			for _, p := range matched {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Species, p.ImagePath())
			}
			return w.Flush()
		},
	}
}

// newImportCmd loads a catalog document into the plants table.
func newImportCmd(a *app) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Replace the database plants table with a catalog document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(file)
			if err != nil {
				return err
			}
			defer f.Close()

			plants, err := catalog.Decode(f)
			if err != nil {
				return err
			}

			db, err := config.OpenDB(a.cfg, a.log)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := catalog.Import(ctxOf(cmd), db, plants); err != nil {
				return err
			}
			a.log.Infow("catalog imported", "plants", len(plants), "file", file)
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d plants\n", len(plants))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "data/plants.json", "catalog document to import")
	return cmd
}

// ctxOf returns the command context or Background.
func ctxOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
