package catalogcmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/myrjola/jurassictravel/internal/catalog"
	"github.com/myrjola/jurassictravel/internal/errors"
	"github.com/spf13/cobra"
)

var Group = &cobra.Group{
	ID:    "catalog",
	Title: "Catalog",
}

// load returns the embedded catalog, or the catalog in path when set.
func load(path string) (*catalog.Catalog, error) {
	if path == "" {
		c, err := catalog.Load()
		if err != nil {
			return nil, errors.Wrap(err, "load embedded catalog")
		}
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read catalog file")
	}
	c, err := catalog.Parse(data)
	if err != nil {
		return nil, errors.Wrap(err, "parse catalog file")
	}
	return c, nil
}

func NewCheck() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "check",
		GroupID: Group.ID,
		Short:   "Validate the catalog",
		Long:    "Validates tour and specimen invariants of the embedded catalog or of a catalog YAML file.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("file")
			c, err := load(path)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "catalog ok: %d tours, %d specimens\n",
				len(c.AllTours()), len(c.AllSpecimens()))
			return err
		},
	}
	cmd.Flags().String("file", "", "path to a catalog YAML file, defaults to the embedded catalog")
	return cmd
}

func NewTours() *cobra.Command {
	return &cobra.Command{
		Use:     "tours",
		GroupID: Group.ID,
		Short:   "List tours",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := catalog.Load()
			if err != nil {
				return errors.Wrap(err, "load catalog")
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0) //nolint:mnd // column padding.
			_, _ = fmt.Fprintln(w, "ID\tNAME\tPRICE\tDURATION\tAGE")
			for _, t := range c.AllTours() {
				age := "all"
				if t.AgeRestriction != nil {
					age = fmt.Sprintf("%d+", *t.AgeRestriction)
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\t$%d\t%s\t%s\n", t.ID, t.Name, t.Price, t.Duration, age)
			}
			return errors.Wrap(w.Flush(), "flush")
		},
	}
}
