package assistant

import (
	"fmt"
	"strings"

	"github.com/myrjola/jurassictravel/internal/catalog"
	"github.com/myrjola/jurassictravel/internal/errors"
	"github.com/myrjola/jurassictravel/internal/intent"
	"github.com/myrjola/jurassictravel/internal/random"
	"github.com/spf13/cobra"
)

var Group = &cobra.Group{
	ID:    "assistant",
	Title: "Guest relations assistant",
}

// NewAsk returns the ask command that resolves a single message offline, without thinking delays.
func NewAsk() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ask [message]",
		GroupID: Group.ID,
		Short:   "Ask the guest relations assistant",
		Long:    "Resolves a guest message against the catalog and prints the reply, suggestions and map effect.",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := catalog.Load()
			if err != nil {
				return errors.Wrap(err, "load catalog")
			}
			rng := random.NewSource()
			if cmd.Flags().Changed("seed") {
				seed, err := cmd.Flags().GetUint64("seed")
				if err != nil {
					return errors.Wrap(err, "read seed flag")
				}
				rng = random.NewSeeded(seed)
			}
			resp := intent.NewEngine(c, rng).Resolve(strings.Join(args, " "))

			var b strings.Builder
			fmt.Fprintf(&b, "[%s]\n%s\n", resp.Intent, resp.Text)
			if len(resp.Suggestions) > 0 {
				fmt.Fprintf(&b, "\nsuggestions: %s\n", strings.Join(resp.Suggestions, " | "))
			}
			if e := resp.Effect; e != nil {
				if e.FocusZone != nil {
					fmt.Fprintf(&b, "focus sector: %s\n", e.FocusZone.ID)
				}
				if e.OpenTour != nil {
					fmt.Fprintf(&b, "open tour: %s\n", e.OpenTour.ID)
				}
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), b.String())
			return err
		},
	}
	cmd.Flags().Uint64("seed", 0, "seed for the fallback reply picker")
	return cmd
}
