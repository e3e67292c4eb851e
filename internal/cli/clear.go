package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pictora/pictora/internal/indexer"
)

func newClearCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear --yes",
		Short: "Remove every indexed vector from the collection",
		Long: `Clear deletes all points from the configured collection. The collection
itself survives and can be re-indexed. This cannot be undone, so the --yes
flag is required.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to clear without --yes")
			}

			var svc *indexer.Service
			app := newApp(&svc)

			return runWithApp(cmd.Context(), app, func(ctx context.Context) error {
				if err := svc.ClearAll(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Collection cleared.")
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the irreversible clear")

	return cmd
}
