package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pictora/pictora/internal/rewriter"
)

func newRewriteCommand() *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "rewrite -q <text>",
		Short: "Show how a query would be rewritten before embedding",
		RunE: func(cmd *cobra.Command, args []string) error {
			if query == "" {
				return fmt.Errorf("-q is required")
			}

			var rw rewriter.Rewriter
			app := newApp(&rw)

			return runWithApp(cmd.Context(), app, func(ctx context.Context) error {
				out, err := rw.Rewrite(ctx, query)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "text query to rewrite")

	return cmd
}
