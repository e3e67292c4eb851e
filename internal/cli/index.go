package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pictora/pictora/internal/indexer"
)

func newIndexCommand() *cobra.Command {
	var (
		category   string
		workers    int
		bestEffort bool
	)

	cmd := &cobra.Command{
		Use:   "index <path>",
		Short: "Index an image file or directory tree",
		Long: `Index embeds the images under the given path and upserts them into the
vector store. Images in subdirectories pick up the directory name as their
category unless --category overrides it. Re-indexing the same path
overwrites the previous entries.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			var svc *indexer.Service
			app := newApp(&svc)

			return runWithApp(cmd.Context(), app, func(ctx context.Context) error {
				info, err := os.Stat(path)
				if err != nil {
					return fmt.Errorf("cannot access %s: %w", path, err)
				}

				if !info.IsDir() {
					if err := svc.IndexOne(ctx, path, category); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Indexed %s\n", path)
					return nil
				}

				report, err := svc.IndexTree(ctx, path, indexer.TreeOptions{
					Category:   category,
					Workers:    workers,
					BestEffort: bestEffort,
				})
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d images across %d directories\n",
					report.Indexed, report.Directories)
				for _, failure := range report.Failed {
					fmt.Fprintf(cmd.ErrOrStderr(), "failed: %s: %v\n", failure.Dir, failure.Err)
				}
				if len(report.Failed) > 0 {
					return fmt.Errorf("%d directories failed", len(report.Failed))
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "category label for every indexed image")
	cmd.Flags().IntVar(&workers, "workers", 0, "concurrent directory workers (default from config)")
	cmd.Flags().BoolVar(&bestEffort, "best-effort", false, "continue past failing directories and report them")

	return cmd
}
