package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pictora/pictora/internal/errs"
	"github.com/pictora/pictora/internal/metrics"
	"github.com/pictora/pictora/internal/retriever"
	"github.com/pictora/pictora/internal/rewriter"
	"github.com/pictora/pictora/internal/vectordb"
)

func newSearchCommand() *cobra.Command {
	var (
		query     string
		imagePath string
		k         int
		category  string
		save      bool
		noRewrite bool
	)

	cmd := &cobra.Command{
		Use:   "search (-q <text> | --image <path>)",
		Short: "Find the images most similar to a text query or example image",
		Long: `Search embeds the query and returns the k nearest indexed images.
Text queries are rewritten into caption form first when a rewriting model is
configured; --no-rewrite sends the raw query. --save materializes the hits
as PNG files in a fresh result directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (query == "") == (imagePath == "") {
				return fmt.Errorf("exactly one of -q or --image is required")
			}

			var deps struct {
				Retriever *retriever.Service
				Rewriter  rewriter.Rewriter
				Metrics   *metrics.Metrics
			}
			app := newApp(&deps.Retriever, &deps.Rewriter, &deps.Metrics)

			return runWithApp(cmd.Context(), app, func(ctx context.Context) error {
				filter := vectordb.ByCategory(category)

				var (
					results []vectordb.SearchResult
					err     error
				)

				if query != "" {
					effective := query
					if !noRewrite {
						rewritten, rerr := deps.Rewriter.Rewrite(ctx, query)
						switch {
						case rerr == nil:
							effective = rewritten
							deps.Metrics.IncrementQueryRewrites("success")
						case errs.IsKind(rerr, errs.KindTranslation):
							// A dead rewriting model should not take search
							// down with it; fall back to the raw query.
							deps.Metrics.IncrementQueryRewrites("failure")
							fmt.Fprintf(cmd.ErrOrStderr(), "rewrite unavailable, using raw query: %v\n", rerr)
						default:
							return rerr
						}
					}
					if effective != query {
						fmt.Fprintf(cmd.OutOrStdout(), "Query: %s\n", effective)
					}
					results, err = deps.Retriever.SearchByText(ctx, effective, k, filter)
				} else {
					results, err = deps.Retriever.SearchByImage(ctx, imagePath, k, filter)
				}
				if err != nil {
					return err
				}

				if len(results) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No matches.")
					return nil
				}

				for i, r := range results {
					line := fmt.Sprintf("%2d. %.4f  %s", i+1, r.Score, r.Payload.Path)
					if r.Payload.Category != "" {
						line += fmt.Sprintf("  [%s]", r.Payload.Category)
					}
					fmt.Fprintln(cmd.OutOrStdout(), line)
				}

				if save {
					dir, err := deps.Retriever.SaveResults(ctx, results)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Saved %d images to %s\n", len(results), dir)
				}

				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "text query")
	cmd.Flags().StringVar(&imagePath, "image", "", "example image to search with")
	cmd.Flags().IntVarP(&k, "k", "k", 5, "number of results")
	cmd.Flags().StringVar(&category, "category", "", "restrict results to one category")
	cmd.Flags().BoolVar(&save, "save", false, "materialize the hits as PNG files")
	cmd.Flags().BoolVar(&noRewrite, "no-rewrite", false, "skip query rewriting")

	return cmd
}
