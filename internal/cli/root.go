// Package cli implements the pictora command line interface.
//
// Each command assembles an Fx application from the infrastructure modules,
// populates the services it needs, and runs one operation inside the app's
// lifecycle. Configuration comes from an optional YAML file layered over
// environment variables.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pictora/pictora/config"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "pictora",
	Short: "Semantic image search - index images and query them by meaning",
	Long: `Pictora indexes image collections into a vector store using multimodal
embeddings and retrieves the most semantically similar images for
natural-language or example-image queries.

Example usage:
  pictora index ./photos                  # Index a directory tree
  pictora search -q "dogs on a beach"     # Search by text
  pictora search --image query.jpg --save # Search by example, save hits
  pictora clear --yes                     # Drop every indexed vector`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			wd, wdErr := os.Getwd()
			if wdErr != nil {
				return fmt.Errorf("failed to get working directory: %w", wdErr)
			}
			cfg, err = config.LoadFromDir(wd)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		return nil
	},
}

// Execute runs the root command. SIGINT/SIGTERM cancel the command context
// so in-flight index runs stop at the next directory boundary.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./pictora.yaml)")

	rootCmd.AddCommand(newIndexCommand())
	rootCmd.AddCommand(newSearchCommand())
	rootCmd.AddCommand(newRewriteCommand())
	rootCmd.AddCommand(newClearCommand())
}
