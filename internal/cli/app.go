package cli

import (
	"context"
	"fmt"

	"go.uber.org/fx"

	"github.com/pictora/pictora/internal/embedding"
	"github.com/pictora/pictora/internal/indexer"
	"github.com/pictora/pictora/internal/logger"
	"github.com/pictora/pictora/internal/metrics"
	"github.com/pictora/pictora/internal/qdrant"
	"github.com/pictora/pictora/internal/retriever"
	"github.com/pictora/pictora/internal/rewriter"
)

// newApp assembles the Fx application for one command invocation. The loaded
// configuration replaces each module's environment-backed defaults, and the
// requested services are populated into the caller's pointers.
func newApp(populate ...interface{}) *fx.App {
	return fx.New(
		logger.FXModule,
		metrics.FXModule,
		qdrant.FXModule,
		embedding.FXModule,
		rewriter.FXModule,
		indexer.FXModule,
		retriever.FXModule,

		fx.Replace(
			cfg.Logger,
			&cfg.Qdrant,
			&cfg.Embedding,
			&cfg.Rewriter,
			&cfg.Indexer,
			&cfg.Retriever,
			cfg.Metrics,
		),

		fx.Populate(populate...),

		// Fx's own event log would drown the command output.
		fx.NopLogger,
	)
}

// runWithApp starts the app, runs op, and stops the app again, reporting the
// first failure.
func runWithApp(ctx context.Context, app *fx.App, op func(ctx context.Context) error) error {
	startCtx, cancel := context.WithTimeout(ctx, fx.DefaultTimeout)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return fmt.Errorf("startup failed: %w", err)
	}

	opErr := op(ctx)

	stopCtx, cancel := context.WithTimeout(context.Background(), fx.DefaultTimeout)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil && opErr == nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	return opErr
}
