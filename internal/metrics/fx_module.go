package metrics

import (
	"context"
	"net/http"

	"go.uber.org/fx"

	"github.com/pictora/pictora/internal/logger"
)

// FXModule wires the metrics registry and the optional scrape server into Fx.
//
// It provides:
//   - Config    (NewConfig, environment-backed)
//   - *Metrics  (NewMetrics)
//
// and registers lifecycle hooks for the /metrics server. When no address is
// configured the hooks are no-ops.
var FXModule = fx.Module(
	"metrics",

	fx.Provide(
		NewConfig,  // -> Config
		NewMetrics, // -> *Metrics
	),

	fx.Invoke(RegisterMetricsLifecycle),
)

// RegisterMetricsLifecycle manages startup and graceful shutdown of the
// Prometheus scrape server.
func RegisterMetricsLifecycle(lc fx.Lifecycle, m *Metrics, log *logger.LoggerClient) {
	if m.Server == nil {
		return
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("starting metrics server", nil, map[string]interface{}{
					"address": m.Server.Addr,
				})

				if err := m.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Error("metrics server failed", err, nil)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down metrics server", nil, nil)
			return m.Server.Shutdown(ctx)
		},
	})
}
