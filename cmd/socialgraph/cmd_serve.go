package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dd0wney/socialgraph/pkg/health"
	"github.com/dd0wney/socialgraph/pkg/logging"
	"github.com/dd0wney/socialgraph/pkg/server"
)

// systemMetricsInterval is how often uptime and goroutine gauges refresh.
const systemMetricsInterval = 15 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the GraphQL API, /metrics and the /health probes",
		Long: `serve loads the saved graph and exposes it over HTTP. SIGHUP reloads the
graph from disk; SIGINT or SIGTERM saves it and shuts down gracefully.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				a.cfg.Server.Addr = addr
			}
			svc, journal, err := a.openJournaled()
			if err != nil {
				return err
			}
			defer journal.Close()
			checker := server.DefaultHealthChecker(svc)
			checker.RegisterCheck("data_dir", health.DataDirCheck(a.cfg.Data.Dir))
			handler, err := server.NewHandler(svc, a.metrics, a.logger, server.WithHealthChecker(checker))
			if err != nil {
				return err
			}

			srv := server.NewGracefulServer(a.cfg.Server, handler, a.logger)
			checker.RegisterReadinessCheck("server", health.ShutdownCheck(srv.IsShuttingDown))
			srv.SetReloadFunc(func() error {
				format, err := a.storageFormat()
				if err != nil {
					return err
				}
				res, err := a.store.Load(format)
				if err != nil {
					return err
				}
				svc.Replace(res.Graph)
				a.logger.Info("graph reloaded",
					logging.Students(res.Graph.StudentCount()),
					logging.Count(len(res.Warnings)))
				return nil
			})

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			go server.UpdateSystemMetrics(ctx, a.metrics, systemMetricsInterval)

			if err := srv.Listen(); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "🚀 Listening on http://%s (GraphQL at /graphql)\n", srv.Addr())

			if err := srv.Run(ctx); err != nil {
				return err
			}
			return a.persist(svc)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}
