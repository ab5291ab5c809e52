package main

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/gt4500/internal/console"
	"github.com/cory-johannsen/gt4500/internal/frontend/telnet"
	"github.com/cory-johannsen/gt4500/internal/game/ship"
	"github.com/cory-johannsen/gt4500/internal/observability"
	"github.com/cory-johannsen/gt4500/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the fire-control console over Telnet",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	start := time.Now()
	ctx := cmd.Context()

	rt, err := setup(ctx, "serve")
	if err != nil {
		return err
	}
	defer rt.close()
	logger := rt.logger

	var shipOpts []ship.Option
	reg := prometheus.NewRegistry()
	if rt.cfg.Metrics.Enabled {
		fm, err := observability.NewFireMetrics(reg)
		if err != nil {
			return err
		}
		shipOpts = append(shipOpts, ship.WithObserver(fm))
	}
	s := rt.newShip(shipOpts...)

	handlerOpts := []console.Option{console.WithLogger(logger)}
	if rt.journal != nil {
		handlerOpts = append(handlerOpts, console.WithHistory(rt.journal))
	}
	acceptor := telnet.NewAcceptor(rt.cfg.Telnet, console.NewHandler(s, handlerOpts...), logger)

	lc := server.NewLifecycle(logger)
	lc.Add("telnet", &server.FuncService{
		StartFn: acceptor.ListenAndServe,
		StopFn:  acceptor.Stop,
	})

	if rt.cfg.Metrics.Enabled {
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		if err := observability.RegisterStoreLevels(reg, s.Status); err != nil {
			return err
		}
		if err := observability.RegisterSessionGauge(reg, acceptor.Sessions); err != nil {
			return err
		}
		mux := http.NewServeMux()
		mux.Handle("/metrics", observability.MetricsHandler(reg))
		lc.Add("metrics", &server.HTTPService{
			Server: &http.Server{
				Addr:              rt.cfg.Metrics.Addr,
				Handler:           mux,
				ReadHeaderTimeout: 5 * time.Second,
			},
		})
	}

	logger.Info("fire-control server configured",
		zap.String("class", rt.class.ID),
		zap.String("telnet_addr", rt.cfg.Telnet.Addr()),
		zap.Bool("journal", rt.journal != nil),
		zap.Bool("metrics", rt.cfg.Metrics.Enabled),
		zap.Duration("elapsed", time.Since(start)),
	)
	return lc.Run(ctx)
}
