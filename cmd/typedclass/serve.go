package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/aretw0/typedclass"
	"github.com/aretw0/typedclass/internal/cli"
	"github.com/aretw0/typedclass/internal/presentation/tui"
	"github.com/aretw0/typedclass/pkg/observability"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Exposes the declared structures over HTTP: descriptions, OpenAPI schemas, instance construction and Prometheus metrics.`,
	Run: func(cmd *cobra.Command, args []string) {
		opts := globalOptions(cmd)
		port, _ := cmd.Flags().GetString("port")
		logger := cli.NewLogger(opts.Debug)

		promReg := prometheus.NewRegistry()
		promReg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics := observability.NewMetrics(promReg, observability.WithLogger(logger))

		reg, err := cli.LoadRegistry(opts, logger, metrics.Hooks())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if cli.IsTerminal(os.Stdout) {
			tui.PrintBanner(os.Stdout)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		err = cli.RunServe(ctx, os.Stdout, reg, logger, cli.ServeOptions{
			Addr:     ":" + port,
			Version:  strings.TrimSpace(typedclass.Version),
			Gatherer: promReg,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
}
