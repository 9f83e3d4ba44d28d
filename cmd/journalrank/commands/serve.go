package commands

import (
	"log/slog"

	"journalrank/internal/components/telemetry"
	"journalrank/internal/scrapers/scimago"
	"journalrank/internal/webform"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "The address to listen on, overrides listen_address in the config.")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve [--addr <host:port>]",
	Short: "Serves the journal ranking form over http.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := current.cfg.ListenAddress
		if serveAddr != "" {
			addr = serveAddr
		}

		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		tel, err := telemetry.NewPrometheusAPI(telemetry.SlogAPI{}, reg)
		if err != nil {
			return err
		}

		client, err := scimago.NewClient(current.opts, tel)
		if err != nil {
			return err
		}
		server, err := webform.New(client, tel, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		if err != nil {
			return err
		}

		slog.Info("serving journal ranking form", "addr", addr)
		return server.Start(cmd.Context(), addr)
	},
}
