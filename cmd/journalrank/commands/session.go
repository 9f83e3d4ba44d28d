package commands

import (
	"context"
	"io"
	"os"

	"journalrank/internal/components/telemetry"
	"journalrank/internal/config"
	"journalrank/internal/scrapers/scimago"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// scraper is the part of scimago.Client the commands use.
type scraper interface {
	Categories(ctx context.Context, journalName string) (scimago.JournalProfile, error)
	Ranking(ctx context.Context, q scimago.SearchQuery) (scimago.RankingRecord, error)
}

type session struct {
	cfg     config.Config
	opts    scimago.ClientOptions
	scraper scraper
}

var current session

// setup reads the config, applies the flags that override it and creates the
// scimago client shared by every command.
func setup(cmd *cobra.Command) error {
	telemetry.InitSlog(os.Stderr, verbose)

	cfg, err := config.Read(configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("match") {
		cfg.Match = matchFlag
	}
	opts, err := cfg.ClientOptions()
	if err != nil {
		return err
	}

	current = session{cfg: cfg, opts: opts}
	if cmd == serveCmd {
		// serve builds its own client on top of the metrics telemetry.
		return nil
	}
	client, err := scimago.NewClient(opts, telemetry.SlogAPI{})
	if err != nil {
		return err
	}
	current.scraper = client
	return nil
}

type streams struct {
	in  io.Reader
	out io.Writer
	// interactive is true when both in and out are a terminal.
	interactive bool
}

func stdStreams() streams {
	return streams{
		in:          os.Stdin,
		out:         os.Stdout,
		interactive: term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd())),
	}
}
