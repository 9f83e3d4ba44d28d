package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"journalrank/internal/chooser"
	"journalrank/internal/config"
	"journalrank/internal/scrapers/scimago"

	"github.com/spf13/cobra"
)

const (
	ExitFound    = 0
	ExitNotFound = 1
	ExitUsage    = 2
)

var (
	configPath string
	verbose    bool
	matchFlag  string

	yearFlag     string
	categoryFlag string
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", config.DefaultPath, "The json5 config file to read, <name>.local.json5 is merged over it.")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Log debug output, including every http exchange.")
	flags.StringVar(
		&matchFlag,
		"match",
		"",
		fmt.Sprintf("How journal titles are matched, one of %s.", strings.Join(matchStrategyNames(), ", ")),
	)

	rootCmd.Flags().StringVarP(&yearFlag, "year", "y", "", "The ranking year, the latest rankings are used when omitted.")
	rootCmd.Flags().StringVarP(&categoryFlag, "category", "c", "", "The category id, the journal's categories are listed to choose from when omitted.")
}

func matchStrategyNames() []string {
	names := make([]string, len(scimago.MatchStrategies))
	for i, m := range scimago.MatchStrategies {
		names[i] = string(m)
	}
	return names
}

var rootCmd = &cobra.Command{
	Use:   "journalrank <journal name> [-y <year>] [-c <category id>]",
	Short: "journalrank finds the rank, percentile and quartile of a journal within a SCImago category.",
	Long:  `journalrank finds the rank, percentile and quartile of a journal within a SCImago category.

The journal name is every positional argument joined by spaces. A journal named
like a subcommand ("categories", "serve") must follow "--", ex.

  journalrank -c 1000 -- serve`,
	Args:  cobra.MinimumNArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		return setup(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRanking(cmd.Context(), current.scraper, stdStreams(), scimago.SearchQuery{
			JournalName: strings.Join(args, " "),
			CategoryId:  categoryFlag,
			Year:        yearFlag,
		})
	},
	SilenceErrors: true,
}

// ExitCode maps the error of a command to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitFound
	case errors.Is(err, scimago.ErrNotFound), errors.Is(err, chooser.ErrCancelled):
		return ExitNotFound
	default:
		return ExitUsage
	}
}

// ExecuteContext runs the command line and returns the exit code.
func ExecuteContext(ctx context.Context) int {
	err := rootCmd.ExecuteContext(ctx)
	code := ExitCode(err)
	if code == ExitUsage {
		fmt.Fprintln(os.Stderr, err)
	}
	return code
}
