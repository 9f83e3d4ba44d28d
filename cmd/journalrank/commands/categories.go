package commands

import (
	"context"
	"fmt"
	"strings"

	"journalrank/internal/scrapers/scimago"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(categoriesCmd)
}

var categoriesCmd = &cobra.Command{
	Use:   "categories <journal name>",
	Short: "Lists the categories a journal is ranked in, with their ids.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := findProfile(cmd.Context(), current.scraper, stdStreams(), strings.Join(args, " "))
		return err
	},
}

// findProfile resolves the journal and prints its categories.
func findProfile(ctx context.Context, s scraper, st streams, name string) (scimago.JournalProfile, error) {
	journalName, err := requireJournalName(name)
	if err != nil {
		return scimago.JournalProfile{}, err
	}
	fmt.Fprintf(st.out, "Searching for '%s'...\n", journalName)
	profile, err := s.Categories(ctx, journalName)
	if err != nil {
		fmt.Fprintln(st.out, "Journal not found.")
		return scimago.JournalProfile{}, err
	}
	fmt.Fprintf(st.out, "Found profile: %s\n", profile.Title)
	renderCategories(st.out, profile)
	return profile, nil
}
