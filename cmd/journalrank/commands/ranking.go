package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"journalrank/internal/chooser"
	"journalrank/internal/scrapers/scimago"
)

var errEmptyJournalName = errors.New("journal name must not be blank")

func requireJournalName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errEmptyJournalName
	}
	return name, nil
}

// chooseCategory lists the categories of the journal and asks the user for one.
func chooseCategory(ctx context.Context, s scraper, st streams, journalName string) (scimago.Category, error) {
	profile, err := findProfile(ctx, s, st, journalName)
	if err != nil {
		return scimago.Category{}, err
	}

	if st.interactive {
		return chooser.Choose(ctx, st.in, st.out, fmt.Sprintf("Categories of %s", profile.Title), profile.Categories)
	}
	return chooser.PromptId(st.in, st.out, profile.Categories)
}

func runRanking(ctx context.Context, s scraper, st streams, q scimago.SearchQuery) error {
	name, err := requireJournalName(q.JournalName)
	if err != nil {
		return err
	}
	q.JournalName = name

	if q.CategoryId == "" {
		category, err := chooseCategory(ctx, s, st, q.JournalName)
		if err != nil {
			if errors.Is(err, chooser.ErrCancelled) {
				fmt.Fprintln(st.out, "No category chosen.")
			}
			return err
		}
		q.CategoryId = category.Id
	}

	fmt.Fprintf(st.out, "Searching for '%s' in Category ID: %s...\n", q.JournalName, q.CategoryId)
	record, err := s.Ranking(ctx, q)
	if err != nil {
		fmt.Fprintln(st.out, "\nJournal not found in this category.")
		return err
	}
	renderRecord(st.out, record)
	return nil
}
