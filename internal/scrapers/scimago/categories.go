package scimago

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"

	"journalrank/pkg/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

const (
	report_client_categories = "client.categories"
)

var (
	categoryHrefRegex = regexp.MustCompile(`journalrank\.php\?category=(\d+)`)
	nonEmptyRegex     = regexp.MustCompile(`\S`)
)

type candidate struct {
	title string
	link  *url.URL
}

// selectCandidate prefers the candidate whose title equals the query, falling
// back to the first one.
func selectCandidate(candidates []candidate, journalName string) (candidate, bool) {
	if len(candidates) == 0 {
		return candidate{}, false
	}
	for _, c := range candidates {
		if MatchExact.Match(journalName, c.title) {
			return c, true
		}
	}
	return candidates[0], true
}

func (c Client) searchCandidates(doc *goquery.Document) []candidate {
	results := htmlutil.FindFirst(doc.Selection, "div", htmlutil.HasClass("search_results"))
	if results.Length() == 0 {
		return nil
	}

	var candidates []candidate
	htmlutil.FindAll(results, "a", htmlutil.AttrMatches("href", nonEmptyRegex)).
		Each(func(_ int, a *goquery.Selection) {
			anchors := htmlutil.GetAnchors(c.baseUrl, a)
			if len(anchors) == 0 {
				return
			}
			title := htmlutil.Text(htmlutil.FindFirst(a, "span", htmlutil.HasClass("jrnlname")))
			if title == "" {
				title = anchors[0].Name
			}
			candidates = append(candidates, candidate{
				title: title,
				link:  anchors[0].Url,
			})
		})
	return candidates
}

// ExtractCategories returns the distinct categories linked from a journal
// profile page in discovery order, the first name seen for an id wins.
func ExtractCategories(doc *goquery.Document) []Category {
	seen := map[string]struct{}{}
	var categories []Category

	links := htmlutil.FindAll(doc.Selection, "a", htmlutil.AttrMatches("href", categoryHrefRegex))
	links.Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		groups := categoryHrefRegex.FindStringSubmatch(href)
		if len(groups) < 2 {
			return
		}
		id := groups[1]
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		categories = append(categories, Category{
			Id:   id,
			Name: htmlutil.Text(a),
		})
	})

	return categories
}

// Categories finds the scimago profile of a journal and the categories it is ranked in.
// Every failure is reported and returned as an error wrapping ErrNotFound.
func (c Client) Categories(ctx context.Context, journalName string) (JournalProfile, error) {
	journalName = htmlutil.NormalizeText(journalName)
	if journalName == "" {
		return JournalProfile{}, notFound(fmt.Errorf("%w: journal name", ErrEmptyQuery))
	}

	c.tel.ReportDebug("search journal", journalName)

	searchUrl := c.resolve(searchPath).String()
	res, err := c.fetcher.Fetch(ctx, searchUrl, url.Values{"q": {journalName}})
	if err != nil {
		c.tel.ReportBroken(report_client_categories, fmt.Errorf("fetch search: %w", err), journalName)
		return JournalProfile{}, notFound(err)
	}
	if res.StatusCode != http.StatusOK {
		err := &FetchError{Url: searchUrl, StatusCode: res.StatusCode}
		c.tel.ReportBroken(report_client_categories, err, journalName)
		return JournalProfile{}, notFound(err)
	}

	doc, err := htmlutil.Parse(res.Body)
	if err != nil {
		c.tel.ReportBroken(report_client_categories, fmt.Errorf("parse search: %w", err), journalName)
		return JournalProfile{}, notFound(err)
	}

	selected, ok := selectCandidate(c.searchCandidates(doc), journalName)
	if !ok {
		c.tel.ReportWarning(report_client_categories, "no search results", journalName)
		return JournalProfile{}, notFound(fmt.Errorf("no search results for %q", journalName))
	}

	profileUrl := selected.link.String()
	c.tel.ReportDebug("found profile", selected.title, profileUrl)

	res, err = c.fetcher.Fetch(ctx, profileUrl, nil)
	if err != nil {
		c.tel.ReportBroken(report_client_categories, fmt.Errorf("fetch profile: %w", err), profileUrl)
		return JournalProfile{}, notFound(err)
	}
	if res.StatusCode != http.StatusOK {
		err := &FetchError{Url: profileUrl, StatusCode: res.StatusCode}
		c.tel.ReportBroken(report_client_categories, err)
		return JournalProfile{}, notFound(err)
	}

	doc, err = htmlutil.Parse(res.Body)
	if err != nil {
		c.tel.ReportBroken(report_client_categories, fmt.Errorf("parse profile: %w", err), profileUrl)
		return JournalProfile{}, notFound(err)
	}

	categories := ExtractCategories(doc)
	if len(categories) == 0 {
		c.tel.ReportWarning(report_client_categories, "profile has no categories", profileUrl)
		return JournalProfile{}, notFound(fmt.Errorf("no categories on profile of %q", selected.title))
	}

	return JournalProfile{
		Title:      selected.title,
		ProfileUrl: profileUrl,
		Categories: categories,
	}, nil
}
