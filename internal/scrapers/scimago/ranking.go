package scimago

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"journalrank/pkg/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"
)

const (
	report_client_ranking      = "client.ranking"
	report_client_ranking_row  = "client.ranking-row"
	report_client_pages_listed = "client.pages-listed"
)

const categoryTitlePrefix = "Journal Rankings on"

// CategoryNameFromTitle strips the fixed prefix off a listing page title.
func CategoryNameFromTitle(doc *goquery.Document) string {
	title := htmlutil.Text(htmlutil.FindFirst(doc.Selection, "title", nil))
	title = strings.TrimPrefix(title, categoryTitlePrefix)
	return strings.TrimSpace(title)
}

// RowQuartile checks the quartile markers of a row in Q1 to Q4 order.
func RowQuartile(row *goquery.Selection) Quartile {
	for _, q := range quartileOrder {
		class := strings.ToLower(string(q))
		if row.HasClass(class) || htmlutil.FindAll(row, "*", htmlutil.HasClass(class)).Length() > 0 {
			return q
		}
	}
	return QuartileNA
}

type listingRow struct {
	title    string
	rank     int
	quartile Quartile
}

// scanRows returns the first row matching journalName whose rank parses.
func (c Client) scanRows(rows *goquery.Selection, journalName string, page int) (listingRow, bool) {
	var found listingRow
	var ok bool

	rows.EachWithBreak(func(_ int, row *goquery.Selection) bool {
		link := htmlutil.FindFirst(row, "a", htmlutil.AttrEquals("title", "view journal details"))
		if link.Length() == 0 {
			return true
		}
		title := htmlutil.Text(link)
		if !c.opts.Match.Match(journalName, title) {
			return true
		}

		rankText := htmlutil.Text(htmlutil.FindFirst(row, "td", nil))
		rank, err := strconv.Atoi(rankText)
		if err != nil || rank < 1 {
			c.tel.ReportWarning(
				report_client_ranking_row,
				fmt.Errorf("parse rank: %q", rankText),
				title,
				page,
			)
			return true
		}

		found = listingRow{
			title:    title,
			rank:     rank,
			quartile: RowQuartile(row),
		}
		ok = true
		return false
	})

	return found, ok
}

// Ranking pages through the ranking listing of a category until a row matching
// the journal is found. Every failure is reported and returned as an error
// wrapping ErrNotFound, reaching the page ceiling additionally wraps ErrPageLimit.
func (c Client) Ranking(ctx context.Context, q SearchQuery) (RankingRecord, error) {
	journalName := htmlutil.NormalizeText(q.JournalName)
	if journalName == "" {
		return RankingRecord{}, notFound(fmt.Errorf("%w: journal name", ErrEmptyQuery))
	}
	categoryId := strings.TrimSpace(q.CategoryId)
	if categoryId == "" {
		return RankingRecord{}, notFound(fmt.Errorf("%w: category id", ErrEmptyQuery))
	}
	year := strings.TrimSpace(q.Year)

	c.tel.ReportDebug("search ranking", journalName, categoryId, year)

	limit := rate.Inf
	if c.opts.PageDelay > 0 {
		limit = rate.Every(c.opts.PageDelay)
	}
	throttle := rate.NewLimiter(limit, 1)

	total := 0
	for page := 1; ; page++ {
		if page > c.opts.MaxPages {
			c.tel.ReportWarning(report_client_ranking, ErrPageLimit, journalName, categoryId, c.opts.MaxPages)
			return RankingRecord{}, notFound(ErrPageLimit)
		}

		err := throttle.Wait(ctx)
		if err != nil {
			c.tel.ReportWarning(report_client_ranking, fmt.Errorf("throttle: %w", err), page)
			return RankingRecord{}, notFound(err)
		}

		link := c.listingUrl(categoryId, page, year)
		c.tel.ReportDebug("fetch listing", link)

		res, err := c.fetcher.Fetch(ctx, link, nil)
		if err != nil {
			c.tel.ReportBroken(report_client_ranking, fmt.Errorf("fetch: %w", err), link)
			return RankingRecord{}, notFound(err)
		}
		if res.StatusCode != http.StatusOK {
			err := &FetchError{Url: link, StatusCode: res.StatusCode}
			c.tel.ReportBroken(report_client_ranking, err)
			return RankingRecord{}, notFound(err)
		}
		c.tel.ReportCount(report_client_pages_listed, int64(page))

		doc, err := htmlutil.Parse(res.Body)
		if err != nil {
			c.tel.ReportBroken(report_client_ranking, fmt.Errorf("parse: %w", err), link)
			return RankingRecord{}, notFound(err)
		}

		if pageTotal, ok := ResolveTotal(doc, c.opts.PageSize); ok {
			total = pageTotal
		}
		categoryName := CategoryNameFromTitle(doc)

		rows := htmlutil.FindAll(doc.Selection, "tr", nil)
		if rows.Length() <= 1 {
			c.tel.ReportDebug("listing exhausted", categoryId, page)
			return RankingRecord{}, notFound(fmt.Errorf("%q is not listed in category %s", journalName, categoryId))
		}

		row, ok := c.scanRows(rows, journalName, page)
		if !ok {
			c.tel.ReportDebug("checked page", page)
			continue
		}

		record := RankingRecord{
			JournalTitle: row.title,
			CategoryId:   categoryId,
			CategoryName: categoryName,
			Rank:         row.rank,
			Total:        total,
			Quartile:     row.quartile,
			Year:         year,
			Page:         page,
		}
		if record.Year == "" {
			record.Year = LatestYear
		}
		if record.TotalKnown() && record.Rank > record.Total {
			c.tel.ReportWarning(
				report_client_ranking,
				fmt.Errorf("rank %d exceeds total %d, discarding total", record.Rank, record.Total),
				link,
			)
			record.Total = 0
		}
		return record, nil
	}
}
