package scimago

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"testing"

	"journalrank/internal/components/telemetry"
)

type fetcherFunc func(ctx context.Context, link string, query url.Values) (Page, error)

func (f fetcherFunc) Fetch(ctx context.Context, link string, query url.Values) (Page, error) {
	return f(ctx, link, query)
}

func okPage(body string) Page {
	return Page{StatusCode: 200, Body: []byte(body)}
}

type testRow struct {
	rank  string
	title string
	// class is put on a span inside the row, ex. "q1"
	class string
}

func listingPage(category string, rows []testRow, paginationLinks ...string) string {
	var out strings.Builder
	fmt.Fprintf(&out, "<html><head><title>Journal Rankings on %s</title></head><body>", category)
	out.WriteString(`<table class="tabla_datos"><thead><tr><th>#</th><th>Title</th><th>SJR</th></tr></thead><tbody>`)
	for _, r := range rows {
		fmt.Fprintf(
			&out,
			`<tr><td>%s</td><td class="tit"><a href="journalsearch.php?q=1&amp;tip=sid" title="view journal details">%s</a></td><td><span class="%s">0.5</span></td></tr>`,
			r.rank, r.title, r.class,
		)
	}
	out.WriteString("</tbody></table><div class=\"pagination\">")
	for _, l := range paginationLinks {
		fmt.Fprintf(&out, `<a href="%s">link</a>`, l)
	}
	out.WriteString("</div></body></html>")
	return out.String()
}

func fillerRows(page, n int) []testRow {
	rows := make([]testRow, n)
	for i := range rows {
		rows[i] = testRow{
			rank:  fmt.Sprint((page-1)*n + i + 1),
			title: fmt.Sprintf("Filler Journal %d-%d", page, i),
			class: "q4",
		}
	}
	return rows
}

func testOptions() ClientOptions {
	opts := DefaultClientOptions()
	opts.PageDelay = 0
	return opts
}

func newTestClient(t testing.TB, fetcher Fetcher) (Client, *telemetry.RecordingAPI) {
	return newTestClientWithOptions(t, testOptions(), fetcher)
}

func newTestClientWithOptions(t testing.TB, opts ClientOptions, fetcher Fetcher) (Client, *telemetry.RecordingAPI) {
	tel := telemetry.NewRecordingAPI()
	client, err := NewClientWithFetcher(opts, fetcher, tel)
	if err != nil {
		t.Fatal(err)
	}
	return client, tel
}
