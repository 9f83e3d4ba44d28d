package webform

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"journalrank/internal/components/telemetry"
	"journalrank/internal/scrapers/scimago"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/require"
)

type fakeLookup struct {
	profile    scimago.JournalProfile
	record     scimago.RankingRecord
	err        error
	queries    []scimago.SearchQuery
	categories []string
}

func (f *fakeLookup) Categories(_ context.Context, journalName string) (scimago.JournalProfile, error) {
	f.categories = append(f.categories, journalName)
	return f.profile, f.err
}

func (f *fakeLookup) Ranking(_ context.Context, q scimago.SearchQuery) (scimago.RankingRecord, error) {
	f.queries = append(f.queries, q)
	return f.record, f.err
}

func newTestServer(t testing.TB, lookup Lookup, metrics http.Handler) (*Server, *telemetry.RecordingAPI) {
	tel := telemetry.NewRecordingAPI()
	server, err := New(lookup, tel, metrics)
	require.NoError(t, err)
	return server, tel
}

func post(server *Server, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	return rec
}

func TestIndex(t *testing.T) {
	server, _ := newTestServer(t, &fakeLookup{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Journal Ranking Finder")
	require.Contains(t, rec.Body.String(), `formaction="/categories"`)
	require.Contains(t, rec.Body.String(), `formaction="/rankings"`)
	require.NotContains(t, rec.Body.String(), `id="ranking"`)
}

func TestCategoriesAction(t *testing.T) {
	lookup := &fakeLookup{profile: scimago.JournalProfile{
		Title: "Nature",
		Categories: []scimago.Category{
			{Id: "1000", Name: "Multidisciplinary"},
		},
	}}
	server, _ := newTestServer(t, lookup, nil)

	rec := post(server, "/categories", url.Values{"journal_name": {"nature"}})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []string{"nature"}, lookup.categories)

	body := rec.Body.String()
	require.Contains(t, body, `Showing categories for &#34;Nature&#34;`)
	require.Contains(t, body, "<td>Multidisciplinary</td><td>1000</td>")
	require.Contains(t, body, `value="nature"`)
}

func TestRankingsAction(t *testing.T) {
	lookup := &fakeLookup{record: scimago.RankingRecord{
		JournalTitle: "Nature",
		CategoryId:   "1000",
		CategoryName: "Multidisciplinary",
		Rank:         1,
		Total:        1200,
		Quartile:     scimago.Q1,
		Year:         "2020",
		Page:         1,
	}}
	server, _ := newTestServer(t, lookup, nil)

	rec := post(server, "/rankings", url.Values{
		"journal_name": {"Nature"},
		"category_id":  {"1000"},
		"year":         {"2020"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []scimago.SearchQuery{{JournalName: "Nature", CategoryId: "1000", Year: "2020"}}, lookup.queries)

	body := rec.Body.String()
	require.Contains(t, body, "#1 of 1200")
	require.Contains(t, body, "0.08%")
	require.Contains(t, body, "<td>Q1</td>")
}

func TestFormValidation(t *testing.T) {
	lookup := &fakeLookup{}
	server, _ := newTestServer(t, lookup, nil)

	rec := post(server, "/categories", url.Values{})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Contains(t, rec.Body.String(), "Please enter a journal name.")

	rec = post(server, "/rankings", url.Values{"journal_name": {"Nature"}})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Contains(t, rec.Body.String(), "Please enter a category id")

	rec = post(server, "/categories", url.Values{"journal_name": {"  \t "}})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Contains(t, rec.Body.String(), "Please enter a journal name.")

	rec = post(server, "/rankings", url.Values{"journal_name": {"   "}, "category_id": {"1000"}})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Contains(t, rec.Body.String(), "Please enter a journal name.")

	require.Empty(t, lookup.categories)
	require.Empty(t, lookup.queries)
}

func TestNotFound(t *testing.T) {
	lookup := &fakeLookup{err: scimago.ErrNotFound}
	server, tel := newTestServer(t, lookup, nil)

	rec := post(server, "/rankings", url.Values{"journal_name": {"Nature"}, "category_id": {"2730"}})
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "Journal not found in this category.")

	rec = post(server, "/categories", url.Values{"journal_name": {"Nature"}})
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "Journal not found.")

	require.Empty(t, tel.Reports("broken"))
}

func TestUnexpectedErrorIsReported(t *testing.T) {
	lookup := &fakeLookup{err: errors.New("boom")}
	server, tel := newTestServer(t, lookup, nil)

	rec := post(server, "/categories", url.Values{"journal_name": {"Nature"}})
	require.Equal(t, http.StatusNotFound, rec.Code)

	reports := tel.Reports("broken")
	require.Len(t, reports, 1)
	require.Equal(t, "webform:webform.categories", reports[0].Id)
}

func TestHealthAndMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	tel, err := telemetry.NewPrometheusAPI(telemetry.NewRecordingAPI(), reg)
	require.NoError(t, err)
	tel.ReportWarning("scimago:client.ranking")

	server, err := New(&fakeLookup{}, tel, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", rec.Body.String())

	rec = httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `journalrank_warnings_total{id="scimago:client.ranking"} 1`)
}

func TestMetricsDisabled(t *testing.T) {
	server, _ := newTestServer(t, &fakeLookup{}, nil)

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}
