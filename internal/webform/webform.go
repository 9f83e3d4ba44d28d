// Package webform serves the interactive html form, with one action to list a
// journal's categories and one to look up its ranking in a category.
package webform

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"io"
	"net/http"
	"strings"
	"time"

	"journalrank/internal/components/assert"
	"journalrank/internal/components/telemetry"
	"journalrank/internal/scrapers/scimago"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	report_webform_categories = "webform.categories"
	report_webform_rankings   = "webform.rankings"
)

//go:embed templates/form.html
var templateFS embed.FS

// Lookup is the part of the scimago client the form depends on.
type Lookup interface {
	Categories(ctx context.Context, journalName string) (scimago.JournalProfile, error)
	Ranking(ctx context.Context, q scimago.SearchQuery) (scimago.RankingRecord, error)
}

type formInput struct {
	JournalName string `form:"journal_name"`
	CategoryId  string `form:"category_id"`
	Year        string `form:"year"`
}

// formView is everything one render of the form needs, it is built per request.
type formView struct {
	Input    formInput
	Warning  string
	NotFound string
	Profile  *scimago.JournalProfile
	Record   *scimago.RankingRecord
}

type templateRenderer struct {
	templates *template.Template
}

func (t templateRenderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return t.templates.ExecuteTemplate(w, name, data)
}

type Server struct {
	echo   *echo.Echo
	lookup Lookup
	tel    telemetry.API
}

// New creates the form server, metrics is mounted at /metrics when it is not nil.
func New(lookup Lookup, tel telemetry.API, metrics http.Handler) (*Server, error) {
	assert.NotNil(lookup)
	assert.NotNil(tel)

	templates, err := template.ParseFS(templateFS, "templates/form.html")
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = templateRenderer{templates: templates}
	e.Use(middleware.Recover())

	s := &Server{
		echo:   e,
		lookup: lookup,
		tel:    telemetry.NewScopedAPI("webform", tel),
	}

	e.GET("/", s.index)
	e.POST("/categories", s.categories)
	e.POST("/rankings", s.rankings)
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	if metrics != nil {
		e.GET("/metrics", echo.WrapHandler(metrics))
	}

	return s, nil
}

func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start listens on addr until ctx is done.
func (s *Server) Start(ctx context.Context, addr string) error {
	errs := make(chan error, 1)
	go func() {
		errs <- s.echo.Start(addr)
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := s.echo.Shutdown(shutdownCtx)
	if err != nil {
		return err
	}
	err = <-errs
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) render(c echo.Context, status int, view formView) error {
	return c.Render(status, "form.html", view)
}

func (s *Server) index(c echo.Context) error {
	return s.render(c, http.StatusOK, formView{})
}

func (s *Server) bind(c echo.Context) (formInput, error) {
	var in formInput
	err := c.Bind(&in)
	return in, err
}

func (s *Server) categories(c echo.Context) error {
	in, err := s.bind(c)
	if err != nil {
		return s.render(c, http.StatusBadRequest, formView{Warning: "Invalid form submission."})
	}
	in.JournalName = strings.TrimSpace(in.JournalName)
	in.CategoryId = strings.TrimSpace(in.CategoryId)
	view := formView{Input: in}
	if in.JournalName == "" {
		view.Warning = "Please enter a journal name."
		return s.render(c, http.StatusUnprocessableEntity, view)
	}

	profile, err := s.lookup.Categories(c.Request().Context(), in.JournalName)
	if err != nil {
		if !errors.Is(err, scimago.ErrNotFound) {
			s.tel.ReportBroken(report_webform_categories, err, in.JournalName)
		}
		view.NotFound = "Journal not found."
		return s.render(c, http.StatusNotFound, view)
	}

	view.Profile = &profile
	return s.render(c, http.StatusOK, view)
}

func (s *Server) rankings(c echo.Context) error {
	in, err := s.bind(c)
	if err != nil {
		return s.render(c, http.StatusBadRequest, formView{Warning: "Invalid form submission."})
	}
	in.JournalName = strings.TrimSpace(in.JournalName)
	in.CategoryId = strings.TrimSpace(in.CategoryId)
	view := formView{Input: in}
	if in.JournalName == "" {
		view.Warning = "Please enter a journal name."
		return s.render(c, http.StatusUnprocessableEntity, view)
	}
	if in.CategoryId == "" {
		view.Warning = "Please enter a category id, use Get Categories to list them."
		return s.render(c, http.StatusUnprocessableEntity, view)
	}

	record, err := s.lookup.Ranking(c.Request().Context(), scimago.SearchQuery{
		JournalName: in.JournalName,
		CategoryId:  in.CategoryId,
		Year:        in.Year,
	})
	if err != nil {
		if !errors.Is(err, scimago.ErrNotFound) {
			s.tel.ReportBroken(report_webform_rankings, err, in.JournalName, in.CategoryId)
		}
		view.NotFound = "Journal not found in this category."
		return s.render(c, http.StatusNotFound, view)
	}

	view.Record = &record
	return s.render(c, http.StatusOK, view)
}
