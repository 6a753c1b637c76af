package api

import (
	"bytes"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/dgallion1/gymscore/internal/render"
	"github.com/dgallion1/gymscore/internal/results"
	"github.com/dgallion1/gymscore/internal/view"
)

// handlePage serves the full results page. With ?defer=1 the container
// starts with the loading text and pulls its content from /fragment.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	page := render.Page{
		Title:       s.cfg.PageTitle,
		ContainerID: s.cfg.ContainerID,
		Notice:      s.cfg.PageNotice,
	}
	if r.URL.Query().Get("defer") == "1" {
		page.FragmentURL = fragmentURL(r)
	} else {
		page.Content = s.buildTree(r)
	}

	var buf bytes.Buffer
	if err := render.WritePage(&buf, page); err != nil {
		s.log.Error("render page", "error", err, "request_id", middleware.GetReqID(r.Context()))
		buf.Reset()
		page.Notice = ""
		page.FragmentURL = ""
		page.Content = view.Failure()
		if err := render.WritePage(&buf, page); err != nil {
			http.Error(w, view.FailureText, http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

// handleFragment serves only the container's inner HTML.
func (s *Server) handleFragment(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := render.HTML(&buf, s.buildTree(r)); err != nil {
		s.log.Error("render fragment", "error", err, "request_id", middleware.GetReqID(r.Context()))
		buf.Reset()
		if err := render.HTML(&buf, view.Failure()); err != nil {
			http.Error(w, view.FailureText, http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

// handleMarkdown exports every table as Markdown.
func (s *Server) handleMarkdown(w http.ResponseWriter, r *http.Request) {
	doc, err := s.source.Fetch(r.Context())
	if err != nil {
		s.logFetchError(r, err)
		http.Error(w, view.FailureText, http.StatusBadGateway)
		return
	}

	var buf bytes.Buffer
	if err := render.Markdown(&buf, view.Build(doc, s.viewOptions(r))); err != nil {
		s.log.Error("render markdown", "error", err, "request_id", middleware.GetReqID(r.Context()))
		http.Error(w, view.FailureText, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	buf.WriteTo(w)
}

// buildTree fetches the document and maps it to the container content. Any
// fetch error collapses to the failure tree.
func (s *Server) buildTree(r *http.Request) *view.Tree {
	doc, err := s.source.Fetch(r.Context())
	if err != nil {
		s.logFetchError(r, err)
		return view.Failure()
	}
	return view.Build(doc, s.viewOptions(r))
}

func (s *Server) viewOptions(r *http.Request) view.Options {
	return view.Options{
		Layout:        s.cfg.ViewLayout(),
		Tabs:          view.ParseTabState(r.URL.Query()["tab"]),
		AllroundLabel: s.cfg.AllroundLabel,
	}
}

func (s *Server) logFetchError(r *http.Request, err error) {
	kind := "unknown"
	status := 0
	var fe *results.FetchError
	if errors.As(err, &fe) {
		kind = string(fe.Kind)
		status = fe.StatusCode
	}
	s.log.Error("fetch results",
		"error", err,
		"kind", kind,
		"upstream_status", status,
		"request_id", middleware.GetReqID(r.Context()),
	)
}

// fragmentURL is relative so the page keeps working behind a path prefix.
func fragmentURL(r *http.Request) string {
	tabs := r.URL.Query()["tab"]
	if len(tabs) == 0 {
		return "fragment"
	}
	return "fragment?" + url.Values{"tab": tabs}.Encode()
}
