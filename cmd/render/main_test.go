package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/dgallion1/gymscore/internal/view"
)

const sampleJSON = `{
  "last_updated": "2024-05-01 18:00",
  "competitions": [{
    "competition": "Regional Cup",
    "place": "Oslo",
    "classes": [{
      "class_name": "Senior",
      "teams": [{"rank": 1, "name": "Team A", "fx": {"score": 9.1}, "total": 12.5}],
      "tu_app": [{"rank": 1, "name": "Team A", "D": 2, "E": 8.25, "score": 10.25}]
    }]
  }]
}`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func upstream(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func baseOptions(source string) exportOptions {
	return exportOptions{
		Source:    source,
		Layout:    view.LayoutTabs,
		Format:    "html",
		Title:     "TeamGym Results",
		Container: "tables",
		Timeout:   5 * time.Second,
	}
}

func TestExport_HTML(t *testing.T) {
	srv := upstream(t, http.StatusOK, sampleJSON)

	var out bytes.Buffer
	if err := export(context.Background(), testLogger(), baseOptions(srv.URL), &out); err != nil {
		t.Fatalf("export: %v", err)
	}

	page := out.String()
	for _, want := range []string{
		"<!DOCTYPE html>",
		`<div id="tables">`,
		"Last updated: 2024-05-01 18:00",
		"<h2>Regional Cup</h2>",
		"12.500",
		"10.250",
		view.NoScoresText,
	} {
		if !strings.Contains(page, want) {
			t.Errorf("expected page to contain %q", want)
		}
	}
	if strings.Contains(page, "<script") {
		t.Error("expected static page without script")
	}
}

func TestExport_Markdown(t *testing.T) {
	srv := upstream(t, http.StatusOK, sampleJSON)
	opts := baseOptions(srv.URL)
	opts.Format = "md"

	var out bytes.Buffer
	if err := export(context.Background(), testLogger(), opts, &out); err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(out.String(), "## Regional Cup") {
		t.Errorf("expected markdown heading, got:\n%s", out.String())
	}
}

func TestExport_YAMLFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	if err := os.WriteFile(path, []byte(sampleJSON), 0644); err != nil {
		t.Fatal(err)
	}
	opts := baseOptions(path)
	opts.Format = "yaml"

	var out bytes.Buffer
	if err := export(context.Background(), testLogger(), opts, &out); err != nil {
		t.Fatalf("export: %v", err)
	}

	got := out.String()
	for _, want := range []string{"competition: Regional Cup", "class_name: Senior", "total: 12.5"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected yaml to contain %q, got:\n%s", want, got)
		}
	}
}

func TestExport_FetchFailure(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, "oops"},
		{"not found", http.StatusNotFound, ""},
		{"invalid json", http.StatusOK, "{not json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := upstream(t, tt.status, tt.body)

			var out bytes.Buffer
			err := export(context.Background(), testLogger(), baseOptions(srv.URL), &out)

			var exit cli.ExitCoder
			if !errors.As(err, &exit) {
				t.Fatalf("expected exit coder, got %v", err)
			}
			if exit.ExitCode() != exitFetch {
				t.Errorf("expected exit code %d, got %d", exitFetch, exit.ExitCode())
			}
			if out.Len() != 0 {
				t.Errorf("expected no output, got %q", out.String())
			}
		})
	}
}

func TestExport_UnknownFormat(t *testing.T) {
	srv := upstream(t, http.StatusOK, sampleJSON)
	opts := baseOptions(srv.URL)
	opts.Format = "pdf"

	err := export(context.Background(), testLogger(), opts, io.Discard)
	var exit cli.ExitCoder
	if !errors.As(err, &exit) || exit.ExitCode() != 1 {
		t.Fatalf("expected exit code 1, got %v", err)
	}
}

func TestLazyWriteCloser_KeepsFileOnFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.html")
	if err := os.WriteFile(path, []byte("previous"), 0644); err != nil {
		t.Fatal(err)
	}
	srv := upstream(t, http.StatusBadGateway, "")

	out := newLazyWriteCloser(func() (io.WriteCloser, error) {
		return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	})
	if err := export(context.Background(), testLogger(), baseOptions(srv.URL), out); err == nil {
		t.Fatal("expected error")
	}
	if err := out.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "previous" {
		t.Errorf("expected file untouched, got %q", got)
	}
}

func TestLazyWriteCloser_OpensOnWrite(t *testing.T) {
	opened := 0
	var buf bytes.Buffer
	out := newLazyWriteCloser(func() (io.WriteCloser, error) {
		opened++
		return nopCloser{&buf}, nil
	})

	out.Write([]byte("a"))
	out.Write([]byte("b"))
	out.Close()

	if opened != 1 {
		t.Errorf("expected 1 open, got %d", opened)
	}
	if buf.String() != "ab" {
		t.Errorf("expected %q, got %q", "ab", buf.String())
	}
}
