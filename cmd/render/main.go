package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"time"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/dgallion1/gymscore/internal/config"
	"github.com/dgallion1/gymscore/internal/render"
	"github.com/dgallion1/gymscore/internal/results"
	"github.com/dgallion1/gymscore/internal/view"
)

const (
	sourceFlag    = "source"
	outputFlag    = "output"
	layoutFlag    = "layout"
	formatFlag    = "format"
	titleFlag     = "title"
	containerFlag = "container"
	noticeFlag    = "notice"
	timeoutFlag   = "timeout"
	stdoutCLIName = "-"
)

// Exit codes.
const (
	exitFetch  = 2
	exitRender = 3
	exitWrite  = 4
)

var build string
var semanticVersion = "v0.1.0-dev" + build

type exportOptions struct {
	Source    string
	Layout    view.Layout
	Format    string
	Title     string
	Container string
	Notice    string
	Timeout   time.Duration
}

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	app := &cli.App{
		Name:    "gymscore-render",
		Usage:   "Render TeamGym results to a static page",
		Version: semanticVersion,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    sourceFlag,
				Aliases: []string{"s"},
				Usage:   "URL or path of the results JSON document",
				EnvVars: []string{"RESULTS_URL"},
				Value:   config.DefaultResultsURL,
			},
			&cli.StringFlag{
				Name:     outputFlag,
				Aliases:  []string{"o"},
				Usage:    "Where to write the result. Can be a file path or \"-\" (for stdout).",
				Required: true,
			},
			&cli.StringFlag{
				Name:    layoutFlag,
				Usage:   "Class layout: tabs or sections",
				EnvVars: []string{"LAYOUT"},
				Value:   string(view.LayoutTabs),
			},
			&cli.StringFlag{
				Name:  formatFlag,
				Usage: "Output format: html, md or yaml",
				Value: "html",
			},
			&cli.StringFlag{
				Name:    titleFlag,
				Usage:   "Page title",
				EnvVars: []string{"PAGE_TITLE"},
				Value:   "TeamGym Results",
			},
			&cli.StringFlag{
				Name:    containerFlag,
				Usage:   "Id of the results container element",
				EnvVars: []string{"CONTAINER_ID"},
				Value:   "tables",
			},
			&cli.StringFlag{
				Name:    noticeFlag,
				Usage:   "Markdown shown above the results",
				EnvVars: []string{"PAGE_NOTICE"},
			},
			&cli.DurationFlag{
				Name:    timeoutFlag,
				Usage:   "Fetch timeout",
				EnvVars: []string{"FETCH_TIMEOUT"},
				Value:   15 * time.Second,
			},
		},
		Action: func(cCtx *cli.Context) error {
			layout, err := view.ParseLayout(cCtx.String(layoutFlag))
			if err != nil {
				return cli.Exit(err, 1)
			}
			opts := exportOptions{
				Source:    cCtx.String(sourceFlag),
				Layout:    layout,
				Format:    cCtx.String(formatFlag),
				Title:     cCtx.String(titleFlag),
				Container: cCtx.String(containerFlag),
				Notice:    cCtx.String(noticeFlag),
				Timeout:   cCtx.Duration(timeoutFlag),
			}

			outputLocation := cCtx.String(outputFlag)
			var out io.WriteCloser = nopCloser{os.Stdout}
			if outputLocation != stdoutCLIName {
				out = newLazyWriteCloser(func() (io.WriteCloser, error) {
					return os.OpenFile(outputLocation, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
				})
			}
			defer out.Close()

			return export(cCtx.Context, log, opts, out)
		},
	}

	// Exit coders returned by the action terminate inside Run.
	if err := app.Run(os.Args); err != nil {
		log.Error("render failed", "error", err)
		os.Exit(1)
	}
}

// export loads the document and writes it in the requested format. Nothing
// is written unless the whole output rendered.
func export(ctx context.Context, log *slog.Logger, opts exportOptions, w io.Writer) error {
	doc, err := load(ctx, opts.Source, opts.Timeout)
	if err != nil {
		kind := "unknown"
		var fe *results.FetchError
		if errors.As(err, &fe) {
			kind = string(fe.Kind)
		}
		log.Error("fetch results", "source", opts.Source, "kind", kind, "error", err)
		return cli.Exit(view.FailureText, exitFetch)
	}

	var buf bytes.Buffer
	switch opts.Format {
	case "html", "":
		tree := view.Build(doc, view.Options{Layout: opts.Layout})
		err = render.WritePage(&buf, render.Page{
			Title:       opts.Title,
			ContainerID: opts.Container,
			Notice:      opts.Notice,
			Content:     tree,
		})
	case "md", "markdown":
		err = render.Markdown(&buf, view.Build(doc, view.Options{Layout: opts.Layout}))
	case "yaml":
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err = enc.Encode(doc); err == nil {
			err = enc.Close()
		}
	default:
		return cli.Exit(fmt.Sprintf("unknown format %q (want html, md or yaml)", opts.Format), 1)
	}
	if err != nil {
		return cli.Exit(fmt.Sprintf("render %s: %v", opts.Format, err), exitRender)
	}

	if _, err := buf.WriteTo(w); err != nil {
		return cli.Exit(fmt.Sprintf("write output: %v", err), exitWrite)
	}
	log.Info("rendered results",
		"source", opts.Source,
		"format", opts.Format,
		"competitions", len(doc.Competitions),
	)
	return nil
}

// load fetches an http(s) source or reads a local file.
func load(ctx context.Context, source string, timeout time.Duration) (*results.Document, error) {
	if u, err := url.ParseRequestURI(source); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		client := results.NewClient(source, timeout, nil)
		defer client.Close()
		return client.Fetch(ctx)
	}

	body, err := os.ReadFile(source)
	if err != nil {
		return nil, &results.FetchError{Kind: results.KindNetwork, Err: fmt.Errorf("read %s: %w", source, err)}
	}
	return results.Decode(body)
}
