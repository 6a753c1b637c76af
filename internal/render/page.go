package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/dgallion1/gymscore/internal/view"
)

// Page describes a complete results page.
type Page struct {
	Title       string
	ContainerID string
	Notice      string // Markdown shown above the container
	Content     *view.Tree

	// FragmentURL, when set, leaves the loading text in the container and
	// adds a script that replaces it with the body of FragmentURL.
	FragmentURL string
}

// WritePage writes a full HTML document.
func WritePage(w io.Writer, p Page) error {
	notice, err := Notice(p.Notice)
	if err != nil {
		return err
	}

	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element(atom.Html, attr("lang", "sv"))
	doc.AppendChild(root)

	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, attr("charset", "utf-8")))
	head.AppendChild(element(atom.Meta, attr("name", "viewport"), attr("content", "width=device-width, initial-scale=1")))
	title := element(atom.Title)
	title.AppendChild(textNode(p.Title))
	head.AppendChild(title)
	style := element(atom.Style)
	style.AppendChild(textNode(stylesheet))
	head.AppendChild(style)
	root.AppendChild(head)

	body := element(atom.Body)
	h1 := element(atom.H1)
	h1.AppendChild(textNode(p.Title))
	body.AppendChild(h1)
	if len(notice) > 0 {
		div := element(atom.Div, attr("class", "notice"))
		for _, n := range notice {
			div.AppendChild(n)
		}
		body.AppendChild(div)
	}

	container := element(atom.Div, attr("id", p.ContainerID))
	content := p.Content
	if p.FragmentURL != "" {
		content = view.Loading()
	}
	for _, n := range Nodes(content) {
		container.AppendChild(n)
	}
	body.AppendChild(container)

	if p.FragmentURL != "" {
		script := element(atom.Script)
		script.AppendChild(textNode(loaderScript(p.ContainerID, p.FragmentURL)))
		body.AppendChild(script)
	}
	root.AppendChild(body)

	if err := html.Render(w, doc); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}

// loaderScript fetches the container fragment once, bypassing caches. Any
// failure leaves only the fixed failure text.
func loaderScript(containerID, url string) string {
	return strings.NewReplacer(
		"$ID", jsString(containerID),
		"$URL", jsString(url),
		"$FAIL", jsString(view.FailureText),
	).Replace(loaderJS)
}

// jsString quotes s for use inside a script element. json.Marshal escapes
// <, > and & so the result cannot close the element.
func jsString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

const loaderJS = `(function () {
  var c = document.getElementById($ID);
  fetch($URL, {cache: "no-store"})
    .then(function (r) {
      if (!r.ok) throw new Error("HTTP " + r.status);
      return r.text();
    })
    .then(function (h) { c.innerHTML = h; })
    .catch(function (err) {
      console.error("Error fetching or rendering:", err);
      c.textContent = $FAIL;
    });
})();`

const stylesheet = `
body { font-family: system-ui, sans-serif; max-width: 64rem; margin: 1rem auto; padding: 0 1rem; }
table { border-collapse: collapse; width: 100%; margin: .5rem 0 1rem; }
th, td { border: 1px solid #ccc; padding: .25rem .5rem; text-align: left; }
td:nth-child(n+3) { text-align: right; font-variant-numeric: tabular-nums; }
.meta, .updated, .empty, .loading { color: #555; }
.error { color: #a00; }
.tabs > .tab-input { position: absolute; opacity: 0; pointer-events: none; }
.tabs > .tab-label { display: inline-block; padding: .3rem .8rem; border: 1px solid #ccc; border-bottom: none; cursor: pointer; }
.tabs > .tab-input:checked + .tab-label { background: #eee; font-weight: bold; }
.tabs > .tab-panel { display: none; }
.tabs > .tab-input:nth-of-type(1):checked ~ .tab-panel:nth-of-type(1),
.tabs > .tab-input:nth-of-type(2):checked ~ .tab-panel:nth-of-type(2),
.tabs > .tab-input:nth-of-type(3):checked ~ .tab-panel:nth-of-type(3),
.tabs > .tab-input:nth-of-type(4):checked ~ .tab-panel:nth-of-type(4) { display: block; }
`
