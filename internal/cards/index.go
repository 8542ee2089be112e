package cards

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
)

// IndexItem is one card on the index page.
type IndexItem struct {
	// File is the image path relative to the index page.
	File string
	// Label appears under the image, usually the table id.
	Label string
}

// IndexPage feeds the index template.
type IndexPage struct {
	Title    string
	Subtitle string
	Items    []IndexItem
}

var indexTemplate = template.Must(template.New("index").Parse(`<!doctype html>
<html lang="es">
<head>
<meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
body{font-family:system-ui,Arial;margin:24px;background:#f7f9fc;color:#111}
h1{margin:0 0 8px 0} p{margin:4px 0 16px 0;color:#475569}
.grid{display:grid;grid-template-columns:repeat(auto-fill,minmax(320px,1fr));gap:18px}
.card{background:#fff;border:1px solid #e5e7eb;border-radius:16px;box-shadow:0 1px 3px rgba(0,0,0,.04);overflow:hidden}
.card img{width:100%;display:block}
.t{padding:10px 12px;color:#475569}
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p>{{.Subtitle}}</p>
<div class="grid">
{{range .Items}}<div class="card"><img src="{{.File}}" alt="{{.Label}}"><div class="t">{{.Label}}</div></div>
{{end}}</div>
</body></html>
`))

// WriteIndex renders the static index page listing all generated cards.
// Items should already be in the desired order; the output is fully
// determined by the input.
func WriteIndex(path string, page IndexPage) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create site directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create index file: %w", err)
	}
	defer f.Close()

	if err := indexTemplate.Execute(f, page); err != nil {
		return fmt.Errorf("render index: %w", err)
	}
	return nil
}
