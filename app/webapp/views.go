package webapp

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"

	"github.com/dmitrymomot/webdemo/core/handler"
	"github.com/dmitrymomot/webdemo/core/response"
)

//go:embed views/*.html
var viewFiles embed.FS

//go:embed assets
var assetFiles embed.FS

// embeddedAssets returns the static assets compiled into the binary.
func embeddedAssets() fs.FS {
	sub, err := fs.Sub(assetFiles, "assets")
	if err != nil {
		panic(err)
	}
	return sub
}

// views holds one template set per page, each sharing the layout.
type views map[string]*template.Template

func loadViews(pages ...string) (views, error) {
	layout, err := template.ParseFS(viewFiles, "views/layout.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	v := make(views, len(pages))
	for _, page := range pages {
		t, err := template.Must(layout.Clone()).ParseFS(viewFiles, "views/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("parse view %s: %w", page, err)
		}
		v[page] = t
	}
	return v, nil
}

func (v views) render(page string, data viewData) handler.Response {
	t, ok := v[page]
	if !ok {
		return response.Error(fmt.Errorf("unknown view %q", page))
	}
	return response.TemplateName(t, "layout", data)
}

type navLabels struct {
	Home, About, Contact string
}

type viewData struct {
	Title     string
	Message   string
	Culture   string
	RequestID string
	Flash     string
	Visits    string
	ErrorPath string
	Nav       navLabels
}
