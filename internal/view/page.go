package view

import (
	"embed"
	"encoding/json"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"remo-dashboard/internal/model"
	"remo-dashboard/internal/store"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// PageTemplate is the name of the dashboard template.
const PageTemplate = "index.tmpl"

// Group is the set of panels shown under one hub heading.
type Group struct {
	DeviceName string
	Panels     []Panel
}

// Page is the data rendered by the dashboard template.
type Page struct {
	Groups            []Group
	HasAPIKey         bool
	Error             string
	SettleDelayMillis int64
}

// Empty reports whether there is nothing to control.
func (p Page) Empty() bool {
	return len(p.Groups) == 0
}

// NewPage groups appliances by hub and builds their panels.
func NewPage(appliances []model.Appliance, history store.Store, settleDelay time.Duration) Page {
	page := Page{
		HasAPIKey:         true,
		SettleDelayMillis: settleDelay.Milliseconds(),
	}
	for _, g := range model.GroupByDevice(appliances) {
		page.Groups = append(page.Groups, Group{
			DeviceName: g.DeviceName,
			Panels:     BuildAll(g.Appliances, history),
		})
	}
	return page
}

// Templates parses the embedded page templates.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"json": toJSON,
	}).ParseFS(templateFS, "templates/*.tmpl")
}

// Static serves the embedded script and stylesheet.
func Static() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

func toJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
