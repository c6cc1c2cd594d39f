package render

import (
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/dgallion1/docsite/internal/section"
	"github.com/dgallion1/docsite/internal/site"
)

// View is everything the page template needs for one response.
type View struct {
	State         site.State
	Topics        []site.Topic
	Page          *section.Page // Optional loaded section
	ReducedMotion bool
	FrameTimeout  time.Duration
	FrameBase     string // URL prefix for topic frames, e.g. "/docs/"
}

// Renderer turns a View into a full HTML document.
type Renderer struct {
	tmpl *template.Template
}

func New() (*Renderer, error) {
	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

type tab struct {
	site.Topic
	Active   bool
	Focused  bool
	Frame    site.FrameState
	FrameSrc string
}

type pageData struct {
	Theme          site.Theme
	ThemeIcon      string
	Viewport       site.Viewport
	ReducedMotion  bool
	SmoothTabs     bool
	LazyFrames     bool
	FrameTimeoutMs int64
	FrameError     template.HTML
	Tabs           []tab
	Active         site.Topic
	Page           *section.Page
	Content        template.HTML
	NavID          string
	Nav            template.HTML
}

// Page writes the document for v to w.
func (r *Renderer) Page(w io.Writer, v View) error {
	data := pageData{
		Theme:          v.State.Theme,
		ThemeIcon:      v.State.Theme.Icon(),
		Viewport:       v.State.Viewport,
		ReducedMotion:  v.ReducedMotion,
		SmoothTabs:     v.State.SmoothTabs,
		LazyFrames:     v.State.LazyFrames,
		FrameTimeoutMs: v.FrameTimeout.Milliseconds(),
		FrameError:     template.HTML(site.FrameErrorMarkup),
		Page:           v.Page,
		NavID:          section.NavID,
	}
	if data.Viewport == "" {
		data.Viewport = site.ViewLarge
	}

	for i, t := range v.Topics {
		active := t.Key == v.State.ActiveTopic
		if active {
			data.Active = t
		}
		data.Tabs = append(data.Tabs, tab{
			Topic:    t,
			Active:   active,
			Focused:  i == v.State.FocusIndex,
			Frame:    v.State.Frames[t.Key],
			FrameSrc: frameSrc(v.FrameBase, t.Key),
		})
	}

	if v.Page != nil {
		// Loader output is produced by html.Render from a parsed tree.
		data.Content = template.HTML(v.Page.Content)
		data.Nav = template.HTML(v.Page.Nav)
	}

	if err := r.tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}

func frameSrc(base, key string) string {
	if base == "" {
		return ""
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + key + ".html"
}
