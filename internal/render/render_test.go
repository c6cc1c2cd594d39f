package render

import (
	"strings"
	"testing"
	"time"

	"github.com/dgallion1/docsite/internal/outline"
	"github.com/dgallion1/docsite/internal/section"
	"github.com/dgallion1/docsite/internal/site"
)

func renderString(t *testing.T, v View) string {
	t.Helper()
	r, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	var b strings.Builder
	if err := r.Page(&b, v); err != nil {
		t.Fatalf("render: %v", err)
	}
	return b.String()
}

func TestPage_StateMarkup(t *testing.T) {
	s := site.New(site.DefaultTopics(), site.DefaultBreakpoints())
	st := s.Initial(site.ThemeDark)
	st, _ = s.Dispatch(st, site.Event{Kind: site.KindTabClick, Topic: "crypto"})
	st, _ = s.Dispatch(st, site.Event{Kind: site.KindResize, Width: 400})

	out := renderString(t, View{
		State:        st,
		Topics:       s.Topics(),
		FrameTimeout: 10 * time.Second,
		FrameBase:    "/docs",
	})

	for _, want := range []string{
		`data-theme="dark"`,
		`<body class="mobile-view"`,
		`data-frame-timeout-ms="10000"`,
		`<h1>Cryptography &amp; Security</h1>`,
		`<div id="crypto-content" class="tab-content active" role="tabpanel">`,
		`src="/docs/crypto.html"`,
		`loading="lazy"`,
		`Loading documentation...`,
		`<nav id="toc"></nav>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
	if strings.Count(out, `tabindex="0"`) != 1 {
		t.Errorf("expected exactly one focusable tab")
	}
	if strings.Count(out, `class="tab-button active"`) != 1 {
		t.Errorf("expected exactly one active tab")
	}
	if !strings.Contains(out, `data-tab="crypto" aria-selected="true"`) {
		t.Errorf("expected crypto tab selected")
	}
}

func TestPage_FrameStates(t *testing.T) {
	st := site.State{
		Theme:       site.ThemeLight,
		ActiveTopic: "database",
		Frames: map[string]site.FrameState{
			"database": {Loaded: true},
			"crypto":   {Failed: true},
		},
	}
	out := renderString(t, View{State: st, Topics: site.DefaultTopics(), FrameBase: "/docs/"})

	if !strings.Contains(out, site.FrameErrorMarkup) {
		t.Error("expected frame error markup for failed frame")
	}
	// Five topics: one loaded, one failed, three still loading.
	if n := strings.Count(out, "Loading documentation..."); n != 3 {
		t.Errorf("expected 3 loading placeholders, got %d", n)
	}
	if strings.Contains(out, `loading="lazy"`) {
		t.Error("expected eager frames")
	}
	if !strings.Contains(out, `<body class="large-view"`) {
		t.Error("expected default large viewport")
	}
}

func TestPage_WithSection(t *testing.T) {
	o := outline.Outline{Headings: []outline.Heading{{ID: "Intro", Label: "Intro"}}}
	page := &section.Page{
		Ref:     "intro.html",
		Title:   "Intro",
		Content: `<h2 id="Intro">Intro</h2>`,
		Nav:     outline.RenderString(o),
		Outline: o,
	}

	out := renderString(t, View{
		State:         site.State{Theme: site.ThemeLight, ActiveTopic: "database"},
		Topics:        site.DefaultTopics(),
		Page:          page,
		ReducedMotion: true,
	})

	if !strings.Contains(out, `<h2 id="Intro">Intro</h2>`) {
		t.Error("expected section content unescaped")
	}
	if !strings.Contains(out, `<nav id="toc"><ol class="toc"><li><a href="#Intro">Intro</a></li></ol></nav>`) {
		t.Errorf("expected navigation list, got %s", out)
	}
	if !strings.Contains(out, `data-section="intro.html"`) {
		t.Error("expected section reference")
	}
	if !strings.Contains(out, "reduced-motion") {
		t.Error("expected reduced motion class")
	}
	if !strings.Contains(out, "🌙") {
		t.Error("expected moon icon for light theme")
	}
}

func TestPage_FailedSection(t *testing.T) {
	out := renderString(t, View{
		State:  site.State{ActiveTopic: "database"},
		Topics: site.DefaultTopics(),
		Page:   &section.Page{Ref: "x.html", Content: section.ErrorMarkup, Failed: true},
	})
	if !strings.Contains(out, section.ErrorMarkup) {
		t.Error("expected error markup in content region")
	}
	if !strings.Contains(out, `class="page-content failed"`) {
		t.Error("expected failed marker")
	}
}
