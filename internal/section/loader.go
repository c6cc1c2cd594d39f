package section

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dgallion1/docsite/internal/outline"
	"github.com/dgallion1/docsite/internal/parser"
	"github.com/dgallion1/docsite/internal/perf"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrorMarkup is written into the content region when a section fails to load.
const ErrorMarkup = `<div class="load-error"><h3>Section Unavailable</h3>` +
	`<p>This section could not be loaded. Please check your connection or try refreshing the page.</p></div>`

// NavID is the id of the navigation container the outline is rendered into.
const NavID = "toc"

// Page is the result of loading one section into the content region.
type Page struct {
	Ref      string          `json:"ref"`
	Title    string          `json:"title"`
	Content  string          `json:"content"`
	Nav      string          `json:"nav"`
	Outline  outline.Outline `json:"outline"`
	Failed   bool            `json:"failed"`
	LoadedAt time.Time       `json:"loaded_at"`
}

// Config controls loader behavior.
type Config struct {
	Patterns        []string // Doublestar globs a reference must match
	CacheTTL        time.Duration
	WarmConcurrency int
	MaxBytes        int64
	Parser          parser.Options
	ReservedIDs     []string // Page-level ids headings must not take; NavID is always reserved
}

// Loader fetches sections, converts them to fragments and builds their outline.
type Loader struct {
	sources []Source
	builder *outline.Builder
	cache   *Cache
	monitor *perf.Monitor
	log     *slog.Logger
	cfg     Config

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewLoader creates a loader that tries sources in order.
func NewLoader(cfg Config, builder *outline.Builder, monitor *perf.Monitor, log *slog.Logger, sources ...Source) *Loader {
	if cfg.WarmConcurrency <= 0 {
		cfg.WarmConcurrency = 4
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = 10 << 20
	}
	return &Loader{
		sources: sources,
		builder: builder,
		cache:   NewCache(cfg.CacheTTL),
		monitor: monitor,
		log:     log,
		cfg:     cfg,
	}
}

// Load fetches ref and returns its page. Failures never surface as errors:
// the page then carries ErrorMarkup, an empty outline and Failed set.
func (l *Loader) Load(ctx context.Context, ref string) *Page {
	if p := l.cache.Get(ref); p != nil {
		return p
	}

	start := time.Now()
	p, err := l.load(ctx, ref)
	l.monitor.Time(perf.SeriesSectionLoad, start)
	if err != nil {
		l.log.Warn("section load failed", "ref", ref, "error", err)
		return &Page{
			Ref:      ref,
			Content:  ErrorMarkup,
			Outline:  outline.Outline{Headings: []outline.Heading{}},
			Failed:   true,
			LoadedAt: time.Now(),
		}
	}

	l.cache.Put(p)
	l.log.Debug("section loaded", "ref", ref, "headings", p.Outline.Len(), "duration_ms", time.Since(start).Milliseconds())
	return p
}

func (l *Loader) load(ctx context.Context, ref string) (*Page, error) {
	if err := ValidateRef(ref, l.cfg.Patterns); err != nil {
		return nil, err
	}
	conv, err := parser.ForFile(ref, l.cfg.Parser)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRef, err)
	}

	data, err := l.fetch(ctx, ref)
	if err != nil {
		return nil, err
	}

	frag, err := conv.Convert(bytes.NewReader(data), ref)
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", ref, err)
	}

	root := &html.Node{Type: html.ElementNode, DataAtom: atom.Div, Data: "div"}
	nodes, err := html.ParseFragment(strings.NewReader(frag.HTML), root)
	if err != nil {
		return nil, fmt.Errorf("parse fragment %s: %w", ref, err)
	}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	promoteLazyImages(root)

	nav := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Nav,
		Data:     "nav",
		Attr:     []html.Attribute{{Key: "id", Val: NavID}},
	}
	buildStart := time.Now()
	o := l.builder.Apply(root, nav, l.reserved()...)
	l.monitor.Time(perf.SeriesOutlineBuild, buildStart)

	content, err := renderChildren(root)
	if err != nil {
		return nil, fmt.Errorf("render content %s: %w", ref, err)
	}
	navHTML, err := renderChildren(nav)
	if err != nil {
		return nil, fmt.Errorf("render nav %s: %w", ref, err)
	}

	return &Page{
		Ref:      ref,
		Title:    frag.Title,
		Content:  content,
		Nav:      navHTML,
		Outline:  o,
		LoadedAt: time.Now(),
	}, nil
}

// fetch reads ref from the first source that has it.
func (l *Loader) fetch(ctx context.Context, ref string) ([]byte, error) {
	if len(l.sources) == 0 {
		return nil, fmt.Errorf("%w: no sources configured", ErrNotFound)
	}
	var lastErr error
	for _, src := range l.sources {
		rc, err := src.Open(ctx, ref)
		if err != nil {
			lastErr = err
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, err
		}
		data, err := io.ReadAll(io.LimitReader(rc, l.cfg.MaxBytes+1))
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", ref, err)
		}
		if int64(len(data)) > l.cfg.MaxBytes {
			return nil, fmt.Errorf("section %s exceeds max size (%d bytes)", ref, l.cfg.MaxBytes)
		}
		return data, nil
	}
	return nil, lastErr
}

// List returns the references every listable source can serve.
func (l *Loader) List() ([]string, error) {
	var refs []string
	seen := make(map[string]bool)
	for _, src := range l.sources {
		lister, ok := src.(Lister)
		if !ok {
			continue
		}
		found, err := lister.List(l.cfg.Patterns)
		if err != nil {
			return nil, err
		}
		for _, ref := range found {
			if !seen[ref] {
				seen[ref] = true
				refs = append(refs, ref)
			}
		}
	}
	return refs, nil
}

// Warm loads refs into the cache with bounded concurrency and returns how
// many loaded successfully.
func (l *Loader) Warm(ctx context.Context, refs []string) int {
	var ok atomic.Int64
	var wg sync.WaitGroup
	sem := make(chan struct{}, l.cfg.WarmConcurrency)

	for _, ref := range refs {
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			wg.Wait()
			return int(ok.Load())
		}
		wg.Add(1)
		ref := ref
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			if p := l.Load(ctx, ref); !p.Failed {
				ok.Add(1)
			}
		}()
	}
	wg.Wait()
	return int(ok.Load())
}

// Start launches the cache cleanup loop.
func (l *Loader) Start(ctx context.Context) {
	loopCtx, cancel := context.WithCancel(ctx)
	l.cancel = cancel

	interval := l.cfg.CacheTTL
	if interval <= 0 {
		interval = time.Minute
	}
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-loopCtx.Done():
				return
			case <-ticker.C:
				l.cache.Cleanup()
			}
		}
	}()
}

// Stop halts background work.
func (l *Loader) Stop() {
	if l.cancel != nil {
		l.cancel()
	}
	l.wg.Wait()
}

// reserved returns the ids of page elements outside the content region.
func (l *Loader) reserved() []string {
	return append([]string{NavID}, l.cfg.ReservedIDs...)
}

// promoteLazyImages turns <img data-src> placeholders into lazily loaded images.
func promoteLazyImages(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Img {
			var src string
			var hasLoading bool
			attrs := make([]html.Attribute, 0, len(c.Attr)+1)
			for _, a := range c.Attr {
				switch a.Key {
				case "data-src":
					src = a.Val
					continue
				case "src":
					continue
				case "loading":
					hasLoading = true
				}
				attrs = append(attrs, a)
			}
			if src == "" {
				continue
			}
			c.Attr = append(attrs, html.Attribute{Key: "src", Val: src})
			if !hasLoading {
				c.Attr = append(c.Attr, html.Attribute{Key: "loading", Val: "lazy"})
			}
			continue
		}
		promoteLazyImages(c)
	}
}

func renderChildren(n *html.Node) (string, error) {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}
