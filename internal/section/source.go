package section

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/dgallion1/docsite/internal/parser"
)

var (
	// ErrNotFound is returned by a Source that does not hold the reference.
	ErrNotFound = errors.New("section not found")
	// ErrInvalidRef is returned for references that are malformed or not served.
	ErrInvalidRef = errors.New("invalid section reference")
)

// Source opens section documents by reference.
type Source interface {
	Open(ctx context.Context, ref string) (io.ReadCloser, error)
}

// Lister is implemented by sources that can enumerate their references.
type Lister interface {
	List(patterns []string) ([]string, error)
}

// FileSource serves sections from a content directory.
type FileSource struct {
	root string
	fsys fs.FS
}

func NewFileSource(root string) *FileSource {
	return &FileSource{root: root, fsys: os.DirFS(root)}
}

func (s *FileSource) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := s.fsys.Open(ref)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, ref)
		}
		return nil, fmt.Errorf("open %s: %w", filepath.Join(s.root, filepath.FromSlash(ref)), err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat %s: %w", ref, err)
	}
	if info.IsDir() {
		f.Close()
		return nil, fmt.Errorf("%w: %s is a directory", ErrNotFound, ref)
	}
	return f, nil
}

// List returns every convertible file under the root matching one of
// patterns, sorted.
func (s *FileSource) List(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var refs []string
	for _, p := range patterns {
		matches, err := doublestar.Glob(s.fsys, p, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", p, err)
		}
		for _, m := range matches {
			if !seen[m] && parser.IsSupportedExtension(m) {
				seen[m] = true
				refs = append(refs, m)
			}
		}
	}
	sort.Strings(refs)
	return refs, nil
}

// RemoteSource fetches sections over HTTP from a base URL.
type RemoteSource struct {
	baseURL    string
	httpClient *http.Client
}

func NewRemoteSource(baseURL string) *RemoteSource {
	return &RemoteSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (s *RemoteSource) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	segments := strings.Split(ref, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	u := s.baseURL + "/" + strings.Join(segments, "/")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "text/html, text/markdown, text/plain, */*")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch section: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s", ErrNotFound, ref)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("fetch section %s: status %d: %s", ref, resp.StatusCode, string(respBody))
	}
	return resp.Body, nil
}

// Close releases idle connections.
func (s *RemoteSource) Close() {
	s.httpClient.CloseIdleConnections()
}

// ValidateRef checks that ref is a clean relative slash path matching one
// of patterns.
func ValidateRef(ref string, patterns []string) error {
	if ref == "" || strings.ContainsRune(ref, '\\') || strings.HasPrefix(ref, "/") {
		return fmt.Errorf("%w: %q", ErrInvalidRef, ref)
	}
	if path.Clean(ref) != ref {
		return fmt.Errorf("%w: %q is not clean", ErrInvalidRef, ref)
	}
	for _, seg := range strings.Split(ref, "/") {
		if seg == ".." || seg == "." {
			return fmt.Errorf("%w: %q escapes the content root", ErrInvalidRef, ref)
		}
	}
	for _, p := range patterns {
		if ok, err := doublestar.Match(p, ref); err == nil && ok {
			return nil
		}
	}
	return fmt.Errorf("%w: %q matches no section pattern", ErrInvalidRef, ref)
}
