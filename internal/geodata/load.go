package geodata

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/geodata-dev/geojson-viewer/internal/fsutil"
	"github.com/geodata-dev/geojson-viewer/internal/httputil"
)

// Loader resolves a user-supplied path, URL, or upload payload into a
// Dataset. Filesystem and HTTP access go through injected abstractions so
// tests can run against fakes.
type Loader struct {
	fs     fsutil.FileSystem
	client httputil.Doer
}

// NewLoader creates a Loader. Nil arguments fall back to the OS filesystem
// and the default HTTP client.
func NewLoader(fs fsutil.FileSystem, client httputil.Doer) *Loader {
	if fs == nil {
		fs = fsutil.OSFileSystem{}
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Loader{fs: fs, client: client}
}

// Load produces a Dataset from either a path/URL string or an upload
// payload. Exactly one of the two should be non-empty; the caller nulls out
// whichever input does not correspond to the triggering event. Both empty
// yields ErrNoInput and no load attempt.
func (l *Loader) Load(ctx context.Context, pathOrURL, upload string) (*Dataset, error) {
	var (
		data []byte
		err  error
	)
	switch {
	case pathOrURL != "":
		data, err = l.readPathOrURL(ctx, pathOrURL)
	case upload != "":
		data, err = DecodeUpload(upload)
	default:
		return nil, ErrNoInput
	}
	if err != nil {
		return nil, err
	}
	return ParseDataset(data)
}

// readPathOrURL fetches content from a URL when the string carries a scheme
// and host, and from the local filesystem otherwise.
func (l *Loader) readPathOrURL(ctx context.Context, pathOrURL string) ([]byte, error) {
	trimmed := strings.TrimSpace(pathOrURL)

	parsed, err := url.Parse(trimmed)
	if err != nil || (parsed.Scheme == "" && parsed.Host == "") {
		path, err := resolvePath(trimmed)
		if err != nil {
			return nil, err
		}
		data, err := l.fs.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		return data, nil
	}
	return l.fetchURL(ctx, trimmed)
}

func (l *Loader) fetchURL(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", rawURL, err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", rawURL, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rawURL, err)
	}
	return data, nil
}

// resolvePath expands a leading ~ and makes the path absolute.
func resolvePath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	return abs, nil
}

// DecodeUpload extracts the text of a browser upload payload: a metadata
// prefix (MIME type and encoding), one comma, then base64-encoded UTF-8.
func DecodeUpload(content string) ([]byte, error) {
	_, encoded, found := strings.Cut(content, ",")
	if !found {
		return nil, fmt.Errorf("upload payload has no metadata separator")
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode upload payload: %w", err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("upload payload is not valid utf-8 text")
	}
	return data, nil
}
