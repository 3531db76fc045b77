package loader

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	// modernc.org/sqlite driver name is "sqlite".
	_ "modernc.org/sqlite"
)

// Source produces the raw bytes of an event document.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
	// YAML reports whether Fetch returns YAML instead of JSON.
	YAML() bool
	String() string
}

const (
	defaultHTTPTimeout = 15 * time.Second
	maxDocumentBytes   = 16 << 20
	sqliteTable        = "event_documents"
)

// NewSource picks a source from a reference:
//   - http:// or https:// URL
//   - sqlite://<path>?name=<document name>
//   - anything else is a local file path (.yaml/.yml are read as YAML)
func NewSource(ref string, httpTimeout time.Duration) (Source, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, errors.New("missing document source")
	}
	switch {
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		if _, err := url.Parse(ref); err != nil {
			return nil, fmt.Errorf("invalid source url: %w", err)
		}
		if httpTimeout <= 0 {
			httpTimeout = defaultHTTPTimeout
		}
		return HTTPSource{URL: ref, Client: &http.Client{Timeout: httpTimeout}}, nil
	case strings.HasPrefix(ref, "sqlite://"):
		u, err := url.Parse(ref)
		if err != nil {
			return nil, fmt.Errorf("invalid sqlite source: %w", err)
		}
		path := u.Host + u.Path
		if path == "" {
			return nil, errors.New("sqlite source: missing database path")
		}
		name := strings.TrimSpace(u.Query().Get("name"))
		if name == "" {
			name = "default"
		}
		return SQLiteSource{Path: path, Name: name}, nil
	default:
		return FileSource{Path: ref}, nil
	}
}

type FileSource struct {
	Path string
}

func (s FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(s.Path)
}

func (s FileSource) YAML() bool {
	switch strings.ToLower(filepath.Ext(s.Path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func (s FileSource) String() string { return s.Path }

type HTTPSource struct {
	URL    string
	Client *http.Client
}

func (s HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9")

	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("GET %s: %s", s.URL, resp.Status)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
}

func (s HTTPSource) YAML() bool {
	p := strings.ToLower(s.URL)
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	return strings.HasSuffix(p, ".yaml") || strings.HasSuffix(p, ".yml")
}

func (s HTTPSource) String() string { return s.URL }

// SQLiteSource reads a named document from a read-only table:
//
//	CREATE TABLE event_documents (name TEXT PRIMARY KEY, body TEXT NOT NULL);
type SQLiteSource struct {
	Path string
	Name string
}

func (s SQLiteSource) Fetch(ctx context.Context) ([]byte, error) {
	// Opening a missing path would create an empty database.
	if _, err := os.Stat(s.Path); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", s.Path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var body string
	err = db.QueryRowContext(ctx, "SELECT body FROM "+sqliteTable+" WHERE name = ?", s.Name).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("document %q not found in %s", s.Name, s.Path)
	}
	if err != nil {
		return nil, err
	}
	return []byte(body), nil
}

func (s SQLiteSource) YAML() bool { return false }

func (s SQLiteSource) String() string { return "sqlite://" + s.Path + "?name=" + s.Name }
