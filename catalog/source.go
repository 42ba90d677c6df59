package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"go-plantcare/models"
)

// Source loads a whole catalog. Loads happen once per page view and are
// never retried.
type Source interface {
	Load(ctx context.Context) (models.Catalog, error)
}

// FileSource reads a catalog document from disk.
type FileSource struct {
	Path string
}

// NewFileSource creates a FileSource for path.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Load reads and decodes the file.
func (s *FileSource) Load(ctx context.Context) (models.Catalog, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrCatalogLoad, err)
	}
	defer f.Close()
	return Decode(f)
}

// URLSource fetches a catalog document over HTTP.
type URLSource struct {
	URL    string
	Client *http.Client
}

// NewURLSource creates a URLSource with a bounded request timeout.
func NewURLSource(url string, timeout time.Duration) *URLSource {
	return &URLSource{
		URL:    url,
		Client: &http.Client{Timeout: timeout},
	}
}

// Load fetches and decodes the document. Non-2xx responses fail.
func (s *URLSource) Load(ctx context.Context) (models.Catalog, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrCatalogLoad, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrCatalogLoad, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s returned %s", models.ErrCatalogLoad, s.URL, resp.Status)
	}
	return Decode(resp.Body)
}

// SQLSource reads the plants table.
type SQLSource struct {
	DB *sql.DB
}

// NewSQLSource creates a SQLSource on db.
func NewSQLSource(db *sql.DB) *SQLSource {
	return &SQLSource{DB: db}
}

// Load reads all plants in import order.
func (s *SQLSource) Load(ctx context.Context) (models.Catalog, error) {
	rows, err := s.DB.QueryContext(ctx, "SELECT id, name, species FROM plants ORDER BY sort_order, id")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrCatalogLoad, err)
	}
	defer rows.Close()

	c := models.Catalog{}
	for rows.Next() {
		var p models.Plant
		if err := rows.Scan(&p.ID, &p.Name, &p.Species); err != nil {
			return nil, fmt.Errorf("%w: %v", models.ErrCatalogLoad, err)
		}
		c = append(c, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrCatalogLoad, err)
	}
	return c, nil
}

// Invalidator is implemented by sources that keep a copy of the catalog.
type Invalidator interface {
	Invalidate()
}

// Invalidate drops any copy src keeps. Other sources are left alone.
func Invalidate(src Source) {
	if inv, ok := src.(Invalidator); ok {
		inv.Invalidate()
	}
}

const cacheKey = "catalog"

// CachedSource shares one successful load between requests for ttl.
// Failed loads are not cached.
type CachedSource struct {
	src   Source
	cache *expirable.LRU[string, models.Catalog]
}

// NewCachedSource wraps src. A non-positive ttl returns src unchanged.
func NewCachedSource(src Source, ttl time.Duration) Source {
	if ttl <= 0 {
		return src
	}
	return &CachedSource{
		src:   src,
		cache: expirable.NewLRU[string, models.Catalog](1, nil, ttl),
	}
}

// Load returns the cached catalog or loads and caches it.
func (s *CachedSource) Load(ctx context.Context) (models.Catalog, error) {
	if c, ok := s.cache.Get(cacheKey); ok {
		return c, nil
	}
	c, err := s.src.Load(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Add(cacheKey, c)
	return c, nil
}

// Invalidate drops the cached catalog.
func (s *CachedSource) Invalidate() {
	s.cache.Purge()
}
