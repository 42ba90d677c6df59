package catalog

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go-plantcare/config"
	"go-plantcare/models"
)

const doc = `{"plants":[
	{"id":"igor","name":"Igor","species":"Dionaea muscipula"},
	{"id":"rosa","name":"Rosa","species":"Drosera capensis"}
]}`

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plants.json")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	c, err := NewFileSource(path).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, c, 2)

	_, err = NewFileSource(filepath.Join(t.TempDir(), "missing.json")).Load(context.Background())
	assert.ErrorIs(t, err, models.ErrCatalogLoad)
}

func TestURLSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/plants.json":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(doc))
		case "/broken.json":
			_, _ = w.Write([]byte(`{"plants":`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	ctx := context.Background()

	c, err := NewURLSource(srv.URL+"/plants.json", time.Second).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "igor", c[0].ID)

	_, err = NewURLSource(srv.URL+"/missing.json", time.Second).Load(ctx)
	assert.ErrorIs(t, err, models.ErrCatalogLoad)

	_, err = NewURLSource(srv.URL+"/broken.json", time.Second).Load(ctx)
	assert.ErrorIs(t, err, models.ErrCatalogLoad)
}

func TestURLSource_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(doc))
	}))
	url := srv.URL + "/plants.json"
	srv.Close()

	_, err := NewURLSource(url, time.Second).Load(context.Background())
	assert.ErrorIs(t, err, models.ErrCatalogLoad)
}

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	cfg := config.Default()
	cfg.DB.Driver = config.DriverSQLite
	cfg.DB.Path = ":memory:"
	db, err := config.OpenDB(cfg, zap.NewNop().Sugar())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestImportAndSQLSource(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	src := NewSQLSource(db)
	c, err := src.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, c)

	imported := models.Catalog{
		{ID: "zeta", Name: "Zeta", Species: "Nepenthes alata"},
		{ID: "alpha", Name: "Alpha", Species: "Pinguicula"},
	}
	require.NoError(t, Import(ctx, db, imported))

	c, err = src.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, imported, c, "document order is kept")

	// Re-importing replaces instead of appending.
	require.NoError(t, Import(ctx, db, imported[:1]))
	c, err = src.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, c, 1)

	err = Import(ctx, db, models.Catalog{{ID: "x"}, {ID: "x"}})
	assert.ErrorIs(t, err, models.ErrCatalogLoad)
}

type countingSource struct {
	calls int
	err   error
}

func (s *countingSource) Load(ctx context.Context) (models.Catalog, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return models.Catalog{{ID: "igor", Name: "Igor", Species: "Dionaea"}}, nil
}

func TestCachedSource(t *testing.T) {
	inner := &countingSource{}
	src := NewCachedSource(inner, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		c, err := src.Load(ctx)
		require.NoError(t, err)
		assert.Len(t, c, 1)
	}
	assert.Equal(t, 1, inner.calls)

	Invalidate(src)
	_, err := src.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestInvalidate_UncachedSource(t *testing.T) {
	inner := &countingSource{}
	Invalidate(inner)
	assert.Equal(t, 0, inner.calls)
}

func TestCachedSource_DoesNotCacheFailures(t *testing.T) {
	inner := &countingSource{err: errors.New("boom")}
	src := NewCachedSource(inner, time.Minute)

	_, err := src.Load(context.Background())
	assert.Error(t, err)
	_, err = src.Load(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestNewCachedSource_ZeroTTL(t *testing.T) {
	inner := &countingSource{}
	assert.Same(t, inner, NewCachedSource(inner, 0))
}
