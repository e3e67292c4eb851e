package indexer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pictora/pictora/internal/errs"
	"github.com/pictora/pictora/internal/logger"
	"github.com/pictora/pictora/internal/metrics"
	"github.com/pictora/pictora/internal/vectordb"
)

// fakeEmbedder returns fixed-size vectors and can be told to fail for paths
// containing a substring.
type fakeEmbedder struct {
	dimension int
	failOn    string
}

func (f *fakeEmbedder) EmbedImageBatch(_ context.Context, paths []string) ([][]float32, error) {
	vectors := make([][]float32, len(paths))
	for i, path := range paths {
		if f.failOn != "" && strings.Contains(path, f.failOn) {
			return nil, errs.Newf(errs.KindEmbedding, "cannot embed %s", path)
		}
		vec := make([]float32, f.dimension)
		vec[0] = float32(len(path))
		vectors[i] = vec
	}
	return vectors, nil
}

func (f *fakeEmbedder) Dimension() int { return f.dimension }

// memStore is an in-memory vectordb.Service for pipeline tests.
type memStore struct {
	mu          sync.Mutex
	collections map[string]uint64
	points      map[string]map[string]vectordb.Item
	failUpsert  bool
}

func newMemStore() *memStore {
	return &memStore{
		collections: make(map[string]uint64),
		points:      make(map[string]map[string]vectordb.Item),
	}
}

func (s *memStore) EnsureCollection(_ context.Context, name string, dimension uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.collections[name]; ok {
		if existing != dimension {
			return errs.Newf(errs.KindValidation, "collection %q has dimension %d", name, existing)
		}
		return nil
	}
	s.collections[name] = dimension
	s.points[name] = make(map[string]vectordb.Item)
	return nil
}

func (s *memStore) Upsert(_ context.Context, collection string, items []vectordb.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failUpsert {
		return errs.New(errs.KindIndexUnavailable, "store down")
	}
	for _, item := range items {
		s.points[collection][item.ID] = item
	}
	return nil
}

func (s *memStore) Query(_ context.Context, _ vectordb.SearchRequest) ([]vectordb.SearchResult, error) {
	return nil, nil
}

func (s *memStore) Delete(_ context.Context, collection string, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		delete(s.points[collection], id)
	}
	return nil
}

func (s *memStore) Clear(_ context.Context, collection string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.points[collection] = make(map[string]vectordb.Item)
	return nil
}

func (s *memStore) Collection(_ context.Context, name string) (*vectordb.CollectionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	dim, ok := s.collections[name]
	if !ok {
		return nil, errs.Newf(errs.KindCollectionNotFound, "no collection %q", name)
	}
	return &vectordb.CollectionInfo{
		Name:      name,
		Dimension: dim,
		Points:    uint64(len(s.points[name])),
	}, nil
}

func (s *memStore) count(collection string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.points[collection])
}

func (s *memStore) item(collection, id string) (vectordb.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.points[collection][id]
	return item, ok
}

func newTestService(t *testing.T, store *memStore, emb Embedder) *Service {
	t.Helper()
	svc, err := NewService(Params{
		Config:   &Config{Collection: "test-images", Workers: 2},
		Embedder: emb,
		Store:    store,
		Logger:   logger.NewNop(),
		Metrics:  metrics.NewMetrics(metrics.Config{ServiceName: "test"}),
	})
	require.NoError(t, err)
	return svc
}

// writeTree lays out a small corpus:
//
//	root/cats/{a.jpg, b.png}
//	root/dogs/{c.jpg, d.webp, e.jpeg}
//	root/empty/
//	root/readme.txt
//	root/top.jpg
func writeTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	files := []string{
		"cats/a.jpg", "cats/b.png",
		"dogs/c.jpg", "dogs/d.webp", "dogs/e.jpeg",
		"readme.txt", "top.jpg",
	}
	for _, rel := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("img"), 0o644))
	}
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty"), 0o755))

	return root
}

func TestIndexTree(t *testing.T) {
	store := newMemStore()
	svc := newTestService(t, store, &fakeEmbedder{dimension: 4})
	root := writeTree(t)

	report, err := svc.IndexTree(context.Background(), root, TreeOptions{})
	require.NoError(t, err)

	// cats, dogs, and the root itself hold images; empty/ does not.
	assert.Equal(t, 3, report.Directories)
	assert.Equal(t, 6, report.Indexed)
	assert.Empty(t, report.Failed)
	assert.Equal(t, 6, store.count("test-images"))

	// Subdirectory files carry their parent as category.
	catPath, err := filepath.Abs(filepath.Join(root, "cats", "a.jpg"))
	require.NoError(t, err)
	item, ok := store.item("test-images", pointID(catPath))
	require.True(t, ok)
	assert.Equal(t, "cats", item.Payload.Category)
	assert.Equal(t, "a.jpg", item.Payload.Filename)
	assert.Equal(t, catPath, item.Payload.Path)

	// Root-level files stay uncategorized.
	topPath, err := filepath.Abs(filepath.Join(root, "top.jpg"))
	require.NoError(t, err)
	item, ok = store.item("test-images", pointID(topPath))
	require.True(t, ok)
	assert.Empty(t, item.Payload.Category)
}

func TestIndexTree_Idempotent(t *testing.T) {
	store := newMemStore()
	svc := newTestService(t, store, &fakeEmbedder{dimension: 4})
	root := writeTree(t)

	_, err := svc.IndexTree(context.Background(), root, TreeOptions{})
	require.NoError(t, err)
	first := store.count("test-images")

	_, err = svc.IndexTree(context.Background(), root, TreeOptions{})
	require.NoError(t, err)

	assert.Equal(t, first, store.count("test-images"), "re-indexing must not duplicate points")
}

func TestIndexTree_CategoryOverride(t *testing.T) {
	store := newMemStore()
	svc := newTestService(t, store, &fakeEmbedder{dimension: 4})
	root := writeTree(t)

	_, err := svc.IndexTree(context.Background(), root, TreeOptions{Category: "pets"})
	require.NoError(t, err)

	catPath, err := filepath.Abs(filepath.Join(root, "cats", "a.jpg"))
	require.NoError(t, err)
	item, ok := store.item("test-images", pointID(catPath))
	require.True(t, ok)
	assert.Equal(t, "pets", item.Payload.Category)
}

func TestIndexTree_FailFast(t *testing.T) {
	store := newMemStore()
	svc := newTestService(t, store, &fakeEmbedder{dimension: 4, failOn: "dogs"})
	root := writeTree(t)

	// Single worker for a deterministic abort point.
	_, err := svc.IndexTree(context.Background(), root, TreeOptions{Workers: 1})
	require.Error(t, err)
	assert.Equal(t, errs.KindIndexing, errs.KindOf(err))

	// Directories committed before the failure stay committed.
	catPath, err := filepath.Abs(filepath.Join(root, "cats", "a.jpg"))
	require.NoError(t, err)
	_, ok := store.item("test-images", pointID(catPath))
	assert.True(t, ok)
}

func TestIndexTree_BestEffort(t *testing.T) {
	store := newMemStore()
	svc := newTestService(t, store, &fakeEmbedder{dimension: 4, failOn: "dogs"})
	root := writeTree(t)

	report, err := svc.IndexTree(context.Background(), root, TreeOptions{BestEffort: true})
	require.NoError(t, err)

	assert.Equal(t, 3, report.Directories)
	assert.Equal(t, 3, report.Indexed) // cats (2) + root (1)
	require.Len(t, report.Failed, 1)
	assert.Contains(t, report.Failed[0].Dir, "dogs")
	assert.Equal(t, errs.KindEmbedding, errs.KindOf(report.Failed[0].Err))
}

func TestIndexTree_EmptyRoot(t *testing.T) {
	store := newMemStore()
	svc := newTestService(t, store, &fakeEmbedder{dimension: 4})

	report, err := svc.IndexTree(context.Background(), t.TempDir(), TreeOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, report.Directories)
	assert.Equal(t, 0, report.Indexed)
}

func TestIndexTree_NotADirectory(t *testing.T) {
	store := newMemStore()
	svc := newTestService(t, store, &fakeEmbedder{dimension: 4})

	file := filepath.Join(t.TempDir(), "single.jpg")
	require.NoError(t, os.WriteFile(file, []byte("img"), 0o644))

	_, err := svc.IndexTree(context.Background(), file, TreeOptions{})
	require.Error(t, err)
	assert.Equal(t, errs.KindInvalidInput, errs.KindOf(err))

	_, err = svc.IndexTree(context.Background(), filepath.Join(t.TempDir(), "missing"), TreeOptions{})
	require.Error(t, err)
	assert.Equal(t, errs.KindInvalidInput, errs.KindOf(err))
}

func TestIndexOne(t *testing.T) {
	store := newMemStore()
	svc := newTestService(t, store, &fakeEmbedder{dimension: 4})

	path := filepath.Join(t.TempDir(), "solo.png")
	require.NoError(t, os.WriteFile(path, []byte("img"), 0o644))

	require.NoError(t, svc.IndexOne(context.Background(), path, "misc"))

	absPath, err := filepath.Abs(path)
	require.NoError(t, err)
	item, ok := store.item("test-images", pointID(absPath))
	require.True(t, ok)
	assert.Equal(t, "misc", item.Payload.Category)
	assert.Equal(t, "solo.png", item.Payload.Filename)

	// Re-indexing overwrites, not duplicates.
	require.NoError(t, svc.IndexOne(context.Background(), path, "misc"))
	assert.Equal(t, 1, store.count("test-images"))
}

func TestIndexOne_UnsupportedFile(t *testing.T) {
	store := newMemStore()
	svc := newTestService(t, store, &fakeEmbedder{dimension: 4})

	err := svc.IndexOne(context.Background(), "notes.txt", "")
	require.Error(t, err)
	assert.Equal(t, errs.KindInvalidInput, errs.KindOf(err))
}

func TestIndexTree_StoreFailure(t *testing.T) {
	store := newMemStore()
	require.NoError(t, store.EnsureCollection(context.Background(), "test-images", 4))
	store.failUpsert = true

	svc := newTestService(t, store, &fakeEmbedder{dimension: 4})
	root := writeTree(t)

	_, err := svc.IndexTree(context.Background(), root, TreeOptions{Workers: 1})
	require.Error(t, err)
	assert.Equal(t, errs.KindIndexing, errs.KindOf(err))
}

func TestClearAll(t *testing.T) {
	store := newMemStore()
	svc := newTestService(t, store, &fakeEmbedder{dimension: 4})
	root := writeTree(t)

	_, err := svc.IndexTree(context.Background(), root, TreeOptions{})
	require.NoError(t, err)
	require.Greater(t, store.count("test-images"), 0)

	require.NoError(t, svc.ClearAll(context.Background()))
	assert.Equal(t, 0, store.count("test-images"))
}

func TestPointIDDeterminism(t *testing.T) {
	a := pointID("/images/dogs/rex.jpg")
	b := pointID("/images/dogs/rex.jpg")
	c := pointID("/images/dogs/other.jpg")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)

	// Valid UUID in string form, as the store requires.
	assert.Len(t, a, 36)
	assert.Equal(t, fmt.Sprintf("%c", a[14]), "5")
}
