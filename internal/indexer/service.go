package indexer

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/fx"
	"golang.org/x/sync/errgroup"

	"github.com/pictora/pictora/internal/errs"
	"github.com/pictora/pictora/internal/logger"
	"github.com/pictora/pictora/internal/metrics"
	"github.com/pictora/pictora/internal/vectordb"
)

// Embedder is the slice of the embedding client the indexer needs.
type Embedder interface {
	EmbedImageBatch(ctx context.Context, paths []string) ([][]float32, error)
	Dimension() int
}

// Service runs the indexing pipeline against one collection.
type Service struct {
	cfg      *Config
	embedder Embedder
	store    vectordb.Service
	log      *logger.LoggerClient
	metrics  *metrics.Metrics
}

// Params collects the dependencies of NewService for Fx.
type Params struct {
	fx.In

	Config   *Config
	Embedder Embedder
	Store    vectordb.Service
	Logger   *logger.LoggerClient
	Metrics  *metrics.Metrics
}

// NewService constructs the indexing service.
func NewService(p Params) (*Service, error) {
	if err := p.Config.Validate(); err != nil {
		return nil, err
	}

	return &Service{
		cfg:      p.Config,
		embedder: p.Embedder,
		store:    p.Store,
		log:      p.Logger,
		metrics:  p.Metrics,
	}, nil
}

// TreeOptions tunes one IndexTree run.
type TreeOptions struct {
	// Category overrides the per-directory category for every indexed image.
	Category string

	// Workers bounds directory-level concurrency. Zero uses the configured
	// default.
	Workers int

	// BestEffort keeps going past failing directories and reports them
	// instead of aborting the run.
	BestEffort bool
}

// Report summarizes one IndexTree run.
type Report struct {
	// Directories is the number of directories that contained images.
	Directories int

	// Indexed is the number of images committed to the store.
	Indexed int

	// Failed lists directories that could not be indexed. Empty on a clean
	// run; only populated in best-effort mode.
	Failed []DirFailure
}

// DirFailure records one directory the run could not index.
type DirFailure struct {
	Dir string
	Err error
}

// IndexOne embeds a single image and upserts it with the given category.
// The point ID is deterministic, so indexing the same path again overwrites
// the previous entry.
func (s *Service) IndexOne(ctx context.Context, path, category string) error {
	if !supportedImage(path) {
		return errs.Newf(errs.KindInvalidInput, "unsupported image file: %s", path)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return errs.Wrap(errs.KindInvalidInput, fmt.Sprintf("cannot resolve path %s", path), err)
	}

	if err := s.ensureCollection(ctx); err != nil {
		return err
	}

	vectors, err := s.embedder.EmbedImageBatch(ctx, []string{absPath})
	if err != nil {
		s.metrics.ObserveImagesIndexed(1, "failure")
		return err
	}

	item := vectordb.Item{
		ID:     pointID(absPath),
		Vector: vectors[0],
		Payload: vectordb.ItemPayload{
			Filename: filepath.Base(absPath),
			Path:     absPath,
			Category: category,
		},
	}

	if err := s.store.Upsert(ctx, s.cfg.Collection, []vectordb.Item{item}); err != nil {
		s.metrics.ObserveImagesIndexed(1, "failure")
		return err
	}

	s.metrics.ObserveImagesIndexed(1, "success")
	s.metrics.IncrementUpsertBatches()

	s.log.Info("indexed image", nil, map[string]interface{}{
		"path":     absPath,
		"category": category,
	})

	return nil
}

// IndexTree walks root and indexes every recognized image beneath it.
//
// Images pick up the basename of their immediate parent directory as
// category; files sitting directly in root stay uncategorized. Each
// directory is embedded and upserted as one unit. By default the first
// failing directory aborts the run; directories already committed stay
// committed, there is no rollback. With BestEffort the run continues and the
// report lists the failures.
func (s *Service) IndexTree(ctx context.Context, root string, opts TreeOptions) (*Report, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, errs.Wrap(errs.KindInvalidInput, fmt.Sprintf("cannot resolve path %s", root), err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, errs.Wrap(errs.KindInvalidInput, fmt.Sprintf("cannot access %s", absRoot), err)
	}
	if !info.IsDir() {
		return nil, errs.Newf(errs.KindInvalidInput, "not a directory: %s", absRoot)
	}

	byDir, err := collectImages(absRoot)
	if err != nil {
		return nil, errs.Wrap(errs.KindIndexing, "directory walk failed", err)
	}

	if len(byDir) == 0 {
		s.log.Warn("no images found", nil, map[string]interface{}{"root": absRoot})
		return &Report{}, nil
	}

	if err := s.ensureCollection(ctx); err != nil {
		return nil, err
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = s.cfg.Workers
	}

	// Deterministic directory order for reproducible fail-fast runs.
	dirs := make([]string, 0, len(byDir))
	for dir := range byDir {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)

	report := &Report{Directories: len(dirs)}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, dir := range dirs {
		g.Go(func() error {
			category := opts.Category
			if category == "" && dir != absRoot {
				category = filepath.Base(dir)
			}

			count, err := s.indexDir(gctx, dir, byDir[dir], category)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				s.metrics.ObserveImagesIndexed(len(byDir[dir]), "failure")
				if !opts.BestEffort {
					return errs.Wrap(errs.KindIndexing, fmt.Sprintf("failed to index %s", dir), err)
				}
				report.Failed = append(report.Failed, DirFailure{Dir: dir, Err: err})
				return nil
			}

			report.Indexed += count
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(report.Failed, func(i, j int) bool {
		return report.Failed[i].Dir < report.Failed[j].Dir
	})

	s.log.Info("index run finished", nil, map[string]interface{}{
		"root":        absRoot,
		"directories": report.Directories,
		"indexed":     report.Indexed,
		"failed":      len(report.Failed),
	})

	return report, nil
}

// indexDir embeds one directory's images in a single batch and upserts them.
func (s *Service) indexDir(ctx context.Context, dir string, paths []string, category string) (int, error) {
	vectors, err := s.embedder.EmbedImageBatch(ctx, paths)
	if err != nil {
		return 0, err
	}

	items := make([]vectordb.Item, len(paths))
	for i, path := range paths {
		items[i] = vectordb.Item{
			ID:     pointID(path),
			Vector: vectors[i],
			Payload: vectordb.ItemPayload{
				Filename: filepath.Base(path),
				Path:     path,
				Category: category,
			},
		}
	}

	if err := s.store.Upsert(ctx, s.cfg.Collection, items); err != nil {
		return 0, err
	}

	s.metrics.ObserveImagesIndexed(len(items), "success")
	s.metrics.IncrementUpsertBatches()

	s.log.Debug("indexed directory", nil, map[string]interface{}{
		"dir":      dir,
		"images":   len(items),
		"category": category,
	})

	return len(items), nil
}

// ClearAll removes every point from the collection. Irreversible.
func (s *Service) ClearAll(ctx context.Context) error {
	return s.store.Clear(ctx, s.cfg.Collection)
}

// ensureCollection creates the target collection sized to the embedder's
// dimension if it is missing.
func (s *Service) ensureCollection(ctx context.Context) error {
	return s.store.EnsureCollection(ctx, s.cfg.Collection, uint64(s.embedder.Dimension()))
}

// collectImages walks root and groups recognized image files by their
// containing directory. Paths within a directory are sorted.
func collectImages(root string) (map[string][]string, error) {
	byDir := make(map[string][]string)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !supportedImage(path) {
			return nil
		}
		dir := filepath.Dir(path)
		byDir[dir] = append(byDir[dir], path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, paths := range byDir {
		sort.Strings(paths)
	}

	return byDir, nil
}

// supportedImage reports whether the file has a recognized image extension.
func supportedImage(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg", ".png", ".webp":
		return true
	default:
		return false
	}
}

// pointID derives the deterministic point UUID for a source path.
func pointID(absPath string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+absPath)).String()
}
