package retriever

import (
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/image/webp"

	"github.com/pictora/pictora/internal/errs"
	"github.com/pictora/pictora/internal/vectordb"
)

// SaveResults materializes search hits into a fresh directory under the
// configured root. Each hit's source image is decoded and re-encoded as
// result_<i>.png in result order, so downstream consumers get one uniform
// format regardless of what was indexed.
//
// Any missing or corrupt source aborts the save and the partial directory is
// removed; callers never see a half-populated result set.
func (s *Service) SaveResults(ctx context.Context, results []vectordb.SearchResult) (string, error) {
	if len(results) == 0 {
		return "", errs.New(errs.KindValidation, "no results to save")
	}

	dir := filepath.Join(s.cfg.RetrievedRoot, strings.ReplaceAll(uuid.New().String(), "-", ""))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errs.Wrap(errs.KindPersistence, fmt.Sprintf("cannot create %s", dir), err)
	}

	for i, result := range results {
		if err := ctx.Err(); err != nil {
			_ = os.RemoveAll(dir)
			return "", errs.Wrap(errs.KindPersistence, "save cancelled", err)
		}

		target := filepath.Join(dir, fmt.Sprintf("result_%d.png", i))
		if err := convertToPNG(result.Payload.Path, target); err != nil {
			_ = os.RemoveAll(dir)
			return "", errs.Wrap(errs.KindPersistence,
				fmt.Sprintf("cannot materialize %s", result.Payload.Path), err)
		}
	}

	s.metrics.IncrementResultsSaved(len(results))

	s.log.Info("saved results", nil, map[string]interface{}{
		"dir":   dir,
		"count": len(results),
	})

	return dir, nil
}

// convertToPNG decodes the source image and writes it as PNG at target.
func convertToPNG(source, target string) error {
	f, err := os.Open(source)
	if err != nil {
		return err
	}
	defer f.Close()

	img, err := decodeImage(source, f)
	if err != nil {
		return fmt.Errorf("decode %s: %w", source, err)
	}

	out, err := os.Create(target)
	if err != nil {
		return err
	}

	if err := png.Encode(out, img); err != nil {
		_ = out.Close()
		return fmt.Errorf("encode %s: %w", target, err)
	}

	return out.Close()
}

// decodeImage picks the decoder by extension. Registered formats cover
// everything the indexer accepts.
func decodeImage(path string, f *os.File) (image.Image, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return jpeg.Decode(f)
	case ".png":
		return png.Decode(f)
	case ".webp":
		return webp.Decode(f)
	default:
		return nil, fmt.Errorf("unsupported image format: %s", path)
	}
}
