package pipeline

import (
	"bytes"
	"context"
	"os"
	"time"

	"github.com/matzehuels/stackchart/pkg/cache"
	"github.com/matzehuels/stackchart/pkg/dataset"
	"github.com/matzehuels/stackchart/pkg/errors"
	"github.com/matzehuels/stackchart/pkg/observability"
)

// LoadDataset reads the dataset at path, decoding it by file extension.
// Sheet selects the worksheet of an Excel workbook. Decoded datasets are
// cached by file content, so an unchanged spreadsheet is parsed once.
func (r *Runner) LoadDataset(ctx context.Context, path, sheet string) (dataset.Dataset, bool, error) {
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, path)
	start := time.Now()

	ds, hit, err := r.loadDataset(ctx, path, sheet)
	hooks.OnLoadComplete(ctx, path, len(ds), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	r.Logger.Debug("loaded dataset",
		"path", path,
		"records", len(ds),
		"cached", hit,
		"duration", time.Since(start))
	return ds, hit, nil
}

func (r *Runner) loadDataset(ctx context.Context, path, sheet string) (dataset.Dataset, bool, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, false, err
	}
	format, err := dataset.FormatFromPath(path)
	if err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, errors.Wrap(errors.ErrCodeFileNotFound, err, "dataset %s", path)
		}
		return nil, false, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}

	hooks := observability.Cache()
	cacheKey := r.Keyer.DatasetKey(cache.Hash(data), cache.DatasetKeyOpts{Format: string(format), Sheet: sheet})

	// Try cache first
	if cached, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		ds, err := dataset.ReadJSON(bytes.NewReader(cached))
		if err == nil {
			hooks.OnCacheHit(ctx, keyTypeDataset)
			return ds, true, nil
		}
		// If deserialization fails, fall through to reparse
	}
	hooks.OnCacheMiss(ctx, keyTypeDataset)

	ds, err := dataset.Read(bytes.NewReader(data), format, dataset.WithSheet(sheet))
	if err != nil {
		return nil, false, errors.Wrap(errors.GetCodeOr(err, errors.ErrCodeInvalidDataset), err, "read %s", path)
	}

	// Cache the result
	if canonical, err := ds.Canonical(); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, canonical, cache.TTLDataset); err == nil {
			hooks.OnCacheSet(ctx, keyTypeDataset, len(canonical))
		}
	}
	return ds, false, nil
}
