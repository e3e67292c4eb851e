package qdrant

import (
	"context"
	"fmt"
	"slices"

	qdrant "github.com/qdrant/go-client/qdrant"

	"github.com/pictora/pictora/internal/errs"
	"github.com/pictora/pictora/internal/vectordb"
)

// EnsureCollection verifies if a given collection exists, and creates it if
// missing. Safe to call multiple times.
//
// Created collections carry a single named vector "default" with cosine
// distance, stored on disk. An existing collection whose dimension differs
// from the requested one is rejected: silently reusing it would mix vector
// spaces and corrupt every subsequent search.
func (c *Client) EnsureCollection(ctx context.Context, name string, dimension uint64) error {
	if name == "" {
		return errs.New(errs.KindValidation, "collection name cannot be empty")
	}
	if dimension == 0 {
		return errs.New(errs.KindValidation, "vector dimension cannot be zero")
	}

	collections, err := c.api.ListCollections(ctx)
	if err != nil {
		return errs.Wrap(classify(err, errs.KindIndexUnavailable), "failed to list collections", err)
	}

	if slices.Contains(collections, name) {
		return c.checkDimension(ctx, name, dimension)
	}

	c.log.Info("creating collection", nil, map[string]interface{}{
		"collection": name,
		"dimension":  dimension,
	})

	req := &qdrant.CreateCollection{
		CollectionName: name,
		VectorsConfig: qdrant.NewVectorsConfigMap(map[string]*qdrant.VectorParams{
			vectorName: {
				Size:     dimension,
				Distance: qdrant.Distance_Cosine,
				OnDisk:   qdrant.PtrOf(true),
			},
		}),
	}

	if err := c.api.CreateCollection(ctx, req); err != nil {
		// A concurrent racer may have created it between the list and the
		// create. That is fine as long as the dimension agrees.
		if dimErr := c.checkDimension(ctx, name, dimension); dimErr == nil {
			return nil
		}
		return errs.Wrap(classify(err, errs.KindIndexUnavailable),
			fmt.Sprintf("failed to create collection %q", name), err)
	}

	return nil
}

// checkDimension confirms an existing collection stores vectors of the
// expected size.
func (c *Client) checkDimension(ctx context.Context, name string, dimension uint64) error {
	info, err := c.Collection(ctx, name)
	if err != nil {
		return err
	}
	if info.Dimension != dimension {
		return errs.Newf(errs.KindValidation,
			"collection %q has dimension %d, expected %d", name, info.Dimension, dimension)
	}
	return nil
}

// Upsert inserts or overwrites items in chunks of defaultBatchSize. Each
// chunk is a blocking upsert (Wait=true), so once Upsert returns the points
// are durable and searchable.
func (c *Client) Upsert(ctx context.Context, collection string, items []vectordb.Item) error {
	if collection == "" {
		return errs.New(errs.KindValidation, "collection name cannot be empty")
	}
	if len(items) == 0 {
		return nil
	}

	for start := 0; start < len(items); start += defaultBatchSize {
		end := min(start+defaultBatchSize, len(items))
		batch := items[start:end]

		if err := c.upsertBatch(ctx, collection, batch); err != nil {
			return errs.Wrap(classify(err, errs.KindIndexing),
				fmt.Sprintf("batch upsert failed at [%d:%d]", start, end), err)
		}

		c.log.Debug("upserted batch", nil, map[string]interface{}{
			"collection": collection,
			"from":       start,
			"to":         end,
		})
	}

	return nil
}

// upsertBatch sends a single blocking Upsert request for a slice of items.
func (c *Client) upsertBatch(ctx context.Context, collection string, batch []vectordb.Item) error {
	points := make([]*qdrant.PointStruct, 0, len(batch))
	for _, item := range batch {
		points = append(points, &qdrant.PointStruct{
			Id:      qdrant.NewID(item.ID),
			Vectors: qdrant.NewVectorsMap(map[string]*qdrant.Vector{vectorName: qdrant.NewVectorDense(item.Vector)}),
			Payload: qdrant.NewValueMap(item.Payload.ToMap()),
		})
	}

	req := &qdrant.UpsertPoints{
		CollectionName: collection,
		Points:         points,
		Wait:           qdrant.PtrOf(true),
	}

	return c.withRetry(ctx, func() error {
		_, err := c.api.Upsert(ctx, req)
		return err
	})
}

// Query performs one nearest-neighbor search against the named vector and
// returns hits in descending similarity order. A nil filter searches the
// whole collection.
func (c *Client) Query(ctx context.Context, req vectordb.SearchRequest) ([]vectordb.SearchResult, error) {
	if err := validateSearchInput(req.Collection, req.Vector, req.Limit); err != nil {
		return nil, err
	}

	limit := uint64(req.Limit)
	query := &qdrant.QueryPoints{
		CollectionName: req.Collection,
		Query:          qdrant.NewQuery(req.Vector...),
		Using:          qdrant.PtrOf(vectorName),
		Limit:          &limit,
		WithPayload:    qdrant.NewWithPayload(true),
		Filter:         buildFilter(req.Filter),
	}

	var resp []*qdrant.ScoredPoint
	err := c.withRetry(ctx, func() error {
		var qerr error
		resp, qerr = c.api.Query(ctx, query)
		return qerr
	})
	if err != nil {
		return nil, errs.Wrap(classify(err, errs.KindIndexUnavailable), "search failed", err)
	}

	results, err := parseSearchResults(resp)
	if err != nil {
		return nil, errs.Wrap(errs.KindIndexUnavailable, "malformed search response", err)
	}

	c.log.Debug("search completed", nil, map[string]interface{}{
		"collection": req.Collection,
		"limit":      req.Limit,
		"results":    len(results),
	})

	return results, nil
}

// Delete removes points by ID. A blocking delete, like Upsert.
func (c *Client) Delete(ctx context.Context, collection string, ids []string) error {
	if collection == "" {
		return errs.New(errs.KindValidation, "collection name cannot be empty")
	}
	if len(ids) == 0 {
		return nil
	}

	pointIDs := make([]*qdrant.PointId, 0, len(ids))
	for _, id := range ids {
		pointIDs = append(pointIDs, qdrant.NewID(id))
	}

	req := &qdrant.DeletePoints{
		CollectionName: collection,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Points{
				Points: &qdrant.PointsIdsList{Ids: pointIDs},
			},
		},
		Wait: qdrant.PtrOf(true),
	}

	if _, err := c.api.Delete(ctx, req); err != nil {
		return errs.Wrap(classify(err, errs.KindIndexing), "delete failed", err)
	}

	return nil
}

// Clear removes every point from the collection via an empty filter
// selector. The collection definition itself persists. Irreversible.
func (c *Client) Clear(ctx context.Context, collection string) error {
	if collection == "" {
		return errs.New(errs.KindValidation, "collection name cannot be empty")
	}

	req := &qdrant.DeletePoints{
		CollectionName: collection,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Filter{
				Filter: &qdrant.Filter{},
			},
		},
		Wait: qdrant.PtrOf(true),
	}

	if _, err := c.api.Delete(ctx, req); err != nil {
		return errs.Wrap(classify(err, errs.KindIndexing),
			fmt.Sprintf("failed to clear collection %q", collection), err)
	}

	c.log.Info("cleared collection", nil, map[string]interface{}{
		"collection": collection,
	})

	return nil
}

// Collection retrieves metadata about a collection, decoupled from the SDK's
// protobuf types so the application layer stays independent of the client
// library.
func (c *Client) Collection(ctx context.Context, name string) (*vectordb.CollectionInfo, error) {
	if name == "" {
		return nil, errs.New(errs.KindValidation, "collection name cannot be empty")
	}

	info, err := c.api.GetCollectionInfo(ctx, name)
	if err != nil {
		return nil, errs.Wrap(classify(err, errs.KindCollectionNotFound),
			fmt.Sprintf("failed to get collection %q", name), err)
	}

	size, distance := extractVectorDetails(info)

	return &vectordb.CollectionInfo{
		Name:      name,
		Status:    info.Status.String(),
		Dimension: size,
		Distance:  distance,
		Points:    derefUint64(info.PointsCount),
	}, nil
}
