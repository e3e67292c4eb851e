package qdrant

import (
	"fmt"

	qdrant "github.com/qdrant/go-client/qdrant"

	"github.com/pictora/pictora/internal/vectordb"
)

// buildFilter converts the application filter to a Qdrant filter. Every
// condition goes into Must: matches are conjunctive. Returns nil for an
// empty filter so the query searches the whole collection.
func buildFilter(f *vectordb.Filter) *qdrant.Filter {
	if f.Empty() {
		return nil
	}

	conditions := make([]*qdrant.Condition, 0, len(f.Must))
	for _, m := range f.Must {
		conditions = append(conditions, qdrant.NewMatch(m.Field, m.Value))
	}

	return &qdrant.Filter{Must: conditions}
}

// parseSearchResults converts the Qdrant response into application results,
// preserving the store's descending-score order.
func parseSearchResults(resp []*qdrant.ScoredPoint) ([]vectordb.SearchResult, error) {
	results := make([]vectordb.SearchResult, 0, len(resp))
	for _, r := range resp {
		id, err := extractPointID(r.Id)
		if err != nil {
			return nil, err
		}

		results = append(results, vectordb.SearchResult{
			ID:      id,
			Score:   r.Score,
			Payload: vectordb.PayloadFromMap(convertPayload(r.Payload)),
		})
	}
	return results, nil
}

// extractPointID extracts a string ID from Qdrant's PointId oneof.
func extractPointID(id *qdrant.PointId) (string, error) {
	if id == nil {
		return "", fmt.Errorf("nil point ID")
	}
	switch v := id.PointIdOptions.(type) {
	case *qdrant.PointId_Num:
		return fmt.Sprintf("%d", v.Num), nil
	case *qdrant.PointId_Uuid:
		return v.Uuid, nil
	default:
		return "", fmt.Errorf("unexpected PointId type: %T", v)
	}
}

// convertPayload converts Qdrant's protobuf payload to a generic map.
func convertPayload(payload map[string]*qdrant.Value) map[string]any {
	if payload == nil {
		return nil
	}
	result := make(map[string]any, len(payload))
	for k, v := range payload {
		result[k] = extractValue(v)
	}
	return result
}

// extractValue converts a Qdrant Value to a Go native type. Image payloads
// only store strings, but the stored map may carry other scalar kinds.
func extractValue(v *qdrant.Value) any {
	if v == nil {
		return nil
	}
	switch val := v.Kind.(type) {
	case *qdrant.Value_StringValue:
		return val.StringValue
	case *qdrant.Value_IntegerValue:
		return val.IntegerValue
	case *qdrant.Value_DoubleValue:
		return val.DoubleValue
	case *qdrant.Value_BoolValue:
		return val.BoolValue
	case *qdrant.Value_NullValue:
		return nil
	default:
		return nil
	}
}
