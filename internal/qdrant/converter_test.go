package qdrant

import (
	"testing"

	qdrant "github.com/qdrant/go-client/qdrant"

	"github.com/pictora/pictora/internal/vectordb"
)

func TestBuildFilter(t *testing.T) {
	if got := buildFilter(nil); got != nil {
		t.Fatalf("expected nil filter for nil input, got %v", got)
	}
	if got := buildFilter(&vectordb.Filter{}); got != nil {
		t.Fatalf("expected nil filter for empty input, got %v", got)
	}

	f := buildFilter(vectordb.NewFilter(
		vectordb.Eq(vectordb.FieldCategory, "dogs"),
		vectordb.Eq(vectordb.FieldFilename, "rex.jpg"),
	))
	if f == nil {
		t.Fatal("expected non-nil filter")
	}
	if len(f.Must) != 2 {
		t.Fatalf("expected 2 must conditions, got %d", len(f.Must))
	}
	if len(f.Should) != 0 || len(f.MustNot) != 0 {
		t.Fatal("expected only must conditions")
	}
}

func TestExtractPointID(t *testing.T) {
	id, err := extractPointID(qdrant.NewID("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee" {
		t.Fatalf("unexpected id: %s", id)
	}

	id, err = extractPointID(qdrant.NewIDNum(42))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "42" {
		t.Fatalf("unexpected id: %s", id)
	}

	if _, err := extractPointID(nil); err == nil {
		t.Fatal("expected error for nil point ID")
	}
}

func TestParseSearchResults(t *testing.T) {
	resp := []*qdrant.ScoredPoint{
		{
			Id:    qdrant.NewID("11111111-1111-1111-1111-111111111111"),
			Score: 0.92,
			Payload: qdrant.NewValueMap(map[string]any{
				"filename": "rex.jpg",
				"path":     "/images/dogs/rex.jpg",
				"category": "dogs",
			}),
		},
		{
			Id:    qdrant.NewID("22222222-2222-2222-2222-222222222222"),
			Score: 0.81,
			Payload: qdrant.NewValueMap(map[string]any{
				"filename": "sky.png",
				"path":     "/images/sky.png",
			}),
		},
	}

	results, err := parseSearchResults(resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	first := results[0]
	if first.ID != "11111111-1111-1111-1111-111111111111" {
		t.Fatalf("unexpected id: %s", first.ID)
	}
	if first.Score != 0.92 {
		t.Fatalf("unexpected score: %f", first.Score)
	}
	if first.Payload.Category != "dogs" {
		t.Fatalf("unexpected category: %s", first.Payload.Category)
	}

	// Second point has no category; the typed payload stays zero-valued.
	if results[1].Payload.Category != "" {
		t.Fatalf("expected empty category, got %s", results[1].Payload.Category)
	}
	if results[1].Payload.Filename != "sky.png" {
		t.Fatalf("unexpected filename: %s", results[1].Payload.Filename)
	}
}

func TestExtractVectorDetails(t *testing.T) {
	if size, distance := extractVectorDetails(nil); size != 0 || distance != "" {
		t.Fatal("expected zero values for nil info")
	}

	named := &qdrant.CollectionInfo{
		Config: &qdrant.CollectionConfig{
			Params: &qdrant.CollectionParams{
				VectorsConfig: &qdrant.VectorsConfig{
					Config: &qdrant.VectorsConfig_ParamsMap{
						ParamsMap: &qdrant.VectorParamsMap{
							Map: map[string]*qdrant.VectorParams{
								vectorName: {Size: 512, Distance: qdrant.Distance_Cosine},
							},
						},
					},
				},
			},
		},
	}
	size, distance := extractVectorDetails(named)
	if size != 512 {
		t.Fatalf("expected size 512, got %d", size)
	}
	if distance != "Cosine" {
		t.Fatalf("expected Cosine, got %s", distance)
	}

	unnamed := &qdrant.CollectionInfo{
		Config: &qdrant.CollectionConfig{
			Params: &qdrant.CollectionParams{
				VectorsConfig: &qdrant.VectorsConfig{
					Config: &qdrant.VectorsConfig_Params{
						Params: &qdrant.VectorParams{Size: 1536, Distance: qdrant.Distance_Dot},
					},
				},
			},
		},
	}
	size, distance = extractVectorDetails(unnamed)
	if size != 1536 {
		t.Fatalf("expected size 1536, got %d", size)
	}
	if distance != "Dot" {
		t.Fatalf("expected Dot, got %s", distance)
	}
}
