package vectordb

// Payload field names as stored in the vector store.
const (
	FieldFilename = "filename"
	FieldPath     = "path"
	FieldCategory = "category"
)

// ItemPayload is the metadata attached to every indexed image.
type ItemPayload struct {
	// Filename is the basename of the source image.
	Filename string `json:"filename"`

	// Path is the source path the image was indexed from.
	Path string `json:"path"`

	// Category is the label derived from the image's immediate parent
	// directory, or empty when none was assigned.
	Category string `json:"category,omitempty"`
}

// ToMap flattens the payload into the generic form the store persists.
// The category key is omitted entirely when no category was assigned.
func (p ItemPayload) ToMap() map[string]any {
	m := map[string]any{
		FieldFilename: p.Filename,
		FieldPath:     p.Path,
	}
	if p.Category != "" {
		m[FieldCategory] = p.Category
	}
	return m
}

// PayloadFromMap rebuilds a typed payload from the stored form.
// Unknown keys are ignored; missing keys yield zero values.
func PayloadFromMap(m map[string]any) ItemPayload {
	var p ItemPayload
	if v, ok := m[FieldFilename].(string); ok {
		p.Filename = v
	}
	if v, ok := m[FieldPath].(string); ok {
		p.Path = v
	}
	if v, ok := m[FieldCategory].(string); ok {
		p.Category = v
	}
	return p
}

// Item is one record to upsert: identifier, embedding, payload.
// Items are never mutated after creation.
type Item struct {
	// ID is the point identifier. Must be a UUID in string form.
	ID string `json:"id"`

	// Vector is the dense embedding. Its length must equal the collection's
	// configured dimension.
	Vector []float32 `json:"vector"`

	// Payload is the metadata stored with the vector.
	Payload ItemPayload `json:"payload"`
}

// SearchRequest is a single nearest-neighbor query. Transient, not persisted.
type SearchRequest struct {
	// Collection is the target collection to search in.
	Collection string `json:"collection"`

	// Vector is the query embedding.
	Vector []float32 `json:"vector"`

	// Limit is the maximum number of results to return. Must be positive.
	Limit int `json:"limit"`

	// Filter optionally restricts the search to matching payloads.
	Filter *Filter `json:"filter,omitempty"`
}

// SearchResult is one scored hit.
type SearchResult struct {
	// ID is the identifier of the matched point.
	ID string `json:"id"`

	// Score is the cosine similarity (higher = more similar).
	Score float32 `json:"score"`

	// Payload is the metadata stored with the matched vector.
	Payload ItemPayload `json:"payload"`
}

// CollectionInfo describes a collection as reported by the store.
type CollectionInfo struct {
	Name string `json:"name"`

	// Status is the store's operational state for the collection
	// (e.g. "Green", "Yellow").
	Status string `json:"status"`

	// Dimension is the configured vector size.
	Dimension uint64 `json:"dimension"`

	// Distance is the similarity metric (always "Cosine" for collections
	// this application creates).
	Distance string `json:"distance"`

	// Points is the number of stored points.
	Points uint64 `json:"points"`
}
