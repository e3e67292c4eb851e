package vectordb

import "testing"

func TestNewFilter_NoConditions(t *testing.T) {
	if f := NewFilter(); f != nil {
		t.Errorf("expected nil, got %v", f)
	}
}

func TestNewFilter_Conjunction(t *testing.T) {
	f := NewFilter(Eq(FieldCategory, "dogs"), Eq(FieldFilename, "rex.jpg"))
	if f == nil {
		t.Fatal("expected filter, got nil")
	}
	if len(f.Must) != 2 {
		t.Errorf("expected 2 conditions, got %d", len(f.Must))
	}
	if f.Empty() {
		t.Error("filter with conditions must not be empty")
	}
}

func TestByCategory(t *testing.T) {
	f := ByCategory("cats")
	if f == nil || len(f.Must) != 1 {
		t.Fatalf("expected single-condition filter, got %v", f)
	}
	if f.Must[0].Field != FieldCategory || f.Must[0].Value != "cats" {
		t.Errorf("unexpected condition: %+v", f.Must[0])
	}

	if ByCategory("") != nil {
		t.Error("empty category should produce no filter")
	}
}

func TestFilterEmpty(t *testing.T) {
	var f *Filter
	if !f.Empty() {
		t.Error("nil filter should be empty")
	}
	if !(&Filter{}).Empty() {
		t.Error("zero filter should be empty")
	}
}

func TestPayloadRoundTrip(t *testing.T) {
	p := ItemPayload{Filename: "beach.png", Path: "/data/images/travel/beach.png", Category: "travel"}
	got := PayloadFromMap(p.ToMap())
	if got != p {
		t.Errorf("round trip mismatch: %+v != %+v", got, p)
	}
}

func TestPayloadToMap_OmitsEmptyCategory(t *testing.T) {
	m := ItemPayload{Filename: "a.jpg", Path: "/a.jpg"}.ToMap()
	if _, ok := m[FieldCategory]; ok {
		t.Error("category key must be absent when no category is set")
	}
}

func TestPayloadFromMap_IgnoresForeignTypes(t *testing.T) {
	p := PayloadFromMap(map[string]any{
		FieldFilename: 42,
		FieldPath:     "/x.png",
		FieldCategory: nil,
	})
	if p.Filename != "" || p.Category != "" {
		t.Errorf("non-string fields should be dropped, got %+v", p)
	}
	if p.Path != "/x.png" {
		t.Errorf("expected path preserved, got %q", p.Path)
	}
}
