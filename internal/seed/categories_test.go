package seed

import (
	"context"
	"errors"
	"testing"
)

func TestCatalogIsUnique(t *testing.T) {
	if len(Categories) != 50 {
		t.Errorf("catalog has %d entries, want 50", len(Categories))
	}

	names := make(map[string]bool)
	slugs := make(map[string]bool)
	for _, c := range Categories {
		if names[c.Name] {
			t.Errorf("duplicate name %q", c.Name)
		}
		if slugs[c.Slug] {
			t.Errorf("duplicate slug %q", c.Slug)
		}
		names[c.Name] = true
		slugs[c.Slug] = true
	}

	if !IsKnownSlug(DefaultCategorySlug) {
		t.Errorf("default slug %q is not in the catalog", DefaultCategorySlug)
	}
}

func TestCategoryBySlug(t *testing.T) {
	c, ok := CategoryBySlug("renovation-fitout")
	if !ok || c.Name != "Renovation & Fit-out" {
		t.Errorf("CategoryBySlug(renovation-fitout) = %+v, %v", c, ok)
	}

	if _, ok := CategoryBySlug("gardening"); ok {
		t.Error("unknown slug should not resolve")
	}
}

func TestSeedCategoriesSkipsExisting(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()

	inserted, err := SeedCategories(ctx, store)
	if err != nil {
		t.Fatal(err)
	}
	if inserted != len(Categories) {
		t.Errorf("first seed inserted %d, want %d", inserted, len(Categories))
	}

	inserted, err = SeedCategories(ctx, store)
	if err != nil {
		t.Fatal(err)
	}
	if inserted != 0 {
		t.Errorf("second seed inserted %d, want 0", inserted)
	}
	if len(store.categories) != len(Categories) {
		t.Errorf("store holds %d categories, want %d", len(store.categories), len(Categories))
	}
}

func TestSeedCategoriesStopsOnError(t *testing.T) {
	store := newMemoryStore()
	store.failOn = "categories"

	_, err := SeedCategories(context.Background(), store)
	if !errors.Is(err, errInjected) {
		t.Errorf("expected injected error, got %v", err)
	}
}

var _ CategoryLookup = (*memoryStore)(nil)
