package product

import (
	"errors"
	"testing"
)

// failingRepository simulates an unreachable primary backend.
type failingRepository struct{}

var errBackendDown = errors.New("connection refused")

func (failingRepository) List() ([]Product, error)                  { return nil, errBackendDown }
func (failingRepository) GetByID(int) (Product, error)              { return Product{}, errBackendDown }
func (failingRepository) GetBySlug(string) (Product, error)         { return Product{}, errBackendDown }
func (failingRepository) Create(Product) (Product, error)           { return Product{}, errBackendDown }
func (failingRepository) UpdateBySlug(string, Patch) (Product, error) {
	return Product{}, errBackendDown
}
func (failingRepository) DeleteBySlug(string) (bool, error) { return false, errBackendDown }

func seedProducts() []Product {
	return []Product{
		{ID: 1, Name: "Thinkpad X1", Slug: "thinkpad-x1-100", Category: "Laptops", Condition: ConditionUsed, Price: 1000, Images: ImageList{"/uploads/x1.jpg"}, Published: true},
		{ID: 2, Name: "Pixel 8", Slug: "pixel-8-200", Category: "Phones", Condition: ConditionNew, Price: 700, Images: ImageList{"/uploads/p8.jpg"}, Published: true},
	}
}

func TestStoreListFallsBackOnPrimaryError(t *testing.T) {
	store := NewStore(failingRepository{}, NewInMemoryRepository(seedProducts()))

	products := store.List()
	if len(products) != 2 {
		t.Fatalf("expected 2 products from fallback, got %d", len(products))
	}
}

func TestStoreListEmptyWhenBothFail(t *testing.T) {
	store := NewStore(failingRepository{}, failingRepository{})

	products := store.List()
	if products == nil || len(products) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", products)
	}
}

func TestStoreGetFallsBackWhenPrimaryMissesRecord(t *testing.T) {
	// primary has nothing, fallback has the record
	store := NewStore(NewInMemoryRepository(nil), NewInMemoryRepository(seedProducts()))

	p, ok := store.GetBySlug("pixel-8-200")
	if !ok || p.ID != 2 {
		t.Fatalf("expected fallback hit for pixel-8-200, got ok=%v p=%#v", ok, p)
	}
	if _, ok := store.GetByID(1); !ok {
		t.Fatalf("expected fallback hit for id=1")
	}
	if _, ok := store.GetBySlug("nope"); ok {
		t.Fatalf("expected miss for unknown slug")
	}
}

func TestStoreResolveNumericFallback(t *testing.T) {
	store := NewStore(nil, NewInMemoryRepository(seedProducts()))

	if p, ok := store.Resolve("thinkpad-x1-100"); !ok || p.ID != 1 {
		t.Fatalf("slug resolve failed: ok=%v p=%#v", ok, p)
	}
	if p, ok := store.Resolve("2"); !ok || p.Slug != "pixel-8-200" {
		t.Fatalf("numeric resolve failed: ok=%v p=%#v", ok, p)
	}
	if _, ok := store.Resolve("not-a-number"); ok {
		t.Fatalf("non-numeric unknown token must not resolve by id")
	}
}

func TestStoreCreateWritesToFallbackWhenPrimaryFails(t *testing.T) {
	fallback := NewInMemoryRepository(nil)
	store := NewStore(failingRepository{}, fallback)

	created, err := store.Create(Product{Name: "Thinkpad X1", Slug: "thinkpad-x1-9", Images: ImageList{"/uploads/a.jpg"}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != 1 {
		t.Fatalf("expected fallback-assigned id 1, got %d", created.ID)
	}

	got, ok := store.GetBySlug("thinkpad-x1-9")
	if !ok {
		t.Fatalf("created product not readable back")
	}
	if got.Name != created.Name || got.Images.Primary() != "/uploads/a.jpg" {
		t.Fatalf("round-trip mismatch: %#v", got)
	}
}

func TestStoreUpdateUnknownSlugLeavesStorageUnchanged(t *testing.T) {
	fallback := NewInMemoryRepository(seedProducts())
	store := NewStore(nil, fallback)

	name := "Changed"
	if _, ok := store.UpdateBySlug("missing-slug", Patch{Name: &name}); ok {
		t.Fatalf("expected absent result for unknown slug")
	}

	after, _ := fallback.List()
	if len(after) != 2 || after[0].Name != "Thinkpad X1" || after[1].Name != "Pixel 8" {
		t.Fatalf("storage mutated by failed update: %#v", after)
	}
}

func TestStoreDeleteRemovesExactlyOne(t *testing.T) {
	fallback := NewInMemoryRepository(seedProducts())
	store := NewStore(nil, fallback)

	if !store.DeleteBySlug("thinkpad-x1-100") {
		t.Fatalf("expected delete by slug to succeed")
	}
	after, _ := fallback.List()
	if len(after) != 1 || after[0].ID != 2 {
		t.Fatalf("expected only pixel-8 to remain, got %#v", after)
	}

	// string-equality id match
	if !store.DeleteBySlug("2") {
		t.Fatalf("expected delete by id string to succeed")
	}
	if store.DeleteBySlug("does-not-exist") {
		t.Fatalf("deleting a missing record must report false")
	}
}
