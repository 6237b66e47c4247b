package product

import (
	"errors"
	"strconv"
	"sync"
)

var (
	ErrNotFound = errors.New("product not found")
)

// Repository provides access to one concrete product backend. The Store layer
// decides which backend is consulted; implementations just report errors.
type Repository interface {
	List() ([]Product, error)
	GetByID(id int) (Product, error)
	GetBySlug(slug string) (Product, error)
	Create(p Product) (Product, error)
	UpdateBySlug(slug string, patch Patch) (Product, error)
	// DeleteBySlug removes the first record whose slug equals slugOrID or
	// whose numeric id matches it as a string. It reports whether a removal
	// occurred.
	DeleteBySlug(slugOrID string) (bool, error)
}

// InMemoryRepository is a simple in-memory implementation useful for tests and
// seeding local data.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Product
	nextID  int
}

func NewInMemoryRepository(seed []Product) *InMemoryRepository {
	r := &InMemoryRepository{storage: make([]Product, 0, len(seed))}

	maxID := 0
	for _, p := range seed {
		r.storage = append(r.storage, p)
		if p.ID > maxID {
			maxID = p.ID
		}
	}

	r.nextID = maxID + 1
	return r
}

func (r *InMemoryRepository) List() ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Product, len(r.storage))
	copy(out, r.storage)
	return out, nil
}

func (r *InMemoryRepository) GetByID(id int) (Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.storage {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) GetBySlug(slug string) (Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.storage {
		if p.Slug == slug {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) Create(p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == 0 {
		p.ID = r.nextID
		r.nextID++
	} else if p.ID >= r.nextID {
		r.nextID = p.ID + 1
	}
	r.storage = append(r.storage, p)
	return p, nil
}

func (r *InMemoryRepository) UpdateBySlug(slug string, patch Patch) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].Slug == slug {
			r.storage[i] = patch.apply(r.storage[i])
			return r.storage[i], nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) DeleteBySlug(slugOrID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if matches(r.storage[i], slugOrID) {
			r.storage = append(r.storage[:i], r.storage[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func matches(p Product, slugOrID string) bool {
	return p.Slug == slugOrID || strconv.Itoa(p.ID) == slugOrID
}
