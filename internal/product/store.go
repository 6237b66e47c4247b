package product

import (
	"log"
	"strconv"
)

// Store is the dual-backend product store. The primary backend (normally
// Postgres) is tried first; any error degrades to the flat-file snapshot.
// Callers always receive a value, never an error, except for Create where
// losing the record silently would be worse than reporting it.
//
// This is a fallback, not a cache: the two backends are never reconciled and
// can diverge if populated independently.
type Store struct {
	primary  Repository // nil when no DATABASE_URL is configured
	fallback Repository
}

func NewStore(primary, fallback Repository) *Store {
	return &Store{primary: primary, fallback: fallback}
}

// List returns all products, or an empty slice if both backends fail.
func (s *Store) List() []Product {
	if s.primary != nil {
		products, err := s.primary.List()
		if err == nil {
			return products
		}
		log.Printf("product store: primary list failed, using file fallback: %v", err)
	}

	products, err := s.fallback.List()
	if err != nil {
		log.Printf("product store: file fallback list failed: %v", err)
		return []Product{}
	}
	return products
}

func (s *Store) GetByID(id int) (Product, bool) {
	if s.primary != nil {
		p, err := s.primary.GetByID(id)
		if err == nil {
			return p, true
		}
		if err != ErrNotFound {
			log.Printf("product store: primary get id=%d failed, using file fallback: %v", id, err)
		}
	}

	p, err := s.fallback.GetByID(id)
	if err != nil {
		if err != ErrNotFound {
			log.Printf("product store: file fallback get id=%d failed: %v", id, err)
		}
		return Product{}, false
	}
	return p, true
}

func (s *Store) GetBySlug(slug string) (Product, bool) {
	if s.primary != nil {
		p, err := s.primary.GetBySlug(slug)
		if err == nil {
			return p, true
		}
		if err != ErrNotFound {
			log.Printf("product store: primary get slug=%q failed, using file fallback: %v", slug, err)
		}
	}

	p, err := s.fallback.GetBySlug(slug)
	if err != nil {
		if err != ErrNotFound {
			log.Printf("product store: file fallback get slug=%q failed: %v", slug, err)
		}
		return Product{}, false
	}
	return p, true
}

// Resolve looks a product up by slug, falling back to id lookup only when the
// token is purely numeric.
func (s *Store) Resolve(slugOrID string) (Product, bool) {
	if p, ok := s.GetBySlug(slugOrID); ok {
		return p, true
	}
	id, err := strconv.Atoi(slugOrID)
	if err != nil {
		return Product{}, false
	}
	return s.GetByID(id)
}

// Create writes to the primary backend when it is reachable (backend-assigned
// id); on primary failure the record goes to the flat file only. The write is
// best effort, not transactional across both backends.
func (s *Store) Create(p Product) (Product, error) {
	if s.primary != nil {
		created, err := s.primary.Create(p)
		if err == nil {
			return created, nil
		}
		log.Printf("product store: primary create failed, writing to file fallback: %v", err)
	}
	return s.fallback.Create(p)
}

// UpdateBySlug merges the patch into the matched record; absent when no
// record carries the slug.
func (s *Store) UpdateBySlug(slug string, patch Patch) (Product, bool) {
	if s.primary != nil {
		updated, err := s.primary.UpdateBySlug(slug, patch)
		if err == nil {
			return updated, true
		}
		if err != ErrNotFound {
			log.Printf("product store: primary update slug=%q failed, using file fallback: %v", slug, err)
		}
	}

	updated, err := s.fallback.UpdateBySlug(slug, patch)
	if err != nil {
		if err != ErrNotFound {
			log.Printf("product store: file fallback update slug=%q failed: %v", slug, err)
		}
		return Product{}, false
	}
	return updated, true
}

// DeleteBySlug matches by slug equality or string equality of the id and
// reports whether a removal occurred.
func (s *Store) DeleteBySlug(slugOrID string) bool {
	if s.primary != nil {
		deleted, err := s.primary.DeleteBySlug(slugOrID)
		if err == nil {
			return deleted
		}
		log.Printf("product store: primary delete %q failed, using file fallback: %v", slugOrID, err)
	}

	deleted, err := s.fallback.DeleteBySlug(slugOrID)
	if err != nil {
		log.Printf("product store: file fallback delete %q failed: %v", slugOrID, err)
		return false
	}
	return deleted
}
