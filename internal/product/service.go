package product

import (
	"errors"
	"time"
)

var (
	ErrInvalidCondition = errors.New("condition must be New or Used")
	ErrNegativePrice    = errors.New("price must be non-negative")
	ErrNoImages         = errors.New("at least one image is required")
)

// Service applies the add-flow business rules on top of the fallback store.
type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

func (s *Service) List() []Product {
	return s.store.List()
}

func (s *Service) GetBySlug(slug string) (Product, bool) {
	return s.store.GetBySlug(slug)
}

func (s *Service) Resolve(slugOrID string) (Product, bool) {
	return s.store.Resolve(slugOrID)
}

// Create derives the slug from the name plus the creation timestamp, defaults
// published to true and validates the add-flow invariants. The id is assigned
// by whichever backend takes the write.
func (s *Service) Create(p Product) (Product, error) {
	if p.Condition != ConditionNew && p.Condition != ConditionUsed {
		return Product{}, ErrInvalidCondition
	}
	if p.Price < 0 {
		return Product{}, ErrNegativePrice
	}
	if len(p.Images) == 0 {
		return Product{}, ErrNoImages
	}

	p.ID = 0
	p.Slug = NewSlug(p.Name, time.Now())
	p.Published = true
	return s.store.Create(p)
}

func (s *Service) UpdateBySlug(slug string, patch Patch) (Product, bool) {
	return s.store.UpdateBySlug(slug, patch)
}

func (s *Service) DeleteBySlug(slugOrID string) bool {
	return s.store.DeleteBySlug(slugOrID)
}
