package product

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// FileRepository stores the whole catalog as a single JSON array on disk.
// Every mutation rewrites the file; reads parse it fresh so edits made by
// hand between requests are picked up.
type FileRepository struct {
	mu   sync.Mutex
	path string
}

func NewFileRepository(path string) *FileRepository {
	return &FileRepository{path: path}
}

func (r *FileRepository) List() ([]Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.read()
}

func (r *FileRepository) GetByID(id int) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	products, err := r.read()
	if err != nil {
		return Product{}, err
	}
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *FileRepository) GetBySlug(slug string) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	products, err := r.read()
	if err != nil {
		return Product{}, err
	}
	for _, p := range products {
		if p.Slug == slug {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

// Create assigns max existing id + 1 (1 when the file is empty or missing)
// and appends the record.
func (r *FileRepository) Create(p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	products, err := r.read()
	if err != nil {
		return Product{}, err
	}

	maxID := 0
	for _, existing := range products {
		if existing.ID > maxID {
			maxID = existing.ID
		}
	}
	p.ID = maxID + 1

	products = append(products, p)
	if err := r.write(products); err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *FileRepository) UpdateBySlug(slug string, patch Patch) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	products, err := r.read()
	if err != nil {
		return Product{}, err
	}
	for i := range products {
		if products[i].Slug == slug {
			products[i] = patch.apply(products[i])
			if err := r.write(products); err != nil {
				return Product{}, err
			}
			return products[i], nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *FileRepository) DeleteBySlug(slugOrID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	products, err := r.read()
	if err != nil {
		return false, err
	}
	for i := range products {
		if matches(products[i], slugOrID) {
			products = append(products[:i], products[i+1:]...)
			if err := r.write(products); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

// read returns an empty catalog when the file does not exist yet; a missing
// snapshot is a fresh deployment, not an error.
func (r *FileRepository) read() ([]Product, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []Product{}, nil
		}
		return nil, err
	}
	var products []Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *FileRepository) write(products []Product) error {
	data, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(r.path, data, 0o644)
}
