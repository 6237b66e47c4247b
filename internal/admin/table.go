package admin

import (
	"strconv"
	"strings"

	"github.com/techmarket/storefront-backend/internal/product"
)

const defaultPageSize = 10

// Table is the admin product table state: the product list fetched on load,
// optimistically mutated after server-confirmed edits and deletes, with
// search and pagination applied purely over the in-memory list. It runs on a
// single UI event loop, so there is no locking here.
type Table struct {
	client *Client

	products []product.Product
	search   string
	page     int
	pageSize int
	toast    string
}

func NewTable(client *Client) *Table {
	return &Table{client: client, page: 1, pageSize: defaultPageSize}
}

// Load fetches the full product list from the authenticated endpoint. A
// failure surfaces as a transient toast and leaves the current list alone.
func (t *Table) Load() error {
	products, err := t.client.Products()
	if err != nil {
		t.toast = "Failed to load products. Make sure you're signed in as admin."
		return err
	}
	t.products = products
	return nil
}

// Save applies an edit. When replacement image bytes are supplied they are
// uploaded first and the returned path becomes the primary image of the
// update payload. On success the matching local entry is replaced with the
// server's canonical record instead of refetching the list.
func (t *Table) Save(slug string, patch product.Patch, imageName string, imageData []byte) (product.Product, error) {
	if len(imageData) > 0 {
		path, err := t.client.Upload(imageName, imageData)
		if err != nil {
			t.toast = "Image upload failed"
			return product.Product{}, err
		}

		images := product.ImageList{path}
		if current, ok := t.find(slug); ok && len(current.Images) > 1 {
			images = append(images, current.Images[1:]...)
		}
		patch.Images = &images
	}

	updated, err := t.client.Update(slug, patch)
	if err != nil {
		t.toast = "Update failed"
		return product.Product{}, err
	}

	for i := range t.products {
		if t.products[i].Slug == slug {
			t.products[i] = updated
			break
		}
	}
	return updated, nil
}

// Delete removes a product after server confirmation and filters it out of
// local list state by slug-or-id match.
func (t *Table) Delete(slugOrID string) error {
	if err := t.client.Delete(slugOrID); err != nil {
		t.toast = "Delete failed"
		return err
	}

	kept := t.products[:0]
	for _, p := range t.products {
		if p.Slug != slugOrID && strconv.Itoa(p.ID) != slugOrID {
			kept = append(kept, p)
		}
	}
	t.products = kept
	return nil
}

// SetSearch filters by name, slug or category and resets to the first page.
func (t *Table) SetSearch(q string) {
	t.search = strings.TrimSpace(strings.ToLower(q))
	t.page = 1
}

func (t *Table) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	t.page = page
}

// Rows returns the current page of the filtered list.
func (t *Table) Rows() []product.Product {
	filtered := t.filtered()

	start := (t.page - 1) * t.pageSize
	if start >= len(filtered) {
		return nil
	}
	end := start + t.pageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end]
}

// TotalPages reports how many pages the filtered list spans, at least 1.
func (t *Table) TotalPages() int {
	n := len(t.filtered())
	if n == 0 {
		return 1
	}
	return (n + t.pageSize - 1) / t.pageSize
}

// Toast returns and clears the pending transient message.
func (t *Table) Toast() (string, bool) {
	if t.toast == "" {
		return "", false
	}
	msg := t.toast
	t.toast = ""
	return msg, true
}

func (t *Table) filtered() []product.Product {
	if t.search == "" {
		return t.products
	}
	out := make([]product.Product, 0, len(t.products))
	for _, p := range t.products {
		if strings.Contains(strings.ToLower(p.Name), t.search) ||
			strings.Contains(strings.ToLower(p.Slug), t.search) ||
			strings.Contains(strings.ToLower(p.Category), t.search) {
			out = append(out, p)
		}
	}
	return out
}

func (t *Table) find(slug string) (product.Product, bool) {
	for _, p := range t.products {
		if p.Slug == slug {
			return p, true
		}
	}
	return product.Product{}, false
}
