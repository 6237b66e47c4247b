package product

import (
	"database/sql"
	"strconv"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	listProductsQuery = `
		SELECT id, name, slug, category, condition, price, specs, images, published
		FROM products
		ORDER BY id
	`
	getProductByIDQuery = `
		SELECT id, name, slug, category, condition, price, specs, images, published
		FROM products
		WHERE id = $1
	`
	getProductBySlugQuery = `
		SELECT id, name, slug, category, condition, price, specs, images, published
		FROM products
		WHERE slug = $1
	`
	insertProductQuery = `
		INSERT INTO products (name, slug, category, condition, price, specs, images, published)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id
	`
	updateProductQuery = `
		UPDATE products
		SET name = $1,
			category = $2,
			condition = $3,
			price = $4,
			specs = $5,
			images = $6,
			published = $7
		WHERE slug = $8
	`
	deleteProductBySlugQuery = `DELETE FROM products WHERE slug = $1`
	deleteProductByIDQuery   = `DELETE FROM products WHERE id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List() ([]Product, error) {
	rows, err := r.db.Query(listProductsQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(id int) (Product, error) {
	p, err := scanProduct(r.db.QueryRow(getProductByIDQuery, id))
	if err == sql.ErrNoRows {
		return Product{}, ErrNotFound
	}
	return p, err
}

func (r *PostgresRepository) GetBySlug(slug string) (Product, error) {
	p, err := scanProduct(r.db.QueryRow(getProductBySlugQuery, slug))
	if err == sql.ErrNoRows {
		return Product{}, ErrNotFound
	}
	return p, err
}

func (r *PostgresRepository) Create(p Product) (Product, error) {
	err := r.db.QueryRow(insertProductQuery,
		p.Name, p.Slug, p.Category, p.Condition, p.Price, p.Specs,
		pq.Array([]string(p.Images)), p.Published,
	).Scan(&p.ID)
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) UpdateBySlug(slug string, patch Patch) (Product, error) {
	current, err := r.GetBySlug(slug)
	if err != nil {
		return Product{}, err
	}
	updated := patch.apply(current)

	if _, err := r.db.Exec(updateProductQuery,
		updated.Name, updated.Category, updated.Condition, updated.Price,
		updated.Specs, pq.Array([]string(updated.Images)), updated.Published, slug,
	); err != nil {
		return Product{}, err
	}
	return updated, nil
}

// DeleteBySlug deletes by slug first and retries by numeric id only when the
// token is purely numeric and no slug matched.
func (r *PostgresRepository) DeleteBySlug(slugOrID string) (bool, error) {
	res, err := r.db.Exec(deleteProductBySlugQuery, slugOrID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n > 0 {
		return true, nil
	}

	id, convErr := strconv.Atoi(slugOrID)
	if convErr != nil {
		return false, nil
	}
	res, err = r.db.Exec(deleteProductByIDQuery, id)
	if err != nil {
		return false, err
	}
	n, err = res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (Product, error) {
	var p Product
	var images []string
	if err := row.Scan(&p.ID, &p.Name, &p.Slug, &p.Category, &p.Condition,
		&p.Price, &p.Specs, pq.Array(&images), &p.Published); err != nil {
		return Product{}, err
	}
	p.Images = images
	return p, nil
}
