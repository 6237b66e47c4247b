package product

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func productColumns() []string {
	return []string{"id", "name", "slug", "category", "condition", "price", "specs", "images", "published"}
}

func TestPostgresList(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := sqlmock.NewRows(productColumns()).
		AddRow(1, "Thinkpad X1", "thinkpad-x1-100", "Laptops", "Used", 1000, "i7", "{/uploads/x1.jpg}", true).
		AddRow(2, "Pixel 8", "pixel-8-200", "Phones", "New", 700, "128GB", "{/uploads/p8.jpg,/uploads/p8b.jpg}", true)
	mock.ExpectQuery("SELECT id, name, slug").WillReturnRows(rows)

	products, err := repo.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	if len(products[1].Images) != 2 || products[1].Images.Primary() != "/uploads/p8.jpg" {
		t.Fatalf("images array not scanned: %#v", products[1].Images)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresGetBySlugNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("WHERE slug").WithArgs("missing").WillReturnRows(sqlmock.NewRows(productColumns()))

	if _, err := repo.GetBySlug("missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresCreateReturnsBackendID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("INSERT INTO products").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(41))

	created, err := repo.Create(Product{Name: "Thinkpad X1", Slug: "thinkpad-x1-9", Images: ImageList{"/uploads/a.jpg"}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != 41 {
		t.Fatalf("expected backend id 41, got %d", created.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresDeleteFallsBackToNumericID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	// no slug matches, the token is numeric, so the id delete runs next
	mock.ExpectExec("DELETE FROM products WHERE slug").
		WithArgs("7").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM products WHERE id").
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 1))

	deleted, err := repo.DeleteBySlug("7")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !deleted {
		t.Fatalf("expected delete by numeric id to succeed")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresDeleteNonNumericMissReportsFalse(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("DELETE FROM products WHERE slug").
		WithArgs("no-such-slug").
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.DeleteBySlug("no-such-slug")
	if err != nil || deleted {
		t.Fatalf("expected false without error, got deleted=%v err=%v", deleted, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
