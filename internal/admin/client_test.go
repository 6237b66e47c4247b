package admin

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/techmarket/storefront-backend/internal/product"
	"github.com/techmarket/storefront-backend/internal/upload"
	"github.com/techmarket/storefront-backend/internal/user"
)

func seedCatalog() []product.Product {
	return []product.Product{
		{
			ID: 1, Name: "Thinkpad X1", Slug: "thinkpad-x1-100", Category: "Laptops",
			Condition: product.ConditionUsed, Price: 1000, Specs: "i7/16GB",
			Images: product.ImageList{"/uploads/x1.jpg"}, Published: true,
		},
		{
			ID: 2, Name: "Pixel 8", Slug: "pixel-8-200", Category: "Phones",
			Condition: product.ConditionNew, Price: 700, Specs: "128GB",
			Images: product.ImageList{"/uploads/pixel.jpg"}, Published: true,
		},
	}
}

// startServer runs the real API on a loopback port so the agent-based client
// is exercised over an actual connection.
func startServer(t *testing.T) string {
	t.Helper()

	repo := product.NewInMemoryRepository(seedCatalog())
	store := product.NewStore(nil, repo)
	service := product.NewService(store)
	saver := upload.NewSaver(t.TempDir())

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	userHandler := user.NewHandler("admin@example.com", "unused", "test-secret")
	userHandler.RegisterPublicRoutes(app)

	guard := user.AdminGuard("test-secret")
	productHandler := product.NewHandler(service, saver)
	productHandler.RegisterPublicRoutes(app)
	productHandler.RegisterAdminRoutes(app.Group("/api/admin", guard))
	upload.NewHandler(saver).RegisterProtectedRoutes(app, guard)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	go app.Listener(ln)
	t.Cleanup(func() { app.Shutdown() })
	time.Sleep(100 * time.Millisecond)

	return "http://" + ln.Addr().String()
}

func TestClientProducts(t *testing.T) {
	base := startServer(t)
	client := NewClient(base, user.SessionSentinel, "")

	products, err := client.Products()
	if err != nil {
		t.Fatalf("products: %v", err)
	}
	if len(products) != 2 || products[0].Slug != "thinkpad-x1-100" {
		t.Fatalf("unexpected catalog: %+v", products)
	}
}

func TestClientRejectedWithoutAdminSession(t *testing.T) {
	base := startServer(t)
	client := NewClient(base, "forged", "")

	if _, err := client.Products(); err == nil {
		t.Fatal("expected error with a forged admin session")
	}
}

func TestClientUpdate(t *testing.T) {
	base := startServer(t)
	client := NewClient(base, user.SessionSentinel, "")

	price := 899
	updated, err := client.Update("thinkpad-x1-100", product.Patch{Price: &price})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Price != 899 || updated.Name != "Thinkpad X1" {
		t.Fatalf("unexpected record: %+v", updated)
	}
}

func TestClientDelete(t *testing.T) {
	base := startServer(t)
	client := NewClient(base, user.SessionSentinel, "")

	if err := client.Delete("pixel-8-200"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	products, err := client.Products()
	if err != nil {
		t.Fatalf("products: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("expected one product left, got %d", len(products))
	}

	if err := client.Delete("pixel-8-200"); err == nil {
		t.Fatal("deleting a missing product must error")
	}
}

func TestClientUpload(t *testing.T) {
	base := startServer(t)
	client := NewClient(base, user.SessionSentinel, "")

	path, err := client.Upload("banner.png", []byte("pngbytes"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if len(path) == 0 || path[0] != '/' {
		t.Fatalf("expected public path, got %q", path)
	}
}

func TestClientCheckSession(t *testing.T) {
	base := startServer(t)

	withSession := NewClient(base, "", user.SessionSentinel)
	if err := withSession.CheckSession(context.Background()); err != nil {
		t.Fatalf("check session: %v", err)
	}

	without := NewClient(base, "", "")
	if err := without.CheckSession(context.Background()); err == nil {
		t.Fatal("expected error without a user session")
	}
}
