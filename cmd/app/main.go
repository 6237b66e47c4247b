package main

import (
	"database/sql"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/techmarket/storefront-backend/internal/checkout"
	"github.com/techmarket/storefront-backend/internal/config"
	"github.com/techmarket/storefront-backend/internal/product"
	"github.com/techmarket/storefront-backend/internal/upload"
	"github.com/techmarket/storefront-backend/internal/user"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	app := fiber.New()
	setupCORS(app)
	app.Use(requestLog)

	// The store must stay demoable without a configured database, so a
	// missing or unreachable DB is a warning, not a startup failure: the
	// product store then runs on the flat-file snapshot alone.
	var primary product.Repository
	if db := openDB(cfg.DatabaseURL); db != nil {
		defer db.Close()
		ensureSchema(db)
		primary = product.NewPostgresRepository(db)
	}
	store := product.NewStore(primary, product.NewFileRepository(cfg.ProductsFile))

	saver := upload.NewSaver(cfg.UploadDir)
	productHandler := product.NewHandler(product.NewService(store), saver)
	userHandler := user.NewHandler(cfg.AdminUser, cfg.AdminPassHash, cfg.JWTSecret)
	uploadHandler := upload.NewHandler(saver)
	checkoutHandler := checkout.NewHandler()

	userHandler.RegisterPublicRoutes(app)
	productHandler.RegisterPublicRoutes(app)
	checkoutHandler.RegisterRoutes(app)

	guard := user.AdminGuard(cfg.JWTSecret)
	adminAPI := app.Group("/api/admin", guard)
	productHandler.RegisterAdminRoutes(adminAPI)
	uploadHandler.RegisterProtectedRoutes(app, guard)

	// make uploaded files public
	app.Static("/uploads", "./"+cfg.UploadDir)

	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, X-CSRF-Token, Authorization",
	}))
}

func requestLog(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	log.Printf("%s %s -> %d (%s)", c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start))
	return err
}

func ensureSchema(db *sql.DB) {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS products (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		slug TEXT UNIQUE NOT NULL,
		category TEXT,
		condition TEXT,
		price INT NOT NULL DEFAULT 0,
		specs TEXT,
		images TEXT[] NOT NULL DEFAULT '{}',
		published BOOLEAN NOT NULL DEFAULT TRUE
	)`); err != nil {
		log.Printf("warning: could not create products table: %v", err)
	}
}

// openDB returns nil when no DATABASE_URL is configured or the database is
// unreachable; the caller degrades to the file-backed store.
func openDB(url string) *sql.DB {
	if url == "" {
		log.Println("DATABASE_URL is not set, using file-backed product store")
		return nil
	}

	db, err := sql.Open("pgx", url)
	if err != nil {
		log.Printf("warning: could not open database, using file-backed product store: %v", err)
		return nil
	}
	if err := db.Ping(); err != nil {
		log.Printf("warning: database unreachable, using file-backed product store: %v", err)
		db.Close()
		return nil
	}
	return db
}
