package config

import "os"

// Config holds environment-driven configuration.
type Config struct {
	Addr          string
	DatabaseURL   string
	ProductsFile  string
	UploadDir     string
	CartDir       string
	AdminUser     string
	AdminPassHash string
	JWTSecret     string
}

// Load reads configuration from environment variables.
func Load() Config {
	return Config{
		Addr:          getEnv("ADDR", ":8080"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		ProductsFile:  getEnv("PRODUCTS_FILE", "data/products.json"),
		UploadDir:     getEnv("UPLOAD_DIR", "public/uploads"),
		CartDir:       getEnv("CART_DIR", "data"),
		AdminUser:     getEnv("ADMIN_USER", "admin@example.com"),
		AdminPassHash: os.Getenv("ADMIN_PASS_HASH"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
