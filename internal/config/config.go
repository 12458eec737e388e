package config

import (
	"log"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Storage   StorageConfig
	Catalog   CatalogConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name    string
	Env     string
	Port    string
	Debug   bool
	LogFile string
}

type StorageConfig struct {
	DataDir   string
	ExportDir string
}

type CatalogConfig struct {
	MaxPrice      string
	LowStockAlert int
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "canteen-api")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("LOG_FILE", "log_sistema.txt")
	viper.SetDefault("DATA_DIR", "./data")
	viper.SetDefault("EXPORT_DIR", "./exports")
	viper.SetDefault("PRODUCT_MAX_PRICE", "999.99")
	viper.SetDefault("LOW_STOCK_ALERT", 5)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)

	return &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Env:     viper.GetString("APP_ENV"),
			Port:    viper.GetString("APP_PORT"),
			Debug:   viper.GetBool("APP_DEBUG"),
			LogFile: viper.GetString("LOG_FILE"),
		},
		Storage: StorageConfig{
			DataDir:   viper.GetString("DATA_DIR"),
			ExportDir: viper.GetString("EXPORT_DIR"),
		},
		Catalog: CatalogConfig{
			MaxPrice:      viper.GetString("PRODUCT_MAX_PRICE"),
			LowStockAlert: viper.GetInt("LOW_STOCK_ALERT"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
	}
}

// ProductsFile returns the path of the catalog document.
func (c *Config) ProductsFile() string {
	return filepath.Join(c.Storage.DataDir, "products.json")
}

// ClientsFile returns the path of the client ledger document.
func (c *Config) ClientsFile() string {
	return filepath.Join(c.Storage.DataDir, "clients.json")
}

// CompanyFile returns the path of the company profile document.
func (c *Config) CompanyFile() string {
	return filepath.Join(c.Storage.DataDir, "company.json")
}
