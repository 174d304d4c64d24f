package config

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"storefront-service/internal/models"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis
	RedisURL string

	// NATS (optional; events disabled when empty)
	NATSURL string

	// Server
	Port        string
	Environment string

	// JWT
	JWTSecret      string
	JWTExpiryHours int

	// WhatsApp
	WhatsAppGatewayURL  string
	DefaultContactPhone string

	// BCV exchange rate
	BCVRateURL      string
	BCVRateCacheTTL time.Duration

	// Search state persistence
	SearchStateTTL time.Duration

	// Carts
	CartTTLHours int

	// Pagination
	DefaultPageSize int
	MaxPageSize     int

	DefaultCurrency string
}

func Load() *Config {
	dbPort, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))
	jwtExpiry, _ := strconv.Atoi(getEnv("JWT_EXPIRY_HOURS", "24"))
	defaultPageSize, _ := strconv.Atoi(getEnv("DEFAULT_PAGE_SIZE", "20"))
	maxPageSize, _ := strconv.Atoi(getEnv("MAX_PAGE_SIZE", "100"))
	rateCacheMinutes, _ := strconv.Atoi(getEnv("BCV_RATE_CACHE_MINUTES", "60"))
	searchStateMinutes, _ := strconv.Atoi(getEnv("SEARCH_STATE_TTL_MINUTES", "30"))
	cartTTLHours, _ := strconv.Atoi(getEnv("CART_TTL_HOURS", "72"))

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     dbPort,
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "storefront_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379/0"),
		NATSURL:  getEnv("NATS_URL", ""),

		Port:        getEnv("PORT", "8094"),
		Environment: getEnv("ENVIRONMENT", "development"),

		JWTSecret:      getEnv("JWT_SECRET", "your-secret-key"),
		JWTExpiryHours: jwtExpiry,

		WhatsAppGatewayURL:  getEnv("WHATSAPP_GATEWAY_URL", ""),
		DefaultContactPhone: getEnv("DEFAULT_CONTACT_PHONE", "584120000000"),

		BCVRateURL:      getEnv("BCV_RATE_URL", "https://ve.dolarapi.com/v1/dolares/oficial"),
		BCVRateCacheTTL: time.Duration(rateCacheMinutes) * time.Minute,

		SearchStateTTL: time.Duration(searchStateMinutes) * time.Minute,
		CartTTLHours:   cartTTLHours,

		DefaultPageSize: defaultPageSize,
		MaxPageSize:     maxPageSize,

		DefaultCurrency: getEnv("DEFAULT_CURRENCY", "USD"),
	}
}

func InitDB(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode)

	var logLevel logger.LogLevel
	if cfg.Environment == "production" {
		logLevel = logger.Error
	} else {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Running auto-migrations...")
	if err := db.AutoMigrate(
		&models.Store{},
		&models.StoreUser{},
		&models.Product{},
		&models.ProductAttribute{},
		&models.AttributeVariant{},
		&models.VariantCombination{},
		&models.CustomerCart{},
		&models.Order{},
		&models.Sale{},
		&models.SaleItem{},
		&models.Receivable{},
		&models.ReceivablePayment{},
		&models.Purchase{},
		&models.PurchaseItem{},
	); err != nil {
		return nil, fmt.Errorf("failed to run auto-migrations: %w", err)
	}
	log.Println("Auto-migrations completed successfully")

	return db, nil
}

// InitRedis connects to Redis; a nil client is returned on failure so callers
// can degrade to uncached operation.
func InitRedis(cfg *Config) *redis.Client {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Printf("Invalid REDIS_URL, running without cache: %v", err)
		return nil
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis unavailable, running without cache: %v", err)
		return nil
	}
	return client
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
