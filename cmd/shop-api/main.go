package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/SunnieP/analytics-training-demo/internal/analytics"
	"github.com/SunnieP/analytics-training-demo/internal/cache"
	"github.com/SunnieP/analytics-training-demo/internal/cart"
	"github.com/SunnieP/analytics-training-demo/internal/catalog"
	"github.com/SunnieP/analytics-training-demo/internal/checkout"
	shophttp "github.com/SunnieP/analytics-training-demo/internal/http"
	"github.com/SunnieP/analytics-training-demo/internal/orders"
	"github.com/SunnieP/analytics-training-demo/internal/repository"
)

type Config struct {
	HTTPPort        string
	MongoURI        string
	MongoDBName     string
	RedisAddr       string
	KafkaBrokers    string
	CatalogDBPath   string
	CatalogMigrate  string
	PostgresHost    string
	PostgresPort    int
	PostgresUser    string
	PostgresPass    string
	PostgresDB      string
	OrdersMigrate   string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		MongoURI:        getEnv("MONGO_URI", ""),
		MongoDBName:     getEnv("MONGO_DB_NAME", "shopdb"),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		KafkaBrokers:    getEnv("KAFKA_BROKERS", ""),
		CatalogDBPath:   getEnv("CATALOG_DB_PATH", ""),
		CatalogMigrate:  getEnv("CATALOG_MIGRATIONS_PATH", "internal/catalog/migrations"),
		PostgresHost:    getEnv("POSTGRES_HOST", ""),
		PostgresPort:    5432,
		PostgresUser:    getEnv("POSTGRES_USER", "postgres"),
		PostgresPass:    getEnv("POSTGRES_PASSWORD", "postgres"),
		PostgresDB:      getEnv("POSTGRES_DB", "shopdb"),
		OrdersMigrate:   getEnv("ORDERS_MIGRATIONS_PATH", "internal/orders/migrations"),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()
	ctx := context.Background()

	// Analytics sink: Kafka when brokers are configured, otherwise the log
	// sink students replace with real tracking calls.
	var sink analytics.EventSink
	if cfg.KafkaBrokers != "" {
		kafkaSink := analytics.NewKafkaSink(strings.Split(cfg.KafkaBrokers, ",")...)
		defer kafkaSink.Close()
		sink = kafkaSink
		log.Printf("Publishing analytics events to kafka at %s", cfg.KafkaBrokers)
	} else {
		sink = analytics.NewLogSink()
		log.Printf("Publishing analytics events to the process log")
	}

	// Cart persistence: MongoDB when configured, in-memory otherwise.
	var repo repository.CartRepository
	if cfg.MongoURI != "" {
		db, err := repository.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
		if err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		repo = repository.NewMongoRepository(db)
		log.Printf("Connected to MongoDB at %s", cfg.MongoURI)
	} else {
		repo = repository.NewMemoryRepository()
		log.Printf("Using in-memory cart repository")
	}

	var cartCache cache.CartCache
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatalf("Redis connection failed: %v", err)
		}
		cartCache = cache.NewRedisCache(redisClient)
		log.Printf("Connected to Redis at %s", cfg.RedisAddr)
	}

	// Product catalog: SQLite when configured, built-in table otherwise.
	var cat catalog.Catalog
	if cfg.CatalogDBPath != "" {
		sqliteCatalog, err := catalog.NewSQLiteCatalog(cfg.CatalogDBPath)
		if err != nil {
			log.Fatalf("Failed to open catalog database: %v", err)
		}
		defer sqliteCatalog.Close()
		if err := sqliteCatalog.RunMigrations(cfg.CatalogMigrate); err != nil {
			log.Fatalf("Failed to migrate catalog database: %v", err)
		}
		cat = sqliteCatalog
		log.Printf("Serving catalog from %s", cfg.CatalogDBPath)
	} else {
		cat = catalog.NewStaticCatalog()
		log.Printf("Serving built-in catalog")
	}

	// Transaction archive: Postgres when configured, in-memory otherwise.
	var txns orders.TransactionRepository
	if cfg.PostgresHost != "" {
		cred := &orders.Credentials{
			Host:              cfg.PostgresHost,
			Port:              cfg.PostgresPort,
			User:              cfg.PostgresUser,
			Password:          cfg.PostgresPass,
			DBName:            cfg.PostgresDB,
			MigrationsDirPath: cfg.OrdersMigrate,
		}
		pgRepo, err := orders.NewPostgresRepository(cred)
		if err != nil {
			log.Fatalf("Failed to connect to Postgres: %v", err)
		}
		defer pgRepo.Close()
		if err := pgRepo.RunMigrations(cred); err != nil {
			log.Fatalf("Failed to migrate orders database: %v", err)
		}
		txns = pgRepo
		log.Printf("Archiving transactions to Postgres at %s", cfg.PostgresHost)
	} else {
		txns = orders.NewMemoryRepository()
		log.Printf("Using in-memory transaction archive")
	}

	cartSvc := cart.NewService(repo, cartCache, sink)
	cartSvc.Subscribe(func(sessionID string, itemCount int) {
		// Stands in for the cart badge on the storefront
		log.Printf("cart badge for session %s: %d", sessionID, itemCount)
	})

	manager := checkout.NewManager(cartSvc, txns, sink)

	router := shophttp.NewRouter(shophttp.RouterDeps{
		Catalog:        cat,
		Cart:           cartSvc,
		Checkout:       manager,
		Orders:         txns,
		Sink:           sink,
		RequestTimeout: cfg.RequestTimeout,
	})

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: otelhttp.NewHandler(router, "shop-api"),
	}

	go func() {
		log.Printf("shop-api listening on :%s", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Printf("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}
}
