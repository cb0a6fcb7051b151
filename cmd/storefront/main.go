package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/fjod/go_storefront/internal/cart"
	"github.com/fjod/go_storefront/internal/catalog"
	"github.com/fjod/go_storefront/internal/checkout"
	"github.com/fjod/go_storefront/internal/httpapi"
	"github.com/fjod/go_storefront/internal/orders"
	"github.com/fjod/go_storefront/internal/storage"
)

type Config struct {
	HTTPPort        string
	FakeStoreURL    string
	RedisAddr       string
	RedisPassword   string
	StorageBackend  string // sqlite, mongo or memory
	SQLitePath      string
	MigrationsPath  string
	MongoURI        string
	MongoDBName     string
	ShippingPolicy  string
	SubmitURL       string
	SubmitDelay     time.Duration
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	// .env is optional; real env vars win either way
	if err := godotenv.Load(); err == nil {
		log.Println("loaded configuration from .env")
	}

	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		FakeStoreURL:    getEnv("FAKESTORE_URL", "https://fakestoreapi.com"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		StorageBackend:  getEnv("STORAGE_BACKEND", "sqlite"),
		SQLitePath:      getEnv("DB_PATH", "./storefront.db"),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "./migrations"),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:     getEnv("MONGO_DB_NAME", "storefront"),
		ShippingPolicy:  getEnv("DEFAULT_SHIPPING_POLICY", "free"),
		SubmitURL:       getEnv("SUBMIT_URL", ""),
		SubmitDelay:     getEnvDuration("SUBMIT_DELAY", 1500*time.Millisecond),
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

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("invalid duration for %s, using default %s", key, defaultValue)
	}
	return defaultValue
}

func main() {
	log.Println("Storefront started")

	cfg := loadConfig()
	ctx := context.Background()

	// Durable store (primary side of the persistence adapter)
	primary, err := openPrimaryStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.StorageBackend, err)
	}
	defer primary.Close()

	// Redis backs both the secondary store and the catalog cache.
	// The storefront runs fine without it, just with less caching.
	var secondary storage.Store
	var productCache catalog.Cache = catalog.NewMemoryCache()
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Printf("Redis unavailable at %s, continuing without it: %v", cfg.RedisAddr, err)
			redisClient.Close()
		} else {
			log.Printf("Redis ping succeeded")
			defer redisClient.Close()
			secondary = storage.NewRedisStore(redisClient)
			productCache = catalog.NewRedisCache(redisClient)
		}
	}

	adapter := storage.NewAdapter(primary, secondary)

	// State containers, hydrated from storage before observers attach
	// so startup does not write back what was just read.
	cartState := cart.New()
	orderState := orders.New()
	if items := adapter.LoadCart(ctx); len(items) > 0 {
		cartState.Hydrate(items)
		log.Printf("restored cart with %d item(s)", len(items))
	}
	if list := adapter.LoadOrders(ctx); len(list) > 0 {
		orderState.Set(list)
		log.Printf("restored %d order(s)", len(list))
	}
	cartState.OnChange = adapter.SaveCart
	orderState.OnChange = adapter.SaveOrders

	// Product catalog: fakestore client behind a read-through cache
	client := catalog.NewClient(cfg.FakeStoreURL)
	catalogService := catalog.NewService(client, productCache)

	// Checkout pipeline. SUBMIT_URL points at a real order API;
	// without it submission is simulated with a fixed delay.
	policy := catalog.DefaultShippingPolicy(cfg.ShippingPolicy)
	var submitter checkout.Submitter = checkout.NewSimulatedSubmitter(cfg.SubmitDelay)
	if cfg.SubmitURL != "" {
		submitter = checkout.NewHTTPSubmitter(cfg.SubmitURL)
		log.Printf("submitting orders to %s", cfg.SubmitURL)
	}
	orchestrator := checkout.NewOrchestrator(cartState, orderState, submitter, policy)

	// HTTP layer
	productHandler := httpapi.NewProductHandler(catalogService, cfg.RequestTimeout)
	cartHandler := httpapi.NewCartHandler(cartState, catalogService, cfg.RequestTimeout)
	checkoutHandler := httpapi.NewCheckoutHandler(orchestrator)
	ordersHandler := httpapi.NewOrdersHandler(orderState)
	legacyHandler := httpapi.NewLegacyOrdersHandler()

	router := httpapi.NewRouter(productHandler, cartHandler, checkoutHandler, ordersHandler, legacyHandler, cfg.RequestTimeout)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Storefront listening on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}

func openPrimaryStore(ctx context.Context, cfg *Config) (storage.Store, error) {
	switch cfg.StorageBackend {
	case "mongo":
		db, err := storage.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
		if err != nil {
			return nil, err
		}
		log.Printf("Connected to MongoDB at %s", cfg.MongoURI)
		return storage.NewMongoStore(db), nil
	case "memory":
		return storage.NewMemoryStore(), nil
	default:
		store, err := storage.NewSQLiteStore(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		if err := store.RunMigrations(cfg.MigrationsPath); err != nil {
			store.Close()
			return nil, err
		}
		log.Println("Migrations completed successfully")
		return store, nil
	}
}
