package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/evamaren/daybook/internal/api"
	"github.com/evamaren/daybook/internal/assistant"
	"github.com/evamaren/daybook/internal/db"
	"github.com/evamaren/daybook/internal/remote"
	"github.com/evamaren/daybook/internal/security"
	"github.com/evamaren/daybook/internal/store"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("could not load .env: %v", err)
	}

	location := mustLoadLocation(getEnv("TZ", "UTC"))
	time.Local = location

	secretKey := os.Getenv("SECRET_KEY")
	if secretKey == "" {
		generated, err := security.RandomSecret()
		if err != nil {
			log.Fatalf("secret key generation failed: %v", err)
		}
		secretKey = generated
		log.Print("SECRET_KEY not set, using a generated key; sessions will not survive a restart")
	}

	dbPath := getEnv("DB_PATH", filepath.Join("data", "daybook.db"))
	cachePath := getEnv("CACHE_PATH", filepath.Join("data", "cache"))
	port := getEnv("PORT", "8080")
	cookieSecure := getEnv("COOKIE_SECURE", "false") == "true"

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	cache, err := store.OpenCache(cachePath)
	if err != nil {
		log.Fatalf("cache init failed: %v", err)
	}

	lifecycleCtx, cancelLifecycle := context.WithCancel(context.Background())
	defer cancelLifecycle()

	var generator assistant.Generator
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		gemini, err := assistant.NewGemini(lifecycleCtx, apiKey, getEnv("GEMINI_MODEL", assistant.DefaultModel))
		if err != nil {
			log.Fatalf("assistant init failed: %v", err)
		}
		generator = gemini
	} else {
		log.Print("GEMINI_API_KEY not set, chat assistant disabled")
	}

	handler, err := api.NewHandler(api.HandlerConfig{
		Database:     database,
		SecretKey:    secretKey,
		Location:     location,
		CookieSecure: cookieSecure,
		Cache:        cache,
		Generator:    generator,
	})
	if err != nil {
		log.Fatalf("handler init failed: %v", err)
	}

	watchCacheChanges(lifecycleCtx, cache, handler.Adapter())

	app := fiber.New(fiber.Config{
		AppName:               "Daybook",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	api.RegisterRoutes(app, handler)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		cancelLifecycle()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("Daybook listening on http://0.0.0.0:%s (db: %s, tz: %s)", port, dbPath, location.String())
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

// watchCacheChanges republishes on-disk cache changes onto the change bus, so
// another process writing the same cache directory still wakes SSE clients.
func watchCacheChanges(ctx context.Context, cache *store.Cache, adapter *remote.Adapter) {
	events, err := cache.Watch(ctx)
	if err != nil {
		log.Printf("cache watch disabled: %v", err)
		return
	}

	go func() {
		for range events {
			adapter.Bus().Publish(remote.TableEntries)
			adapter.Bus().Publish(remote.TableMeals)
			adapter.Bus().Publish(remote.TablePlans)
		}
	}()
}

func mustLoadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("invalid TZ %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
