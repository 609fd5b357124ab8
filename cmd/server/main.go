package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"
	"github.com/trademart/backend/internal/audit"
	"github.com/trademart/backend/internal/config"
	"github.com/trademart/backend/internal/models"
	"github.com/trademart/backend/internal/router"
	"github.com/trademart/backend/internal/server"
	"github.com/trademart/backend/internal/store"
)

func main() {
	// Initialize config
	viper.SetConfigFile(".env") // explicitly point to .env file
	viper.AutomaticEnv()        // allow environment variables to override .env

	viper.BindEnv("server.host", "SERVER_HOST")
	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("server.max_line_bytes", "SERVER_MAX_LINE_BYTES")
	viper.BindEnv("ops.port", "OPS_PORT")
	viper.BindEnv("snapshot.path", "SNAPSHOT_PATH")
	viper.BindEnv("snapshot.interval", "SNAPSHOT_INTERVAL")
	viper.BindEnv("admin.username", "ADMIN_USERNAME")
	viper.BindEnv("admin.password_hash", "ADMIN_PASSWORD_HASH")
	viper.BindEnv("admin.name", "ADMIN_NAME")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Config file not found, using defaults: %v", err)
	}

	cfg := config.Load()

	// Restore state from the last snapshot, if any.
	st := store.New()
	if err := st.LoadFile(cfg.SnapshotPath); err != nil {
		log.Fatalf("Failed to load snapshot: %v", err)
	}
	seedAdmin(st, cfg)

	rt := router.New(st, audit.NewLogger())

	srv := server.New(rt, cfg.MaxLineBytes)
	if err := srv.Listen(cfg.ListenAddr()); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
	go func() {
		if err := srv.Serve(); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	opsServer := startOpsServer(cfg.OpsAddr(), st)

	// Periodic snapshot loop.
	snapshotDone := make(chan struct{})
	go func() {
		ticker := time.NewTicker(cfg.SnapshotInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := st.SaveFile(cfg.SnapshotPath); err != nil {
					log.Printf("[STORE] Periodic snapshot failed: %v", err)
				}
			case <-snapshotDone:
				return
			}
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	close(snapshotDone)
	srv.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := opsServer.Shutdown(ctx); err != nil {
		log.Printf("Ops server shutdown error: %v", err)
	}

	if err := st.SaveFile(cfg.SnapshotPath); err != nil {
		log.Fatalf("Final snapshot failed: %v", err)
	}
	log.Println("Server stopped")
}

// seedAdmin creates the configured administrator account on first start.
// The password hash comes from config because clients send pre-hashed
// passwords; the server never derives hashes itself.
func seedAdmin(st *store.Store, cfg *config.Config) {
	if cfg.AdminPassHash == "" {
		log.Println("[AUTH] No admin password hash configured, skipping admin bootstrap")
		return
	}
	err := st.CreateUser(models.User{
		Username:     cfg.AdminUsername,
		PasswordHash: cfg.AdminPassHash,
		Name:         cfg.AdminName,
		IsAdmin:      true,
	})
	if err != nil {
		log.Printf("[AUTH] Admin account %q already present", cfg.AdminUsername)
		return
	}
	log.Printf("[AUTH] Admin account %q created", cfg.AdminUsername)
}

// startOpsServer serves the read-only operational HTTP surface: a health
// check and the admin stats aggregate. It lives on its own port and is not
// part of the marketplace protocol.
func startOpsServer(addr string, st *store.Store) *http.Server {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Admin dashboards are browser clients hitting this from another origin.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"https://*", "http://*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         86400,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	})
	r.Get("/stats", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(st.AdminStats())
	})

	opsServer := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("[OPS] HTTP surface on %s", addr)
		if err := opsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Ops server failed: %v", err)
		}
	}()
	return opsServer
}
