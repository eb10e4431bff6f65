// README: Entry point; loads config, wires providers and stores, starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"wayfarer/internal/ai"
	"wayfarer/internal/config"
	httptransport "wayfarer/internal/http"
	"wayfarer/internal/http/middleware"
	"wayfarer/internal/maps"
	"wayfarer/internal/session"
	"wayfarer/internal/trip"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry, err := ai.NewRegistry(ctx, cfg)
	if err != nil {
		log.Fatalf("provider init: %v", err)
	}
	defer registry.Close()

	var routes *maps.RouteService
	if cfg.Maps.APIKey != "" {
		routes, err = maps.NewRouteService(cfg.Maps.APIKey)
		if err != nil {
			log.Fatalf("maps init: %v", err)
		}
	} else {
		log.Println("MAPS_API_KEY not set; waypoints keep user order")
	}

	ttl := time.Duration(cfg.Session.TTLMinutes) * time.Minute
	var store session.Store
	if cfg.Redis.Addr != "" {
		store = session.NewRedisStore(cfg.Redis.Addr, ttl)
	} else {
		memStore := session.NewMemoryStore(ttl)
		go memStore.RunSweeper(ctx)
		store = memStore
	}

	planner := trip.NewPlanner(registry, routes)
	sessions := session.NewService(store)
	limiter := middleware.NewRateLimiter(cfg.Rate.RPS, cfg.Rate.Burst)

	server := httptransport.NewServer(httptransport.ServerDeps{
		Planner:  planner,
		Sessions: sessions,
		Limiter:  limiter,
	})

	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(server.Routes())

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		// No WriteTimeout: generation streams legitimately run for minutes.
		IdleTimeout: 120 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("listening on %s", cfg.HTTP.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
