// jobboard-web
//
// Serves the job board: HTML landing and listing pages, a JSON API, CSV
// export, and a gRPC health service on GRPC_PORT.
//
// Without DATABASE_URL or SQLITE_PATH the server still starts, but every
// listing route answers 503 and gRPC health reports NOT_SERVING.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ldexchange/jobboard/internal/config"
	"ldexchange/jobboard/internal/db"
	"ldexchange/jobboard/internal/grpcserver"
	"ldexchange/jobboard/internal/store"
	"ldexchange/jobboard/internal/view"
	"ldexchange/jobboard/internal/web"
)

func main() {
	// ── Config ──────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[web] Config error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ── Store ───────────────────────────────────────────────────────────────
	var st store.Store
	opened, err := store.Open(ctx, cfg.DatabaseURL, cfg.SQLitePath)
	switch {
	case errors.Is(err, store.ErrUnavailable):
		log.Printf("[web] %v; serving 503 for job routes", err)
	case err != nil:
		log.Fatalf("[web] Store: %v", err)
	default:
		st = opened
		defer st.Close()
		log.Println("[web] Store ready ✓")
	}

	// ── Snapshot cache ──────────────────────────────────────────────────────
	var cache view.Cache = view.NewMemoryCache(view.DefaultTTL)
	if cfg.RedisURL != "" {
		rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Printf("[web] Redis unavailable, using in-process cache: %v", err)
		} else {
			defer rdb.Close()
			cache = view.NewRedisCache(rdb, view.SnapshotKey, view.DefaultTTL)
			log.Println("[web] Redis connected ✓")
		}
	}

	var (
		querier store.Querier
		pinger  web.Pinger
		health  grpcserver.Pinger
	)
	if st != nil {
		querier, pinger, health = st, st, st
	}
	svc := view.NewService(querier, cache)

	// ── gRPC health ─────────────────────────────────────────────────────────
	gs := grpcserver.NewServer(health)
	lis, err := net.Listen("tcp", fmt.Sprintf(":%s", cfg.GRPCPort))
	if err != nil {
		log.Fatalf("[web] gRPC listen: %v", err)
	}
	go gs.Watch(ctx, 30*time.Second)
	go func() {
		log.Printf("[web] gRPC health listening on :%s", cfg.GRPCPort)
		if err := gs.GRPC().Serve(lis); err != nil {
			log.Printf("[web] gRPC server error: %v", err)
		}
	}()

	// ── HTTP server ─────────────────────────────────────────────────────────
	mux := http.NewServeMux()
	web.NewHandler(svc, pinger).RegisterRoutes(mux)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.WebPort),
		Handler:      web.Middleware(mux, os.Stdout),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Printf("[web] v%s listening on :%s", web.Version, cfg.WebPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[web] HTTP server error: %v", err)
		}
	}()

	// ── Graceful shutdown ───────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[web] Shutting down…")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[web] Shutdown error: %v", err)
	}
	gs.Shutdown()
	log.Println("[web] Stopped.")
}
