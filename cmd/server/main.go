package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hersh/blockfall/internal/game"
	"github.com/hersh/blockfall/internal/server"
)

const defaultPort = "8080"

func main() {
	baseRate := flag.Int("base-rate", game.DefaultBaseRate, "gravity ticks per second before the level is added")
	flag.Parse()

	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}

	cfg := game.DefaultConfig()
	cfg.BaseRate = *baseRate
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	srv := server.New(cfg)
	httpServer := &http.Server{
		Addr:    ":" + port,
		Handler: srv.Handler(),
	}
	httpServer.RegisterOnShutdown(srv.Close)

	log.Printf("Blockfall server starting on :%s", port)
	log.Printf("WebSocket endpoint: ws://localhost:%s/ws", port)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-done
	log.Printf("Server shutting down (%d players connected)...", srv.Players().Count())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
