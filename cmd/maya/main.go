package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/bizwise/maya/internal/ai"
	"github.com/bizwise/maya/internal/bot"
	"github.com/bizwise/maya/internal/config"
	"github.com/bizwise/maya/internal/store"
	"github.com/bizwise/maya/internal/whatsapp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := store.NewBoltStore(cfg.DataDir + "/maya.db")
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer db.Close()

	if cfg.SeedFile != "" {
		n, err := store.LoadSeed(db, cfg.SeedFile)
		if err != nil {
			log.Fatalf("seed: %v", err)
		}
		log.Printf("maya: seeded %d businesses from %s", n, cfg.SeedFile)
	}

	messenger := whatsapp.NewMessenger(whatsapp.Config{
		BaseURL:       cfg.WAAPIBaseURL,
		AccessToken:   cfg.WAAccessToken,
		FromNumber:    cfg.WAFromNumber,
		DefaultLocale: cfg.DefaultLocale,
	})
	if cfg.WAAccessToken == "" {
		log.Println("maya: WA_ACCESS_TOKEN not set, outbound messages will be mocked")
	}

	completer := ai.NewClient(ai.Config{
		DefaultAPIKey: cfg.OpenAIAPIKey,
		Model:         cfg.OpenAIModel,
	}, db)

	handler := bot.NewHandler(db, completer, messenger)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	bot.RegisterRoutes(r, handler)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("maya: listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("maya: shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("shutdown: %v", err)
	}
	log.Println("maya: stopped")
}
