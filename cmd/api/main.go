package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	appreports "maintreport/internal/application/reports"
	"maintreport/internal/config"
	domai "maintreport/internal/domain/ai"
	domain "maintreport/internal/domain/reports"
	"maintreport/internal/infra/ai/gemini"
	"maintreport/internal/infra/ai/hf"
	aiopenai "maintreport/internal/infra/ai/openai"
	"maintreport/internal/infra/ai/prompt"
	"maintreport/internal/infra/excel"
	"maintreport/internal/infra/httpserver"
	minioStore "maintreport/internal/infra/storage"
	"maintreport/internal/middleware"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	// load config
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx := context.Background()

	token, err := cfg.GeneratorToken()
	if err != nil {
		log.Fatalf("generator credential error: %v", err)
	}

	// init generator backend
	generator, err := buildGenerator(ctx, cfg, token)
	if err != nil {
		log.Fatalf("generator init error: %v", err)
	}

	// init report log
	store := excel.NewStore(cfg.Log.Path)

	// init archive (optional)
	var archiver domain.Archiver
	if cfg.Archive.Enabled {
		archiver, err = minioStore.New(ctx,
			cfg.Archive.Endpoint,
			cfg.Archive.Region,
			cfg.Archive.BucketName,
			cfg.Archive.AccessKey,
			cfg.Archive.SecretKey,
			cfg.Archive.UseSSL,
		)
		if err != nil {
			log.Fatalf("archive init error: %v", err)
		}
	}

	// init service
	svc := &appreports.Service{
		Log:       store,
		Generator: generator,
		Archiver:  archiver,
		Clock:     appreports.SystemClock{},
		Params: domai.GenerateParams{
			MaxNewTokens:   cfg.Generator.MaxNewTokens,
			Temperature:    cfg.Generator.Temperature,
			ReturnFullText: cfg.Generator.ReturnFullText,
		},
		Prompt: prompt.BuildReportPrompt,
	}

	// init router
	mux := chi.NewRouter()
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"Content-Type"},
	}))
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.RateLimitMiddleware(10, 5))
	mux.Mount("/", httpserver.NewRouter(svc))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		log.Printf("server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

func buildGenerator(ctx context.Context, cfg *config.Config, token string) (domai.TextGenerator, error) {
	switch cfg.Generator.Backend {
	case "openai":
		return aiopenai.NewClient(token, cfg.Generator.Model), nil
	case "gemini":
		return gemini.NewClient(ctx, token, cfg.Generator.Model)
	case "hf":
		if cfg.Generator.Endpoint == "" {
			return nil, fmt.Errorf("generator.endpoint is required for the hf backend")
		}
		return hf.NewClient(cfg.Generator.Endpoint, token), nil
	default:
		return nil, fmt.Errorf("unknown generator backend: %s", cfg.Generator.Backend)
	}
}
