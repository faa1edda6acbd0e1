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

	"github.com/gin-gonic/gin"

	"MapVideo-App/internal/application"
	"MapVideo-App/internal/config"
	"MapVideo-App/internal/domain/repository"
	"MapVideo-App/internal/domain/service"
	"MapVideo-App/internal/handler"
	repoImpl "MapVideo-App/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("設定の読み込みに失敗: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("Initializing %s restaurant backend...", cfg.Backend)
	restaurantsRepo, cleanup, err := newRestaurantsRepository(ctx, cfg)
	if err != nil {
		log.Fatalf("バックエンド初期化失敗: %v", err)
	}
	defer cleanup()
	log.Printf("✅ %s backend ready", cfg.Backend)

	restaurantQuery := service.NewRestaurantQuery(restaurantsRepo, cfg.QueryTimeout, cfg.ResultLimit)

	var customLocations repository.CustomLocationsRepository
	if cfg.CustomLocationsEnabled {
		locations := repoImpl.DefaultCustomLocations()
		if cfg.CustomLocationsFile != "" {
			locations, err = repoImpl.LoadCustomLocationsFile(cfg.CustomLocationsFile)
			if err != nil {
				log.Fatalf("カスタム地点の読み込みに失敗: %v", err)
			}
		}
		customLocations = repoImpl.NewCustomLocationStore(locations)
		log.Printf("📍 %d custom locations enabled", len(locations))
	}

	sessionService := application.NewMapSessionService(restaurantQuery, application.MapSessionOptions{
		CustomLocations: customLocations,
		SessionTTL:      cfg.SessionTTL,
	})
	go application.RunJanitor(ctx, sessionService, time.Minute)

	gin.SetMode(gin.ReleaseMode)
	router := handler.NewRouter(
		handler.NewMapSessionHandler(sessionService, cfg.Map),
		handler.NewRestaurantsHandler(sessionService),
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("MapVideo-App server starting on :%s...", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
