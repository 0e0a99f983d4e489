package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/dfryer1193/gallery/gallery/application"
	"github.com/dfryer1193/gallery/gallery/domain"
	"github.com/dfryer1193/gallery/gallery/persistence"
	"github.com/dfryer1193/gallery/internal/config"
	"github.com/dfryer1193/gallery/internal/middleware"
	"github.com/dfryer1193/gallery/internal/rest"
	"github.com/dfryer1193/gallery/shared/db/sqlite"
	"github.com/dfryer1193/gallery/shared/huggingface"
	"github.com/dfryer1193/gallery/shared/storage"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	database := sqlite.NewSQLiteDB(sqlite.NewSQLiteConfig())
	if err := database.Connect(); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close()

	store, uploadsDir, err := buildStorage(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize storage")
	}

	tagger := huggingface.NewClient(cfg.HuggingFace.ModelURL, cfg.HuggingFace.Token)

	imageRepo := persistence.NewImageRepository(database.DB())
	galleryService := application.NewGalleryService(imageRepo, store, tagger)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(middleware.LoggingMiddleware())
	router.Use(gin.CustomRecovery(middleware.HandlePanics()))
	router.Use(middleware.CORS())

	rest.NewApi(router, rest.NewImagesHandler(galleryService), uploadsDir)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		log.Info().
			Str("port", cfg.Server.Port).
			Str("storage", cfg.Storage.Backend).
			Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	log.Info().Msg("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to shutdown server")
	}

	log.Info().Msg("Server stopped")
}

// buildStorage selects the storage backend from config. The returned
// uploadsDir is non-empty only for local-disk storage, where the server
// itself serves the stored bytes.
func buildStorage(cfg *config.Config) (domain.Storage, string, error) {
	switch cfg.Storage.Backend {
	case config.StorageBackendLocal:
		local, err := storage.NewLocalDisk(cfg.Storage.UploadDir, cfg.Storage.PublicBaseURL)
		if err != nil {
			return nil, "", err
		}
		return local, local.Dir(), nil

	case config.StorageBackendS3:
		s3Store, err := storage.NewS3(context.Background(), storage.S3Options{
			Endpoint:        cfg.S3.Endpoint,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			Bucket:          cfg.S3.BucketName,
			Region:          cfg.S3.Region,
		})
		if err != nil {
			return nil, "", err
		}
		return s3Store, "", nil

	default:
		return nil, "", fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
