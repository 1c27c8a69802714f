package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/pharmalytics/nexus-go/internal/config"
	"github.com/pharmalytics/nexus-go/internal/handler"
	"github.com/pharmalytics/nexus-go/internal/middleware"
	"github.com/pharmalytics/nexus-go/internal/repository"
	"github.com/pharmalytics/nexus-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := repository.NewDB(cfg.DatabaseDSN)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	userRepo := repository.NewUserRepository(db)
	drugRepo := repository.NewDrugRepository(db)
	checkRepo := repository.NewCheckRepository(db)
	analysisRepo := repository.NewAnalysisRepository(db)
	datasetRepo := repository.NewDatasetRepository(db)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiry)
	drugService := service.NewDrugService(drugRepo, checkRepo)
	analysisService := service.NewAnalysisService(analysisRepo, drugRepo)
	datasetService := service.NewDatasetService(drugRepo, datasetRepo)

	authHandler := handler.NewAuthHandler(authService)
	drugHandler := handler.NewDrugHandler(drugService)
	analysisHandler := handler.NewAnalysisHandler(analysisService)
	datasetHandler := handler.NewDatasetHandler(datasetService)

	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.AuthRateRPS, cfg.AuthRateBurst))
		r.Post("/api/v1/auth/register/", authHandler.HandleRegister)
		r.Post("/api/v1/auth/login/", authHandler.HandleLogin)
	})

	r.Get("/api/v1/drugs/", drugHandler.HandleListDrugs)
	r.Get("/api/v1/drugs/search/", drugHandler.HandleSearch)
	r.Get("/api/v1/drugs/{drug_id}/", drugHandler.HandleGetDrug)

	r.Group(func(r chi.Router) {
		r.Use(middleware.TokenAuth(cfg.JWTSecret))
		r.Get("/api/v1/auth/profile/", authHandler.HandleProfile)

		r.Post("/api/v1/drugs/check-interactions/", drugHandler.HandleCheckInteractions)
		r.Get("/api/v1/drugs/interaction-history/", drugHandler.HandleHistory)

		r.Post("/api/v1/ai/analyze-interaction/", analysisHandler.HandleAnalyzeInteraction)
		r.Post("/api/v1/ai/dosage-recommendation/", analysisHandler.HandleDosageRecommendation)
		r.Post("/api/v1/ai/analyze-side-effects/", analysisHandler.HandleSideEffects)
		r.Post("/api/v1/ai/extract-from-text/", analysisHandler.HandleExtractFromText)

		r.Get("/api/v1/datasets/import-status/", datasetHandler.HandleImportStatus)
		r.Post("/api/v1/datasets/start-import/", datasetHandler.HandleStartImport)
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
