package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"

	"github.com/cindyylim/LanguageLearningApp-sub000/internal/profile"
	"github.com/cindyylim/LanguageLearningApp-sub000/plugin/genai"
	"github.com/cindyylim/LanguageLearningApp-sub000/plugin/genai/metrics"
	"github.com/cindyylim/LanguageLearningApp-sub000/server/generation"
	apiv1 "github.com/cindyylim/LanguageLearningApp-sub000/server/router/api/v1"
	"github.com/cindyylim/LanguageLearningApp-sub000/server/service/mastery"
	"github.com/cindyylim/LanguageLearningApp-sub000/server/service/quiz"
	"github.com/cindyylim/LanguageLearningApp-sub000/server/service/streak"
	"github.com/cindyylim/LanguageLearningApp-sub000/store"
	"github.com/cindyylim/LanguageLearningApp-sub000/store/db"
)

const version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "lingua",
	Short: "Language learning server with LLM-backed quiz generation",
	RunE: func(_ *cobra.Command, _ []string) error {
		logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
		slog.SetDefault(logger)

		instanceProfile, err := profile.Load(version)
		if err != nil {
			return fmt.Errorf("failed to load profile: %w", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		dbDriver, err := db.NewDBDriver(instanceProfile)
		if err != nil {
			return fmt.Errorf("failed to create db driver: %w", err)
		}
		if err := dbDriver.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		storeInstance := store.New(dbDriver, instanceProfile)
		defer storeInstance.Close()

		if !instanceProfile.IsAIEnabled() {
			return fmt.Errorf("no AI API key configured, set LINGUA_AI_API_KEY")
		}

		genClient, err := genai.NewClient(&genai.Config{
			LLM: genai.LLMConfig{
				APIKey:      instanceProfile.AIAPIKey,
				BaseURL:     instanceProfile.AIBaseURL,
				Model:       instanceProfile.AIModel,
				Temperature: instanceProfile.AITemperature,
			},
			FailureThreshold: instanceProfile.BreakerFailureThreshold,
			ResetTimeout:     instanceProfile.BreakerResetTimeout,
			Concurrency:      instanceProfile.QueueConcurrency,
			RateLimit:        instanceProfile.QueueRateLimit,
			RateInterval:     instanceProfile.QueueRateInterval,
			InitialDelay:     instanceProfile.RetryInitialDelay,
		}, metrics.NewAggregator(logger))
		if err != nil {
			return fmt.Errorf("failed to create generation client: %w", err)
		}
		defer genClient.Close()

		generator := generation.NewClient(genClient, logger)
		masteryEngine := mastery.NewEngine(storeInstance, logger)
		streakCalculator := streak.NewCalculator(storeInstance)
		quizService := quiz.NewService(storeInstance, generator, masteryEngine, streakCalculator, logger)

		e := echo.New()
		e.HideBanner = true
		e.HidePort = true
		e.Use(echomiddleware.Recover())
		apiv1.NewAPIV1Service(quizService, logger).RegisterRoutes(e)

		address := fmt.Sprintf("%s:%d", instanceProfile.Addr, instanceProfile.Port)
		go func() {
			logger.Info("server started",
				slog.String("address", address),
				slog.String("version", version),
				slog.String("mode", instanceProfile.Mode))
			if err := e.Start(address); err != nil && err != http.ErrServerClosed {
				logger.Error("server stopped", slog.String("error", err.Error()))
				stop()
			}
		}()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shut down server", slog.String("error", err.Error()))
		}
		logger.Info("server shut down")
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
