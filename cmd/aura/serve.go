package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/KarinTingtingYang/Zodiac-Aura-Portrait-Generator/internal/config"
	"github.com/KarinTingtingYang/Zodiac-Aura-Portrait-Generator/internal/handler"
	"github.com/KarinTingtingYang/Zodiac-Aura-Portrait-Generator/internal/scheduler"
	"github.com/KarinTingtingYang/Zodiac-Aura-Portrait-Generator/internal/service"
	"github.com/KarinTingtingYang/Zodiac-Aura-Portrait-Generator/web"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the relay server and entry page",
	Long: `Serves the entry page on / and the relay API:

  POST /api/upload-image-to-imgbb   {imageData}        -> {imageUrl}
  POST /api/generate-aura           {prompt, imageUrl} -> {output: [dataURI]}
  POST /api/prompt                  {birthDate, gender, vibe}

Reads IMGBB_API_KEY, HUGGINGFACE_API_KEY and PORT (default 3000).`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	logger.Info("loading configuration")
	cfg, err := config.Load(envFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	for key, status := range cfg.CredentialStatus() {
		logger.Info("credential", zap.String("key", key), zap.String("status", status))
	}

	svc := service.NewAuraServiceFromConfig(cfg, logger.Named("relay"))
	h, err := handler.New(svc, handler.Options{
		Templates:    web.Templates,
		Static:       web.Static(),
		MaxBodyBytes: cfg.MaxBodyBytes,
		Logger:       logger.Named("http"),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize handlers: %w", err)
	}

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	reporter := scheduler.NewStatsReporter(cfg.StatsSchedule, svc.Stats(), logger.Named("stats"))

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("proxy server running", zap.String("addr", server.Addr),
			zap.String("url", fmt.Sprintf("http://localhost:%d", cfg.Port)))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return reporter.Run(ctx)
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
