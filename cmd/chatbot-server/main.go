// cmd/chatbot-server/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"weatherchat/internal/common/cache"
	"weatherchat/internal/common/config"
	"weatherchat/internal/common/logger"
	"weatherchat/internal/geo"
	"weatherchat/internal/intent"
	"weatherchat/internal/orchestrator"
	"weatherchat/internal/providers/openmeteo"
	"weatherchat/internal/server"
	"weatherchat/internal/weather"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Logger config lives in the config we failed to load; use a
		// default logger for this one message.
		logger.New("info", "console").Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	log.Info("starting chatbot server", map[string]interface{}{
		"name":        cfg.App.Name,
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	})

	ctx := context.Background()

	// --- Cache: Redis when configured, in-process fallback otherwise ---
	var store cache.Cache
	if cfg.Cache.Enabled {
		store, err = cache.NewRedis(ctx, cfg.Cache)
		if err != nil {
			log.Warn("redis unreachable, using in-process cache", map[string]interface{}{
				"address": cfg.Cache.Address,
				"error":   err.Error(),
			})
			store = cache.NewMemory()
		}
	} else {
		store = cache.NewMemory()
	}

	// --- Intent model: loaded once, read-only for the process lifetime.
	// Absence is not fatal: the rule matcher covers classification. ---
	model, err := intent.LoadModel(cfg.Pipeline.ModelPath)
	if err != nil {
		log.Warn("intent model unavailable, rule fallback active", map[string]interface{}{
			"path":  cfg.Pipeline.ModelPath,
			"error": err.Error(),
		})
		model = nil
	} else {
		log.Info("intent model loaded", map[string]interface{}{
			"path":      cfg.Pipeline.ModelPath,
			"labels":    len(model.Labels),
			"vocabSize": model.VocabSize,
		})
	}

	classifier := intent.NewClassifier(model, cfg.Pipeline.ConfidenceThreshold, log)

	geocoder := openmeteo.NewGeocodeClient(cfg.Providers.Geocoding, store, cfg.Cache.TTL(), log)
	provider := openmeteo.NewForecastClient(cfg.Providers.Forecast, store, cfg.Cache.TTL(), log)

	resolver := geo.NewResolver(geocoder, log)
	fetcher := weather.NewFetcher(provider, log)

	orch := orchestrator.New(classifier, resolver, fetcher, log)
	srv := server.New(orch, log)

	httpServer := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      srv.Handler(),
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}

	go func() {
		log.Info("listening", map[string]interface{}{"address": cfg.Server.Address})
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	log.Info("shutting down", map[string]interface{}{"signal": sig.String()})

	shutdownCtx, cancel := context.WithTimeout(ctx, config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown failed", map[string]interface{}{"error": err.Error()})
	}
}
