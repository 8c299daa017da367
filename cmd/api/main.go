package main

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"daraz_reviews/internal/adapters/daraz"
	server "daraz_reviews/internal/adapters/http_server"
	"daraz_reviews/internal/adapters/observability"
	redisad "daraz_reviews/internal/adapters/redis"
	"daraz_reviews/internal/adapters/sentiment"
	"daraz_reviews/internal/app"
	"daraz_reviews/internal/domain"
	"daraz_reviews/internal/shared"
	mysqlrepo "daraz_reviews/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, observability.MetricsHandler(reg))

	// classifier is built once and shared by every request
	clf, err := sentiment.New(cfg.SentimentBackend, cfg.OpenAIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("sentiment classifier init failed")
	}

	var cache domain.Cache
	if cfg.RedisAddr != "" && cfg.CacheTTL > 0 {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err := rc.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("redis unreachable; caching disabled")
		} else {
			cache = rc
			log.Info().Str("addr", cfg.RedisAddr).Int("ttl_seconds", cfg.CacheTTL).Msg("report cache enabled")
		}
	}

	var history domain.AnalysisRecorder
	if cfg.MySQLDSN != "" {
		db, err := mysqlrepo.Open(ctx, cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("mysql connect failed")
		}
		defer db.Close()
		history = mysqlrepo.New(db)
		log.Info().Msg("analysis history enabled")
	}

	src := daraz.New(cfg.DarazBase, cfg.DarazRPS, cfg.DarazTimeoutDuration(), cfg.DarazAttempts)
	svc := app.NewAnalysisService(
		app.NewReviewFetcher(src),
		app.NewReviewAnalyzer(clf),
		cache, cfg.CacheTTLDuration(),
		history,
	)

	// http
	srv := server.New()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{S: svc})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
