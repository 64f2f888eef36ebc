package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/ceylonsure/motor-risk/internal/core"
	transporthttp "github.com/ceylonsure/motor-risk/internal/http"
	"github.com/ceylonsure/motor-risk/internal/http/handlers"
	"github.com/ceylonsure/motor-risk/internal/http/health"
	"github.com/ceylonsure/motor-risk/internal/middleware"
	"github.com/ceylonsure/motor-risk/internal/model"
	"github.com/ceylonsure/motor-risk/internal/platform/config"
	"github.com/ceylonsure/motor-risk/internal/platform/logging"
	"github.com/ceylonsure/motor-risk/internal/store/dynamo"
	"github.com/ceylonsure/motor-risk/internal/store/mongo"
)

func main() {
	cfg := config.MustLoad()
	logger := logging.New(cfg.Env)
	addr := fmt.Sprintf(":%s", cfg.Port)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ---- Model artifacts: loaded once, immutable afterwards ----
	ebmBundle, err := model.LoadEBMBundle(cfg.EBMModelPath)
	if err != nil {
		log.Fatalf("load primary model: %v", err)
	}
	ngbBundle, err := model.LoadNGBoostBundle(cfg.NGBoostModelPath)
	if err != nil {
		log.Fatalf("load secondary model: %v", err)
	}
	primary := model.NewEBMAdapter(ebmBundle)
	secondary := model.NewNGBoostAdapter(ngbBundle)
	logger.Info("model artifacts loaded",
		"ebm_features", len(ebmBundle.Features),
		"ngboost_columns", len(ngbBundle.FeatureColumns),
		"ngboost_dist", ngbBundle.Dist)

	// ---- Stores: blacklist + assessment audit trail ----
	var (
		blacklist   core.Blacklist
		assessments core.AssessmentRepo
		pinger      health.Pinger
	)

	switch cfg.DBType {
	case "mongo":
		logger.Info("connecting to MongoDB", "db", cfg.MongoDB)
		client, err := mongo.NewClient(ctx, cfg, logger)
		if err != nil {
			log.Fatalf("connect to MongoDB: %v", err)
		}
		defer client.Close(context.Background())

		opTimeout := time.Duration(cfg.MongoOpTimeoutMs) * time.Millisecond
		if err := mongo.EnsureIndexes(ctx, client.DB); err != nil {
			log.Fatalf("ensure indexes: %v", err)
		}
		blacklist = mongo.NewBlacklistRepo(client.DB, opTimeout)
		assessments = mongo.NewAssessmentRepo(client.DB, opTimeout)
		pinger = client

	case "dynamodb":
		logger.Info("connecting to DynamoDB", "region", cfg.AWSRegion)
		client, err := dynamo.NewClient(ctx, cfg, logger)
		if err != nil {
			log.Fatalf("connect to DynamoDB: %v", err)
		}
		if err := dynamo.EnsureTables(ctx, client.DB, logger); err != nil {
			log.Fatalf("ensure tables: %v", err)
		}
		blacklist = dynamo.NewBlacklistRepo(client.DB)
		assessments = dynamo.NewAssessmentRepo(client.DB)
		pinger = client

	default: // memory
		logger.Info("using in-memory blacklist", "entries", len(cfg.BlacklistIDs))
		blacklist = core.NewMemoryBlacklist(cfg.BlacklistIDs)
		// No audit trail without a store.
	}

	// ---- Domain services ----
	escalation := core.EscalationConfig{
		EscalateThreshold: cfg.EscalateThreshold,
		HighThreshold:     cfg.HighThreshold,
		HighConfidenceBar: cfg.HighConfidenceBar,
		Policy:            core.ReconciliationPolicy(cfg.ReconciliationPolicy),
	}
	if err := escalation.Validate(); err != nil {
		log.Fatalf("escalation config: %v", err)
	}

	profile := core.DefaultPremiumProfile()
	profile.AdminFeeRate = cfg.AdminFeeRate
	profile.PolicyFee = cfg.PolicyFee
	profile.VATRate = cfg.VATRate

	evalSvc := core.NewEvaluationService(primary, secondary, blacklist, escalation, assessments)
	renewalSvc := core.NewRenewalService(secondary, profile)

	// ---- Router ----
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(time.Duration(cfg.HTTPRequestTimeoutSec) * time.Second))

	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.LimitRequestBody(middleware.MaxBodySize))

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPM, time.Minute)
	limiter.StartWithContext(ctx)
	r.Use(limiter.Middleware)
	r.Use(middleware.SimpleAPIKey(cfg.APIKey))

	r.Mount("/", health.New(logger, pinger, 2*time.Second))
	r.Mount("/v1", transporthttp.NewRouter(transporthttp.Deps{
		Mounts: []handlers.Mountable{
			handlers.NewEvaluationHandler(evalSvc, assessments, logger),
			handlers.NewPremiumHandler(profile, renewalSvc, logger),
			handlers.NewQuotationHandler(evalSvc, profile, logger),
		},
	}))

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTPReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTPWriteTimeoutSec) * time.Second,
		IdleTimeout:  time.Duration(cfg.HTTPIdleTimeoutSec) * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("server listening", "addr", addr, "env", cfg.Env, "db", cfg.DBType)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server failed: %v", err)
	}
	logger.Info("server stopped")
}
