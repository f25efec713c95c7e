package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/kankodori/spotfinder/internal/config"
	dbRedis "github.com/kankodori/spotfinder/internal/db/redis"
	"github.com/kankodori/spotfinder/internal/domain"
	logpkg "github.com/kankodori/spotfinder/internal/logger"
	"github.com/kankodori/spotfinder/internal/metrics"
	"github.com/kankodori/spotfinder/internal/morph"
	catalogrepo "github.com/kankodori/spotfinder/internal/repository/catalog"
	embeddingrepo "github.com/kankodori/spotfinder/internal/repository/embedding"
	"github.com/kankodori/spotfinder/internal/repository/enccache"
	openaiEnc "github.com/kankodori/spotfinder/internal/transport/openai"
	searchuc "github.com/kankodori/spotfinder/internal/usecase/search"
	"github.com/kankodori/spotfinder/internal/version"
)

func main() {
	var (
		weight    = flag.Int("weight", 0, "image weight 0..100 (0=text only, 100=image only)")
		queryText = flag.String("text", searchuc.NullSentinel, "query text (\"null\" = none)")
		queryImg  = flag.String("image", searchuc.NullSentinel, "query image path (\"null\" = none)")
		timeout   = flag.Duration("timeout", 60*time.Second, "overall request timeout")
	)
	flag.Parse()

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting spotfinder search",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("weight", *weight),
	)

	metrics.RegisterEncoderMetrics()

	svc, cleanup, err := buildService(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to build search service", zap.Error(err))
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	ctx = logpkg.ContextWithLogger(ctx, logger)

	results, err := svc.Search(ctx, *weight, *queryText, *queryImg)
	if err != nil {
		logger.Fatal("Search failed", zap.Error(err))
	}

	logger.Info("Search complete", zap.Int("results", len(results)))

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		logger.Fatal("Failed to encode results", zap.Error(err))
	}
}

// buildService is the composition root: every collaborator is constructed
// here and injected; nothing below reaches for globals.
func buildService(cfg config.Config, logger *zap.Logger) (*searchuc.Service, func(), error) {
	cleanup := func() {}

	catalog := catalogrepo.New(cfg.Paths.Catalog)
	vectors := embeddingrepo.New(map[domain.Modality]string{
		domain.ModalityText:  cfg.Paths.TextVectors,
		domain.ModalityImage: cfg.Paths.ImageVectors,
	})

	encoder := openaiEnc.NewEncoder(&openaiEnc.Config{
		APIKey:     cfg.Encoder.APIKey,
		BaseURL:    cfg.Encoder.BaseURL,
		TextModel:  cfg.Encoder.TextModel,
		ImageModel: cfg.Encoder.ImageModel,
		Dimensions: cfg.Encoder.Dimensions,
		Provider:   cfg.Encoder.Provider,
		Logger:     logger,
	})

	var textEnc domain.TextEncoder = encoder
	if len(cfg.Cache.Addrs) > 0 {
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("create cache store: %w", err)
		}
		cleanup = store.Close
		ttl := time.Duration(cfg.Cache.TTLHours) * time.Hour
		textEnc = enccache.New(encoder, store, ttl, metrics.EncodeCacheTotal, logger)
		logger.Info("Encode cache enabled", zap.Strings("addrs", cfg.Cache.Addrs))
	}

	extractor, err := morph.New(cfg.Keywords.TargetPOS, cfg.Keywords.MinLength)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("create keyword extractor: %w", err)
	}

	svc := searchuc.New(catalog, vectors, textEnc, encoder, extractor).
		WithLimit(cfg.Search.MaxResults)

	if cfg.Generator.Enabled {
		svc = svc.WithGenerator(openaiEnc.NewGenerator(&openaiEnc.GeneratorConfig{
			APIKey:  cfg.Generator.APIKey,
			BaseURL: cfg.Generator.BaseURL,
			Model:   cfg.Generator.Model,
			OutDir:  cfg.Paths.QueryImageDir,
			Logger:  logger,
		}))
	}

	return svc, cleanup, nil
}
