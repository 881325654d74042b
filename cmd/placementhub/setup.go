package main

import (
	"context"
	"fmt"

	"placementhub/internal/cache"
	"placementhub/internal/db"
	"placementhub/internal/eth"
	"placementhub/internal/ipfs"
	"placementhub/internal/llm"
	"placementhub/internal/logger"
	"placementhub/internal/ocr"
	"placementhub/pkg"

	"go.uber.org/zap"
)

func openDatabase(migrate bool) error {
	if err := cfg.RequireDatabase(); err != nil {
		return err
	}
	if err := db.Init(cfg.DatabaseURL); err != nil {
		return err
	}
	if migrate {
		return db.Migrate()
	}
	return nil
}

// openCache switches the shared cache to Redis when one is configured.
func openCache(ctx context.Context) (func(), error) {
	if cfg.RedisURL == "" {
		logger.L.Warn("REDIS_URL not set, using in-process cache")
		return func() {}, nil
	}
	r, err := cache.NewRedis(ctx, cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	cache.Default = r
	return func() { _ = r.Close() }, nil
}

// wireIntegrations sets the optional external services. Each one left
// unconfigured disables only the features that need it.
func wireIntegrations(ctx context.Context) (func(), error) {
	if cfg.JWTSecret == "" {
		return nil, pkg.ErrNoSecret
	}
	pkg.Configure(cfg.JWTSecret, cfg.TokenTTL)
	pkg.ConfigureShare(cfg.ShareTokenSecret)

	if cfg.GeminiAPIKey != "" {
		llm.Default = llm.NewGemini(cfg.GeminiAPIKey, cfg.GeminiModel)
	} else {
		logger.L.Warn("GEMINI_API_KEY not set, using template text and pattern parsing")
	}
	if cfg.GoogleCredentialsFile != "" {
		ocr.Default = ocr.NewVision(cfg.GoogleCredentialsFile)
	} else {
		logger.L.Warn("GOOGLE_APPLICATION_CREDENTIALS not set, document verification disabled")
	}
	if cfg.PinataJWT != "" {
		ipfs.Default = ipfs.NewPinata(cfg.PinataJWT, cfg.PinataGateway)
	} else {
		logger.L.Warn("PINATA_JWT not set, certificates will not be pinned")
	}

	cleanup := func() {}
	if cfg.EthRPCURL != "" {
		rpc, err := eth.Dial(ctx, cfg.EthRPCURL)
		if err != nil {
			return nil, fmt.Errorf("dial ethereum rpc: %w", err)
		}
		eth.Default = rpc
		cleanup = rpc.Close
		logger.L.Info("ethereum rpc connected", zap.String("url", cfg.EthRPCURL))
	} else {
		logger.L.Warn("ETH_RPC_URL not set, anchoring transactions stay pending")
	}
	return cleanup, nil
}
