package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"confluo/internal/config"
	"confluo/internal/confluence"
	"confluo/internal/transport"
	"confluo/pkg/cache"
	"confluo/pkg/logging"
)

// warnToStderr surfaces deprecation warnings from the legacy variant.
func warnToStderr(w confluence.Warning) {
	fmt.Fprintf(os.Stderr, "warning: %s: %s\n", w.Op, w.Message)
}

// newContentService is a package-level variable to allow test injection of a
// mock. Production code builds the variant the config selects.
var newContentService = func(cfg *config.Config) confluence.ContentService {
	logger := logging.NewLogger("confluence")
	if cfg.UseLegacy() {
		rpc := transport.NewRPCClient(cfg.Legacy.URL, 30*time.Second, logging.NewLogger("rpc"))
		return confluence.NewService(confluence.Options{
			RPC:      rpc,
			Token:    cfg.Legacy.Token,
			Warnings: warnToStderr,
			Logger:   logger,
		})
	}

	fetcher := transport.NewClient(
		cfg.Confluence.BaseURL,
		cfg.Confluence.Username,
		cfg.Confluence.APIToken,
		30*time.Second,
		logging.NewLogger("transport"),
	)
	return confluence.NewService(confluence.Options{Transport: fetcher, Logger: logger})
}

// newCache is a package-level variable for the same reason. Redis when
// configured, in-process memory otherwise.
var newCache = func(cfg *config.Config) cache.Cache {
	if cfg.Cache.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.Cache.RedisAddr})
		return cache.NewRedis(client, cfg.Cache.KeyPrefix)
	}
	return cache.NewMemory()
}
