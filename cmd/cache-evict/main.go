package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Gunvolt24/logistics/config"
	"github.com/Gunvolt24/logistics/internal/app"
	"github.com/Gunvolt24/logistics/internal/cachekeys"
	cacheredis "github.com/Gunvolt24/logistics/internal/cache/redis"
	"github.com/Gunvolt24/logistics/pkg/logger"
	"github.com/joho/godotenv"
)

// CLI для сброса ключей общего кэша по glob-шаблону (по умолчанию — все трек-номера).
func main() {
	pattern := flag.String("pattern", cachekeys.TrackingPattern(), "glob pattern of cache keys to delete")
	timeout := flag.Duration("timeout", 30*time.Second, "overall timeout")
	flag.Parse()

	_ = godotenv.Load(".env.local")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logg, cleanup, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = cleanup() }()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	client, err := cacheredis.NewClient(ctx, app.RedisOptions(&cfg.Redis))
	if err != nil {
		fmt.Fprintf(os.Stderr, "redis: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = client.Close() }()

	store := cacheredis.NewStore(client, cfg.Cache.DefaultTTL, logg)
	n, err := store.DeleteMatching(ctx, *pattern)
	if err != nil {
		fmt.Fprintf(os.Stderr, "evict %q: %v (deleted %d)\n", *pattern, err, n)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, "evicted %d keys matching %q\n", n, *pattern)
}
