// Command thunee-sim plays batches of four-bot Thunee matches and
// optionally archives the results to SQLite.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/JustABard/thunee/engine"
	"github.com/JustABard/thunee/internal/history"
	"github.com/JustABard/thunee/internal/sim"
)

func main() {
	_ = godotenv.Load()

	var (
		seed     = flag.Uint64("seed", envUint64("THUNEE_SEED", uint64(time.Now().UnixNano())), "base RNG seed; match i uses seed+i")
		matches  = flag.Int("matches", envInt("THUNEE_MATCHES", 1), "number of matches to play")
		target   = flag.Int("target", 0, "ball target per match (0 = house default)")
		dbPath   = flag.String("db", os.Getenv("THUNEE_DB"), "SQLite archive path (empty = no archive)")
		logLevel = flag.String("log-level", envStr("THUNEE_LOG_LEVEL", "info"), "logrus level: debug, info, warn, error")

		royals      = flag.Bool("royals", true, "allow Royals calls")
		blind       = flag.Bool("blind", true, "allow blind Thunee/Royals calls")
		jodi        = flag.Bool("jodi", true, "allow Jodi calls")
		double      = flag.Bool("double", true, "allow Double calls")
		kunuck      = flag.Bool("kunuck", true, "allow Kunuck calls")
		callAndLoss = flag.Bool("call-and-loss", false, "score Call-and-Loss rounds")
	)
	flag.Parse()

	logger := logrus.New()
	lvl, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		logger.Fatalf("bad log level %q: %v", *logLevel, err)
	}
	logger.SetLevel(lvl)

	cfg := engine.DefaultGameConfig()
	if *target > 0 {
		cfg.MatchTarget = *target
	}
	cfg.EnableRoyals = *royals
	cfg.EnableBlindThunee = *blind
	cfg.EnableBlindRoyals = *blind
	cfg.EnableJodi = *jodi
	cfg.EnableDouble = *double
	cfg.EnableKunuck = *kunuck
	cfg.EnableCallAndLoss = *callAndLoss

	var store *history.Store
	if *dbPath != "" {
		store, err = history.Open(*dbPath, logger)
		if err != nil {
			logger.Fatalf("open archive: %v", err)
		}
		defer store.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var wins [2]int
	played := 0
	start := time.Now()
	for i := 0; i < *matches; i++ {
		res, err := sim.NewRunner(cfg, *seed+uint64(i), logger).RunMatch(ctx)
		if err != nil {
			if ctx.Err() != nil {
				logger.Warn("interrupted, stopping batch")
				break
			}
			logger.Fatalf("match %d: %v", i, err)
		}
		wins[res.WinningTeam]++
		played++
		if store != nil {
			if err := store.SaveResult(ctx, res); err != nil {
				logger.Fatalf("archive match %d: %v", i, err)
			}
		}
	}

	logger.WithFields(logrus.Fields{
		"matches": played,
		"wins":    fmt.Sprintf("%d-%d", wins[0], wins[1]),
		"elapsed": time.Since(start).Round(time.Millisecond),
	}).Info("batch complete")

	if store != nil {
		sum, err := store.Summarize(ctx)
		if err != nil {
			logger.Fatalf("summarize archive: %v", err)
		}
		logger.WithFields(logrus.Fields{
			"archived": sum.Matches,
			"wins":     fmt.Sprintf("%d-%d", sum.TeamWins[0], sum.TeamWins[1]),
			"redeals":  sum.Redeals,
		}).Info("archive summary")
	}
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envUint64(key string, def uint64) uint64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}
