package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"demo/marketplace/internal/config"
	"demo/marketplace/internal/gen"
	"demo/marketplace/internal/logger"
)

func main() {
	gen.SeedOnce()

	cfg, err := config.Load("", ".")
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	glob := env("DATA_GLOB", "data/*.json")
	zapLogger.Info("producer starting",
		zap.Strings("brokers", cfg.Kafka.Brokers),
		zap.String("topic", cfg.Kafka.Topic),
		zap.String("glob", glob))

	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Kafka.Brokers...),
		Topic:        cfg.Kafka.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
	}
	defer func() {
		if err := w.Close(); err != nil {
			zapLogger.Warn("close writer", zap.Error(err))
		}
	}()

	paths, err := filepath.Glob(glob)
	if err != nil {
		zapLogger.Fatal("bad glob", zap.String("glob", glob), zap.Error(err))
	}

	ctx := context.Background()

	// no files: generate GEN_COUNT orders instead
	if len(paths) == 0 {
		n := mustInt("1", os.Getenv("GEN_COUNT"))
		gap := mustInt("0", os.Getenv("GEN_INTERVAL_MS"))
		for i := 0; i < n; i++ {
			o := gen.FakeOrder(cfg.Contracts.NFT)
			if _, err := gen.SendOrder(ctx, w, o, "generated"); err != nil {
				zapLogger.Fatal("produce", zap.Error(err))
			}
			zapLogger.Debug("produced", zap.String("orderHash", o.OrderHash))
			if gap > 0 {
				time.Sleep(time.Duration(gap) * time.Millisecond)
			}
		}
		zapLogger.Info("produced generated messages", zap.Int("count", n))
		return
	}

	total := 0
	for _, p := range paths {
		n, err := produceFile(ctx, w, p)
		if err != nil {
			zapLogger.Warn("file skipped", zap.String("path", p), zap.Error(err))
		}
		total += n
	}
	zapLogger.Info("done", zap.Int("produced", total), zap.Int("files", len(paths)))
}

// produceFile sends a JSON object, or each element of a JSON array, as one
// submission keyed by its orderHash.
func produceFile(ctx context.Context, w *kafka.Writer, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()

	b, err := io.ReadAll(f)
	if err != nil {
		return 0, fmt.Errorf("read: %w", err)
	}

	source := filepath.Base(path)
	var one map[string]json.RawMessage
	if err := json.Unmarshal(b, &one); err == nil && len(one) > 0 {
		return gen.SendRaw(ctx, w, orderHashOf(one), b, source)
	}

	var many []map[string]json.RawMessage
	if err := json.Unmarshal(b, &many); err == nil && len(many) > 0 {
		sum := 0
		for _, obj := range many {
			val, err := json.Marshal(obj)
			if err != nil {
				continue
			}
			n, err := gen.SendRaw(ctx, w, orderHashOf(obj), val, source)
			if err != nil {
				return sum, err
			}
			sum += n
		}
		return sum, nil
	}
	return 0, fmt.Errorf("invalid JSON in %s: must be object or array of objects", path)
}

func orderHashOf(obj map[string]json.RawMessage) string {
	var hash string
	_ = json.Unmarshal(obj["orderHash"], &hash)
	return hash
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func mustInt(def string, s string) int {
	if s == "" {
		s = def
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
