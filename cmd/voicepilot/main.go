package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vietshop/voicepilot/internal/catalog"
	"github.com/vietshop/voicepilot/internal/config"
	"github.com/vietshop/voicepilot/internal/intent"
	"github.com/vietshop/voicepilot/internal/locale"
	"github.com/vietshop/voicepilot/internal/ui"
)

var (
	version     = "1.0.0"
	configPath  string
	dbPath      string
	localePath  string
	seedDemo    bool
	showVersion bool
)

func init() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	defaultConfigPath := filepath.Join(homeDir, ".voicepilot", "config.yaml")

	flag.StringVar(&configPath, "config", defaultConfigPath, "Path to configuration file")
	flag.StringVar(&dbPath, "db", "", "Path to catalog database (overrides config)")
	flag.StringVar(&localePath, "locale", "", "Path to locale YAML (overrides config)")
	flag.BoolVar(&seedDemo, "seed", false, "Seed demo catalog data when the database is empty")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
}

func main() {
	flag.Parse()

	if showVersion {
		fmt.Printf("VoicePilot v%s\n", version)
		fmt.Println("Vietnamese voice-command interpreter for small shops")
		return
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if dbPath == "" {
		dbPath = cfg.DBPath
	}
	if localePath == "" {
		localePath = cfg.LocalePath
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	loc := locale.Default()
	if localePath != "" {
		loc, err = locale.Load(localePath)
		if err != nil {
			logger.Fatal("failed to load locale", zap.String("path", localePath), zap.Error(err))
		}
	}

	store, err := catalog.Open(dbPath)
	if err != nil {
		logger.Fatal("failed to open catalog", zap.String("path", dbPath), zap.Error(err))
	}
	defer store.Close()

	if seedDemo {
		if err := store.Seed(); err != nil {
			logger.Fatal("failed to seed catalog", zap.Error(err))
		}
	}

	products, err := store.Products()
	if err != nil {
		logger.Fatal("failed to load products", zap.Error(err))
	}
	customers, err := store.Customers()
	if err != nil {
		logger.Fatal("failed to load customers", zap.Error(err))
	}

	engine := intent.NewEngine(loc, logger)
	engine.SetMinConfidence(cfg.Thresholds.MinConfidence)
	engine.SetThresholds(cfg.Thresholds.ProductMatch, cfg.Thresholds.CustomerMatch, cfg.Thresholds.Suggestion)
	engine.Reload(products, customers)

	logger.Info("catalog loaded",
		zap.Int("products", len(products)),
		zap.Int("customers", len(customers)),
	)

	repl := ui.NewREPL(engine, store)
	if err := repl.Start(); err != nil {
		logger.Fatal("repl failed", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if level != "" {
		var l zapcore.Level
		if err := l.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		cfg.Level = zap.NewAtomicLevelAt(l)
	}
	return cfg.Build()
}
