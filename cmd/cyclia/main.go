package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/terraincognita07/cyclia/internal/api"
	"github.com/terraincognita07/cyclia/internal/config"
	"github.com/terraincognita07/cyclia/internal/models"
	"github.com/terraincognita07/cyclia/internal/persistence"
	"github.com/terraincognita07/cyclia/internal/services"
	"github.com/terraincognita07/cyclia/internal/store"
)

func main() {
	cmd := &cli.Command{
		Name:  "cyclia",
		Usage: "Personal fertility-tracking calendar service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
				Value:   "config.yaml",
				Sources: cli.EnvVars("CYCLIA_CONFIG"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the calendar HTTP API",
				Action: runServe,
			},
			{
				Name:  "import-legacy",
				Usage: "One-time import of the old start+duration period records",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Usage:    "Path to the legacy JSON array",
						Required: true,
					},
				},
				Action: runImportLegacy,
			},
			{
				Name:  "export",
				Usage: "Print the current snapshot as JSON",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "out",
						Usage: "Write to a file instead of stdout",
					},
				},
				Action: runExport,
			},
			{
				Name:      "hash-passphrase",
				Usage:     "Generate a bcrypt hash for the app-lock passphrase",
				ArgsUsage: "<passphrase>",
				Action:    runHashPassphrase,
			},
		},
		Action: runServe,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "cyclia: %v\n", err)
		os.Exit(1)
	}
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("logger init failed: %w", err)
	}
	defer logger.Sync()

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Warn("invalid timezone, falling back to UTC", zap.String("timezone", cfg.Timezone))
		location = time.UTC
	}
	time.Local = location

	dataStore, port, err := openStore(cfg)
	if err != nil {
		return err
	}

	handler := api.NewHandler(dataStore, port, cfg, logger)

	app := fiber.New(fiber.Config{
		AppName:               "Cyclia",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(compress.New())
	api.RegisterRoutes(app, handler)

	sigCtx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("cyclia listening",
		zap.String("port", cfg.Server.Port),
		zap.String("backend", cfg.Storage.Backend),
		zap.String("path", cfg.Storage.Path),
		zap.Bool("lock", cfg.Lock.Enabled()),
	)
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

func runImportLegacy(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(cmd.String("file"))
	if err != nil {
		return fmt.Errorf("read legacy file: %w", err)
	}
	var records []models.LegacyPeriod
	if err := json.Unmarshal(raw, &records); err != nil {
		return fmt.Errorf("parse legacy file: %w", err)
	}

	dataStore, port, err := openStore(cfg)
	if err != nil {
		return err
	}

	report, err := dataStore.MigrateLegacy(records)
	if err != nil {
		return fmt.Errorf("migrate legacy records: %w", err)
	}
	if report.Imported > 0 {
		if err := port.Save(dataStore.Snapshot()); err != nil {
			return fmt.Errorf("save migrated snapshot: %w", err)
		}
	}

	fmt.Printf("imported %d day(s), skipped %d existing day(s)\n", report.Imported, report.Skipped)
	return nil
}

func runExport(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}

	dataStore, _, err := openStore(cfg)
	if err != nil {
		return err
	}

	encoded, err := json.MarshalIndent(dataStore.Snapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	if out := cmd.String("out"); out != "" {
		if err := os.WriteFile(out, encoded, 0o644); err != nil {
			return fmt.Errorf("write export file: %w", err)
		}
		return nil
	}
	fmt.Println(string(encoded))
	return nil
}

func runHashPassphrase(ctx context.Context, cmd *cli.Command) error {
	passphrase := cmd.Args().First()
	if passphrase == "" {
		return fmt.Errorf("passphrase argument is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(passphrase), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash passphrase: %w", err)
	}
	fmt.Println(string(hash))
	return nil
}

func openStore(cfg *config.Config) (*store.DataStore, persistence.Port, error) {
	defaults := models.Settings{
		CycleLength: cfg.Defaults.CycleLength,
		LutealPhase: cfg.Defaults.LutealPhase,
		Theme:       cfg.Defaults.Theme,
	}
	port, err := persistence.OpenBackend(cfg.Storage.Backend, cfg.Storage.Path, defaults)
	if err != nil {
		return nil, nil, err
	}

	snapshot, err := port.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load snapshot: %w", err)
	}

	average := services.AverageStrategyByName(cfg.Prediction.Average)
	return store.New(snapshot, average), port, nil
}
