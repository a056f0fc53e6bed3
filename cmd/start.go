package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"aadhaar-records/core/config"
	"aadhaar-records/core/loader"
	"aadhaar-records/core/logger"
	"aadhaar-records/core/metrics"
	"aadhaar-records/core/middleware/auth"
	"aadhaar-records/core/middleware/rayid"
	"aadhaar-records/core/pipeline"
	"aadhaar-records/core/storage"
	"aadhaar-records/feature/analytics"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "aadhaar-records/docs/swagger"
)

// @title Aadhaar Analytics API
// @version 1.0
// @description Read-only analytics over reconciled Aadhaar enrolment records.
// @host localhost:8000
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the analytics server",
	Long:  `Loads the processed records artifact and serves the analytics API.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Resolve the artifact source and load it
		m := metrics.New()
		source, err := artifactSource(cfg)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}

		store := analytics.NewStore(source, logg, m)
		if _, err := store.Reload(context.Background()); err != nil {
			logg.Warn("Serving empty data set", zap.Error(err))
		}

		// 4. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		// 5. Initialize Feature Loader
		mgr := loader.NewManager()
		mgr.Register(analytics.NewFeature(store, logg, cfg.Server.SearchLimit))

		// RayID first so every log line can be traced.
		app.Use(rayid.New())
		app.Use(cors.New(cors.Config{
			AllowOrigins: strings.Join(cfg.Server.Origins(), ","),
			AllowMethods: "GET,POST,OPTIONS",
			AllowHeaders: "*",
		}))
		app.Use(m.Middleware())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Public endpoints
		app.Get("/swagger/*", swagger.HandlerDefault)
		app.Get("/metrics", m.Handler())

		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey, Skip: []string{"/"}}))

		// 6. Load Features
		loaded, err := mgr.LoadAll(app)
		if err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}
		logg.Info("Features loaded", zap.Strings("features", loaded))

		// 7. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 8. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

// artifactSource picks where the server reads the processed records from.
func artifactSource(cfg *config.Config) (analytics.Source, error) {
	if cfg.Pipeline.Source != pipeline.SourceStorage {
		return analytics.FileSource{Path: cfg.Pipeline.OutputFile}, nil
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, err
	}
	return analytics.StorageSource{
		Client: client,
		Bucket: cfg.Storage.Bucket,
		Object: cfg.Pipeline.ObjectName,
	}, nil
}

func init() {
	RootCmd.AddCommand(startCmd)
}
