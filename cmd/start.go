package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"asset-lists/core/loader"
	"asset-lists/core/logger"
	"asset-lists/core/middleware/auth"
	"asset-lists/core/middleware/rayid"
	"asset-lists/feature/comparison"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "asset-lists/docs/swagger"
)

// @title Asset Lists API
// @version 1.0
// @description API for comparing and filtering asset file info lists.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the comparison server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		env, err := loadEnvironment(false)
		if err != nil {
			log.Fatalf("Failed to initialize: %v", err)
		}
		logg := env.log
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             env.cfg.Server.BodyLimit(),
		})

		mgr := loader.NewManager()
		mgr.Register(comparison.NewFeature(env.store, logg, env.cfg.Server.RequestTimeout()))

		// RayID first so every later log line carries it.
		app.Use(rayid.New())

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

		// Swagger stays public.
		app.Get("/swagger/*", swagger.HandlerDefault)

		app.Use(auth.New(auth.Config{ApiKey: env.cfg.Server.ApiKey}))
		if env.cfg.Server.ApiKey == "" {
			logg.Warn("No API key configured, the API is unprotected")
		}

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		go func() {
			logg.Info("Starting server",
				zap.String("port", env.cfg.Server.Port),
				zap.String("lists_backend", env.cfg.Lists.Backend),
			)
			if err := app.Listen(env.cfg.Server.Addr()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
