package cmd

import (
	"context"

	"craft-sleuth/core/loader"
	"craft-sleuth/core/logger"
	"craft-sleuth/core/middleware/auth"
	"craft-sleuth/core/middleware/rayid"
	"craft-sleuth/feature/monitor"

	"github.com/gofiber/fiber/v2"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "craft-sleuth/docs/swagger"
)

// @title craft-sleuth status API
// @version 1.0
// @description Status and control API of the subreddit moderation bot.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

var runAtStartup bool

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Run the bot as a daemon",
	Long: `Runs reconciliation on the configured schedule (SERVER_SCHEDULE) and,
when SERVER_ENABLED is set, serves the status API until interrupted.`,
	RunE: runDaemon,
}

func init() {
	startCmd.Flags().BoolVar(&runAtStartup, "run-now", true, "Run once immediately instead of waiting for the first tick")
	RootCmd.AddCommand(startCmd)
}

func runDaemon(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.logger.Sync()
	logg := a.logger

	notifier, err := a.notifier()
	if err != nil {
		return err
	}
	if err := a.checkConfigured(ctx, notifier); err != nil {
		return err
	}
	if _, err := a.cfg.Server.ParseSchedule(); err != nil {
		return err
	}

	store, err := a.openStore()
	if err != nil {
		return err
	}
	if err := store.Init(ctx); err != nil {
		return err
	}
	engine, err := a.engine(ctx, store, notifier)
	if err != nil {
		return err
	}

	runner := monitor.NewRunner(engine, logg)
	scheduler := monitor.NewScheduler(runner, logg, func(ctx context.Context, err error) {
		a.reportFailure(ctx, notifier, err)
	})
	if _, err := scheduler.Schedule(ctx, a.cfg.Server.Schedule); err != nil {
		return err
	}
	scheduler.Start()
	logg.Info("Scheduler started", zap.String("schedule", a.cfg.Server.Schedule), zap.String("sub", a.cfg.Bot.SubName))

	if runAtStartup {
		go scheduler.Trigger(ctx)
	}

	var srv *fiber.App
	if a.cfg.Server.Enabled {
		srv = fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		// RayID first so every log line can be traced.
		srv.Use(rayid.New())
		srv.Use(fiberrecover.New())
		srv.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Debug("Request started",
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

		// Public
		srv.Get("/swagger/*", swagger.HandlerDefault)
		srv.Use(auth.New(auth.Config{ApiKey: a.cfg.Server.ApiKey, Skip: []string{"/health"}}))

		mgr := loader.NewManager(logg)
		mgr.Register(monitor.NewFeature(runner, store, ctx, logg, true))
		if err := mgr.LoadAll(srv); err != nil {
			return err
		}

		go func() {
			logg.Info("Starting status API", zap.String("port", a.cfg.Server.Port))
			if err := srv.Listen(":" + a.cfg.Server.Port); err != nil {
				logg.Error("Status API stopped", zap.Error(err))
			}
		}()
	}

	<-ctx.Done()
	logg.Info("Shutting down...")

	if srv != nil {
		_ = srv.Shutdown()
	}
	<-scheduler.Stop().Done()
	return nil
}
