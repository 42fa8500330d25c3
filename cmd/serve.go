package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"netviz/core/config"
	"netviz/core/database"
	"netviz/core/graph"
	"netviz/core/loader"
	"netviz/core/logger"
	"netviz/core/middleware/auth"
	"netviz/core/middleware/rayid"
	"netviz/core/reconcile"
	"netviz/core/redis"
	"netviz/core/render"
	"netviz/core/render/headless"
	"netviz/core/storage"
	"netviz/feature/live"
	"netviz/feature/network"
	"netviz/feature/source"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "netviz/docs/swagger"
)

// @title Netviz API
// @version 1.0
// @description API for reconciling graph snapshots into a live network view.
// @host localhost:8080
// @BasePath /

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the network server",
	Long: `Starts the REST API and, unless disabled, the live websocket view.
Optional sources (storage, database, redis) are connected when enabled.`,
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

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// 3. Optional sources
		var opts []network.ServiceOption
		if cfg.Storage.Enabled {
			client, err := storage.NewClient(cfg.Storage)
			if err != nil {
				logg.Fatal("Failed to create storage client", zap.Error(err))
			}
			if err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket); err != nil {
				logg.Warn("Snapshot bucket unavailable", zap.Error(err))
			}
			opts = append(opts, network.WithStorage(source.NewStorage(client, cfg.Storage.Bucket, cfg.Source.Prefix, logg)))
		}
		if cfg.Database.Enabled {
			queries, err := cfg.Source.NamedQueries()
			if err != nil {
				logg.Fatal("Invalid source queries", zap.Error(err))
			}
			if db, err := database.Connect(cfg.Database); err != nil {
				logg.Warn("Optional database connection failed", zap.Error(err))
			} else {
				logg.Info("Connected to snapshot database", zap.String("driver", cfg.Database.Driver))
				opts = append(opts, network.WithDatabase(source.NewDatabase(db, queries, logg)))
			}
		}

		// 4. Render host
		var (
			engine     render.Engine
			liveEngine *live.Engine
		)
		if cfg.Server.LiveEnabled() {
			liveEngine = live.New(logg)
			engine = liveEngine
		} else {
			engine = headless.New()
		}
		host, err := render.New(engine, graph.Empty(), render.Config{Options: cfg.Render.Options()}, render.Observers{
			OnModelChanged: func(ops reconcile.AppliedOps) {
				logg.Debug("Network updated", zap.Int("operations", ops.Total()))
			},
		}, logg)
		if err != nil {
			logg.Fatal("Failed to create render host", zap.Error(err))
		}
		pump := render.NewPump(host, logg, render.WithResultHandler(func(snap graph.Snapshot, _ reconcile.AppliedOps, err error) {
			if err != nil {
				logg.Warn("Queued snapshot failed", zap.Uint64("generation", snap.Generation), zap.Error(err))
			}
		}))

		if cfg.Redis.Enabled {
			client, err := redis.NewClient(ctx, cfg.Redis)
			if err != nil {
				logg.Warn("Optional redis connection failed", zap.Error(err))
			} else {
				defer client.Close()
				sub := source.NewRedis(client, cfg.Redis.Channel, logg)
				go func() {
					if err := sub.Run(ctx, pump); err != nil && !errors.Is(err, context.Canceled) {
						logg.Error("Snapshot subscription stopped", zap.Error(err))
					}
				}()
			}
		}

		// 5. Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		mgr := loader.NewManager(logg)
		mgr.Register(network.NewFeature(network.NewService(host, pump, logg, opts...)))
		mgr.Register(network.NewMetricsFeature(cfg.Server.Metrics))

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

		app.Get("/swagger/*", swagger.HandlerDefault)

		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 6. Start Servers
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		var liveServer *http.Server
		if liveEngine != nil {
			liveServer = &http.Server{
				Addr:              ":" + cfg.Server.LivePort,
				Handler:           liveEngine.Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}
			go func() {
				logg.Info("Starting live view", zap.String("port", cfg.Server.LivePort))
				if err := liveServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logg.Fatal("Live view failed to start", zap.Error(err))
				}
			}()
		}

		// 7. Graceful Shutdown
		<-ctx.Done()
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
		pump.Close()
		if err := host.OnDispose(); err != nil {
			logg.Warn("Render host dispose", zap.Error(err))
		}
		if liveServer != nil {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = liveServer.Shutdown(shutdownCtx)
		}
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
