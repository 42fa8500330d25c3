package cmd

import (
	"context"
	"fmt"

	"netviz/core/config"
	"netviz/core/logger"
	"netviz/core/redis"
	"netviz/feature/source"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// publishCmd sends a snapshot file to the configured redis channel.
var publishCmd = &cobra.Command{
	Use:   "publish <snapshot.json>",
	Short: "Publish a snapshot to running servers",
	Long: `Publish a snapshot file on the redis channel that "serve" subscribes to
when REDIS_ENABLED is set.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		l, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer l.Sync()

		snap, err := readSnapshot(args[0])
		if err != nil {
			return err
		}
		client, err := redis.NewClient(ctx, cfg.Redis)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer client.Close()

		n, err := source.NewRedis(client, cfg.Redis.Channel, l).Publish(ctx, snap)
		if err != nil {
			return err
		}
		l.Info("Snapshot published",
			zap.String("channel", cfg.Redis.Channel),
			zap.Int64("receivers", n))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(publishCmd)
}
