package source

import (
	"context"
	"encoding/json"
	"fmt"

	"netviz/core/graph"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Redis relays snapshot documents published on a channel.
type Redis struct {
	client  *goredis.Client
	channel string
	logger  *zap.Logger
}

// NewRedis creates a redis source.
func NewRedis(client *goredis.Client, channel string, logger *zap.Logger) *Redis {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Redis{client: client, channel: channel, logger: logger}
}

// Run subscribes and submits every decoded message until ctx is done.
func (r *Redis) Run(ctx context.Context, sink Submitter) error {
	sub := r.client.Subscribe(ctx, r.channel)
	defer sub.Close()
	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s: %w", r.channel, err)
	}
	r.logger.Info("Subscribed to snapshot channel", zap.String("channel", r.channel))
	return Consume(ctx, sub.Channel(), sink, r.logger)
}

// Publish sends snap on the channel.
func (r *Redis) Publish(ctx context.Context, snap graph.Snapshot) (receivers int64, err error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return 0, fmt.Errorf("encode snapshot: %w", err)
	}
	n, err := r.client.Publish(ctx, r.channel, data).Result()
	if err != nil {
		return 0, fmt.Errorf("publish %s: %w", r.channel, err)
	}
	return n, nil
}

// Consume submits every message from ch until ch closes or ctx is done.
// Malformed messages are logged and skipped.
func Consume(ctx context.Context, ch <-chan *goredis.Message, sink Submitter, logger *zap.Logger) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			snap, err := Decode([]byte(msg.Payload))
			if err != nil {
				logger.Warn("Dropping malformed snapshot message", zap.String("channel", msg.Channel), zap.Error(err))
				continue
			}
			if _, err := sink.Submit(snap); err != nil {
				return fmt.Errorf("submit snapshot: %w", err)
			}
		}
	}
}
