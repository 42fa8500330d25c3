package redis

// Config holds configuration for the Redis snapshot channel.
type Config struct {
	// Addr is host:port of the Redis server.
	Addr string `mapstructure:"addr" default:"localhost:6379"`
	// Password authenticates the connection.
	Password string `mapstructure:"password" default:""`
	// DB selects the logical database.
	DB int `mapstructure:"db" default:"0"`
	// Channel carries snapshot documents.
	Channel string `mapstructure:"channel" default:"netviz:snapshots"`
	// Enabled turns the subscription on.
	Enabled bool `mapstructure:"enabled" default:"false"`
}
