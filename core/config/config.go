package config

import (
	"fmt"
	"reflect"
	"strings"

	"netviz/core/database"
	"netviz/core/logger"
	"netviz/core/redis"
	"netviz/core/render"
	"netviz/core/server"
	"netviz/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	// Server holds configuration for the HTTP servers.
	Server server.Config `mapstructure:"server"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Storage holds configuration for the snapshot bucket.
	Storage storage.Config `mapstructure:"storage"`
	// Database holds configuration for the database source.
	Database database.Config `mapstructure:"database"`
	// Redis holds configuration for the snapshot channel.
	Redis redis.Config `mapstructure:"redis"`
	// Render holds the initial display options.
	Render render.Defaults `mapstructure:"render"`
	// Source holds snapshot source settings.
	Source SourceConfig `mapstructure:"source"`
}

// SourceConfig holds settings shared by the snapshot sources.
type SourceConfig struct {
	// Queries lists named SQL queries as "name=SELECT ...;name2=SELECT ...".
	Queries string `mapstructure:"queries" default:""`
	// Prefix restricts storage listings.
	Prefix string `mapstructure:"prefix" default:"snapshots/"`
}

// NamedQueries parses Queries into a name to SQL map.
func (s SourceConfig) NamedQueries() (map[string]string, error) {
	out := make(map[string]string)
	for _, part := range strings.Split(s.Queries, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, query, ok := strings.Cut(part, "=")
		name, query = strings.TrimSpace(name), strings.TrimSpace(query)
		if !ok || name == "" || query == "" {
			return nil, fmt.Errorf("malformed query entry %q, want name=SQL", part)
		}
		if _, dup := out[name]; dup {
			return nil, fmt.Errorf("query %q defined twice", name)
		}
		out[name] = query
	}
	return out, nil
}

// LoadConfig loads configuration from environment variables and the .env
// file in path.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." || path == "" {
		envPath = ".env"
	}
	// A missing .env is normal in production.
	_ = godotenv.Overload(envPath)

	v := viper.New()
	bindValues(v, Config{}, "")

	// SERVER_PORT -> server.port
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := config.Server.Validate(); err != nil {
		return nil, fmt.Errorf("server config: %w", err)
	}
	return &config, nil
}

// bindValues walks the struct and registers every mapstructure key with its
// default tag value, so AutomaticEnv can resolve it.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
