// Package config loads the application configuration.
//
// Values come from environment variables, optionally seeded from a .env
// file through godotenv, and are resolved by Viper. Every field carries a
// mapstructure key and a default tag; nested sections map to prefixed
// variables (SERVER_PORT, RENDER_SOLVER, SOURCE_QUERIES).
//
// # Sections
//
//   - Server: API and live view ports, API key
//   - Log: level and format
//   - Storage: MinIO/S3 bucket holding snapshot documents
//   - Database: MySQL or SQLite source for named queries
//   - Redis: pub/sub channel carrying snapshots
//   - Render: initial display options
//   - Source: named queries and storage prefix
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
