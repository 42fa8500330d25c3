// Package logger provides a structured logging facility based on Zap.
//
// New builds a production (json) or development (console) logger from the
// log section of the configuration. WithRayID attaches the request id that
// the HTTP layer stores under the ray_id local, so every line written while
// serving a request can be correlated.
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Server started")
//
//	l := logger.WithRayID(log, c)
//	l.Error("Snapshot rejected", zap.Error(err))
package logger
