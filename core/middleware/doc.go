// Package middleware contains HTTP middleware for the Fiber application.
//
//   - auth: API key validation (X-API-Key header or api_key query parameter).
//   - rayid: assigns every request a ray id, stored under the ray_id local
//     for logger.WithRayID and returned in the X-Ray-ID header.
//
// rayid must be registered first so every later log line carries the id.
package middleware
