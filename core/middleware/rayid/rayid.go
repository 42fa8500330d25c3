package rayid

import (
	"netviz/core/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

// HeaderName is the response header carrying the ray id.
const HeaderName = "X-Ray-ID"

// New returns a middleware that assigns every request a ray id, stores it
// under the ray_id local and echoes it in the response. An incoming
// X-Ray-ID header is kept.
func New() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:     HeaderName,
		ContextKey: logger.RayIDKey,
		Generator:  uuid.NewString,
	})
}
