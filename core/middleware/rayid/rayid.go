package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderName is the response header carrying the request ID.
const HeaderName = "X-Ray-ID"

// LocalsKey is the fiber.Ctx Locals key holding the request ID.
const LocalsKey = "ray_id"

// New returns a middleware that assigns every request a RayID.
// An incoming X-Ray-ID header is reused so callers can correlate requests.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(HeaderName)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(LocalsKey, id)
		c.Set(HeaderName, id)
		return c.Next()
	}
}
