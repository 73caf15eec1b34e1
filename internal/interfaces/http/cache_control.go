package http

import "github.com/gofiber/fiber/v2"

// NoStore marca las respuestas autenticadas como no cacheables: contienen
// datos atados a la sesión y ningún intermediario debe retenerlas.
func NoStore() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		c.Set(fiber.HeaderCacheControl, "no-store")
		return err
	}
}
