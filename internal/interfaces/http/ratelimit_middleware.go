package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/erp-pro/internal/application/dto"
)

// RateLimiter decide si una clave puede pasar dentro de la ventana.
// Lo implementa cache.RedisCache.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) bool
}

// RateLimit limita peticiones por IP y ruta dentro de una ventana fija.
// Con limiter nil el middleware no hace nada (entornos sin Redis).
func RateLimit(limiter RateLimiter, limit int, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if limiter == nil {
			return c.Next()
		}
		key := "ratelimit:" + c.IP() + ":" + c.Route().Path
		if !limiter.Allow(c.Context(), key, limit, window) {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{Code: "RATE_LIMITED", Message: "demasiadas peticiones, intenta más tarde"})
		}
		return c.Next()
	}
}
