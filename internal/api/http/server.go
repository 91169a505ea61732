package http

import (
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// NewApp builds the Fiber application. Route matching is case sensitive so
// the router and the authorization policy agree on every path.
func NewApp(appName string, logger *zap.Logger) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:               appName,
		CaseSensitive:         true,
		DisableStartupMessage: true,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          15 * time.Second,
		IdleTimeout:           60 * time.Second,
		BodyLimit:             1 << 20,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		ErrorHandler:          ErrorHandler(logger),
	})
}
