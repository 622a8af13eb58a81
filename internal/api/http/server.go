package http

import (
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/colts18seth/jobly/internal/observability"
)

// NewApp returns a fiber app using goccy/go-json for bodies and the shared
// error responder as its fallback error handler.
//
// Route params must stay valid after the handler returns, since events carry
// them to the audit worker. Params are unescaped before gates compare them.
func NewApp(name string, logger *zap.Logger, metrics *observability.Metrics) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:               name,
		DisableStartupMessage: true,
		Immutable:             true,
		UnescapePath:          true,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		ErrorHandler:          ErrorHandler(logger, metrics),
	})
}
