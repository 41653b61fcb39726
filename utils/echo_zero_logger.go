package utils

import (
	"time"

	"github.com/labstack/echo"
	"github.com/rs/zerolog"
)

// LookupTargetKey is the echo context key handlers use to expose the
// address they looked up to the request logger.
const LookupTargetKey = "lookup_target"

func ZeroLogger(log *zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			if err := next(c); err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			id := req.Header.Get(echo.HeaderXRequestID)
			if id == "" {
				id = res.Header().Get(echo.HeaderXRequestID)
			}

			level := zerolog.DebugLevel

			switch n := res.Status; {
			case n >= 500:
				level = zerolog.ErrorLevel
			case n >= 400:
				level = zerolog.WarnLevel
			case n >= 300:
				level = zerolog.InfoLevel
			}

			event := log.WithLevel(level).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("id", id).
				Str("host", req.Host).
				Str("remote_ip", c.RealIP()).
				Str("method", req.Method).
				Str("uri", req.RequestURI)

			if target, ok := c.Get(LookupTargetKey).(string); ok && target != "" {
				event = event.Str("target", target)
			}

			event.Msg("request")

			return nil
		}
	}
}
