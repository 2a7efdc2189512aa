// Package middleware holds the gin middleware shared by all routes.
package middleware

import (
	"io"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-petr/snapledger/pkg/configpkg"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// RequestIDHeader carries the request id between the client and the server.
const RequestIDHeader = "X-Request-ID"

// CreateLogger returns the application logger. Development builds log
// human readable lines with the caller.
func CreateLogger(config configpkg.Config) zerolog.Logger {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	var (
		output   io.Writer = os.Stderr
		logLevel           = zerolog.InfoLevel
	)

	log := zerolog.New(output).
		Level(logLevel).
		With().
		Timestamp().
		Logger()

	if config.Environment == "development" {
		log = log.
			Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			Level(zerolog.TraceLevel).
			With().
			Caller().
			Logger()
	}

	return log
}

// RequestLogger puts a request scoped logger into the request context and logs
// every request once it is served.
func RequestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(gctx *gin.Context) {
		start := time.Now()

		requestID := gctx.Request.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
			gctx.Request.Header.Set(RequestIDHeader, requestID)
		}

		gctx.Writer.Header().Set(RequestIDHeader, requestID)

		l := logger.With().Str("request_id", requestID).Logger()

		gctx.Request = gctx.Request.WithContext(l.WithContext(gctx.Request.Context()))

		gctx.Next()

		status := gctx.Writer.Status()

		var event *zerolog.Event
		if status >= 500 {
			event = l.Error()
		} else {
			event = l.Info()
		}

		event.
			Str("client_ip", gctx.ClientIP()).
			Str("method", gctx.Request.Method).
			Int("status_code", status).
			Str("path", gctx.Request.URL.Path).
			Dur("latency", time.Since(start)).
			Msg(gctx.Errors.ByType(gin.ErrorTypePrivate).String())
	}
}
