package logger

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

var log zerolog.Logger

func Init(pretty bool) {
	if pretty {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
		return
	}
	log = zerolog.New(os.Stderr).With().Timestamp().Logger()
}

func L() *zerolog.Logger {
	return &log
}

// RequestLogger logs one line per request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		evt := log.Info()
		if c.Writer.Status() >= 500 {
			evt = log.Error()
		}
		evt.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}
