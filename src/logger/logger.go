package logger

import (
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/uptrace/opentelemetry-go-extra/otellogrus"
)

// Setup configures the global logrus logger. LOG_LEVEL selects the level (default info) and
// GO_ENV=production switches to json output. When traceHook is set, log entries with a span
// in their context are also recorded as span events.
func Setup(traceHook bool) error {
	level := log.InfoLevel
	if raw := strings.TrimSpace(os.Getenv("LOG_LEVEL")); raw != "" {
		parsed, err := log.ParseLevel(raw)
		if err != nil {
			return fmt.Errorf("logger.Setup: invalid LOG_LEVEL %q: %w", raw, err)
		}
		level = parsed
	}
	log.SetLevel(level)

	if os.Getenv("GO_ENV") == "production" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	if traceHook {
		log.AddHook(otellogrus.NewHook(otellogrus.WithLevels(
			log.PanicLevel,
			log.FatalLevel,
			log.ErrorLevel,
			log.WarnLevel,
			log.InfoLevel,
		)))
	}

	return nil
}
