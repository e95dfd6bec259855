// Package logger arma el logger zerolog de la aplicación: consola legible en
// desarrollo, JSON una línea por evento en producción.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config opciones para el logger.
type Config struct {
	Env   string // development usa ConsoleWriter; cualquier otro valor, JSON
	Level string // trace, debug, info, warn, error
}

// Logger wrapper delgado sobre zerolog para inyección por constructor.
type Logger struct {
	zl zerolog.Logger
}

// New construye el logger y redirige también el logger global de zerolog,
// que es el que usan los puntos sin inyección (p. ej. el mapeo de errores
// HTTP).
func New(cfg Config) *Logger {
	var w io.Writer = os.Stdout
	if cfg.Env == "development" {
		w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
	}

	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	zl := zerolog.New(w).Level(level).With().Timestamp().Logger()
	log.Logger = zl

	return &Logger{zl: zl}
}

// Component devuelve un sublogger con el campo component fijo.
func (l *Logger) Component(name string) *Logger {
	return &Logger{zl: l.zl.With().Str("component", name).Logger()}
}

func (l *Logger) Trace() *zerolog.Event { return l.zl.Trace() }
func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }

// With expone el builder de contexto de zerolog para campos fijos ad hoc.
func (l *Logger) With() zerolog.Context { return l.zl.With() }
