// Package logger centraliza el logging estructurado del sistema. Todos los
// componentes reciben un *Logger inyectado; nadie escribe a stdout por su
// cuenta.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config opciones del logger.
type Config struct {
	Env   string // fuera de production la salida es consola legible
	Level string // trace, debug, info, warn, error (otro valor cae en info)
}

// Logger envuelve zerolog detrás de un tipo propio para poder inyectarlo
// como dependencia en use cases y adaptadores.
type Logger struct {
	zl zerolog.Logger
}

// New construye el logger. En production emite JSON (un evento por línea,
// apto para agregadores); en cualquier otro entorno, consola legible.
func New(cfg Config) *Logger {
	var w io.Writer = os.Stdout
	if cfg.Env != "production" {
		w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	zl := zerolog.New(w).Level(level).With().Timestamp().Logger()

	// Las librerías que usan el logger global de zerolog escriben aquí mismo.
	log.Logger = zl

	return &Logger{zl: zl}
}

func (l *Logger) Trace() *zerolog.Event { return l.zl.Trace() }
func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }

// With abre un contexto para un sublogger con campos fijos.
func (l *Logger) With() zerolog.Context { return l.zl.With() }
