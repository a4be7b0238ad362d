package main

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-colorable"
	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// newLogger creates a console logger on w. An unknown level falls back to info.
func newLogger(w io.Writer, level string) *zerolog.Logger {

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !term.IsTerminal(int(f.Fd()))
		w = colorable.NewColorable(f)
	}

	log := zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    noColor,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger().Level(lvl)

	if err != nil {
		log.Warn().Str("loglevel", level).Msg("Unknown log level, using info")
	}

	return &log
}
