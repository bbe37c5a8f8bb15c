// Package logs держит общий logrus-логгер процесса.
package logs

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Logger: общий логгер. До Init пишет в stderr текстом на уровне info.
var Logger = logrus.New()

type Options struct {
	Level  string // trace|debug|info|warn|error
	Format string // text|json
	File   string // пусто: только stdout
}

// Init настраивает Logger. Неизвестный уровень молча сводится к info.
func Init(o Options) {
	lvl, err := logrus.ParseLevel(strings.TrimSpace(o.Level))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Logger.SetLevel(lvl)

	switch strings.ToLower(o.Format) {
	case "json":
		Logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		Logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	var out io.Writer = os.Stdout
	if o.File != "" {
		f, err := os.OpenFile(o.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			Logger.Warnf("log file %s: %v (stdout only)", o.File, err)
		} else {
			out = io.MultiWriter(os.Stdout, f)
		}
	}
	Logger.SetOutput(out)
}
