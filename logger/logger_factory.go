package logger

import (
	"io"
	"os"

	"github.com/go-streamline/aiworkflow/config"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Factory hands out JSON loggers that share one output and level.
type Factory struct {
	hostname string
	level    logrus.Level
	out      io.Writer
}

type LogrusHook struct {
	Hostname string
	Context  string
}

func (hook *LogrusHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (hook *LogrusHook) Fire(entry *logrus.Entry) error {
	entry.Data["host"] = hook.Hostname
	entry.Data["context"] = hook.Context
	return nil
}

// NewFactory builds a factory from the log section. With no filename, output goes
// to stderr; otherwise to a rotating file, teed to stdout when LogToConsole is set.
func NewFactory(cfg config.Log) (*Factory, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return nil, err
	}
	level, err := config.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	var out io.Writer = os.Stderr
	if cfg.Filename != "" {
		file := &lumberjack.Logger{
			Filename:   cfg.Filename,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}
		if cfg.LogToConsole {
			out = io.MultiWriter(os.Stdout, file)
		} else {
			out = file
		}
	}

	return &Factory{
		hostname: hostname,
		level:    level,
		out:      out,
	}, nil
}

// NewFactoryWithWriter is used by tests to capture output.
func NewFactoryWithWriter(out io.Writer, level logrus.Level) *Factory {
	hostname, _ := os.Hostname()
	return &Factory{hostname: hostname, level: level, out: out}
}

func (f *Factory) GetLogger(name string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(f.level)
	logger.SetOutput(f.out)
	logger.AddHook(&LogrusHook{
		Hostname: f.hostname,
		Context:  name,
	})
	return logger
}
