package logging

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

func New(out io.Writer, level, format string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)

	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)

	if strings.EqualFold(format, "json") {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger
}

func LogError(logger logrus.FieldLogger, msg string, err error) {
	logger.Errorf("%s: %v", msg, err)
}

func LogWarn(logger logrus.FieldLogger, msg string) {
	logger.Warn(msg)
}

func LogInfo(logger logrus.FieldLogger, msg string) {
	logger.Info(msg)
}
