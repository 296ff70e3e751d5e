package rollz

import "github.com/sirupsen/logrus"

// Logger is the logging seam every driver accepts. It matches the subset
// of logrus's leveled API the package actually uses, so a *logrus.Logger
// or *logrus.Entry satisfies it directly. A nil Logger disables logging
// entirely; this is the default for every constructor.
type Logger interface {
	Debugf(format string, args ...any)
	Warnf(format string, args ...any)
}

// NewLogger returns the package's default logger: a logrus.Logger at
// warn level writing to stderr.
func NewLogger() Logger {
	l := logrus.New()
	l.SetLevel(logrus.WarnLevel)
	return l
}

func logDebugf(l Logger, format string, args ...any) {
	if l == nil {
		return
	}
	l.Debugf(format, args...)
}

func logWarnf(l Logger, format string, args ...any) {
	if l == nil {
		return
	}
	l.Warnf(format, args...)
}
