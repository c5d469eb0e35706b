package logging

import (
	"fmt"
	"log/slog"
	"time"
)

// Attr is the attribute type accepted by every helper in this package.
type Attr = slog.Attr

func Bool(key string, value bool) Attr { return slog.Bool(key, value) }

func Duration(key string, value time.Duration) Attr { return slog.Duration(key, value) }

func Int(key string, value int) Attr { return slog.Int(key, value) }

func String(key string, value string) Attr { return slog.String(key, value) }

// Error records err under "error". A nil error yields an empty attribute,
// which handlers drop.
func Error(err error) Attr {
	if err == nil {
		return Attr{}
	}
	return slog.Any("error", err)
}

// Strategy tags a line with the payload decoding strategy.
func Strategy(name string) Attr { return slog.String(FieldStrategy, name) }

// Key renders a cipher key in its comma-separated form. Empty keys are
// dropped.
func Key(key fmt.Stringer) Attr {
	s := key.String()
	if s == "" {
		return Attr{}
	}
	return slog.String("key", s)
}

// Args converts typed attributes into the variadic form slog methods accept.
func Args(attrs ...Attr) []any {
	args := make([]any, len(attrs))
	for i, attr := range attrs {
		args[i] = attr
	}
	return args
}
