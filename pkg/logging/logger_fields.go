package logging

import (
	"time"

	"go.uber.org/zap"
)

func String(key, value string) Field { return zap.String(key, value) }

func Int(key string, value int) Field { return zap.Int(key, value) }

func Int64(key string, value int64) Field { return zap.Int64(key, value) }

func Uint64(key string, value uint64) Field { return zap.Uint64(key, value) }

func Float64(key string, value float64) Field { return zap.Float64(key, value) }

func Bool(key string, value bool) Field { return zap.Bool(key, value) }

// Duration renders d in time.Duration's string form, e.g. "1.5s".
func Duration(key string, d time.Duration) Field { return zap.Stringer(key, d) }

// Error records err's message under "error". A nil error adds nothing.
func Error(err error) Field {
	if err == nil {
		return zap.Skip()
	}
	return zap.String("error", err.Error())
}

func Any(key string, value any) Field { return zap.Any(key, value) }

// Domain fields

func Component(name string) Field { return String("component", name) }

func StudentID(id string) Field { return String("student_id", id) }

func Friendship(id1, id2 string) Field { return String("friendship", id1+"-"+id2) }

func Method(m string) Field { return String("method", m) }

func Metric(m string) Field { return String("metric", m) }

func Operation(op string) Field { return String("operation", op) }

func Latency(d time.Duration) Field { return Duration("latency", d) }

func Count(n int) Field { return Int("count", n) }

func Path(p string) Field { return String("path", p) }

func Format(f string) Field { return String("format", f) }

func Students(n int) Field { return Int("students", n) }

func Friendships(n int) Field { return Int("friendships", n) }
