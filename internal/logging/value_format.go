package logging

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// plainValue renders v without quoting. Used for the header fields.
func plainValue(v slog.Value) string {
	v = v.Resolve()
	switch v.Kind() {
	case slog.KindBool:
		return strconv.FormatBool(v.Bool())
	case slog.KindInt64:
		return strconv.FormatInt(v.Int64(), 10)
	case slog.KindUint64:
		return strconv.FormatUint(v.Uint64(), 10)
	case slog.KindFloat64:
		return strconv.FormatFloat(v.Float64(), 'f', -1, 64)
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindTime:
		return v.Time().In(time.Local).Format(consoleTimestampLayout)
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			return err.Error()
		}
		return fmt.Sprint(v.Any())
	default:
		return v.String()
	}
}

// fieldValue renders v for a "- key: value" line, quoting empty strings and
// anything with control characters or quotes so each field stays on one line.
func fieldValue(v slog.Value) string {
	s := plainValue(v)
	if s == "" || strings.ContainsFunc(s, func(r rune) bool { return r < ' ' || r == '"' }) {
		return strconv.Quote(s)
	}
	return s
}
