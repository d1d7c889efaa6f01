package xslog

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/garrettladley/moodwatch/internal/emotion"
	"github.com/garrettladley/moodwatch/internal/version"
	"github.com/garrettladley/moodwatch/internal/xhttp"
)

const (
	keyError = "error"
)

func Error(err error) slog.Attr {
	return slog.String(keyError, err.Error())
}

func RequestID(requestID string) slog.Attr {
	const requestIDKey = "request_id"
	return slog.String(requestIDKey, requestID)
}

func Stack() slog.Attr {
	const stackKey = "stack"
	return slog.String(stackKey, string(debug.Stack()))
}

func HTTPStatus(status int) slog.Attr {
	const statusKey = "status"
	return slog.Int(statusKey, status)
}

func Duration(duration time.Duration) slog.Attr {
	const durationKey = "duration"
	return slog.Duration(durationKey, duration)
}

func RequestMethod(r *http.Request) slog.Attr {
	const methodKey = "method"
	return slog.String(methodKey, r.Method)
}

func RequestPath(r *http.Request) slog.Attr {
	const pathKey = "path"
	return slog.String(pathKey, r.URL.Path)
}

func IP(ip string) slog.Attr {
	const ipKey = "ip"
	return slog.String(ipKey, ip)
}

func RequestIP(r *http.Request) slog.Attr {
	return IP(xhttp.GetRequestIP(r))
}

func Version() slog.Attr {
	const versionKey = "version"
	return slog.String(versionKey, version.Get())
}

func URL(u string) slog.Attr {
	const urlKey = "url"
	return slog.String(urlKey, u)
}

func Addr(addr string) slog.Attr {
	const addrKey = "addr"
	return slog.String(addrKey, addr)
}

func Seq(seq uint64) slog.Attr {
	const seqKey = "seq"
	return slog.Uint64(seqKey, seq)
}

func AppliedSeq(seq uint64) slog.Attr {
	const appliedKey = "applied_seq"
	return slog.Uint64(appliedKey, seq)
}

func Emotion(e emotion.Emotion) slog.Attr {
	const emotionKey = "emotion"
	return slog.String(emotionKey, e.String())
}

func PreviousEmotion(e emotion.Emotion) slog.Attr {
	const previousKey = "previous_emotion"
	return slog.String(previousKey, e.String())
}

func Text(text string) slog.Attr {
	const textKey = "text"
	return slog.String(textKey, text)
}

func Interval(d time.Duration) slog.Attr {
	const intervalKey = "interval"
	return slog.Duration(intervalKey, d)
}

func CacheHit(hit bool) slog.Attr {
	const cacheHitKey = "cache_hit"
	return slog.Bool(cacheHitKey, hit)
}

func Path(p string) slog.Attr {
	const pathKey = "path"
	return slog.String(pathKey, p)
}

func BackendError(msg string) slog.Attr {
	const backendErrorKey = "backend_error"
	return slog.String(backendErrorKey, msg)
}
