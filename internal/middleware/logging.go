package middleware

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// logCtxKey はコンテキストにロガーを格納するためのキーです。
type logCtxKey struct{}

// maxLoggedBody を超えるボディは切り詰めてログに出す
const maxLoggedBody = 4 << 10

// sensitiveHeaders はログ出力時に値をマスキングするヘッダー名のリストです (小文字で定義)。
var sensitiveHeaders = map[string]bool{
	"authorization": true,
	"cookie":        true,
	"set-cookie":    true,
	"x-api-key":     true,
	"x-csrf-token":  true,
}

// responseRecorder はステータスコードと先頭のレスポンスボディを記録します。
type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	written    int
	body       *bytes.Buffer // デバッグ時のみ非nil
}

func (rr *responseRecorder) WriteHeader(statusCode int) {
	rr.statusCode = statusCode
	rr.ResponseWriter.WriteHeader(statusCode)
}

func (rr *responseRecorder) Write(b []byte) (int, error) {
	if rr.body != nil && rr.body.Len() < maxLoggedBody {
		rr.body.Write(b[:min(len(b), maxLoggedBody-rr.body.Len())])
	}
	n, err := rr.ResponseWriter.Write(b)
	rr.written += n
	return n, err
}

// LoggingMiddleware はリクエスト単位のロガーをコンテキストに入れ、開始・完了をログに出します。
// DEBUG レベルではヘッダーとボディ (先頭のみ) も出力します。
func LoggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			startTime := time.Now()

			requestLogger := logger.With("req_id", middleware.GetReqID(r.Context()))
			r = r.WithContext(WithLogger(r.Context(), requestLogger))

			requestLogger.Info("Request started",
				"method", r.Method,
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
			)

			debug := logger.Enabled(r.Context(), slog.LevelDebug)
			var reqBody []byte
			if debug && r.Body != nil {
				reqBody, _ = io.ReadAll(r.Body)
				r.Body = io.NopCloser(bytes.NewReader(reqBody))
			}

			rec := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			if debug {
				rec.body = new(bytes.Buffer)
			}

			next.ServeHTTP(rec, r)

			logLevel := slog.LevelInfo
			if rec.statusCode >= 500 {
				logLevel = slog.LevelError
			} else if rec.statusCode >= 400 {
				logLevel = slog.LevelWarn
			}

			requestLogger.Log(r.Context(), logLevel, "Request completed",
				"status", rec.statusCode,
				"latency_ms", float64(time.Since(startTime).Nanoseconds())/1e6,
				"bytes_out", rec.written,
			)

			if debug {
				requestLogger.Debug("Request detail",
					"headers", formatHeaders(r.Header),
					"body", truncate(reqBody),
				)
				requestLogger.Debug("Response detail",
					"status", rec.statusCode,
					"headers", formatHeaders(rec.Header()),
					"body", rec.body.String(),
				)
			}
		})
	}
}

// WithLogger はロガーをコンテキストに格納します。
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, logCtxKey{}, logger)
}

// GetLogger はコンテキストから slog.Logger を取得します。
func GetLogger(ctx context.Context) *slog.Logger {
	return LoggerOr(ctx, slog.Default())
}

// LoggerOr はコンテキストにロガーがなければ fallback を返します。
func LoggerOr(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(logCtxKey{}).(*slog.Logger); ok {
		return logger
	}
	return fallback
}

func truncate(b []byte) string {
	if len(b) > maxLoggedBody {
		return string(b[:maxLoggedBody]) + "...(truncated)"
	}
	return string(b)
}

// formatHeaders はヘッダー情報をログ出力用に整形・マスキングするヘルパー関数
func formatHeaders(headers http.Header) map[string]string {
	result := make(map[string]string, len(headers))
	for key, values := range headers {
		if sensitiveHeaders[strings.ToLower(key)] {
			result[key] = "[SENSITIVE]"
		} else {
			result[key] = strings.Join(values, ", ")
		}
	}
	return result
}
