package logger

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iurnickita/autosalon/internal/logger/config"
)

const HeaderRequestIDKey = "X-Request-ID"

func NewZapLog(cfg config.Config) (*zap.Logger, error) {
	// преобразуем текстовый уровень логирования в zap.AtomicLevel
	lvl, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	// создаём новую конфигурацию логера
	zapcfg := zap.NewProductionConfig()
	// устанавливаем уровень
	zapcfg.Level = lvl
	// создаём логер на основе конфигурации
	zl, err := zapcfg.Build()
	if err != nil {
		return nil, err
	}
	//
	return zl, nil
}

// middleware-логер для входящих HTTP-запросов.
// Тело запроса не пишется: в нем бывают пароли
func RequestLogMdlw(zaplog *zap.Logger) func(http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// идентификатор запроса: от клиента или новый
			requestID := r.Header.Get(HeaderRequestIDKey)
			if requestID == "" {
				requestID = uuid.NewString()
				r.Header.Set(HeaderRequestIDKey, requestID)
			}
			w.Header().Set(HeaderRequestIDKey, requestID)

			zaplog.Info("got incoming HTTP request",
				zap.String("request_id", requestID),
				zap.String("path", r.URL.Path),
				zap.String("method", r.Method),
				zap.Int64("content_length", r.ContentLength),
			)

			wl := NewResponseWriterLogger(w)

			handlerStart := time.Now()
			h.ServeHTTP(wl, r)
			handlerDuration := time.Since(handlerStart)

			zaplog.Info("send HTTP response",
				zap.String("request_id", requestID),
				zap.Int("code", wl.statusCode),
				zap.Int("length", wl.length),
				zap.Duration("duration", handlerDuration),
			)
		})
	}
}

type responseWriterLogger struct {
	http.ResponseWriter
	statusCode  int
	length      int
	wroteHeader bool
}

func NewResponseWriterLogger(w http.ResponseWriter) *responseWriterLogger {
	return &responseWriterLogger{ResponseWriter: w, statusCode: http.StatusOK}
}

func (wl *responseWriterLogger) WriteHeader(code int) {
	if !wl.wroteHeader {
		wl.statusCode = code
		wl.wroteHeader = true
	}
	wl.ResponseWriter.WriteHeader(code)
}

func (wl *responseWriterLogger) Write(b []byte) (n int, err error) {
	wl.wroteHeader = true
	n, err = wl.ResponseWriter.Write(b)
	wl.length += n
	return
}

// Unwrap отдает исходный writer http.ResponseController
func (wl *responseWriterLogger) Unwrap() http.ResponseWriter {
	return wl.ResponseWriter
}
