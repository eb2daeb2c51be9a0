package logger

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

type trackingWriter struct {
	w    http.ResponseWriter
	code int
	size int
}

func (tw *trackingWriter) Write(b []byte) (int, error) {
	n, err := tw.w.Write(b)
	tw.size += n
	return n, err
}

func (tw *trackingWriter) WriteHeader(statusCode int) {
	tw.code = statusCode
	tw.w.WriteHeader(statusCode)
}

func (tw *trackingWriter) Header() http.Header {
	return tw.w.Header()
}

func LoggingReqResMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			trw := &trackingWriter{w: w, code: http.StatusOK}

			start := time.Now()
			h.ServeHTTP(trw, r)
			elapsed := time.Since(start)

			logger.Info("http request",
				zap.String("method", r.Method),
				zap.String("uri", r.RequestURI),
				zap.Int("status", trw.code),
				zap.Int("size", trw.size),
				zap.Duration("elapsed", elapsed))
		})
	}
}
