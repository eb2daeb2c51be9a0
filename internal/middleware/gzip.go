package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/tastebite/tastebite-service/internal/logger"
)

type gzipResponseWriter struct {
	rw         http.ResponseWriter
	gzipWriter *gzip.Writer
}

func newGzipResponseWriter(rw http.ResponseWriter) *gzipResponseWriter {
	return &gzipResponseWriter{
		rw:         rw,
		gzipWriter: gzip.NewWriter(rw),
	}
}

func (gw *gzipResponseWriter) Close() error {
	return gw.gzipWriter.Close()
}

func (gw *gzipResponseWriter) Write(p []byte) (int, error) {
	return gw.gzipWriter.Write(p)
}

func (gw *gzipResponseWriter) Header() http.Header {
	return gw.rw.Header()
}

func (gw *gzipResponseWriter) WriteHeader(statusCode int) {
	if statusCode < 300 {
		gw.rw.Header().Set("Content-Encoding", "gzip")
	}
	gw.rw.WriteHeader(statusCode)
}

type gzipRequestReader struct {
	body       io.ReadCloser
	gzipReader *gzip.Reader
}

func newGzipRequestReader(r io.ReadCloser) (*gzipRequestReader, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, err
	}
	return &gzipRequestReader{body: r, gzipReader: gz}, nil
}

func (gr *gzipRequestReader) Read(p []byte) (int, error) {
	return gr.gzipReader.Read(p)
}

func (gr *gzipRequestReader) Close() error {
	if err := gr.body.Close(); err != nil {
		logger.Sugar.Errorf("failed to close original reader: %v", err)
	}
	return gr.gzipReader.Close()
}

func CompressGzipMiddleware() func(http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
				gw := newGzipResponseWriter(w)
				defer gw.Close()

				w = gw
			}

			if strings.Contains(r.Header.Get("Content-Encoding"), "gzip") {
				gr, err := newGzipRequestReader(r.Body)
				if err != nil {
					http.Error(w, "failed to decompress request body", http.StatusBadRequest)
					return
				}
				defer gr.Close()

				r.Body = gr
			}

			h.ServeHTTP(w, r)
		})
	}
}
