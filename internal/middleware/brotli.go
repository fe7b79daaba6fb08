package middleware

import (
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
)

type BrotliConfig struct {
	Quality   int
	MinLength int
}

var DefaultBrotliConfig = BrotliConfig{
	Quality:   brotli.DefaultCompression,
	MinLength: 1024,
}

// brotliWriter buffers the body until MinLength bytes are known, then
// switches to compressed output for the rest of the response. Bodies that
// never reach MinLength go out uncompressed.
type brotliWriter struct {
	gin.ResponseWriter
	enc        *brotli.Writer
	buf        []byte
	minLength  int
	quality    int
	compressed bool
}

func (w *brotliWriter) Write(data []byte) (int, error) {
	if w.compressed {
		return w.enc.Write(data)
	}

	w.buf = append(w.buf, data...)
	if len(w.buf) < w.minLength {
		return len(data), nil
	}

	w.compressed = true
	h := w.ResponseWriter.Header()
	h.Set("Content-Encoding", "br")
	h.Del("Content-Length")
	w.enc = brotli.NewWriterLevel(w.ResponseWriter, w.quality)

	if _, err := w.enc.Write(w.buf); err != nil {
		return 0, err
	}
	w.buf = nil
	return len(data), nil
}

func (w *brotliWriter) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}

func (w *brotliWriter) finish() error {
	if w.compressed {
		return w.enc.Close()
	}
	if len(w.buf) == 0 {
		return nil
	}
	_, err := w.ResponseWriter.Write(w.buf)
	return err
}

// Brotli compresses large JSON responses such as the question bank and
// exam reviews.
func Brotli() gin.HandlerFunc {
	return BrotliWithConfig(DefaultBrotliConfig)
}

func BrotliWithConfig(cfg BrotliConfig) gin.HandlerFunc {
	if cfg.Quality < brotli.BestSpeed || cfg.Quality > brotli.BestCompression {
		cfg.Quality = brotli.DefaultCompression
	}
	if cfg.MinLength <= 0 {
		cfg.MinLength = DefaultBrotliConfig.MinLength
	}

	return func(c *gin.Context) {
		// WebSocket upgrades must not be intercepted.
		if strings.EqualFold(c.GetHeader("Upgrade"), "websocket") || !acceptsBrotli(c.Request) {
			c.Next()
			return
		}

		c.Header("Vary", "Accept-Encoding")

		bw := &brotliWriter{
			ResponseWriter: c.Writer,
			minLength:      cfg.MinLength,
			quality:        cfg.Quality,
		}
		c.Writer = bw

		defer func() {
			if err := bw.finish(); err != nil {
				_ = c.Error(err)
			}
		}()

		c.Next()
	}
}

func acceptsBrotli(r *http.Request) bool {
	for _, enc := range strings.Split(r.Header.Get("Accept-Encoding"), ",") {
		name, _, _ := strings.Cut(strings.TrimSpace(enc), ";")
		if strings.EqualFold(name, "br") {
			return true
		}
	}
	return false
}
