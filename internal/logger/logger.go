package logger

import (
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the global logger. Debug mode switches to the
// console writer and lowers the level so API calls become visible.
func Setup(debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	out := io.Writer(os.Stderr)
	if debug {
		level = zerolog.DebugLevel
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}

	logger := zerolog.New(out).Level(level).With().Timestamp().Logger()
	log.Logger = logger

	return logger
}

var _ http.RoundTripper = (*HTTPRequests)(nil)

// HTTPRequests is an http.RoundTripper that logs every outgoing request
// with its method, path, status and duration.
type HTTPRequests struct {
	next http.RoundTripper
}

// NewHTTPRequests wraps next with request logging. A nil next uses
// http.DefaultTransport.
func NewHTTPRequests(next http.RoundTripper) *HTTPRequests {
	if next == nil {
		next = http.DefaultTransport
	}
	return &HTTPRequests{next: next}
}

func (h *HTTPRequests) RoundTrip(req *http.Request) (*http.Response, error) {
	started := time.Now()

	resp, err := h.next.RoundTrip(req)

	if err != nil {
		log.Debug().
			Err(err).
			Str("method", req.Method).
			Str("path", req.URL.Path).
			Dur("duration", time.Since(started)).
			Msg("api call")

		return resp, err
	}

	log.Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(started)).
		Msg("api call")

	return resp, nil
}
