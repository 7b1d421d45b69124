package web

import (
	"io"
	"log"
	"net/http"

	"github.com/gorilla/handlers"
)

// Middleware wraps h with panic recovery, gzip and an access log in
// Combined Log Format.
func Middleware(h http.Handler, accessLog io.Writer) http.Handler {
	h = handlers.CompressHandler(h)
	h = handlers.RecoveryHandler(
		handlers.RecoveryLogger(log.Default()),
		handlers.PrintRecoveryStack(true),
	)(h)
	return handlers.CombinedLoggingHandler(accessLog, h)
}
