package webserve

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
)

const (
	// PageFile is the file served for the root and every /reset-password path.
	PageFile = "reset-password.html"

	pagePath   = "/" + PageFile
	pagePrefix = "/reset-password"
)

// rewritePath returns the path a request path resolves to on disk.
// The root and anything under /reset-password map to the page, the rest is untouched.
func rewritePath(p string) string {
	if p == "/" || strings.HasPrefix(p, pagePrefix) {
		return pagePath
	}
	return p
}

// pageRewrite hands next a copy of the request whose path has been rewritten by rewritePath.
// Query strings are never looked at, so /reset-password?token=abc is the page too.
func pageRewrite(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := rewritePath(r.URL.Path)
		if p == r.URL.Path {
			next.ServeHTTP(w, r)
			return
		}
		zerolog.Ctx(r.Context()).Debug().Str("from", r.URL.Path).Str("to", p).Msg("rewrote path")

		r2 := new(http.Request)
		*r2 = *r
		r2.URL = new(url.URL)
		*r2.URL = *r.URL
		r2.URL.Path = p
		r2.URL.RawPath = ""
		next.ServeHTTP(w, r2)
	})
}

// handlePreflight answers CORS preflight requests. The CORS headers are already set by then.
func handlePreflight(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// handleUnsupported rejects every method the file server does not implement.
func handleUnsupported(w http.ResponseWriter, r *http.Request) {
	http.Error(w, fmt.Sprintf("Unsupported method ('%s')", r.Method), http.StatusNotImplemented)
}
