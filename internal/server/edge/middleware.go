package edge

import (
	"net/http"

	"github.com/dmitrijs2005/jablog/internal/logging"
	"github.com/dmitrijs2005/jablog/internal/server/session"
)

// Observer receives one call per gated request.
type Observer interface {
	GateDecision(class, outcome string)
}

// Middleware applies Decide to every request. It only has access to the
// optimistic reader; a malformed or expired cookie counts as no session.
func Middleware(reader session.OptimisticSessionReader, logger logging.Logger, obs Observer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, hasSession := reader.Read(r)
			d := Decide(r.URL.Path, hasSession)

			if d.Pass() {
				obs.GateDecision(d.Class.String(), "pass")
				next.ServeHTTP(w, r)
				return
			}

			obs.GateDecision(d.Class.String(), "redirect")
			logger.Debug(r.Context(), "edge redirect",
				"path", r.URL.Path,
				"class", d.Class.String(),
				"location", d.Redirect,
			)
			http.Redirect(w, r, d.Redirect, http.StatusTemporaryRedirect)
		})
	}
}
