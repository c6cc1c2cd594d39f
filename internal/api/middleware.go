package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/dgallion1/docsite/internal/session"
	"github.com/dgallion1/docsite/internal/site"
	"github.com/go-chi/chi/v5/middleware"
)

// SessionCookie carries the session ID between requests.
const SessionCookie = "docsite_session"

type ctxKey int

const sessionKey ctxKey = iota

// SessionMiddleware attaches the visitor's session to the request context,
// creating one seeded from the theme cookie when none is live.
func SessionMiddleware(store *session.Store, st *site.Site, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var sess *session.Session
			if c, err := r.Cookie(SessionCookie); err == nil {
				sess = store.Get(c.Value)
			}
			if sess == nil {
				theme := site.ThemeLight
				if c, err := r.Cookie(site.ThemeKey); err == nil {
					theme = site.ParseTheme(c.Value)
				}
				sess = store.Create(st.Initial(theme))
				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookie,
					Value:    sess.ID,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
				log.Debug("session created", "session_id", sess.ID, "theme", theme)
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey, sess)))
		})
	}
}

func sessionFrom(ctx context.Context) *session.Session {
	sess, _ := ctx.Value(sessionKey).(*session.Session)
	return sess
}

// RequestLogger logs incoming requests.
func RequestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: 200}
			next.ServeHTTP(sw, r)
			log.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status,
				"request_id", middleware.GetReqID(r.Context()),
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
