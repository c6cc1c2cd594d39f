package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dgallion1/docsite/internal/session"
	"github.com/dgallion1/docsite/internal/site"
	"github.com/go-chi/chi/v5"
)

const themeCookieMaxAge = 365 * 24 * 60 * 60

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	writeJSON(w, http.StatusOK, stateResponse(sess, sess.State()))
}

// handleEvent reduces one interaction into the session state.
func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	var ev site.Event
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		jsonError(w, "invalid JSON body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	s.dispatch(w, r, ev)
}

func (s *Server) handleTopics(w http.ResponseWriter, r *http.Request) {
	st := sessionFrom(r.Context()).State()
	writeJSON(w, http.StatusOK, map[string]any{
		"topics": s.site.Topics(),
		"active": st.ActiveTopic,
	})
}

// handleSelectTopic activates a topic as if its tab were clicked.
func (s *Server) handleSelectTopic(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "topic")
	if _, ok := s.site.Topic(key); !ok {
		jsonError(w, "unknown topic: "+key, http.StatusNotFound)
		return
	}
	s.dispatch(w, r, site.Event{Kind: site.KindTabClick, Topic: key, At: time.Now()})
}

func (s *Server) handleThemeToggle(w http.ResponseWriter, r *http.Request) {
	s.dispatch(w, r, site.Event{Kind: site.KindThemeToggle, At: time.Now()})
}

// dispatch applies ev to the session and writes the new state. A theme
// change is persisted to the theme cookie.
func (s *Server) dispatch(w http.ResponseWriter, r *http.Request, ev site.Event) {
	sess := sessionFrom(r.Context())
	var prev site.Theme
	next, err := sess.Update(func(st site.State) (site.State, error) {
		prev = st.Theme
		return s.site.Dispatch(st, ev)
	})
	if err != nil {
		if errors.Is(err, site.ErrUnknownEvent) || errors.Is(err, site.ErrInvalidEvent) {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		jsonError(w, "failed to apply event: "+err.Error(), http.StatusInternalServerError)
		return
	}
	s.monitor.Interaction()

	if next.Theme != prev {
		setThemeCookie(w, next.Theme)
	}
	s.log.Debug("event applied", "session_id", sess.ID, "kind", ev.Kind, "active_topic", next.ActiveTopic)
	writeJSON(w, http.StatusOK, stateResponse(sess, next))
}

type stateBody struct {
	SessionID string     `json:"session_id"`
	ThemeIcon string     `json:"theme_icon"`
	State     site.State `json:"state"`
}

func stateResponse(sess *session.Session, st site.State) stateBody {
	return stateBody{SessionID: sess.ID, ThemeIcon: st.Theme.Icon(), State: st}
}

func setThemeCookie(w http.ResponseWriter, t site.Theme) {
	http.SetCookie(w, &http.Cookie{
		Name:     site.ThemeKey,
		Value:    string(t),
		Path:     "/",
		MaxAge:   themeCookieMaxAge,
		SameSite: http.SameSiteLaxMode,
	})
}
