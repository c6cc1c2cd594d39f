package site

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrUnknownEvent is returned for event kinds with no handler.
	ErrUnknownEvent = errors.New("unknown event kind")
	// ErrInvalidEvent is returned when an event lacks a required field.
	ErrInvalidEvent = errors.New("invalid event")
)

// Kind names an interaction.
type Kind string

const (
	KindTabClick     Kind = "tab_click"
	KindTabFocus     Kind = "tab_focus"
	KindKeyDown      Kind = "keydown"
	KindResize       Kind = "resize"
	KindThemeToggle  Kind = "theme_toggle"
	KindFrameLoad    Kind = "frame_load"
	KindFrameError   Kind = "frame_error"
	KindFrameTimeout Kind = "frame_timeout"
)

// Key is a keyboard event as seen by the page.
type Key struct {
	Name  string `json:"key"` // DOM key value, e.g. "ArrowLeft", "t", " "
	Ctrl  bool   `json:"ctrl"`
	Meta  bool   `json:"meta"`
	OnTab bool   `json:"on_tab"` // Focus was on a tab when the key was pressed
}

// Event is one interaction reported by the page.
type Event struct {
	Kind  Kind      `json:"kind"`
	Topic string    `json:"topic,omitempty"`
	Index int       `json:"index,omitempty"`
	Key   Key       `json:"key"`
	Width int       `json:"width,omitempty"`
	Frame string    `json:"frame,omitempty"`
	At    time.Time `json:"at"`
}

type handler func(State, Event) (State, error)

// Site owns the topic registry and reduces interaction events into State.
type Site struct {
	topics      []Topic
	breakpoints Breakpoints
	handlers    map[Kind]handler
}

func New(topics []Topic, bp Breakpoints) *Site {
	s := &Site{topics: topics, breakpoints: bp}
	s.handlers = map[Kind]handler{
		KindTabClick:     s.tabClick,
		KindTabFocus:     s.tabFocus,
		KindKeyDown:      s.keyDown,
		KindResize:       s.resize,
		KindThemeToggle:  s.themeToggle,
		KindFrameLoad:    s.frameLoad,
		KindFrameError:   s.frameError,
		KindFrameTimeout: s.frameLoad,
	}
	return s
}

// Topics returns the registered tabs in display order.
func (s *Site) Topics() []Topic {
	return s.topics
}

// Topic looks up a tab by key.
func (s *Site) Topic(key string) (Topic, bool) {
	for _, t := range s.topics {
		if t.Key == key {
			return t, true
		}
	}
	return Topic{}, false
}

// Initial returns the state of a fresh session. The first tab is active and
// the layout is large until the page reports its width.
func (s *Site) Initial(theme Theme) State {
	st := State{
		Theme:    theme,
		Viewport: ViewLarge,
		Frames:   map[string]FrameState{},
	}
	if len(s.topics) > 0 {
		st.ActiveTopic = s.topics[0].Key
	}
	return st
}

// Dispatch applies ev to st. The input state is never modified. On error
// the returned state equals st.
func (s *Site) Dispatch(st State, ev Event) (State, error) {
	h, ok := s.handlers[ev.Kind]
	if !ok {
		return st, fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Kind)
	}
	next, err := h(st.Clone(), ev)
	if err != nil {
		return st, err
	}
	next.LastInteraction = ev.At
	if next.LastInteraction.IsZero() {
		next.LastInteraction = time.Now()
	}
	return next, nil
}

func (s *Site) tabClick(st State, ev Event) (State, error) {
	return s.activate(st, ev.Topic), nil
}

func (s *Site) tabFocus(st State, ev Event) (State, error) {
	if ev.Index < 0 || ev.Index >= len(s.topics) {
		return st, fmt.Errorf("%w: tab index %d out of range", ErrInvalidEvent, ev.Index)
	}
	st.FocusIndex = ev.Index
	return st, nil
}

func (s *Site) keyDown(st State, ev Event) (State, error) {
	n := len(s.topics)
	if n == 0 {
		return st, nil
	}
	k := ev.Key
	focus := ((st.FocusIndex % n) + n) % n

	if k.OnTab {
		switch k.Name {
		case "ArrowLeft":
			st.FocusIndex = (focus - 1 + n) % n
		case "ArrowRight":
			st.FocusIndex = (focus + 1) % n
		case "Home":
			st.FocusIndex = 0
		case "End":
			st.FocusIndex = n - 1
		case "Enter", " ":
			st = s.activate(st, s.topics[focus].Key)
		}
	}

	if k.Ctrl || k.Meta {
		switch name := k.Name; {
		case name == "t":
			st.Theme = st.Theme.Toggle()
		case len(name) == 1 && name[0] >= '1' && name[0] <= '9':
			if i := int(name[0] - '1'); i < n {
				st = s.activate(st, s.topics[i].Key)
			}
		}
	}
	return st, nil
}

func (s *Site) resize(st State, ev Event) (State, error) {
	if ev.Width <= 0 {
		return st, fmt.Errorf("%w: width must be positive", ErrInvalidEvent)
	}
	st.Width = ev.Width
	st.Viewport = s.breakpoints.Classify(ev.Width)
	// Both hints stick once set; frames already switched to lazy stay lazy.
	st.LazyFrames = st.LazyFrames || st.Viewport == ViewMobile
	st.SmoothTabs = st.SmoothTabs || st.Viewport == ViewTablet
	return st, nil
}

func (s *Site) themeToggle(st State, _ Event) (State, error) {
	st.Theme = st.Theme.Toggle()
	return st, nil
}

// frameLoad handles both load and timeout: the first one wins.
func (s *Site) frameLoad(st State, ev Event) (State, error) {
	if ev.Frame == "" {
		return st, fmt.Errorf("%w: frame is required", ErrInvalidEvent)
	}
	f := st.Frames[ev.Frame]
	if !f.Loaded {
		f.Loaded = true
		st.Frames[ev.Frame] = f
	}
	return st, nil
}

func (s *Site) frameError(st State, ev Event) (State, error) {
	if ev.Frame == "" {
		return st, fmt.Errorf("%w: frame is required", ErrInvalidEvent)
	}
	f := st.Frames[ev.Frame]
	f.Failed = true
	st.Frames[ev.Frame] = f
	return st, nil
}

// activate makes key the active tab and moves focus onto it. Unknown keys
// leave the state as it was.
func (s *Site) activate(st State, key string) State {
	for i, t := range s.topics {
		if t.Key == key {
			st.ActiveTopic = key
			st.FocusIndex = i
			return st
		}
	}
	return st
}
