package site

import (
	"errors"
	"testing"
	"time"
)

func newTestSite() *Site {
	return New(DefaultTopics(), DefaultBreakpoints())
}

func mustDispatch(t *testing.T, s *Site, st State, ev Event) State {
	t.Helper()
	next, err := s.Dispatch(st, ev)
	if err != nil {
		t.Fatalf("dispatch %s: unexpected error: %v", ev.Kind, err)
	}
	return next
}

func TestInitialState(t *testing.T) {
	s := newTestSite()
	st := s.Initial(ThemeDark)
	if st.Theme != ThemeDark {
		t.Errorf("expected theme %q, got %q", ThemeDark, st.Theme)
	}
	if st.ActiveTopic != "database" {
		t.Errorf("expected first topic active, got %q", st.ActiveTopic)
	}
	if st.Viewport != ViewLarge {
		t.Errorf("expected %q, got %q", ViewLarge, st.Viewport)
	}
	if st.Frames == nil {
		t.Error("expected non-nil frames map")
	}
}

func TestDispatch_UnknownKind(t *testing.T) {
	s := newTestSite()
	st := s.Initial(ThemeLight)
	next, err := s.Dispatch(st, Event{Kind: "hover"})
	if !errors.Is(err, ErrUnknownEvent) {
		t.Fatalf("expected ErrUnknownEvent, got %v", err)
	}
	if next.ActiveTopic != st.ActiveTopic || !next.LastInteraction.IsZero() {
		t.Error("expected state unchanged on error")
	}
}

func TestDispatch_StampsInteraction(t *testing.T) {
	s := newTestSite()
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	st := mustDispatch(t, s, s.Initial(ThemeLight), Event{Kind: KindThemeToggle, At: at})
	if !st.LastInteraction.Equal(at) {
		t.Errorf("expected interaction time %v, got %v", at, st.LastInteraction)
	}
	st = mustDispatch(t, s, st, Event{Kind: KindThemeToggle})
	if st.LastInteraction.IsZero() {
		t.Error("expected interaction time to default to now")
	}
}

func TestTabClick(t *testing.T) {
	s := newTestSite()
	st := mustDispatch(t, s, s.Initial(ThemeLight), Event{Kind: KindTabClick, Topic: "transport"})
	if st.ActiveTopic != "transport" {
		t.Errorf("expected %q, got %q", "transport", st.ActiveTopic)
	}
	if st.FocusIndex != 3 {
		t.Errorf("expected focus on clicked tab, got %d", st.FocusIndex)
	}

	// Unknown topics leave the active tab alone.
	st = mustDispatch(t, s, st, Event{Kind: KindTabClick, Topic: "nope"})
	if st.ActiveTopic != "transport" {
		t.Errorf("expected %q to stay active, got %q", "transport", st.ActiveTopic)
	}
}

func TestTabFocus(t *testing.T) {
	s := newTestSite()
	st := mustDispatch(t, s, s.Initial(ThemeLight), Event{Kind: KindTabFocus, Index: 2})
	if st.FocusIndex != 2 {
		t.Errorf("expected focus 2, got %d", st.FocusIndex)
	}
	if _, err := s.Dispatch(st, Event{Kind: KindTabFocus, Index: 9}); !errors.Is(err, ErrInvalidEvent) {
		t.Errorf("expected ErrInvalidEvent, got %v", err)
	}
}

func TestKeyDown_ArrowNavigationWraps(t *testing.T) {
	s := newTestSite()
	st := s.Initial(ThemeLight)

	st = mustDispatch(t, s, st, Event{Kind: KindKeyDown, Key: Key{Name: "ArrowLeft", OnTab: true}})
	if st.FocusIndex != 4 {
		t.Errorf("expected wrap to last tab, got %d", st.FocusIndex)
	}
	st = mustDispatch(t, s, st, Event{Kind: KindKeyDown, Key: Key{Name: "ArrowRight", OnTab: true}})
	if st.FocusIndex != 0 {
		t.Errorf("expected wrap to first tab, got %d", st.FocusIndex)
	}
	st = mustDispatch(t, s, st, Event{Kind: KindKeyDown, Key: Key{Name: "End", OnTab: true}})
	if st.FocusIndex != 4 {
		t.Errorf("expected End to focus last tab, got %d", st.FocusIndex)
	}
	st = mustDispatch(t, s, st, Event{Kind: KindKeyDown, Key: Key{Name: "Home", OnTab: true}})
	if st.FocusIndex != 0 {
		t.Errorf("expected Home to focus first tab, got %d", st.FocusIndex)
	}
	// Focus only moves; activation needs Enter or Space.
	if st.ActiveTopic != "database" {
		t.Errorf("expected active tab unchanged, got %q", st.ActiveTopic)
	}
}

func TestKeyDown_ArrowsIgnoredOffTab(t *testing.T) {
	s := newTestSite()
	st := mustDispatch(t, s, s.Initial(ThemeLight), Event{Kind: KindKeyDown, Key: Key{Name: "ArrowRight"}})
	if st.FocusIndex != 0 {
		t.Errorf("expected focus unchanged, got %d", st.FocusIndex)
	}
}

func TestKeyDown_EnterAndSpaceActivateFocusedTab(t *testing.T) {
	s := newTestSite()
	for _, name := range []string{"Enter", " "} {
		st := s.Initial(ThemeLight)
		st = mustDispatch(t, s, st, Event{Kind: KindTabFocus, Index: 2})
		st = mustDispatch(t, s, st, Event{Kind: KindKeyDown, Key: Key{Name: name, OnTab: true}})
		if st.ActiveTopic != "authentication" {
			t.Errorf("key %q: expected %q active, got %q", name, "authentication", st.ActiveTopic)
		}
	}
}

func TestKeyDown_GlobalShortcuts(t *testing.T) {
	s := newTestSite()
	st := s.Initial(ThemeLight)

	st = mustDispatch(t, s, st, Event{Kind: KindKeyDown, Key: Key{Name: "t", Ctrl: true}})
	if st.Theme != ThemeDark {
		t.Errorf("expected Ctrl+t to toggle theme, got %q", st.Theme)
	}
	st = mustDispatch(t, s, st, Event{Kind: KindKeyDown, Key: Key{Name: "t", Meta: true}})
	if st.Theme != ThemeLight {
		t.Errorf("expected Meta+t to toggle theme back, got %q", st.Theme)
	}
	st = mustDispatch(t, s, st, Event{Kind: KindKeyDown, Key: Key{Name: "5", Ctrl: true}})
	if st.ActiveTopic != "system" {
		t.Errorf("expected Ctrl+5 to activate %q, got %q", "system", st.ActiveTopic)
	}
	// No sixth tab.
	st = mustDispatch(t, s, st, Event{Kind: KindKeyDown, Key: Key{Name: "6", Ctrl: true}})
	if st.ActiveTopic != "system" {
		t.Errorf("expected Ctrl+6 to be ignored, got %q", st.ActiveTopic)
	}
	// Plain "t" does nothing.
	st = mustDispatch(t, s, st, Event{Kind: KindKeyDown, Key: Key{Name: "t"}})
	if st.Theme != ThemeLight {
		t.Errorf("expected plain t to be ignored, got %q", st.Theme)
	}
}

func TestResize_Breakpoints(t *testing.T) {
	s := newTestSite()
	tests := []struct {
		width int
		want  Viewport
	}{
		{320, ViewMobile},
		{480, ViewMobile},
		{481, ViewTablet},
		{768, ViewTablet},
		{769, ViewDesktop},
		{1024, ViewDesktop},
		{1025, ViewLarge},
		{1920, ViewLarge},
	}
	for _, tt := range tests {
		st := mustDispatch(t, s, s.Initial(ThemeLight), Event{Kind: KindResize, Width: tt.width})
		if st.Viewport != tt.want {
			t.Errorf("width %d: expected %q, got %q", tt.width, tt.want, st.Viewport)
		}
		if st.Width != tt.width {
			t.Errorf("width %d: recorded %d", tt.width, st.Width)
		}
	}
}

func TestResize_HintsStick(t *testing.T) {
	s := newTestSite()
	st := mustDispatch(t, s, s.Initial(ThemeLight), Event{Kind: KindResize, Width: 400})
	if !st.LazyFrames {
		t.Error("expected lazy frames on mobile")
	}
	st = mustDispatch(t, s, st, Event{Kind: KindResize, Width: 700})
	if !st.SmoothTabs {
		t.Error("expected smooth tabs on tablet")
	}
	st = mustDispatch(t, s, st, Event{Kind: KindResize, Width: 1600})
	if !st.LazyFrames || !st.SmoothTabs {
		t.Error("expected hints to persist after growing")
	}

	if _, err := s.Dispatch(st, Event{Kind: KindResize}); !errors.Is(err, ErrInvalidEvent) {
		t.Errorf("expected ErrInvalidEvent for zero width, got %v", err)
	}
}

func TestFrames(t *testing.T) {
	s := newTestSite()
	st := s.Initial(ThemeLight)

	st = mustDispatch(t, s, st, Event{Kind: KindFrameTimeout, Frame: "db"})
	if !st.Frames["db"].Loaded {
		t.Error("expected timeout to mark frame loaded")
	}
	st = mustDispatch(t, s, st, Event{Kind: KindFrameLoad, Frame: "db"})
	if !st.Frames["db"].Loaded || st.Frames["db"].Failed {
		t.Errorf("unexpected frame state %+v", st.Frames["db"])
	}

	st = mustDispatch(t, s, st, Event{Kind: KindFrameError, Frame: "crypto"})
	if !st.Frames["crypto"].Failed {
		t.Error("expected frame to be marked failed")
	}

	if _, err := s.Dispatch(st, Event{Kind: KindFrameLoad}); !errors.Is(err, ErrInvalidEvent) {
		t.Errorf("expected ErrInvalidEvent without frame name, got %v", err)
	}
}

func TestDispatch_DoesNotMutateInput(t *testing.T) {
	s := newTestSite()
	st := s.Initial(ThemeLight)
	_ = mustDispatch(t, s, st, Event{Kind: KindFrameLoad, Frame: "db"})
	if len(st.Frames) != 0 {
		t.Errorf("expected input frames untouched, got %v", st.Frames)
	}
}

func TestTheme(t *testing.T) {
	if ParseTheme("dark") != ThemeDark || ParseTheme("") != ThemeLight || ParseTheme("blue") != ThemeLight {
		t.Error("unexpected ParseTheme result")
	}
	if ThemeLight.Toggle().Toggle() != ThemeLight {
		t.Error("expected toggle round trip")
	}
	if ThemeLight.Icon() == ThemeDark.Icon() {
		t.Error("expected distinct icons")
	}
}

func TestTopicLookup(t *testing.T) {
	s := newTestSite()
	topic, ok := s.Topic("crypto")
	if !ok || topic.Badge != "Cryptography" {
		t.Errorf("unexpected topic %+v", topic)
	}
	if topic.ContentID() != "crypto-content" {
		t.Errorf("unexpected content id %q", topic.ContentID())
	}
	if _, ok := s.Topic("missing"); ok {
		t.Error("expected missing topic")
	}
}

func TestBreakpoints_CustomWidths(t *testing.T) {
	bp := Breakpoints{Mobile: 100, Tablet: 200, Desktop: 300}
	tests := []struct {
		width int
		want  Viewport
	}{
		{100, ViewMobile},
		{200, ViewTablet},
		{300, ViewDesktop},
		{301, ViewLarge},
		{5000, ViewLarge},
	}
	for _, tt := range tests {
		if got := bp.Classify(tt.width); got != tt.want {
			t.Errorf("width %d: expected %q, got %q", tt.width, tt.want, got)
		}
	}
}
