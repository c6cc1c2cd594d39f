package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dgallion1/docsite/internal/site"
)

func TestStore_CreateGet(t *testing.T) {
	store := NewStore(time.Hour)
	sess := store.Create(site.State{Theme: site.ThemeDark})
	if sess.ID == "" {
		t.Fatal("expected session id")
	}

	got := store.Get(sess.ID)
	if got == nil {
		t.Fatal("expected to get session back")
	}
	if got.State().Theme != site.ThemeDark {
		t.Errorf("expected theme %q, got %q", site.ThemeDark, got.State().Theme)
	}
}

func TestStore_DistinctIDs(t *testing.T) {
	store := NewStore(time.Hour)
	a := store.Create(site.State{})
	b := store.Create(site.State{})
	if a.ID == b.ID {
		t.Errorf("expected distinct ids, both %q", a.ID)
	}
	if store.Len() != 2 {
		t.Errorf("expected 2 sessions, got %d", store.Len())
	}
}

func TestStore_GetMissing(t *testing.T) {
	store := NewStore(time.Hour)
	if store.Get("nonexistent") != nil {
		t.Error("expected nil for missing session")
	}
}

func TestSession_Update(t *testing.T) {
	store := NewStore(time.Hour)
	sess := store.Create(site.State{Theme: site.ThemeLight})

	st, err := sess.Update(func(s site.State) (site.State, error) {
		s.Theme = s.Theme.Toggle()
		s.Frames["db"] = site.FrameState{Loaded: true}
		return s, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.Theme != site.ThemeDark {
		t.Errorf("expected returned theme %q, got %q", site.ThemeDark, st.Theme)
	}
	if !sess.State().Frames["db"].Loaded {
		t.Error("expected stored frame state")
	}

	// Mutating a returned copy must not leak into the session.
	st.Frames["other"] = site.FrameState{}
	if _, ok := sess.State().Frames["other"]; ok {
		t.Error("expected returned state to be a copy")
	}
}

func TestSession_UpdateErrorKeepsState(t *testing.T) {
	store := NewStore(time.Hour)
	sess := store.Create(site.State{Theme: site.ThemeLight})
	boom := errors.New("boom")

	st, err := sess.Update(func(s site.State) (site.State, error) {
		s.Theme = site.ThemeDark
		return s, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if st.Theme != site.ThemeLight || sess.State().Theme != site.ThemeLight {
		t.Error("expected state unchanged after failed update")
	}
}

func TestStore_TTLCleanup(t *testing.T) {
	store := NewStore(50 * time.Millisecond)
	old := store.Create(site.State{})

	// Wait for the TTL to pass.
	time.Sleep(100 * time.Millisecond)

	fresh := store.Create(site.State{})
	if store.Get(old.ID) != nil {
		t.Error("expected expired session to be unreachable")
	}

	store.Cleanup()
	if store.Len() != 1 {
		t.Errorf("expected 1 session after cleanup, got %d", store.Len())
	}
	if store.Get(fresh.ID) == nil {
		t.Error("expected fresh session to survive cleanup")
	}
}

func TestStore_StartStopsOnCancel(t *testing.T) {
	store := NewStore(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		store.Start(ctx, time.Millisecond)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected Start to return after cancel")
	}
}
