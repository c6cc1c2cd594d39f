package site

import (
	"maps"
	"time"
)

// FrameState tracks one embedded document frame.
type FrameState struct {
	Loaded bool `json:"loaded"`
	Failed bool `json:"failed"`
}

// FrameErrorMarkup replaces the loading placeholder of a frame that failed.
const FrameErrorMarkup = `<div class="frame-error"><h3>Document Unavailable</h3>` +
	`<p>The documentation could not be loaded. Please check your connection or try refreshing the page.</p>` +
	`<button type="button" data-action="reload">Retry Loading</button></div>`

// State is the view state of one visitor's page.
type State struct {
	Theme           Theme                 `json:"theme"`
	ActiveTopic     string                `json:"active_topic"`
	FocusIndex      int                   `json:"focus_index"`
	Width           int                   `json:"width"`
	Viewport        Viewport              `json:"viewport"`
	LazyFrames      bool                  `json:"lazy_frames"`
	SmoothTabs      bool                  `json:"smooth_tabs"`
	Frames          map[string]FrameState `json:"frames"`
	LastInteraction time.Time             `json:"last_interaction"`
}

// Clone returns a copy that shares no maps with s.
func (s State) Clone() State {
	out := s
	out.Frames = maps.Clone(s.Frames)
	if out.Frames == nil {
		out.Frames = map[string]FrameState{}
	}
	return out
}
