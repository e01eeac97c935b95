// Package sdlinput is the SDL backend for input: the window event pump and
// a Source reading keyboard, mouse and game controller.
package sdlinput

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/campfire/internal/engine/input"
)

// Events pumps the SDL queue. Device state such as keys and the pointer is
// read by Source; only discrete window events are collected here.
type Events struct {
	events []input.Event
}

// NewEvents creates an event pump.
func NewEvents() *Events {
	return &Events{
		events: make([]input.Event, 0, 16),
	}
}

// Update drains the SDL queue. Returns true if the window was closed.
func (p *Events) Update() bool {
	p.events = p.events[:0]

	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if ev, ok := translate(event); ok {
			p.events = append(p.events, ev)
			if ev.Type == input.EventQuit {
				quit = true
			}
		}
	}
	return quit
}

// Events returns the events from the last Update.
func (p *Events) Events() []input.Event {
	return p.events
}

// Has reports whether an event of type t arrived in the last Update.
func (p *Events) Has(t input.EventType) bool {
	for _, e := range p.events {
		if e.Type == t {
			return true
		}
	}
	return false
}

func translate(event sdl.Event) (input.Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return input.Event{Type: input.EventQuit}, true

	case *sdl.WindowEvent:
		switch e.Event {
		case sdl.WINDOWEVENT_RESIZED, sdl.WINDOWEVENT_SIZE_CHANGED:
			return input.Event{Type: input.EventWindowResize, Width: int(e.Data1), Height: int(e.Data2)}, true
		case sdl.WINDOWEVENT_FOCUS_GAINED:
			return input.Event{Type: input.EventFocusGained}, true
		case sdl.WINDOWEVENT_FOCUS_LOST:
			return input.Event{Type: input.EventFocusLost}, true
		case sdl.WINDOWEVENT_CLOSE:
			return input.Event{Type: input.EventQuit}, true
		}

	case *sdl.ControllerDeviceEvent:
		switch e.Type {
		case sdl.CONTROLLERDEVICEADDED:
			return input.Event{Type: input.EventGamepadAdded}, true
		case sdl.CONTROLLERDEVICEREMOVED:
			return input.Event{Type: input.EventGamepadRemoved}, true
		}

	case *sdl.RenderEvent:
		if e.Type == sdl.RENDER_DEVICE_RESET || e.Type == sdl.RENDER_TARGETS_RESET {
			return input.Event{Type: input.EventDeviceReset}, true
		}
	}
	return input.Event{}, false
}
