package input

// EventType is a window-level event the frame loop reacts to.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventFocusGained
	EventFocusLost
	EventGamepadAdded
	EventGamepadRemoved
	EventDeviceReset
)

// Event represents a processed window event.
type Event struct {
	Type   EventType
	Width  int
	Height int
}
