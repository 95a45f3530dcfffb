package web

import "fmt"

// EventKind identifies which UI control triggered a load/reset callback.
// Making the trigger explicit removes the ambiguity of inspecting which
// inputs happen to be non-empty when both an upload payload and URL text are
// present.
type EventKind int

const (
	// EventStartup is the initial callback fired when the page opens; it
	// never attempts a load.
	EventStartup EventKind = iota
	// EventUpload fires when the user drops or picks a file. The URL text
	// is ignored even if non-empty.
	EventUpload
	// EventLoad fires on the load button. The upload payload is ignored
	// even if present.
	EventLoad
	// EventReset fires on the reset button and clears the document.
	EventReset
)

// String returns the wire name of the event.
func (e EventKind) String() string {
	switch e {
	case EventStartup:
		return "startup"
	case EventUpload:
		return "upload"
	case EventLoad:
		return "load"
	case EventReset:
		return "reset"
	default:
		return fmt.Sprintf("EventKind(%d)", int(e))
	}
}

// ParseEventKind maps a wire name to its EventKind. The empty string is the
// startup trigger.
func ParseEventKind(s string) (EventKind, error) {
	switch s {
	case "", "startup":
		return EventStartup, nil
	case "upload":
		return EventUpload, nil
	case "load":
		return EventLoad, nil
	case "reset":
		return EventReset, nil
	default:
		return 0, fmt.Errorf("unknown event %q", s)
	}
}
