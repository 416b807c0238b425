package hal

import "arscene/dom"

// InputKind identifies a user gesture the host forwards to the document.
type InputKind uint8

const (
	InputTap      InputKind = iota + 1 // mouse click or touch, X/Y set
	InputActivate                      // Enter
	InputQuit                          // Escape
)

// InputEvent is a gesture in framebuffer (physical) pixels.
type InputEvent struct {
	Kind InputKind
	X, Y int
}

// dispatch routes events to doc. It reports whether a quit was requested.
func dispatch(doc *dom.Document, ratio float64, events []InputEvent) (quit bool) {
	if ratio <= 0 {
		ratio = 1
	}
	for _, ev := range events {
		switch ev.Kind {
		case InputTap:
			doc.Click(int(float64(ev.X)/ratio), int(float64(ev.Y)/ratio))
		case InputActivate:
			doc.Activate()
		case InputQuit:
			quit = true
		}
	}
	return quit
}
