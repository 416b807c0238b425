//go:build cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type hostInput struct {
	touches []ebiten.TouchID
	events  []InputEvent
}

// poll collects the gestures that started this tick. Positions are in
// layout space, which is the framebuffer size.
func (in *hostInput) poll() []InputEvent {
	in.events = in.events[:0]

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		in.events = append(in.events, InputEvent{Kind: InputTap, X: x, Y: y})
	}
	in.touches = inpututil.AppendJustPressedTouchIDs(in.touches[:0])
	for _, id := range in.touches {
		x, y := ebiten.TouchPosition(id)
		in.events = append(in.events, InputEvent{Kind: InputTap, X: x, Y: y})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter) {
		in.events = append(in.events, InputEvent{Kind: InputActivate})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		in.events = append(in.events, InputEvent{Kind: InputQuit})
	}
	return in.events
}
