package ui

import "github.com/hajimehoshi/ebiten/v2"

// hovered reports whether the mouse cursor is inside the rectangle.
func hovered(x, y, w, h float64) bool {
	mx, my := ebiten.CursorPosition()
	return float64(mx) >= x && float64(mx) <= x+w &&
		float64(my) >= y && float64(my) <= y+h
}

// clickLatch turns a held mouse button into a single click.
type clickLatch struct {
	held bool
}

// fire reports true on the first frame the button is pressed over the widget.
func (l *clickLatch) fire(over bool) bool {
	if over && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if !l.held {
			l.held = true
			return true
		}
		return false
	}
	l.held = false
	return false
}
