// Package terminal is a text frontend: bodies are drawn as arrows on a
// tcell screen scaled down from the simulation domain.
package terminal

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/behavior"
	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/geometry"
)

// Headings increase clockwise on screen because y points down.
var arrows = [8]rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}

var arrowStyles = [8]tcell.Style{
	tcell.StyleDefault.Foreground(tcell.ColorAqua),
	tcell.StyleDefault.Foreground(tcell.ColorTeal),
	tcell.StyleDefault.Foreground(tcell.ColorGreen),
	tcell.StyleDefault.Foreground(tcell.ColorOlive),
	tcell.StyleDefault.Foreground(tcell.ColorYellow),
	tcell.StyleDefault.Foreground(tcell.ColorFuchsia),
	tcell.StyleDefault.Foreground(tcell.ColorPurple),
	tcell.StyleDefault.Foreground(tcell.ColorBlue),
}

var hudStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true)

// Terminal renders snapshots on a tcell screen and reports quit keys.
type Terminal struct {
	screen  tcell.Screen
	events  chan tcell.Event
	done    chan struct{}
	quit    bool
	showHUD bool
}

// New initializes screen and starts forwarding its events.
func New(screen tcell.Screen, showHUD bool) (*Terminal, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to init terminal screen: %w", err)
	}
	screen.HideCursor()

	t := &Terminal{
		screen:  screen,
		events:  make(chan tcell.Event, 64),
		done:    make(chan struct{}),
		showHUD: showHUD,
	}
	go t.pollEvents()
	return t, nil
}

func (t *Terminal) pollEvents() {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			// screen finalized
			return
		}
		select {
		case t.events <- ev:
		case <-t.done:
			return
		}
	}
}

// QuitRequested drains pending events and reports whether Esc, Ctrl-C or q
// was pressed.
func (t *Terminal) QuitRequested() bool {
	for {
		select {
		case ev := <-t.events:
			t.handleEvent(ev)
		default:
			return t.quit
		}
	}
}

func (t *Terminal) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			t.quit = true
		case tcell.KeyRune:
			if ev.Rune() == 'q' || ev.Rune() == 'Q' {
				t.quit = true
			}
		}
	case *tcell.EventResize:
		t.screen.Sync()
	}
}

// Render draws one frame. The domain is stretched over the whole screen,
// minus the status line when the HUD is on.
func (t *Terminal) Render(snap *behavior.Snapshot) error {
	t.screen.Clear()
	cols, rows := t.screen.Size()
	if t.showHUD {
		rows--
	}
	if cols <= 0 || rows <= 0 || snap == nil {
		t.screen.Show()
		return nil
	}

	for i := range snap.Bodies {
		b := &snap.Bodies[i]
		x := cell(b.Pos.X, snap.Width, cols)
		y := cell(b.Pos.Y, snap.Height, rows)
		o := octant(b.Heading)
		t.screen.SetContent(x, y, arrows[o], nil, arrowStyles[o])
	}

	if t.showHUD {
		t.drawText(0, rows, fmt.Sprintf(" step %d | bodies %d | q to quit ", snap.Step, len(snap.Bodies)))
	}
	t.screen.Show()
	return nil
}

func (t *Terminal) drawText(x, y int, text string) {
	for _, r := range text {
		t.screen.SetContent(x, y, r, nil, hudStyle)
		x++
	}
}

// Close restores the terminal.
func (t *Terminal) Close() {
	close(t.done)
	t.screen.Fini()
}

// cell maps a domain coordinate onto one of n character cells.
func cell(v, extent float64, n int) int {
	c := int(v / extent * float64(n))
	return min(max(c, 0), n-1)
}

// octant picks the arrow closest to heading.
func octant(heading float64) int {
	o := int(math.Round(geometry.NormalizeDegrees(heading) / 45))
	return (o%8 + 8) % 8
}
