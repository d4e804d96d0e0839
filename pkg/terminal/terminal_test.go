package terminal

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/behavior"
	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/geometry"
)

func newTestTerminal(t *testing.T, showHUD bool) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	term, err := New(screen, showHUD)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	screen.SetSize(80, 24)
	t.Cleanup(term.Close)
	return term, screen
}

func TestOctant(t *testing.T) {
	tests := []struct {
		heading float64
		want    rune
	}{
		{0, '→'},
		{44, '↘'},
		{-44, '↗'},
		{90, '↓'},
		{-90, '↑'},
		{180, '←'},
		{-180, '←'},
		{135, '↙'},
		{-135, '↖'},
		{22, '→'},
		{23, '↘'},
		{359, '→'},
	}
	for _, tt := range tests {
		if got := arrows[octant(tt.heading)]; got != tt.want {
			t.Errorf("arrow for heading %v = %q; want %q", tt.heading, got, tt.want)
		}
	}
}

func TestCell(t *testing.T) {
	tests := []struct {
		v, extent float64
		n, want   int
	}{
		{0, 1200, 80, 0},
		{600, 1200, 80, 40},
		{1199.9, 1200, 80, 79},
		{1200, 1200, 80, 79},
		{-1, 1200, 80, 0},
	}
	for _, tt := range tests {
		if got := cell(tt.v, tt.extent, tt.n); got != tt.want {
			t.Errorf("cell(%v, %v, %d) = %d; want %d", tt.v, tt.extent, tt.n, got, tt.want)
		}
	}
}

func TestTerminal_Render(t *testing.T) {
	term, screen := newTestTerminal(t, true)
	snap := &behavior.Snapshot{
		Step:   7,
		Width:  800,
		Height: 230,
		Bodies: []behavior.Body{
			behavior.NewBody(geometry.Vector2D{X: 0, Y: 0}, 0, 15),
			behavior.NewBody(geometry.Vector2D{X: 400, Y: 115}, 90, 15),
			behavior.NewBody(geometry.Vector2D{X: 799, Y: 229}, 180, 15),
		},
	}

	if err := term.Render(snap); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	// 80x23 cells for the domain, status line on row 23
	want := []struct {
		x, y int
		r    rune
	}{
		{0, 0, '→'},
		{40, 11, '↓'},
		{79, 22, '←'},
	}
	for _, w := range want {
		got, _, _, _ := screen.GetContent(w.x, w.y)
		if got != w.r {
			t.Errorf("cell (%d, %d) = %q; want %q", w.x, w.y, got, w.r)
		}
	}

	var hud []rune
	for x := 0; x < 8; x++ {
		r, _, _, _ := screen.GetContent(x, 23)
		hud = append(hud, r)
	}
	if got := string(hud); got != " step 7 " {
		t.Errorf("status line starts with %q; want %q", got, " step 7 ")
	}
}

func TestTerminal_QuitKeys(t *testing.T) {
	tests := []struct {
		name string
		key  tcell.Key
		r    rune
		quit bool
	}{
		{"Escape", tcell.KeyEscape, 0, true},
		{"Ctrl-C", tcell.KeyCtrlC, 0, true},
		{"q", tcell.KeyRune, 'q', true},
		{"Other rune", tcell.KeyRune, 'x', false},
		{"Arrow key", tcell.KeyUp, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term, screen := newTestTerminal(t, false)
			if term.QuitRequested() {
				t.Fatal("QuitRequested() = true before any key")
			}

			screen.InjectKey(tt.key, tt.r, tcell.ModNone)

			// the poll goroutine forwards asynchronously
			deadline := time.Now().Add(500 * time.Millisecond)
			got := term.QuitRequested()
			for !got && time.Now().Before(deadline) {
				time.Sleep(5 * time.Millisecond)
				got = term.QuitRequested()
			}
			if got != tt.quit {
				t.Errorf("QuitRequested() after %s = %v; want %v", tt.name, got, tt.quit)
			}
		})
	}
}
