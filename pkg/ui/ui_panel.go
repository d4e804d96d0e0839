package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// UIWidget is an interface for all UI widgets
type UIWidget interface {
	Update()
	Draw(screen *ebiten.Image)
	height() float64
	moveTo(y float64)
}

// UIPanel stacks widgets in titled sections. Labels are drawn above
// checkboxes; buttons carry their own label.
type UIPanel struct {
	X, Y          float64
	Width, Height float64
	Title         string
	Widgets       []UIWidget
	Labels        []string

	// Styling
	BGColor     color.RGBA
	BorderColor color.RGBA

	sections []PanelSection
}

// PanelSection groups the widgets [StartIndex, EndIndex) under a title.
type PanelSection struct {
	Title      string
	StartIndex int
	EndIndex   int
}

// NewUIPanel creates a new UI panel
func NewUIPanel(x, y, width, height float64, title string) *UIPanel {
	return &UIPanel{
		X:           x,
		Y:           y,
		Width:       width,
		Height:      height,
		Title:       title,
		BGColor:     color.RGBA{R: 40, G: 40, B: 45, A: 230},
		BorderColor: color.RGBA{R: 100, G: 100, B: 110, A: 255},
	}
}

// AddSection adds a section header
func (p *UIPanel) AddSection(title string) {
	p.sections = append(p.sections, PanelSection{
		Title:      title,
		StartIndex: len(p.Widgets),
	})
}

// EndSection closes the current section
func (p *UIPanel) EndSection() {
	if len(p.sections) > 0 {
		p.sections[len(p.sections)-1].EndIndex = len(p.Widgets)
	}
}

// AddCheckbox adds a checkbox widget to the panel
func (p *UIPanel) AddCheckbox(label string, value bool) *Checkbox {
	checkbox := NewCheckbox(p.X+10, p.Y+p.nextYOffset()+20, label, value)
	p.Widgets = append(p.Widgets, checkbox)
	p.Labels = append(p.Labels, label)
	return checkbox
}

// AddButton adds a full-width button to the panel
func (p *UIPanel) AddButton(label string, onClick func()) *Button {
	button := NewButton(p.X+10, p.Y+p.nextYOffset()+20, p.Width-20, 22, label, onClick)
	p.Widgets = append(p.Widgets, button)
	p.Labels = append(p.Labels, "")
	return button
}

func (p *UIPanel) nextYOffset() float64 {
	offset := float64(len(p.sections)) * 25
	for _, widget := range p.Widgets {
		offset += widget.height() + 15
	}
	return offset
}

// Update handles input for all widgets
func (p *UIPanel) Update() {
	for _, widget := range p.Widgets {
		widget.Update()
	}
}

// Draw renders the panel and all widgets
func (p *UIPanel) Draw(screen *ebiten.Image) {
	vector.FillRect(screen,
		float32(p.X), float32(p.Y),
		float32(p.Width), float32(p.Height),
		p.BGColor, true)
	vector.StrokeRect(screen,
		float32(p.X), float32(p.Y),
		float32(p.Width), float32(p.Height),
		2, p.BorderColor, true)

	ebitenutil.DebugPrintAt(screen, p.Title, int(p.X+10), int(p.Y+5))

	currentY := p.Y + 30
	for _, section := range p.sections {
		vector.FillRect(screen,
			float32(p.X+5), float32(currentY),
			float32(p.Width-10), 20,
			color.RGBA{R: 60, G: 60, B: 70, A: 255}, true)
		ebitenutil.DebugPrintAt(screen, section.Title, int(p.X+10), int(currentY+2))
		currentY += 25

		for i := section.StartIndex; i < section.EndIndex && i < len(p.Widgets); i++ {
			widget := p.Widgets[i]
			if label := p.Labels[i]; label != "" {
				ebitenutil.DebugPrintAt(screen, label, int(p.X+30), int(currentY))
			}
			widget.moveTo(currentY)
			widget.Draw(screen)
			currentY += widget.height() + 15
		}
	}
}
