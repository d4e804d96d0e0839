package display

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Sleek arrow, nose up.
var birdDesign = []string{
	".......C.......",
	"......CWC......",
	"......CBC......",
	".....BBBBB.....",
	"....B.B.B.B....",
	"...D..B.B..D...",
	"..D...Y.Y...D..",
	".D....F.F....D.",
}

var birdPalette = map[rune]color.RGBA{
	'C': {R: 0, G: 255, B: 255, A: 255},   // Cyan Tip
	'W': {R: 255, G: 255, B: 255, A: 255}, // White Shine
	'B': {R: 0, G: 100, B: 255, A: 255},   // Main Blue Body
	'D': {R: 0, G: 0, B: 150, A: 255},     // Dark Blue Wings
	'Y': {R: 255, G: 200, B: 0, A: 255},   // Yellow Tail
	'F': {R: 255, G: 100, B: 0, A: 200},   // Faint Trail
}

func birdSprite() *ebiten.Image {
	return generateSprite(birdDesign, birdPalette)
}

// generateSprite converts an ASCII grid into an Ebiten image.
// Runes missing from the palette are transparent.
func generateSprite(design []string, palette map[rune]color.RGBA) *ebiten.Image {
	h := len(design)
	w := 0
	for _, row := range design {
		w = max(w, len(row))
	}
	pix := make([]byte, 4*w*h)
	for y, row := range design {
		for x, char := range row {
			col, ok := palette[char]
			if !ok {
				continue
			}
			// WritePixels expects premultiplied alpha
			i := 4 * (y*w + x)
			pix[i] = uint8(uint16(col.R) * uint16(col.A) / 255)
			pix[i+1] = uint8(uint16(col.G) * uint16(col.A) / 255)
			pix[i+2] = uint8(uint16(col.B) * uint16(col.A) / 255)
			pix[i+3] = col.A
		}
	}
	img := ebiten.NewImage(w, h)
	img.WritePixels(pix)
	return img
}
