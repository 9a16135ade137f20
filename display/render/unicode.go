package render

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/disintegration/imaging"
)

// HalfBlocks renders an image as text lines of upper half-block
// characters, two pixel rows per text row, colored with 24-bit ANSI
// escapes. The image is scaled to fit cols x rows cells preserving
// aspect ratio, so the result may be narrower or shorter than asked.
// The lines compose like any other art: styling is self-contained and
// visible width equals the pixel width.
func HalfBlocks(img image.Image, cols, rows int) []string {
	if img == nil || cols <= 0 || rows <= 0 {
		return nil
	}

	// Each text row covers two pixel rows.
	resized := imaging.Fit(img, cols, rows*2, imaging.Lanczos)
	bounds := resized.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()

	lines := make([]string, 0, (h+1)/2)

	for y := 0; y < h; y += 2 {
		var b strings.Builder
		for x := 0; x < w; x++ {
			topR, topG, topB := rgb(resized.At(bounds.Min.X+x, bounds.Min.Y+y))

			var botR, botG, botB uint8
			if y+1 < h {
				botR, botG, botB = rgb(resized.At(bounds.Min.X+x, bounds.Min.Y+y+1))
			}

			// Foreground paints the top pixel, background the bottom.
			fmt.Fprintf(&b, "\033[38;2;%d;%d;%dm\033[48;2;%d;%d;%dm▀\033[0m",
				topR, topG, topB, botR, botG, botB)
		}
		lines = append(lines, b.String())
	}

	return lines
}

// rgb flattens a color to 8-bit channels, dropping alpha.
func rgb(c color.Color) (r, g, b uint8) {
	r32, g32, b32, _ := c.RGBA()
	return uint8(r32 >> 8), uint8(g32 >> 8), uint8(b32 >> 8)
}
