package render

import (
	"fmt"
	"image"
	"strings"

	"gitlab.com/tinyland/lab/slowfetch/display/layout"
)

// ComposeImage renders the banner with an image pane in place of the
// ASCII art. A wide terminal gets the pane beside the sections stack,
// a tall one gets it above; when neither fits, or the protocol is
// none, the sections render alone. The returned string is written to
// stdout as-is: in kitty mode it ends with cursor movements that
// paint the image into the pane drawn just before.
func ComposeImage(geom layout.Geometry, img image.Image, p Protocol, sections []layout.Section, style *layout.Style) string {
	p = Resolve(p, nil)
	if img == nil || p == ProtocolNone {
		return layout.Compose(geom, layout.ArtSet{}, sections, style)
	}

	sectionsWidth := layout.ContentWidth(sections)
	sectionsRows := 0
	for _, s := range sections {
		sectionsRows += len(s.Pairs) + 2
	}

	// Cells are roughly twice as tall as wide, so doubling the row
	// count gives a square-ish pane.
	besideCols := sectionsRows * 2
	if besideCols > 0 && geom.Columns >= besideCols+4+1+sectionsWidth+4 {
		return composeImageBeside(img, p, besideCols, sections, style)
	}

	stackedCols := sectionsWidth
	stackedBoxRows := (stackedCols + 7) / 2
	if stackedCols > 8 && geom.Rows >= stackedBoxRows+sectionsRows {
		return composeImageStacked(img, p, stackedCols, stackedBoxRows, sections, style)
	}

	return layout.Compose(geom, layout.ArtSet{}, sections, style)
}

// composeImageBeside puts the image pane left of the sections stack,
// matching the stack's height.
func composeImageBeside(img image.Image, p Protocol, imgCols int, sections []layout.Section, style *layout.Style) string {
	stack := layout.FormatSections(sections, 0, style)
	imgRows := len(stack) - 2
	if imgRows < 1 {
		imgRows = 1
	}

	var content []string
	if p == ProtocolUnicode {
		content = HalfBlocks(img, imgCols, imgRows)
	}

	box := layout.Box(content, layout.BoxOptions{
		MinWidth:  imgCols,
		MinHeight: len(stack),
		Center:    true,
		Style:     style,
	})

	boxWidth := 0
	if len(box) > 0 {
		boxWidth = layout.VisibleWidth(box[0])
	}

	rows := len(box)
	if len(stack) > rows {
		rows = len(stack)
	}

	var b strings.Builder
	for i := 0; i < rows; i++ {
		if i < len(box) {
			b.WriteString(box[i])
		} else {
			b.WriteString(strings.Repeat(" ", boxWidth))
		}
		b.WriteByte(' ')
		if i < len(stack) {
			b.WriteString(stack[i])
		}
		b.WriteByte('\n')
	}

	if p == ProtocolKitty {
		appendKittyOverlay(&b, img, imgCols, imgRows, rows)
	}
	return b.String()
}

// composeImageStacked puts the image pane above the sections stack at
// one shared interior width.
func composeImageStacked(img image.Image, p Protocol, imgCols, boxRows int, sections []layout.Section, style *layout.Style) string {
	imgRows := boxRows - 2

	var content []string
	if p == ProtocolUnicode {
		content = HalfBlocks(img, imgCols, imgRows)
	}

	box := layout.Box(content, layout.BoxOptions{
		MinWidth:  imgCols,
		MinHeight: boxRows,
		Center:    true,
		Style:     style,
	})
	stack := layout.FormatSections(sections, imgCols, style)

	var b strings.Builder
	for _, row := range box {
		b.WriteString(row)
		b.WriteByte('\n')
	}
	for _, row := range stack {
		b.WriteString(row)
		b.WriteByte('\n')
	}

	if p == ProtocolKitty {
		appendKittyOverlay(&b, img, imgCols, imgRows, len(box)+len(stack))
	}
	return b.String()
}

// appendKittyOverlay moves the cursor back up into the pane interior,
// emits the graphics escape, and parks the cursor under the layout
// again. totalRows counts the newline-terminated rows just written;
// the pane interior starts on the second row, two columns in.
func appendKittyOverlay(b *strings.Builder, img image.Image, imgCols, imgRows, totalRows int) {
	escape, err := KittyEscape(img, imgCols, imgRows)
	if err != nil {
		return
	}

	fmt.Fprintf(b, "\033[%dA", totalRows-1)
	b.WriteString("\033[2C")
	b.WriteString(escape)
	fmt.Fprintf(b, "\033[%dB", totalRows)
	b.WriteByte('\n')
}
