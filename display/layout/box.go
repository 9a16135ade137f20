package layout

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

// Unicode box drawing characters.
const (
	boxTopLeft     = '╭'
	boxTopRight    = '╮'
	boxBottomLeft  = '╰'
	boxBottomRight = '╯'
	boxHorizontal  = '─'
	boxVertical    = '│'
)

// Style colors the box chrome. A nil *Style renders plain text, which is
// what tests and NO_COLOR output use.
type Style struct {
	// Border is applied to the box-drawing characters.
	Border lipgloss.Style
	// Title is applied to the title text embedded in the top border.
	Title lipgloss.Style
}

func (s *Style) border(text string) string {
	if s == nil {
		return text
	}
	return s.Border.Render(text)
}

func (s *Style) title(text string) string {
	if s == nil {
		return text
	}
	return s.Title.Render(text)
}

// BoxOptions controls Box sizing and alignment.
type BoxOptions struct {
	// Title is centered in the top border when non-empty.
	Title string
	// MinWidth is a floor for the interior width, applied even when the
	// content is narrower.
	MinWidth int
	// MinHeight is a floor for the total box height including borders.
	// Vertical slack is split between blank rows above and below the
	// content, with the odd row going below.
	MinHeight int
	// Center horizontally centers each content line. When false, lines
	// are left-aligned with the slack on the right.
	Center bool
	// Style colors the borders and title. Nil renders plain.
	Style *Style
}

// Box renders content lines into a bordered rectangle and returns the
// rows. Every returned row has visible width innerWidth+4: two border
// columns plus a one-column margin on each side. The box grows to fit
// the widest line, the title, and MinWidth, so content is never
// truncated. Empty content yields the two border rows alone.
func Box(lines []string, opts BoxOptions) []string {
	contentWidth := 0
	for _, line := range lines {
		if w := VisibleWidth(line); w > contentWidth {
			contentWidth = w
		}
	}

	// Titles are plain text, so a rune count is enough here.
	titleWidth := utf8.RuneCountInString(opts.Title)

	inner := contentWidth
	if titleWidth > inner {
		inner = titleWidth
	}
	if opts.MinWidth > inner {
		inner = opts.MinWidth
	}

	contentHeight := len(lines) + 2
	totalHeight := contentHeight
	if opts.MinHeight > totalHeight {
		totalHeight = opts.MinHeight
	}
	slack := totalHeight - contentHeight
	padTop := slack / 2
	padBottom := slack - padTop

	out := make([]string, 0, totalHeight)
	out = append(out, topBorder(opts.Title, titleWidth, inner, opts.Style))

	blank := blankRow(inner, opts.Style)
	for i := 0; i < padTop; i++ {
		out = append(out, blank)
	}

	vert := opts.Style.border(string(boxVertical))
	for _, line := range lines {
		pad := inner - VisibleWidth(line)
		left, right := 0, pad
		if opts.Center {
			left = pad / 2
			right = pad - left
		}
		out = append(out, vert+" "+strings.Repeat(" ", left)+line+strings.Repeat(" ", right)+" "+vert)
	}

	for i := 0; i < padBottom; i++ {
		out = append(out, blank)
	}

	out = append(out, opts.Style.border(
		string(boxBottomLeft)+strings.Repeat(string(boxHorizontal), inner+2)+string(boxBottomRight)))

	return out
}

// topBorder renders the top row. With a title the rule is split around
// it: the odd dash when the split is uneven goes to the right.
func topBorder(title string, titleWidth, inner int, style *Style) string {
	if title == "" {
		return style.border(
			string(boxTopLeft) + strings.Repeat(string(boxHorizontal), inner+2) + string(boxTopRight))
	}

	left := (inner - titleWidth) / 2
	right := inner - titleWidth - left

	return style.border(string(boxTopLeft)+strings.Repeat(string(boxHorizontal), left)) +
		" " + style.title(title) + " " +
		style.border(strings.Repeat(string(boxHorizontal), right)+string(boxTopRight))
}

// blankRow renders an interior row with no content.
func blankRow(inner int, style *Style) string {
	vert := style.border(string(boxVertical))
	return vert + strings.Repeat(" ", inner+2) + vert
}
