package layout

import "strings"

// ArtBlock is one size variant of the logo: pre-rendered text lines that
// may carry color escapes. The renderer only measures and boxes it.
type ArtBlock struct {
	Lines []string
}

// Width returns the widest visible line width.
func (b *ArtBlock) Width() int {
	if b == nil {
		return 0
	}
	width := 0
	for _, line := range b.Lines {
		if w := VisibleWidth(line); w > width {
			width = w
		}
	}
	return width
}

// Height returns the line count.
func (b *ArtBlock) Height() int {
	if b == nil {
		return 0
	}
	return len(b.Lines)
}

// ArtSet holds the available logo size variants. Any variant may be nil;
// a missing variant removes its rows from the strategy table.
type ArtSet struct {
	Wide    *ArtBlock
	Medium  *ArtBlock
	Narrow  *ArtBlock
	Compact *ArtBlock
}

// Choice identifies the composition strategy picked for one render.
type Choice int

const (
	// SideBySideWide puts the wide art box left of the sections stack.
	SideBySideWide Choice = iota
	// SideBySideCompact puts the compact art box left of the sections stack.
	SideBySideCompact
	// SideBySideMedium puts the medium art box left of the sections stack.
	SideBySideMedium
	// StackedCompact puts the compact art box above the sections stack.
	StackedCompact
	// StackedNarrow puts the narrow art box above the sections stack.
	StackedNarrow
	// SectionsOnly drops the art entirely.
	SectionsOnly
)

// String returns the human-readable name of the choice.
func (c Choice) String() string {
	switch c {
	case SideBySideWide:
		return "side-by-side wide"
	case SideBySideCompact:
		return "side-by-side compact"
	case SideBySideMedium:
		return "side-by-side medium"
	case StackedCompact:
		return "stacked compact"
	case StackedNarrow:
		return "stacked narrow"
	case SectionsOnly:
		return "sections only"
	default:
		return "unknown"
	}
}

// besideWidth returns the columns needed to put an art box of the given
// content width next to the sections stack: both boxes add 4 columns of
// chrome and one gap column sits between them.
func besideWidth(artWidth, sectionsWidth int) int {
	return artWidth + 4 + 1 + sectionsWidth + 4
}

// stackedHeight returns the rows needed to put an art box of the given
// line count above the per-section boxes.
func stackedHeight(artHeight int, sections []Section) int {
	rows := artHeight + 2
	for _, s := range sections {
		rows += len(s.Pairs) + 2
	}
	return rows
}

// Choose walks the strategy table in priority order and returns the
// first choice that fits the geometry, plus the art variant it uses
// (nil for SectionsOnly). Side-by-side prefers the largest art the
// terminal is wide enough for; when no variant fits horizontally the
// art moves above the sections if the terminal is tall enough; the
// final fallback always applies, so Choose is total.
func Choose(geom Geometry, art ArtSet, sections []Section) (Choice, *ArtBlock) {
	sectionsWidth := ContentWidth(sections)

	if art.Wide != nil && geom.Columns >= besideWidth(art.Wide.Width(), sectionsWidth) {
		return SideBySideWide, art.Wide
	}
	if art.Compact != nil && geom.Columns >= besideWidth(art.Compact.Width(), sectionsWidth) {
		return SideBySideCompact, art.Compact
	}
	if art.Medium != nil && geom.Columns >= besideWidth(art.Medium.Width(), sectionsWidth) {
		return SideBySideMedium, art.Medium
	}
	if art.Compact != nil && geom.Rows >= stackedHeight(art.Compact.Height(), sections) {
		return StackedCompact, art.Compact
	}
	if art.Narrow != nil && geom.Rows >= stackedHeight(art.Narrow.Height(), sections) {
		return StackedNarrow, art.Narrow
	}
	return SectionsOnly, nil
}

// Compose picks a strategy for the given geometry and renders the final
// banner: one newline-terminated row per line, safe to write to stdout
// as-is. It never fails; with no art or a tiny terminal it emits the
// sections alone.
func Compose(geom Geometry, art ArtSet, sections []Section, style *Style) string {
	choice, block := Choose(geom, art, sections)

	switch choice {
	case SideBySideWide, SideBySideCompact, SideBySideMedium:
		return composeBeside(block, sections, style)
	case StackedCompact, StackedNarrow:
		return composeStacked(block, sections, style)
	default:
		rows := FormatSections(sections, 0, style)
		if len(rows) == 0 {
			// Degenerate input still yields a banner: an empty box.
			rows = Box(nil, BoxOptions{Style: style})
		}
		return joinRows(rows)
	}
}

// composeBeside interleaves the art box with the sections stack row by
// row. The art box is built after the stack so its MinHeight can match
// the stack exactly; rows past the end of the stack still carry the gap
// column, rows past the end of the art box are padded with spaces of
// the art box width.
func composeBeside(block *ArtBlock, sections []Section, style *Style) string {
	stack := FormatSections(sections, 0, style)
	artBox := Box(block.Lines, BoxOptions{
		MinHeight: len(stack),
		Center:    true,
		Style:     style,
	})

	artWidth := 0
	if len(artBox) > 0 {
		artWidth = VisibleWidth(artBox[0])
	}

	rows := len(artBox)
	if len(stack) > rows {
		rows = len(stack)
	}

	var b strings.Builder
	for i := 0; i < rows; i++ {
		if i < len(artBox) {
			b.WriteString(artBox[i])
		} else {
			b.WriteString(strings.Repeat(" ", artWidth))
		}
		b.WriteByte(' ')
		if i < len(stack) {
			b.WriteString(stack[i])
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// composeStacked puts the art box above the sections stack at one shared
// interior width so the columns line up.
func composeStacked(block *ArtBlock, sections []Section, style *Style) string {
	shared := block.Width()
	if w := ContentWidth(sections); w > shared {
		shared = w
	}

	artBox := Box(block.Lines, BoxOptions{
		MinWidth: shared,
		Center:   true,
		Style:    style,
	})
	stack := FormatSections(sections, shared, style)

	return joinRows(append(artBox, stack...))
}

// joinRows terminates every row with a newline.
func joinRows(rows []string) string {
	var b strings.Builder
	for _, row := range rows {
		b.WriteString(row)
		b.WriteByte('\n')
	}
	return b.String()
}
