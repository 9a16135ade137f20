package layout

// Pair is one formatted key/value display row. Both halves are finished
// display strings and may carry their own color escapes.
type Pair struct {
	Key   string
	Value string
}

// Section is a titled group of key/value rows, e.g. "Hardware" with CPU,
// GPU, Memory, Storage. Insertion order is display order.
type Section struct {
	Title string
	Pairs []Pair
}

// rows formats the pairs as "key: value" display lines.
func (s Section) rows() []string {
	rows := make([]string, 0, len(s.Pairs))
	for _, p := range s.Pairs {
		rows = append(rows, p.Key+": "+p.Value)
	}
	return rows
}

// ContentWidth returns the widest visible width over every section
// title and every "key: value" row. This is the shared interior width
// the section boxes will render at.
func ContentWidth(sections []Section) int {
	width := 0
	for _, s := range sections {
		if w := VisibleWidth(s.Title); w > width {
			width = w
		}
		for _, row := range s.rows() {
			if w := VisibleWidth(row); w > width {
				width = w
			}
		}
	}
	return width
}

// FormatSections renders each section as a titled box and returns the
// flattened rows in input order, with no separator rows between boxes.
// All boxes share one interior width: the widest title or row across
// every section, or sharedWidth when that is larger. Pass sharedWidth 0
// to size from content alone. Content is left-aligned; a section with no
// pairs renders as a title bar with only its two border rows.
func FormatSections(sections []Section, sharedWidth int, style *Style) []string {
	width := ContentWidth(sections)
	if sharedWidth > width {
		width = sharedWidth
	}

	var out []string
	for _, s := range sections {
		out = append(out, Box(s.rows(), BoxOptions{
			Title:    s.Title,
			MinWidth: width,
			Style:    style,
		})...)
	}
	return out
}
