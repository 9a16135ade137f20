// Package layout is the rendering core of slowfetch: ANSI-aware width
// measurement, bordered box construction, section formatting, and the
// strategy selection that adapts the final banner to the terminal size.
//
// Every function here is total. Bad input degrades (boxes grow to fit,
// the selector falls through to a sections-only banner) instead of
// returning errors, so a render call can never fail.
package layout

// VisibleWidth returns the on-screen column count of s.
//
// An escape sequence starts at ESC (0x1B) and contributes zero width up to
// and including the next 'm' byte, which covers the SGR color/style
// sequences this program emits without needing a full ANSI grammar.
// Outside escapes, every UTF-8 lead byte counts as one column and
// continuation bytes count as zero, so multi-byte runes measure as a
// single column. Double-width glyphs are undercounted by one; the
// renderer only deals in single-width text.
//
// All width math in this package goes through VisibleWidth. Raw len()
// breaks alignment as soon as a string carries color.
func VisibleWidth(s string) int {
	width := 0
	inEscape := false

	for i := 0; i < len(s); i++ {
		b := s[i]
		if inEscape {
			if b == 'm' {
				inEscape = false
			}
			continue
		}
		if b == 0x1b {
			inEscape = true
			continue
		}
		// Count lead bytes only: 0xxxxxxx ASCII and 11xxxxxx starts.
		if b&0xc0 != 0x80 {
			width++
		}
	}

	return width
}
