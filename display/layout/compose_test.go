package layout

import (
	"strings"
	"testing"
)

// artOfSize builds a block of h lines, each w columns of the marker rune.
func artOfSize(w, h int, marker string) *ArtBlock {
	lines := make([]string, h)
	for i := range lines {
		lines[i] = strings.Repeat(marker, w)
	}
	return &ArtBlock{Lines: lines}
}

func oneSection() []Section {
	return []Section{
		{Title: "Core", Pairs: []Pair{{Key: "OS", Value: "Linux"}}},
	}
}

func TestChoose(t *testing.T) {
	// ContentWidth(oneSection()) = len("OS: Linux") = 9, so an
	// art variant of width W needs W+18 columns beside the sections.
	wide := artOfSize(20, 10, "#")
	medium := artOfSize(10, 6, "#")
	narrow := artOfSize(5, 3, "#")
	compact := artOfSize(4, 2, "#")

	tests := []struct {
		name string
		geom Geometry
		art  ArtSet
		want Choice
	}{
		{"wide wins on a big terminal", Geometry{100, 30},
			ArtSet{Wide: wide, Medium: medium, Narrow: narrow, Compact: compact}, SideBySideWide},
		{"compact beats medium when present", Geometry{30, 30},
			ArtSet{Wide: wide, Medium: medium, Narrow: narrow, Compact: compact}, SideBySideCompact},
		{"medium without compact", Geometry{30, 30},
			ArtSet{Wide: wide, Medium: medium, Narrow: narrow}, SideBySideMedium},
		{"compact stacks when nothing fits beside", Geometry{20, 24},
			ArtSet{Wide: wide, Medium: medium, Narrow: narrow, Compact: compact}, StackedCompact},
		{"narrow stacks without compact", Geometry{20, 24},
			ArtSet{Wide: wide, Medium: medium, Narrow: narrow}, StackedNarrow},
		{"tiny terminal drops art", Geometry{10, 5},
			ArtSet{Wide: wide, Medium: medium, Narrow: narrow, Compact: compact}, SectionsOnly},
		{"no art at all", Geometry{100, 30}, ArtSet{}, SectionsOnly},
		{"exact width boundary fits", Geometry{38, 30},
			ArtSet{Wide: wide}, SideBySideWide},
		{"one column short falls through", Geometry{37, 3},
			ArtSet{Wide: wide}, SectionsOnly},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := Choose(tt.geom, tt.art, oneSection())
			if got != tt.want {
				t.Errorf("Choose() = %v, want %v", got, tt.want)
			}
		})
	}
}

// A narrow three-line art block on a 40x24 terminal is too wide to sit
// beside the sections but fits above them.
func TestComposeStackedNarrow(t *testing.T) {
	art := ArtSet{Narrow: artOfSize(5, 3, "@")}
	out := Compose(Geometry{40, 24}, art, oneSection(), nil)

	rows := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(rows) != 8 {
		t.Fatalf("got %d rows, want 8 (5 art box + 3 section box):\n%s", len(rows), out)
	}

	// Stacked boxes share one width: sections at 9 beat the art at 5.
	assertUniformWidth(t, rows, 9+4)

	if !strings.Contains(out, "@@@@@") {
		t.Error("art lines missing from stacked output")
	}
}

func TestComposeSectionsOnlyOnTinyTerminal(t *testing.T) {
	art := ArtSet{
		Wide:    artOfSize(20, 10, "#"),
		Narrow:  artOfSize(5, 3, "#"),
		Compact: artOfSize(4, 2, "#"),
	}
	out := Compose(Geometry{10, 5}, art, oneSection(), nil)

	if strings.Contains(out, "#") {
		t.Errorf("sections-only output must not contain art:\n%s", out)
	}
	if !strings.Contains(out, "OS: Linux") {
		t.Errorf("section row missing:\n%s", out)
	}
}

func TestComposeSideBySide(t *testing.T) {
	art := ArtSet{Wide: artOfSize(6, 2, "#")}
	out := Compose(Geometry{80, 24}, art, oneSection(), nil)

	rows := strings.Split(strings.TrimRight(out, "\n"), "\n")

	// The art box stretches to the stack height: 3 rows, not its own 4.
	// Art content is 2 lines + 2 borders = 4 > 3, so 4 rows win.
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 4:\n%s", len(rows), out)
	}

	// Rows covered by both columns: art box (10) + gap + section box (13).
	for i := 0; i < 3; i++ {
		if got := VisibleWidth(rows[i]); got != 10+1+13 {
			t.Errorf("row %d width = %d, want 24 (%q)", i, got, rows[i])
		}
	}
	// The row past the stack's end keeps the gap column.
	if got := VisibleWidth(rows[3]); got != 10+1 {
		t.Errorf("trailing art row width = %d, want 11 (%q)", got, rows[3])
	}
}

func TestComposeSideBySideArtStretchesToStack(t *testing.T) {
	art := ArtSet{Wide: artOfSize(4, 2, "#")}
	sections := []Section{
		{Title: "Core", Pairs: []Pair{
			{Key: "OS", Value: "Linux"},
			{Key: "Kernel", Value: "6.12"},
			{Key: "Uptime", Value: "3d 4h"},
		}},
		{Title: "Hardware", Pairs: []Pair{
			{Key: "CPU", Value: "Ryzen 7"},
			{Key: "Memory", Value: "3.4 GiB / 15.5 GiB"},
		}},
	}

	out := Compose(Geometry{120, 40}, art, sections, nil)
	rows := strings.Split(strings.TrimRight(out, "\n"), "\n")

	// Stack is (3+2)+(2+2) = 9 rows; the art box must match it exactly.
	if len(rows) != 9 {
		t.Fatalf("got %d rows, want 9:\n%s", len(rows), out)
	}

	width := VisibleWidth(rows[0])
	assertUniformWidth(t, rows, width)
}

func TestComposeNeverEmpty(t *testing.T) {
	tests := []struct {
		name     string
		geom     Geometry
		art      ArtSet
		sections []Section
	}{
		{"default geometry, no input", Geometry{80, 24}, ArtSet{}, nil},
		{"zero art lines", Geometry{80, 24}, ArtSet{Wide: &ArtBlock{}}, nil},
		{"tiny terminal", Geometry{1, 1}, ArtSet{}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Compose(tt.geom, tt.art, tt.sections, nil)
			if out == "" {
				t.Error("Compose returned an empty string")
			}
			if !strings.HasSuffix(out, "\n") {
				t.Error("output must end with a newline")
			}
		})
	}
}

func TestChoiceString(t *testing.T) {
	names := map[Choice]string{
		SideBySideWide:    "side-by-side wide",
		SideBySideCompact: "side-by-side compact",
		SideBySideMedium:  "side-by-side medium",
		StackedCompact:    "stacked compact",
		StackedNarrow:     "stacked narrow",
		SectionsOnly:      "sections only",
		Choice(99):        "unknown",
	}
	for c, want := range names {
		if got := c.String(); got != want {
			t.Errorf("Choice(%d).String() = %q, want %q", int(c), got, want)
		}
	}
}
