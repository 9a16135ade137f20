// Package tui implements the live summary view. The banner is
// re-composed on every collector update and terminal resize, so the
// preview always matches the real geometry. Header labels toggle their
// section on click or on the 1-3 keys.
package tui

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"gitlab.com/tinyland/lab/slowfetch/collectors"
	"gitlab.com/tinyland/lab/slowfetch/display/banner"
	"gitlab.com/tinyland/lab/slowfetch/display/layout"
	"gitlab.com/tinyland/lab/slowfetch/display/widgets"
)

// chromeRows is the screen space reserved around the preview: the
// header label row, one separator row, and the two footer rows.
const chromeRows = 4

// sparkSamples bounds the memory history shown in the footer.
const sparkSamples = 30

// UpdateMsg delivers one collector result to the model. The runner
// bridge in main converts collectors.Update values into this type.
type UpdateMsg collectors.Update

// refreshMsg carries the results of a forced full collection.
type refreshMsg []*collectors.Result

// Model is the top-level Bubbletea model for the live view.
type Model struct {
	banner   *banner.Banner
	registry *collectors.Registry
	logger   *slog.Logger

	order   []string
	results map[string]*collectors.Result
	hidden  map[string]bool

	width       int
	height      int
	ready       bool
	lastUpdated time.Time
	lastErr     error
	memHistory  []float64

	help help.Model
}

// New returns an initialized Model. The banner renders the preview and
// the registry supplies section order and forced refreshes. A nil
// logger is replaced with slog.Default().
func New(b *banner.Banner, registry *collectors.Registry, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}

	var order []string
	for _, c := range registry.All() {
		order = append(order, c.Name())
	}

	return Model{
		banner:   b,
		registry: registry,
		logger:   logger,
		order:    order,
		results:  make(map[string]*collectors.Result),
		hidden:   make(map[string]bool),
		help:     help.New(),
	}
}

// Init implements tea.Model. The runner delivers the initial data, so
// no command is needed.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model. It handles key presses, header clicks,
// window resizes, and collector updates.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Refresh):
			return m, m.refreshCmd()
		case key.Matches(msg, keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, keys.Section1):
			m.toggleSection(0)
		case key.Matches(msg, keys.Section2):
			m.toggleSection(1)
		case key.Matches(msg, keys.Section3):
			m.toggleSection(2)
		}

	case tea.MouseMsg:
		if msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionPress {
			break
		}
		for i, name := range m.order {
			if z := zone.Get(sectionZoneID(name)); z != nil && z.InBounds(msg) {
				m.toggleSection(i)
				break
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true

	case UpdateMsg:
		if msg.Err == nil && msg.Result != nil {
			m.results[msg.Source] = msg.Result
			m.memHistory = appendMemorySample(m.memHistory, msg.Result)
		}
		m.lastErr = msg.Err
		m.lastUpdated = msg.Timestamp

	case refreshMsg:
		for i, name := range m.order {
			if i < len(msg) && msg[i] != nil {
				m.results[name] = msg[i]
				m.memHistory = appendMemorySample(m.memHistory, msg[i])
			}
		}
		m.lastUpdated = time.Now()
	}

	return m, nil
}

// View implements tea.Model. It renders the header labels, the banner
// preview, and the help footer, then scans the result for click zones.
func (m Model) View() string {
	if !m.ready {
		return "Measuring terminal..."
	}

	header := m.renderHeader()
	content := m.renderPreview()
	footer := m.renderFooter()

	return zone.Scan(lipgloss.JoinVertical(lipgloss.Left, header, "", content, footer))
}

// renderHeader renders one clickable label per section. Hidden sections
// stay in the bar, dimmed, so they can be toggled back.
func (m Model) renderHeader() string {
	labels := make([]string, 0, len(m.order))
	for _, name := range m.order {
		style := styleShown
		if m.hidden[name] {
			style = styleHidden
		}
		labels = append(labels, zone.Mark(sectionZoneID(name), style.Render(m.sectionLabel(name))))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, labels...)
}

// renderPreview composes the banner at the current geometry.
func (m Model) renderPreview() string {
	rows := m.height - chromeRows
	if rows < 1 {
		rows = 1
	}
	geom := layout.Geometry{Columns: m.width, Rows: rows}

	out, err := m.banner.RenderAt(context.Background(), m.visibleResults(), geom)
	if err != nil {
		return styleError.Render("render error: " + err.Error())
	}
	return strings.TrimRight(out, "\n")
}

// renderFooter renders the status line, the memory sparkline once
// enough samples exist, and the help bar.
func (m Model) renderFooter() string {
	status := "waiting for collectors"
	if !m.lastUpdated.IsZero() {
		status = "updated " + m.lastUpdated.Format("15:04:05")
	}
	line := styleStatus.Render(status)
	if len(m.memHistory) > 1 {
		spark := widgets.RenderSparkline(widgets.SparklineConfig{
			Data: m.memHistory,
			Max:  100,
			Fill: styleSpark,
		})
		line += styleStatus.Render("  mem ") + spark
	}
	if m.lastErr != nil {
		line += "  " + styleError.Render(m.lastErr.Error())
	}
	return line + "\n" + m.help.View(keys)
}

// refreshCmd runs every collector once, off the update loop.
func (m Model) refreshCmd() tea.Cmd {
	registry, logger := m.registry, m.logger
	return func() tea.Msg {
		return refreshMsg(collectors.Gather(context.Background(), registry, logger, 0))
	}
}

// visibleResults returns the latest results for the sections that are
// not hidden, in registration order. Sections with no data yet are nil
// entries, which the banner skips.
func (m Model) visibleResults() []*collectors.Result {
	out := make([]*collectors.Result, 0, len(m.order))
	for _, name := range m.order {
		if m.hidden[name] {
			continue
		}
		out = append(out, m.results[name])
	}
	return out
}

// toggleSection flips the visibility of the i-th registered section.
func (m Model) toggleSection(i int) {
	if i < 0 || i >= len(m.order) {
		return
	}
	name := m.order[i]
	m.hidden[name] = !m.hidden[name]
}

// appendMemorySample pulls the memory usage percent out of a result
// and appends it to hist, keeping the newest sparkSamples. Results
// without a memory gauge leave hist unchanged.
func appendMemorySample(hist []float64, res *collectors.Result) []float64 {
	if res == nil {
		return hist
	}
	for _, f := range res.Fields {
		if f.Key != "Memory" || f.Percent < 0 {
			continue
		}
		hist = append(hist, float64(f.Percent))
		if len(hist) > sparkSamples {
			hist = hist[len(hist)-sparkSamples:]
		}
		break
	}
	return hist
}

// sectionLabel prefers the collected section title and falls back to
// the capitalized collector name before data arrives.
func (m Model) sectionLabel(name string) string {
	if res := m.results[name]; res != nil && res.Title != "" {
		return res.Title
	}
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

func sectionZoneID(name string) string {
	return "section:" + name
}
