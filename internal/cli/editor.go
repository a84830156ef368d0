package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pagegrid/pagegrid/pkg/drag"
	"github.com/pagegrid/pagegrid/pkg/engine"
	"github.com/pagegrid/pagegrid/pkg/grid"
	pgio "github.com/pagegrid/pagegrid/pkg/io"
	"github.com/pagegrid/pagegrid/pkg/widget"
)

// Editor styles
var (
	editorSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	editorNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	editorLockedStyle   = lipgloss.NewStyle().Foreground(colorYellow)
	editorDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	editorCanvasStyle   = lipgloss.NewStyle().Foreground(colorGray)
)

// canvasGlyphs label root widgets on the mini canvas, in document order.
const canvasGlyphs = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// =============================================================================
// editorModel - Interactive layout editing
// =============================================================================

// editorModel is the bubbletea model for the layout editor. All document
// mutations go through the engine so undo/redo and collision handling behave
// exactly as they do for any other engine host.
type editorModel struct {
	eng     *engine.Engine
	tracker *drag.Tracker
	catalog *widget.Catalog
	path    string

	state engine.State

	palette       []widget.Definition
	paletteOpen   bool
	paletteCursor int

	status string
	saved  bool
	height int
}

// newEditorModel creates an editor over an engine seeded with the document
// being edited.
func newEditorModel(eng *engine.Engine, cat *widget.Catalog, path string) editorModel {
	return editorModel{
		eng:     eng,
		tracker: drag.NewTracker(eng),
		catalog: cat,
		path:    path,
		state:   eng.State(),
		palette: cat.Definitions(),
		height:  24,
	}
}

func (m editorModel) Init() tea.Cmd {
	return nil
}

func (m editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.paletteOpen {
			return m.updatePalette(msg)
		}
		return m.updateCanvas(msg)
	case tea.WindowSizeMsg:
		m.height = msg.Height
	}
	return m, nil
}

// updatePalette handles keys while the widget palette is open.
func (m editorModel) updatePalette(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.paletteOpen = false
		m.tracker.Cancel()
	case "up", "k":
		if m.paletteCursor > 0 {
			m.paletteCursor--
		}
	case "down", "j":
		if m.paletteCursor < len(m.palette)-1 {
			m.paletteCursor++
		}
	case "enter":
		def := m.palette[m.paletteCursor]
		m.tracker.Start(drag.FromPalette(def.Type))
		m.tracker.End(nil)
		m.paletteOpen = false
		m.refresh()
		m.status = fmt.Sprintf("added %s", def.Type)
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

// updateCanvas handles keys on the main editing view.
func (m editorModel) updateCanvas(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "tab", "down":
		m.selectOffset(1)
	case "shift+tab", "up":
		m.selectOffset(-1)

	case "a":
		if len(m.palette) > 0 {
			m.paletteOpen = true
			m.paletteCursor = 0
		}

	case "h", "left":
		m.moveSelected(-1, 0)
	case "l", "right":
		m.moveSelected(1, 0)
	case "k":
		m.moveSelected(0, -1)
	case "j":
		m.moveSelected(0, 1)

	case "+", "=":
		m.resizeSelected(1, 0)
	case "-":
		m.resizeSelected(-1, 0)
	case ">":
		m.resizeSelected(0, 1)
	case "<":
		m.resizeSelected(0, -1)

	case "d":
		if w, ok := m.eng.SelectedWidget(); ok {
			if clone, ok := m.eng.DuplicateWidget(w.ID); ok {
				m.status = fmt.Sprintf("duplicated %s", clone.Type)
			}
			m.refresh()
		}
	case "x", "delete", "backspace":
		if w, ok := m.eng.SelectedWidget(); ok {
			m.eng.RemoveWidget(w.ID)
			m.refresh()
			m.status = fmt.Sprintf("removed %s", w.Type)
		}
	case "L":
		if w, ok := m.eng.SelectedWidget(); ok {
			m.eng.ToggleLock(w.ID, !w.Locked)
			m.refresh()
		}

	case "u":
		m.eng.Undo()
		m.refresh()
		m.status = "undo"
	case "ctrl+r", "r":
		m.eng.Redo()
		m.refresh()
		m.status = "redo"

	case "m":
		m.cycleMode()

	case "s":
		if err := pgio.ExportFile(m.state.Layout, m.path); err != nil {
			m.status = "save failed: " + err.Error()
		} else {
			m.eng.MarkClean()
			m.saved = true
			m.refresh()
			m.status = "saved"
		}
	}
	return m, nil
}

// refresh pulls a fresh state snapshot from the engine.
func (m *editorModel) refresh() {
	m.state = m.eng.State()
}

// selectOffset moves the selection by delta within the root widgets.
func (m *editorModel) selectOffset(delta int) {
	roots := m.state.Layout.Widgets
	if len(roots) == 0 {
		return
	}
	idx := 0
	for i, w := range roots {
		if w.ID == m.state.SelectedID {
			idx = i + delta
			break
		}
	}
	if idx < 0 {
		idx = len(roots) - 1
	}
	if idx >= len(roots) {
		idx = 0
	}
	m.eng.Select(roots[idx].ID)
	m.refresh()
}

// moveSelected shifts the selected widget by a grid cell delta. Collision
// fallback is the engine's concern; the editor just proposes the target.
func (m *editorModel) moveSelected(dx, dy int) {
	w, ok := m.eng.SelectedWidget()
	if !ok || w.Locked {
		return
	}
	pos := w.Position
	pos.X += dx
	pos.Y += dy
	if pos.X < 0 || pos.Y < 0 {
		return
	}
	m.eng.MoveWidget(w.ID, pos)
	m.refresh()
}

// resizeSelected grows or shrinks the selected widget by a cell delta.
func (m *editorModel) resizeSelected(dw, dh int) {
	w, ok := m.eng.SelectedWidget()
	if !ok || w.Locked {
		return
	}
	pos := w.Position
	pos.Width += dw
	pos.Height += dh
	if pos.Width < 1 || pos.Height < 1 {
		return
	}
	m.eng.MoveWidget(w.ID, pos)
	m.refresh()
}

// cycleMode advances through the editor modes in a fixed order.
func (m *editorModel) cycleMode() {
	order := []engine.Mode{engine.ModeEdit, engine.ModePreview, engine.ModeMobile, engine.ModeTablet, engine.ModeDesktop}
	for i, mode := range order {
		if mode == m.state.Mode {
			m.eng.SetMode(order[(i+1)%len(order)])
			break
		}
	}
	m.refresh()
}

func (m editorModel) View() string {
	if m.paletteOpen {
		return m.viewPalette()
	}
	return m.viewCanvas()
}

// viewPalette renders the widget palette overlay.
func (m editorModel) viewPalette() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render("Add Widget"))
	b.WriteString("\n")
	b.WriteString(editorDimStyle.Render("↑/↓ navigate  ⏎ add  esc cancel"))
	b.WriteString("\n\n")

	for i, def := range m.palette {
		cursor := "  "
		style := editorNormalStyle
		if i == m.paletteCursor {
			cursor = "▸ "
			style = editorSelectedStyle
		}
		size := fmt.Sprintf("%dx%d", def.Width, def.Height)
		b.WriteString(cursor + style.Render(def.Label) + " " + editorDimStyle.Render(size))
		b.WriteString("\n")
	}
	return b.String()
}

// viewCanvas renders the document summary, a mini grid canvas, and the
// widget list.
func (m editorModel) viewCanvas() string {
	var b strings.Builder

	dirty := ""
	if m.state.Dirty {
		dirty = StyleWarning.Render(" *")
	}
	b.WriteString(StyleTitle.Render(m.path) + dirty)
	b.WriteString("\n")
	b.WriteString(editorDimStyle.Render(fmt.Sprintf("mode: %s  undo: %d  redo: %d", m.state.Mode, m.state.PastLen, m.state.FutureLen)))
	b.WriteString("\n\n")

	b.WriteString(m.renderCanvas())
	b.WriteString("\n")

	for i, w := range m.state.Layout.Widgets {
		glyph := "?"
		if i < len(canvasGlyphs) {
			glyph = string(canvasGlyphs[i])
		}
		style := editorNormalStyle
		cursor := "  "
		if w.ID == m.state.SelectedID {
			style = editorSelectedStyle
			cursor = "▸ "
		}
		line := cursor + style.Render(glyph+" "+w.Type)
		line += " " + editorDimStyle.Render(fmt.Sprintf("(%d,%d %dx%d)", w.Position.X, w.Position.Y, w.Position.Width, w.Position.Height))
		if w.Locked {
			line += " " + editorLockedStyle.Render("locked")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(editorDimStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(editorDimStyle.Render("a add  hjkl/arrows move  +/- width  </> height  d dup  x del  L lock  u undo  r redo  m mode  s save  q quit"))
	return b.String()
}

// renderCanvas draws root widgets as glyph blocks on a character grid.
// One column of the grid maps to two characters so cells stay roughly square.
func (m editorModel) renderCanvas() string {
	cfg := m.state.Layout.Grid
	cols := cfg.Columns

	rows := 0
	for _, w := range m.state.Layout.Widgets {
		if bottom := w.Position.Y + w.Position.Height; bottom > rows {
			rows = bottom
		}
	}
	if rows == 0 {
		return editorDimStyle.Render("  (empty page, press a to add a widget)") + "\n"
	}
	maxRows := m.height - 12 - len(m.state.Layout.Widgets)
	if maxRows < 4 {
		maxRows = 4
	}
	if rows > maxRows {
		rows = maxRows
	}

	canvas := make([][]rune, rows)
	for y := range canvas {
		canvas[y] = []rune(strings.Repeat("·", cols))
	}
	selected := make([][]bool, rows)
	for y := range selected {
		selected[y] = make([]bool, cols)
	}

	for i, w := range m.state.Layout.Widgets {
		glyph := '?'
		if i < len(canvasGlyphs) {
			glyph = rune(canvasGlyphs[i])
		}
		p := w.Position
		x := grid.ClampX(p.X, p.Width, cols)
		for y := p.Y; y < p.Y+p.Height && y < rows; y++ {
			for xx := x; xx < x+p.Width && xx < cols; xx++ {
				canvas[y][xx] = glyph
				selected[y][xx] = w.ID == m.state.SelectedID
			}
		}
	}

	var b strings.Builder
	for y := range canvas {
		b.WriteString("  ")
		for x := range canvas[y] {
			cell := string(canvas[y][x]) + " "
			if selected[y][x] {
				b.WriteString(editorSelectedStyle.Render(cell))
			} else if canvas[y][x] == '·' {
				b.WriteString(editorDimStyle.Render(cell))
			} else {
				b.WriteString(editorCanvasStyle.Render(cell))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
