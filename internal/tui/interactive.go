package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/davre/quanta/internal/unit"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
)

type state int

const (
	stateMenu state = iota
	stateConvert
	stateBrowse
)

var menuEntries = []struct {
	name, desc string
}{
	{"convert", "live value conversion"},
	{"browse", "registered units"},
}

type field int

const (
	fieldValue field = iota
	fieldFrom
	fieldTo
	numFields
)

var fieldNames = [numFields]string{"value", "from", "to"}

type model struct {
	state  state
	cursor int

	reg       *unit.Registry
	equivs    []unit.Equivalency
	precision int

	// convert
	active  field
	bufs    [numFields]string
	result  string
	problem string
	history []float64

	// browse
	units        []*unit.NamedUnit
	browseCursor int

	width  int
	height int
}

func NewApp(reg *unit.Registry, precision int, equivs ...unit.Equivalency) *model {
	if precision <= 0 {
		precision = 6
	}
	return &model{
		state:     stateMenu,
		reg:       reg,
		equivs:    equivs,
		precision: precision,
		bufs:      [numFields]string{"1", "km", "m"},
		units:     reg.Canonical(),
		history:   make([]float64, 0, 60),
		width:     80,
		height:    24,
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateConvert:
		return m.convertKey(msg)
	case stateBrowse:
		return m.browseKey(msg)
	}
	return m, nil
}

func (m model) menuKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(menuEntries)-1 {
			m.cursor++
		}
	case "enter", " ":
		switch menuEntries[m.cursor].name {
		case "convert":
			m.state = stateConvert
			m.recompute()
		case "browse":
			m.state = stateBrowse
		}
		return m, tea.ClearScreen
	}
	return m, nil
}

func (m model) convertKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.state = stateMenu
		return m, tea.ClearScreen
	case "tab", "enter", "down":
		m.active = (m.active + 1) % numFields
	case "shift+tab", "up":
		m.active = (m.active + numFields - 1) % numFields
	case "ctrl+s":
		m.bufs[fieldFrom], m.bufs[fieldTo] = m.bufs[fieldTo], m.bufs[fieldFrom]
		m.recompute()
	case "backspace":
		buf := m.bufs[m.active]
		if len(buf) > 0 {
			m.bufs[m.active] = buf[:len(buf)-1]
			m.recompute()
		}
	default:
		s := msg.String()
		if len(s) == 1 && s[0] >= ' ' && s[0] < 127 {
			m.bufs[m.active] += s
			m.recompute()
		}
	}
	return m, nil
}

func (m model) browseKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.state = stateMenu
		return m, tea.ClearScreen
	case "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.browseCursor > 0 {
			m.browseCursor--
		}
	case "down", "j":
		if m.browseCursor < len(m.units)-1 {
			m.browseCursor++
		}
	case "g":
		m.browseCursor = 0
	case "G":
		m.browseCursor = len(m.units) - 1
	}
	return m, nil
}

// recompute parses the three input fields and refreshes the result
// line. Parse problems are reported inline rather than clearing the
// previous output.
func (m *model) recompute() {
	m.result = ""
	m.problem = ""

	value, err := strconv.ParseFloat(strings.TrimSpace(m.bufs[fieldValue]), 64)
	if err != nil {
		m.problem = "value is not a number"
		return
	}
	from, err := m.reg.Parse(m.bufs[fieldFrom])
	if err != nil {
		m.problem = err.Error()
		return
	}
	to, err := m.reg.Parse(m.bufs[fieldTo])
	if err != nil {
		m.problem = err.Error()
		return
	}

	converted, err := unit.To(from, to, value, m.equivs...)
	if err != nil {
		m.problem = err.Error()
		return
	}

	m.result = fmt.Sprintf("%.*g %s", m.precision, converted, unit.ToString(to))
	m.history = append(m.history, converted)
	if len(m.history) > 60 {
		m.history = m.history[1:]
	}
}

func (m model) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateConvert:
		return m.viewConvert()
	case stateBrowse:
		return m.viewBrowse()
	}
	return ""
}

func (m model) viewMenu() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("           " + cyan.Render("q u a n t a") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("\n")

	for i, entry := range menuEntries {
		if i == m.cursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-12s", entry.name)) + dim.Render(entry.desc) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-12s", entry.name)) + dimmer.Render(entry.desc) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dim.Render(fmt.Sprintf("      %d units registered", len(m.units))) + "\n")
	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select   enter open   q quit") + "\n")

	return b.String()
}

func (m model) viewConvert() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("      " + cyan.Render("convert") + "\n")
	b.WriteString(dimmer.Render("      "+strings.Repeat("─", 34)) + "\n\n")

	for i := field(0); i < numFields; i++ {
		val := m.bufs[i]
		if i == m.active {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-8s", fieldNames[i])) + magenta.Render(val+"▋") + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-8s", fieldNames[i])) + dim.Render(val) + "\n")
		}
	}

	b.WriteString("\n")
	switch {
	case m.problem != "":
		b.WriteString("      " + yellow.Render("✗ "+m.problem) + "\n")
	case m.result != "":
		b.WriteString("      " + green.Render("= "+m.result) + "\n")
		if from, err := m.reg.Parse(m.bufs[fieldFrom]); err == nil {
			if pt := unit.PhysicalType(from); pt != "unknown" {
				b.WriteString("      " + dim.Render(pt) + "\n")
			}
		}
	}

	if len(m.history) > 1 {
		b.WriteString("\n      " + dim.Render("recent ") + cyan.Render(sparkline(m.history, 24)) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("      tab next field  ctrl+s swap units  esc back") + "\n")

	return b.String()
}

func (m model) viewBrowse() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("      " + cyan.Render("units") + "  " + dim.Render(fmt.Sprintf("%d", len(m.units))) + "\n")
	b.WriteString(dimmer.Render("      "+strings.Repeat("─", 48)) + "\n\n")

	visible := m.height - 10
	if visible < 5 {
		visible = 5
	}
	start := 0
	if m.browseCursor >= visible {
		start = m.browseCursor - visible + 1
	}
	end := start + visible
	if end > len(m.units) {
		end = len(m.units)
	}

	for i := start; i < end; i++ {
		u := m.units[i]
		def := "irreducible"
		if d := u.Definition(); d != nil {
			def = unit.ToString(d)
		}
		line := fmt.Sprintf("%-10s %-24s %s", u.Name(), unit.PhysicalType(u), def)
		if i == m.browseCursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(line) + "\n")
		} else {
			b.WriteString("        " + dim.Render(line) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ scroll  g/G top/bottom  esc back") + "\n")

	return b.String()
}

func sparkline(data []float64, width int) string {
	if len(data) == 0 {
		return ""
	}
	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	minVal, maxVal := data[0], data[0]
	for _, v := range data {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	rang := maxVal - minVal
	if rang == 0 {
		rang = 1
	}
	step := len(data) / width
	if step < 1 {
		step = 1
	}
	var sb strings.Builder
	for i := 0; i < width && i*step < len(data); i++ {
		idx := int((data[i*step] - minVal) / rang * 7)
		if idx > 7 {
			idx = 7
		}
		if idx < 0 {
			idx = 0
		}
		sb.WriteRune(chars[idx])
	}
	return sb.String()
}

func Run(reg *unit.Registry, precision int, equivs ...unit.Equivalency) error {
	p := tea.NewProgram(NewApp(reg, precision, equivs...), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
