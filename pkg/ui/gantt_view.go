package ui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/jspgantt/pkg/gantt"
)

const (
	headerLines = 2 // title, status
	axisLines   = 2 // axis rule, tick labels

	maxGutter     = 16
	defaultWidth  = 80
	defaultHeight = 24
)

// GanttModel is the interactive chart window. It owns the chart for the
// lifetime of the program and feeds pointer motion into its hover state
// machine.
type GanttModel struct {
	chart *gantt.Chart
	theme Theme
	keys  ganttKeyMap
	help  help.Model

	width     int
	height    int
	rowOffset int

	// last pointer position, replayed after scrolling
	pointerX, pointerY int
	hasPointer         bool

	statusMsg     string
	statusIsError bool
	quitting      bool
}

// NewGanttModel returns a window over chart. Default dimensions apply until
// the first tea.WindowSizeMsg arrives.
func NewGanttModel(chart *gantt.Chart, theme Theme) GanttModel {
	h := help.New()
	h.Width = defaultWidth
	return GanttModel{
		chart:  chart,
		theme:  theme,
		keys:   defaultGanttKeys(),
		help:   h,
		width:  defaultWidth,
		height: defaultHeight,
	}
}

// SetShowHelp switches between the short and the full key help.
func (m *GanttModel) SetShowHelp(show bool) {
	m.help.ShowAll = show
}

// SetSize resizes the window and keeps the scroll offset in range.
func (m *GanttModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
	m.clampOffset()
}

// Chart returns the chart being displayed.
func (m GanttModel) Chart() *gantt.Chart {
	return m.chart
}

// RowOffset returns the index of the first visible machine row.
func (m GanttModel) RowOffset() int {
	return m.rowOffset
}

func (m GanttModel) Init() tea.Cmd {
	return nil
}

func (m GanttModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		m.replayPointer()
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	}
	return m, nil
}

func (m GanttModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	g := m.layout()
	m.statusMsg = ""
	m.statusIsError = false

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.scroll(-1)
	case key.Matches(msg, m.keys.Down):
		m.scroll(1)
	case key.Matches(msg, m.keys.PageUp):
		m.scroll(-g.rows)
	case key.Matches(msg, m.keys.PageDown):
		m.scroll(g.rows)
	case key.Matches(msg, m.keys.Top):
		m.scroll(-m.chart.Machines)
	case key.Matches(msg, m.keys.Bottom):
		m.scroll(m.chart.Machines)
	case key.Matches(msg, m.keys.Next):
		m.step(1)
	case key.Matches(msg, m.keys.Prev):
		m.step(-1)
	case key.Matches(msg, m.keys.Copy):
		m.copyStatus()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.clampOffset()
	}
	return m, nil
}

func (m *GanttModel) handleMouse(msg tea.MouseMsg) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.scroll(-1)
		return
	case tea.MouseButtonWheelDown:
		m.scroll(1)
		return
	}
	m.pointerX, m.pointerY = msg.X, msg.Y
	m.hasPointer = true
	m.pointerMoved(msg.X, msg.Y)
}

// pointerMoved is the motion handler: every event is evaluated, the same
// position always yields the same hover state.
func (m *GanttModel) pointerMoved(x, y int) {
	if i := m.RectAt(x, y); i >= 0 {
		m.chart.HoverIndex(i)
	} else {
		m.chart.Leave()
	}
}

// replayPointer re-evaluates the last pointer position after the content
// under it moved.
func (m *GanttModel) replayPointer() {
	if m.hasPointer {
		m.pointerMoved(m.pointerX, m.pointerY)
	}
}

func (m *GanttModel) scroll(delta int) {
	m.rowOffset += delta
	m.clampOffset()
	m.replayPointer()
}

func (m *GanttModel) clampOffset() {
	rows := m.layout().rows
	maxOffset := m.chart.Machines - rows
	if m.rowOffset > maxOffset {
		m.rowOffset = maxOffset
	}
	if m.rowOffset < 0 {
		m.rowOffset = 0
	}
}

// step moves the hover to the next (delta > 0) or previous operation in
// document order and scrolls its row into view.
func (m *GanttModel) step(delta int) {
	n := m.chart.Len()
	if n == 0 {
		return
	}
	var i int
	if st := m.chart.State(); st.Hovering {
		i = ((st.Index+delta)%n + n) % n
	} else if delta < 0 {
		i = n - 1
	}
	m.chart.HoverIndex(i)
	m.hasPointer = false

	row := rowOf(m.chart, m.chart.Rects[i])
	if row < 0 || row >= m.chart.Machines {
		return
	}
	rows := m.layout().rows
	if row < m.rowOffset {
		m.rowOffset = row
	} else if row >= m.rowOffset+rows {
		m.rowOffset = row - rows + 1
	}
	m.clampOffset()
}

func (m *GanttModel) copyStatus() {
	status := m.chart.Status()
	if status == "" {
		m.statusMsg = "Nothing to copy: hover a bar first"
		m.statusIsError = true
		return
	}
	if err := clipboard.WriteAll(status); err != nil {
		m.statusMsg = fmt.Sprintf("Clipboard error: %v", err)
		m.statusIsError = true
		return
	}
	m.statusMsg = "Copied status to clipboard"
	m.statusIsError = false
}

// RectAt maps a terminal cell to the index of the rectangle drawn there, or
// -1. When bars share a cell the one drawn last wins, as in the chart's own
// hit test.
func (m GanttModel) RectAt(x, y int) int {
	g := m.layout()
	row := y - headerLines
	if row < 0 || row >= g.rows {
		return -1
	}
	row += m.rowOffset
	col := x - g.plotX
	if col < 0 || col >= g.plotW {
		return -1
	}
	for i := len(m.chart.Rects) - 1; i >= 0; i-- {
		r := m.chart.Rects[i]
		if rowOf(m.chart, r) != row {
			continue
		}
		c0, c1 := g.span(r)
		if col >= c0 && col < c1 {
			return i
		}
	}
	return -1
}

// rowOf returns the 0-based screen row of r, counted from the top
// (machine-1). Rectangles of machines outside 1..Machines fall outside
// 0..Machines-1 and are clipped.
func rowOf(c *gantt.Chart, r gantt.Rect) int {
	return c.Machines - int(math.Round(r.Row()))
}

// layout is the cell geometry of one frame.
type layout struct {
	gutter int // width of the machine label column
	plotX  int // first plot column
	plotW  int
	rows   int // visible machine rows
	xmin   float64
	xmax   float64
	ticks  map[int]float64 // plot column -> tick value
}

func (m GanttModel) layout() layout {
	g := layout{xmin: m.chart.XMin, xmax: m.chart.XMax}
	for _, l := range m.chart.YLabels {
		if w := runewidth.StringWidth(l); w > g.gutter {
			g.gutter = w
		}
	}
	if g.gutter > maxGutter {
		g.gutter = maxGutter
	}
	g.plotX = g.gutter + 1
	g.plotW = m.width - g.plotX
	if g.plotW < 1 {
		g.plotW = 1
	}

	g.rows = m.height - headerLines - axisLines - lipgloss.Height(m.footer())
	if g.rows > m.chart.Machines {
		g.rows = m.chart.Machines
	}
	if g.rows < 1 {
		g.rows = 1
	}

	g.ticks = make(map[int]float64, len(m.chart.XTicks))
	for _, t := range m.chart.XTicks {
		if t < g.xmin || t > g.xmax {
			continue
		}
		col := int(math.Round(g.col(t)))
		if col >= g.plotW {
			col = g.plotW - 1
		}
		g.ticks[col] = t
	}
	return g
}

func (g layout) col(x float64) float64 {
	span := g.xmax - g.xmin
	if span <= 0 {
		return 0
	}
	return (x - g.xmin) / span * float64(g.plotW)
}

// span returns the half-open column range [c0, c1) covered by r. Every bar
// gets at least one cell so zero-length operations stay hoverable.
func (g layout) span(r gantt.Rect) (int, int) {
	c0 := int(math.Floor(g.col(r.X)))
	c1 := int(math.Ceil(g.col(r.X + r.W)))
	if c0 < 0 {
		c0 = 0
	}
	if c0 >= g.plotW {
		c0 = g.plotW - 1
	}
	if c1 > g.plotW {
		c1 = g.plotW
	}
	if c1 <= c0 {
		c1 = c0 + 1
	}
	return c0, c1
}

func (m GanttModel) View() string {
	if m.quitting {
		return ""
	}
	g := m.layout()

	var b strings.Builder
	b.WriteString(m.theme.Title.Render(center(m.chart.Title, m.width)))
	b.WriteString("\n")
	b.WriteString(m.renderStatus(g))
	b.WriteString("\n")
	for r := 0; r < g.rows; r++ {
		b.WriteString(m.renderRow(g, m.rowOffset+r))
		b.WriteString("\n")
	}
	b.WriteString(m.renderAxis(g))
	b.WriteString("\n")
	b.WriteString(m.renderTickLabels(g))
	b.WriteString("\n")
	b.WriteString(m.footer())
	return b.String()
}

func (m GanttModel) renderStatus(g layout) string {
	right := ""
	if g.rows < m.chart.Machines {
		right = fmt.Sprintf("rows %d-%d of %d", m.rowOffset+1, m.rowOffset+g.rows, m.chart.Machines)
	}
	budget := m.width - runewidth.StringWidth(right) - 1
	if m.statusMsg != "" {
		style := m.theme.Status
		if m.statusIsError {
			style = m.theme.StatusErr
		}
		return style.Render(padRight(truncate(m.statusMsg, budget), budget)) + " " + m.theme.MutedText.Render(right)
	}

	status := m.chart.Status()
	var left string
	switch {
	case status == "":
		left = m.theme.MutedText.Render(padRight(truncate("hover a bar to inspect it", budget), budget))
	case m.chart.State().Hovering:
		left = m.theme.StatusOn.Render(padRight(truncate(status, budget), budget))
	default:
		left = m.theme.MutedText.Render(padRight(truncate(status+"  (idle)", budget), budget))
	}
	return left + " " + m.theme.MutedText.Render(right)
}

func (m GanttModel) renderRow(g layout, row int) string {
	label := ""
	if row < len(m.chart.YLabels) {
		label = m.chart.YLabels[row]
	}

	owners := make([]int, g.plotW)
	for c := range owners {
		owners[c] = -1
	}
	for i, r := range m.chart.Rects {
		if rowOf(m.chart, r) != row {
			continue
		}
		c0, c1 := g.span(r)
		for c := c0; c < c1; c++ {
			owners[c] = i
		}
	}

	var b strings.Builder
	b.WriteString(m.theme.RowLabel.Render(padLeft(truncate(label, g.gutter), g.gutter)))
	b.WriteString(m.theme.Axis.Render("│"))
	for c := 0; c < g.plotW; {
		owner := owners[c]
		end := c
		for end < g.plotW && owners[end] == owner {
			end++
		}
		if owner < 0 {
			b.WriteString(m.renderGap(g, c, end))
		} else {
			b.WriteString(m.renderBar(m.chart.Rects[owner], end-c))
		}
		c = end
	}
	return b.String()
}

// renderGap draws empty plot cells, dotting the tick columns.
func (m GanttModel) renderGap(g layout, from, to int) string {
	cells := make([]rune, 0, to-from)
	for c := from; c < to; c++ {
		if _, ok := g.ticks[c]; ok {
			cells = append(cells, '·')
		} else {
			cells = append(cells, ' ')
		}
	}
	return m.theme.Axis.Render(string(cells))
}

// renderBar draws one bar run of width cells. Hover borders show as
// half-block edges in the border color.
func (m GanttModel) renderBar(r gantt.Rect, width int) string {
	fill := BarColor(r.Fill)
	body := m.theme.BarText.Background(fill)

	if r.Border == gantt.BorderNone {
		return body.Render(center(r.Label, width))
	}
	edge := m.theme.BorderStyle(fill, r.Border == gantt.BorderHighlight)
	if width < 3 {
		return edge.Render(center(r.Label, width))
	}
	return edge.Render("▌") + body.Bold(true).Render(center(r.Label, width-2)) + edge.Render("▐")
}

func (m GanttModel) renderAxis(g layout) string {
	rule := make([]rune, g.plotW)
	for c := range rule {
		if _, ok := g.ticks[c]; ok {
			rule[c] = '┬'
		} else {
			rule[c] = '─'
		}
	}
	return m.theme.Axis.Render(strings.Repeat(" ", g.gutter) + "└" + string(rule))
}

// renderTickLabels centers each tick value under its column, skipping
// labels that would collide with the previous one.
func (m GanttModel) renderTickLabels(g layout) string {
	line := []rune(strings.Repeat(" ", g.plotW))
	next := 0
	for c := 0; c < g.plotW; c++ {
		t, ok := g.ticks[c]
		if !ok {
			continue
		}
		s := []rune(strconv.FormatFloat(t, 'g', -1, 64))
		start := c - len(s)/2
		if start+len(s) > g.plotW {
			start = g.plotW - len(s)
		}
		if start < 0 {
			start = 0
		}
		if start < next || start+len(s) > g.plotW {
			continue
		}
		copy(line[start:], s)
		next = start + len(s) + 1
	}
	return m.theme.MutedText.Render(strings.Repeat(" ", g.plotX) + string(line))
}

func (m GanttModel) footer() string {
	return m.help.View(m.keys)
}
