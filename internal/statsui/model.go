// Package statsui provides the Bubble Tea stats interface.
package statsui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/lssstats/internal/model"
)

const (
	tabOverview = iota
	tabSegments
	tabSegmentCurve
	tabCharts
)

const (
	plotHeight     = 10
	fallbackWidth  = 80
	defaultWindow  = 5
	maxCurveWindow = 100
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	goldStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	modalStyle      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(1, 2)
)

// Loader re-reads the splits file for the reload key.
type Loader func() (model.RunSummary, error)

// RunLoadedMsg replaces the displayed run, e.g. after the file changed on disk.
type RunLoadedMsg struct {
	Run model.RunSummary
	Err error
}

// Model implements the Bubble Tea stats UI.
type Model struct {
	run    model.RunSummary
	cfg    model.ReportConfig
	load   Loader
	errMsg string

	tabs         []string
	activeTab    int
	viewports    []viewport.Model
	segTable     table.Model
	selected     int
	segmentInput textinput.Model
	inputMode    bool
	inputError   string

	width  int
	height int
}

// NewModel constructs a stats UI model. load may be nil, which disables reloading.
func NewModel(run model.RunSummary, cfg model.ReportConfig, load Loader) *Model {
	if cfg.CurveWindow < 1 {
		cfg.CurveWindow = defaultWindow
	}
	if cfg.PlotHeight < 1 {
		cfg.PlotHeight = plotHeight
	}
	m := &Model{
		run:  run,
		cfg:  cfg,
		load: load,
		tabs: []string{"Overview", "Segments", "Segment Curve", "Charts"},
	}
	m.initViewports()
	m.initSegmentInput()
	m.segTable = buildSegmentTable(run, cfg.Precision, fallbackWidth, 1)
	m.renderTabContents()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case RunLoadedMsg:
		m.applyRun(msg.Run, msg.Err)
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.inputMode {
			return m.updateSegmentInput(msg)
		}
		if msg.String() == "q" {
			return m, tea.Quit
		}
		if m.activeTab == tabSegments {
			m.segTable.Focus()
		} else {
			m.segTable.Blur()
		}
		switch msg.String() {
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "=":
			m.cfg.CurveWindow = nextCurveWindow(m.cfg.CurveWindow)
			m.renderTabContents()
			return m, nil
		case "-":
			m.cfg.CurveWindow = prevCurveWindow(m.cfg.CurveWindow)
			m.renderTabContents()
			return m, nil
		case "r":
			if m.load != nil {
				run, err := m.load()
				m.applyRun(run, err)
			}
			return m, nil
		case "n", "]":
			m.selectSegment(m.selected + 1)
			return m, nil
		case "p", "[":
			m.selectSegment(m.selected - 1)
			return m, nil
		case "enter":
			switch m.activeTab {
			case tabSegments:
				m.selectSegment(m.segTable.Cursor())
				m.activeTab = tabSegmentCurve
				m.segTable.Blur()
				return m, tea.ClearScreen
			case tabSegmentCurve:
				return m.startSegmentInput()
			}
			return m, nil
		case "g", "home":
			if m.activeTab == tabSegments {
				m.segTable.GotoTop()
			} else {
				m.viewports[m.activeTab].GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabSegments {
				m.segTable.GotoBottom()
			} else {
				m.viewports[m.activeTab].GotoBottom()
			}
			return m, nil
		default:
			if m.activeTab == tabSegments {
				var cmd tea.Cmd
				m.segTable, cmd = m.segTable.Update(msg)
				return m, cmd
			}
			vp := m.viewports[m.activeTab]
			var cmd tea.Cmd
			vp, cmd = vp.Update(msg)
			m.viewports[m.activeTab] = vp
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.inputMode {
		return fitLines(m.renderSegmentModal(), m.width, m.height)
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

// Selected returns the index into Segments of the segment shown on the curve tab.
func (m *Model) Selected() int {
	return m.selected
}

// ActiveTab returns the index of the visible tab.
func (m *Model) ActiveTab() int {
	return m.activeTab
}

func (m *Model) applyRun(run model.RunSummary, err error) {
	if err != nil {
		m.errMsg = fmt.Sprintf("Reload failed: %v", err)
		return
	}
	m.errMsg = ""
	m.run = run
	if m.selected >= len(run.Segments) {
		m.selected = max(0, len(run.Segments)-1)
	}
	m.updateLayout()
	m.renderTabContents()
}

func (m *Model) initViewports() {
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
}

func (m *Model) initSegmentInput() {
	input := textinput.New()
	input.Prompt = "Segment: "
	input.Placeholder = "number"
	input.CharLimit = 6
	input.Cursor.SetMode(cursor.CursorBlink)
	m.segmentInput = input
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := max(1, lipgloss.Height(activeNavStyle.Render("X")))
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = max(1, m.height-headerHeight-footerHeight)
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = bodyHeight
	}
	cursorRow := m.segTable.Cursor()
	m.segTable = buildSegmentTable(m.run, m.cfg.Precision, m.width, bodyHeight)
	if cursorRow < len(m.run.Segments) {
		m.segTable.SetCursor(cursorRow)
	}
	if m.activeTab == tabSegments {
		m.segTable.Focus()
	}
	promptWidth := lipgloss.Width(m.segmentInput.Prompt)
	m.segmentInput.Width = max(10, modalInnerWidth(m.width)-promptWidth)
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	next := (m.activeTab + delta + count) % count
	m.activeTab = next
	if m.activeTab == tabSegments {
		m.segTable.Focus()
	} else {
		m.segTable.Blur()
	}
}

func (m *Model) selectSegment(idx int) {
	count := len(m.run.Segments)
	if count == 0 {
		return
	}
	m.selected = (idx%count + count) % count
	m.renderTabContents()
}

func (m *Model) startSegmentInput() (tea.Model, tea.Cmd) {
	if len(m.run.Segments) == 0 {
		return m, nil
	}
	m.inputMode = true
	m.inputError = ""
	m.segmentInput.SetValue(strconv.Itoa(m.selected + 1))
	return m, m.segmentInput.Focus()
}

func (m *Model) updateSegmentInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.inputMode = false
		m.inputError = ""
		m.segmentInput.Blur()
		return m, nil
	case tea.KeyEnter:
		idx, err := parseSegmentNumber(m.segmentInput.Value(), len(m.run.Segments))
		if err != nil {
			m.inputError = err.Error()
			return m, nil
		}
		m.inputMode = false
		m.inputError = ""
		m.segmentInput.Blur()
		m.selectSegment(idx)
		return m, nil
	}
	var cmd tea.Cmd
	m.segmentInput, cmd = m.segmentInput.Update(msg)
	return m, cmd
}

// parseSegmentNumber turns a 1-based user entry into a 0-based index.
func parseSegmentNumber(input string, count int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n < 1 || n > count {
		return 0, fmt.Errorf("enter a number between 1 and %d", count)
	}
	return n - 1, nil
}

func nextCurveWindow(n int) int {
	if n < 5 {
		return 5
	}
	return min(maxCurveWindow, (n/5+1)*5)
}

func prevCurveWindow(n int) int {
	if n <= 5 {
		return 1
	}
	if n%5 == 0 {
		return n - 5
	}
	return (n / 5) * 5
}
