// Package tui provides the Bubble Tea dashboard interface.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tsdash/internal/controls"
	"github.com/verte-zerg/tsdash/internal/dispatch"
	"github.com/verte-zerg/tsdash/internal/model"
	"github.com/verte-zerg/tsdash/internal/pipeline"
	"github.com/verte-zerg/tsdash/internal/store"
)

const (
	tabLine = iota
	tabHistogram
	tabCorrelogram
	tabSummary
	tabHistory
)

const plotHeight = 12

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#3A8AC8"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	feedbackStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#E8C35A"))
	runningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#3A8AC8")).Bold(true)
)

type notificationMsg dispatch.Notification

type feedbackMsg string

type runDoneMsg struct {
	result pipeline.Result
	err    error
}

// Model implements the Bubble Tea dashboard.
type Model struct {
	session *pipeline.Session
	history *store.Store

	tabs         []string
	activeTab    int
	viewports    []viewport.Model
	historyTable table.Model
	historyErr   string

	width  int
	height int

	settingsMode   bool
	settingsInputs []textinput.Model
	settingsIndex  int
	settingsError  string

	feedback string
	variant  model.Variant
	running  bool
	errMsg   string

	notifications   <-chan dispatch.Notification
	feedbackChanges <-chan string
	rendered        map[dispatch.Consumer]uint64
}

// NewModel constructs a dashboard model. The history store may be nil.
func NewModel(session *pipeline.Session, history *store.Store) *Model {
	m := &Model{
		session:         session,
		history:         history,
		tabs:            []string{"Line", "Histogram", "Correlogram", "Summary", "History"},
		variant:         session.Dispatch.Variant(),
		notifications:   session.Dispatch.Subscribe(),
		feedbackChanges: session.Feedback.Changes(),
		rendered:        make(map[dispatch.Consumer]uint64),
	}
	m.initViewports()
	m.initInputs()
	m.initHistoryTable()
	m.renderAllTabs()
	m.refreshHistory()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.waitNotification(), m.waitFeedback(), m.runPipeline())
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderAllTabs()
		return m, nil
	case notificationMsg:
		m.applyNotification(dispatch.Notification(msg))
		return m, m.waitNotification()
	case feedbackMsg:
		m.feedback = string(msg)
		return m, m.waitFeedback()
	case runDoneMsg:
		m.running = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
		} else {
			m.errMsg = ""
		}
		m.refreshHistory()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || (!m.settingsMode && msg.String() == "q") {
			return m, tea.Quit
		}
		if m.settingsMode {
			return m.updateSettings(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m *Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		m.moveTab(-1)
		return m, tea.ClearScreen
	case "right", "l":
		m.moveTab(1)
		return m, tea.ClearScreen
	case "/":
		return m.startSettings()
	case "a", "enter":
		if m.running {
			return m, nil
		}
		m.running = true
		return m, m.runPipeline()
	case "1", "2", "3", "4", "5":
		if m.activeTab != tabLine {
			break
		}
		idx := int(msg.String()[0] - '1')
		if idx < len(model.Variants) {
			m.session.Dispatch.SetVariant(model.Variants[idx])
		}
		return m, nil
	case "g", "home":
		if m.activeTab == tabHistory {
			m.historyTable.GotoTop()
		} else {
			m.viewports[m.activeTab].GotoTop()
		}
		return m, nil
	case "G", "end":
		if m.activeTab == tabHistory {
			m.historyTable.GotoBottom()
		} else {
			m.viewports[m.activeTab].GotoBottom()
		}
		return m, nil
	}
	if m.activeTab == tabHistory {
		var cmd tea.Cmd
		m.historyTable, cmd = m.historyTable.Update(msg)
		return m, cmd
	}
	vp := m.viewports[m.activeTab]
	var cmd tea.Cmd
	vp, cmd = vp.Update(msg)
	m.viewports[m.activeTab] = vp
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) runPipeline() tea.Cmd {
	m.running = true
	return func() tea.Msg {
		result, err := m.session.Apply(context.Background())
		return runDoneMsg{result: result, err: err}
	}
}

func (m *Model) waitNotification() tea.Cmd {
	ch := m.notifications
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return nil
		}
		return notificationMsg(n)
	}
}

func (m *Model) waitFeedback() tea.Cmd {
	ch := m.feedbackChanges
	return func() tea.Msg {
		text, ok := <-ch
		if !ok {
			return nil
		}
		return feedbackMsg(text)
	}
}

// applyNotification re-renders only the consumers whose version moved past
// the last rendered one.
func (m *Model) applyNotification(n dispatch.Notification) {
	m.variant = n.Variant
	for _, c := range dispatch.Consumers {
		version := n.Versions[c]
		if version == m.rendered[c] {
			continue
		}
		m.rendered[c] = version
		m.renderConsumer(c)
	}
}

func (m *Model) renderConsumer(c dispatch.Consumer) {
	switch c {
	case dispatch.LineSeries:
		m.viewports[tabLine].SetContent(m.renderLineTab())
	case dispatch.Histogram:
		m.viewports[tabHistogram].SetContent(m.renderHistogramTab())
	case dispatch.Correlogram:
		m.viewports[tabCorrelogram].SetContent(m.renderCorrelogramTab())
	case dispatch.NumericSummary, dispatch.BoxPlot:
		m.viewports[tabSummary].SetContent(m.renderSummaryTab())
	}
}

func (m *Model) renderAllTabs() {
	if len(m.viewports) == 0 {
		return
	}
	m.viewports[tabLine].SetContent(m.renderLineTab())
	m.viewports[tabHistogram].SetContent(m.renderHistogramTab())
	m.viewports[tabCorrelogram].SetContent(m.renderCorrelogramTab())
	m.viewports[tabSummary].SetContent(m.renderSummaryTab())
}

func (m *Model) initViewports() {
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
}

func (m *Model) initInputs() {
	m.settingsInputs = []textinput.Model{
		newSettingsInput("Frequency: "),
		newSettingsInput("Period: "),
		newSettingsInput("Lags: "),
		newSettingsInput("Bins: "),
	}
	m.setInputsFromControls()
}

func newSettingsInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

var settingsKinds = []controls.Kind{
	controls.Frequency,
	controls.Period,
	controls.LagCount,
	controls.BinCount,
}

// setInputsFromControls shows the committed value per field, except where a
// rejected raw input is still on display.
func (m *Model) setInputsFromControls() {
	snap := m.session.Controls.Snapshot()
	committed := []string{
		snap.Freq,
		strconv.Itoa(snap.Period),
		strconv.Itoa(snap.Lags),
		strconv.FormatFloat(snap.Bins, 'f', -1, 64),
	}
	for i, kind := range settingsKinds {
		if raw, ok := m.session.Controls.Rejected(kind); ok {
			m.settingsInputs[i].SetValue(raw)
			continue
		}
		m.settingsInputs[i].SetValue(committed[i])
	}
}

func (m *Model) startSettings() (tea.Model, tea.Cmd) {
	m.settingsMode = true
	m.settingsError = ""
	m.setInputsFromControls()
	return m, m.setSettingsIndex(0)
}

func (m *Model) setSettingsIndex(idx int) tea.Cmd {
	count := len(m.settingsInputs)
	if count == 0 {
		return nil
	}
	if idx < 0 {
		idx = count - 1
	}
	if idx >= count {
		idx = 0
	}
	m.settingsIndex = idx
	var cmd tea.Cmd
	for i := range m.settingsInputs {
		if i == m.settingsIndex {
			cmd = m.settingsInputs[i].Focus()
		} else {
			m.settingsInputs[i].Blur()
		}
	}
	return cmd
}

func (m *Model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.settingsMode = false
		m.settingsError = ""
		return m, nil
	case tea.KeyEnter:
		if ok := m.applySettings(); !ok {
			return m, nil
		}
		m.settingsMode = false
		m.settingsError = ""
		m.renderAllTabs()
		return m, nil
	case tea.KeyTab:
		return m, m.setSettingsIndex(m.settingsIndex + 1)
	case tea.KeyShiftTab:
		return m, m.setSettingsIndex(m.settingsIndex - 1)
	}
	var cmd tea.Cmd
	m.settingsInputs[m.settingsIndex], cmd = m.settingsInputs[m.settingsIndex].Update(msg)
	return m, cmd
}

// applySettings validates every field independently. Valid fields commit
// even when a sibling is rejected; the first rejection reason is surfaced
// and the rejected raw input stays on display.
func (m *Model) applySettings() bool {
	m.settingsError = ""
	for i, kind := range settingsKinds {
		outcome := m.session.Controls.Set(kind, m.settingsInputs[i].Value())
		if !outcome.Valid && m.settingsError == "" {
			m.settingsError = outcome.Reason
		}
	}
	m.setInputsFromControls()
	return m.settingsError == ""
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	if count == 0 {
		return
	}
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
	if m.activeTab == tabHistory {
		m.historyTable.Focus()
		m.refreshHistory()
	} else {
		m.historyTable.Blur()
	}
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if !m.settingsMode && (m.feedback != "" || m.errMsg != "") {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, vpHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = vpHeight
	}
	m.historyTable.SetWidth(m.width)
	m.historyTable.SetHeight(maxInt(1, vpHeight-1))
	for i := range m.settingsInputs {
		promptWidth := lipgloss.Width(m.settingsInputs[i].Prompt)
		m.settingsInputs[i].Width = maxInt(10, m.width-promptWidth-2)
	}
}

func (m *Model) renderHeader() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	tabs := padLines(lipgloss.JoinHorizontal(lipgloss.Top, parts...), m.width)
	return tabs + "\n" + padLines(m.renderControlSummary(), m.width)
}

func (m *Model) renderControlSummary() string {
	snap := m.session.Controls.Snapshot()
	summary := fmt.Sprintf("Controls: freq=%s  period=%d  lags=%d  bins=%g  variant=%s",
		snap.Freq, snap.Period, snap.Lags, snap.Bins, m.variant)
	if m.running {
		summary += "  " + runningStyle.Render("[running]")
	}
	return headerStyle.Render(truncateLine(summary, m.width))
}

func (m *Model) renderBody(height int) string {
	if m.settingsMode {
		return fitLines(m.renderSettingsForm(), m.width, height)
	}
	if m.activeTab == tabHistory {
		if m.historyErr != "" {
			return fitLines(errorStyle.Render(m.historyErr), m.width, height)
		}
		if m.history == nil {
			return fitLines("Run history is disabled.", m.width, height)
		}
		return fitLines(m.historyTable.View(), m.width, height)
	}
	return fitLines(m.viewports[m.activeTab].View(), m.width, height)
}

func (m *Model) renderSettingsForm() string {
	lines := []string{"Settings (enter to apply, esc to cancel)"}
	for _, input := range m.settingsInputs {
		lines = append(lines, input.View())
	}
	if m.settingsError != "" {
		lines = append(lines, errorStyle.Render(m.settingsError))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderFooter() string {
	if m.settingsMode {
		return headerStyle.Render("tab/shift+tab: next field  enter: apply  esc: cancel")
	}
	help := helpText(m.activeTab)
	switch {
	case m.errMsg != "":
		return help + "\n" + errorStyle.Render(m.errMsg)
	case m.feedback != "":
		return help + "\n" + feedbackStyle.Render(truncateLine(m.feedback, m.width))
	}
	return help
}

func helpText(activeTab int) string {
	help := "Nav: left/right  Run: a  Settings: /  Quit: q"
	if activeTab == tabLine {
		help = "Nav: left/right  Variant: 1-5  Run: a  Settings: /  Quit: q"
	}
	return headerStyle.Render(help)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
