// Package tui provides a Bubble Tea terminal data grid for browsing and
// selecting artworks. It implements the grid driver's Surface and Notifier
// contracts and feeds user events (page changes, selection targets) back
// into the driver.
package tui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rkoenig/artic-client/pkg/artworks"
	"github.com/rkoenig/artic-client/pkg/grid"
)

// Styles for the TUI.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#B91C1C")).
			MarginBottom(1)

	tableBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#4ECDC4"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))
)

// noticeLevel classifies driver notices for styling.
type noticeLevel int

const (
	noticeInfo noticeLevel = iota
	noticeWarn
	noticeError
)

// Message types emitted by the Bridge.
type (
	// pageMsg is sent when the driver renders a page.
	pageMsg struct {
		rows         []artworks.Record
		totalRecords int
		pageIndex    int
	}

	// selectionMsg is sent when the driver applies a selection.
	selectionMsg struct {
		rows []artworks.Record
	}

	// noticeMsg is sent for driver diagnostics.
	noticeMsg struct {
		level noticeLevel
		text  string
	}
)

// Bridge adapts the driver's Surface and Notifier callbacks into Bubble Tea
// messages. Driver calls happen inside tea.Cmd goroutines; the bridge
// funnels their output back into the single-threaded update loop.
type Bridge struct {
	msgs chan tea.Msg
}

// NewBridge creates a bridge with a small buffer so driver callbacks never
// block behind a slow redraw.
func NewBridge() *Bridge {
	return &Bridge{msgs: make(chan tea.Msg, 16)}
}

// Render implements grid.Surface.
func (b *Bridge) Render(rows []artworks.Record, totalRecords, pageIndex int) {
	b.msgs <- pageMsg{rows: rows, totalRecords: totalRecords, pageIndex: pageIndex}
}

// Select implements grid.Surface.
func (b *Bridge) Select(rows []artworks.Record) {
	b.msgs <- selectionMsg{rows: rows}
}

// Info implements grid.Notifier.
func (b *Bridge) Info(msg string) { b.msgs <- noticeMsg{level: noticeInfo, text: msg} }

// Warn implements grid.Notifier.
func (b *Bridge) Warn(msg string) { b.msgs <- noticeMsg{level: noticeWarn, text: msg} }

// Error implements grid.Notifier.
func (b *Bridge) Error(msg string) { b.msgs <- noticeMsg{level: noticeError, text: msg} }

// Wait blocks until the driver emits the next event.
func (b *Bridge) Wait() tea.Msg {
	return <-b.msgs
}

var _ grid.Surface = (*Bridge)(nil)
var _ grid.Notifier = (*Bridge)(nil)

// Model is the Bubble Tea model for the artwork grid.
type Model struct {
	driver *grid.Driver
	bridge *Bridge
	ctx    context.Context

	table   table.Model
	input   textinput.Model
	spinner spinner.Model

	pageSize     int
	pageIndex    int
	totalRecords int
	selection    []artworks.Record

	loading      bool
	inputFocused bool
	notice       string
	noticeStyle  lipgloss.Style

	width  int
	height int
}

// New creates the TUI model. The driver must be wired to the same bridge.
func New(driver *grid.Driver, bridge *Bridge, pageSize int) Model {
	columns := []table.Column{
		{Title: "ID", Width: 8},
		{Title: "Title", Width: 42},
		{Title: "Origin", Width: 16},
		{Title: "Artist", Width: 30},
		{Title: "Dates", Width: 12},
	}

	tbl := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(pageSize+1),
	)

	ti := textinput.New()
	ti.Placeholder = "how many artworks to select?"
	ti.CharLimit = 6
	ti.Width = 32

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#B91C1C"))

	return Model{
		driver:   driver,
		bridge:   bridge,
		ctx:      context.Background(),
		table:    tbl,
		input:    ti,
		spinner:  sp,
		pageSize: pageSize,
		loading:  true,
	}
}

// Init loads the first page and starts listening for driver events.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.loadPageCmd(0),
		m.waitForEvent(),
	)
}

// waitForEvent relays the next driver event into the update loop.
func (m Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		return m.bridge.Wait()
	}
}

// loadPageCmd asks the driver for a zero-based page.
func (m Model) loadPageCmd(pageIndex int) tea.Cmd {
	ctx, driver := m.ctx, m.driver
	return func() tea.Msg {
		driver.HandlePageChange(ctx, pageIndex)
		return nil
	}
}

// selectCountCmd runs the bounded multi-page selection.
func (m Model) selectCountCmd(raw string) tea.Cmd {
	ctx, driver := m.ctx, m.driver
	return func() tea.Msg {
		driver.HandleSelectCount(ctx, raw)
		return nil
	}
}

// totalPages derives the page count the way the surface paginates.
func (m Model) totalPages() int {
	if m.pageSize <= 0 || m.totalRecords <= 0 {
		return 1
	}
	return (m.totalRecords + m.pageSize - 1) / m.pageSize
}

// Update handles Bubble Tea messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case pageMsg:
		m.table.SetRows(tableRows(msg.rows))
		m.pageIndex = msg.pageIndex
		m.totalRecords = msg.totalRecords
		m.loading = false
		return m, m.waitForEvent()

	case selectionMsg:
		m.selection = msg.rows
		m.loading = false
		return m, m.waitForEvent()

	case noticeMsg:
		m.notice = msg.text
		switch msg.level {
		case noticeWarn:
			m.noticeStyle = warningStyle
		case noticeError:
			m.noticeStyle = errorStyle
			m.loading = false
		default:
			m.noticeStyle = successStyle
		}
		return m, m.waitForEvent()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "tab":
		m.inputFocused = !m.inputFocused
		if m.inputFocused {
			m.table.Blur()
			m.input.Focus()
			return m, textinput.Blink
		}
		m.input.Blur()
		m.table.Focus()
		return m, nil
	}

	if m.inputFocused {
		switch msg.String() {
		case "enter":
			raw := m.input.Value()
			m.input.SetValue("")
			m.notice = ""
			m.loading = true
			return m, tea.Batch(m.selectCountCmd(raw), m.spinner.Tick)
		case "esc":
			m.inputFocused = false
			m.input.Blur()
			m.table.Focus()
			return m, nil
		}

		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit

	case "left", "h":
		if m.pageIndex > 0 && !m.loading {
			m.loading = true
			m.notice = ""
			return m, tea.Batch(m.loadPageCmd(m.pageIndex-1), m.spinner.Tick)
		}
		return m, nil

	case "right", "l":
		if m.pageIndex+1 < m.totalPages() && !m.loading {
			m.loading = true
			m.notice = ""
			return m, tea.Batch(m.loadPageCmd(m.pageIndex+1), m.spinner.Tick)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the grid, the selection input, and the status line.
func (m Model) View() string {
	var b []byte

	b = append(b, titleStyle.Render("Art Institute of Chicago — Artworks")...)
	b = append(b, '\n')

	if m.loading {
		b = append(b, fmt.Sprintf("%s loading…\n", m.spinner.View())...)
	} else {
		b = append(b, tableBorderStyle.Render(m.table.View())...)
		b = append(b, '\n')
	}

	b = append(b, statusStyle.Render(fmt.Sprintf("page %d/%d · %d artworks · %d selected",
		m.pageIndex+1, m.totalPages(), m.totalRecords, len(m.selection)))...)
	b = append(b, '\n')

	b = append(b, m.input.View()...)
	b = append(b, '\n')

	if m.notice != "" {
		b = append(b, m.noticeStyle.Render(m.notice)...)
		b = append(b, '\n')
	}

	b = append(b, dimStyle.Render("←/→ page · tab focus input · enter select · q quit")...)
	b = append(b, '\n')

	return string(b)
}

// tableRows converts records into display rows.
func tableRows(records []artworks.Record) []table.Row {
	rows := make([]table.Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, table.Row{
			strconv.Itoa(rec.ID),
			rec.Title,
			rec.PlaceOfOrigin,
			rec.ArtistDisplay,
			formatDates(rec.DateStart, rec.DateEnd),
		})
	}
	return rows
}

// formatDates renders the nullable date range.
func formatDates(start, end *int) string {
	switch {
	case start == nil && end == nil:
		return "—"
	case start == nil:
		return fmt.Sprintf("…–%d", *end)
	case end == nil:
		return fmt.Sprintf("%d–…", *start)
	case *start == *end:
		return strconv.Itoa(*start)
	default:
		return fmt.Sprintf("%d–%d", *start, *end)
	}
}
