package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/desertwitch/anchor/internal/queue"
	"github.com/dustin/go-humanize"
)

const (
	maxLogLines    = 100
	progressTick   = 100 * time.Millisecond
	defaultWidth   = 80
	defaultHeight  = 20
	upperHeightPct = 30
)

//nolint:gochecknoglobals
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	borderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			Padding(0, 1)
)

// ProgressMsg is a [tea.Msg] containing [queue.Progress] information.
type ProgressMsg struct {
	data queue.Progress
}

// TeaModel is the principal [tea.Model] for the command-line user interface.
type TeaModel struct {
	width  int
	height int

	cancel context.CancelFunc

	uiHandler *Handler
	source    ProgressSource

	innerWidth int

	data         queue.Progress
	progressBar  progress.Model
	logsViewport viewport.Model
	logs         []string

	ready bool
}

// NewTeaModel returns an initial new [TeaModel].
func NewTeaModel(uiHandler *Handler, source ProgressSource, cancel context.CancelFunc) TeaModel {
	return TeaModel{
		uiHandler: uiHandler,
		source:    source,
		progressBar: progress.New(
			progress.WithDefaultGradient(),
			progress.WithWidth(defaultWidth),
		),
		logsViewport: viewport.New(defaultWidth, defaultHeight),
		logs:         make([]string, 0, maxLogLines),
		cancel:       cancel,
	}
}

// Init initializes the model within a [tea.Program].
func (m TeaModel) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		updateProgress(m.source),
	)
}

// updateProgress schedules the next [ProgressMsg] for source.
func updateProgress(source ProgressSource) tea.Cmd {
	return tea.Tick(progressTick, func(time.Time) tea.Msg {
		return ProgressMsg{
			data: source.Progress(),
		}
	})
}

// Update is the principal message handling method of the model.
//
//nolint:ireturn
func (m TeaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()

			return m, tea.Quit
		case "q":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.innerWidth = m.width - 2 //nolint:mnd

		m.progressBar.Width = m.innerWidth

		upperHeight := m.height * upperHeightPct / 100 //nolint:mnd
		m.logsViewport.Width = m.innerWidth
		m.logsViewport.Height = max(m.height-upperHeight-3, 1) //nolint:mnd

		m.renderLogs()

		if !m.ready {
			m.ready = true
			m.uiHandler.Ready.Store(true)
		}

	case ProgressMsg:
		m.data = msg.data

		cmds = append(cmds,
			m.progressBar.SetPercent(progressPct(m.data)),
			updateProgress(m.source),
		)

	case LogMsg:
		if len(m.logs) >= maxLogLines {
			m.logs = m.logs[1:]
		}
		m.logs = append(m.logs, string(msg))

		m.renderLogs()

	case progress.FrameMsg:
		updated, cmd := m.progressBar.Update(msg)
		if progressModel, ok := updated.(progress.Model); ok {
			m.progressBar = progressModel
		}
		cmds = append(cmds, cmd)
	}

	m.logsViewport, cmd = m.logsViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *TeaModel) renderLogs() {
	if len(m.logs) == 0 {
		return
	}

	logs := lipgloss.NewStyle().
		Width(m.logsViewport.Width).
		Render(strings.TrimSuffix(strings.Join(m.logs, ""), "\n"))

	m.logsViewport.SetContent(logs)
	m.logsViewport.GotoBottom()
}

// View is the principal rendering function of the model.
func (m TeaModel) View() string {
	if !m.ready {
		return "Loading the GUI..."
	}

	progressSection := borderStyle.
		Width(m.innerWidth).
		Render(m.formatProgressView())

	logsSection := borderStyle.
		Width(m.innerWidth).
		Render(
			lipgloss.JoinVertical(
				lipgloss.Left,
				titleStyle.Width(m.innerWidth).Render("Process Information"),
				lipgloss.NewStyle().Width(m.innerWidth).Render(m.logsViewport.View()),
			),
		)

	helpSection := helpStyle.
		Width(m.innerWidth).
		Render("q: quit gui • ctrl+c: quit program")

	return lipgloss.JoinVertical(
		lipgloss.Left,
		progressSection,
		logsSection,
		helpSection,
	)
}

func (m TeaModel) formatProgressView() string {
	processed := m.data.SuccessItems + m.data.SkippedItems

	state := "Running"
	if m.data.TotalItems > 0 && processed >= m.data.TotalItems {
		state = "Finished"
	}

	details := fmt.Sprintf(
		"Progress: %.2f%% (%s/%s)\n"+
			"Items: InProgress=%d, Resolved=%s, Failed=%s\n"+
			"Time: %s after %v\n",
		progressPct(m.data)*100, //nolint:mnd
		humanize.Comma(int64(processed)),
		humanize.Comma(int64(m.data.TotalItems)),
		m.data.InProgressItems,
		humanize.Comma(int64(m.data.SuccessItems)),
		humanize.Comma(int64(m.data.SkippedItems)),
		state,
		m.data.Elapsed.Round(time.Millisecond),
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Width(m.innerWidth).Render("Resolution"),
		"",
		m.progressBar.View(),
		"",
		infoStyle.Width(m.innerWidth).Render(details),
	)
}

// progressPct returns the processed share of p in the range [0, 1].
func progressPct(p queue.Progress) float64 {
	if p.TotalItems == 0 {
		return 0
	}

	return float64(p.SuccessItems+p.SkippedItems) / float64(p.TotalItems)
}
