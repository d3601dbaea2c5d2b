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
	"github.com/desertwitch/gofat/tree"
	"github.com/dustin/go-humanize"
)

//nolint:gochecknoglobals
var (
	// titleStyle defines the style for a panel's title.
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	// borderStyle defines the style for a panel's borders.
	borderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4"))

	// infoStyle defines the style for a panel's text.
	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))

	// helpStyle defines the style for the help panel's text.
	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			Padding(0, 1)
)

// TransferProgressMsg is a [tea.Msg] containing [tree.Progress] information.
type TransferProgressMsg struct {
	t    time.Time
	data tree.Progress
}

// transferDoneMsg is a [tea.Msg] signalling that the transfer has finished
// and the interface should quit after a final render.
type transferDoneMsg struct{}

// TeaModel is the principal [tea.Model] for the command-line user interface.
type TeaModel struct {
	width  int
	height int

	cancel context.CancelFunc

	uiHandler *Handler
	state     *tree.TransferState

	fullWidthWithBorders int

	transferData tree.Progress

	transferProgress progress.Model
	logsViewport     viewport.Model
	logs             []string

	ready bool
}

// NewTeaModel returns an initial new [TeaModel].
//
//nolint:mnd
func NewTeaModel(uiHandler *Handler, state *tree.TransferState, cancel context.CancelFunc) TeaModel {
	transferProgress := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(80),
	)

	logsViewport := viewport.New(80, 20)

	return TeaModel{
		uiHandler:        uiHandler,
		state:            state,
		transferProgress: transferProgress,
		transferData:     tree.Progress{},
		logsViewport:     logsViewport,
		logs:             make([]string, 0, 100),
		cancel:           cancel,
		ready:            false,
	}
}

// Init initializes the model within a [tea.Program].
func (m TeaModel) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		updateTransferProgress(m.state),
	)
}

// updateTransferProgress produces a [tea.Cmd] for later scheduling in a
// [tea.Program]. When executed, a [TransferProgressMsg] with a
// [tree.TransferState]'s [tree.Progress] is returned.
func updateTransferProgress(state *tree.TransferState) tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg { //nolint:mnd
		transferProgressMsg := TransferProgressMsg{
			t:    t,
			data: state.Progress(),
		}

		return transferProgressMsg
	})
}

// quitAfterGrace produces a [tea.Cmd] that allows one more render of the
// final transfer figures before the interface quits on its own.
func quitAfterGrace() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(time.Time) tea.Msg { //nolint:mnd
		return transferDoneMsg{}
	})
}

// Update is the principal message handling method of the model.
// It sets the internal state of the model, for later rendering.
//
//nolint:mnd,funlen,ireturn
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

		m.fullWidthWithBorders = m.width - 2

		// The progress bar should match the content width.
		m.transferProgress.Width = m.fullWidthWithBorders

		// We want the upper panel to take about 40% of the height.
		upperHeight := m.height * 2 / 5
		lowerHeight := m.height - upperHeight

		// Viewport height: lower section minus borders and title.
		viewportHeight := lowerHeight - 3

		// Set viewport width to full width minus borders.
		m.logsViewport.Width = m.fullWidthWithBorders
		m.logsViewport.Height = viewportHeight

		// Update viewport content with current logs.
		if len(m.logs) > 0 {
			logs := lipgloss.NewStyle().
				Width(m.logsViewport.Width).
				Render(strings.TrimSuffix(strings.Join(m.logs, ""), "\n"))

			m.logsViewport.SetContent(logs)
			m.logsViewport.GotoBottom()
		}

		if !m.ready {
			m.ready = true
			m.uiHandler.Ready.Store(true)
		}

	case TransferProgressMsg:
		m.transferData = msg.data

		cmds = append(cmds,
			m.transferProgress.SetPercent(m.transferData.ProgressPct/100),
		)

		if m.transferData.HasFinished {
			// Final figures are in, quit after one more render.
			cmds = append(cmds, quitAfterGrace())
		} else {
			// Queue the next update.
			cmds = append(cmds, updateTransferProgress(m.state))
		}

	case transferDoneMsg:
		return m, tea.Quit

	case LogMsg:
		logMsg := string(msg)

		if len(m.logs) >= 100 {
			m.logs = m.logs[1:]
		}

		m.logs = append(m.logs, logMsg)

		logs := lipgloss.NewStyle().
			Width(m.logsViewport.Width).
			Render(strings.TrimSuffix(strings.Join(m.logs, ""), "\n"))

		m.logsViewport.SetContent(logs)
		m.logsViewport.GotoBottom()

	case progress.FrameMsg:
		updatedTransfer, cmd := m.transferProgress.Update(msg)
		if progressModel, ok := updatedTransfer.(progress.Model); ok {
			m.transferProgress = progressModel
		}
		cmds = append(cmds, cmd)
	}

	// Handle viewport updates.
	m.logsViewport, cmd = m.logsViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// View is the principal rendering function of the model.
func (m TeaModel) View() string {
	if !m.ready {
		return "Loading the GUI..."
	}

	var s strings.Builder

	transferView := m.formatProgressView("Transfer", m.transferProgress.View(), m.transferData)

	progressSection := borderStyle.
		Width(m.fullWidthWithBorders).
		Render(transferView)

	logsSection := borderStyle.
		Width(m.fullWidthWithBorders).
		Render(
			lipgloss.JoinVertical(
				lipgloss.Left,
				titleStyle.Width(m.fullWidthWithBorders).Render("Process Information"),
				lipgloss.NewStyle().Width(m.fullWidthWithBorders).Render(m.logsViewport.View()),
			),
		)

	helpSection := helpStyle.
		Width(m.fullWidthWithBorders).
		Render("q: quit gui • ctrl+c: quit program")

	s.WriteString(lipgloss.JoinVertical(
		lipgloss.Left,
		progressSection,
		logsSection,
		helpSection,
	))

	return s.String()
}

// formatProgressView is a helper function for rendering the progress panel.
func (m TeaModel) formatProgressView(title string, progressBar string, progress tree.Progress) string {
	var timeLeft time.Duration
	var timeLeftMin float64

	if !progress.ETA.IsZero() {
		timeLeft = time.Until(progress.ETA)
		timeLeftMin = float64(timeLeft.Minutes())
	}

	var transferSpeed string
	if progress.TransferSpeedUnit == "bytes/sec" {
		transferSpeed = humanize.Bytes(uint64(progress.TransferSpeed)) + "/s"
	} else {
		transferSpeed = fmt.Sprintf("%d %s", int(progress.TransferSpeed), progress.TransferSpeedUnit)
	}

	var details string
	if !progress.HasFinished {
		details = fmt.Sprintf(
			"Progress: %.2f%% (%d/%d files)\n"+
				"Bytes: %s of %s\n"+
				"File: %s\n"+
				"Time: Started=%v, ETA=%v (%.1f%s left)\n"+
				"Speed: %s\n",
			progress.ProgressPct,
			progress.DoneFiles,
			progress.TotalFiles,
			humanize.Bytes(uint64(progress.DoneBytes)),
			humanize.Bytes(uint64(progress.TotalBytes)),
			progress.CurrentPath,
			progress.StartTime.Format("15:04:05"),
			progress.ETA.Format("15:04:05"),
			timeLeftMin, "min",
			transferSpeed,
		)
	} else {
		details = fmt.Sprintf(
			"Progress: %.2f%% (%d/%d files)\n"+
				"Bytes: %s of %s\n"+
				"Time: Started=%v, Finished=%v\n\n",
			progress.ProgressPct,
			progress.DoneFiles,
			progress.TotalFiles,
			humanize.Bytes(uint64(progress.DoneBytes)),
			humanize.Bytes(uint64(progress.TotalBytes)),
			progress.StartTime.Format("15:04:05"),
			progress.FinishTime.Format("15:04:05"),
		)
	}

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Width(m.fullWidthWithBorders).Render(title),
		"", // Empty line for spacing.
		progressBar,
		"", // Empty line for spacing.
		infoStyle.Width(m.fullWidthWithBorders).Render(details),
	)

	return content
}
