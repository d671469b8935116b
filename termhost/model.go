// Package termhost renders the stage in a terminal with bubbletea.
// Every cell samples the stage at its center, so the scene is drawn at the
// resolution of the configured cell size.
package termhost

import (
	"fmt"
	"image"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/esimov/sheetfab/config"
	"github.com/esimov/sheetfab/stage"
	"github.com/esimov/sheetfab/utils"
)

type tickMsg time.Time

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9e9e9e"))
	stateStyle  = lipgloss.NewStyle().Bold(true)
	helpText    = "space toggle · h rest · w wake · q quit"
)

// Model is the bubbletea model of the terminal host.
type Model struct {
	stage *stage.Stage

	cell image.Point
	tick time.Duration

	width, height int
	pressed       bool
	last          string
}

// New creates the terminal model of the stage.
func New(s *stage.Stage, cfg config.Terminal) Model {
	m := Model{
		stage: s,
		cell:  image.Pt(cfg.CellWidth, cfg.CellHeight),
		tick:  cfg.Tick.Std(),
	}
	if m.tick <= 0 {
		m.tick = 16 * time.Millisecond
	}
	return m
}

// Run starts the bubbletea program in the alternate screen with mouse support.
func Run(s *stage.Stage, cfg config.Terminal) error {
	p := tea.NewProgram(New(s, cfg), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	m.stage.Settle()
	return m.nextTick()
}

func (m Model) nextTick() tea.Cmd {
	return tea.Tick(m.tick, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tickMsg:
		m.stage.Advance(time.Time(msg))
		if log := m.stage.Log(); len(log) > 0 {
			m.last = log[len(log)-1].String()
		}
		return m, m.nextTick()
	case tea.KeyMsg:
		return m.updateKeys(msg)
	case tea.MouseMsg:
		return m.updateMouse(msg), nil
	}
	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.stage.Toggle()
	case "h":
		m.stage.Rest()
	case "w":
		m.stage.Wake(0, 0)
	}
	return m, nil
}

func (m Model) updateMouse(msg tea.MouseMsg) Model {
	p := m.toStage(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m
		}
		m.pressed = true
		m.stage.Press(p)
	case tea.MouseActionMotion:
		if m.pressed {
			m.stage.Drag(p)
		}
	case tea.MouseActionRelease:
		if m.pressed {
			m.pressed = false
			m.stage.Release(p)
		}
	}
	return m
}

// toStage returns the stage point at the center of the terminal cell.
func (m Model) toStage(col, row int) image.Point {
	return image.Pt(col*m.cell.X+m.cell.X/2, row*m.cell.Y+m.cell.Y/2)
}

// gridSize returns the number of columns and rows the stage covers.
func (m Model) gridSize() (cols, rows int) {
	cols, rows = m.stage.Size.X/m.cell.X, m.stage.Size.Y/m.cell.Y
	if m.width > 0 {
		cols = utils.Min(cols, m.width)
	}
	if m.height > 1 {
		// Keep the last line for the status.
		rows = utils.Min(rows, m.height-1)
	}
	return cols, rows
}

func (m Model) View() string {
	cols, rows := m.gridSize()
	return render(m.sample(cols, rows)) + "\n" + m.status(cols)
}

func (m Model) status(width int) string {
	c := m.stage.Coordinator
	line := fmt.Sprintf("%s  %s  %s  %s",
		stateStyle.Render(c.State().String()),
		c.RevealDirection(),
		utils.FormatTime(m.stage.Elapsed()),
		helpText,
	)
	if m.last != "" {
		line += "  last: " + m.last
	}
	return statusStyle.Render(ansi.Truncate(line, utils.Max(width, 20), "…"))
}
