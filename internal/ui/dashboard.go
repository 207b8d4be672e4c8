// Package ui renders the board in the terminal. It is a pure consumer of the
// refresher's Board: fetch, fallback and cache decisions all happen upstream,
// the UI only draws what it is handed.
package ui

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"BitSense/internal/domain/models"
	"BitSense/internal/usecase"
	"BitSense/pkg/logger"
)

// Dashboard owns the bubbletea program and the latest board copy. Refresh
// notifications arrive on the refresher's goroutine, so board and program are
// mutex-guarded.
type Dashboard struct {
	refresher *usecase.Refresher
	log       *logger.Logger

	mu      sync.RWMutex
	board   models.Board
	program *tea.Program
	width   int
	height  int
}

// Messages for the update loop.
type refreshMsg struct{}
type tickMsg time.Time

// dashModel adapts Dashboard to the bubbletea model interface.
type dashModel struct {
	ui *Dashboard
}

func NewDashboard(refresher *usecase.Refresher, log *logger.Logger) *Dashboard {
	if log == nil {
		log = logger.Nop()
	}
	d := &Dashboard{
		refresher: refresher,
		log:       log,
		board:     refresher.Board(),
		width:     100,
		height:    40,
	}
	refresher.OnUpdate(func(b models.Board) {
		d.mu.Lock()
		d.board = b
		p := d.program
		d.mu.Unlock()
		if p != nil {
			p.Send(refreshMsg{})
		}
	})
	return d
}

// Run blocks until the user quits or ctx is canceled.
func (d *Dashboard) Run(ctx context.Context) error {
	p := tea.NewProgram(dashModel{ui: d}, tea.WithAltScreen(), tea.WithContext(ctx))
	d.mu.Lock()
	d.program = p
	d.mu.Unlock()

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("dashboard: %w", err)
	}
	return nil
}

// tickCmd re-renders on a timer so age labels stay current between refreshes.
func tickCmd() tea.Cmd {
	return tea.Tick(15*time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m dashModel) Init() tea.Cmd {
	return tickCmd()
}

func (m dashModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			m.ui.log.Debug("dashboard: manual refresh requested")
			ref := m.ui.refresher
			return m, func() tea.Msg {
				ref.RefreshNow(context.Background())
				return refreshMsg{}
			}
		}

	case tea.WindowSizeMsg:
		m.ui.mu.Lock()
		m.ui.width = msg.Width
		m.ui.height = msg.Height
		m.ui.mu.Unlock()

	case tickMsg:
		return m, tickCmd()

	case refreshMsg:
		// Board is already stored; returning redraws.
	}

	return m, nil
}

func (m dashModel) View() string {
	m.ui.mu.RLock()
	board := m.ui.board
	width := m.ui.width
	m.ui.mu.RUnlock()

	return renderBoard(board, m.ui.refresher.StaleAfter(), width, time.Now())
}
