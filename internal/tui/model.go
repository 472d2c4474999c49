package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hersh/blockfall/internal/game"
	"github.com/hersh/blockfall/internal/netclient"
)

// --- Custom tea.Msg types ---

// GameTickMsg is one gravity step for a local session. Ticks from an
// earlier game carry a stale generation and are dropped.
type GameTickMsg struct {
	gen int
}

// --- Screens ---

type Screen int

const (
	ScreenConnecting Screen = iota
	ScreenWelcome
	ScreenPlaying
	ScreenGameOver
)

// --- Model ---

type Model struct {
	screen     Screen
	playerName string
	cfg        game.Config
	seed       int64
	width      int
	height     int

	// Local play
	session *game.Session
	gen     int

	// Remote play
	client   *netclient.Client
	playerID uint64

	snap    game.Snapshot
	hasSnap bool

	status       string
	err          error
	disconnected bool
}

// NewModel creates a model that plays locally. A zero seed picks a random
// one per game.
func NewModel(playerName string, cfg game.Config, seed int64) Model {
	return Model{
		screen:     ScreenWelcome,
		playerName: playerName,
		cfg:        cfg,
		seed:       seed,
	}
}

// NewRemoteModel creates a model whose session lives on a server.
func NewRemoteModel(playerName string, client *netclient.Client, seed int64) Model {
	return Model{
		screen:     ScreenConnecting,
		playerName: playerName,
		client:     client,
		seed:       seed,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func gameTickCmd(speed time.Duration, gen int) tea.Cmd {
	return tea.Tick(speed, func(time.Time) tea.Msg {
		return GameTickMsg{gen: gen}
	})
}

// --- Update ---

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case GameTickMsg:
		return m.handleGameTick(msg)

	// Network messages
	case netclient.ConnectedMsg:
		m.playerID = msg.PlayerID
		m.screen = ScreenWelcome
		return m, nil
	case netclient.SnapshotMsg:
		return m.handleSnapshot(msg.Snapshot)
	case netclient.ErrorMsg:
		m.status = msg.Message
		return m, nil
	case netclient.DisconnectedMsg:
		m.disconnected = true
		m.err = msg.Err
		return m, nil
	}
	return m, nil
}

func (m Model) handleSnapshot(snap game.Snapshot) (tea.Model, tea.Cmd) {
	m.snap = snap
	m.hasSnap = true
	if m.screen == ScreenWelcome {
		m.screen = ScreenPlaying
	}
	if snap.GameOver && m.screen == ScreenPlaying {
		m.screen = ScreenGameOver
	}
	return m, nil
}

// --- Key handlers ---

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m.quit()
	case "q":
		if m.screen != ScreenPlaying {
			return m.quit()
		}
	}

	switch m.screen {
	case ScreenWelcome, ScreenGameOver:
		if msg.String() == "enter" || msg.String() == "s" {
			return m.startGame()
		}
	case ScreenPlaying:
		if cmd, ok := keyCommand(msg.String()); ok {
			return m.apply(cmd)
		}
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.client != nil {
		m.client.Close()
	}
	return m, tea.Quit
}

// keyCommand maps a key to a session command.
func keyCommand(key string) (game.Command, bool) {
	switch key {
	case "left", "h":
		return game.MoveLeft, true
	case "right", "l":
		return game.MoveRight, true
	case "down", "j":
		return game.SoftDrop, true
	case "up", "x":
		return game.Rotate, true
	}
	return 0, false
}

func (m Model) startGame() (tea.Model, tea.Cmd) {
	m.status = ""
	if m.client != nil {
		// The server answers with a snapshot that moves us to ScreenPlaying.
		m.screen = ScreenWelcome
		m.client.StartGame(m.playerName, m.seed)
		return m, nil
	}

	var gen game.Generator = game.NewTimeSeededGenerator()
	if m.seed != 0 {
		gen = game.NewRandomGenerator(m.seed)
	}
	m.session = game.NewSession(m.cfg, gen)
	m.gen++
	m.snap = m.session.Snapshot()
	m.hasSnap = true
	m.screen = ScreenPlaying
	if m.session.GameOver() {
		m.screen = ScreenGameOver
		return m, nil
	}
	return m, gameTickCmd(m.session.TickInterval(), m.gen)
}

func (m Model) apply(cmd game.Command) (tea.Model, tea.Cmd) {
	if m.client != nil {
		m.client.SendCommand(cmd)
		return m, nil
	}
	if m.session == nil || !m.session.Apply(cmd) {
		return m, nil
	}
	m.refresh()
	return m, nil
}

// refresh copies the local session state into the render snapshot.
func (m *Model) refresh() {
	m.snap = m.session.Snapshot()
	if m.session.GameOver() {
		m.screen = ScreenGameOver
	}
}

// --- Tick handlers ---

func (m Model) handleGameTick(msg GameTickMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.gen || m.session == nil || m.screen != ScreenPlaying || m.session.GameOver() {
		return m, nil
	}

	m.session.Tick()
	m.refresh()
	if m.session.GameOver() {
		return m, nil
	}
	return m, gameTickCmd(m.session.TickInterval(), m.gen)
}

// --- View ---

func (m Model) View() string {
	if m.disconnected {
		return m.renderCentered("Disconnected from server.\nPress Ctrl+C to exit.")
	}

	switch m.screen {
	case ScreenConnecting:
		return m.renderCentered("Connecting to server...")
	case ScreenWelcome:
		return m.renderCentered(RenderWelcome(m.client != nil, m.status))
	case ScreenPlaying:
		return m.renderPlaying()
	case ScreenGameOver:
		return m.renderCentered(RenderGameOver(m.snap) + "\n\nPress ENTER to play again, Q to quit")
	}
	return ""
}

func (m Model) renderCentered(content string) string {
	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

func (m Model) renderPlaying() string {
	if !m.hasSnap {
		return m.renderCentered("Loading...")
	}

	leftPanel := lipgloss.NewStyle().
		Width(24).
		Render(RenderInfo(m.snap, m.playerName, m.status))

	centerPanel := lipgloss.NewStyle().
		Padding(1, 2).
		Render(RenderBoard(m.snap))

	return m.renderCentered(lipgloss.JoinHorizontal(
		lipgloss.Top,
		leftPanel,
		centerPanel,
	))
}

// Screen reports which screen is showing.
func (m Model) Screen() Screen {
	return m.screen
}

// Snapshot is the state currently rendered.
func (m Model) Snapshot() game.Snapshot {
	return m.snap
}
