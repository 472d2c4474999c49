package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hersh/blockfall/internal/game"
	"github.com/hersh/blockfall/internal/netclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func press(t *testing.T, m Model, key tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(key)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func started(t *testing.T) Model {
	t.Helper()
	m := NewModel("ada", game.DefaultConfig(), 11)
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, ScreenPlaying, m.Screen())
	require.NotNil(t, cmd, "gravity tick should be scheduled")
	return m
}

func TestStartLocalGame(t *testing.T) {
	m := started(t)

	snap := m.Snapshot()
	assert.Equal(t, 0, snap.Score)
	assert.Equal(t, 1, snap.Level)
	assert.Equal(t, 0, snap.Active.Pos.Row)
	assert.Contains(t, m.View(), "BLOCKFALL")
}

func TestKeysDriveSession(t *testing.T) {
	m := started(t)
	col := m.Snapshot().Active.Pos.Col

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, col-1, m.Snapshot().Active.Pos.Col)

	m, _ = press(t, m, runes("l"))
	assert.Equal(t, col, m.Snapshot().Active.Pos.Col)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.Snapshot().Active.Pos.Row)
}

func TestQuitIgnoredWhilePlaying(t *testing.T) {
	m := started(t)

	m, cmd := press(t, m, runes("q"))

	assert.Nil(t, cmd)
	assert.Equal(t, ScreenPlaying, m.Screen())
}

func TestGameTick(t *testing.T) {
	m := started(t)

	next, cmd := m.Update(GameTickMsg{gen: m.gen})
	m = next.(Model)
	assert.Equal(t, 1, m.Snapshot().Active.Pos.Row)
	assert.NotNil(t, cmd)

	next, cmd = m.Update(GameTickMsg{gen: m.gen - 1})
	m = next.(Model)
	assert.Equal(t, 1, m.Snapshot().Active.Pos.Row)
	assert.Nil(t, cmd)
}

func TestTicksUntilGameOver(t *testing.T) {
	m := started(t)

	for i := 0; i < 10000 && m.Screen() == ScreenPlaying; i++ {
		next, _ := m.Update(GameTickMsg{gen: m.gen})
		m = next.(Model)
	}

	require.Equal(t, ScreenGameOver, m.Screen())
	assert.True(t, m.Snapshot().GameOver)
	assert.Contains(t, m.View(), "GAME OVER")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ScreenPlaying, m.Screen())
	assert.False(t, m.Snapshot().GameOver)
}

func TestRemoteSnapshotsDriveScreens(t *testing.T) {
	m := NewRemoteModel("ada", nil, 0)
	assert.Equal(t, ScreenConnecting, m.Screen())

	next, _ := m.Update(netclient.ConnectedMsg{PlayerID: 3})
	m = next.(Model)
	assert.Equal(t, ScreenWelcome, m.Screen())

	snap := game.NewSession(game.DefaultConfig(), game.NewSequenceGenerator(game.KindO)).Snapshot()
	next, _ = m.Update(netclient.SnapshotMsg{Snapshot: snap})
	m = next.(Model)
	assert.Equal(t, ScreenPlaying, m.Screen())

	snap.GameOver = true
	next, _ = m.Update(netclient.SnapshotMsg{Snapshot: snap})
	m = next.(Model)
	assert.Equal(t, ScreenGameOver, m.Screen())
}

func TestRenderBoardDimensions(t *testing.T) {
	snap := game.NewSession(game.DefaultConfig(), game.NewSequenceGenerator(game.KindI)).Snapshot()

	out := RenderBoard(snap)

	// 20 rows plus top and bottom border
	assert.Len(t, strings.Split(out, "\n"), game.DefaultRows+2)
}
