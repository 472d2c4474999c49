package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/hersh/blockfall/internal/game"
)

var (
	// ANSI 256 colors indexed by game.Color.
	colors = []string{
		"0",
		"51",  // cyan
		"201", // magenta
		"226", // yellow
		"46",  // green
		"196", // red
		"21",  // blue
		"214", // orange
	}

	boardStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("15"))

	infoStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("15"))

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("51"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

func colorCode(c game.Color) string {
	if int(c) < len(colors) {
		return colors[c]
	}
	return "248"
}

func RenderBoard(snap game.Snapshot) string {
	var sb strings.Builder

	grid := snap.Composite()
	for y, row := range grid {
		for _, cell := range row {
			if !cell.Filled {
				sb.WriteString("  ")
				continue
			}
			sb.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(colorCode(cell.Color))).
				Render("██"))
		}
		if y < len(grid)-1 {
			sb.WriteString("\n")
		}
	}

	return boardStyle.Render(sb.String())
}

func RenderPiece(p game.PieceView) string {
	var sb strings.Builder
	pieceStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colorCode(p.Color())))

	for y, row := range p.Shape {
		for _, filled := range row {
			if filled {
				sb.WriteString(pieceStyle.Render("██"))
			} else {
				sb.WriteString("  ")
			}
		}
		if y < len(p.Shape)-1 {
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func RenderInfo(snap game.Snapshot, playerName, status string) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("BLOCKFALL") + "\n\n")
	sb.WriteString(infoStyle.Render(fmt.Sprintf("Player: %s", playerName)) + "\n")
	sb.WriteString(infoStyle.Render(fmt.Sprintf("Score: %d", snap.Score)) + "\n")
	sb.WriteString(infoStyle.Render(fmt.Sprintf("Level: %d", snap.Level)) + "\n")
	sb.WriteString(infoStyle.Render(fmt.Sprintf("Lines: %d", snap.Lines)) + "\n\n")

	sb.WriteString(titleStyle.Render("NEXT") + "\n")
	sb.WriteString(RenderPiece(snap.Next) + "\n\n")

	sb.WriteString(RenderControls())

	if status != "" {
		sb.WriteString("\n" + statusStyle.Render(status))
	}

	return sb.String()
}

func RenderWelcome(remote bool, status string) string {
	mode := "Local game"
	if remote {
		mode = "Remote game"
	}
	s := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("51")).
		Align(lipgloss.Center).
		Render(fmt.Sprintf(`
╔══════════════════════════════╗
║      B L O C K F A L L       ║
╚══════════════════════════════╝

   %s

   Press ENTER or S to start
   Press Q to quit
`, mode))
	if status != "" {
		s += "\n" + statusStyle.Render(status)
	}
	return s
}

func RenderGameOver(snap game.Snapshot) string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("196")).
		Align(lipgloss.Center).
		Render(fmt.Sprintf("\n\n\n     GAME OVER     \n     Score: %d     \n     Level: %d     \n     Lines: %d     \n\n\n",
			snap.Score, snap.Level, snap.Lines))
}

func RenderControls() string {
	return infoStyle.Render(`Controls:
  ← →  Move left/right
  ↓    Soft drop
  ↑/X  Rotate
  Q    Quit (after game)
`)
}
