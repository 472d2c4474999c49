package server

import (
	"log"
	"time"

	"github.com/hersh/blockfall/internal/game"
	"github.com/hersh/blockfall/internal/player"
	"github.com/hersh/blockfall/internal/protocol"
)

// Match drives one remote session. Commands from the client and gravity
// ticks are both handled on the run goroutine, so the session only ever
// sees one command at a time.
type Match struct {
	cfg     game.Config
	players *player.Registry
	client  *client
	session *game.Session
	ticker  *time.Ticker
	period  time.Duration
}

func newMatch(cfg game.Config, players *player.Registry, c *client) *Match {
	return &Match{
		cfg:     cfg,
		players: players,
		client:  c,
	}
}

func (m *Match) run() {
	defer func() {
		m.stopGravity()
		close(m.client.sendCh)
	}()

	for {
		var tick <-chan time.Time
		if m.ticker != nil {
			tick = m.ticker.C
		}

		select {
		case env, ok := <-m.client.inbox:
			if !ok {
				return
			}
			m.handleMessage(env)
		case <-tick:
			m.apply(game.Tick)
		}
	}
}

func (m *Match) handleMessage(env protocol.RawEnvelope) {
	switch env.Type {
	case protocol.MsgStart:
		var payload protocol.StartPayload
		if err := env.Into(&payload); err != nil {
			m.sendError(err.Error())
			return
		}
		m.start(payload)

	case protocol.MsgCommand:
		var payload protocol.CommandPayload
		if err := env.Into(&payload); err != nil {
			m.sendError(err.Error())
			return
		}
		cmd, err := game.ParseCommand(payload.Command)
		if err != nil {
			m.sendError(err.Error())
			return
		}
		if m.session == nil {
			m.sendError("no game in progress")
			return
		}
		m.apply(cmd)

	default:
		log.Printf("unknown message type from player %d: %s", m.client.id, env.Type)
		m.sendError("unknown message type " + string(env.Type))
	}
}

func (m *Match) start(payload protocol.StartPayload) {
	var gen game.Generator
	if payload.Seed != 0 {
		gen = game.NewRandomGenerator(payload.Seed)
	} else {
		gen = game.NewTimeSeededGenerator()
	}

	if m.session != nil && !m.session.GameOver() {
		m.players.EndGame(m.client.id, m.session.Score())
	}
	m.players.SetName(m.client.id, payload.PlayerName)
	m.players.StartGame(m.client.id)
	m.session = game.NewSession(m.cfg, gen)
	log.Printf("player %d (%s) started a game", m.client.id, payload.PlayerName)

	m.sendSnapshot()
	m.resetGravity()
	m.checkGameOver()
}

func (m *Match) apply(cmd game.Command) {
	if m.session == nil || m.session.GameOver() {
		return
	}
	if !m.session.Apply(cmd) {
		return
	}
	m.sendSnapshot()
	if m.session.TickInterval() != m.period {
		m.resetGravity()
	}
	m.checkGameOver()
}

func (m *Match) checkGameOver() {
	if !m.session.GameOver() {
		return
	}
	m.stopGravity()
	m.players.EndGame(m.client.id, m.session.Score())
	log.Printf("player %d game over: score %d, lines %d", m.client.id, m.session.Score(), m.session.Lines())
}

func (m *Match) resetGravity() {
	m.period = m.session.TickInterval()
	if m.ticker == nil {
		m.ticker = time.NewTicker(m.period)
		return
	}
	m.ticker.Reset(m.period)
}

func (m *Match) stopGravity() {
	if m.ticker != nil {
		m.ticker.Stop()
		m.ticker = nil
	}
	m.period = 0
}

func (m *Match) sendSnapshot() {
	m.client.send(protocol.Envelope{
		Type:    protocol.MsgSnapshot,
		Payload: protocol.FromSnapshot(m.session.Snapshot()),
	})
}

func (m *Match) sendError(msg string) {
	m.client.send(protocol.Envelope{
		Type:    protocol.MsgError,
		Payload: protocol.ErrorPayload{Message: msg},
	})
}
