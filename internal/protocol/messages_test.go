package protocol_test

import (
	"encoding/json"
	"testing"

	"github.com/hersh/blockfall/internal/game"
	"github.com/hersh/blockfall/internal/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func playedSnapshot(t *testing.T) game.Snapshot {
	t.Helper()
	s := game.NewSession(game.DefaultConfig(), game.NewSequenceGenerator(game.KindO, game.KindT))
	for i := 0; i < 25; i++ {
		s.Tick()
	}
	s.Rotate()
	return s.Snapshot()
}

func TestSnapshotSurvivesTheWire(t *testing.T) {
	snap := playedSnapshot(t)

	data, err := json.Marshal(protocol.Envelope{
		Type:    protocol.MsgSnapshot,
		Payload: protocol.FromSnapshot(snap),
	})
	require.NoError(t, err)

	env, err := protocol.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, protocol.MsgSnapshot, env.Type)

	var payload protocol.SnapshotPayload
	require.NoError(t, env.Into(&payload))
	got, err := payload.Snapshot()
	require.NoError(t, err)

	assert.Equal(t, snap, got)
}

func TestFlatBoardLayout(t *testing.T) {
	snap := playedSnapshot(t)

	payload := protocol.FromSnapshot(snap)

	require.Len(t, payload.Board, game.DefaultRows*game.DefaultCols)
	assert.Equal(t, int(game.Yellow), payload.Board[19*game.DefaultCols+4])
	assert.Equal(t, 0, payload.Board[0])
}

func TestSnapshotRejectsMalformedPayload(t *testing.T) {
	good := protocol.FromSnapshot(playedSnapshot(t))

	short := good
	short.Board = good.Board[:10]
	_, err := short.Snapshot()
	assert.Error(t, err)

	badKind := good
	badKind.Next.Kind = 42
	_, err = badKind.Snapshot()
	assert.Error(t, err)
}

func TestSnapshotRejectsUnknownCellColors(t *testing.T) {
	for _, c := range []int{-1, 8, 9, 256, 257} {
		bad := protocol.FromSnapshot(playedSnapshot(t))
		bad.Board[0] = c
		_, err := bad.Snapshot()
		assert.Error(t, err, "color %d", c)
	}

	ok := protocol.FromSnapshot(playedSnapshot(t))
	ok.Board[0] = int(game.Orange)
	snap, err := ok.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, game.Occupied(game.Orange), snap.Cells[0][0])
}

func TestSnapshotRejectsBadShapes(t *testing.T) {
	cases := map[string][][]bool{
		"empty":       {},
		"ragged":      {{true, true, true}, {true}},
		"wrong kind":  {{true, true}, {true, true}},
		"extra cells": {{true, true, true}, {true, true, true}},
	}
	for name, shape := range cases {
		t.Run(name, func(t *testing.T) {
			bad := protocol.FromSnapshot(playedSnapshot(t))
			bad.Active.Kind = int(game.KindT)
			bad.Active.Shape = shape
			_, err := bad.Snapshot()
			assert.Error(t, err)
		})
	}

	rotated := protocol.FromSnapshot(playedSnapshot(t))
	rotated.Active.Kind = int(game.KindT)
	rotated.Active.Shape = game.KindT.Shape().Rotate()
	_, err := rotated.Snapshot()
	assert.NoError(t, err)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := protocol.Decode([]byte("{not json"))
	assert.Error(t, err)

	env, err := protocol.Decode([]byte(`{"type":"command","payload":{"command":"rotate"}}`))
	require.NoError(t, err)
	var cmd protocol.CommandPayload
	require.NoError(t, env.Into(&cmd))
	assert.Equal(t, "rotate", cmd.Command)
}
