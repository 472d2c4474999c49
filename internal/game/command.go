package game

import (
	"errors"
	"fmt"
)

// Command is one discrete input to a Session.
type Command int

const (
	MoveLeft Command = iota
	MoveRight
	SoftDrop
	Rotate
	Tick
)

var ErrUnknownCommand = errors.New("unknown command")

var commandNames = map[Command]string{
	MoveLeft:  "move_left",
	MoveRight: "move_right",
	SoftDrop:  "soft_drop",
	Rotate:    "rotate",
	Tick:      "tick",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("command(%d)", int(c))
}

// ParseCommand maps a wire name such as "move_left" to its Command.
func ParseCommand(name string) (Command, error) {
	for c, n := range commandNames {
		if n == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
}
