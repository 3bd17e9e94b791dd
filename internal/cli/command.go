package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies a demo command.
type Kind string

const (
	CmdNext   Kind = "next"
	CmdPrev   Kind = "prev"
	CmdGoto   Kind = "goto"
	CmdPause  Kind = "pause"
	CmdResume Kind = "resume"
	CmdSwipe  Kind = "swipe"
	CmdHover  Kind = "hover"
	CmdLeave  Kind = "leave"
	CmdState  Kind = "state"
	CmdHelp   Kind = "help"
	CmdQuit   Kind = "quit"
)

// ErrEmptyCommand is returned for blank input lines.
var ErrEmptyCommand = errors.New("empty command")

// Command is a parsed input line.
type Command struct {
	Kind  Kind
	Index int     // goto target (0-based)
	From  float64 // swipe start x
	To    float64 // swipe end x
}

var aliases = map[string]Kind{
	"n": CmdNext, "next": CmdNext,
	"p": CmdPrev, "prev": CmdPrev, "previous": CmdPrev,
	"g": CmdGoto, "goto": CmdGoto,
	"pause":  CmdPause,
	"resume": CmdResume, "play": CmdResume,
	"swipe": CmdSwipe,
	"hover": CmdHover,
	"leave": CmdLeave,
	"state": CmdState, "s": CmdState,
	"help": CmdHelp, "?": CmdHelp,
	"q": CmdQuit, "quit": CmdQuit, "exit": CmdQuit,
}

// Parse turns a line such as "g 3" or "swipe 300 100" into a Command.
func Parse(line string) (Command, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return Command{}, ErrEmptyCommand
	}
	kind, ok := aliases[fields[0]]
	if !ok {
		return Command{}, fmt.Errorf("unknown command %q (type help)", fields[0])
	}
	cmd := Command{Kind: kind}
	args := fields[1:]

	switch kind {
	case CmdGoto:
		if len(args) != 1 {
			return Command{}, fmt.Errorf("usage: g <index>")
		}
		i, err := strconv.Atoi(args[0])
		if err != nil {
			return Command{}, fmt.Errorf("invalid index %q: %w", args[0], err)
		}
		cmd.Index = i
	case CmdSwipe:
		if len(args) != 2 {
			return Command{}, fmt.Errorf("usage: swipe <x0> <x1>")
		}
		from, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return Command{}, fmt.Errorf("invalid x0 %q: %w", args[0], err)
		}
		to, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return Command{}, fmt.Errorf("invalid x1 %q: %w", args[1], err)
		}
		cmd.From, cmd.To = from, to
	default:
		if len(args) > 0 {
			return Command{}, fmt.Errorf("%s takes no arguments", kind)
		}
	}
	return cmd, nil
}

const helpText = `commands:
  n | next             next item
  p | prev             previous item
  g <i>                jump to item i (0-based)
  pause | resume       toggle autoplay
  swipe <x0> <x1>      pointer gesture from x0 to x1
  hover | leave        pointer enters / leaves the carousel
  state                print the current state
  q | quit             exit`
