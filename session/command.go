package session

import "strings"

// Command is a user request forwarded to the render loop
type Command int

const (
	// CmdStep advances a single turn
	CmdStep Command = iota
	// CmdToggleAuto starts or pauses auto advance
	CmdToggleAuto
	// CmdQuit ends the session once any in-flight turn completes
	CmdQuit
)

func (c Command) String() string {
	switch c {
	case CmdStep:
		return "step"
	case CmdToggleAuto:
		return "toggle"
	case CmdQuit:
		return "quit"
	}
	return "unknown"
}

// ParseCommand maps a line of terminal input to a command. An empty line (enter) steps,
// "p" or "space" toggles auto advance, "q" or "esc" quits.
func ParseCommand(line string) (Command, bool) {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "", "n", "step":
		return CmdStep, true
	case "p", "space", "play", "pause":
		return CmdToggleAuto, true
	case "q", "esc", "quit", "exit":
		return CmdQuit, true
	}
	return 0, false
}
