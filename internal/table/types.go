package table

import (
	"fmt"
	"strings"
)

// Op identifies a builtin operation bound to a command.
type Op int

const (
	// OpNone runs nothing after the replacement is inserted.
	OpNone Op = iota
	// OpPositionCursor moves the point to the cursor marker.
	OpPositionCursor
	// OpEnvironment inserts an environment; Args[0] optionally names it.
	OpEnvironment
	// OpItem inserts an item of the enclosing environment.
	OpItem
	// OpLabel inserts a generated label.
	OpLabel
	// OpLRPair turns the delimiter before the point into a \left \right pair.
	OpLRPair
	// OpFile positions the cursor and inserts a path read from the user.
	OpFile
	// OpLua calls the Lua function named by Args[0] with the remaining Args.
	OpLua
)

var opNames = map[Op]string{
	OpNone:           "none",
	OpPositionCursor: "position-cursor",
	OpEnvironment:    "environment",
	OpItem:           "item",
	OpLabel:          "label",
	OpLRPair:         "lr-pair",
	OpFile:           "file",
	OpLua:            "lua",
}

// String returns the configuration name of the operation.
func (o Op) String() string {
	if name, ok := opNames[o]; ok {
		return name
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

// Action is the operation run after a command's replacement is inserted.
// The zero Action does nothing. An Action with Args is parameterized.
type Action struct {
	Op   Op
	Args []string
}

// NoAction is the zero Action.
var NoAction = Action{}

// Builtin returns an unparameterized action.
func Builtin(op Op) Action { return Action{Op: op} }

// Param returns a parameterized action.
func Param(op Op, args ...string) Action { return Action{Op: op, Args: args} }

// IsNone reports whether the action does nothing.
func (a Action) IsNone() bool { return a.Op == OpNone }

// IsParam reports whether the action carries arguments.
func (a Action) IsParam() bool { return len(a.Args) > 0 }

// Arg returns argument i or "".
func (a Action) Arg(i int) string {
	if i < 0 || i >= len(a.Args) {
		return ""
	}
	return a.Args[i]
}

// String formats the action as "op" or "op(arg, ...)".
func (a Action) String() string {
	if !a.IsParam() {
		return a.Op.String()
	}
	return a.Op.String() + "(" + strings.Join(a.Args, ", ") + ")"
}

// ParseAction maps a configuration action name to an Action.
// The empty name and "none" give NoAction.
func ParseAction(name string, args []string) (Action, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = "none"
	}
	for op, n := range opNames {
		if n == name {
			if op == OpLua && len(args) == 0 {
				return Action{}, fmt.Errorf("%w: lua action needs a function name", ErrInvalidAction)
			}
			if op == OpNone {
				return NoAction, nil
			}
			return Action{Op: op, Args: args}, nil
		}
	}
	return Action{}, fmt.Errorf("%w: %q", ErrInvalidAction, name)
}

// Command is a keyword expanded by the trigger key.
type Command struct {
	Keyword     string
	Doc         string
	Replacement string
	Action      Action
	// Text and Math select the modes in which the keyword is active.
	Text bool
	Math bool
}

// ActiveIn reports whether the command applies in the given mode.
func (c Command) ActiveIn(math bool) bool {
	if math {
		return c.Math
	}
	return c.Text
}

// Environment is a named template.
type Environment struct {
	Name string
	Body string
	// Item is the template of a new item; empty means none.
	Item string
}

// HasItem reports whether the environment has an item template.
func (e Environment) HasItem() bool { return e.Item != "" }

// Symbol binds a key to one macro per level. Level n is Levels[n-1];
// an empty slot is undefined.
type Symbol struct {
	Key    rune
	Levels []string
}

// At returns the macro at the 1-based level.
func (s Symbol) At(level int) (string, bool) {
	if level < 1 || level > len(s.Levels) {
		return "", false
	}
	m := s.Levels[level-1]
	return m, m != ""
}

// Defined reports whether any level holds a macro.
func (s Symbol) Defined() bool {
	for _, m := range s.Levels {
		if m != "" {
			return true
		}
	}
	return false
}

// Modifier is an accent or font change applied by the modify engine.
type Modifier struct {
	Key rune
	// Math and Text are the macros for each mode; empty means unavailable.
	Math string
	Text string
	// Command wraps as \cmd{unit}; otherwise as {\cmd unit}.
	Command bool
	// RemoveDot replaces i and j by \imath and \jmath in math.
	RemoveDot bool
	// ItalicCorrection appends \/ to text mode style wraps.
	ItalicCorrection bool
}

// For returns the macro for the given mode.
func (m Modifier) For(math bool) (string, bool) {
	if math {
		return m.Math, m.Math != ""
	}
	return m.Text, m.Text != ""
}
