package engine

import "context"

// Delimiter describes the innermost open math construct before the point.
type Delimiter struct {
	// Marker is the opening text: "$", "$$", "\\(", "\\[" or an
	// environment name such as "equation".
	Marker string
	// Pos is the offset of the opening marker.
	Pos ByteOffset
}

// IsDollar reports whether the construct was opened by "$" or "$$".
func (d Delimiter) IsDollar() bool {
	return d.Marker == "$" || d.Marker == "$$"
}

// MathDetector decides whether the point is in math mode.
type MathDetector interface {
	InMath(doc *Document) bool
	OpenDelimiter(doc *Document) (Delimiter, bool)
}

// LabelGenerator produces the text of a label for an environment.
type LabelGenerator interface {
	GenerateLabel(env string) (string, error)
}

// LabelFunc adapts a function to LabelGenerator.
type LabelFunc func(env string) (string, error)

// GenerateLabel implements LabelGenerator.
func (f LabelFunc) GenerateLabel(env string) (string, error) { return f(env) }

// PathPrompter asks the user for a file path.
type PathPrompter interface {
	PromptPath(ctx context.Context, absolute bool) (string, error)
}

// Prompter reads one line of input. Completions may be offered to the user.
// An empty answer is valid; ErrCanceled signals an abort.
type Prompter interface {
	ReadString(ctx context.Context, prompt string, completions []string) (string, error)
}

// HelpDisplay renders the deferred help of the prefix readers.
type HelpDisplay interface {
	// Show renders lines starting at the given scroll offset.
	Show(lines []string, scroll int)
	// Hide removes the help.
	Hide()
	// Height is the number of lines visible at once.
	Height() int
}

// NopHelp is a HelpDisplay that shows nothing.
type NopHelp struct{}

// Show implements HelpDisplay.
func (NopHelp) Show([]string, int) {}

// Hide implements HelpDisplay.
func (NopHelp) Hide() {}

// Height implements HelpDisplay.
func (NopHelp) Height() int { return 20 }
