package models

import "fmt"

// ModerationCommand is the closed set of bulk actions the comments admin
// can apply. Wire strings are converted exactly once, at the request
// boundary, so no raw command string ever reaches the mutation path.
type ModerationCommand int

const (
	CommandDelete ModerationCommand = iota
	CommandMarkSpam
	CommandMarkHam
)

var commandNames = map[string]ModerationCommand{
	"Delete":    CommandDelete,
	"Mark Spam": CommandMarkSpam,
	"Mark Ham":  CommandMarkHam,
}

// ParseModerationCommand maps a wire command string onto the closed
// enumeration. Unknown strings are a validation failure, not a fatal
// condition: rejection happens here, before any store is touched.
func ParseModerationCommand(s string) (ModerationCommand, error) {
	cmd, ok := commandNames[s]
	if !ok {
		return 0, fmt.Errorf("%q command is not recognized", s)
	}
	return cmd, nil
}

func (c ModerationCommand) String() string {
	switch c {
	case CommandDelete:
		return "Delete"
	case CommandMarkSpam:
		return "Mark Spam"
	case CommandMarkHam:
		return "Mark Ham"
	}
	return fmt.Sprintf("ModerationCommand(%d)", int(c))
}
