// Package notify holds the single-slot notification banner.
package notify

// Level is the banner severity.
type Level int

const (
	Info Level = iota
	Success
	Warning
	Danger
)

func (l Level) String() string {
	switch l {
	case Success:
		return "success"
	case Warning:
		return "warning"
	case Danger:
		return "danger"
	}
	return "info"
}

// Banner is the current message. There is no queue: setting a banner
// replaces the previous one.
type Banner struct {
	Message string
	Level   Level
}

func New(level Level, msg string) Banner { return Banner{Message: msg, Level: level} }

func (b Banner) IsZero() bool { return b.Message == "" }
