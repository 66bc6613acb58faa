package model

// CommandKind identifies which bot action a parsed command requests.
type CommandKind string

const (
	KindCurrent  CommandKind = "now"
	KindToday    CommandKind = "today"
	KindTomorrow CommandKind = "tomorrow"
	KindOutlook  CommandKind = "forecast"
	KindPing     CommandKind = "ping"
	KindEcho     CommandKind = "echo"
	KindHelp     CommandKind = "help"
)

// Location identifies the place a weather command asks about.
type Location struct {
	City    string
	Country string // optional ISO 3166 country code, upper-cased
}

// Query renders the location the way the provider's q parameter expects.
func (l Location) Query() string {
	if l.Country != "" {
		return l.City + "," + l.Country
	}
	return l.City
}

// Command is one parsed chat instruction. Weather kinds always carry a
// non-empty location; Args keeps the raw text after the keyword for
// commands that repeat it back.
type Command struct {
	Kind     CommandKind
	Location Location
	Args     string
}
