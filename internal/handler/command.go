package handler

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Max-Zhenzhera/discord-weather-bot/internal/model"
)

// Parse error types. ErrNotCommand marks plain chatter the bot silently
// ignores; the other two are answered with help text.
var (
	ErrNotCommand     = errors.New("handler: message is not a command")
	ErrUnknownCommand = errors.New("handler: unknown command keyword")
	ErrEmptyLocation  = errors.New("handler: weather command without location")
)

// commandDef describes one chat command: its kind, the keyword aliases
// that trigger it and the usage lines the help reply is built from.
type commandDef struct {
	kind          model.CommandKind
	aliases       []string
	usage         string
	brief         string
	needsLocation bool
}

// commandTable lists every command in help order. The first alias is the
// canonical keyword.
var commandTable = []commandDef{
	{
		kind:          model.KindCurrent,
		aliases:       []string{"now", "n", "w", "weather"},
		usage:         "now <city> [country code]",
		brief:         "Show the current weather by the city name",
		needsLocation: true,
	},
	{
		kind:          model.KindToday,
		aliases:       []string{"today", "td"},
		usage:         "today <city> [country code]",
		brief:         "Show today's detailed weather forecast by the city name",
		needsLocation: true,
	},
	{
		kind:          model.KindTomorrow,
		aliases:       []string{"tomorrow", "tm", "tmr"},
		usage:         "tomorrow <city> [country code]",
		brief:         "Show tomorrow's detailed weather forecast by the city name",
		needsLocation: true,
	},
	{
		kind:          model.KindOutlook,
		aliases:       []string{"forecast", "f", "fr", "frc", "frcst"},
		usage:         "forecast <city> [country code]",
		brief:         "Show the 5-day temperature forecast by the city name",
		needsLocation: true,
	},
	{
		kind:    model.KindPing,
		aliases: []string{"ping", "p"},
		usage:   "ping",
		brief:   "Check the bot connection latency",
	},
	{
		kind:    model.KindEcho,
		aliases: []string{"echo", "e"},
		usage:   "echo <text>",
		brief:   "Repeat the given text back",
	},
	{
		kind:    model.KindHelp,
		aliases: []string{"help"},
		usage:   "help",
		brief:   "Show this command overview",
	},
}

// commandsByKeyword resolves any alias to its command definition.
var commandsByKeyword = make(map[string]commandDef)

func init() {
	for _, def := range commandTable {
		for _, alias := range def.aliases {
			commandsByKeyword[alias] = def
		}
	}
}

// Parser turns raw message text into commands. It recognizes the
// configured prefix and, once the bot user is known, the bot's mention
// forms.
type Parser struct {
	prefix string

	mu       sync.RWMutex
	mentions []string
}

// NewParser creates a parser for the given command prefix.
func NewParser(prefix string) *Parser {
	return &Parser{prefix: prefix}
}

// RecognizeMention registers the bot's user ID so that messages addressed
// to the bot by mention act like prefixed commands.
func (p *Parser) RecognizeMention(userID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mentions = []string{"<@" + userID + ">", "<@!" + userID + ">"}
}

// Parse extracts a command from raw message text. It returns ErrNotCommand
// for chatter that is not addressed to the bot, ErrUnknownCommand for an
// addressed but unrecognized keyword and ErrEmptyLocation for a weather
// command missing its location.
func (p *Parser) Parse(content string) (*model.Command, error) {
	rest, ok := p.stripAddress(strings.TrimSpace(content))
	if !ok {
		return nil, ErrNotCommand
	}

	rest = strings.TrimSpace(rest)
	words := strings.Fields(rest)
	if len(words) == 0 {
		return nil, ErrNotCommand
	}

	keyword := strings.ToLower(words[0])
	def, ok := commandsByKeyword[keyword]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, keyword)
	}

	cmd := &model.Command{
		Kind: def.kind,
		Args: strings.TrimSpace(rest[len(words[0]):]),
	}
	if def.needsLocation {
		loc, err := parseLocation(words[1:])
		if err != nil {
			return nil, err
		}
		cmd.Location = loc
	}
	return cmd, nil
}

// stripAddress removes the command prefix or a leading bot mention,
// reporting whether the message was addressed to the bot at all.
func (p *Parser) stripAddress(content string) (string, bool) {
	if strings.HasPrefix(content, p.prefix) {
		return content[len(p.prefix):], true
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, mention := range p.mentions {
		if strings.HasPrefix(content, mention) {
			return content[len(mention):], true
		}
	}
	return "", false
}

// parseLocation reads the words after the keyword: every word belongs to
// the city name, except a trailing two-letter word which is taken as the
// country code when at least one city word remains before it.
func parseLocation(words []string) (model.Location, error) {
	if len(words) == 0 {
		return model.Location{}, ErrEmptyLocation
	}

	loc := model.Location{}
	if len(words) > 1 {
		if last := words[len(words)-1]; isCountryCode(last) {
			loc.Country = strings.ToUpper(last)
			words = words[:len(words)-1]
		}
	}
	loc.City = strings.Join(words, " ")
	return loc, nil
}

// isCountryCode reports whether the word looks like an ISO 3166 alpha-2
// country code.
func isCountryCode(word string) bool {
	if len(word) != 2 {
		return false
	}
	for i := 0; i < len(word); i++ {
		c := word[i]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}
