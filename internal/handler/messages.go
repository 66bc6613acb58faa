package handler

import (
	"fmt"
	"strings"
)

// Reply texts for user-facing failures, in the bot's conversational voice.
const (
	replyLocationNotFound = "Hmm... It seems like you sent me wrong data: " +
		"e.g. it might be incorrect city name. " +
		"Please, be sure in your input data and try to use the command again!"

	replyTooManyRequests = "Oops! It seems like the poor bot is overloaded. " +
		"Please, give the bot some time for relax and try to use the command later!"

	replyProviderUnavailable = "Oops! The weather service is not answering right now. " +
		"Please, try to use the command again in a minute!"

	replyDeveloperError = "Oops! It seems like it is my error, sorry, try to use the command later!"
)

// buildHelp renders the command overview shown for the help command and
// for unrecognized keywords.
func buildHelp(prefix, description string) string {
	var b strings.Builder
	if description != "" {
		b.WriteString(description)
		b.WriteString("\n\n")
	}
	b.WriteString("**Commands**\n")
	for _, def := range commandTable {
		fmt.Fprintf(&b, "`%s%s` - %s.", prefix, def.usage, def.brief)
		if len(def.aliases) > 1 {
			fmt.Fprintf(&b, " Aliases: %s.", strings.Join(def.aliases[1:], ", "))
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "\nYou can also mention me instead of typing the `%s` prefix.", prefix)
	return b.String()
}

func (d *Dispatcher) unknownCommandReply() string {
	return "I do not know this command.\n\n" + d.help
}

func (d *Dispatcher) emptyLocationReply() string {
	prefix := d.parser.prefix
	return fmt.Sprintf(
		"Please, tell me the city: e.g. `%snow kiev` or `%sweather odessa us`.",
		prefix, prefix,
	)
}

func (d *Dispatcher) emptyEchoReply() string {
	return fmt.Sprintf("Give me something to repeat, e.g. `%secho hello`.", d.parser.prefix)
}
