// Package bot owns the Discord gateway session and hands inbound chat
// messages to the command dispatcher.
package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/Max-Zhenzhera/discord-weather-bot/internal/handler"
)

// Options configures the chat session.
type Options struct {
	Token          string
	Activity       string        // watching status text, empty disables it
	RequestTimeout time.Duration // budget for handling one message
}

// channelSender is the slice of the Discord session the bot needs for
// outbound messages.
type channelSender interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Bot wires the Discord session to the dispatcher. The underlying session
// reconnects on its own; the bot only opens and closes it.
type Bot struct {
	session    *discordgo.Session
	dispatcher *handler.Dispatcher
	logger     *zap.SugaredLogger
	activity   string
	timeout    time.Duration
}

// New creates the bot and registers its event handlers. The session is not
// opened yet; Run does that.
func New(opts Options, dispatcher *handler.Dispatcher, logger *zap.SugaredLogger) (*Bot, error) {
	session, err := discordgo.New("Bot " + opts.Token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}

	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	b := &Bot{
		session:    session,
		dispatcher: dispatcher,
		logger:     logger,
		activity:   opts.Activity,
		timeout:    timeout,
	}

	session.Identify.Intents = discordgo.IntentGuilds |
		discordgo.IntentGuildMessages |
		discordgo.IntentDirectMessages |
		discordgo.IntentMessageContent
	session.AddHandler(b.onReady)
	session.AddHandler(b.onMessageCreate)

	dispatcher.SetLatency(session.HeartbeatLatency)
	return b, nil
}

// Run opens the session and blocks until ctx is canceled, then closes it.
func (b *Bot) Run(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}
	b.logger.Infow("bot is now running, press CTRL-C to exit")

	<-ctx.Done()

	b.logger.Infow("shutting down")
	if err := b.session.Close(); err != nil {
		return fmt.Errorf("close discord session: %w", err)
	}
	return nil
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.dispatcher.RecognizeMention(r.User.ID)
	if b.activity != "" {
		if err := s.UpdateWatchStatus(0, b.activity); err != nil {
			b.logger.Warnw("set activity status", "error", err)
		}
	}
	b.logger.Infow("session ready", "user", r.User.Username)
}

// onMessageCreate runs on the gateway event loop, so the actual handling
// happens on its own goroutine and must never block here.
func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if !b.shouldHandle(m) {
		return
	}
	go b.handleMessage(s, m)
}

// shouldHandle filters out messages from bots, including the bot itself.
func (b *Bot) shouldHandle(m *discordgo.MessageCreate) bool {
	return m.Author != nil && !m.Author.Bot
}

// handleMessage dispatches one message under a per-message deadline and
// sends the reply, if any.
func (b *Bot) handleMessage(sender channelSender, m *discordgo.MessageCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()

	reply := b.dispatcher.Dispatch(ctx, handler.Inbound{
		Content:   m.Content,
		ChannelID: m.ChannelID,
		AuthorID:  m.Author.ID,
	})
	if reply == nil {
		return
	}

	send := &discordgo.MessageSend{Content: reply.Content}
	if reply.Embed != nil {
		send.Embeds = []*discordgo.MessageEmbed{reply.Embed}
	}
	if _, err := sender.ChannelMessageSendComplex(m.ChannelID, send); err != nil {
		b.logger.Errorw("send reply", "channel", m.ChannelID, "error", err)
	}
}
